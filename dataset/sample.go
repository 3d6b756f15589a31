package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"
)

// ============================================================================
// SAMPLE DATA — Demo CSV generation
// ============================================================================

var (
	sampleCities      = []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix"}
	sampleDepartments = []string{"Engineering", "Sales", "Marketing", "HR", "Finance"}
)

// WriteSampleCSV generates a demo dataset with id, name, age, city, salary,
// department and years_experience columns. Useful for trying the pipeline
// without real data.
func WriteSampleCSV(path string, rows int) error {
	if rows <= 0 {
		rows = 100
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"id", "name", "age", "city", "salary", "department", "years_experience"}); err != nil {
		return err
	}

	for i := 1; i <= rows; i++ {
		record := []string{
			strconv.Itoa(i),
			gofakeit.Name(),
			strconv.Itoa(gofakeit.Number(18, 79)),
			gofakeit.RandomString(sampleCities),
			strconv.Itoa(gofakeit.Number(30000, 150000)),
			gofakeit.RandomString(sampleDepartments),
			strconv.Itoa(gofakeit.Number(0, 29)),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
