package dataset_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askcsv-org/askcsv/dataset"
)

func TestWriteSampleCSVRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.csv")
	require.NoError(t, dataset.WriteSampleCSV(path, 25))

	table, err := dataset.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, table.RowCount())
	assert.Equal(t,
		[]string{"id", "name", "age", "city", "salary", "department", "years_experience"},
		table.ColumnNames())
	assert.Equal(t,
		[]string{"id", "age", "salary", "years_experience"},
		table.NumericColumns())
}

func TestWriteSampleCSVDefaultsRowCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.csv")
	require.NoError(t, dataset.WriteSampleCSV(path, 0))

	table, err := dataset.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, table.RowCount())
}
