package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveColumn(t *testing.T) {
	columns := []string{"university_name", "year", "Total"}

	tests := []struct {
		name      string
		candidate string
		want      string
		resolved  bool
	}{
		{"exact match", "year", "year", true},
		{"exact match case sensitive", "Total", "Total", true},
		{"candidate inside column", "university", "university_name", true},
		{"column inside candidate", "total_enrollment", "Total", true},
		{"case insensitive fuzzy", "TOTAL", "Total", true},
		{"fuzzy match", "name", "university_name", true},
		{"unresolved", "salary", "", false},
		{"empty candidate", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveColumn(tt.candidate, columns)
			assert.Equal(t, tt.resolved, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveColumnFirstMatchWins(t *testing.T) {
	// Both columns contain "year"; declaration order decides.
	columns := []string{"start_year", "end_year"}

	got, ok := ResolveColumn("year", columns)
	assert.True(t, ok)
	assert.Equal(t, "start_year", got)
}

func TestResolveColumnExactBeatsFuzzy(t *testing.T) {
	columns := []string{"yearly_total", "year"}

	got, ok := ResolveColumn("year", columns)
	assert.True(t, ok)
	assert.Equal(t, "year", got)
}
