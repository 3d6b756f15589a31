package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "askcsv.log")

	log := New(Options{File: path})
	log.Infow("loaded table", "rows", 3)
	_ = log.Sync() // stderr sync may fail, the file core still flushes

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"loaded table"`)
	assert.Contains(t, string(data), `"rows":3`)
	assert.Contains(t, string(data), `"timestamp"`)
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	log.Errorw("never seen", "key", "value")
	assert.NoError(t, log.Sync())
}
