package dataset_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askcsv-org/askcsv/dataset"
)

func TestFieldsMarshalPreservesOrder(t *testing.T) {
	fields := dataset.Fields{
		{Key: "zebra", Value: 1},
		{Key: "apple", Value: "two"},
		{Key: "mango", Value: nil},
	}

	data, err := json.Marshal(fields)
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":1,"apple":"two","mango":null}`, string(data))
}

func TestFieldsMarshalNested(t *testing.T) {
	fields := dataset.Fields{
		{Key: "outer", Value: dataset.Fields{{Key: "z", Value: 1}, {Key: "a", Value: 2}}},
	}

	data, err := json.Marshal(fields)
	require.NoError(t, err)
	assert.Equal(t, `{"outer":{"z":1,"a":2}}`, string(data))
}

func TestFieldsSetAndGet(t *testing.T) {
	var fields dataset.Fields
	fields = fields.Set("a", 1)
	fields = fields.Set("b", 2)
	fields = fields.Set("a", 3) // replaces in place, keeps position

	v, ok := fields.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	data, err := json.Marshal(fields)
	require.NoError(t, err)
	assert.Equal(t, `{"a":3,"b":2}`, string(data))

	_, ok = fields.Get("missing")
	assert.False(t, ok)
}

func TestFieldsMarshalEmpty(t *testing.T) {
	data, err := json.Marshal(dataset.Fields{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
