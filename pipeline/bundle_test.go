package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundlePreservesInsertionOrder(t *testing.T) {
	b := &Bundle{}
	b.Add("zebra", 1)
	b.Add("apple", 2)
	b.Add("mango", 3)

	assert.Equal(t, []string{"zebra", "apple", "mango"}, b.Keys())

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":1,"apple":2,"mango":3}`, string(data))
}

func TestBundleAddReplacesInPlace(t *testing.T) {
	b := &Bundle{}
	b.Add("first", 1)
	b.Add("second", 2)
	b.Add("first", 10)

	assert.Equal(t, 2, b.Len())
	assert.Equal(t, []string{"first", "second"}, b.Keys())

	v, ok := b.Get("first")
	require.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestBundleSerializeEmpty(t *testing.T) {
	b := &Bundle{}
	assert.Equal(t, "{}", b.Serialize())

	_, ok := b.Get("anything")
	assert.False(t, ok)
}
