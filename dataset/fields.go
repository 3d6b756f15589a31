package dataset

import (
	"bytes"
	"encoding/json"
)

// ============================================================================
// FIELDS — Ordered key→value mapping
// ============================================================================
// Go maps randomize iteration and encoding/json sorts map keys, so every
// payload that must preserve column order (rows, dtypes, null counts, stats)
// is built from Fields instead of a map. Marshals to a JSON object in
// insertion order.
// ============================================================================

// Field is one key/value pair of an ordered mapping.
type Field struct {
	Key   string
	Value any
}

// Fields is an ordered mapping that marshals to a JSON object preserving
// insertion order.
type Fields []Field

// Set appends a key/value pair, replacing an existing key in place.
func (f Fields) Set(key string, value any) Fields {
	for i := range f {
		if f[i].Key == key {
			f[i].Value = value
			return f
		}
	}
	return append(f, Field{Key: key, Value: value})
}

// Get returns the value for key and whether it was present.
func (f Fields) Get(key string) (any, bool) {
	for i := range f {
		if f[i].Key == key {
			return f[i].Value, true
		}
	}
	return nil, false
}

// MarshalJSON encodes the mapping as a JSON object in insertion order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
