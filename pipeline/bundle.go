package pipeline

import (
	"bytes"
	"encoding/json"
)

// ============================================================================
// RESULTS BUNDLE — Ordered collection of operation outcomes
// ============================================================================
// Keys are operation-derived labels ("mean_Total_by_year",
// "unique_values_city", ...), unique within the bundle. Insertion order is
// preserved through serialization so the synthesizer prompt and test
// output are reproducible.
// ============================================================================

// Entry is one keyed operation outcome.
type Entry struct {
	Key     string
	Payload any
}

// Bundle is the ordered results collection handed to the synthesizer.
type Bundle struct {
	entries []Entry
}

// Add stores a payload under key, replacing an existing entry in place.
func (b *Bundle) Add(key string, payload any) {
	for i := range b.entries {
		if b.entries[i].Key == key {
			b.entries[i].Payload = payload
			return
		}
	}
	b.entries = append(b.entries, Entry{Key: key, Payload: payload})
}

// Len returns the number of entries.
func (b *Bundle) Len() int { return len(b.entries) }

// Keys returns entry keys in insertion order.
func (b *Bundle) Keys() []string {
	keys := make([]string, len(b.entries))
	for i, e := range b.entries {
		keys[i] = e.Key
	}
	return keys
}

// Get returns the payload stored under key.
func (b *Bundle) Get(key string) (any, bool) {
	for _, e := range b.entries {
		if e.Key == key {
			return e.Payload, true
		}
	}
	return nil, false
}

// MarshalJSON encodes the bundle as a JSON object in insertion order.
func (b *Bundle) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range b.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		payload, err := json.Marshal(e.Payload)
		if err != nil {
			return nil, err
		}
		buf.Write(payload)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Serialize renders the bundle as indented JSON for prompt embedding.
func (b *Bundle) Serialize() string {
	out, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out)
}
