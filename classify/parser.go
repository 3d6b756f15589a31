package classify

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ============================================================================
// RESPONSE PARSER — Extracts structured payloads from model output
// ============================================================================
// Model responses are free text expected to contain one JSON object,
// possibly wrapped in prose or a markdown fence. The contract: take the
// substring between the first '{' and the last '}' and decode it. Decode
// failure triggers the calling stage's fallback, never an error upward.
// ============================================================================

// extractObject returns the substring between the first '{' and the last
// '}' of a response.
func extractObject(response string) (string, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return response[start : end+1], nil
}

// decodeObject extracts and unmarshals the response's JSON object into v.
func decodeObject(response string, v any) error {
	obj, err := extractObject(response)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(obj), v); err != nil {
		return fmt.Errorf("failed to decode response object: %w", err)
	}
	return nil
}

// toolSelection is the raw tool-selector stage output. Parameters may come
// back from the model as numbers or booleans, so they are accepted as any
// and coerced to strings.
type toolSelection struct {
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters"`
	Reasoning  string         `json:"reasoning"`
}

func (s toolSelection) stringParams() map[string]string {
	params := make(map[string]string, len(s.Parameters))
	for k, v := range s.Parameters {
		switch val := v.(type) {
		case string:
			params[k] = val
		case float64:
			if val == float64(int64(val)) {
				params[k] = fmt.Sprintf("%d", int64(val))
			} else {
				params[k] = fmt.Sprintf("%g", val)
			}
		case bool:
			params[k] = fmt.Sprintf("%t", val)
		case nil:
			// dropped
		default:
			params[k] = fmt.Sprintf("%v", val)
		}
	}
	return params
}
