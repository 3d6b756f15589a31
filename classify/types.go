package classify

// ============================================================================
// CLASSIFIER TYPES — Closed intent set and operation kinds
// ============================================================================
// The model speaks in tool-name strings; everything downstream speaks in
// OperationKind. Unknown names are rejected at parse time and trigger the
// stage fallback — there is no string dispatch past this package.
// ============================================================================

// Intent is the high-level category of an analytic request.
type Intent string

const (
	IntentSummary      Intent = "SUMMARY"
	IntentSearch       Intent = "SEARCH"
	IntentFilter       Intent = "FILTER"
	IntentAggregate    Intent = "AGGREGATE"
	IntentUniqueValues Intent = "UNIQUE_VALUES"
)

// Intents is the closed set of valid intent labels.
var Intents = []Intent{IntentSummary, IntentSearch, IntentFilter, IntentAggregate, IntentUniqueValues}

// ParseIntent validates a label against the closed set.
func ParseIntent(label string) (Intent, bool) {
	for _, intent := range Intents {
		if string(intent) == label {
			return intent, true
		}
	}
	return "", false
}

// OperationKind identifies one of the six data operations.
type OperationKind int

const (
	OpDescribeSchema OperationKind = iota
	OpSummaryStats
	OpSearchSubstring
	OpUniqueValues
	OpFilterExpression
	OpGroupAggregate
)

// toolNames maps the tool identifiers the model is prompted with onto
// operation kinds. Anything outside this table is an invalid selection.
var toolNames = map[string]OperationKind{
	"get_info":            OpDescribeSchema,
	"get_summary_stats":   OpSummaryStats,
	"search_text":         OpSearchSubstring,
	"get_unique_values":   OpUniqueValues,
	"query_data":          OpFilterExpression,
	"group_and_aggregate": OpGroupAggregate,
}

func (k OperationKind) String() string {
	for name, kind := range toolNames {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// ParseOperationKind resolves a tool name to its kind.
func ParseOperationKind(tool string) (OperationKind, bool) {
	kind, ok := toolNames[tool]
	return kind, ok
}

// OperationRequest is one chosen operation with its raw parameters.
// Column-valued parameters are unbound here — the dispatcher resolves them
// against the live table.
type OperationRequest struct {
	Kind   OperationKind     `json:"kind"`
	Params map[string]string `json:"parameters"`
	Reason string            `json:"reason,omitempty"`
}

// Decision is the classifier's structured output for one question.
type Decision struct {
	Category   Intent             `json:"intent"`
	Operations []OperationRequest `json:"operations"`
	Confidence float64            `json:"confidence"`
	Rationale  string             `json:"rationale,omitempty"`
}

// ColumnAnalysis is the column-reasoning stage output.
type ColumnAnalysis struct {
	PrimaryColumns []string          `json:"primary_columns"`
	ColumnTypes    map[string]string `json:"column_types"`
	Reasoning      string            `json:"reasoning"`
}
