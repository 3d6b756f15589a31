package classify

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/askcsv-org/askcsv/dataset"
	"github.com/askcsv-org/askcsv/llm"
)

// ============================================================================
// INTENT CLASSIFIER — Three-stage classification pipeline
// ============================================================================
// Stage 1: question-type routing  (question -> intent label)
// Stage 2: column reasoning       (question + type + columns -> relevant columns)
// Stage 3: tool selection         (question + type + columns -> operation + params)
//
// Each stage makes exactly one model call and falls back to a safe default
// when the call fails or the output is unparseable. Classification NEVER
// aborts the pipeline — the worst case is a schema-describe decision.
// ============================================================================

// Classifier runs the three-stage intent classification.
type Classifier struct {
	client llm.Client
	log    *zap.SugaredLogger
}

// New creates a Classifier. A nil logger disables logging.
func New(client llm.Client, log *zap.SugaredLogger) *Classifier {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Classifier{client: client, log: log}
}

// Classify runs all three stages against a question and the loaded table.
// It always returns a usable decision.
func (c *Classifier) Classify(question string, table *dataset.Table) Decision {
	questionType := c.routeQuestionType(question)
	analysis := c.analyzeColumns(question, questionType, table.ColumnNames())
	operation := c.selectOperation(question, questionType, analysis, table)

	c.log.Infow("classified question",
		"intent", questionType,
		"tool", operation.Kind.String(),
		"columns", analysis.PrimaryColumns,
	)

	return Decision{
		Category:   questionType,
		Operations: []OperationRequest{operation},
		Confidence: 0.9,
		Rationale:  analysis.Reasoning,
	}
}

// ============================================================================
// STAGE 1 — QUESTION-TYPE ROUTING
// ============================================================================

// routeQuestionType maps the question onto the closed intent set.
// Call failure or an out-of-set label defaults to SUMMARY.
func (c *Classifier) routeQuestionType(question string) Intent {
	response, err := c.client.Chat(buildQuestionTypePrompt(question))
	if err != nil {
		c.log.Warnw("question type routing failed, defaulting to SUMMARY", "error", err)
		return IntentSummary
	}

	label := strings.ToUpper(strings.TrimSpace(response))
	if intent, ok := ParseIntent(label); ok {
		return intent
	}

	c.log.Warnw("question type outside closed set, defaulting to SUMMARY", "label", truncate(label, 40))
	return IntentSummary
}

// ============================================================================
// STAGE 2 — COLUMN REASONING
// ============================================================================

// analyzeColumns identifies the columns relevant to the question.
// Fallback: the first available column, typed as text.
func (c *Classifier) analyzeColumns(question string, questionType Intent, columns []string) ColumnAnalysis {
	fallback := ColumnAnalysis{Reasoning: "fallback: first available column"}
	if len(columns) > 0 {
		fallback.PrimaryColumns = []string{columns[0]}
		fallback.ColumnTypes = map[string]string{columns[0]: "text"}
	}

	response, err := c.client.Chat(buildColumnReasonerPrompt(question, questionType, columns))
	if err != nil {
		c.log.Warnw("column reasoning failed", "error", err)
		return fallback
	}

	var analysis ColumnAnalysis
	if err := decodeObject(response, &analysis); err != nil {
		c.log.Warnw("column reasoning unparseable", "error", err)
		return fallback
	}
	if len(analysis.PrimaryColumns) == 0 {
		return fallback
	}
	return analysis
}

// ============================================================================
// STAGE 3 — TOOL SELECTION
// ============================================================================

// selectOperation picks the operation and parameters. Fallback: a
// type-specific default built from the table's schema, so the pipeline
// always has something executable.
func (c *Classifier) selectOperation(question string, questionType Intent, analysis ColumnAnalysis, table *dataset.Table) OperationRequest {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		analysisJSON = []byte("{}")
	}

	response, err := c.client.Chat(buildToolSelectorPrompt(question, questionType, string(analysisJSON)))
	if err != nil {
		c.log.Warnw("tool selection failed", "error", err)
		return defaultOperation(questionType, table)
	}

	var selection toolSelection
	if err := decodeObject(response, &selection); err != nil {
		c.log.Warnw("tool selection unparseable", "error", err)
		return defaultOperation(questionType, table)
	}

	kind, ok := ParseOperationKind(selection.Tool)
	if !ok {
		c.log.Warnw("tool selection outside closed set", "tool", selection.Tool)
		return defaultOperation(questionType, table)
	}

	return OperationRequest{
		Kind:   kind,
		Params: selection.stringParams(),
		Reason: selection.Reasoning,
	}
}

// defaultOperation builds the type-specific fallback binding from the live
// schema rather than hardcoded column names, so it works on any dataset.
func defaultOperation(questionType Intent, table *dataset.Table) OperationRequest {
	firstText := firstOf(table.TextColumns(), table.ColumnNames())
	firstNumeric := firstOf(table.NumericColumns(), nil)

	switch questionType {
	case IntentSearch:
		return OperationRequest{
			Kind:   OpSearchSubstring,
			Params: map[string]string{"column": firstText, "term": ""},
			Reason: "fallback: search first text column",
		}
	case IntentFilter:
		// An empty expression selects every row.
		return OperationRequest{
			Kind:   OpFilterExpression,
			Params: map[string]string{"query": ""},
			Reason: "fallback: match-all filter",
		}
	case IntentAggregate:
		if firstNumeric != "" {
			return OperationRequest{
				Kind: OpGroupAggregate,
				Params: map[string]string{
					"group_col": firstText,
					"agg_col":   firstNumeric,
					"function":  "mean",
				},
				Reason: "fallback: mean of first numeric column by first text column",
			}
		}
	case IntentUniqueValues:
		return OperationRequest{
			Kind:   OpUniqueValues,
			Params: map[string]string{"column": firstText},
			Reason: "fallback: unique values of first text column",
		}
	}

	// SUMMARY, and any case with nothing better to bind.
	return OperationRequest{
		Kind:   OpDescribeSchema,
		Params: map[string]string{},
		Reason: "fallback: schema describe",
	}
}

func firstOf(preferred, alternative []string) string {
	if len(preferred) > 0 {
		return preferred[0]
	}
	if len(alternative) > 0 {
		return alternative[0]
	}
	return ""
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
