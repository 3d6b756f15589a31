package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/askcsv-org/askcsv/classify"
	"github.com/askcsv-org/askcsv/dataset"
)

// ============================================================================
// OPERATION DISPATCHER — Decision → Results Bundle
// ============================================================================
// For each requested operation: bind column parameters through the Column
// Binder, invoke the matching data operation, and store the payload under
// a deterministic human-readable key.
//
// An unresolved column usually means the model hallucinated a name, so the
// operation is skipped silently — no bundle entry, no error. Operation
// failures (bad expression, unknown aggregation) DO land in the bundle as
// error payloads; a failed operation never stops the loop. An empty bundle
// falls back to a schema-describe entry so the synthesizer always has
// facts to work from.
// ============================================================================

// operationHandler executes one operation kind against a table.
// ok=false means the operation was skipped (unbindable parameters).
type operationHandler func(t *dataset.Table, params map[string]string) (key string, payload any, ok bool)

// handlers is the closed dispatch table. Kinds outside it are rejected.
var handlers = map[classify.OperationKind]operationHandler{
	classify.OpDescribeSchema: func(t *dataset.Table, _ map[string]string) (string, any, bool) {
		return "dataset_info", t.DescribeSchema(), true
	},

	classify.OpSummaryStats: func(t *dataset.Table, _ map[string]string) (string, any, bool) {
		return "summary_stats", t.SummaryStatistics(), true
	},

	classify.OpSearchSubstring: func(t *dataset.Table, params map[string]string) (string, any, bool) {
		column, ok := ResolveColumn(params["column"], t.ColumnNames())
		if !ok {
			return "", nil, false
		}
		term := params["term"]
		key := fmt.Sprintf("search_%s_in_%s", term, column)
		return key, t.SearchSubstring(column, term), true
	},

	classify.OpUniqueValues: func(t *dataset.Table, params map[string]string) (string, any, bool) {
		column, ok := ResolveColumn(params["column"], t.ColumnNames())
		if !ok {
			return "", nil, false
		}
		key := fmt.Sprintf("unique_values_%s", column)
		return key, t.UniqueValues(column), true
	},

	classify.OpFilterExpression: func(t *dataset.Table, params map[string]string) (string, any, bool) {
		// No column binding here — the expression names columns itself
		// and the engine reports unknown ones as a query error payload.
		return "filter_query", t.ExecuteFilterExpression(params["query"]), true
	},

	classify.OpGroupAggregate: func(t *dataset.Table, params map[string]string) (string, any, bool) {
		groupCol, okGroup := ResolveColumn(params["group_col"], t.ColumnNames())
		aggCol, okAgg := ResolveColumn(params["agg_col"], t.ColumnNames())
		if !okGroup || !okAgg {
			return "", nil, false
		}
		fn := params["function"]
		if fn == "" {
			fn = "mean"
		}
		key := fmt.Sprintf("%s_%s_by_%s", fn, aggCol, groupCol)
		return key, t.GroupAndAggregate(groupCol, aggCol, fn), true
	},
}

// Dispatch executes every operation named in the decision and collects the
// outcomes into a results bundle.
func Dispatch(decision classify.Decision, table *dataset.Table, log *zap.SugaredLogger) *Bundle {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	bundle := &Bundle{}
	for _, op := range decision.Operations {
		handler, known := handlers[op.Kind]
		if !known {
			log.Warnw("rejecting unknown operation kind", "kind", op.Kind)
			continue
		}

		key, payload, ok := handler(table, op.Params)
		if !ok {
			log.Infow("skipping operation with unresolved columns",
				"tool", op.Kind.String(), "params", op.Params)
			continue
		}
		bundle.Add(key, payload)
	}

	if bundle.Len() == 0 {
		bundle.Add("fallback_info", table.DescribeSchema())
	}

	return bundle
}
