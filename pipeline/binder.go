package pipeline

import "strings"

// ============================================================================
// COLUMN BINDER — Resolves model column references to real columns
// ============================================================================
// The classifier's column names come from a language model and are often
// close-but-wrong ("university" for "university_name"). Binding is
// deliberately permissive:
//
//	1. exact case-sensitive match
//	2. first column (in declared order) where the candidate is a
//	   case-insensitive substring of the column name, or vice versa
//	3. otherwise unresolved
//
// Ties break on column declaration order — the FIRST qualifying column
// wins, not the best one. Unresolved references make the dispatcher skip
// the operation; they are never bound to an arbitrary column.
// ============================================================================

// ResolveColumn binds a candidate column reference against the available
// columns. Returns the actual column name and whether binding succeeded.
func ResolveColumn(candidate string, columns []string) (string, bool) {
	if candidate == "" {
		return "", false
	}

	for _, col := range columns {
		if col == candidate {
			return col, true
		}
	}

	lower := strings.ToLower(candidate)
	for _, col := range columns {
		colLower := strings.ToLower(col)
		if strings.Contains(colLower, lower) || strings.Contains(lower, colLower) {
			return col, true
		}
	}

	return "", false
}
