package classify

import (
	"fmt"
	"strings"
)

// ============================================================================
// STAGE PROMPTS
// ============================================================================
// One prompt per classifier stage. All three instruct the model to answer
// in a machine-checkable shape (a single word, or a single JSON object) so
// the parse/fallback contract in classifier.go stays simple.
// ============================================================================

const questionTypePrompt = `You are a question type classifier for data analysis queries.

Your job is to classify the user's question into ONE of these high-level categories:

1. SUMMARY - Overview, basic info, dataset description
2. SEARCH - Looking for specific entities, names, or text values
3. FILTER - Finding records that meet specific conditions
4. AGGREGATE - Calculations, totals, averages, comparisons across groups
5. UNIQUE_VALUES - Listing distinct values in columns

QUESTION: %q

Think step by step:
1. What is the user ultimately trying to accomplish?
2. Are they looking for specific records, or summary statistics?
3. Do they mention specific entities to search for?
4. Are they asking for calculations or comparisons?

Respond with exactly one word: SUMMARY, SEARCH, FILTER, AGGREGATE, or UNIQUE_VALUES

Examples:
- "What's in this dataset?" -> SUMMARY
- "Show me data for Acme Corp" -> SEARCH
- "Find records with a score above 80" -> FILTER
- "What's the average amount by year?" -> AGGREGATE
- "What categories are available in the data?" -> UNIQUE_VALUES`

const columnReasonerPrompt = `You are a column analysis specialist for tabular data.

Your job is to identify which columns are relevant to the user's question and classify their types.

QUESTION: %q
QUESTION_TYPE: %s
AVAILABLE_COLUMNS: %s

Analyze the question and identify:
1. Which columns are mentioned or implied
2. What type each column likely is (categorical, numeric, text)
3. What the user wants to do with each column

Respond with a single JSON object:
{
    "primary_columns": ["column1", "column2"],
    "column_types": {
        "column1": "categorical|numeric|text",
        "column2": "categorical|numeric|text"
    },
    "reasoning": "Brief explanation of column selection"
}`

const toolSelectorPrompt = `You are a tool selection expert for data analysis.

Your job is to select the best tool and parameters based on the question type and column analysis.

QUESTION: %q
QUESTION_TYPE: %s
COLUMN_ANALYSIS: %s

Available tools:
1. get_info() - Dataset overview: shape, columns, types
2. get_summary_stats() - Statistics for numeric columns
3. search_text(column, term) - Find text in a column
4. get_unique_values(column) - List distinct values in a column
5. query_data(query) - Filter rows with a boolean expression, e.g. "year == 2020 and score > 80"
6. group_and_aggregate(group_col, agg_col, function) - Group rows and aggregate (mean, sum, min, max, count, median)

Select the SINGLE best tool for this question.

Respond with a single JSON object:
{
    "tool": "tool_name",
    "parameters": {
        "param1": "value1",
        "param2": "value2"
    },
    "reasoning": "Why this tool fits the question type and columns"
}

Tool selection guide:
- SUMMARY -> get_info() or get_summary_stats()
- SEARCH + text column -> search_text(column, term)
- FILTER + conditions -> query_data(expression)
- AGGREGATE + group/agg columns -> group_and_aggregate(group_col, agg_col, function)
- UNIQUE_VALUES + specific column -> get_unique_values(column)`

func buildQuestionTypePrompt(question string) string {
	return fmt.Sprintf(questionTypePrompt, question)
}

func buildColumnReasonerPrompt(question string, questionType Intent, columns []string) string {
	return fmt.Sprintf(columnReasonerPrompt, question, questionType, strings.Join(columns, ", "))
}

func buildToolSelectorPrompt(question string, questionType Intent, analysisJSON string) string {
	return fmt.Sprintf(toolSelectorPrompt, question, questionType, analysisJSON)
}
