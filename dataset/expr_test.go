package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exprTable(t *testing.T) *Table {
	t.Helper()
	table, err := Parse([]byte("name,score,grade\nalice,10,A\nbob,20,B\ncarol,30,A\n"))
	require.NoError(t, err)
	return table
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		expression string
		want       []token
	}{
		{"score > 10", []token{
			{tokWord, "score"}, {tokOp, ">"}, {tokNumber, "10"},
		}},
		{"name == 'alice'", []token{
			{tokWord, "name"}, {tokOp, "=="}, {tokString, "alice"},
		}},
		{`grade != "B"`, []token{
			{tokWord, "grade"}, {tokOp, "!="}, {tokString, "B"},
		}},
		{"score >= -1.5", []token{
			{tokWord, "score"}, {tokOp, ">="}, {tokNumber, "-1.5"},
		}},
		{"", nil},
	}

	for _, tt := range tests {
		got, err := tokenize(tt.expression)
		require.NoError(t, err, "expression %q", tt.expression)
		assert.Equal(t, tt.want, got, "expression %q", tt.expression)
	}
}

func TestTokenizeErrors(t *testing.T) {
	for _, expression := range []string{"name == 'open", "score =! 3", "score @ 3"} {
		_, err := tokenize(expression)
		assert.Error(t, err, "expression %q", expression)
	}
}

func TestParseExpressionEmptyMatchesAll(t *testing.T) {
	table := exprTable(t)

	node, err := parseExpression("   ", table)
	require.NoError(t, err)
	assert.IsType(t, matchAll{}, node)
}

func TestParseExpressionPrecedence(t *testing.T) {
	table := exprTable(t)

	// and binds tighter than or: rows match when grade is A, or when the
	// name is bob AND the score exceeds 15.
	node, err := parseExpression("grade == 'A' or name == 'bob' and score > 15", table)
	require.NoError(t, err)

	var matched []int
	for row := 0; row < table.RowCount(); row++ {
		if node.eval(table, row) {
			matched = append(matched, row)
		}
	}
	assert.Equal(t, []int{0, 1, 2}, matched)
}

func TestParseExpressionKeywordsCaseInsensitive(t *testing.T) {
	table := exprTable(t)

	node, err := parseExpression("score > 5 AND score < 25", table)
	require.NoError(t, err)

	count := 0
	for row := 0; row < table.RowCount(); row++ {
		if node.eval(table, row) {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestParseExpressionNumericVsString(t *testing.T) {
	table := exprTable(t)

	// Quoted literal against a numeric column falls back to raw text
	// comparison.
	node, err := parseExpression("score == '10'", table)
	require.NoError(t, err)
	assert.True(t, node.eval(table, 0))
	assert.False(t, node.eval(table, 1))
}

func TestParseExpressionUnknownColumn(t *testing.T) {
	table := exprTable(t)

	_, err := parseExpression("ghost > 1", table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column 'ghost' not found")
}

func TestCondSkipsNullCells(t *testing.T) {
	table, err := Parse([]byte("v,tag\n1,a\n,b\n3,c\n"))
	require.NoError(t, err)

	node, err := parseExpression("v != 2", table)
	require.NoError(t, err)

	count := 0
	for row := 0; row < table.RowCount(); row++ {
		if node.eval(table, row) {
			count++
		}
	}
	// The null row never satisfies any condition.
	assert.Equal(t, 2, count)
}
