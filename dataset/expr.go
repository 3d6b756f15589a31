package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ============================================================================
// FILTER EXPRESSIONS — Boolean row filters
// ============================================================================
// Grammar (and binds tighter than or):
//
//	expr    := andExpr { "or" andExpr }
//	andExpr := cond { "and" cond }
//	cond    := column OP literal
//	OP      := == != > < >= <=
//	literal := number | 'quoted' | "quoted" | bareword
//
// An empty expression selects every row. Column names are matched exactly
// against the table; unknown columns are parse errors.
//
// Comparison semantics: numeric when the column is numeric and the literal
// parses as a number, string comparison on the raw cell text otherwise.
// Null cells never satisfy any condition.
// ============================================================================

type exprNode interface {
	eval(t *Table, row int) bool
}

type matchAll struct{}

func (matchAll) eval(*Table, int) bool { return true }

type orNode struct{ terms []exprNode }

func (n orNode) eval(t *Table, row int) bool {
	for _, term := range n.terms {
		if term.eval(t, row) {
			return true
		}
	}
	return false
}

type andNode struct{ terms []exprNode }

func (n andNode) eval(t *Table, row int) bool {
	for _, term := range n.terms {
		if !term.eval(t, row) {
			return false
		}
	}
	return true
}

type condNode struct {
	column  string
	op      string
	literal string

	numeric  bool // compare numerically
	numValue float64
}

func (n condNode) eval(t *Table, row int) bool {
	col := t.Column(n.column)
	if col == nil || col.null[row] {
		return false
	}

	if n.numeric {
		return compareFloat(col.nums[row], n.op, n.numValue)
	}
	return compareString(col.raw[row], n.op, n.literal)
}

func compareFloat(a float64, op string, b float64) bool {
	switch op {
	case "==":
		return a == b
	case "!=":
		return a != b
	case ">":
		return a > b
	case "<":
		return a < b
	case ">=":
		return a >= b
	case "<=":
		return a <= b
	}
	return false
}

func compareString(a, op, b string) bool {
	switch op {
	case "==":
		return a == b
	case "!=":
		return a != b
	case ">":
		return a > b
	case "<":
		return a < b
	case ">=":
		return a >= b
	case "<=":
		return a <= b
	}
	return false
}

// ============================================================================
// PARSER
// ============================================================================

// parseExpression compiles an expression against a table's schema.
func parseExpression(expression string, t *Table) (exprNode, error) {
	tokens, err := tokenize(expression)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return matchAll{}, nil
	}

	p := &exprParser{tokens: tokens, table: t}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("unexpected token %q", p.tokens[p.pos].text)
	}
	return node, nil
}

type tokenKind int

const (
	tokWord tokenKind = iota // column name, keyword, or bare literal
	tokOp
	tokString // quoted literal
	tokNumber
)

type token struct {
	kind tokenKind
	text string
}

func tokenize(expression string) ([]token, error) {
	var tokens []token
	runes := []rune(expression)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '\'' || r == '"':
			quote := r
			j := i + 1
			for j < len(runes) && runes[j] != quote {
				j++
			}
			if j >= len(runes) {
				return nil, fmt.Errorf("unterminated string literal")
			}
			tokens = append(tokens, token{kind: tokString, text: string(runes[i+1 : j])})
			i = j + 1
		case strings.ContainsRune("=!<>", r):
			j := i + 1
			if j < len(runes) && runes[j] == '=' {
				j++
			}
			op := string(runes[i:j])
			switch op {
			case "==", "!=", ">", "<", ">=", "<=":
				tokens = append(tokens, token{kind: tokOp, text: op})
			default:
				return nil, fmt.Errorf("invalid operator %q", op)
			}
			i = j
		case unicode.IsDigit(r) || r == '-' || r == '.':
			j := i + 1
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			tokens = append(tokens, token{kind: tokNumber, text: string(runes[i:j])})
			i = j
		case unicode.IsLetter(r) || r == '_':
			j := i + 1
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			tokens = append(tokens, token{kind: tokWord, text: string(runes[i:j])})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q", string(r))
		}
	}
	return tokens, nil
}

type exprParser struct {
	tokens []token
	table  *Table
	pos    int
}

func (p *exprParser) parseOr() (exprNode, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	terms := []exprNode{first}
	for p.keyword("or") {
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return orNode{terms: terms}, nil
}

func (p *exprParser) parseAnd() (exprNode, error) {
	first, err := p.parseCond()
	if err != nil {
		return nil, err
	}
	terms := []exprNode{first}
	for p.keyword("and") {
		next, err := p.parseCond()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return andNode{terms: terms}, nil
}

func (p *exprParser) parseCond() (exprNode, error) {
	if p.pos >= len(p.tokens) {
		return nil, fmt.Errorf("expected condition, got end of expression")
	}
	colTok := p.tokens[p.pos]
	if colTok.kind != tokWord {
		return nil, fmt.Errorf("expected column name, got %q", colTok.text)
	}
	col := p.table.Column(colTok.text)
	if col == nil {
		return nil, fmt.Errorf("column '%s' not found", colTok.text)
	}
	p.pos++

	if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != tokOp {
		return nil, fmt.Errorf("expected comparison operator after %q", colTok.text)
	}
	op := p.tokens[p.pos].text
	p.pos++

	if p.pos >= len(p.tokens) {
		return nil, fmt.Errorf("expected literal after operator %q", op)
	}
	lit := p.tokens[p.pos]
	if lit.kind == tokOp {
		return nil, fmt.Errorf("expected literal, got operator %q", lit.text)
	}
	p.pos++

	cond := condNode{column: colTok.text, op: op, literal: lit.text}
	if col.Kind == KindNumeric && lit.kind != tokString {
		if f, err := strconv.ParseFloat(lit.text, 64); err == nil {
			cond.numeric = true
			cond.numValue = f
		}
	}
	return cond, nil
}

// keyword consumes the next token when it matches the given keyword,
// case-insensitively.
func (p *exprParser) keyword(kw string) bool {
	if p.pos < len(p.tokens) &&
		p.tokens[p.pos].kind == tokWord &&
		strings.EqualFold(p.tokens[p.pos].text, kw) {
		p.pos++
		return true
	}
	return false
}
