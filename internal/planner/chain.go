package planner

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/boardplan/internal/column"
	"github.com/roach88/boardplan/internal/fold"
	"github.com/roach88/boardplan/internal/game"
)

// Reasons a clause degrades to a no-op.
const (
	ReasonNoOperator  = "no operator"
	ReasonMalformed   = "malformed"
	ReasonColumn      = "unknown column"
	ReasonNumber      = "bad number"
	ReasonUnsupported = "unsupported operator"
)

// Clause is one parsed "column operator value" predicate.
//
// A clause with a non-empty Degraded reason passes every game through.
type Clause struct {
	Raw      string
	Operator Operator
	Column   column.Column
	Value    string
	Degraded string

	number float64
}

// Active reports whether the clause narrows its input.
func (c Clause) Active() bool {
	return c.Degraded == ""
}

// Match reports whether g satisfies the clause. Degraded clauses match
// everything, and so does an accessor type mismatch.
func (c Clause) Match(g game.Game) bool {
	if !c.Active() {
		return true
	}
	switch c.Column.Kind() {
	case column.KindNumeric:
		have, err := column.Numeric(g, c.Column)
		if err != nil {
			return true
		}
		return c.Operator.numeric(have, c.number)
	case column.KindString:
		have, err := column.String(g, c.Column)
		if err != nil {
			return true
		}
		return c.Operator.text(have, c.Value)
	}
	return true
}

// Chain is an ordered list of clauses joined by logical AND.
type Chain struct {
	expr    string
	clauses []Clause
}

// Parse normalizes expr and parses it into a chain.
//
// Normalization folds case and removes all whitespace. Clauses are separated
// by commas; there is no escaping, so a comma inside a value splits the
// clause. Parse never fails: malformed clauses are kept with a Degraded
// reason.
func Parse(expr string) Chain {
	norm := normalize(expr)
	if norm == "" {
		return Chain{}
	}

	parts := strings.Split(norm, ",")
	clauses := make([]Clause, 0, len(parts))
	for _, raw := range parts {
		clauses = append(clauses, parseClause(raw))
	}
	return Chain{expr: norm, clauses: clauses}
}

func normalize(expr string) string {
	return strings.Join(strings.Fields(fold.String(expr)), "")
}

func parseClause(raw string) Clause {
	c := Clause{Raw: raw}

	op, ok := findOperator(raw)
	if !ok {
		c.Degraded = ReasonNoOperator
		return c
	}
	c.Operator = op

	parts := strings.Split(raw, op.Token)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		c.Degraded = ReasonMalformed
		return c
	}

	col, err := column.Parse(parts[0])
	if err != nil {
		c.Degraded = ReasonColumn
		return c
	}
	c.Column = col
	c.Value = parts[1]

	switch col.Kind() {
	case column.KindNumeric:
		if !op.Numeric() {
			c.Degraded = ReasonUnsupported
			return c
		}
		n, err := parseNumber(c.Value)
		if err != nil {
			c.Degraded = ReasonNumber
			return c
		}
		c.number = n
	case column.KindString:
		if !op.Text() {
			c.Degraded = ReasonUnsupported
			return c
		}
	}
	return c
}

// parseNumber accepts finite decimal or hex floats. The value is already
// case-folded, so NaN and infinities are never valid, and digit separators
// are not numbers either.
func parseNumber(value string) (float64, error) {
	if strings.Contains(value, "_") {
		return 0, strconv.ErrSyntax
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// Expr returns the normalized expression the chain was parsed from.
func (ch Chain) Expr() string {
	return ch.expr
}

// Empty reports whether the chain has no clauses at all.
func (ch Chain) Empty() bool {
	return len(ch.clauses) == 0
}

// Clauses returns the parsed clauses in evaluation order.
func (ch Chain) Clauses() []Clause {
	return slices.Clone(ch.clauses)
}

// Degraded returns the clauses that pass everything through.
func (ch Chain) Degraded() []Clause {
	var out []Clause
	for _, c := range ch.clauses {
		if !c.Active() {
			out = append(out, c)
		}
	}
	return out
}

// Apply narrows games clause by clause, left to right. The input slice is
// not modified; relative order is preserved.
func (ch Chain) Apply(games []game.Game) []game.Game {
	out := slices.Clone(games)
	for _, c := range ch.clauses {
		if !c.Active() {
			continue
		}
		out = slices.DeleteFunc(out, func(g game.Game) bool { return !c.Match(g) })
	}
	return out
}
