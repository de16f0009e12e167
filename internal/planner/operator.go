package planner

import (
	"strings"

	"github.com/roach88/boardplan/internal/fold"
)

// Operator is one comparison of the filter language.
//
// An operator evaluates numeric columns, string columns, or both. A nil
// evaluator means the operator has no meaning for that column kind; clauses
// using it degrade to a no-op.
type Operator struct {
	Token   string
	numeric func(have, want float64) bool
	text    func(have, want string) bool
}

// Numeric reports whether the operator applies to numeric columns.
func (o Operator) Numeric() bool { return o.numeric != nil }

// Text reports whether the operator applies to the string column.
func (o Operator) Text() bool { return o.text != nil }

// operators is probed in order and the first token found in a clause wins.
// Two-character tokens must come before their one-character prefixes, or
// "rating>=5" would split on ">" into "rating" and "=5".
var operators = []Operator{
	{
		Token:   "==",
		numeric: func(have, want float64) bool { return have == want },
		text:    fold.Equal,
	},
	{
		Token:   "!=",
		numeric: func(have, want float64) bool { return have != want },
		text:    func(have, want string) bool { return !fold.Equal(have, want) },
	},
	{
		Token:   ">=",
		numeric: func(have, want float64) bool { return have >= want },
		text:    func(have, want string) bool { return fold.Compare(have, want) >= 0 },
	},
	{
		Token:   "<=",
		numeric: func(have, want float64) bool { return have <= want },
		text:    func(have, want string) bool { return fold.Compare(have, want) <= 0 },
	},
	{
		Token: "~=",
		text:  fold.Contains,
	},
	{
		Token:   ">",
		numeric: func(have, want float64) bool { return have > want },
		text:    func(have, want string) bool { return fold.Compare(have, want) > 0 },
	},
	{
		Token:   "<",
		numeric: func(have, want float64) bool { return have < want },
		text:    func(have, want string) bool { return fold.Compare(have, want) < 0 },
	},
}

// Operators returns the operator table in probe order.
func Operators() []Operator {
	out := make([]Operator, len(operators))
	copy(out, operators)
	return out
}

// findOperator returns the first operator of the table present in clause.
func findOperator(clause string) (Operator, bool) {
	for _, op := range operators {
		if strings.Contains(clause, op.Token) {
			return op, true
		}
	}
	return Operator{}, false
}
