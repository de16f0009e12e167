package column

import (
	"cmp"
	"strconv"

	"github.com/roach88/boardplan/internal/fold"
	"github.com/roach88/boardplan/internal/game"
)

// Compare returns a total order over games for col.
//
// The string column orders by case-folded name. Numeric columns order by the
// float64 projection. A nil column falls back to Default.
func Compare(col Column) func(a, b game.Game) int {
	if col == nil {
		col = Default()
	}
	switch c := col.(type) {
	case *stringColumn:
		return func(a, b game.Game) int {
			return fold.Compare(c.get(a), c.get(b))
		}
	case *numericColumn:
		return func(a, b game.Game) int {
			return cmp.Compare(c.get(a), c.get(b))
		}
	}
	// Unreachable: Column is sealed.
	return func(a, b game.Game) int { return fold.Compare(a.Name, b.Name) }
}

// Reverse flips an ordering returned by Compare.
func Reverse(compare func(a, b game.Game) int) func(a, b game.Game) int {
	return func(a, b game.Game) int { return compare(b, a) }
}

// Describe renders a game for a listing sorted on col: the bare name for the
// NAME column, otherwise the name followed by the column value.
//
//	Describe(catan, Rating) == "Catan (4.50)"
//	Describe(catan, Rank)   == "Catan (100)"
func Describe(g game.Game, col Column) string {
	c, ok := col.(*numericColumn)
	if !ok {
		return g.Name
	}
	v := c.get(g)
	prec := 0
	if c.fraction {
		prec = 2
	}
	return g.Name + " (" + strconv.FormatFloat(v, 'f', prec, 64) + ")"
}
