// Package column defines the closed set of game columns used for filtering,
// sorting and display.
//
// SEALED INTERFACE:
//
// Column is sealed with a marker method. Only two variants exist:
//   - numeric columns (ID, RATING, DIFFICULTY, RANK, MIN_PLAYERS, MAX_PLAYERS,
//     MIN_TIME, MAX_TIME, YEAR) project a game onto a float64;
//   - the string column (NAME) projects a game onto its name.
//
// Each variant carries its own accessor, so callers dispatch with a type
// switch on the variant (or on Kind) instead of inspecting game fields:
//
//	switch col.Kind() {
//	case column.KindNumeric:
//	    v, _ := column.Numeric(g, col)
//	case column.KindString:
//	    s, _ := column.String(g, col)
//	}
//
// The package-level values are the only Column instances. They are pointers
// so Column values compare with ==.
package column

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/boardplan/internal/fold"
	"github.com/roach88/boardplan/internal/game"
)

// Kind tags a column as numeric or string.
type Kind int

const (
	KindNumeric Kind = iota
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrUnknownColumn is returned by Parse for tokens that name no column.
var ErrUnknownColumn = errors.New("unknown column")

// ErrTypeMismatch is returned when a numeric accessor is used on the string
// column or the other way around.
var ErrTypeMismatch = errors.New("column type mismatch")

// Column identifies one attribute of a game.
type Column interface {
	// Name returns the canonical token, e.g. "MIN_PLAYERS".
	Name() string
	// Kind reports whether the column is numeric or string.
	Kind() Kind

	column() // Marker method - seals interface to this package
}

type numericColumn struct {
	name     string
	fraction bool // rendered with two decimals
	get      func(game.Game) float64
}

func (c *numericColumn) Name() string   { return c.name }
func (c *numericColumn) Kind() Kind     { return KindNumeric }
func (c *numericColumn) String() string { return c.name }
func (*numericColumn) column()          {}

type stringColumn struct {
	name string
	get  func(game.Game) string
}

func (c *stringColumn) Name() string   { return c.name }
func (c *stringColumn) Kind() Kind     { return KindString }
func (c *stringColumn) String() string { return c.name }
func (*stringColumn) column()          {}

// The columns. Declaration order is the order returned by All.
var (
	Name Column = &stringColumn{name: "NAME", get: func(g game.Game) string { return g.Name }}

	ID         Column = &numericColumn{name: "ID", get: func(g game.Game) float64 { return float64(g.ID) }}
	Rating     Column = &numericColumn{name: "RATING", fraction: true, get: func(g game.Game) float64 { return g.Rating }}
	Difficulty Column = &numericColumn{name: "DIFFICULTY", fraction: true, get: func(g game.Game) float64 { return g.Difficulty }}
	Rank       Column = &numericColumn{name: "RANK", get: func(g game.Game) float64 { return float64(g.Rank) }}
	MinPlayers Column = &numericColumn{name: "MIN_PLAYERS", get: func(g game.Game) float64 { return float64(g.MinPlayers) }}
	MaxPlayers Column = &numericColumn{name: "MAX_PLAYERS", get: func(g game.Game) float64 { return float64(g.MaxPlayers) }}
	MinTime    Column = &numericColumn{name: "MIN_TIME", get: func(g game.Game) float64 { return float64(g.MinPlayTime) }}
	MaxTime    Column = &numericColumn{name: "MAX_TIME", get: func(g game.Game) float64 { return float64(g.MaxPlayTime) }}
	Year       Column = &numericColumn{name: "YEAR", get: func(g game.Game) float64 { return float64(g.YearPublished) }}
)

var all = []Column{Name, ID, Rating, Difficulty, Rank, MinPlayers, MaxPlayers, MinTime, MaxTime, Year}

// aliases maps folded tokens to columns. The second token of most entries is
// the header used by the BoardGameGeek CSV export.
var aliases = map[string]Column{
	"name":          Name,
	"objectname":    Name,
	"id":            ID,
	"rating":        Rating,
	"average":       Rating,
	"difficulty":    Difficulty,
	"avgweight":     Difficulty,
	"rank":          Rank,
	"min_players":   MinPlayers,
	"minplayers":    MinPlayers,
	"max_players":   MaxPlayers,
	"maxplayers":    MaxPlayers,
	"min_time":      MinTime,
	"mintime":       MinTime,
	"minplaytime":   MinTime,
	"max_time":      MaxTime,
	"maxtime":       MaxTime,
	"maxplaytime":   MaxTime,
	"year":          Year,
	"yearpublished": Year,
}

// All returns every column in declaration order.
func All() []Column {
	out := make([]Column, len(all))
	copy(out, all)
	return out
}

// Default returns the column used when no sort column is given.
func Default() Column {
	return Name
}

// Parse resolves a column token. Matching is case-insensitive and ignores
// surrounding whitespace.
func Parse(token string) (Column, error) {
	key := fold.String(strings.TrimSpace(token))
	if col, ok := aliases[key]; ok {
		return col, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, token)
}

// Numeric returns the numeric projection of g for col.
// Integer attributes are widened to float64.
func Numeric(g game.Game, col Column) (float64, error) {
	switch c := col.(type) {
	case *numericColumn:
		return c.get(g), nil
	default:
		return 0, fmt.Errorf("%w: %s is not numeric", ErrTypeMismatch, nameOf(col))
	}
}

// String returns the string projection of g for col.
func String(g game.Game, col Column) (string, error) {
	switch c := col.(type) {
	case *stringColumn:
		return c.get(g), nil
	default:
		return "", fmt.Errorf("%w: %s is not a string column", ErrTypeMismatch, nameOf(col))
	}
}

func nameOf(col Column) string {
	if col == nil {
		return "<nil>"
	}
	return col.Name()
}
