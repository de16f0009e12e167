// Package planner narrows and sorts a collection of games with a small
// filter language.
//
// FILTER LANGUAGE:
//
//	expr     := "" | clause ("," clause)*
//	clause   := column operator value
//	operator := "==" | "!=" | ">=" | "<=" | "~=" | ">" | "<"
//
// Clauses are joined by AND. Whitespace and case are ignored. Numeric
// columns compare numerically; the NAME column compares case-insensitively
// and additionally supports "~=" (substring containment).
//
// Examples:
//
//	name ~= go
//	minplayers >= 2, maxplayers <= 10
//	rating > 8.5, year < 2005
//
// DEGRADATION:
//
// The language never reports syntax errors. Each clause either narrows the
// games correctly or becomes a no-op (no operator, unknown column, value that
// is not a number, operator without meaning for the column). A partially
// malformed expression still applies its well-formed clauses. Degraded
// clauses are logged at debug level.
//
// STATE:
//
// Parse and Chain.Apply are pure. Planner adds a working set: every Filter
// call narrows the result of the previous call, so narrowing is cumulative
// until Reset restores the full collection.
//
// A Planner is not safe for concurrent use.
package planner

import (
	"log/slog"
	"slices"

	"github.com/roach88/boardplan/internal/column"
	"github.com/roach88/boardplan/internal/game"
)

// Planner filters a fixed game collection with cumulative narrowing.
type Planner struct {
	games   []game.Game
	working []game.Game
	logger  *slog.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logger used for filter diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a planner over games. Games with the same identity are
// collapsed to the first occurrence. The slice is copied.
func New(games []game.Game, opts ...Option) *Planner {
	p := &Planner{
		games:  game.Dedupe(games),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.Reset()
	return p
}

// Filter narrows the working set with expr, sorts it on sortOn and returns
// the result, which also becomes the new working set.
//
// An empty expr only sorts. A nil sortOn sorts by name. Games that tie on
// the sort column keep their working-set order.
func (p *Planner) Filter(expr string, sortOn column.Column, ascending bool) []game.Game {
	chain := Parse(expr)
	for _, c := range chain.Degraded() {
		p.logger.Debug("filter clause ignored", "clause", c.Raw, "reason", c.Degraded)
	}

	before := len(p.working)
	result := chain.Apply(p.working)

	if sortOn == nil {
		sortOn = column.Default()
	}
	compare := column.Compare(sortOn)
	if !ascending {
		compare = column.Reverse(compare)
	}
	slices.SortStableFunc(result, compare)

	p.working = result
	p.logger.Debug("filter applied",
		"expr", chain.Expr(),
		"clauses", len(chain.Clauses()),
		"before", before,
		"after", len(result),
		"sort", sortOn.Name(),
		"ascending", ascending,
	)
	return slices.Clone(result)
}

// FilterByName is Filter sorted by name ascending.
func (p *Planner) FilterByName(expr string) []game.Game {
	return p.Filter(expr, column.Default(), true)
}

// Reset restores the working set to the full collection.
func (p *Planner) Reset() {
	p.working = slices.Clone(p.games)
	if p.working == nil {
		p.working = []game.Game{}
	}
}

// Working returns a copy of the current working set in its last sorted order.
func (p *Planner) Working() []game.Game {
	return slices.Clone(p.working)
}

// Size returns the size of the full collection.
func (p *Planner) Size() int {
	return len(p.games)
}
