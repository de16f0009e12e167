// Package game defines the board game record the planner and game list
// operate on.
//
// A Game is an immutable value. Its identity is the pair (case-folded name,
// id): two games with the same name and id are interchangeable even when
// their other attributes differ. Use Key to index games in maps and Equal to
// compare them; never compare Game values with ==.
package game

import (
	"fmt"

	"github.com/roach88/boardplan/internal/fold"
)

// Game is one catalogued board game.
type Game struct {
	Name          string  `json:"name" yaml:"name"`
	ID            int     `json:"id" yaml:"id"`
	MinPlayers    int     `json:"min_players" yaml:"min_players"`
	MaxPlayers    int     `json:"max_players" yaml:"max_players"`
	MinPlayTime   int     `json:"min_play_time" yaml:"min_play_time"`
	MaxPlayTime   int     `json:"max_play_time" yaml:"max_play_time"`
	Difficulty    float64 `json:"difficulty" yaml:"difficulty"`
	Rank          int     `json:"rank" yaml:"rank"`
	Rating        float64 `json:"rating" yaml:"rating"`
	YearPublished int     `json:"year_published" yaml:"year_published"`
}

// Key is the identity of a Game.
type Key struct {
	Name string // case-folded name
	ID   int
}

// Key returns the identity of g.
func (g Game) Key() Key {
	return Key{Name: fold.String(g.Name), ID: g.ID}
}

// Equal reports whether g and other identify the same game.
// Only the name (case-insensitively) and id take part.
func (g Game) Equal(other Game) bool {
	return g.ID == other.ID && fold.Equal(g.Name, other.Name)
}

// String renders every attribute, mainly for logs and test failures.
func (g Game) String() string {
	return fmt.Sprintf("Game{name=%q, id=%d, players=%d-%d, time=%d-%d, difficulty=%.2f, rank=%d, rating=%.2f, year=%d}",
		g.Name, g.ID, g.MinPlayers, g.MaxPlayers, g.MinPlayTime, g.MaxPlayTime,
		g.Difficulty, g.Rank, g.Rating, g.YearPublished)
}

// Dedupe drops later games whose identity already appeared.
// Order of the first occurrences is preserved.
func Dedupe(games []Game) []Game {
	seen := make(map[Key]struct{}, len(games))
	out := make([]Game, 0, len(games))
	for _, g := range games {
		k := g.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, g)
	}
	return out
}
