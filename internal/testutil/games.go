// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"github.com/roach88/boardplan/internal/game"
)

// Games returns the eight-game fixture used across tests.
//
// Sorted by name the fixture reads:
//
//	1 17 days  2 Chess  3 Go  4 Go Fish  5 golang  6 GoRami  7 Monopoly  8 Tucano
//
// The slice is freshly allocated on every call and is not in name order.
func Games() []game.Game {
	return []game.Game{
		{Name: "Tucano", ID: 5, MinPlayers: 10, MaxPlayers: 20, MinPlayTime: 60, MaxPlayTime: 90, Difficulty: 6.0, Rank: 500, Rating: 8.0, YearPublished: 2004},
		{Name: "Go", ID: 1, MinPlayers: 2, MaxPlayers: 5, MinPlayTime: 30, MaxPlayTime: 30, Difficulty: 8.0, Rank: 100, Rating: 7.5, YearPublished: 2000},
		{Name: "Monopoly", ID: 8, MinPlayers: 6, MaxPlayers: 10, MinPlayTime: 20, MaxPlayTime: 1000, Difficulty: 1.0, Rank: 800, Rating: 5.0, YearPublished: 2007},
		{Name: "17 days", ID: 6, MinPlayers: 1, MaxPlayers: 8, MinPlayTime: 70, MaxPlayTime: 70, Difficulty: 9.0, Rank: 600, Rating: 9.0, YearPublished: 2005},
		{Name: "golang", ID: 4, MinPlayers: 2, MaxPlayers: 7, MinPlayTime: 50, MaxPlayTime: 55, Difficulty: 7.0, Rank: 400, Rating: 9.5, YearPublished: 2003},
		{Name: "Chess", ID: 7, MinPlayers: 2, MaxPlayers: 2, MinPlayTime: 10, MaxPlayTime: 20, Difficulty: 10.0, Rank: 700, Rating: 10.0, YearPublished: 2006},
		{Name: "GoRami", ID: 3, MinPlayers: 6, MaxPlayers: 6, MinPlayTime: 40, MaxPlayTime: 42, Difficulty: 5.0, Rank: 300, Rating: 8.5, YearPublished: 2002},
		{Name: "Go Fish", ID: 2, MinPlayers: 2, MaxPlayers: 10, MinPlayTime: 20, MaxPlayTime: 120, Difficulty: 3.0, Rank: 200, Rating: 6.5, YearPublished: 2001},
	}
}

// SortedNames is the fixture's names in case-insensitive order.
var SortedNames = []string{"17 days", "Chess", "Go", "Go Fish", "golang", "GoRami", "Monopoly", "Tucano"}

// Names projects games onto their names, keeping order.
func Names(games []game.Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Name
	}
	return out
}

// Find returns the fixture game with the given name.
func Find(name string) game.Game {
	for _, g := range Games() {
		if g.Name == name {
			return g
		}
	}
	panic("testutil: no fixture game named " + name)
}
