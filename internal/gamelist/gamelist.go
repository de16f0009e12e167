// Package gamelist keeps the games a user picked out of filter results.
//
// Games are added and removed with selectors ("all", "3", "2-5", or a game
// name) that index into the candidates sorted by name. The sort used for
// selection is fixed and independent of any display order applied upstream:
// "3" always means the third candidate alphabetically.
//
// The list is a set keyed by game identity (case-folded name and id). It is
// persisted as plain text, one name per line.
//
// A List is not safe for concurrent use.
package gamelist

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/roach88/boardplan/internal/game"
)

// List is the set of retained games.
type List struct {
	games  map[game.Key]game.Game
	logger *slog.Logger
}

// Option configures a List.
type Option func(*List)

// WithLogger sets the logger used for list diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *List) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates an empty list.
func New(opts ...Option) *List {
	l := &List{
		games:  make(map[game.Key]game.Game),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add resolves selector against candidates and adds the designated games.
// A game already in the list keeps its existing value.
func (l *List) Add(selector string, candidates []game.Game) error {
	picked, err := Resolve(selector, candidates)
	if err != nil {
		return err
	}
	added := 0
	for _, g := range picked {
		k := g.Key()
		if _, ok := l.games[k]; ok {
			continue
		}
		l.games[k] = g
		added++
	}
	l.logger.Debug("games added", "selector", selector, "matched", len(picked), "added", added, "count", len(l.games))
	return nil
}

// Remove resolves selector against the list itself and removes the
// designated games.
func (l *List) Remove(selector string) error {
	picked, err := Resolve(selector, l.Games())
	if err != nil {
		return err
	}
	for _, g := range picked {
		delete(l.games, g.Key())
	}
	l.logger.Debug("games removed", "selector", selector, "removed", len(picked), "count", len(l.games))
	return nil
}

// Games returns the retained games sorted by name.
func (l *List) Games() []game.Game {
	out := make([]game.Game, 0, len(l.games))
	for _, g := range l.games {
		out = append(out, g)
	}
	return SortByName(out)
}

// Names returns the retained game names in case-insensitive order.
func (l *List) Names() []string {
	games := l.Games()
	names := make([]string, len(games))
	for i, g := range games {
		names[i] = g.Name
	}
	return names
}

// Contains reports whether a game with the identity of g is retained.
func (l *List) Contains(g game.Game) bool {
	_, ok := l.games[g.Key()]
	return ok
}

// Count returns the number of retained games.
func (l *List) Count() int {
	return len(l.games)
}

// Clear empties the list.
func (l *List) Clear() {
	clear(l.games)
}

// WriteTo writes the retained names, one per line, in Names order.
func (l *List) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, name := range l.Names() {
		written, err := fmt.Fprintln(bw, name)
		n += int64(written)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// WriteFile writes the retained names to path, replacing any existing file.
func (l *List) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := l.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Save writes the list to path on a best-effort basis. Failures are logged,
// never returned, and never change the list.
func (l *List) Save(path string) {
	if err := l.WriteFile(path); err != nil {
		l.logger.Error("failed to save game list", "path", path, "error", err)
		return
	}
	l.logger.Info("game list saved", "path", path, "count", len(l.games))
}
