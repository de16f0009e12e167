package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/boardplan/internal/fold"
	"github.com/roach88/boardplan/internal/game"
)

const selectGames = `
	SELECT id, name, min_players, max_players, min_play_time, max_play_time,
	       difficulty, rank, rating, year_published
	FROM games`

// ImportGames writes games into the catalogue in a single transaction.
// A game whose identity (id and case-folded name) is already stored replaces
// that row; games sharing an id under other names are kept.
// Returns the number of rows written.
func (s *Store) ImportGames(ctx context.Context, games []game.Game) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("import games: begin: %w", err)
	}
	defer tx.Rollback()

	if err := insertGames(ctx, tx, games); err != nil {
		return 0, fmt.Errorf("import games: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("import games: commit: %w", err)
	}
	return len(games), nil
}

// insertGames upserts games inside tx.
func insertGames(ctx context.Context, tx *sql.Tx, games []game.Game) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO games
		(id, name, name_key, min_players, max_players, min_play_time, max_play_time, difficulty, rank, rating, year_published)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id, name_key) DO UPDATE SET
			name = excluded.name,
			min_players = excluded.min_players,
			max_players = excluded.max_players,
			min_play_time = excluded.min_play_time,
			max_play_time = excluded.max_play_time,
			difficulty = excluded.difficulty,
			rank = excluded.rank,
			rating = excluded.rating,
			year_published = excluded.year_published
	`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, g := range games {
		key := g.Key()
		if _, err := stmt.ExecContext(ctx,
			key.ID, g.Name, key.Name, g.MinPlayers, g.MaxPlayers, g.MinPlayTime, g.MaxPlayTime,
			g.Difficulty, g.Rank, g.Rating, g.YearPublished,
		); err != nil {
			return fmt.Errorf("id %d: %w", g.ID, err)
		}
	}
	return nil
}

// LoadGames returns every game in the catalogue ordered by id, then by
// folded name.
//
// Returns an empty slice (not nil) for an empty catalogue.
func (s *Store) LoadGames(ctx context.Context) ([]game.Game, error) {
	rows, err := s.db.QueryContext(ctx, selectGames+" ORDER BY id ASC, name_key ASC")
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	return collectGames(rows)
}

// FindByName returns the games whose name matches name case-insensitively,
// ordered by id.
func (s *Store) FindByName(ctx context.Context, name string) ([]game.Game, error) {
	rows, err := s.db.QueryContext(ctx, selectGames+" WHERE name_key = ? ORDER BY id ASC", fold.String(name))
	if err != nil {
		return nil, fmt.Errorf("query games by name: %w", err)
	}
	return collectGames(rows)
}

// collectGames scans and closes rows.
func collectGames(rows *sql.Rows) ([]game.Game, error) {
	defer rows.Close()

	games := []game.Game{}
	for rows.Next() {
		var g game.Game
		if err := rows.Scan(
			&g.ID, &g.Name, &g.MinPlayers, &g.MaxPlayers, &g.MinPlayTime, &g.MaxPlayTime,
			&g.Difficulty, &g.Rank, &g.Rating, &g.YearPublished,
		); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return games, nil
}
