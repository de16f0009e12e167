package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (games keyed by id)
// 1 - Added case-insensitive index on games.name
// 2 - Games keyed by (id, name_key); name_key holds the case-folded name
const currentSchemaVersion = 2

// Store provides durable storage for the game catalogue.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	// Open database (creates file if doesn't exist)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Count returns the number of games in the catalogue.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM games").Scan(&n); err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return n, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 2 {
		if err := migrateToV2(db); err != nil {
			return err
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// migrateToV2 rekeys games on (id, name_key) so that games sharing an id
// under different names are kept apart. Catalogues created before v2 are
// rebuilt row by row because the folded key is computed in Go. The v1 name
// index is replaced by one on name_key.
func migrateToV2(db *sql.DB) error {
	hasKey, err := hasColumn(db, "games", "name_key")
	if err != nil {
		return fmt.Errorf("migrate to v2: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migrate to v2: begin: %w", err)
	}
	defer tx.Rollback()

	if !hasKey {
		if err := rebuildGames(tx); err != nil {
			return fmt.Errorf("migrate to v2: %w", err)
		}
	}

	for _, stmt := range []string{
		`DROP INDEX IF EXISTS idx_games_name`,
		`CREATE INDEX IF NOT EXISTS idx_games_name_key ON games(name_key)`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("migrate to v2: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate to v2: commit: %w", err)
	}
	return nil
}

// rebuildGames moves rows from an id-keyed games table into the current
// schema.
func rebuildGames(tx *sql.Tx) error {
	if _, err := tx.Exec(`ALTER TABLE games RENAME TO games_v1`); err != nil {
		return fmt.Errorf("rename games: %w", err)
	}
	if _, err := tx.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create games: %w", err)
	}

	rows, err := tx.Query(strings.Replace(selectGames, "FROM games", "FROM games_v1", 1))
	if err != nil {
		return fmt.Errorf("read games_v1: %w", err)
	}
	games, err := collectGames(rows)
	if err != nil {
		return err
	}
	if err := insertGames(context.Background(), tx, games); err != nil {
		return err
	}

	if _, err := tx.Exec(`DROP TABLE games_v1`); err != nil {
		return fmt.Errorf("drop games_v1: %w", err)
	}
	return nil
}

// hasColumn reports whether table has a column called name.
func hasColumn(db *sql.DB, table, name string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			colName   string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, fmt.Errorf("scan table info: %w", err)
		}
		if colName == name {
			return true, nil
		}
	}
	return false, rows.Err()
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
