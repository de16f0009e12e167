// Package store provides a SQLite-backed catalogue of board games.
//
// The catalogue is one of the record sources the planner can be built from
// (the other is a CSV export, see package source). Rows are keyed like
// game.Key: the BoardGameGeek id plus the case-folded name. Importing a game
// with a stored identity replaces that row.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - Single open connection: SQLite has one writer
//
// Schema changes are tracked with PRAGMA user_version and applied by Open.
//
// # Ordering
//
// LoadGames returns rows ORDER BY id, name_key so that a planner built from the
// store sees the same input order on every run.
package store
