// Package source loads game collections from files.
//
// The CSV format is the BoardGameGeek-style export: a header row followed by
// one game per row. Header cells are resolved with column.Parse, so both the
// export names (objectname, average, avgweight, minplaytime, ...) and the
// column tokens (name, rating, difficulty, min_time, ...) are accepted, in
// any order. Unknown header cells are ignored.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/roach88/boardplan/internal/column"
	"github.com/roach88/boardplan/internal/game"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// ParseError reports a cell that could not be converted.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: column %s: cannot parse %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadFile reads a CSV game collection from path.
func LoadFile(path string) ([]game.Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open games file: %w", err)
	}
	defer f.Close()

	games, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return games, nil
}

// LoadCSV reads a CSV game collection. Every column must be present in the
// header. Rows are returned in file order; duplicates are kept.
func LoadCSV(r io.Reader) ([]game.Game, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty games file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	positions, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var games []game.Game
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := cr.FieldPos(0)

		var g game.Game
		for col, pos := range positions {
			if err := assign(&g, col, record[pos]); err != nil {
				return nil, &ParseError{Line: line, Column: col.Name(), Value: record[pos], Err: err}
			}
		}
		games = append(games, g)
	}

	if games == nil {
		games = []game.Game{}
	}
	return games, nil
}

// mapHeader returns the record position of every column.
func mapHeader(header []string) (map[column.Column]int, error) {
	positions := make(map[column.Column]int, len(header))
	for i, cell := range header {
		col, err := column.Parse(strings.TrimPrefix(cell, "\ufeff"))
		if err != nil {
			continue
		}
		if _, dup := positions[col]; !dup {
			positions[col] = i
		}
	}

	var missing []string
	for _, col := range column.All() {
		if _, ok := positions[col]; !ok {
			missing = append(missing, col.Name())
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return positions, nil
}

func assign(g *game.Game, col column.Column, cell string) error {
	cell = strings.TrimSpace(cell)
	switch col {
	case column.Name:
		g.Name = cell
	case column.Rating:
		return parseFloat(cell, &g.Rating)
	case column.Difficulty:
		return parseFloat(cell, &g.Difficulty)
	case column.ID:
		return parseInt(cell, &g.ID)
	case column.Rank:
		return parseInt(cell, &g.Rank)
	case column.MinPlayers:
		return parseInt(cell, &g.MinPlayers)
	case column.MaxPlayers:
		return parseInt(cell, &g.MaxPlayers)
	case column.MinTime:
		return parseInt(cell, &g.MinPlayTime)
	case column.MaxTime:
		return parseInt(cell, &g.MaxPlayTime)
	case column.Year:
		return parseInt(cell, &g.YearPublished)
	}
	return nil
}

func parseFloat(cell string, dst *float64) error {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// parseInt accepts integers and integral floats such as "4.0".
func parseInt(cell string, dst *int) error {
	if v, err := strconv.Atoi(cell); err == nil {
		*dst = v
		return nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Errorf("not an integer")
	}
	*dst = int(f)
	return nil
}
