package gamelist

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/boardplan/internal/fold"
	"github.com/roach88/boardplan/internal/game"
)

var (
	rangePattern = regexp.MustCompile(`^\d+-\d+$`)
	indexPattern = regexp.MustCompile(`^\d+$`)
)

// SortByName orders games by case-folded name, then by id.
//
// Selectors always index into this order, whatever order the candidates were
// displayed in.
func SortByName(games []game.Game) []game.Game {
	out := slices.Clone(games)
	slices.SortStableFunc(out, func(a, b game.Game) int {
		return cmp.Or(fold.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out
}

// Resolve returns the candidates a selector designates.
//
// Selectors, matched case-insensitively after trimming whitespace:
//   - "all": every candidate;
//   - "a-b": the 1-based inclusive range a..b, b clamped to the candidate
//     count; a must be at least 1;
//   - "n": the 1-based n-th candidate;
//   - anything else: the first candidate whose name equals the selector.
//
// Positions refer to the candidates sorted with SortByName.
func Resolve(selector string, candidates []game.Game) ([]game.Game, error) {
	sel := strings.TrimSpace(selector)
	sorted := SortByName(candidates)

	switch {
	case fold.Equal(sel, "all"):
		return sorted, nil

	case rangePattern.MatchString(sel):
		lo, hi, _ := strings.Cut(sel, "-")
		start, err := strconv.Atoi(lo)
		if err != nil {
			return nil, newNumberError(selector)
		}
		end, err := strconv.Atoi(hi)
		if err != nil {
			return nil, newNumberError(selector)
		}
		start--
		if start < 0 {
			return nil, newRangeStartError(selector)
		}
		end = min(end, len(sorted))
		if start >= end {
			return nil, nil
		}
		return sorted[start:end], nil

	case indexPattern.MatchString(sel):
		n, err := strconv.Atoi(sel)
		if err != nil {
			return nil, newNumberError(selector)
		}
		index := n - 1
		if index < 0 || index >= len(sorted) {
			return nil, newIndexError(selector, index, len(sorted))
		}
		return sorted[index : index+1], nil
	}

	for _, g := range sorted {
		if fold.Equal(g.Name, sel) {
			return []game.Game{g}, nil
		}
	}
	return nil, newInvalidSelectorError(selector)
}
