package gamelist

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/boardplan/internal/column"
	"github.com/roach88/boardplan/internal/game"
	"github.com/roach88/boardplan/internal/testutil"
)

func TestEmptyList(t *testing.T) {
	l := New()
	assert.Equal(t, 0, l.Count())
	assert.Empty(t, l.Names())
	assert.Empty(t, l.Games())
}

func TestAddAll(t *testing.T) {
	l := New()
	require.NoError(t, l.Add("all", testutil.Games()))
	assert.Equal(t, 8, l.Count())
	assert.Equal(t, testutil.SortedNames, l.Names())
}

func TestAddAllIsCaseInsensitive(t *testing.T) {
	l := New()
	require.NoError(t, l.Add("ALL", testutil.Games()))
	assert.Equal(t, 8, l.Count())
}

func TestAddSelectors(t *testing.T) {
	tests := []struct {
		selector string
		want     []string
	}{
		{"1", []string{"17 days"}},
		{"3", []string{"Go"}},
		{"8", []string{"Tucano"}},
		{"2-4", []string{"Chess", "Go", "Go Fish"}},
		{"1-1", []string{"17 days"}},
		{"6-100", []string{"GoRami", "Monopoly", "Tucano"}},
		{"chess", []string{"Chess"}},
		{"GO FISH", []string{"Go Fish"}},
		{"  golang  ", []string{"golang"}},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			l := New()
			require.NoError(t, l.Add(tt.selector, testutil.Games()))
			assert.Equal(t, tt.want, l.Names())
		})
	}
}

func TestAddEmptyRangeIsNoop(t *testing.T) {
	l := New()
	require.NoError(t, l.Add("10-12", testutil.Games()))
	require.NoError(t, l.Add("5-3", testutil.Games()))
	assert.Equal(t, 0, l.Count())
}

func TestAddIndexesByNameRegardlessOfInputOrder(t *testing.T) {
	byRating := slices.Clone(testutil.Games())
	slices.SortFunc(byRating, column.Reverse(column.Compare(column.Rating)))
	require.Equal(t, "Chess", byRating[0].Name)

	l := New()
	require.NoError(t, l.Add("1", byRating))
	assert.Equal(t, []string{"17 days"}, l.Names())
}

func TestAddInvalidInput(t *testing.T) {
	l := New()

	err := l.Add("20", testutil.Games())
	require.Error(t, err)
	assert.True(t, IsOutOfRange(err))
	assert.Contains(t, err.Error(), "out of bounds")
	assert.Contains(t, err.Error(), "19")
	assert.Contains(t, err.Error(), "8")

	err = l.Add("0-3", testutil.Games())
	require.Error(t, err)
	assert.True(t, IsOutOfRange(err))

	err = l.Add("0", testutil.Games())
	require.Error(t, err)
	assert.True(t, IsOutOfRange(err))

	err = l.Add("99999999999999999999", testutil.Games())
	require.Error(t, err)
	assert.True(t, IsOutOfRange(err))

	err = l.Add("invalid-format", testutil.Games())
	require.Error(t, err)
	assert.True(t, IsInvalidSelector(err))
	assert.Contains(t, err.Error(), "invalid input format")

	err = l.Add("Catan", testutil.Games())
	assert.True(t, IsInvalidSelector(err))

	assert.Equal(t, 0, l.Count(), "failed selections leave the list unchanged")
}

func TestAddAgainstNoCandidates(t *testing.T) {
	l := New()
	require.NoError(t, l.Add("all", nil))

	err := l.Add("1", nil)
	assert.True(t, IsOutOfRange(err))
	assert.Contains(t, err.Error(), "list size is 0")
}

func TestSelectionErrorHelpersUnwrap(t *testing.T) {
	l := New()
	err := fmt.Errorf("adding: %w", l.Add("20", testutil.Games()))
	assert.True(t, IsOutOfRange(err))
	assert.False(t, IsInvalidSelector(err))
	assert.False(t, IsOutOfRange(nil))

	var se *SelectionError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "20", se.Selector)
	assert.Equal(t, ErrCodeOutOfRange, se.Code)
}

func TestAddSameIdentityKeepsOne(t *testing.T) {
	first := testutil.Find("Chess")
	second := first
	second.Name = "CHESS"
	second.Rating = 1.0
	second.MaxPlayers = 4

	l := New()
	require.NoError(t, l.Add("all", []game.Game{first, second}))
	assert.Equal(t, 1, l.Count())

	require.NoError(t, l.Add("all", []game.Game{second}))
	assert.Equal(t, 1, l.Count())
	assert.Equal(t, 10.0, l.Games()[0].Rating, "existing value is kept")
	assert.True(t, l.Contains(second))
}

func TestAddAccumulates(t *testing.T) {
	l := New()
	require.NoError(t, l.Add("1", testutil.Games()))
	require.NoError(t, l.Add("tucano", testutil.Games()))
	require.NoError(t, l.Add("1-2", testutil.Games()))
	assert.Equal(t, []string{"17 days", "Chess", "Tucano"}, l.Names())
}

func TestRemoveFromList(t *testing.T) {
	l := New()
	require.NoError(t, l.Add("all", testutil.Games()))
	assert.Equal(t, 8, l.Count())

	require.NoError(t, l.Remove("1"))
	assert.Equal(t, 7, l.Count())
	assert.NotContains(t, l.Names(), "17 days")

	require.NoError(t, l.Remove("2-4"))
	assert.Equal(t, 4, l.Count())
	assert.Equal(t, []string{"Chess", "GoRami", "Monopoly", "Tucano"}, l.Names())

	require.NoError(t, l.Remove("Monopoly"))
	assert.Equal(t, 3, l.Count())

	require.NoError(t, l.Remove("all"))
	assert.Equal(t, 0, l.Count())
}

func TestRemoveInvalidInput(t *testing.T) {
	l := New()
	require.NoError(t, l.Add("all", testutil.Games()))

	err := l.Remove("20")
	require.Error(t, err)
	assert.True(t, IsOutOfRange(err))
	assert.Contains(t, err.Error(), "out of bounds")

	err = l.Remove("invalid-format")
	require.Error(t, err)
	assert.True(t, IsInvalidSelector(err))

	err = l.Remove("0-2")
	assert.True(t, IsOutOfRange(err))

	assert.Equal(t, 8, l.Count())
}

func TestClear(t *testing.T) {
	l := New()
	require.NoError(t, l.Add("all", testutil.Games()))
	l.Clear()
	assert.Equal(t, 0, l.Count())
	assert.Empty(t, l.Names())
}

func TestSaveRoundTrip(t *testing.T) {
	l := New()
	require.NoError(t, l.Add("all", testutil.Games()))

	path := filepath.Join(t.TempDir(), "games.txt")
	l.Save(path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Equal(t, l.Names(), lines)
	assert.Contains(t, lines, "Chess")
	assert.Contains(t, lines, "Monopoly")
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.txt")
	require.NoError(t, os.WriteFile(path, []byte("old\nlines\nthat\nare\nlonger\n"), 0o644))

	l := New()
	require.NoError(t, l.Add("chess", testutil.Games()))
	l.Save(path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Chess\n", string(data))
}

func TestSaveFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	require.NoError(t, l.Add("all", testutil.Games()))

	path := filepath.Join(t.TempDir(), "missing", "dir", "games.txt")
	l.Save(path)

	assert.Contains(t, buf.String(), "failed to save game list")
	assert.Equal(t, 8, l.Count())
	assert.Error(t, l.WriteFile(path))
}

func TestWriteToGolden(t *testing.T) {
	l := New()
	require.NoError(t, l.Add("all", testutil.Games()))

	var buf bytes.Buffer
	n, err := l.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "all_games", buf.Bytes())
}
