package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/boardplan/internal/testutil"
)

const gamesCSV = "testdata/games.csv"

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestFilterSortedDescending(t *testing.T) {
	stdout, _, err := execute(t, nil,
		"--data", gamesCSV, "filter", "min_players >= 2, name ~= GO", "--sort", "rating", "--desc")
	require.NoError(t, err)

	newGoldie(t).Assert(t, "filter_rating_desc", []byte(stdout))
}

func TestFilterDefaultsToNameOrder(t *testing.T) {
	stdout, _, err := execute(t, nil, "--data", gamesCSV, "filter")
	require.NoError(t, err)

	assert.Equal(t, strings.Join(testutil.SortedNames, "\n")+"\n", stdout)
}

func TestFilterNoMatch(t *testing.T) {
	stdout, _, err := execute(t, nil, "--data", gamesCSV, "filter", "rating>10")
	require.NoError(t, err)
	assert.Equal(t, "No games match.\n", stdout)
}

func TestFilterJSON(t *testing.T) {
	stdout, _, err := execute(t, nil,
		"--format", "json", "--data", gamesCSV, "filter", "year>=2005,popularity>3", "--sort", "year")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   FilterResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "year>=2005,popularity>3", resp.Data.Expr)
	assert.Equal(t, "YEAR", resp.Data.Sort)
	assert.True(t, resp.Data.Ascending)
	assert.Equal(t, 3, resp.Data.Count)
	assert.Equal(t, []string{"17 days", "Chess", "Monopoly"}, testutil.Names(resp.Data.Games))
	assert.Equal(t, []IgnoredClause{{Clause: "popularity>3", Reason: "unknown column"}}, resp.Data.Ignored)
}

func TestFilterVerboseReportsIgnoredClauses(t *testing.T) {
	_, stderr, err := execute(t, nil, "-v", "--data", gamesCSV, "filter", "rating~=9")
	require.NoError(t, err)
	assert.Contains(t, stderr, `ignored clause "rating~=9": unsupported operator`)
}

func TestFilterPick(t *testing.T) {
	out := filepath.Join(t.TempDir(), "picked.txt")

	stdout, _, err := execute(t, nil,
		"--data", gamesCSV, "filter", "name~=go", "--pick", "2-3", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved 2 game(s) to "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Go Fish\ngolang\n", string(data))
}

func TestFilterPickOutOfRange(t *testing.T) {
	out := filepath.Join(t.TempDir(), "picked.txt")

	stdout, _, err := execute(t, nil,
		"--data", gamesCSV, "filter", "name~=go", "--pick", "9", "--out", out)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "Error [E101]: index 8 out of bounds: list size is 4\n", stdout)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFilterInvalidSortColumn(t *testing.T) {
	stdout, _, err := execute(t, nil, "--data", gamesCSV, "filter", "--sort", "popularity")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E007]: invalid --sort")
}

func TestFilterNoSource(t *testing.T) {
	stdout, _, err := execute(t, nil, "filter")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E003]")
}

func TestFilterMissingCatalogue(t *testing.T) {
	db := filepath.Join(t.TempDir(), "missing.db")

	stdout, _, err := execute(t, nil, "--db", db, "filter")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E005]")

	_, statErr := os.Stat(db)
	assert.True(t, os.IsNotExist(statErr), "catalogue must not be created by a read")
}

func TestFilterBadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("objectname,id\nCatan,abc\n"), 0o644))

	stdout, _, err := execute(t, nil, "--data", path, "filter")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E004]: failed to load games")
}

func TestFilterConfigFile(t *testing.T) {
	csv, err := filepath.Abs(gamesCSV)
	require.NoError(t, err)
	cfg := filepath.Join(t.TempDir(), "boardplan.toml")
	content := "[data]\ncsv = \"" + filepath.ToSlash(csv) + "\"\n\n[sort]\ncolumn = \"rank\"\nascending = false\n"
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o644))

	stdout, _, err := execute(t, nil, "--config", cfg, "filter", "rank<=300")
	require.NoError(t, err)
	assert.Equal(t, "GoRami (300)\nGo Fish (200)\nGo (100)\n", stdout)
}
