package planner

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/boardplan/internal/column"
	"github.com/roach88/boardplan/internal/game"
	"github.com/roach88/boardplan/internal/testutil"
)

func newPlanner(t *testing.T) *Planner {
	t.Helper()
	return New(testutil.Games())
}

func TestFilterEmptyReturnsAllSortedByName(t *testing.T) {
	p := newPlanner(t)

	got := p.FilterByName("")
	assert.Equal(t, testutil.SortedNames, testutil.Names(got))
}

func TestFilterEmptySortsOnColumn(t *testing.T) {
	tests := []struct {
		name      string
		sortOn    column.Column
		ascending bool
		want      []string
	}{
		{
			name:   "rating descending",
			sortOn: column.Rating,
			want:   []string{"Chess", "golang", "17 days", "GoRami", "Tucano", "Go", "Go Fish", "Monopoly"},
		},
		{
			name:      "year ascending",
			sortOn:    column.Year,
			ascending: true,
			want:      []string{"Go", "Go Fish", "GoRami", "golang", "Tucano", "17 days", "Chess", "Monopoly"},
		},
		{
			name:   "name descending",
			sortOn: column.Name,
			want:   []string{"Tucano", "Monopoly", "GoRami", "golang", "Go Fish", "Go", "Chess", "17 days"},
		},
		{
			name:      "rank ascending",
			sortOn:    column.Rank,
			ascending: true,
			want:      []string{"Go", "Go Fish", "GoRami", "golang", "Tucano", "17 days", "Chess", "Monopoly"},
		},
		{
			name:      "nil sorts by name",
			ascending: true,
			want:      testutil.SortedNames,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPlanner(t)
			got := p.Filter("", tt.sortOn, tt.ascending)
			assert.Equal(t, tt.want, testutil.Names(got))
		})
	}
}

func TestFilterClauses(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{"name ~= Go", []string{"Go", "Go Fish", "golang", "GoRami"}},
		{"name == Go", []string{"Go"}},
		{"name==go", []string{"Go"}},
		{"name != Go", []string{"17 days", "Chess", "Go Fish", "golang", "GoRami", "Monopoly", "Tucano"}},
		{"name > M", []string{"Monopoly", "Tucano"}},
		{"name < D", []string{"17 days", "Chess"}},
		{"name >= Go", []string{"Go", "Go Fish", "golang", "GoRami", "Monopoly", "Tucano"}},
		{"name <= Go", []string{"17 days", "Chess", "Go"}},
		{"minplayers > 5", []string{"GoRami", "Monopoly", "Tucano"}},
		{"minplayers < 3", []string{"17 days", "Chess", "Go", "Go Fish", "golang"}},
		{"minplayers >= 2", []string{"Chess", "Go", "Go Fish", "golang", "GoRami", "Monopoly", "Tucano"}},
		{"minplayers == 2", []string{"Chess", "Go", "Go Fish", "golang"}},
		{"minplayers != 2", []string{"17 days", "GoRami", "Monopoly", "Tucano"}},
		{"maxplayers <= 10", []string{"17 days", "Chess", "Go", "Go Fish", "golang", "GoRami", "Monopoly"}},
		{"rating > 8.5", []string{"17 days", "Chess", "golang"}},
		{"difficulty < 5", []string{"Go Fish", "Monopoly"}},
		{"year >= 2005", []string{"17 days", "Chess", "Monopoly"}},
		{"maxtime > 100", []string{"Go Fish", "Monopoly"}},
		{"min_time <= 20", []string{"Chess", "Go Fish", "Monopoly"}},
		{"rank == 100", []string{"Go"}},
		{"id < 3", []string{"Go", "Go Fish"}},
		{"minplayers>=2,maxplayers<=10", []string{"Chess", "Go", "Go Fish", "golang", "GoRami", "Monopoly"}},
		{"name~=go, rating>=8", []string{"golang", "GoRami"}},
		{"  MinPlayers   >=  2 , MAXPLAYERS<=5 ", []string{"Chess", "Go"}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			p := newPlanner(t)
			got := p.FilterByName(tt.expr)
			assert.Equal(t, tt.want, testutil.Names(got))
		})
	}
}

func TestFilterOperatorPriorityIncludesBoundary(t *testing.T) {
	p := newPlanner(t)

	got := p.FilterByName("minplayers>=2")
	names := testutil.Names(got)
	assert.Contains(t, names, "Chess", "minPlayers exactly 2 must match >=")
	assert.NotContains(t, names, "17 days")
	for _, g := range got {
		assert.GreaterOrEqual(t, g.MinPlayers, 2)
	}
}

func TestFilterNameEqualsIsExact(t *testing.T) {
	p := newPlanner(t)

	got := testutil.Names(p.FilterByName("name==go"))
	assert.Contains(t, got, "Go")
	assert.NotContains(t, got, "golang")
}

func TestFilterDegradedClausesPassThrough(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"no operator", "name"},
		{"unknown column", "players>2"},
		{"not a number", "rating>abc"},
		{"missing value", "rating>="},
		{"missing column", "==go"},
		{"operator twice", "name==go==go"},
		{"contains on numeric", "minplayers~=2"},
		{"only commas", ",,,"},
		{"bare operator", ">"},
		{"nan", "rating<nan"},
		{"nan equals", "rating==nan"},
		{"infinity", "rating>inf"},
		{"digit separators", "year<1_000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPlanner(t)
			got := p.FilterByName(tt.expr)
			assert.Equal(t, testutil.SortedNames, testutil.Names(got))
		})
	}
}

func TestFilterPartiallyMalformedKeepsGoodClauses(t *testing.T) {
	p := newPlanner(t)

	got := p.FilterByName("name==go, players>2, rating>abc")
	assert.Equal(t, []string{"Go"}, testutil.Names(got))
}

func TestFilterCommaInValueSplitsClause(t *testing.T) {
	p := newPlanner(t)

	// "fish" becomes its own clause without an operator.
	got := p.FilterByName("name==go,fish")
	assert.Equal(t, []string{"Go"}, testutil.Names(got))
}

func TestFilterWhitespaceInsideValueIsRemoved(t *testing.T) {
	p := newPlanner(t)
	assert.Empty(t, p.FilterByName("name == Go Fish"))

	p.Reset()
	assert.Equal(t, []string{"Go Fish"}, testutil.Names(p.FilterByName("name ~= fish")))
}

func TestFilterIsCumulative(t *testing.T) {
	sequential := newPlanner(t)
	sequential.FilterByName("minplayers>=2")
	seq := sequential.FilterByName("maxplayers<=10")

	combined := newPlanner(t)
	comb := combined.FilterByName("minplayers>=2,maxplayers<=10")

	assert.ElementsMatch(t, testutil.Names(comb), testutil.Names(seq))
	assert.Len(t, seq, 6)
}

func TestFilterEmptyKeepsNarrowing(t *testing.T) {
	p := newPlanner(t)
	p.FilterByName("name~=go")

	got := p.Filter("", column.Rating, true)
	assert.Equal(t, []string{"Go", "GoRami", "golang"}, testutil.Names(got)[1:])
	assert.Len(t, got, 4)
}

func TestReset(t *testing.T) {
	p := newPlanner(t)

	require.Len(t, p.FilterByName("name==go"), 1)
	p.Reset()
	assert.Equal(t, testutil.SortedNames, testutil.Names(p.FilterByName("")))

	// Reset is idempotent.
	p.Reset()
	p.Reset()
	assert.Len(t, p.FilterByName(""), 8)
}

func TestFilterNarrowsToNothing(t *testing.T) {
	p := newPlanner(t)

	assert.Empty(t, p.FilterByName("rating>100"))
	assert.Empty(t, p.FilterByName(""), "working set stays empty until Reset")
	p.Reset()
	assert.Len(t, p.FilterByName(""), 8)
}

func TestFilterReturnsCopy(t *testing.T) {
	p := newPlanner(t)

	got := p.FilterByName("")
	got[0] = game.Game{Name: "mutated"}
	assert.Equal(t, "17 days", p.Working()[0].Name)
}

func TestNewCollapsesDuplicateIdentity(t *testing.T) {
	games := testutil.Games()
	dup := testutil.Find("Chess")
	dup.Rating = 1.0
	games = append(games, dup)

	p := New(games)
	assert.Equal(t, 8, p.Size())
	assert.Len(t, p.FilterByName("name==chess"), 1)
}

func TestNewEmpty(t *testing.T) {
	p := New(nil)
	assert.Empty(t, p.FilterByName("name~=go"))
	assert.Equal(t, 0, p.Size())
}

func TestFilterLogsDegradedClauses(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := New(testutil.Games(), WithLogger(logger))

	p.FilterByName("players>2")
	out := buf.String()
	assert.Contains(t, out, "filter clause ignored")
	assert.Contains(t, out, "unknown column")
	assert.Contains(t, out, "filter applied")
}
