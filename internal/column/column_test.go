package column

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/boardplan/internal/game"
)

var catan = game.Game{
	Name: "Catan", ID: 1, MinPlayers: 3, MaxPlayers: 4, MinPlayTime: 60, MaxPlayTime: 120,
	Difficulty: 2.5, Rank: 100, Rating: 4.5, YearPublished: 1995,
}

func TestParse(t *testing.T) {
	tests := []struct {
		token string
		want  Column
	}{
		{"name", Name},
		{"NAME", Name},
		{"objectname", Name},
		{"id", ID},
		{"rating", Rating},
		{"Average", Rating},
		{"difficulty", Difficulty},
		{"avgweight", Difficulty},
		{"rank", Rank},
		{"minplayers", MinPlayers},
		{"MIN_PLAYERS", MinPlayers},
		{"maxplayers", MaxPlayers},
		{"max_players", MaxPlayers},
		{"minplaytime", MinTime},
		{"min_time", MinTime},
		{"maxplaytime", MaxTime},
		{"max_time", MaxTime},
		{"year", Year},
		{"yearpublished", Year},
		{"  year  ", Year},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := Parse(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUnknown(t *testing.T) {
	for _, token := range []string{"", "players", "nam", "min players"} {
		t.Run(token, func(t *testing.T) {
			col, err := Parse(token)
			require.Error(t, err)
			assert.Nil(t, col)
			assert.ErrorIs(t, err, ErrUnknownColumn)
		})
	}
}

func TestKinds(t *testing.T) {
	for _, col := range All() {
		want := KindNumeric
		if col == Name {
			want = KindString
		}
		assert.Equal(t, want, col.Kind(), col.Name())
	}
	assert.Len(t, All(), 10)
	assert.Equal(t, Name, Default())
}

func TestNumeric(t *testing.T) {
	tests := []struct {
		col  Column
		want float64
	}{
		{Rating, 4.5},
		{Difficulty, 2.5},
		{Rank, 100},
		{MinPlayers, 3},
		{MaxPlayers, 4},
		{MinTime, 60},
		{MaxTime, 120},
		{Year, 1995},
		{ID, 1},
	}
	for _, tt := range tests {
		t.Run(tt.col.Name(), func(t *testing.T) {
			got, err := Numeric(catan, tt.col)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}

	_, err := Numeric(catan, Name)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestString(t *testing.T) {
	got, err := String(catan, Name)
	require.NoError(t, err)
	assert.Equal(t, "Catan", got)

	for _, col := range []Column{Rating, Difficulty, Rank} {
		_, err := String(catan, col)
		assert.ErrorIs(t, err, ErrTypeMismatch, col.Name())
	}
}

func TestCompare(t *testing.T) {
	games := []game.Game{
		{Name: "golang", ID: 4, Rating: 9.5, MinPlayers: 2},
		{Name: "Chess", ID: 7, Rating: 10.0, MinPlayers: 2},
		{Name: "Go", ID: 1, Rating: 7.5, MinPlayers: 2},
		{Name: "17 days", ID: 6, Rating: 9.0, MinPlayers: 1},
	}

	byName := slices.Clone(games)
	slices.SortFunc(byName, Compare(Name))
	assert.Equal(t, []string{"17 days", "Chess", "Go", "golang"}, names(byName))

	byRating := slices.Clone(games)
	slices.SortFunc(byRating, Compare(Rating))
	assert.Equal(t, []string{"Go", "17 days", "golang", "Chess"}, names(byRating))

	desc := slices.Clone(games)
	slices.SortFunc(desc, Reverse(Compare(Rating)))
	assert.Equal(t, []string{"Chess", "golang", "17 days", "Go"}, names(desc))

	byNil := slices.Clone(games)
	slices.SortFunc(byNil, Compare(nil))
	assert.Equal(t, names(byName), names(byNil))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Catan", Describe(catan, Name))
	assert.Equal(t, "Catan (4.50)", Describe(catan, Rating))
	assert.Equal(t, "Catan (2.50)", Describe(catan, Difficulty))
	assert.Equal(t, "Catan (100)", Describe(catan, Rank))
	assert.Equal(t, "Catan (3)", Describe(catan, MinPlayers))
	assert.Equal(t, "Catan (4)", Describe(catan, MaxPlayers))
	assert.Equal(t, "Catan (60)", Describe(catan, MinTime))
	assert.Equal(t, "Catan (120)", Describe(catan, MaxTime))
	assert.Equal(t, "Catan (1995)", Describe(catan, Year))
}

func names(games []game.Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Name
	}
	return out
}
