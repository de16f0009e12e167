package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/boardplan/internal/game"
)

// LookupResult is the JSON payload of the lookup command.
type LookupResult struct {
	Name  string      `json:"name"`
	Count int         `json:"count"`
	Games []game.Game `json:"games"`
}

// Text prints every attribute of each match, one game per line.
func (r LookupResult) Text() string {
	lines := make([]string, len(r.Games))
	for i, g := range r.Games {
		lines[i] = fmt.Sprintf("%s (id %d): %d-%d players, %d-%d min, difficulty %.2f, rank %d, rating %.2f, %d",
			g.Name, g.ID, g.MinPlayers, g.MaxPlayers, g.MinPlayTime, g.MaxPlayTime,
			g.Difficulty, g.Rank, g.Rating, g.YearPublished)
	}
	return strings.Join(lines, "\n")
}

// NewLookupCommand creates the lookup command.
func NewLookupCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <name>",
		Short: "Show catalogue games with a given name",
		Long: `Print every game in the SQLite catalogue whose name matches, ignoring
case. Games sharing a name under different ids are all shown.

Example:
  boardplan lookup --db games.db "go fish"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(rootOpts, strings.Join(args, " "), cmd)
		},
	}
	return cmd
}

func runLookup(opts *RootOptions, name string, cmd *cobra.Command) error {
	e, err := newEnv(opts, cmd)
	if err != nil {
		return err
	}
	if e.cfg.Data.DB == "" {
		return outputError(e.formatter, ExitCommandError, ErrCodeNoSource,
			"no catalogue: pass --db or set data.db in config", nil)
	}

	st, err := e.openCatalogue(e.cfg.Data.DB)
	if err != nil {
		return err
	}
	defer e.closeCatalogue(st)

	games, err := st.FindByName(cmd.Context(), name)
	if err != nil {
		return outputError(e.formatter, ExitFailure, ErrCodeStore, "failed to query catalogue", err)
	}
	if len(games) == 0 {
		return outputError(e.formatter, ExitFailure, ErrCodeNotFound, fmt.Sprintf("no game named %q", name), nil)
	}
	e.logger.Debug("lookup", "name", name, "count", len(games))

	return e.formatter.Success(LookupResult{Name: name, Count: len(games), Games: games})
}
