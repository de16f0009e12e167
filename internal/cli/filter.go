package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/boardplan/internal/column"
	"github.com/roach88/boardplan/internal/game"
	"github.com/roach88/boardplan/internal/gamelist"
	"github.com/roach88/boardplan/internal/planner"
)

// FilterOptions holds flags for the filter command.
type FilterOptions struct {
	*RootOptions
	Sort string // sort column, defaults to sort.column from config
	Desc bool
	Pick string // selector of games to save into the list
	Out  string // list file, defaults to list.output from config
}

// FilterResult is the JSON payload of the filter command.
type FilterResult struct {
	Expr      string          `json:"expr"`
	Sort      string          `json:"sort"`
	Ascending bool            `json:"ascending"`
	Count     int             `json:"count"`
	Games     []game.Game     `json:"games"`
	Ignored   []IgnoredClause `json:"ignored,omitempty"`
	Picked    []string        `json:"picked,omitempty"`
	Saved     string          `json:"saved,omitempty"`

	sortOn column.Column
}

// Text renders each game with its sort value, then where the picks went.
func (r FilterResult) Text() string {
	text := describeGames(r.Games, r.sortOn)
	if r.Saved != "" {
		text += fmt.Sprintf("\n\nSaved %d game(s) to %s", len(r.Picked), r.Saved)
	}
	return text
}

// IgnoredClause is a filter clause that did not narrow anything.
type IgnoredClause struct {
	Clause string `json:"clause"`
	Reason string `json:"reason"`
}

// NewFilterCommand creates the filter command.
func NewFilterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FilterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "filter [expression]",
		Short: "Filter and sort the game collection",
		Long: `Filter the game collection with a comma-separated list of clauses
and print the result sorted on a column.

A clause is <column><operator><value>. Operators are == != >= <= > <
and ~= (name contains). Clauses that cannot be understood are ignored.

Examples:
  boardplan filter "min_players>=2,max_players<=4" --sort rating --desc
  boardplan filter "name~=go" --pick 1-3 --out weekend.txt`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(opts, strings.Join(args, " "), cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Sort, "sort", "s", "", "column to sort on (default from config)")
	cmd.Flags().BoolVar(&opts.Desc, "desc", false, "sort descending")
	cmd.Flags().StringVar(&opts.Pick, "pick", "", `games to save from the result: "all", an index, a range like 2-5, or a name`)
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "list file written by --pick (default from config)")

	return cmd
}

func runFilter(opts *FilterOptions, expr string, cmd *cobra.Command) error {
	e, err := newEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	sortOn := e.cfg.SortColumn()
	ascending := e.cfg.Sort.Ascending
	if opts.Sort != "" {
		if sortOn, err = column.Parse(opts.Sort); err != nil {
			return outputError(e.formatter, ExitCommandError, ErrCodeColumn, "invalid --sort", err)
		}
		ascending = true
	}
	if opts.Desc {
		ascending = false
	}

	games, err := e.loadGames(cmd.Context())
	if err != nil {
		return err
	}

	p := planner.New(games, planner.WithLogger(e.logger))
	result := p.Filter(expr, sortOn, ascending)

	out := FilterResult{
		Expr:      planner.Parse(expr).Expr(),
		Sort:      sortOn.Name(),
		Ascending: ascending,
		Count:     len(result),
		Games:     result,
		sortOn:    sortOn,
	}
	for _, c := range planner.Parse(expr).Degraded() {
		out.Ignored = append(out.Ignored, IgnoredClause{Clause: c.Raw, Reason: c.Degraded})
		e.formatter.VerboseLog("ignored clause %q: %s", c.Raw, c.Degraded)
	}

	if opts.Pick != "" {
		list := gamelist.New(gamelist.WithLogger(e.logger))
		if err := list.Add(opts.Pick, result); err != nil {
			return outputSelectionError(e.formatter, err)
		}
		path := opts.Out
		if path == "" {
			path = e.cfg.List.Output
		}
		if err := list.WriteFile(path); err != nil {
			return outputError(e.formatter, ExitFailure, ErrCodeWriteFailed, "failed to save list", err)
		}
		out.Picked = list.Names()
		out.Saved = path
	}

	return e.formatter.Success(out)
}

// outputSelectionError reports a selector failure. Selection errors are
// operation failures, not command errors.
func outputSelectionError(formatter *OutputFormatter, err error) error {
	code := formatter.SelectionFailed(err)
	return WrapExitError(ExitFailure, code+": selection failed", err)
}
