package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/boardplan/internal/source"
	"github.com/roach88/boardplan/internal/store"
)

// ImportResult is the JSON payload of the import command.
type ImportResult struct {
	Source   string `json:"source"`
	DB       string `json:"db"`
	Imported int    `json:"imported"`
	Total    int    `json:"total"`
}

func (r ImportResult) Text() string {
	return fmt.Sprintf("Imported %d game(s) into %s (%d total)", r.Imported, r.DB, r.Total)
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <csv>",
		Short: "Import a games CSV into the SQLite catalogue",
		Long: `Read a games CSV export and write every game into the catalogue given
by --db (or data.db in the config file). The catalogue is created if
needed. A game already stored under the same id and name is replaced.

Example:
  boardplan import --db games.db bgg_top.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runImport(opts *RootOptions, csvPath string, cmd *cobra.Command) error {
	e, err := newEnv(opts, cmd)
	if err != nil {
		return err
	}
	if e.cfg.Data.DB == "" {
		return outputError(e.formatter, ExitCommandError, ErrCodeNoSource,
			"no catalogue: pass --db or set data.db in config", nil)
	}

	games, err := source.LoadFile(csvPath)
	if err != nil {
		return outputError(e.formatter, ExitCommandError, ErrCodeLoadFailed, "failed to load games", err)
	}
	e.formatter.VerboseLog("Read %d game(s) from %s", len(games), csvPath)

	st, err := store.Open(e.cfg.Data.DB)
	if err != nil {
		return outputError(e.formatter, ExitCommandError, ErrCodeStore, "failed to open catalogue", err)
	}
	defer e.closeCatalogue(st)

	ctx := cmd.Context()
	n, err := st.ImportGames(ctx, games)
	if err != nil {
		return outputError(e.formatter, ExitFailure, ErrCodeStore, "failed to import games", err)
	}
	total, err := st.Count(ctx)
	if err != nil {
		return outputError(e.formatter, ExitFailure, ErrCodeStore, "failed to count games", err)
	}
	e.logger.Info("games imported", "source", csvPath, "db", e.cfg.Data.DB, "imported", n, "total", total)

	return e.formatter.Success(ImportResult{Source: csvPath, DB: e.cfg.Data.DB, Imported: n, Total: total})
}
