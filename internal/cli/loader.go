package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/boardplan/internal/config"
	"github.com/roach88/boardplan/internal/game"
	"github.com/roach88/boardplan/internal/source"
	"github.com/roach88/boardplan/internal/store"
)

// env is what every command works with once flags and config are merged.
type env struct {
	cfg       *config.Config
	logger    *slog.Logger
	formatter *OutputFormatter
}

// newEnv loads the config file, applies flag overrides and builds the
// formatter and logger for cmd. Diagnostics go to stderr so JSON output on
// stdout stays clean.
func newEnv(opts *RootOptions, cmd *cobra.Command) (*env, error) {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, outputError(formatter, ExitCommandError, ErrCodeConfig, "failed to load config", err)
	}
	if opts.Data != "" {
		cfg.Data.CSV = opts.Data
	}
	if opts.DB != "" {
		cfg.Data.DB = opts.DB
	}

	return &env{
		cfg:       cfg,
		logger:    newLogger(cmd.ErrOrStderr(), opts.Verbose),
		formatter: formatter,
	}, nil
}

// newLogger returns a text logger at Info, or Debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// loadGames reads the collection from the configured source. A catalogue
// wins over a CSV file when both are set.
func (e *env) loadGames(ctx context.Context) ([]game.Game, error) {
	switch {
	case e.cfg.Data.DB != "":
		return e.loadCatalogue(ctx, e.cfg.Data.DB)
	case e.cfg.Data.CSV != "":
		games, err := source.LoadFile(e.cfg.Data.CSV)
		if err != nil {
			return nil, outputError(e.formatter, ExitCommandError, ErrCodeLoadFailed, "failed to load games", err)
		}
		e.logger.Debug("games loaded", "source", "csv", "path", e.cfg.Data.CSV, "count", len(games))
		return games, nil
	default:
		return nil, outputError(e.formatter, ExitCommandError, ErrCodeNoSource,
			"no game source: pass --data or --db, or set data.csv or data.db in "+config.FileName, nil)
	}
}

// openCatalogue opens an existing catalogue. Opening would create an empty
// one; reading one that is not there is a mistake.
func (e *env) openCatalogue(path string) (*store.Store, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, outputError(e.formatter, ExitCommandError, ErrCodeStore,
			fmt.Sprintf("catalogue %s not found (create it with boardplan import)", path), nil)
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, outputError(e.formatter, ExitCommandError, ErrCodeStore, "failed to open catalogue", err)
	}
	return st, nil
}

// closeCatalogue closes st, logging a failure.
func (e *env) closeCatalogue(st *store.Store) {
	if err := st.Close(); err != nil {
		e.logger.Error("error closing catalogue", "error", err)
	}
}

func (e *env) loadCatalogue(ctx context.Context, path string) ([]game.Game, error) {
	st, err := e.openCatalogue(path)
	if err != nil {
		return nil, err
	}
	defer e.closeCatalogue(st)

	games, err := st.LoadGames(ctx)
	if err != nil {
		return nil, outputError(e.formatter, ExitCommandError, ErrCodeStore, "failed to read catalogue", err)
	}
	e.logger.Debug("games loaded", "source", "sqlite", "path", path, "count", len(games))
	return games, nil
}

// outputError reports an error through the formatter and returns it as an
// ExitError carrying exitCode.
func outputError(formatter *OutputFormatter, exitCode int, code, message string, err error) error {
	text := message
	if err != nil {
		text = fmt.Sprintf("%s: %v", message, err)
	}
	_ = formatter.Error(code, text, nil)
	return WrapExitError(exitCode, fmt.Sprintf("%s: %s", code, message), err)
}
