package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/roach88/boardplan/internal/column"
	"github.com/roach88/boardplan/internal/config"
	"github.com/roach88/boardplan/internal/fold"
	"github.com/roach88/boardplan/internal/game"
	"github.com/roach88/boardplan/internal/gamelist"
	"github.com/roach88/boardplan/internal/planner"
)

// Prompt is printed before each command in text mode.
const Prompt = "boardplan> "

const shellHelp = `Commands:
  filter <expr>          narrow the current games, e.g. filter min_players>=2,name~=go
  sort <column> [asc|desc]
                         change the sort column and re-sort the current games
  reset                  start over from the whole collection
  show                   print the current games
  add <selector>         add current games to the list: all, 3, 2-5 or a name
  remove <selector>      remove games from the list
  list                   print the list
  count                  print the list size
  clear                  empty the list
  save [path]            write the list, one name per line
  help                   print this help
  exit                   leave the shell (unsaved changes are saved)

Selectors number games by name, as printed by list and by show after sort name.`

// NewShellCommand creates the shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive filter and pick session",
		Long: `Start a line-oriented session over the game collection.

Filters narrow the current games cumulatively until reset. Picked games
are kept in a list that can be saved as a plain text file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts, cmd)
			if err != nil {
				return err
			}
			games, err := e.loadGames(cmd.Context())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s := NewSession(games, e.cfg, e.formatter, e.logger)
			err = s.Run(ctx, cmd.InOrStdin())
			if errors.Is(err, context.Canceled) && cmd.Context().Err() == nil {
				e.logger.Info("session interrupted", "session", s.ID)
				return nil
			}
			return err
		},
	}
	return cmd
}

// GamesResult is the JSON payload for commands that print games.
type GamesResult struct {
	Sort      string      `json:"sort"`
	Ascending bool        `json:"ascending"`
	Count     int         `json:"count"`
	Games     []game.Game `json:"games"`

	sortOn column.Column
}

func (r GamesResult) Text() string { return describeGames(r.Games, r.sortOn) }

// ListResult is the JSON payload for commands that print the list.
type ListResult struct {
	Count int      `json:"count"`
	Names []string `json:"names"`
	Path  string   `json:"path,omitempty"`
}

func (r ListResult) Text() string { return numberNames(r.Names) }

// Session is one interactive shell over a planner and a game list.
type Session struct {
	ID string

	planner   *planner.Planner
	list      *gamelist.List
	sortOn    column.Column
	ascending bool
	output    string
	dirty     bool

	formatter *OutputFormatter
	logger    *slog.Logger
}

// NewSession creates a session over games using cfg for the default sort
// and list file. Every log record carries the session id.
func NewSession(games []game.Game, cfg *config.Config, formatter *OutputFormatter, logger *slog.Logger) *Session {
	id := uuid.Must(uuid.NewV7()).String()
	logger = logger.With("session", id)
	formatter.Session = id

	return &Session{
		ID:        id,
		planner:   planner.New(games, planner.WithLogger(logger)),
		list:      gamelist.New(gamelist.WithLogger(logger)),
		sortOn:    cfg.SortColumn(),
		ascending: cfg.Sort.Ascending,
		output:    cfg.List.Output,
		formatter: formatter,
		logger:    logger,
	}
}

// Run reads commands from in until exit, end of input or ctx is done.
// A terminal on stdin gets line editing and history.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	s.logger.Info("session started", "games", s.planner.Size())
	defer s.finish()

	r := s.newReader(in)
	defer r.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := readLine(ctx, r)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return WrapExitError(ExitFailure, "failed to read input", err)
		}
		if s.Execute(line) {
			return nil
		}
	}
}

// Execute runs one command line. It reports whether the session is over.
func (s *Session) Execute(line string) bool {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	if name == "" {
		return false
	}
	s.logger.Debug("command", "name", name, "arg", arg)

	switch fold.String(name) {
	case "filter":
		s.showGames(s.planner.Filter(arg, s.sortOn, s.ascending))
	case "sort":
		s.sort(arg)
	case "reset":
		s.planner.Reset()
		_ = s.formatter.Reply(fmt.Sprintf("Reset to %d games.", s.planner.Size()), GamesResult{
			Sort: s.sortOn.Name(), Ascending: s.ascending, Count: s.planner.Size(),
		})
	case "show":
		s.showGames(s.planner.Working())
	case "add":
		if err := s.list.Add(arg, s.planner.Working()); err != nil {
			s.selectionFailed(err)
			return false
		}
		s.dirty = true
		s.showCount()
	case "remove":
		if err := s.list.Remove(arg); err != nil {
			s.selectionFailed(err)
			return false
		}
		s.dirty = true
		s.showCount()
	case "list":
		s.showList()
	case "count":
		s.showCount()
	case "clear":
		s.list.Clear()
		s.dirty = true
		s.showCount()
	case "save":
		s.save(arg)
	case "help":
		_ = s.formatter.Reply(shellHelp, shellHelp)
	case "exit", "quit":
		return true
	default:
		_ = s.formatter.Error(ErrCodeGeneric, fmt.Sprintf("unknown command %q (try help)", name), nil)
	}
	return false
}

func (s *Session) sort(arg string) {
	name, order, _ := strings.Cut(arg, " ")
	col, err := column.Parse(name)
	if err != nil {
		_ = s.formatter.Error(ErrCodeColumn, err.Error(), nil)
		return
	}
	ascending := true
	switch fold.String(strings.TrimSpace(order)) {
	case "", "asc":
	case "desc":
		ascending = false
	default:
		_ = s.formatter.Error(ErrCodeGeneric, fmt.Sprintf("unknown order %q: use asc or desc", order), nil)
		return
	}
	s.sortOn, s.ascending = col, ascending
	s.showGames(s.planner.Filter("", s.sortOn, s.ascending))
}

func (s *Session) save(arg string) {
	path := arg
	if path == "" {
		path = s.output
	}
	if err := s.list.WriteFile(path); err != nil {
		s.logger.Error("failed to save game list", "path", path, "error", err)
		_ = s.formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
		return
	}
	s.dirty = false
	_ = s.formatter.Reply(fmt.Sprintf("Saved %d game(s) to %s", s.list.Count(), path), ListResult{
		Count: s.list.Count(), Names: s.list.Names(), Path: path,
	})
}

// finish saves unsaved list changes on a best-effort basis.
func (s *Session) finish() {
	if s.dirty {
		s.list.Save(s.output)
	}
	s.logger.Info("session ended", "list", s.list.Count())
}

func (s *Session) showGames(games []game.Game) {
	_ = s.formatter.Success(GamesResult{
		Sort: s.sortOn.Name(), Ascending: s.ascending, Count: len(games), Games: games, sortOn: s.sortOn,
	})
}

func (s *Session) showList() {
	names := s.list.Names()
	_ = s.formatter.Success(ListResult{Count: len(names), Names: names})
}

func (s *Session) showCount() {
	_ = s.formatter.Reply(fmt.Sprintf("%d game(s) in the list.", s.list.Count()), ListResult{
		Count: s.list.Count(), Names: s.list.Names(),
	})
}

func (s *Session) selectionFailed(err error) {
	code := s.formatter.SelectionFailed(err)
	s.logger.Debug("selection rejected", "code", code, "error", err)
}

// readLine waits for the next line from r or for ctx to be done, whichever
// comes first. A read still blocked when ctx is done is abandoned; the
// process is about to exit.
func readLine(ctx context.Context, r lineReader) (string, error) {
	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := r.ReadLine()
		done <- result{line, err}
	}()

	select {
	case res := <-done:
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// lineReader yields command lines, prompting as it sees fit.
// ReadLine returns io.EOF at the end of input.
type lineReader interface {
	ReadLine() (string, error)
	Close() error
}

func (s *Session) newReader(in io.Reader) lineReader {
	if f, ok := in.(*os.File); ok && f == os.Stdin && s.formatter.Format != "json" &&
		isatty.IsTerminal(f.Fd()) && liner.TerminalSupported() {
		state := liner.NewLiner()
		state.SetCtrlCAborts(true)
		return &termReader{state: state}
	}
	return &scanReader{scanner: bufio.NewScanner(in), prompt: s.prompt}
}

type scanReader struct {
	scanner *bufio.Scanner
	prompt  func()
}

func (r *scanReader) ReadLine() (string, error) {
	r.prompt()
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *scanReader) Close() error { return nil }

type termReader struct {
	state *liner.State
}

func (r *termReader) ReadLine() (string, error) {
	line, err := r.state.Prompt(Prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		r.state.AppendHistory(line)
	}
	return line, nil
}

func (r *termReader) Close() error { return r.state.Close() }

func (s *Session) prompt() {
	if s.formatter.Format == "json" {
		return
	}
	fmt.Fprint(s.formatter.Writer, Prompt)
}
