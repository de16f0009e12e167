package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/boardplan/internal/column"
	"github.com/roach88/boardplan/internal/game"
	"github.com/roach88/boardplan/internal/gamelist"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failure (bad selector, unwritable list, unknown name)
	ExitCommandError = 2 // Command error (invalid flags, missing game source, bad config)
)

// Error codes shared by every command. E1xx are selection errors.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeConfig      = "E002" // Config load or validation error
	ErrCodeNoSource    = "E003" // Neither --data nor --db resolved
	ErrCodeLoadFailed  = "E004" // Game source could not be read
	ErrCodeStore       = "E005" // SQLite catalogue error
	ErrCodeWriteFailed = "E006" // File write error
	ErrCodeColumn      = "E007" // Unknown sort column
	ErrCodeNotFound    = "E008" // No catalogue game has the name

	ErrCodeOutOfRange      = "E101" // Index or range outside the candidates
	ErrCodeInvalidSelector = "E102" // Selector matched nothing
)

// ExitError carries the process exit code for an error that was already
// reported to the user.
type ExitError struct {
	Code    int    // ExitFailure or ExitCommandError
	Message string // "<error code>: <message>"
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps err, which may be nil, with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// TextRenderer is implemented by command results that know their own text
// form. Results without it are printed with fmt.
type TextRenderer interface {
	Text() string
}

// OutputFormatter prints command results as text or as JSON responses.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // diagnostics; falls back to Writer
	Verbose   bool
	Session   string // shell session id, stamped on JSON responses
}

// CLIResponse is the JSON envelope of every response.
type CLIResponse struct {
	Status  string      `json:"status"` // "ok" or "error"
	Data    interface{} `json:"data,omitempty"`
	Error   *CLIError   `json:"error,omitempty"`
	Session string      `json:"session,omitempty"`
}

// CLIError is the error part of a CLIResponse.
type CLIError struct {
	Code    string      `json:"code"` // "E001", "E101", etc.
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (f *OutputFormatter) isJSON() bool { return f.Format == "json" }

func (f *OutputFormatter) respond(resp CLIResponse) error {
	resp.Session = f.Session
	return json.NewEncoder(f.Writer).Encode(resp)
}

// Success prints data: its Text form in text mode, an "ok" response in JSON.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.isJSON() {
		return f.respond(CLIResponse{Status: "ok", Data: data})
	}
	if r, ok := data.(TextRenderer); ok {
		_, err := fmt.Fprintln(f.Writer, r.Text())
		return err
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Reply prints text in text mode and data as an "ok" response in JSON.
// It is for results whose text is a sentence rather than a rendering of
// data.
func (f *OutputFormatter) Reply(text string, data interface{}) error {
	if f.isJSON() {
		return f.respond(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, text)
	return err
}

// Error prints an error response. Details are shown in text mode only when
// verbose.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.isJSON() {
		return f.respond(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// SelectionFailed reports a gamelist error and returns its code.
func (f *OutputFormatter) SelectionFailed(err error) string {
	code, message := selectionError(err)
	_ = f.Error(code, message, nil)
	return code
}

// VerboseLog prints a diagnostic line to ErrWriter when verbose, so JSON on
// Writer stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// selectionError maps a gamelist error onto a CLI code and its message.
func selectionError(err error) (code, message string) {
	var selErr *gamelist.SelectionError
	if !errors.As(err, &selErr) {
		return ErrCodeGeneric, err.Error()
	}
	switch {
	case gamelist.IsOutOfRange(err):
		return ErrCodeOutOfRange, selErr.Message
	case gamelist.IsInvalidSelector(err):
		return ErrCodeInvalidSelector, selErr.Message
	default:
		return ErrCodeGeneric, selErr.Message
	}
}

// describeGames renders one game per line showing col, or a note when
// there are none.
func describeGames(games []game.Game, col column.Column) string {
	if len(games) == 0 {
		return "No games match."
	}
	lines := make([]string, len(games))
	for i, g := range games {
		lines[i] = column.Describe(g, col)
	}
	return strings.Join(lines, "\n")
}

// numberNames renders names as a 1-based numbered list.
func numberNames(names []string) string {
	if len(names) == 0 {
		return "The list is empty."
	}
	lines := make([]string, len(names))
	for i, n := range names {
		lines[i] = fmt.Sprintf("%d. %s", i+1, n)
	}
	return strings.Join(lines, "\n")
}
