package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // path to a boardplan.toml
	Data    string // CSV game source
	DB      string // SQLite game catalogue
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the boardplan CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "boardplan",
		Short: "boardplan - narrow a board game collection and keep a play list",
		Long: `Filter a board game collection with small comparison expressions
(min_players>=2,name~=go), sort the result on any column and pick
games into a saved list by index, range, name or "all".

Games are read from a CSV export (--data) or a SQLite catalogue (--db).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (default ./boardplan.toml)")
	cmd.PersistentFlags().StringVar(&opts.Data, "data", "", "path to a games CSV file")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "path to a SQLite game catalogue")

	cmd.AddCommand(NewFilterCommand(opts))
	cmd.AddCommand(NewShellCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewLookupCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
