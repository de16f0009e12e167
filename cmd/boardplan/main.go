// Command boardplan filters a board game collection and keeps a play list.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/boardplan/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			// Already reported by the command's formatter.
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCommandError)
	}
}
