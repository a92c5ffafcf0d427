/*
Command-line tool for creating and verifying password hashes.

Usage:

	$ passhash [<flags>] <subcommand> [<args> ...]

Use 'passhash help' to see more details.
*/
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/hasbyte1/go-passhash/internal/cli"
)

func main() {
	if err := cli.NewApp().Run(os.Args[1:]); err != nil {
		if !errors.Is(err, cli.ErrMismatch) {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}

		os.Exit(1)
	}
}
