package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adriangalilea/go-utils/internal/offensive"
)

var version = "0.1.0"

func main() {
	if err := execute(newRootCommand()); err != nil {
		var exit exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

// execute runs cmd and converts violations raised by the store into errors.
func execute(cmd *cobra.Command) (err error) {
	defer offensive.Recover(&err)
	return cmd.Execute()
}

// exitError ends the process with code and no message, like grep or
// printenv on a miss.
type exitError struct {
	code int
}

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }
