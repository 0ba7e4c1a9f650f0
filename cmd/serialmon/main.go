// Command serialmon prints everything a serial device sends to stdout.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Station-Manager/serialmon/internal/selector"
)

func main() {
	os.Exit(run(defaultEnv(), os.Args[1:]))
}

// run executes the command line and maps the outcome to an exit code.
// Dismissing a menu is a normal way to quit.
func run(e *env, args []string) int {
	if args == nil {
		args = []string{}
	}
	cmd := newRootCommand(e)
	cmd.SetArgs(args)
	err := cmd.Execute()
	switch {
	case err == nil, errors.Is(err, selector.ErrCancelled):
		return 0
	default:
		fmt.Fprintln(e.stderr, "serialmon:", err)
		return 1
	}
}
