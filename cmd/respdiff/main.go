// Command respdiff compares JSON documents structurally: key order and
// whitespace do not matter, moved lines are reported as moves, and volatile
// fields can be excluded by path.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Exit codes follow diff(1).
const (
	exitOK          = 0
	exitDifferences = 1
	exitError       = 2
)

// errDifferences is returned by compare --exit-code when the documents differ.
var errDifferences = errors.New("documents differ")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	defer a.close()

	root := rootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errDifferences) {
			return exitDifferences
		}
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return exitError
	}
	return exitOK
}
