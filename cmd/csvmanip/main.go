// Command csvmanip computes columns and joins CSV files.
//
// Usage:
//
//	csvmanip COMPUTE -i in.csv -o out.csv -e 'a*b' [-f a,result] [-h]
//	csvmanip JOIN -l left.csv -r right.csv -o out.csv -u id -v id [-t inner|outer] [-h]
//
// Defaults come from CSVMANIP_* environment variables, optionally set in a
// .env file in the working directory. Flags override them.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitUsage   = 2
)

// runtimeError marks failures that happen after the arguments were accepted.
// Every other error returned by a command is a usage error.
type runtimeError struct {
	err error
}

func (e *runtimeError) Error() string { return e.err.Error() }
func (e *runtimeError) Unwrap() error { return e.err }

func runtimeFailure(err error) error {
	if err == nil {
		return nil
	}
	return &runtimeError{err: err}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line args and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)

	cmd, err := root.ExecuteC()
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	var rerr *runtimeError
	if errors.As(err, &rerr) {
		return exitRuntime
	}
	fmt.Fprintf(stderr, "\n%s", cmd.UsageString())
	return exitUsage
}
