// Package main provides the nfetch command-line tool. It probes the running
// machine, picks an ASCII logo for its operating system and prints both side
// by side, or emits the same information as plain lines or JSON.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"nfetch/sysinfo"
)

// Exit codes.
const (
	exitOK         = 0
	exitFailure    = 1
	exitConfig     = 2
	exitUnknownArt = 3
)

// exitError carries the process exit code alongside the error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// exitCode maps an error returned by the root command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitFailure
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd(sysinfo.NewProber()).ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nfetch: %v\n", err)
	}
	stop()
	os.Exit(exitCode(err))
}
