// Package main provides the CLI entrypoint for mdvalidate.
// It loads configuration, initializes logging and metrics, runs the validator
// over a directory tree and maps the resulting report to the exit status.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"mdvalidate/internal/report"
	"mdvalidate/pkg/logger"

	"go.uber.org/zap"
)

// exitError carries a non-zero exit status for a run that completed but found issues.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// exitCode maps the error returned by the root command to the process exit
// status. Errors other than exitError are printed to stderr.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return report.ExitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}

	_, _ = fmt.Fprintf(stderr, "mdvalidate: %v\n", err)

	return report.ExitFailure
}

// main builds the root Cobra command and executes it with a context that is
// cancelled on SIGINT/SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync()

			panic(p)
		}
	}()

	err := rootCommand(defaultDeps()).ExecuteContext(ctx)
	stop()
	logger.Sync()

	os.Exit(exitCode(err, os.Stderr)) //nolint: gocritic
}
