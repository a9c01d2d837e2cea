// Package main is the entry point for the redline CLI.
package main

import (
	"log/slog"
	"os"

	"github.com/roach88/redline/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := setupLogger()
	slog.SetDefault(logger)

	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		code := cli.GetExitCode(err)
		// Commands render their own user-facing error output; this is
		// the diagnostic trail for scripts and log collectors.
		logger.Debug("command failed", "error", err, "exit_code", code)
		return code
	}
	return cli.ExitSuccess
}

func setupLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("REDLINE_DEBUG") != "" {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
