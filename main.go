package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/xolan/truflow/cmd"
	"github.com/xolan/truflow/internal/config"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitFunc is os.Exit, replaced in tests
var exitFunc = os.Exit

func main() {
	exitFunc(run())
}

// run executes the CLI and returns the process exit code.
func run() int {
	if _, err := config.GetConfigPath(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: cannot locate the config directory: %v\n", err)
		return 1
	}

	cmd.SetVersionInfo(version, commit, date)

	// Ctrl+C stops a foreground Pomodoro cleanly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		return 1
	}
	return 0
}
