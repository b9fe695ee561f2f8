package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/service"
)

// skipServices marks commands that run without opening the data directory.
const skipServices = "truflow/skip-services"

// newServices builds the production services. Tests replace it.
var newServices = service.NewServices

// initServices opens the data directory for the invoked command and installs
// the services in the CLI deps. Deps that already carry services are kept.
func initServices(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[skipServices] == "true" {
		return nil
	}
	deps := cli.GetDeps()
	if deps.Services != nil {
		return nil
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	services, err := newServices(verbose)
	if err != nil {
		return fmt.Errorf("failed to open data directory: %w", err)
	}
	deps.Services = services
	services.Logger.Debug("command started", "command", cmd.CommandPath())
	return nil
}

// closeServices stops the Pomodoro ticker and flushes the log file.
func closeServices(cmd *cobra.Command, _ []string) {
	deps := cli.GetDeps()
	if deps.Services == nil || cmd.Annotations[skipServices] == "true" {
		return
	}
	if err := deps.Services.Close(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: %v\n", err)
	}
	deps.Services = nil
}
