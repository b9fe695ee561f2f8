package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/xolan/truflow/internal/cli"
)

// ShowConfig prints the effective configuration and where it came from.
func ShowConfig(deps *cli.Deps) {
	svc := deps.Services.Config
	cfg := svc.Get()
	w := deps.Stdout

	status := "Using defaults (no config file)"
	if svc.Exists() {
		status = "File exists"
	}
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "(config directory)"
	}

	_, _ = fmt.Fprintf(w, "Configuration:\n%s\n", strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(w, "Config file: %s\nStatus: %s\n", svc.Path(), status)
	rule(w)
	for _, kv := range [][2]string{
		{"data_dir", dataDir},
		{"theme", cfg.Theme},
		{"sync_timeout_seconds", fmt.Sprint(cfg.SyncTimeoutSeconds)},
		{"log_file", fmt.Sprint(cfg.LogFile)},
	} {
		_, _ = fmt.Fprintf(w, "%-21s %s\n", kv[0]+":", kv[1])
	}
	rule(w)
	_, _ = fmt.Fprintf(w, "Data directory: %s\n", deps.Services.Store.Dir())
}

func rule(w io.Writer) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 50))
}

func ShowConfigPath(deps *cli.Deps) {
	_, _ = fmt.Fprintln(deps.Stdout, deps.Services.Config.Path())
}

// InitConfig writes the sample config file. An existing file is left alone.
func InitConfig(deps *cli.Deps) {
	if err := deps.Services.Config.Init(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", deps.Services.Config.Path())
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to customize your settings.")
}
