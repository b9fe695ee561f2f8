package handlers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/store"
)

// ValidateStore checks every document and reports its health.
func ValidateStore(deps *cli.Deps) {
	health := deps.Services.Data.Validate()

	_, _ = fmt.Fprintf(deps.Stdout, "Data directory: %s\n", deps.Services.Store.Dir())
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))

	invalid := 0
	for _, h := range health {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatHealth(h))
		if h.Present && !h.Valid {
			invalid++
		}
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	if invalid == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: ✓ All documents are healthy")
		return
	}
	_, _ = fmt.Fprintf(deps.Stderr, "Status: ⚠ %d %s could not be read\n", invalid, cli.Pluralize("document", invalid))
	_, _ = fmt.Fprintln(deps.Stderr, "Hint: Restore one with 'truflow restore <document> [n]'")
}

// ExportData writes a snapshot to path, or to stdout when path is "" or "-".
func ExportData(deps *cli.Deps, path string) {
	if path == "" || path == "-" {
		if _, err := deps.Services.Data.Export(deps.Stdout); err != nil {
			fail(deps, "Failed to export data", err)
		}
		return
	}

	f, err := os.Create(path)
	if err != nil {
		fail(deps, "Failed to create export file", err,
			fmt.Sprintf("Check that the directory is writable: %s", path))
		return
	}
	snap, err := deps.Services.Data.Export(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fail(deps, "Failed to export data", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Exported %d %s, %d %s and %d time %s to %s\n",
		len(snap.Projects), cli.Pluralize("project", len(snap.Projects)),
		len(snap.Tasks), cli.Pluralize("task", len(snap.Tasks)),
		len(snap.TimeLogs), cli.Pluralize("log", len(snap.TimeLogs)),
		path)
}

// ImportData replaces local collections with those in the snapshot at path
// ("-" reads stdin). Overwritten documents are backed up first.
func ImportData(deps *cli.Deps, path string, yes bool) {
	if !yes && path != "-" && !confirm(deps, "Replace local data with the contents of "+path+"? [y/N]: ") {
		_, _ = fmt.Fprintln(deps.Stdout, "Import cancelled")
		return
	}

	var r io.Reader = deps.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fail(deps, "Failed to open import file", err)
			return
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	snap, err := deps.Services.Data.Import(r)
	if err != nil {
		fail(deps, "Failed to import data", err, "The file must be a snapshot written by 'truflow export'")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Imported %d %s, %d %s and %d time %s\n",
		len(snap.Projects), cli.Pluralize("project", len(snap.Projects)),
		len(snap.Tasks), cli.Pluralize("task", len(snap.Tasks)),
		len(snap.TimeLogs), cli.Pluralize("log", len(snap.TimeLogs)))
}

// ClearData removes every document and reseeds the defaults.
func ClearData(deps *cli.Deps, yes bool) {
	if !yes && !confirm(deps, "Delete all projects, tasks, time logs and settings? [y/N]: ") {
		_, _ = fmt.Fprintln(deps.Stdout, "Clear cancelled")
		return
	}
	if err := deps.Services.Data.Clear(); err != nil {
		fail(deps, "Failed to clear data", err)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "All data cleared. Previous documents were kept as backups.")
}

// RestoreDocument lists backups for key and restores backup n from them.
func RestoreDocument(deps *cli.Deps, key string, n int) {
	backups, err := deps.Services.Data.Backups(key)
	if err != nil {
		fail(deps, "Unknown document", err)
		return
	}
	if len(backups) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No backups available for %s\n", key)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Available backups:")
	for _, b := range backups {
		if b.Number == 1 {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s (most recent)\n", b.Number, b.Path)
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s\n", b.Number, b.Path)
		}
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	if n < 1 || n > store.MaxBackupCount {
		fail(deps, fmt.Sprintf("Backup number must be between 1 and %d (got %d)", store.MaxBackupCount, n), nil)
		return
	}
	if err := deps.Services.Data.Restore(key, n); err != nil {
		fail(deps, "Failed to restore backup", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Restored %s from backup #%d\n", key, n)
}

// confirm asks a yes/no question on stdin. Only "y" or "Y" confirms.
func confirm(deps *cli.Deps, prompt string) bool {
	_, _ = fmt.Fprint(deps.Stdout, prompt)

	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}
