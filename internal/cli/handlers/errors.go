// Package handlers implements the truflow commands against the service layer.
// Each handler writes to deps.Stdout/Stderr and calls deps.Exit(1) on failure.
package handlers

import (
	"errors"
	"fmt"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/service"
)

// fail prints an error block and exits with status 1.
func fail(deps *cli.Deps, summary string, err error, hints ...string) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %s\n", summary)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
	for _, hint := range hints {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}

// failLookup reports an ID lookup failure with a hint on how to list IDs.
func failLookup(deps *cli.Deps, what string, id string, err error, listCmd string) {
	switch {
	case errors.Is(err, service.ErrAmbiguousID):
		fail(deps, fmt.Sprintf("ID '%s' matches more than one %s", id, what), nil,
			"Use more characters of the ID")
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrEmptyID):
		fail(deps, fmt.Sprintf("No %s found with ID '%s'", what, id), nil,
			fmt.Sprintf("List IDs with '%s'", listCmd))
	default:
		fail(deps, fmt.Sprintf("Failed to update %s", what), err)
	}
}
