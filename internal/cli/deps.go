package cli

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/xolan/truflow/internal/service"
)

// Deps is what a command handler reads from and writes to. Handlers never
// touch os streams or call os.Exit directly.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// IsTerminal reports whether Stdout is an interactive terminal.
	IsTerminal func() bool

	// Services is opened per command by the root PersistentPreRunE.
	Services *service.Services
}

// DefaultDeps binds the process streams with no services attached.
func DefaultDeps() *Deps {
	return NewDeps(nil)
}

// NewDeps binds the process streams to services.
func NewDeps(services *service.Services) *Deps {
	return &Deps{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stdin:      os.Stdin,
		Exit:       os.Exit,
		IsTerminal: StdoutIsTerminal,
		Services:   services,
	}
}

// StdoutIsTerminal reports whether os.Stdout is attached to a terminal.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var deps = DefaultDeps()

// SetDeps swaps the deps handed to commands.
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps restores the process streams and drops any services.
func ResetDeps() {
	deps = DefaultDeps()
}

func GetDeps() *Deps {
	return deps
}
