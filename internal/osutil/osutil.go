// Package osutil locates and creates the directories truflow keeps files in.
package osutil

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName is the directory name used under the user config directory.
const AppName = "truflow"

// Dirs holds the OS lookups behind directory resolution. Nil fields fall
// back to the real implementation.
type Dirs struct {
	ConfigDir func() (string, error)
	HomeDir   func() (string, error)
	MkdirAll  func(path string, perm os.FileMode) error
}

// System returns the lookups backed by the os package.
func System() Dirs {
	return Dirs{
		ConfigDir: os.UserConfigDir,
		HomeDir:   os.UserHomeDir,
		MkdirAll:  os.MkdirAll,
	}
}

var current = System()

// Use installs d until the returned func is called.
func Use(d Dirs) (restore func()) {
	sys := System()
	if d.ConfigDir == nil {
		d.ConfigDir = sys.ConfigDir
	}
	if d.HomeDir == nil {
		d.HomeDir = sys.HomeDir
	}
	if d.MkdirAll == nil {
		d.MkdirAll = sys.MkdirAll
	}
	prev := current
	current = d
	return func() { current = prev }
}

// AppDir returns <config dir>/truflow, creating it if needed.
func AppDir() (string, error) {
	base, err := current.ConfigDir()
	if err != nil {
		return "", err
	}
	return EnsureDir(filepath.Join(base, AppName))
}

// EnsureDir creates dir and its parents and returns it unchanged.
func EnsureDir(dir string) (string, error) {
	if err := current.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// ExpandHome replaces a leading "~" path element with the home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := current.HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}
