// Package config holds path resolution helpers shared by the commands.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDatabasePath is where the ledger database lives when no path is
// configured. It is expanded with ExpandPath before use.
const DefaultDatabasePath = "$HOME/.local/share/planwise/planwise.db"

// ExpandPath resolves a leading ~ to the user's home directory and expands
// $VAR style environment variables. Paths that need neither are returned
// unchanged.
func ExpandPath(path string) string {
	switch {
	case path == "":
		return path
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

// DatabasePath applies the default when configured is empty and expands the
// result.
func DatabasePath(configured string) string {
	if configured == "" {
		configured = DefaultDatabasePath
	}
	return ExpandPath(configured)
}
