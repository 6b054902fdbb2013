// Package filesystem holds small path helpers shared by the adapters.
package filesystem

import (
	"os"
	"path/filepath"

	"github.com/freand76/kalkon/internal/domain"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// ConfigDir returns the directory kalkon keeps its state in,
// ~/.kalkon by default. The directory is not created here.
func ConfigDir() string {
	return filepath.Join(UserHomeDir(), domain.ConfigDirName)
}
