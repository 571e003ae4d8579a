package session

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user data directory
const AppName = "connectivity-monitor"

// PlatformDirectory resolves the per-user sessions directory for the running OS
type PlatformDirectory struct{}

// SessionsDirectory returns the platform sessions directory
func (PlatformDirectory) SessionsDirectory() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	var base string
	switch runtime.GOOS {
	case "windows":
		base = firstNonEmpty(os.Getenv("LOCALAPPDATA"), os.Getenv("APPDATA"), home)
	case "darwin":
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = firstNonEmpty(os.Getenv("XDG_DATA_HOME"), filepath.Join(home, ".local", "share"))
	}
	return filepath.Join(base, AppName, "sessions"), nil
}

// StaticDirectory is a fixed sessions directory
type StaticDirectory string

// SessionsDirectory returns the directory itself
func (d StaticDirectory) SessionsDirectory() (string, error) {
	if d == "" {
		return "", fmt.Errorf("sessions directory is empty")
	}
	return string(d), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
