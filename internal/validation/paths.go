package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DataPathValidator checks the file paths the client writes to (session
// database, log file) before they reach bbolt or lumberjack. It expands
// tildes, normalizes, and rejects traversal attempts and control bytes.
type DataPathValidator struct {
	MaxPathLength int
}

func NewDataPathValidator() *DataPathValidator {
	return &DataPathValidator{MaxPathLength: 4096}
}

// ValidateAndExpand validates path and returns its absolute, cleaned form.
func (v *DataPathValidator) ValidateAndExpand(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if len(path) > v.MaxPathLength {
		return "", fmt.Errorf("path too long (max %d characters)", v.MaxPathLength)
	}

	if strings.Contains(path, "\x00") {
		return "", fmt.Errorf("path contains null bytes")
	}
	for _, r := range path {
		if r < 32 && r != '\t' {
			return "", fmt.Errorf("path contains control characters")
		}
	}

	if strings.HasPrefix(path, "~") {
		if !strings.HasPrefix(path, "~/") {
			return "", fmt.Errorf("invalid tilde usage")
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("cannot make path absolute: %w", err)
		}
		path = abs
	}

	clean := filepath.Clean(path)
	for _, component := range strings.Split(filepath.ToSlash(clean), "/") {
		if component == ".." {
			return "", fmt.Errorf("directory traversal not allowed")
		}
	}

	return clean, nil
}

// SessionPath validates userPath or falls back to the default session
// database location, ensuring the parent directory exists.
func (v *DataPathValidator) SessionPath(userPath string) (string, error) {
	if userPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		userPath = filepath.Join(home, ".akiba.db")
	}

	path, err := v.ValidateAndExpand(userPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating session directory: %w", err)
	}

	return path, nil
}
