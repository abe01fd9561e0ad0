// Package security validates user-supplied file paths before the task store
// touches the filesystem.
package security

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyPath     = errors.New("file path cannot be empty")
	ErrForbiddenPath = errors.New("file path contains forbidden character")
)

// forbiddenChars may not appear anywhere in a task file path.
const forbiddenChars = ";&|$`<>\n\r\x00"

// ValidateFilePath cleans path, makes it absolute and resolves symlinks when
// the target exists. A path that does not exist yet is returned cleaned.
func ValidateFilePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}
	if i := strings.IndexAny(path, forbiddenChars); i >= 0 {
		return "", fmt.Errorf("%w %q: %s", ErrForbiddenPath, path[i], path)
	}

	cleanPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cleanPath, nil
		}
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}
	return resolved, nil
}

// SafeReadFile is os.ReadFile behind ValidateFilePath.
func SafeReadFile(path string) ([]byte, error) {
	cleanPath, err := ValidateFilePath(path)
	if err != nil {
		return nil, err
	}
	// #nosec G304 - path is validated above
	return os.ReadFile(cleanPath)
}
