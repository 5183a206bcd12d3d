// Package security guards the static asset routes against requests that
// would read outside their asset directory.
package security

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathEscape is returned when a path resolves outside its root.
var ErrPathEscape = errors.New("path escapes asset directory")

// canonical resolves symlinks in path. When path does not exist yet the
// nearest existing ancestor is resolved instead and the remainder re-joined,
// so a dangling name under a symlinked directory still resolves to where it
// would really be created.
func canonical(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	check := path
	for {
		parent := filepath.Dir(check)
		if parent == check {
			return path
		}
		if resolved, err := filepath.EvalSymlinks(parent); err == nil {
			rel, _ := filepath.Rel(parent, path)
			return filepath.Join(resolved, rel)
		}
		check = parent
	}
}

// ValidatePathWithinDirectory checks that filePath, after cleaning and
// symlink resolution, lies inside safeDir.
func ValidatePathWithinDirectory(filePath, safeDir string) error {
	absPath, err := filepath.Abs(filepath.Clean(filePath))
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	absRoot, err := filepath.Abs(safeDir)
	if err != nil {
		return fmt.Errorf("failed to resolve asset directory: %w", err)
	}
	root, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve asset directory symlinks: %w", err)
	}

	rel, err := filepath.Rel(root, canonical(absPath))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPathEscape, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return fmt.Errorf("%w: %s is outside %s", ErrPathEscape, filePath, safeDir)
	}
	return nil
}

// ResolveWithin maps a request-relative name (as taken from a URL path) onto
// a file path inside root. Absolute names, empty names and names that climb
// out of root are rejected.
func ResolveWithin(root, name string) (string, error) {
	name = filepath.FromSlash(strings.TrimPrefix(name, "/"))
	if name == "" || name == "." {
		return "", fmt.Errorf("%w: empty name", ErrPathEscape)
	}
	if filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", fmt.Errorf("%w: absolute name %q", ErrPathEscape, name)
	}
	p := filepath.Join(root, name)
	if err := ValidatePathWithinDirectory(p, root); err != nil {
		return "", err
	}
	return p, nil
}
