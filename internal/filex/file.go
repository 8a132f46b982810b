// Package filex holds small filesystem helpers for locating local state.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureSubdDir creates dirName (relative to the working directory unless it
// is absolute) and returns its absolute path.
func EnsureSubdDir(dirName string) (string, error) {
	dir := dirName
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dirName)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// PathIn returns name unchanged when it is absolute, otherwise it joins name
// onto dirName after making sure the directory exists.
func PathIn(dirName, name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	dir, err := EnsureSubdDir(dirName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
