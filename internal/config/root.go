package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ferrite/internal/lint"
)

// FileName is the per-project configuration file.
const FileName = "ferrite.toml"

// Find walks up from startDir to locate ferrite.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	// для файла поиск начинается с его директории
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the ferrite.toml governing target. Without a
// file it returns Default() rooted at target's directory.
func Discover(target string, reg *lint.Registry) (*Config, error) {
	path, ok, err := Find(target)
	if err != nil {
		return nil, err
	}
	if !ok {
		cfg := Default()
		if abs, err := filepath.Abs(target); err == nil {
			if info, err := os.Stat(abs); err == nil && !info.IsDir() {
				abs = filepath.Dir(abs)
			}
			cfg.Root = abs
		}
		return cfg, nil
	}
	return Load(path, reg)
}
