// Package config loads ferrite.toml: lint levels and driver settings.
//
//	[lints]
//	redundant_field_names = "deny"
//
//	[lint]
//	max-diagnostics = 200
//	jobs = 4
//	exclude = ["vendor/**", "*_gen.fe"]
package config

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"ferrite/internal/lint"
)

// DefaultMaxDiagnostics caps diagnostics per file when nothing else is set.
const DefaultMaxDiagnostics = 500

// Config is the resolved configuration for one lint invocation.
type Config struct {
	// Path is the ferrite.toml that was loaded; empty for defaults.
	Path string
	// Root is the directory exclude globs are relative to.
	Root           string
	Levels         lint.Levels
	MaxDiagnostics int
	// Jobs limits parallel files; 0 means GOMAXPROCS.
	Jobs    int
	Exclude []string
}

type fileConfig struct {
	Lints map[string]string `toml:"lints"`
	Lint  lintSection       `toml:"lint"`
}

type lintSection struct {
	MaxDiagnostics int      `toml:"max-diagnostics"`
	Jobs           int      `toml:"jobs"`
	Exclude        []string `toml:"exclude"`
}

// Default returns the configuration used without a ferrite.toml.
func Default() *Config {
	return &Config{MaxDiagnostics: DefaultMaxDiagnostics}
}

// Load parses the ferrite.toml at manifest. Lint names are checked against reg.
func Load(manifest string, reg *lint.Registry) (*Config, error) {
	var fc fileConfig
	meta, err := toml.DecodeFile(manifest, &fc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", manifest, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", manifest, strings.Join(keys, ", "))
	}

	cfg := Default()
	cfg.Path = manifest
	cfg.Root = filepath.Dir(manifest)

	names := make([]string, 0, len(fc.Lints))
	for name := range fc.Lints {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		level, err := lint.ParseLevel(fc.Lints[name])
		if err != nil {
			return nil, fmt.Errorf("%s: [lints].%s: %w", manifest, name, err)
		}
		if err := cfg.Levels.Set(reg, name, level); err != nil {
			return nil, fmt.Errorf("%s: [lints].%s: %w", manifest, name, err)
		}
	}

	if meta.IsDefined("lint", "max-diagnostics") {
		if fc.Lint.MaxDiagnostics <= 0 {
			return nil, fmt.Errorf("%s: [lint].max-diagnostics must be positive", manifest)
		}
		cfg.MaxDiagnostics = fc.Lint.MaxDiagnostics
	}
	if fc.Lint.Jobs < 0 {
		return nil, fmt.Errorf("%s: [lint].jobs must not be negative", manifest)
	}
	cfg.Jobs = fc.Lint.Jobs
	for _, pattern := range fc.Lint.Exclude {
		if _, err := matchPattern(pattern, ""); err != nil {
			return nil, fmt.Errorf("%s: [lint].exclude: bad pattern %q: %w", manifest, pattern, err)
		}
	}
	cfg.Exclude = fc.Lint.Exclude
	return cfg, nil
}

// Override applies command-line levels on top of the file. Allow is applied
// first and deny last, so deny wins when a name is repeated.
func (c *Config) Override(reg *lint.Registry, allow, warn, deny []string) error {
	apply := func(names []string, level lint.Level) error {
		for _, name := range names {
			if err := c.Levels.Set(reg, name, level); err != nil {
				return fmt.Errorf("--%s %s: %w", level, name, err)
			}
		}
		return nil
	}
	return errors.Join(apply(allow, lint.Allow), apply(warn, lint.Warn), apply(deny, lint.Deny))
}

// Excluded reports whether file matches one of the exclude globs. Patterns
// are relative to Root; a pattern without '/' also matches the base name,
// and a trailing "/**" matches everything below a directory.
func (c *Config) Excluded(file string) bool {
	if len(c.Exclude) == 0 {
		return false
	}
	rel := filepath.ToSlash(file)
	if c.Root != "" {
		if abs, err := filepath.Abs(file); err == nil {
			if r, err := filepath.Rel(c.Root, abs); err == nil && !strings.HasPrefix(r, "..") {
				rel = filepath.ToSlash(r)
			}
		}
	}
	for _, pattern := range c.Exclude {
		if matchGlob(pattern, rel) {
			return true
		}
	}
	return false
}

func matchGlob(pattern, rel string) bool {
	if dir, ok := strings.CutSuffix(pattern, "/**"); ok {
		for prefix := path.Dir(rel); prefix != "." && prefix != "/"; prefix = path.Dir(prefix) {
			if m, _ := matchPattern(dir, prefix); m {
				return true
			}
		}
		return false
	}
	if m, _ := matchPattern(pattern, rel); m {
		return true
	}
	if !strings.Contains(pattern, "/") {
		m, _ := matchPattern(pattern, path.Base(rel))
		return m
	}
	return false
}

// matchPattern is path.Match without the "/**" suffix; an empty name only
// validates the pattern.
func matchPattern(pattern, name string) (bool, error) {
	return path.Match(strings.TrimSuffix(pattern, "/**"), name)
}
