package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ferrite/internal/config"
	"ferrite/internal/lint"
	"ferrite/internal/lints"
)

// settings is everything a command resolves before touching sources:
// global flags, the lint registry and the effective ferrite.toml.
type settings struct {
	reg     *lint.Registry
	cfg     *config.Config
	logger  *log.Logger
	color   bool
	quiet   bool
	timings bool
}

// readColorMode resolves --color; auto means stdout is a terminal and
// NO_COLOR is unset.
func readColorMode(value string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return os.Getenv("NO_COLOR") == "" && isTerminal(os.Stdout), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// setColor switches the package-level fatih/color default, which
// version.Colored relies on.
func setColor(enabled bool) {
	color.NoColor = !enabled
}

func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "ferrite"})
	logger.SetLevel(lvl)
	return logger, nil
}

// loadSettings reads the global flags, discovers ferrite.toml for target and
// applies the --allow/--warn/--deny overrides when cmd has them.
func loadSettings(cmd *cobra.Command, target string) (*settings, error) {
	flags := cmd.Root().PersistentFlags()
	colorMode, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	logLevel, err := flags.GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	manifest, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	s := &settings{quiet: quiet, timings: timings}
	if s.color, err = readColorMode(colorMode); err != nil {
		return nil, err
	}
	setColor(s.color)

	if s.logger, err = newLogger(logLevel); err != nil {
		return nil, err
	}
	if s.reg, err = lints.NewRegistry(); err != nil {
		return nil, err
	}

	if manifest != "" {
		s.cfg, err = config.Load(manifest, s.reg)
	} else {
		s.cfg, err = config.Discover(target, s.reg)
	}
	if err != nil {
		return nil, err
	}
	if s.cfg.Path != "" {
		s.logger.Debug("using config", "path", s.cfg.Path)
	}
	if maxDiagnostics < 0 {
		return nil, fmt.Errorf("--max-diagnostics must not be negative")
	}
	if maxDiagnostics > 0 {
		s.cfg.MaxDiagnostics = maxDiagnostics
	}

	if cmd.Flags().Lookup("deny") != nil {
		allow, _ := cmd.Flags().GetStringSlice("allow")
		warn, _ := cmd.Flags().GetStringSlice("warn")
		deny, _ := cmd.Flags().GetStringSlice("deny")
		if err := s.cfg.Override(s.reg, allow, warn, deny); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// addLevelFlags registers the clippy-style level overrides on cmd.
func addLevelFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("allow", "A", nil, "allow the named lints (repeatable)")
	cmd.Flags().StringSliceP("warn", "W", nil, "warn on the named lints (repeatable)")
	cmd.Flags().StringSliceP("deny", "D", nil, "report the named lints as errors (repeatable)")
}
