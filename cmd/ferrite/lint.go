package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ferrite/internal/diag"
	"ferrite/internal/diagfmt"
	"ferrite/internal/driver"
	"ferrite/internal/observ"
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] [file.fe|directory]...",
	Short: "Lint ferrite source files",
	Long:  `Lint a file or every *.fe file within a directory and report style diagnostics`,
	Args:  cobra.ArbitraryArgs,
	RunE:  runLint,
}

func init() {
	lintCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	lintCmd.Flags().Bool("suggest", false, "list fix suggestions with their edits")
	lintCmd.Flags().Bool("preview", false, "show the source after each suggested fix (implies --suggest)")
	lintCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	lintCmd.Flags().Bool("no-warnings", false, "drop warnings from the output")
	lintCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	lintCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	lintCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	lintCmd.Flags().Bool("cache", false, "reuse results from the on-disk cache ($XDG_CACHE_HOME/ferrite)")
	lintCmd.Flags().String("ui", "off", "progress UI for directories (auto|on|off)")
	addLevelFlags(lintCmd)
}

type lintFlags struct {
	format           string
	suggest          bool
	preview          bool
	withNotes        bool
	noWarnings       bool
	warningsAsErrors bool
	fullPath         bool
	jobs             int
	cache            bool
	ui               uiMode
}

func readLintFlags(cmd *cobra.Command) (lintFlags, error) {
	var f lintFlags
	var err error
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch f.format {
	case "pretty", "json", "short":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	if f.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
		return f, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if f.preview, err = cmd.Flags().GetBool("preview"); err != nil {
		return f, fmt.Errorf("failed to get preview flag: %w", err)
	}
	if f.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.noWarnings, err = cmd.Flags().GetBool("no-warnings"); err != nil {
		return f, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if f.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return f, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if f.noWarnings && f.warningsAsErrors {
		return f, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	if f.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return f, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if f.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if f.jobs < 0 {
		return f, fmt.Errorf("--jobs must not be negative")
	}
	if f.cache, err = cmd.Flags().GetBool("cache"); err != nil {
		return f, fmt.Errorf("failed to get cache flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}
	if f.preview {
		f.suggest = true
	}
	return f, nil
}

// runLint executes the "lint" command and exits with status 1 when any
// error diagnostic (a denied lint, a syntax or I/O error) was reported.
func runLint(cmd *cobra.Command, args []string) (err error) {
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	flags, err := readLintFlags(cmd)
	if err != nil {
		return err
	}
	s, err := loadSettings(cmd, paths[0])
	if err != nil {
		return err
	}
	opts, err := driverOptions(s, flags.jobs, flags.cache)
	if err != nil {
		return err
	}
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := stopProfiling(); stopErr != nil && err == nil {
			err = stopErr
		}
	}()

	var run *driver.Run
	if flags.format == "pretty" && shouldUseTUI(flags.ui) {
		files, err := driver.ExpandPaths(paths, opts.Exclude)
		if err != nil {
			return err
		}
		run, err = runLintWithUI(cmd.Context(), "ferrite lint", files, opts)
		if err != nil {
			return err
		}
	} else {
		run, err = driver.LintPaths(cmd.Context(), paths, opts)
		if err != nil {
			return err
		}
	}

	bag := run.Bag()
	applyWarningPolicy(bag, flags)
	out := cmd.OutOrStdout()
	if err := writeDiagnostics(out, bag, run, flags, s.color); err != nil {
		return err
	}

	if s.timings {
		reports := make([]observ.Report, 0, len(run.Results))
		for _, res := range run.Results {
			reports = append(reports, res.Timing)
		}
		if err := observ.Merge(reports...).Write(cmd.ErrOrStderr()); err != nil {
			return err
		}
	}
	if !s.quiet && flags.format == "pretty" {
		fmt.Fprintln(cmd.ErrOrStderr(), summaryLine(bag, len(run.Results)))
	}
	if bag.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}

func driverOptions(s *settings, jobs int, useCache bool) (driver.Options, error) {
	opts := driver.Options{
		Registry:       s.reg,
		Levels:         s.cfg.Levels,
		MaxDiagnostics: s.cfg.MaxDiagnostics,
		Jobs:           s.cfg.Jobs,
		Exclude:        s.cfg.Excluded,
		Logger:         s.logger,
	}
	if jobs > 0 {
		opts.Jobs = jobs
	}
	if useCache {
		cache, err := driver.OpenDiskCache("ferrite")
		if err != nil {
			return opts, fmt.Errorf("failed to open cache: %w", err)
		}
		s.logger.Debug("disk cache", "dir", cache.Dir())
		opts.Cache = cache
	}
	return opts, nil
}

func writeDiagnostics(w io.Writer, bag *diag.Bag, run *driver.Run, flags lintFlags, useColor bool) error {
	pathMode := diagfmt.PathModeAuto
	if flags.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	switch flags.format {
	case "json":
		return diagfmt.JSON(w, bag, run.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     flags.withNotes,
			IncludeFixes:     flags.suggest,
			IncludePreviews:  flags.preview,
		})
	case "short":
		return diagfmt.Short(w, bag, run.FileSet, flags.withNotes)
	default:
		diagfmt.Pretty(w, bag, run.FileSet, diagfmt.PrettyOpts{
			Color:       useColor,
			PathMode:    pathMode,
			ShowNotes:   flags.withNotes,
			ShowFixes:   flags.suggest,
			ShowPreview: flags.preview,
		})
		return nil
	}
}

// applyWarningPolicy implements --no-warnings and --warnings-as-errors.
func applyWarningPolicy(bag *diag.Bag, flags lintFlags) {
	switch {
	case flags.noWarnings:
		bag.Filter(func(d diag.Diagnostic) bool { return d.Severity != diag.SevWarning })
	case flags.warningsAsErrors:
		bag.Transform(func(d diag.Diagnostic) diag.Diagnostic {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
			return d
		})
	}
}

func summaryLine(bag *diag.Bag, files int) string {
	var errs, warns int
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	parts := []string{plural(files, "file") + " checked"}
	if errs > 0 {
		parts = append(parts, plural(errs, "error"))
	}
	if warns > 0 {
		parts = append(parts, plural(warns, "warning"))
	}
	if errs == 0 && warns == 0 {
		parts = append(parts, "no issues")
	}
	return strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// lintForFix runs the driver the way `fix` needs it: no cache, no UI.
func lintForFix(ctx context.Context, s *settings, paths []string) (*driver.Run, error) {
	opts, err := driverOptions(s, 0, false)
	if err != nil {
		return nil, err
	}
	return driver.LintPaths(ctx, paths, opts)
}
