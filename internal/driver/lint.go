package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"fortio.org/safecast"
	"github.com/charmbracelet/log"

	"ferrite/internal/ast"
	"ferrite/internal/config"
	"ferrite/internal/diag"
	"ferrite/internal/lexer"
	"ferrite/internal/lint"
	"ferrite/internal/lints"
	"ferrite/internal/observ"
	"ferrite/internal/parser"
	"ferrite/internal/source"
	"ferrite/internal/suppress"
)

// Options configures a lint run.
type Options struct {
	// Registry defaults to the builtin lints.
	Registry *lint.Registry
	Levels   lint.Levels
	// MaxDiagnostics caps diagnostics per file; 0 means config.DefaultMaxDiagnostics.
	MaxDiagnostics int
	// Jobs limits parallel files in LintDir; 0 means GOMAXPROCS.
	Jobs int
	// Exclude skips files in LintDir; nil keeps everything.
	Exclude  func(path string) bool
	Cache    *DiskCache
	Progress ProgressSink
	// Logger receives debug events; nil discards them.
	Logger *log.Logger
}

// Result is the outcome of linting one file.
type Result struct {
	Path    string
	FileSet *source.FileSet
	FileID  source.FileID
	Bag     *diag.Bag
	// SyntaxErrors is set when parsing failed; lints are not run then.
	SyntaxErrors bool
	Cached       bool
	Timing       observ.Report
}

func (o *Options) normalize() error {
	if o.Registry == nil {
		reg, err := lints.NewRegistry()
		if err != nil {
			return err
		}
		o.Registry = reg
	}
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = config.DefaultMaxDiagnostics
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return nil
}

// LintSource lints content as a virtual file called name.
func LintSource(name string, content []byte, opts Options) (*Result, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return lintLoaded(context.Background(), fs, fileID, opts), nil
}

// LintFile loads path from disk and lints it.
func LintFile(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return lintLoaded(ctx, fs, fileID, opts), nil
}

// lintLoaded runs parse, suppression collection and the lint passes over one
// file that is already in fs.
func lintLoaded(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) *Result {
	src := fs.Get(fileID)
	res := &Result{
		Path:    src.Path,
		FileSet: fs,
		FileID:  fileID,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	logger := opts.Logger.With("file", src.Path)
	timer := observ.NewTimer()
	started := time.Now()

	key := cacheKey(src.Hash, opts.Levels, opts.MaxDiagnostics)
	if opts.Cache != nil {
		idx := timer.Begin("cache")
		var payload DiskPayload
		ok, err := opts.Cache.Get(key, &payload)
		timer.End(idx, "")
		switch {
		case err != nil:
			logger.Warn("cache read failed", "err", err)
		case ok:
			if diags, ok := payload.restore(fileID); ok {
				for _, d := range diags {
					res.Bag.Add(d)
				}
				res.SyntaxErrors = payload.SyntaxErrors
				res.Cached = true
				res.Timing = timer.Report()
				logger.Debug("cache hit", "diagnostics", len(diags))
				emit(opts.Progress, Event{File: src.Path, Stage: StageLint, Status: StatusCached, Elapsed: time.Since(started)})
				return res
			}
		}
	}

	emit(opts.Progress, Event{File: src.Path, Stage: StageParse, Status: StatusWorking})
	// восстановление парсера может повторять одну и ту же ошибку
	reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: res.Bag})
	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		maxErrors = 0
	}
	idx := timer.Begin("parse")
	tree := ast.NewBuilder(ast.Hints{}, nil)
	parsed := parser.ParseFile(fs, lexer.New(src, lexer.Options{Reporter: reporter}), tree, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})
	timer.End(idx, "")

	if res.Bag.HasErrors() {
		res.SyntaxErrors = true
		logger.Debug("syntax errors, lints skipped", "diagnostics", res.Bag.Len())
	} else if ctx.Err() == nil {
		emit(opts.Progress, Event{File: src.Path, Stage: StageLint, Status: StatusWorking})

		idx = timer.Begin("suppress")
		set := suppress.Collect(tree, parsed.File, src, opts.Registry, reporter)
		timer.End(idx, fmt.Sprintf("%d directives", set.Len()))

		idx = timer.Begin("lint")
		run := lint.Run(opts.Registry, tree, parsed.File, src, lint.Options{
			Levels:     opts.Levels,
			Suppressed: set.Func(src),
		})
		emitted := 0
		for d := range run {
			if !res.Bag.Add(d) {
				logger.Debug("diagnostic limit reached", "max", opts.MaxDiagnostics)
				break
			}
			emitted++
		}
		timer.End(idx, fmt.Sprintf("%d diagnostics", emitted))
	}
	res.Bag.Sort()
	res.Timing = timer.Report()

	if opts.Cache != nil && ctx.Err() == nil {
		if err := opts.Cache.Put(key, newDiskPayload(res)); err != nil {
			logger.Warn("cache write failed", "err", err)
		}
	}

	status := StatusDone
	if res.Bag.HasErrors() {
		status = StatusError
	}
	emit(opts.Progress, Event{File: src.Path, Stage: StageLint, Status: status, Elapsed: time.Since(started)})
	logger.Debug("linted", "diagnostics", res.Bag.Len(), "elapsed", time.Since(started))
	return res
}

// ErrNoFiles is returned by LintDir when nothing matched.
var ErrNoFiles = errors.New("no .fe files found")
