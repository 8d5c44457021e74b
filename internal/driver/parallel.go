package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"ferrite/internal/diag"
	"ferrite/internal/source"
)

// Ext is the source file extension picked up from directories.
const Ext = ".fe"

// Run is the outcome of linting a set of files.
type Run struct {
	FileSet *source.FileSet
	// Results follow the sorted file order, whatever order workers finished in.
	Results []*Result
}

// Bag merges every file's diagnostics into one sorted bag.
func (r *Run) Bag() *diag.Bag {
	total := 0
	for _, res := range r.Results {
		total += res.Bag.Len()
	}
	bag := diag.NewBag(max(total, 1))
	for _, res := range r.Results {
		bag.Merge(res.Bag)
	}
	bag.Sort()
	return bag
}

// HasErrors reports whether any file produced an error diagnostic.
func (r *Run) HasErrors() bool {
	for _, res := range r.Results {
		if res.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// listFiles возвращает отсортированный список всех *.fe файлов в директории.
// Скрытые каталоги (".git" и т.п.) пропускаются, exclude применяется к файлам и каталогам.
func listFiles(dir string, exclude func(string) bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && (strings.HasPrefix(d.Name(), ".") || (exclude != nil && exclude(path))) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, Ext) && (exclude == nil || !exclude(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return files, nil
}

// ExpandPaths turns the command line operands into a file list: directories
// are walked, files are taken as is (even without the extension). Duplicates
// keep their first position.
func ExpandPaths(paths []string, exclude func(string) bool) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		key := filepath.Clean(p)
		if !seen[key] {
			seen[key] = true
			out = append(out, p)
		}
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			// отсутствующий файл станет диагностикой IO4001
			add(p)
			continue
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		files, err := listFiles(p, exclude)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}

// LintDir lints every *.fe file under dir in parallel.
func LintDir(ctx context.Context, dir string, opts Options) (*Run, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	files, err := listFiles(dir, opts.Exclude)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return lintFiles(ctx, source.NewFileSetWithBase(dir), files, opts)
}

// LintPaths lints files and directories named on the command line. Paths are
// reported relative to the working directory.
func LintPaths(ctx context.Context, paths []string, opts Options) (*Run, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	files, err := ExpandPaths(paths, opts.Exclude)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return lintFiles(ctx, source.NewFileSet(), files, opts)
}

func lintFiles(ctx context.Context, fileSet *source.FileSet, files []string, opts Options) (*Run, error) {
	// FileSet не потокобезопасен на запись: все файлы грузим до запуска воркеров
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл, чтобы у диагностики был путь
			fileID = fileSet.AddVirtual(path, nil)
			loadErrors[i] = err
		}
		fileIDs[i] = fileID
		emit(opts.Progress, Event{File: fileSet.Get(fileID).Path, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]*Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr := loadErrors[i]; loadErr != nil {
				res := loadFailure(fileSet, fileIDs[i], opts.MaxDiagnostics, loadErr)
				results[i] = res
				opts.Logger.Warn("failed to load file", "file", res.Path, "err", loadErr)
				emit(opts.Progress, Event{File: res.Path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}
			results[i] = lintLoaded(gctx, fileSet, fileIDs[i], opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Run{FileSet: fileSet, Results: results}, nil
}

func loadFailure(fileSet *source.FileSet, fileID source.FileID, maxDiagnostics int, err error) *Result {
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{File: fileID}, "failed to load file: "+err.Error()))
	return &Result{
		Path:    fileSet.Get(fileID).Path,
		FileSet: fileSet,
		FileID:  fileID,
		Bag:     bag,
	}
}
