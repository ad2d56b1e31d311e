package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"tagcheck/internal/diag"
	"tagcheck/internal/observ"
	"tagcheck/internal/source"
)

// DefaultExtensions is the directory walk filter when none is configured.
var DefaultExtensions = []string{".xml"}

// Run is the outcome of CheckPaths.
type Run struct {
	FileSet *source.FileSet
	Results []CheckResult // same order as the expanded paths
	Timer   *observ.Timer // summed over all documents
}

// Malformed counts documents that were read and have findings.
func (r *Run) Malformed() int {
	n := 0
	for i := range r.Results {
		if r.Results[i].Malformed() {
			n++
		}
	}
	return n
}

// Failed counts documents that could not be read.
func (r *Run) Failed() int {
	n := 0
	for i := range r.Results {
		if !r.Results[i].Loaded {
			n++
		}
	}
	return n
}

// NothingRead reports whether every document failed to load.
func (r *Run) NothingRead() bool {
	return len(r.Results) > 0 && r.Failed() == len(r.Results)
}

// hasExtension matches case-insensitively.
func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// listFiles возвращает отсортированный список файлов с подходящими расширениями
func listFiles(dir string, exts []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if hasExtension(path, exts) {
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

// ExpandPaths turns command-line arguments into the list of documents to check.
// Directories are walked; files and StdinPath are kept as given even when their
// extension does not match. Paths that do not exist are kept so the load step
// can report them. Duplicates are dropped.
func ExpandPaths(args []string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	seen := make(map[string]struct{}, len(args))
	out := make([]string, 0, len(args))
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, arg := range args {
		if arg == StdinPath {
			add(arg)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			add(arg)
			continue
		}
		files, err := listFiles(arg, exts)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}

// CheckPaths expands args and checks every document. Loading is sequential;
// matching runs on up to opts.Jobs goroutines with one matcher per document.
// Load failures become IO4001 diagnostics on the affected result.
func CheckPaths(ctx context.Context, args []string, opts Options) (*Run, error) {
	logger := zerolog.Ctx(ctx)
	files, err := ExpandPaths(args, opts.Extensions)
	if err != nil {
		return nil, err
	}

	fileSet := source.NewFileSetWithBase(opts.BaseDir)
	run := &Run{
		FileSet: fileSet,
		Results: make([]CheckResult, len(files)),
		Timer:   observ.NewTimer(),
	}
	if len(files) == 0 {
		return run, nil
	}

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet не потокобезопасен, поэтому загрузка идёт до запуска горутин
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	timers := make([]*observ.Timer, len(files))
	for i, path := range files {
		timers[i] = observ.NewTimer()
		start := time.Now()
		fileIDs[i], loadErrors[i] = loadOne(fileSet, path, &opts)
		timers[i].Add(observ.PhaseLoad, time.Since(start))
		if loadErrors[i] != nil {
			logger.Debug().Err(loadErrors[i]).Str("path", path).Msg("load failed")
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			start := time.Now()

			if loadErr := loadErrors[i]; loadErr != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewDetached(diag.SevError, diag.IOLoadFileError, "failed to load file: "+loadErr.Error()))
				// результаты пишутся по уникальному индексу, мьютекс не нужен
				run.Results[i] = CheckResult{Path: path, LoadErr: loadErr, Bag: bag}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			res, err := checkFile(gctx, fileSet.Get(fileIDs[i]), timers[i], &opts)
			if err != nil {
				emit(opts.Progress, Event{File: path, Stage: StageMatch, Status: StatusError, Err: err})
				return err
			}
			if opts.Timings {
				report := timers[i].Report()
				res.Timing = &report
				appendTimingDiagnostic(res.Bag, timingPayload{Kind: "document", Path: res.Path, TotalMS: report.TotalMS, Phases: report.Phases})
			}
			run.Results[i] = res
			emit(opts.Progress, Event{
				File:     path,
				Stage:    StageReport,
				Status:   StatusDone,
				Elapsed:  time.Since(start),
				Findings: len(res.Result.Findings),
				Cached:   res.Cached,
			})
			return nil
		})
	}

	err = g.Wait()
	for _, t := range timers {
		run.Timer.Absorb(t)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("check aborted")
	}
	return run, err
}
