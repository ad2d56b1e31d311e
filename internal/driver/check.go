package driver

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"tagcheck/internal/diag"
	"tagcheck/internal/matcher"
	"tagcheck/internal/observ"
	"tagcheck/internal/source"
)

// StdinPath is the argument that makes the driver read from Options.Stdin.
const StdinPath = "-"

// Options control a check run.
type Options struct {
	MaxDiagnostics int
	Jobs           int          // 0 = GOMAXPROCS
	Extensions     []string     // directory walk filter; default DefaultExtensions
	Cache          *DiskCache   // nil disables caching
	Timings        bool         // attach an OBS6001 diagnostic per document
	Progress       ProgressSink // optional
	Stdin          io.Reader    // source for StdinPath
	BaseDir        string       // base for relative paths in the FileSet
}

// CheckResult is the outcome of one document.
type CheckResult struct {
	Path    string
	FileID  source.FileID
	Loaded  bool
	LoadErr error
	Result  matcher.Result
	Lines   int
	Bag     *diag.Bag
	Cached  bool
	Timing  *observ.Report
}

// Malformed reports whether the document was read and has findings.
func (r *CheckResult) Malformed() bool {
	return r.Loaded && !r.Result.WellFormed()
}

// Check validates a single document.
func Check(ctx context.Context, path string, opts Options) (*source.FileSet, *CheckResult, error) {
	run, err := CheckPaths(ctx, []string{path}, opts)
	if run == nil {
		return nil, nil, err
	}
	if len(run.Results) == 0 {
		return run.FileSet, nil, err
	}
	return run.FileSet, &run.Results[0], err
}

// loadOne reads path into fs. StdinPath reads opts.Stdin.
func loadOne(fs *source.FileSet, path string, opts *Options) (source.FileID, error) {
	if path != StdinPath {
		return fs.Load(path)
	}
	if opts.Stdin == nil {
		return 0, fmt.Errorf("stdin is not available")
	}
	raw, err := io.ReadAll(opts.Stdin)
	if err != nil {
		return 0, fmt.Errorf("read stdin: %w", err)
	}
	content, flags, err := source.Normalize(raw)
	if err != nil {
		return 0, fmt.Errorf("stdin: %w", err)
	}
	return fs.Add("<stdin>", content, flags|source.FileVirtual), nil
}

// checkFile runs the matcher over a loaded file, consulting the cache first.
func checkFile(ctx context.Context, file *source.File, timer *observ.Timer, opts *Options) (CheckResult, error) {
	logger := zerolog.Ctx(ctx)
	res := CheckResult{
		Path:   file.Path,
		FileID: file.ID,
		Loaded: true,
		Lines:  file.LineCount(),
		Bag:    diag.NewBag(opts.MaxDiagnostics),
	}

	key := cacheKey(file)
	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			logger.Warn().Err(err).Str("path", file.Path).Msg("disk cache read failed")
		case hit:
			res.Result = matcher.Result{Findings: payload.Findings}
			res.Cached = true
		}
	}

	if !res.Cached {
		emit(opts.Progress, Event{File: file.Path, Stage: StageMatch, Status: StatusWorking})
		start := time.Now()
		r, err := matcher.New().Run(file.Lines())
		timer.Add(observ.PhaseMatch, time.Since(start))
		if err != nil {
			return res, fmt.Errorf("%s: %w", file.Path, err)
		}
		res.Result = r
		if opts.Cache != nil {
			payload := &DiskPayload{
				Schema:   diskCacheSchemaVersion,
				Path:     file.Path,
				Lines:    res.Lines,
				Findings: r.Findings,
			}
			if err := opts.Cache.Put(key, payload); err != nil {
				logger.Warn().Err(err).Str("path", file.Path).Msg("disk cache write failed")
			}
		}
	}

	start := time.Now()
	matcher.Report(diag.BagReporter{Bag: res.Bag}, file, res.Result)
	timer.Add(observ.PhaseReporting, time.Since(start))

	logger.Debug().
		Str("path", file.Path).
		Int("lines", res.Lines).
		Int("findings", len(res.Result.Findings)).
		Bool("cached", res.Cached).
		Msg("checked")
	return res, nil
}
