package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tagcheck/internal/diagfmt"
	"tagcheck/internal/driver"
	"tagcheck/internal/version"
)

const cacheApp = "tagcheck"

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file|dir|->...",
		Short: "Check tag nesting of documents",
		Long: `Check reads each document line by line and reports interior mismatches,
tags left open at end of file and closing tags without an opening tag.
Directories are walked for files with the configured extensions; "-" reads stdin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().String("format", "plain", "output format (plain|pretty|short|json|sarif)")
	cmd.Flags().Int("jobs", 0, "max parallel documents (0=auto)")
	cmd.Flags().Bool("disk-cache", false, "reuse results of unchanged documents from the disk cache")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().String("config", "", "path to tagcheck.toml (default: nearest above the working directory)")
	cmd.Flags().Bool("strict", false, "exit with status 1 when any document is malformed")
	cmd.Flags().StringSlice("ext", nil, "file extensions to pick up in directories (default .xml)")
	cmd.Flags().String("path-mode", "auto", "how to print paths (auto|absolute|relative|basename)")
	cmd.Flags().Bool("notes", true, "show notes pointing at opening tags")
	return cmd
}

// checkSettings is config merged with flags.
type checkSettings struct {
	format     string
	jobs       int
	strict     bool
	extensions []string
	cache      bool
	cacheDir   string
	ui         uiMode
	pathMode   diagfmt.PathMode
	notes      bool

	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
}

// resolveCheckSettings starts from defaults, applies tagcheck.toml, then every
// flag the user set explicitly.
func resolveCheckSettings(cmd *cobra.Command) (*checkSettings, *projectConfig, error) {
	flags := cmd.Flags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	project, err := loadProjectConfig(configPath, ".")
	if err != nil {
		return nil, nil, err
	}

	s := &checkSettings{format: "plain", extensions: driver.DefaultExtensions, notes: true}
	if project.isDefined("check", "format") {
		s.format = project.Config.Check.Format
	}
	if project.isDefined("check", "jobs") {
		s.jobs = project.Config.Check.Jobs
	}
	if project.isDefined("check", "strict") {
		s.strict = project.Config.Check.Strict
	}
	if project.isDefined("check", "extensions") {
		s.extensions = project.Config.Check.Extensions
	}
	if project.isDefined("cache", "enabled") {
		s.cache = project.Config.Cache.Enabled
	}
	s.cacheDir = project.cacheDir()
	pathModeName := "auto"
	if project.isDefined("check", "path_mode") {
		pathModeName = project.Config.Check.PathMode
	}

	if flags.Changed("format") {
		if s.format, err = flags.GetString("format"); err != nil {
			return nil, nil, fmt.Errorf("failed to get format flag: %w", err)
		}
	}
	if flags.Changed("jobs") {
		if s.jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, nil, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if flags.Changed("strict") {
		if s.strict, err = flags.GetBool("strict"); err != nil {
			return nil, nil, fmt.Errorf("failed to get strict flag: %w", err)
		}
	}
	if flags.Changed("disk-cache") {
		if s.cache, err = flags.GetBool("disk-cache"); err != nil {
			return nil, nil, fmt.Errorf("failed to get disk-cache flag: %w", err)
		}
	}
	if flags.Changed("ext") {
		if s.extensions, err = flags.GetStringSlice("ext"); err != nil {
			return nil, nil, fmt.Errorf("failed to get ext flag: %w", err)
		}
		for i, ext := range s.extensions {
			if !strings.HasPrefix(ext, ".") {
				s.extensions[i] = "." + ext
			}
		}
	}
	if flags.Changed("path-mode") {
		if pathModeName, err = flags.GetString("path-mode"); err != nil {
			return nil, nil, fmt.Errorf("failed to get path-mode flag: %w", err)
		}
	}
	if s.notes, err = flags.GetBool("notes"); err != nil {
		return nil, nil, fmt.Errorf("failed to get notes flag: %w", err)
	}

	s.format = strings.ToLower(strings.TrimSpace(s.format))
	if !slices.Contains(outputFormats, s.format) {
		return nil, nil, fmt.Errorf("unknown format %q (expected %s)", s.format, strings.Join(outputFormats, "|"))
	}
	if s.jobs < 0 {
		return nil, nil, fmt.Errorf("--jobs must not be negative")
	}
	var ok bool
	if s.pathMode, ok = diagfmt.ParsePathMode(pathModeName); !ok {
		return nil, nil, fmt.Errorf("invalid path mode %q (expected auto|absolute|relative|basename)", pathModeName)
	}

	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.ui, err = readUIMode(uiFlag); err != nil {
		return nil, nil, err
	}

	root := cmd.Root().PersistentFlags()
	colorFlag, err := root.GetString("color")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	s.color = colorEnabled(colorFlag, os.Stdout)
	if s.quiet, err = root.GetBool("quiet"); err != nil {
		return nil, nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = root.GetBool("timings"); err != nil {
		return nil, nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return nil, nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return s, project, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	// дальше ошибки уже не про синтаксис вызова
	cmd.SilenceUsage = true
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	settings, project, err := resolveCheckSettings(cmd)
	if err != nil {
		return err
	}
	if project.Path != "" {
		logger.Debug().Str("config", project.Path).Msg("using config file")
	}

	opts := driver.Options{
		MaxDiagnostics: settings.maxDiagnostics,
		Jobs:           settings.jobs,
		Extensions:     settings.extensions,
		Timings:        settings.timings,
		Stdin:          cmd.InOrStdin(),
	}
	if settings.cache {
		opts.Cache = openCache(settings.cacheDir, logger)
	}

	files, err := driver.ExpandPaths(args, settings.extensions)
	if err != nil {
		return fmt.Errorf("failed to collect documents: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no documents with extensions %s under %s", strings.Join(settings.extensions, ", "), strings.Join(args, ", "))
	}

	var run *driver.Run
	interactive := settings.format != "json" && settings.format != "sarif"
	if interactive && !settings.quiet && len(files) > 1 && shouldUseTUI(settings.ui) {
		run, err = runCheckWithUI(ctx, fmt.Sprintf("checking %d documents", len(files)), files, opts)
	} else {
		run, err = driver.CheckPaths(ctx, files, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if err := renderRun(out, errOut, run, settings, args); err != nil {
		return err
	}
	if settings.timings && interactive && !settings.quiet {
		printTimings(errOut, run)
	}

	if run.NothingRead() {
		return fmt.Errorf("no document could be read")
	}
	if settings.strict {
		if n := run.Malformed(); n > 0 {
			return fmt.Errorf("%d of %d documents are malformed", n, len(run.Results))
		}
	}
	return nil
}

func openCache(dir string, logger *zerolog.Logger) *driver.DiskCache {
	var (
		cache *driver.DiskCache
		err   error
	)
	if dir == "" {
		cache, err = driver.OpenDiskCache(cacheApp)
	} else {
		cache, err = driver.OpenDiskCacheAt(dir)
	}
	if err != nil {
		logger.Warn().Err(err).Msg("disk cache disabled")
		return nil
	}
	logger.Debug().Str("dir", cache.Dir()).Msg("disk cache enabled")
	return cache
}

func toDocuments(run *driver.Run) []diagfmt.Document {
	docs := make([]diagfmt.Document, len(run.Results))
	for i := range run.Results {
		r := &run.Results[i]
		docs[i] = diagfmt.Document{
			Path:       r.Path,
			Loaded:     r.Loaded,
			WellFormed: r.Loaded && r.Result.WellFormed(),
			Bag:        r.Bag,
		}
		if r.Loaded {
			docs[i].Report = r.Result.Messages()
		}
	}
	return docs
}

func renderRun(out, errOut io.Writer, run *driver.Run, s *checkSettings, args []string) error {
	docs := toDocuments(run)
	switch s.format {
	case "plain":
		return diagfmt.Plain(out, errOut, docs, run.FileSet, diagfmt.PlainOpts{
			Headers:  len(docs) > 1,
			PathMode: s.pathMode,
		})
	case "pretty":
		diagfmt.Pretty(out, docs, run.FileSet, diagfmt.PrettyOpts{
			Color:     s.color,
			Context:   1,
			PathMode:  s.pathMode,
			ShowNotes: s.notes,
		})
		if !s.quiet {
			_, err := fmt.Fprintf(out, "checked %d documents: %d malformed, %d unreadable\n",
				len(run.Results), run.Malformed(), run.Failed())
			return err
		}
		return nil
	case "short":
		return diagfmt.Short(out, docs, run.FileSet, s.notes)
	case "json":
		return diagfmt.JSON(out, docs, run.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         s.pathMode,
			IncludeNotes:     s.notes,
		})
	case "sarif":
		return diagfmt.Sarif(out, docs, run.FileSet, diagfmt.SarifRunMeta{
			ToolName:       "tagcheck",
			ToolVersion:    version.Version,
			InvocationArgs: append([]string{"check"}, args...),
		})
	default:
		return fmt.Errorf("unknown format: %s", s.format)
	}
}
