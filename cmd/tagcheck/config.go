package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

const configFileName = "tagcheck.toml"

// fileConfig mirrors tagcheck.toml.
type fileConfig struct {
	Check checkConfig `toml:"check"`
	Cache cacheConfig `toml:"cache"`
}

type checkConfig struct {
	Extensions []string `toml:"extensions"`
	Jobs       int      `toml:"jobs"`
	Strict     bool     `toml:"strict"`
	Format     string   `toml:"format"`
	PathMode   string   `toml:"path_mode"`
}

type cacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// projectConfig is a decoded config file plus what it explicitly sets.
type projectConfig struct {
	Path   string // empty when no file was found
	Root   string
	Config fileConfig
	meta   toml.MetaData
}

// isDefined reports whether the file set key; flags only yield to keys that
// were written down.
func (p *projectConfig) isDefined(key ...string) bool {
	return p != nil && p.Path != "" && p.meta.IsDefined(key...)
}

var outputFormats = []string{"plain", "pretty", "short", "json", "sarif"}

func findConfigFile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
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

// loadProjectConfig reads explicit when set, otherwise the nearest tagcheck.toml
// above startDir. No file at all yields an empty config.
func loadProjectConfig(explicit, startDir string) (*projectConfig, error) {
	path := explicit
	if path == "" {
		found, ok, err := findConfigFile(startDir)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &projectConfig{}, nil
		}
		path = found
	}
	cfg, meta, err := decodeConfig(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &projectConfig{Path: abs, Root: filepath.Dir(abs), Config: cfg, meta: meta}, nil
}

func decodeConfig(path string) (fileConfig, toml.MetaData, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, meta, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fileConfig{}, meta, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("check", "extensions") {
		for _, ext := range cfg.Check.Extensions {
			if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
				return fileConfig{}, meta, fmt.Errorf("%s: [check].extensions: %q must look like \".xml\"", path, ext)
			}
		}
	}
	if cfg.Check.Jobs < 0 {
		return fileConfig{}, meta, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	if meta.IsDefined("check", "format") && !slices.Contains(outputFormats, cfg.Check.Format) {
		return fileConfig{}, meta, fmt.Errorf("%s: [check].format %q is not one of %s", path, cfg.Check.Format, strings.Join(outputFormats, "|"))
	}
	return cfg, meta, nil
}

// cacheDir returns the configured cache directory resolved against the
// config root, or "" for the default location.
func (p *projectConfig) cacheDir() string {
	if !p.isDefined("cache", "dir") || strings.TrimSpace(p.Config.Cache.Dir) == "" {
		return ""
	}
	dir := p.Config.Cache.Dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.Root, dir)
	}
	return dir
}
