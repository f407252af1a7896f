// Package config loads the svgbudget configuration file and resolves the
// default locations of the cache, history and config files.
//
// A config file is TOML or YAML, chosen by extension:
//
//	budget_kb = 10
//	profile = "competition"
//	disable_grouping = false
//	strip_namespaces = ["inkscape", "sodipodi"]
//
//	[cache]
//	backend = "redis"
//	url = "redis://localhost:6379/0"
//	ttl = "24h"
//
//	[store]
//	backend = "mongo"
//	uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8080"
//
// Command-line flags take precedence over file values; the CLI applies
// them after loading.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/svgbudget/pkg/api"
	"github.com/matzehuels/svgbudget/pkg/cache"
	"github.com/matzehuels/svgbudget/pkg/errors"
	"github.com/matzehuels/svgbudget/pkg/pipeline"
	"github.com/matzehuels/svgbudget/pkg/store"
)

// AppName names the per-user config, cache and data directories.
const AppName = "svgbudget"

// File names.
const (
	FileName    = "config.toml"
	HistoryName = "history.jsonl"
)

// File is the decoded configuration file. The zero value is a valid
// configuration that uses every default.
type File struct {
	BudgetKB        float64  `toml:"budget_kb" yaml:"budget_kb"`
	Profile         string   `toml:"profile" yaml:"profile"`
	DisableGrouping bool     `toml:"disable_grouping" yaml:"disable_grouping"`
	StripNamespaces []string `toml:"strip_namespaces" yaml:"strip_namespaces"`

	Cache  CacheSection  `toml:"cache" yaml:"cache"`
	Store  StoreSection  `toml:"store" yaml:"store"`
	Server ServerSection `toml:"server" yaml:"server"`

	// Path is the file the values were read from, empty when no file
	// exists at the default location.
	Path string `toml:"-" yaml:"-"`
}

// CacheSection is the [cache] table.
type CacheSection struct {
	Backend string `toml:"backend" yaml:"backend"`
	Dir     string `toml:"dir" yaml:"dir"`
	URL     string `toml:"url" yaml:"url"`
	Prefix  string `toml:"prefix" yaml:"prefix"`
	TTL     string `toml:"ttl" yaml:"ttl"`
}

// StoreSection is the [store] table.
type StoreSection struct {
	Backend    string `toml:"backend" yaml:"backend"`
	Path       string `toml:"path" yaml:"path"`
	URI        string `toml:"uri" yaml:"uri"`
	Database   string `toml:"database" yaml:"database"`
	Collection string `toml:"collection" yaml:"collection"`
}

// ServerSection is the [server] table.
type ServerSection struct {
	Addr    string `toml:"addr" yaml:"addr"`
	Timeout string `toml:"timeout" yaml:"timeout"`
}

// Load reads the config file at path. An empty path means DefaultPath,
// where a missing file is not an error.
func Load(path string) (*File, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return &File{}, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if !explicit {
				return &File{}, nil
			}
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, err
	}

	f, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

// Parse decodes and validates a config document. ext is the file
// extension selecting the format (".toml", ".yaml" or ".yml").
func Parse(data []byte, ext string) (*File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode TOML config")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown config key %q", undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode YAML config")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown config format %q (want .toml, .yaml or .yml)", ext)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks values that can be checked without opening backends.
func (f *File) Validate() error {
	if f.BudgetKB != 0 {
		if err := errors.ValidateBudget(f.BudgetKB); err != nil {
			return err
		}
	}
	if f.Profile != "" {
		if err := pipeline.ValidateProfile(f.Profile); err != nil {
			return err
		}
	}
	if _, err := f.CacheTTL(); err != nil {
		return err
	}
	if _, err := f.ServerTimeout(); err != nil {
		return err
	}
	return nil
}

// CacheTTL parses cache.ttl. Zero means the per-type defaults.
func (f *File) CacheTTL() (time.Duration, error) {
	return parseDuration("cache.ttl", f.Cache.TTL)
}

// ServerTimeout parses server.timeout. Zero means api.DefaultTimeout.
func (f *File) ServerTimeout() (time.Duration, error) {
	return parseDuration("server.timeout", f.Server.Timeout)
}

func parseDuration(key, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: invalid duration %q", key, s)
	}
	return d, nil
}

// Options returns the pipeline options the file describes. Unset values
// stay zero so ValidateAndSetDefaults fills them.
func (f *File) Options() pipeline.Options {
	return pipeline.Options{
		BudgetKB:        f.BudgetKB,
		Profile:         f.Profile,
		DisableGrouping: f.DisableGrouping,
		Namespaces:      f.StripNamespaces,
	}
}

// CacheConfig returns the cache backend configuration, defaulting the
// file backend to CacheDir.
func (f *File) CacheConfig() (cache.Config, error) {
	cfg := cache.Config{
		Backend: f.Cache.Backend,
		Dir:     f.Cache.Dir,
		URL:     f.Cache.URL,
		Prefix:  f.Cache.Prefix,
	}
	if (cfg.Backend == "" || cfg.Backend == cache.BackendFile) && cfg.Dir == "" {
		dir, err := CacheDir()
		if err != nil {
			return cfg, err
		}
		cfg.Dir = dir
	}
	return cfg, nil
}

// StoreConfig returns the history backend configuration, defaulting the
// file backend to HistoryPath.
func (f *File) StoreConfig() (store.Config, error) {
	cfg := store.Config{
		Backend:    f.Store.Backend,
		Path:       f.Store.Path,
		URI:        f.Store.URI,
		Database:   f.Store.Database,
		Collection: f.Store.Collection,
	}
	if (cfg.Backend == "" || cfg.Backend == store.BackendFile) && cfg.Path == "" {
		p, err := HistoryPath()
		if err != nil {
			return cfg, err
		}
		cfg.Path = p
	}
	return cfg, nil
}

// ServerConfig returns the API server configuration.
func (f *File) ServerConfig() api.Config {
	timeout, _ := f.ServerTimeout()
	return api.Config{Addr: f.Server.Addr, Timeout: timeout}
}
