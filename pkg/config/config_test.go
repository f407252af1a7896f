package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/svgbudget/pkg/cache"
	"github.com/matzehuels/svgbudget/pkg/errors"
	"github.com/matzehuels/svgbudget/pkg/store"
)

const sampleTOML = `
budget_kb = 5.5
profile = "basic"
disable_grouping = true
strip_namespaces = ["inkscape"]

[cache]
backend = "redis"
url = "redis://localhost:6379/1"
ttl = "2h"

[store]
backend = "mongo"
uri = "mongodb://localhost:27017"
database = "svg"

[server]
addr = ":9090"
timeout = "5s"
`

const sampleYAML = `
budget_kb: 5.5
profile: basic
disable_grouping: true
strip_namespaces: [inkscape]
cache:
  backend: redis
  url: redis://localhost:6379/1
  ttl: 2h
store:
  backend: mongo
  uri: mongodb://localhost:27017
  database: svg
server:
  addr: ":9090"
  timeout: 5s
`

func TestParseFormats(t *testing.T) {
	want := File{
		BudgetKB:        5.5,
		Profile:         "basic",
		DisableGrouping: true,
		StripNamespaces: []string{"inkscape"},
		Cache:           CacheSection{Backend: "redis", URL: "redis://localhost:6379/1", TTL: "2h"},
		Store:           StoreSection{Backend: "mongo", URI: "mongodb://localhost:27017", Database: "svg"},
		Server:          ServerSection{Addr: ":9090", Timeout: "5s"},
	}

	tests := []struct {
		name string
		data string
		ext  string
	}{
		{"toml", sampleTOML, ".toml"},
		{"yaml", sampleYAML, ".yaml"},
		{"yml", sampleYAML, ".YML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.data), tt.ext)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if diff := cmp.Diff(want, *f); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, ext := range []string{".toml", ".yaml"} {
		f, err := Parse(nil, ext)
		if err != nil {
			t.Fatalf("Parse(%s): %v", ext, err)
		}
		if diff := cmp.Diff(File{}, *f); diff != "" {
			t.Errorf("%s: want zero File, got:\n%s", ext, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
		code errors.Code
	}{
		{"unknown format", "budget_kb = 1", ".json", errors.ErrCodeInvalidFormat},
		{"bad toml", "budget_kb = ", ".toml", errors.ErrCodeInvalidInput},
		{"unknown toml key", "budgetkb = 1", ".toml", errors.ErrCodeInvalidInput},
		{"unknown yaml key", "budgetkb: 1", ".yaml", errors.ErrCodeInvalidInput},
		{"negative budget", "budget_kb = -1.0", ".toml", errors.ErrCodeInvalidBudget},
		{"unknown profile", `profile = "turbo"`, ".toml", errors.ErrCodeInvalidProfile},
		{"bad ttl", "[cache]\nttl = \"soon\"", ".toml", errors.ErrCodeInvalidInput},
		{"negative timeout", "[server]\ntimeout = \"-1s\"", ".toml", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.ext)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "svgbudget.toml")
	if err := os.WriteFile(path, []byte(sampleTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Path != path {
		t.Errorf("Path = %q, want %q", f.Path, path)
	}
	if f.Profile != "basic" {
		t.Errorf("Profile = %q", f.Profile)
	}
}

func TestLoadMissing(t *testing.T) {
	t.Run("explicit", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("err = %v, want FILE_NOT_FOUND", err)
		}
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		f, err := Load("")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if f.Path != "" {
			t.Errorf("Path = %q, want empty", f.Path)
		}
	})

	t.Run("default present", func(t *testing.T) {
		base := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", base)
		dir := filepath.Join(base, AppName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, FileName), []byte("budget_kb = 3.0\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		f, err := Load("")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if f.BudgetKB != 3 {
			t.Errorf("BudgetKB = %v, want 3", f.BudgetKB)
		}
	})
}

func TestPaths(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
		t.Setenv("XDG_CACHE_HOME", "/tmp/cache")
		t.Setenv("XDG_DATA_HOME", "/tmp/data")

		tests := []struct {
			name string
			fn   func() (string, error)
			want string
		}{
			{"config", DefaultPath, filepath.Join("/tmp/cfg", AppName, FileName)},
			{"cache", CacheDir, filepath.Join("/tmp/cache", AppName)},
			{"history", HistoryPath, filepath.Join("/tmp/data", AppName, HistoryName)},
		}
		for _, tt := range tests {
			got, err := tt.fn()
			if err != nil {
				t.Fatalf("%s: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("%s = %q, want %q", tt.name, got, tt.want)
			}
		}
	})

	t.Run("home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("XDG_CACHE_HOME", "")
		t.Setenv("XDG_DATA_HOME", "")

		dir, err := CacheDir()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(home, ".cache", AppName); dir != want {
			t.Errorf("CacheDir() = %q, want %q", dir, want)
		}
		hist, err := HistoryPath()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(home, ".local", "share", AppName, HistoryName); hist != want {
			t.Errorf("HistoryPath() = %q, want %q", hist, want)
		}
	})
}

func TestConversions(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")

	f, err := Parse([]byte(sampleTOML), ".toml")
	if err != nil {
		t.Fatal(err)
	}

	opts := f.Options()
	if opts.BudgetKB != 5.5 || opts.Profile != "basic" || !opts.DisableGrouping {
		t.Errorf("Options() = %+v", opts)
	}
	if diff := cmp.Diff([]string{"inkscape"}, opts.Namespaces); diff != "" {
		t.Errorf("namespaces (-want +got):\n%s", diff)
	}

	cc, err := f.CacheConfig()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cache.Config{Backend: "redis", URL: "redis://localhost:6379/1"}, cc); diff != "" {
		t.Errorf("CacheConfig (-want +got):\n%s", diff)
	}
	ttl, _ := f.CacheTTL()
	if ttl != 2*time.Hour {
		t.Errorf("CacheTTL = %v", ttl)
	}

	sc := f.ServerConfig()
	if sc.Addr != ":9090" || sc.Timeout != 5*time.Second {
		t.Errorf("ServerConfig = %+v", sc)
	}

	var zero File
	cc, err = zero.CacheConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cc.Dir != filepath.Join("/tmp/cache", AppName) {
		t.Errorf("default cache dir = %q", cc.Dir)
	}
	stc, err := zero.StoreConfig()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(store.Config{Path: filepath.Join("/tmp/data", AppName, HistoryName)}, stc); diff != "" {
		t.Errorf("StoreConfig (-want +got):\n%s", diff)
	}
}

func TestExampleConfig(t *testing.T) {
	f, err := Load(filepath.Join("..", "..", "examples", "svgbudget.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Profile != "competition" || f.Cache.Backend != cache.BackendFile {
		t.Errorf("unexpected values: %+v", f)
	}
	if ttl, _ := f.CacheTTL(); ttl != 72*time.Hour {
		t.Errorf("CacheTTL = %v", ttl)
	}
}
