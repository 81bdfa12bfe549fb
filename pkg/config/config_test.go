package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/deskgrid/pkg/errors"
	"github.com/matzehuels/deskgrid/pkg/grid"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")

	if got, want := Path(), filepath.Join("/tmp/cfg", AppName, "config.toml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	if got, want := DataDir(), filepath.Join("/tmp/data", AppName); got != want {
		t.Errorf("DataDir() = %q, want %q", got, want)
	}
}

func TestPathsWithoutXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")

	home, _ := os.UserHomeDir()
	if got := Path(); !strings.HasPrefix(got, home) || !strings.Contains(got, ".config") {
		t.Errorf("Path() = %q, want under %s/.config", got, home)
	}
	if got := DataDir(); !strings.HasSuffix(got, filepath.Join(".local", "share", AppName)) {
		t.Errorf("DataDir() = %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Backend != BackendFile || cfg.Grid != grid.Default() || cfg.Server.Addr != DefaultAddr {
		t.Errorf("Load(missing) = %+v, want defaults", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
profile = "work"
backend = "redis"
key_prefix = "staging:"

[grid]
columns = 32
rows = 16

[server]
addr = ":9000"

[redis]
addr = "localhost:6379"
db = 2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"profile", cfg.Profile, "work"},
		{"backend", cfg.Backend, BackendRedis},
		{"key prefix", cfg.KeyPrefix, "staging:"},
		{"grid", cfg.Grid, grid.Config{Columns: 32, Rows: 16}},
		{"addr", cfg.Server.Addr, ":9000"},
		{"redis addr", cfg.Redis.Addr, "localhost:6379"},
		{"redis db", cfg.Redis.DB, 2},
		{"mongo database default", cfg.Mongo.Database, "deskgrid"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `backend = `},
		{"unknown key", `colour = "red"`},
		{"unknown backend", `backend = "sqlite"`},
		{"redis without addr", `backend = "redis"`},
		{"mongo without uri", `backend = "mongo"`},
		{"bad grid", "[grid]\ncolumns = 0\nrows = 4"},
		{"bad profile", `profile = "a b"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Profile = "home"
	cfg.Backend = BackendMongo
	cfg.Mongo.URI = "mongodb://localhost:27017"
	cfg.Grid = grid.Config{Columns: 20, Rows: 10}

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got != cfg {
		t.Errorf("Load = %+v, want %+v", got, cfg)
	}
}
