package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/layout"
)

// isolate runs the test in an empty directory with no LOTPLAN_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, k := range []string{EnvStoreURL, EnvAddr, EnvStrictResize} {
		unsetEnv(t, k)
	}
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, ok := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if ok {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "lotplan", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "xdg", "lotplan", "config.toml"), `
[canvas]
width = 1000
height = 400

[spot]
pixels_per_meter = 10
gap = 4

[editor]
strict_resize = true

[store]
url = "redis://localhost:6379/0"
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Canvas.Width != 1000 || cfg.Canvas.Height != 400 {
		t.Errorf("canvas = %+v", cfg.Canvas)
	}
	if cfg.Spot.WidthMeters != layout.SpotWidthMeters {
		t.Errorf("unset width_m = %v, want default", cfg.Spot.WidthMeters)
	}
	if !cfg.Editor.StrictResize {
		t.Error("strict_resize not read")
	}
	if cfg.Store.URL != "redis://localhost:6379/0" {
		t.Errorf("store url = %q", cfg.Store.URL)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("unset addr = %q, want default", cfg.Server.Addr)
	}

	s := layout.New(cfg.LayoutOptions()...)
	if size := s.SpotSize(); size.W != 25 || size.H != 50 {
		t.Errorf("spot size = %+v, want 25x50", size)
	}
	if s.Gap() != 4 || !s.StrictResize() || s.Canvas().Width != 1000 {
		t.Errorf("layout options not applied: gap=%v strict=%v canvas=%+v", s.Gap(), s.StrictResize(), s.Canvas())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, "[server]\naddr = \":9000\"\n")
	writeFile(t, filepath.Join(dir, ".env"), "LOTPLAN_STORE_URL=file:///srv/lots\nLOTPLAN_ADDR=:7000\n")
	t.Setenv(EnvAddr, ":6000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Store.URL != "file:///srv/lots" {
		t.Errorf("store url = %q, want value from .env", cfg.Store.URL)
	}
	if cfg.Server.Addr != ":6000" {
		t.Errorf("addr = %q, want the environment to win over .env and file", cfg.Server.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		env      string
		wantCode errors.Code
	}{
		{"malformed toml", "[canvas\n", "", errors.ErrCodeInvalidFormat},
		{"unknown key", "[canvas]\ndepth = 3\n", "", errors.ErrCodeInvalidFormat},
		{"canvas too small", "[canvas]\nwidth = 100\n", "", errors.ErrCodeInvalidCanvas},
		{"zero grid", "[scan]\ngrid_size = 0\n", "", errors.ErrCodeInvalidInput},
		{"negative gap", "[spot]\ngap = -1\n", "", errors.ErrCodeInvalidInput},
		{"bad strict flag", "", "maybe", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "config.toml")
			writeFile(t, path, tt.file)
			if tt.env != "" {
				t.Setenv(EnvStrictResize, tt.env)
			}
			_, err := Load(path)
			if code := errors.GetCode(err); code != tt.wantCode {
				t.Errorf("Load() code = %q, want %q (err = %v)", code, tt.wantCode, err)
			}
		})
	}
}
