package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv unsets every override for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvDataDir, EnvSeeds, EnvSeedsStrict, EnvStoreDriver, EnvTemplateDir, EnvLogLevel, EnvAllowInsecure} {
		t.Setenv(name, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	def := Default()
	if cfg.Store.Driver != "file" || cfg.LogLevel != "info" || cfg.Path != "" {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.Generate.Prompt != def.Generate.Prompt || cfg.Generate.WarmCool != 0.55 {
		t.Errorf("generate defaults = %+v", cfg.Generate)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
data_dir: /var/lib/themelab
log_level: debug
store:
  driver: sqlite
  filename: themes.db
seeds:
  source: https://example.com/seeds.tar.gz
  strict: true
generate:
  prompt: gothic night
  warm_cool: 0.2
  outputs: [css, png]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q", cfg.Path)
	}
	if cfg.DataDir != "/var/lib/themelab" || cfg.LogLevel != "debug" {
		t.Errorf("top-level = %+v", cfg)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Store.Filename != "themes.db" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if !cfg.Seeds.Strict || cfg.Seeds.Source != "https://example.com/seeds.tar.gz" {
		t.Errorf("seeds = %+v", cfg.Seeds)
	}
	// Unset keys keep their defaults.
	if cfg.Generate.Prompt != "gothic night" || cfg.Generate.WarmCool != 0.2 || cfg.Generate.ContrastBoost != 0.6 {
		t.Errorf("generate = %+v", cfg.Generate)
	}
	if strings.Join(cfg.Generate.Outputs, ",") != "css,png" {
		t.Errorf("outputs = %v", cfg.Generate.Outputs)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDataDir, "/tmp/data")
	t.Setenv(EnvSeeds, "corpus.yaml")
	t.Setenv(EnvSeedsStrict, "true")
	t.Setenv(EnvStoreDriver, "sqlite")
	t.Setenv(EnvTemplateDir, "/tmp/templates")
	t.Setenv(EnvLogLevel, "trace")
	t.Setenv(EnvAllowInsecure, "1")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DataDir != "/tmp/data" || cfg.Seeds.Source != "corpus.yaml" || !cfg.Seeds.Strict {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Templates.Dir != "/tmp/templates" || cfg.LogLevel != "trace" || !cfg.AllowInsecure {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvTemplateDir)
	t.Cleanup(func() { os.Unsetenv(EnvTemplateDir) })

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvTemplateDir+"=/from/dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Templates.Dir != "/from/dotenv" {
		t.Errorf("Templates.Dir = %q, want value from .env", cfg.Templates.Dir)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{name: "bad yaml", content: "store: [", wantErr: "error parsing"},
		{name: "bad driver", content: "store:\n  driver: redis\n", wantErr: "unsupported store driver"},
		{name: "slider range", content: "generate:\n  edge_glow: 1.5\n", wantErr: "edge_glow"},
		{name: "log level", content: "log_level: loud\n", wantErr: "unknown log level"},
		{name: "bad bool env", env: map[string]string{EnvSeedsStrict: "maybe"}, wantErr: EnvSeedsStrict},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(dir, tt.name, "config.yaml")
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				t.Fatal(err)
			}
			if tt.content != "" {
				if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
					t.Fatal(err)
				}
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("case %d: Load() error = %v, want %q", i, err, tt.wantErr)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}

	cfg.DataDir = " "
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty data dir")
	}

	cfg = Default()
	cfg.Store.Driver = "sqlite"
	cfg.Store.Filename = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for sqlite without filename")
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultPath(); got != filepath.Join("/xdg", "themelab", "config.yaml") {
		t.Errorf("DefaultPath() = %q", got)
	}
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := Default().DataDir; got != filepath.Join("/data", "themelab") {
		t.Errorf("DataDir = %q", got)
	}
}
