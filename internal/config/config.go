// Package config loads themelab settings from a YAML file, an optional .env
// file beside it and THEMELAB_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppName names the config and data directories.
const AppName = "themelab"

// Environment variables that override the file.
const (
	EnvDataDir       = "THEMELAB_DATA_DIR"
	EnvSeeds         = "THEMELAB_SEEDS"
	EnvSeedsStrict   = "THEMELAB_SEEDS_STRICT"
	EnvStoreDriver   = "THEMELAB_STORE_DRIVER"
	EnvTemplateDir   = "THEMELAB_TEMPLATE_DIR"
	EnvLogLevel      = "THEMELAB_LOG_LEVEL"
	EnvAllowInsecure = "THEMELAB_ALLOW_INSECURE"
)

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

// SeedsConfig locates the seed corpus.
type SeedsConfig struct {
	// Source is a path, URL or archive; empty means the built-in corpus.
	Source string `yaml:"source"`
	Strict bool   `yaml:"strict"`
}

// GenerateConfig holds defaults for the generate command.
type GenerateConfig struct {
	Prompt        string   `yaml:"prompt"`
	WarmCool      float64  `yaml:"warm_cool"`
	ContrastBoost float64  `yaml:"contrast_boost"`
	EdgeGlow      float64  `yaml:"edge_glow"`
	Outputs       []string `yaml:"outputs"`
	OutputDir     string   `yaml:"output_dir"`
}

// TemplatesConfig locates user template overrides.
type TemplatesConfig struct {
	Dir string `yaml:"dir"`
}

// Config is the full themelab configuration.
type Config struct {
	DataDir  string `yaml:"data_dir"`
	LogLevel string `yaml:"log_level"`
	// AllowInsecure permits http:// and private-network sources.
	AllowInsecure bool `yaml:"allow_insecure"`

	Store     StoreConfig     `yaml:"store"`
	Seeds     SeedsConfig     `yaml:"seeds"`
	Generate  GenerateConfig  `yaml:"generate"`
	Templates TemplatesConfig `yaml:"templates"`

	// Path is the file the configuration was read from, if any.
	Path string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:  filepath.Join(dataHome(), AppName),
		LogLevel: "info",
		Store: StoreConfig{
			Driver:   "file",
			Filename: AppName + ".db",
		},
		Generate: GenerateConfig{
			Prompt:        "baroque cyberpunk winter",
			WarmCool:      0.55,
			ContrastBoost: 0.6,
			EdgeGlow:      0.25,
			Outputs:       []string{"css", "json"},
			OutputDir:     ".",
		},
		Templates: TemplatesConfig{
			Dir: filepath.Join(configHome(), AppName, "templates"),
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/themelab/config.yaml.
func DefaultPath() string {
	return filepath.Join(configHome(), AppName, "config.yaml")
}

// Load reads the configuration at path (DefaultPath when empty). A missing
// file yields the defaults; a .env file in the same directory is loaded into
// the environment before overrides are applied.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
		}
		cfg.Path = path
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvSeeds); v != "" {
		c.Seeds.Source = v
	}
	if v := os.Getenv(EnvStoreDriver); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv(EnvTemplateDir); v != "" {
		c.Templates.Dir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	for name, dst := range map[string]*bool{
		EnvSeedsStrict:   &c.Seeds.Strict,
		EnvAllowInsecure: &c.AllowInsecure,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		*dst = b
	}
	return nil
}

// Validate checks driver, log level and slider ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data_dir is required")
	}

	switch c.Store.Driver {
	case "file", "sqlite":
	default:
		return fmt.Errorf("unsupported store driver: %s", c.Store.Driver)
	}
	if c.Store.Driver == "sqlite" && c.Store.Filename == "" {
		return errors.New("store filename is required for sqlite")
	}

	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("unknown log level: %s", c.LogLevel)
	}

	for name, v := range map[string]float64{
		"warm_cool":      c.Generate.WarmCool,
		"contrast_boost": c.Generate.ContrastBoost,
		"edge_glow":      c.Generate.EdgeGlow,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("generate.%s must be between 0 and 1, got %g", name, v)
		}
	}
	return nil
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return "."
}

func dataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share")
	}
	return "."
}
