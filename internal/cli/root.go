// Package cli provides the command-line interface for themelab.
package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/kolshub/themelab/internal/config"
	"github.com/kolshub/themelab/internal/version"
)

// NewRootCmd builds the full command tree. Each call returns an independent
// tree, so tests can run commands without shared flag state.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "themelab",
		Short: "Synthesise readable visual themes from a prompt",
		Long: `themelab blends a corpus of seed themes into a complete, readable theme
from a free-text prompt and three sliders, then renders it as CSS, Tailwind,
JSON, YAML or a PNG preview card.

Themes and imported theme packs are kept in a local store (files or SQLite).

Examples:
  themelab generate "gothic night" --warm-cool 0.3
  themelab seeds rank "baroque cyberpunk winter"
  themelab pack import ./kol_theme_pack.json
  themelab themes list`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	pf.StringVar(&a.dataDir, "data-dir", "", "directory for the theme store")
	pf.StringVar(&a.storeDriver, "store", "", "store driver (file, sqlite)")
	pf.StringVar(&a.templateDir, "template-dir", "", "directory for custom renderer templates")
	pf.BoolVar(&a.allowInsecure, "allow-insecure", false, "allow http:// and private-network sources")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newSeedsCmd(a),
		newPackCmd(a),
		newThemesCmd(a),
		newTemplatesCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// setup loads configuration, applies global flags and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = a.dataDir
	}
	if flags.Changed("store") {
		cfg.Store.Driver = a.storeDriver
	}
	if flags.Changed("template-dir") {
		cfg.Templates.Dir = a.templateDir
	}
	if flags.Changed("allow-insecure") {
		cfg.AllowInsecure = a.allowInsecure
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := hclog.LevelFromString(cfg.LogLevel)
	switch {
	case a.quiet:
		level = hclog.Error
	case a.verbose && level > hclog.Debug:
		level = hclog.Debug
	}

	a.cfg = cfg
	a.logger = hclog.New(&hclog.LoggerOptions{
		Name:   config.AppName,
		Level:  level,
		Output: cmd.ErrOrStderr(),
	})
	if cfg.Path != "" {
		a.logger.Debug("loaded configuration", "path", cfg.Path)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}
