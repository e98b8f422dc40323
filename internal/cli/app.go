package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kolshub/themelab/internal/config"
	"github.com/kolshub/themelab/internal/output"
	"github.com/kolshub/themelab/internal/output/css"
	"github.com/kolshub/themelab/internal/output/export"
	"github.com/kolshub/themelab/internal/output/png"
	"github.com/kolshub/themelab/internal/output/tailwind"
	"github.com/kolshub/themelab/internal/seeds"
	"github.com/kolshub/themelab/internal/source"
	"github.com/kolshub/themelab/internal/store"
	"github.com/kolshub/themelab/internal/theme"
)

// app carries global flag values and the state built from them.
type app struct {
	configPath    string
	verbose       bool
	quiet         bool
	logLevel      string
	dataDir       string
	storeDriver   string
	templateDir   string
	allowInsecure bool

	cfg    *config.Config
	logger hclog.Logger
}

// status prints a progress line to stderr unless --quiet is set.
func (a *app) status(cmd *cobra.Command, format string, args ...any) {
	if a.quiet {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}

func (a *app) sourceOptions(cmd *cobra.Command) source.Options {
	return source.Options{
		AllowInsecure: a.cfg.AllowInsecure,
		Stdin:         cmd.InOrStdin(),
		Logger:        a.logger,
	}
}

// loadSeeds reads the corpus at src, or the configured source when src is empty.
func (a *app) loadSeeds(cmd *cobra.Command, src string, strict bool) ([]theme.SeedTheme, error) {
	if src == "" {
		src = a.cfg.Seeds.Source
	}
	return seeds.Load(contextOf(cmd), src, seeds.Options{
		Source: a.sourceOptions(cmd),
		Strict: strict || a.cfg.Seeds.Strict,
		Logger: a.logger.Named("seeds"),
	})
}

func (a *app) openStore() (store.Store, error) {
	s, err := store.Open(a.cfg.Store.Driver, a.cfg.DataDir, a.cfg.Store.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	a.logger.Debug("opened store", "driver", a.cfg.Store.Driver, "dir", a.cfg.DataDir)
	return s, nil
}

func (a *app) synthesizer() *theme.Synthesizer {
	return theme.New(theme.WithLogger(a.logger.Named("synth")))
}

// registry builds the renderers available to generate and pack render.
func (a *app) registry(tailwindFormat string) *output.Registry {
	logger := a.logger.Named("output")
	r := output.NewRegistry()
	r.Register(css.New(a.cfg.Templates.Dir, logger))
	r.Register(tailwind.New(tailwindFormat, a.cfg.Templates.Dir, logger))
	r.Register(export.New(export.JSON))
	r.Register(export.New(export.YAML))
	r.Register(png.New())
	return r
}

// resolveOutputs expands "all" and drops "none".
func resolveOutputs(r *output.Registry, names []string) []string {
	var out []string
	for _, name := range names {
		switch name {
		case "all":
			return r.List()
		case "none", "":
			continue
		default:
			out = append(out, name)
		}
	}
	return out
}

// writeFiles writes rendered files under dir in name order, or lists them
// when dryRun is set.
func (a *app) writeFiles(cmd *cobra.Command, dir string, files map[string][]byte, dryRun bool) error {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	if dryRun {
		for _, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "would write %s (%d bytes)\n", filepath.Join(dir, name), len(files[name]))
		}
		return nil
	}

	if len(names) > 0 {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, files[name], 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		a.status(cmd, "✓ Wrote %s", path)
	}
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// wantPreview resolves a --preview mode of auto, always or never.
func wantPreview(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "auto", "":
		return isTerminal(w), nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	default:
		return false, fmt.Errorf("invalid preview mode %q (auto, always, never)", mode)
	}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
