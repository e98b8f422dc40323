package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kolshub/themelab/internal/output/preview"
	"github.com/kolshub/themelab/internal/output/tailwind"
	"github.com/kolshub/themelab/internal/pack"
	"github.com/kolshub/themelab/internal/store"
	"github.com/kolshub/themelab/internal/theme"
)

func newPackCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Import, inspect and build theme packs",
		Long: `A theme pack is a named, versioned collection of complete themes
("presets"). One pack at a time is kept in the store; importing replaces it.`,
	}
	cmd.AddCommand(
		newPackImportCmd(a),
		newPackListCmd(a),
		newPackShowCmd(a),
		newPackAuditCmd(a),
		newPackRenderCmd(a),
		newPackBuildCmd(a),
	)
	return cmd
}

// storedPack loads the imported pack, with a hint when there is none.
func (a *app) storedPack(cmd *cobra.Command) (*pack.Pack, error) {
	s, err := a.openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	p, err := s.LoadPack(contextOf(cmd))
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("no theme pack imported; run 'themelab pack import <source>'")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load theme pack: %w", err)
	}
	return p, nil
}

func newPackImportCmd(a *app) *cobra.Command {
	var repair bool

	cmd := &cobra.Command{
		Use:   "import <source>",
		Short: "Import a theme pack into the store",
		Long: `Import a theme pack from a JSON or YAML file, an https:// URL, an archive
or - for stdin. The pack replaces any previously imported one.

With --repair, presets whose text fails the 4.5:1 contrast threshold are
corrected before saving.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.status(cmd, "→ Reading %s", args[0])
			p, err := pack.Load(contextOf(cmd), args[0], a.sourceOptions(cmd))
			if err != nil {
				return fmt.Errorf("failed to import theme pack: %w", err)
			}

			if findings := p.Audit(); len(findings) > 0 {
				if repair {
					a.status(cmd, "✓ Repaired %d presets with unreadable text", p.Repair())
				} else {
					a.status(cmd, "⚠ %d presets fail the contrast threshold (see 'themelab pack audit')", len(findings))
				}
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.SavePack(contextOf(cmd), p); err != nil {
				return fmt.Errorf("failed to save theme pack: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Imported %s", p.Name)
			if p.Version != "" {
				fmt.Fprintf(out, " v%s", p.Version)
			}
			fmt.Fprintf(out, " (%d presets)\n", p.Len())
			if first, ok := p.First(); ok {
				fmt.Fprintf(out, "  First preset: %s (%s)\n", first.Name, first.ID)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&repair, "repair", false, "fix presets with unreadable text before saving")
	return cmd
}

func newPackListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List presets in the imported pack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.storedPack(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n\n", p.Name, p.Version)
			if p.Len() == 0 {
				fmt.Fprintln(out, "No presets.")
				return nil
			}
			table := NewTable("ID", "Name", "Background", "Brand", "Kelvin")
			for _, t := range p.Presets {
				table.AddRow(t.ID, t.Name, t.Palette.Background, t.Palette.Brand, strconv.Itoa(t.Lighting.Kelvin))
			}
			return table.Fprint(out)
		},
	}
}

func newPackShowCmd(a *app) *cobra.Command {
	var previewMode string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one preset of the imported pack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.storedPack(cmd)
			if err != nil {
				return err
			}
			t, err := p.Find(args[0])
			if err != nil {
				return err
			}
			return showTheme(cmd, t, previewMode)
		},
	}
	cmd.Flags().StringVar(&previewMode, "preview", "never", "terminal preview instead of JSON: auto, always, never")
	return cmd
}

// showTheme prints t as a terminal preview or as indented JSON.
func showTheme(cmd *cobra.Command, t theme.Theme, previewMode string) error {
	show, err := wantPreview(previewMode, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if show {
		return preview.Fprint(cmd.OutOrStdout(), t)
	}
	data, _, err := store.Export(t)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func newPackAuditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "audit [source]",
		Short: "Check pack presets for unreadable text",
		Long: `Check every preset's text colour against its background. Presets below
the 4.5:1 threshold are listed with the colour synthesis would use instead.
Audits the imported pack, or the pack at source when one is given.

Exits non-zero when any preset fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				p   *pack.Pack
				err error
			)
			if len(args) == 1 {
				p, err = pack.Load(contextOf(cmd), args[0], a.sourceOptions(cmd))
			} else {
				p, err = a.storedPack(cmd)
			}
			if err != nil {
				return err
			}

			findings := p.Audit()
			out := cmd.OutOrStdout()
			if len(findings) == 0 {
				fmt.Fprintf(out, "✓ All %d presets meet %.1f:1\n", p.Len(), theme.MinContrast)
				return nil
			}

			table := NewTable("ID", "Background", "Text", "Ratio", "Corrected")
			for _, f := range findings {
				table.AddRow(f.ID, f.Background, f.Text, fmt.Sprintf("%.2f", f.Ratio), f.Corrected)
			}
			if err := table.Fprint(out); err != nil {
				return err
			}
			return fmt.Errorf("%d of %d presets fail the contrast threshold", len(findings), p.Len())
		},
	}
}

func newPackRenderCmd(a *app) *cobra.Command {
	var (
		outputs        []string
		outputDir      string
		tailwindFormat string
		dryRun         bool
	)

	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Render a preset of the imported pack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.storedPack(cmd)
			if err != nil {
				return err
			}
			t, err := p.Find(args[0])
			if err != nil {
				return err
			}

			registry := a.registry(tailwindFormat)
			if !cmd.Flags().Changed("outputs") {
				outputs = a.cfg.Generate.Outputs
			}
			if !cmd.Flags().Changed("output-dir") {
				outputDir = a.cfg.Generate.OutputDir
			}
			files, err := registry.RenderAll(t, resolveOutputs(registry, outputs))
			if err != nil {
				return fmt.Errorf("failed to render preset: %w", err)
			}
			return a.writeFiles(cmd, outputDir, files, dryRun)
		},
	}
	f := cmd.Flags()
	f.StringSliceVarP(&outputs, "outputs", "o", nil, "renderers to run (css, tailwind, json, yaml, png, all)")
	f.StringVarP(&outputDir, "output-dir", "d", "", "directory for rendered files")
	f.StringVar(&tailwindFormat, "tailwind-format", tailwind.FormatCSS, "tailwind output: css or config")
	f.BoolVar(&dryRun, "dry-run", false, "list files without writing them")
	return cmd
}

func newPackBuildCmd(a *app) *cobra.Command {
	var (
		name    string
		version string
		src     string
		out     string
		save    bool
		strict  bool
		sl      sliders
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a theme pack from the seed corpus",
		Long: `Synthesise one preset per seed, prompting with each seed's name, and
write the result as a theme pack. Preset IDs are the slugged seed names.

Examples:
  themelab pack build --name "Gothic Futurist" --pack-version 1.0 --out pack.json
  themelab pack build --seeds ./seeds.yaml --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen := a.cfg.Generate
			sl.resolve(cmd.Flags(), gen.WarmCool, gen.ContrastBoost, gen.EdgeGlow)

			corpus, err := a.loadSeeds(cmd, src, strict)
			if err != nil {
				return fmt.Errorf("failed to load seeds: %w", err)
			}

			p := pack.Build(a.synthesizer(), corpus, pack.BuildOptions{
				Name:          name,
				Version:       version,
				WarmCool:      sl.warmCool,
				ContrastBoost: sl.contrastBoost,
				EdgeGlow:      sl.edgeGlow,
			})
			a.status(cmd, "→ Built %s with %d presets", p.Name, p.Len())

			if save {
				s, err := a.openStore()
				if err != nil {
					return err
				}
				defer s.Close()
				if err := s.SavePack(contextOf(cmd), p); err != nil {
					return fmt.Errorf("failed to save theme pack: %w", err)
				}
				a.status(cmd, "✓ Saved %s", store.PackKey)
			}

			if out == "" && save {
				return nil
			}
			data, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode theme pack: %w", err)
			}
			data = append(data, '\n')
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write theme pack: %w", err)
			}
			a.status(cmd, "✓ Wrote %s", out)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", pack.DefaultName, "pack name")
	f.StringVar(&version, "pack-version", "1.0.0", "pack version")
	f.StringVar(&src, "seeds", "", "seed corpus source: file, URL, archive, - or builtin")
	f.BoolVar(&strict, "strict", false, "fail on an empty or invalid seed corpus")
	f.StringVar(&out, "out", "", "write the pack to a file (- for stdout)")
	f.BoolVar(&save, "save", false, "import the built pack into the store")
	sl.register(f)
	return cmd
}
