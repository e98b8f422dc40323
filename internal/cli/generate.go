package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kolshub/themelab/internal/output/preview"
	"github.com/kolshub/themelab/internal/output/tailwind"
	"github.com/kolshub/themelab/internal/theme"
)

type generateOptions struct {
	prompt         string
	sliders        sliders
	seeds          string
	strict         bool
	outputs        []string
	outputDir      string
	tailwindFormat string
	dryRun         bool
	preview        string
	save           bool
	print          bool
	explain        bool
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [prompt...]",
		Short: "Synthesise a theme from a prompt",
		Long: `Synthesise a theme by ranking the seed corpus against a prompt, blending
the top seeds into the baseline palette and shifting it warm or cool.

The prompt can be given as arguments or with --prompt. Without either the
configured default prompt is used.

Examples:
  themelab generate gothic night
  themelab generate "regency study" --warm-cool 0.8 --outputs css,tailwind,png
  themelab generate neon rain --seeds ./seeds.yaml --strict --save
  themelab generate "cathedral techno" --print > theme.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.prompt, "prompt", "p", "", "prompt text (alternative to arguments)")
	opts.sliders.register(f)
	f.StringVar(&opts.seeds, "seeds", "", "seed corpus source: file, URL, archive, - or builtin")
	f.BoolVar(&opts.strict, "strict", false, "fail on an empty or invalid seed corpus")
	f.StringSliceVarP(&opts.outputs, "outputs", "o", nil, "renderers to run (css, tailwind, json, yaml, png, all, none)")
	f.StringVarP(&opts.outputDir, "output-dir", "d", "", "directory for rendered files")
	f.StringVar(&opts.tailwindFormat, "tailwind-format", tailwind.FormatCSS, "tailwind output: css or config")
	f.BoolVar(&opts.dryRun, "dry-run", false, "list files without writing them")
	f.StringVar(&opts.preview, "preview", "auto", "terminal preview: auto, always, never")
	f.BoolVar(&opts.save, "save", false, "save the theme to the store")
	f.BoolVar(&opts.print, "print", false, "print the theme as JSON to stdout")
	f.BoolVar(&opts.explain, "explain", false, "show how the seed corpus ranked against the prompt")

	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, opts *generateOptions, args []string) error {
	gen := a.cfg.Generate

	prompt := opts.prompt
	if len(args) > 0 {
		if prompt != "" {
			return fmt.Errorf("give the prompt as arguments or --prompt, not both")
		}
		prompt = strings.Join(args, " ")
	}
	if !cmd.Flags().Changed("prompt") && len(args) == 0 {
		prompt = gen.Prompt
	}
	opts.sliders.resolve(cmd.Flags(), gen.WarmCool, gen.ContrastBoost, gen.EdgeGlow)

	outputs := gen.Outputs
	if cmd.Flags().Changed("outputs") {
		outputs = opts.outputs
	}
	outputDir := gen.OutputDir
	if cmd.Flags().Changed("output-dir") {
		outputDir = opts.outputDir
	}

	registry := a.registry(opts.tailwindFormat)
	outputs = resolveOutputs(registry, outputs)
	for _, name := range outputs {
		if _, ok := registry.Get(name); !ok {
			return fmt.Errorf("unknown output %q (available: %s)", name, strings.Join(registry.List(), ", "))
		}
	}
	if opts.tailwindFormat != tailwind.FormatCSS && opts.tailwindFormat != tailwind.FormatConfig {
		return fmt.Errorf("invalid tailwind format %q (css, config)", opts.tailwindFormat)
	}

	showPreview, err := wantPreview(opts.preview, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	corpus, err := a.loadSeeds(cmd, opts.seeds, opts.strict)
	if err != nil {
		return fmt.Errorf("failed to load seeds: %w", err)
	}
	a.logger.Debug("loaded seed corpus", "seeds", len(corpus))

	if opts.explain {
		if err := printRanking(cmd, prompt, corpus, 0); err != nil {
			return err
		}
	}

	t := a.synthesizer().Synthesize(theme.Request{
		Prompt:        prompt,
		Seeds:         corpus,
		WarmCool:      opts.sliders.warmCool,
		ContrastBoost: opts.sliders.contrastBoost,
		EdgeGlow:      opts.sliders.edgeGlow,
	})
	a.status(cmd, "→ Synthesised %s (%s)", t.Name, t.ID)

	if opts.print {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("failed to encode theme: %w", err)
		}
	} else if showPreview {
		if err := preview.Fprint(cmd.OutOrStdout(), t); err != nil {
			return err
		}
	} else if err := printPalette(cmd, t); err != nil {
		return err
	}

	if len(outputs) > 0 {
		files, err := registry.RenderAll(t, outputs)
		if err != nil {
			return fmt.Errorf("failed to render theme: %w", err)
		}
		if err := a.writeFiles(cmd, outputDir, files, opts.dryRun); err != nil {
			return err
		}
	}

	if opts.save && !opts.dryRun {
		s, err := a.openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		key, err := s.Save(contextOf(cmd), t)
		if err != nil {
			return fmt.Errorf("failed to save theme: %w", err)
		}
		a.status(cmd, "✓ Saved %s", key)
	}

	return nil
}

// printPalette writes a plain role/colour listing of t.
func printPalette(cmd *cobra.Command, t theme.Theme) error {
	p := t.Palette
	table := NewTable("Role", "Colour")
	table.AddRow("bg", p.Background)
	table.AddRow("surface", p.Surface)
	table.AddRow("text", p.Text)
	table.AddRow("muted", p.Muted)
	table.AddRow("brand", p.Brand)
	table.AddRow("accent", p.Accent)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", t.Name, t.ID)
	fmt.Fprintf(out, "materials: %s / %s / %s\n", t.Materials.Wood, t.Materials.Stone, t.Materials.Metal)
	fmt.Fprintf(out, "lighting:  %dK, contrast %.2f, edge glow %.2f\n\n",
		t.Lighting.Kelvin, t.Lighting.Contrast, t.Lighting.EdgeGlow)
	return table.Fprint(out)
}
