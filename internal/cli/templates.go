package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kolshub/themelab/internal/output"
	"github.com/kolshub/themelab/internal/output/tailwind"
	"github.com/kolshub/themelab/internal/output/template"
)

func newTemplatesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage renderer templates",
		Long: `The css and tailwind renderers are driven by text templates. Dump them to
the template directory to customise; a custom template takes precedence over
the embedded one with the same name.`,
	}
	cmd.AddCommand(newTemplatesListCmd(a), newTemplatesDumpCmd(a))
	return cmd
}

// templatedRenderers returns the renderers with overridable templates,
// limited to names when any are given.
func (a *app) templatedRenderers(names []string) ([]output.Renderer, error) {
	registry := a.registry(tailwind.FormatCSS)
	if len(names) == 0 {
		var out []output.Renderer
		for _, r := range registry.All() {
			if _, ok := r.(output.Templated); ok {
				out = append(out, r)
			}
		}
		return out, nil
	}

	out := make([]output.Renderer, 0, len(names))
	for _, name := range names {
		r, ok := registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown renderer %q", name)
		}
		if _, ok := r.(output.Templated); !ok {
			return nil, fmt.Errorf("renderer %q has no templates", name)
		}
		out = append(out, r)
	}
	return out, nil
}

func newTemplatesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [renderer...]",
		Short: "List embedded templates and their overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderers, err := a.templatedRenderers(args)
			if err != nil {
				return err
			}

			table := NewTable("Renderer", "Template", "Source", "Override path")
			for _, r := range renderers {
				loader := r.(output.Templated).Templates()
				files, err := loader.ListEmbeddedTemplates()
				if err != nil {
					return fmt.Errorf("failed to list %s templates: %w", r.Name(), err)
				}
				for _, file := range files {
					info := loader.GetInfo(file)
					src := "embedded"
					if info.CustomExists {
						src = "custom"
					}
					table.AddRow(r.Name(), file, src, info.CustomPath)
				}
			}
			return table.Fprint(cmd.OutOrStdout())
		},
	}
}

func newTemplatesDumpCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "dump [renderer...]",
		Short: "Write embedded templates to the template directory",
		Long: `Write embedded templates to the template directory (--template-dir,
THEMELAB_TEMPLATE_DIR or the config file) so they can be edited. Existing
files are kept unless --force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderers, err := a.templatedRenderers(args)
			if err != nil {
				return err
			}

			var skipped int
			for _, r := range renderers {
				loader := r.(output.Templated).Templates()
				dumped, err := loader.DumpAllTemplates(force)
				for _, path := range dumped {
					fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", path)
				}
				if err != nil {
					if !errors.Is(err, template.ErrTemplateExists) {
						return fmt.Errorf("failed to dump %s templates: %w", r.Name(), err)
					}
					skipped++
					a.logger.Warn("kept existing templates", "renderer", r.Name(), "error", err)
				}
			}
			if skipped > 0 {
				a.status(cmd, "⚠ Some templates already existed; use --force to overwrite")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing templates")
	return cmd
}
