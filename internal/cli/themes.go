package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kolshub/themelab/internal/store"
)

func newThemesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "Manage saved themes",
		Long:  `Manage themes saved with 'themelab generate --save'.`,
	}
	cmd.AddCommand(
		newThemesListCmd(a),
		newThemesShowCmd(a),
		newThemesExportCmd(a),
		newThemesDeleteCmd(a),
	)
	return cmd
}

func newThemesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved themes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := s.List(contextOf(cmd))
			if err != nil {
				return fmt.Errorf("failed to list themes: %w", err)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved themes.")
				return nil
			}

			table := NewTable("ID", "Name", "Background", "Saved")
			for _, r := range records {
				table.AddRow(r.Theme.ID, r.Theme.Name, r.Theme.Palette.Background, r.SavedAt.Local().Format("2006-01-02 15:04"))
			}
			return table.Fprint(cmd.OutOrStdout())
		},
	}
}

func newThemesShowCmd(a *app) *cobra.Command {
	var previewMode string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := s.Get(contextOf(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to load theme %s: %w", args[0], err)
			}
			return showTheme(cmd, t, previewMode)
		},
	}
	cmd.Flags().StringVar(&previewMode, "preview", "never", "terminal preview instead of JSON: auto, always, never")
	return cmd
}

func newThemesExportCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a saved theme to <id>.json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := s.Get(contextOf(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to load theme %s: %w", args[0], err)
			}
			data, name, err := store.Export(t)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "output-dir", "d", ".", "directory to write the export to")
	return cmd
}

func newThemesDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete saved themes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			for _, id := range args {
				if err := s.Delete(contextOf(cmd), id); err != nil {
					return fmt.Errorf("failed to delete theme %s: %w", id, err)
				}
				a.status(cmd, "✓ Deleted %s", id)
			}
			return nil
		},
	}
}
