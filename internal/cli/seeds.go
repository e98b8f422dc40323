package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	imgload "github.com/kolshub/themelab/internal/image"
	"github.com/kolshub/themelab/internal/seeds"
	"github.com/kolshub/themelab/internal/source"
	"github.com/kolshub/themelab/internal/theme"
)

func newSeedsCmd(a *app) *cobra.Command {
	var src string

	cmd := &cobra.Command{
		Use:   "seeds",
		Short: "Inspect the seed corpus",
		Long: `Inspect the seed corpus used for synthesis. The corpus defaults to the
built-in gothic-futurist presets; point --seeds (or THEMELAB_SEEDS) at a
JSON or YAML file, URL or archive to use another one.`,
	}
	cmd.PersistentFlags().StringVar(&src, "seeds", "", "seed corpus source: file, URL, archive, - or builtin")

	cmd.AddCommand(
		newSeedsListCmd(a, &src),
		newSeedsValidateCmd(a, &src),
		newSeedsRankCmd(a, &src),
		newSeedsExtractCmd(a),
	)
	return cmd
}

func newSeedsListCmd(a *app, src *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the seeds in the corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			corpus, err := a.loadSeeds(cmd, *src, false)
			if err != nil {
				return fmt.Errorf("failed to load seeds: %w", err)
			}
			if len(corpus) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No seeds in corpus.")
				return nil
			}

			table := NewTable("Name", "Tags", "Background", "Brand", "Accent")
			table.SetColumnMaxWidth(1, 40)
			for _, s := range corpus {
				var bg, brand, accent string
				if s.Palette != nil {
					bg, brand, accent = s.Palette.Background, s.Palette.Brand, s.Palette.Accent
				}
				table.AddRow(s.Name, strings.Join(s.Tags, ", "), bg, brand, accent)
			}
			if err := table.Fprint(cmd.OutOrStdout()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d seeds\n", len(corpus))
			return nil
		},
	}
}

func newSeedsValidateCmd(a *app, src *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the corpus for malformed seeds",
		Long: `Check the corpus for malformed colours, missing or duplicate names and
out-of-range lighting hints. Synthesis tolerates all of these, so they are
only reported here and in strict mode.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			corpus, err := a.loadSeeds(cmd, *src, false)
			if err != nil {
				return fmt.Errorf("failed to load seeds: %w", err)
			}
			if len(corpus) == 0 {
				return seeds.ErrNoSeeds
			}

			issues := seeds.Validate(corpus)
			if len(issues) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %d seeds, no issues\n", len(corpus))
				return nil
			}
			for _, issue := range issues {
				fmt.Fprintf(cmd.OutOrStdout(), "⚠ %s\n", issue)
			}
			return &seeds.ValidationError{Issues: issues}
		},
	}
}

func newSeedsRankCmd(a *app, src *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "rank <prompt...>",
		Short: "Show how seeds rank against a prompt",
		Long: `Score every seed against a prompt: two points per tag matching a prompt
word, plus one when a prompt word occurs in the seed name. Ties keep corpus
order. The top three seeds feed the blend.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := a.loadSeeds(cmd, *src, false)
			if err != nil {
				return fmt.Errorf("failed to load seeds: %w", err)
			}
			return printRanking(cmd, strings.Join(args, " "), corpus, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the top n seeds (0 for all)")
	return cmd
}

// printRanking writes the ranked corpus, marking the seeds used by the blend.
func printRanking(cmd *cobra.Command, prompt string, corpus []theme.SeedTheme, limit int) error {
	matches := theme.Rank(prompt, corpus)
	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Tokens: %s\n\n", strings.Join(theme.Tokenize(prompt), " "))

	table := NewTable("Rank", "Seed", "Score", "Blend")
	for i, m := range matches {
		blend := ""
		if i < theme.TopSeeds {
			blend = "✓"
		}
		table.AddRow(strconv.Itoa(i+1), m.Seed.Name, strconv.Itoa(m.Score), blend)
	}
	if err := table.Fprint(out); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return nil
}

func newSeedsExtractCmd(a *app) *cobra.Command {
	var (
		name     string
		tags     []string
		clusters int
		out      string
		appendTo string
	)

	cmd := &cobra.Command{
		Use:   "extract <image|dir|url>...",
		Short: "Derive seeds from images",
		Long: `Derive one seed per image from its dominant colours. The darkest large
colour becomes the background, the most vivid ones brand and accent, and the
lightest the hint. Tags describing the mood are added so prompts can find the
seed.

Directories are expanded to the images they contain. Images may also be
https:// URLs or archives holding a single image.

Examples:
  themelab seeds extract ./moodboard/ --tag gothic --out seeds.json
  themelab seeds extract cover.png --name "Harbour Night" --append seeds.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := imgload.Resolve(args)
			if err != nil {
				return err
			}
			if name != "" && len(paths) > 1 {
				return fmt.Errorf("--name needs a single image, got %d", len(paths))
			}

			extracted := make([]theme.SeedTheme, 0, len(paths))
			for _, path := range paths {
				img, member, err := imgload.Load(contextOf(cmd), path, a.sourceOptions(cmd))
				if err != nil {
					return fmt.Errorf("failed to load image: %w", err)
				}
				seedName := name
				if seedName == "" {
					seedName = nameFromFile(member)
				}
				seed, err := seeds.FromImage(img, seeds.ExtractOptions{Name: seedName, Tags: tags, Clusters: clusters})
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				a.status(cmd, "✓ %s → %s (%s)", path, seed.Name, strings.Join(seed.Tags, ", "))
				extracted = append(extracted, seed)
			}

			corpus := extracted
			if appendTo != "" {
				existing, err := readCorpusFile(a, appendTo)
				if err != nil {
					return err
				}
				corpus = append(existing, extracted...)
				out = appendTo
			}

			data, err := json.MarshalIndent(map[string][]theme.SeedTheme{"seeds": corpus}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode seeds: %w", err)
			}
			data = append(data, '\n')
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			a.status(cmd, "✓ Wrote %d seeds to %s", len(corpus), out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "seed name (single image only; default from the file name)")
	f.StringSliceVar(&tags, "tag", nil, "tags to add to every extracted seed")
	f.IntVar(&clusters, "clusters", seeds.DefaultClusters, "number of dominant colours to find")
	f.StringVar(&out, "out", "", "write the corpus to a file (- for stdout)")
	f.StringVar(&appendTo, "append", "", "append to an existing JSON corpus file, creating it if missing")
	return cmd
}

// readCorpusFile loads a local corpus for appending. A missing file is an
// empty corpus.
func readCorpusFile(a *app, path string) ([]theme.SeedTheme, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	format := source.FormatJSON
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
		format = source.FormatYAML
	}
	corpus, err := seeds.Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	a.logger.Debug("appending to corpus", "path", path, "seeds", len(corpus))
	return corpus, nil
}

// nameFromFile turns "harbour_night-02.png" into "Harbour Night 02".
func nameFromFile(file string) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	})
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
