// Package seeds loads and validates seed theme corpora.
//
// A corpus is a JSON or YAML document holding either a bare list of seeds or
// an object with a "seeds" list. The engine tolerates malformed seeds, so
// validation here is advisory unless strict mode is requested.
package seeds

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"

	"github.com/kolshub/themelab/internal/compression"
	"github.com/kolshub/themelab/internal/source"
	"github.com/kolshub/themelab/internal/theme"
)

//go:embed default_seeds.json
var defaultCorpus []byte

// DefaultSource is the name reported for the embedded corpus.
const DefaultSource = "builtin"

// ErrNoSeeds is returned in strict mode when a corpus holds no seeds.
var ErrNoSeeds = errors.New("seed corpus is empty")

// memberSelector picks the corpus out of an archive.
var memberSelector = compression.Selector{
	Preferred:  []string{"seeds.json", "seeds.yaml", "seeds.yml"},
	Extensions: []string{".json", ".yaml", ".yml"},
}

// Options configure Load.
type Options struct {
	Source source.Options
	// Strict fails on an empty corpus or any validation issue.
	Strict bool
	Logger hclog.Logger
}

type corpusFile struct {
	Seeds []theme.SeedTheme `json:"seeds" yaml:"seeds"`
}

// Default returns a freshly decoded copy of the embedded corpus.
func Default() []theme.SeedTheme {
	seeds, err := Decode(defaultCorpus, source.FormatJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded seed corpus is invalid: %v", err))
	}
	return seeds
}

// Load reads a corpus from src. An empty src or DefaultSource selects the
// embedded corpus.
func Load(ctx context.Context, src string, opts Options) ([]theme.SeedTheme, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var seeds []theme.SeedTheme
	if src == "" || src == DefaultSource {
		seeds = Default()
	} else {
		srcOpts := opts.Source
		if srcOpts.Member.Target == "" && len(srcOpts.Member.Extensions) == 0 {
			srcOpts.Member = memberSelector
		}
		if srcOpts.Logger == nil {
			srcOpts.Logger = logger
		}

		doc, err := source.Read(ctx, src, srcOpts)
		if err != nil {
			return nil, err
		}
		seeds, err = Decode(doc.Data, doc.Format)
		if err != nil {
			return nil, fmt.Errorf("failed to decode seed corpus %s: %w", doc.Name, err)
		}
	}

	issues := Validate(seeds)
	if opts.Strict {
		if len(seeds) == 0 {
			return nil, ErrNoSeeds
		}
		if len(issues) > 0 {
			return nil, &ValidationError{Issues: issues}
		}
	}
	for _, issue := range issues {
		logger.Warn("seed issue", "seed", issue.Seed, "field", issue.Field, "problem", issue.Message)
	}

	logger.Debug("loaded seed corpus", "source", sourceName(src), "seeds", len(seeds))
	return seeds, nil
}

// Decode parses a corpus document in the given format.
func Decode(data []byte, format source.Format) ([]theme.SeedTheme, error) {
	if format == source.FormatYAML {
		return decodeYAML(data)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []theme.SeedTheme{}, nil
	}
	if trimmed[0] == '[' {
		var list []theme.SeedTheme
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var file corpusFile
	if err := json.Unmarshal(trimmed, &file); err != nil {
		return nil, err
	}
	return nonNil(file.Seeds), nil
}

func decodeYAML(data []byte) ([]theme.SeedTheme, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return []theme.SeedTheme{}, nil
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		var list []theme.SeedTheme
		if err := node.Decode(&list); err != nil {
			return nil, err
		}
		return nonNil(list), nil
	case yaml.MappingNode:
		var file corpusFile
		if err := node.Decode(&file); err != nil {
			return nil, err
		}
		return nonNil(file.Seeds), nil
	default:
		return nil, fmt.Errorf("expected a list of seeds or a mapping with a seeds key (line %d)", node.Line)
	}
}

func nonNil(seeds []theme.SeedTheme) []theme.SeedTheme {
	if seeds == nil {
		return []theme.SeedTheme{}
	}
	return seeds
}

func sourceName(src string) string {
	if src == "" {
		return DefaultSource
	}
	return src
}
