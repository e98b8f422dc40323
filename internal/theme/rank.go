package theme

import (
	"slices"
	"strings"
)

// Match is a seed with its relevance score and position in the corpus.
type Match struct {
	Seed  *SeedTheme
	Index int
	Score int
}

// Tokenize lowercases s and splits it on every run of characters outside
// [a-z0-9]. Empty tokens are dropped.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !isSlugRune(r)
	})
}

func isSlugRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// Score rates a seed against prompt tokens: two points per distinct tag
// that equals a token, plus one if any token occurs inside the seed name.
func Score(seed *SeedTheme, tokens []string) int {
	if seed == nil || len(tokens) == 0 {
		return 0
	}

	score := 0
	seen := make(map[string]struct{}, len(seed.Tags))
	for _, tag := range seed.Tags {
		tag = strings.ToLower(tag)
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		if slices.Contains(tokens, tag) {
			score += 2
		}
	}

	name := strings.ToLower(seed.Name)
	for _, tok := range tokens {
		if strings.Contains(name, tok) {
			score++
			break
		}
	}

	return score
}

// Rank scores every seed against the prompt and orders them by score
// descending, then corpus index ascending. The order is fully determined by
// the inputs.
func Rank(prompt string, seeds []SeedTheme) []Match {
	tokens := Tokenize(prompt)
	matches := make([]Match, len(seeds))
	for i := range seeds {
		matches[i] = Match{
			Seed:  &seeds[i],
			Index: i,
			Score: Score(&seeds[i], tokens),
		}
	}

	slices.SortFunc(matches, func(a, b Match) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return a.Index - b.Index
	})
	return matches
}
