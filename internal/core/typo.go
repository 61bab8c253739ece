package core

import (
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// unexported constants.
const (
	maxTypoDistance    = 3
	maxTypoSuggestions = 3
)

// suggestAliases returns the visible aliases in scope closest to text.
func suggestAliases(chain []*CommandResult, text string) []string {
	type candidate struct {
		alias    string
		distance int
	}

	var candidates []candidate

	seen := map[string]bool{}

	consider := func(alias string) {
		if seen[alias] {
			return
		}

		seen[alias] = true

		distance := fuzzy.LevenshteinDistance(strings.ToLower(text), strings.ToLower(alias))
		if distance <= maxTypoDistance && distance < len(alias) {
			candidates = append(candidates, candidate{alias: alias, distance: distance})
		}
	}

	innermost := chain[len(chain)-1].command

	for _, sub := range innermost.subcommands {
		if !sub.hidden {
			for _, alias := range sub.aliases {
				consider(alias)
			}
		}
	}

	for _, opt := range visibleOptions(chain) {
		if !opt.hidden {
			for _, alias := range opt.aliases {
				consider(alias)
			}
		}
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		if a.distance != b.distance {
			return a.distance - b.distance
		}

		return strings.Compare(a.alias, b.alias)
	})

	out := make([]string, 0, min(len(candidates), maxTypoSuggestions))
	for _, c := range candidates[:min(len(candidates), maxTypoSuggestions)] {
		out = append(out, c.alias)
	}

	return out
}
