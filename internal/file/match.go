// Package file offers glob matching over a file system and completion
// sources built on it.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/toejough/argot/internal/core"
)

// Exported variables.
var (
	ErrBadPattern     = errors.New("invalid glob pattern")
	ErrNoPatterns     = errors.New("no patterns provided")
	ErrUnmatchedBrace = errors.New("unmatched brace in pattern")
)

// Match expands one or more patterns against fsys using fish-style globs
// (including ** and {a,b}). Paths are slash separated and relative to the
// root of fsys. The result is sorted and free of duplicates.
func Match(fsys fs.FS, patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	seen := make(map[string]bool)

	var matches []string

	for _, pattern := range patterns {
		expanded, err := expandBraces(path.Clean(pattern))
		if err != nil {
			return nil, err
		}

		for _, exp := range expanded {
			list, err := doublestar.Glob(fsys, exp)
			if err != nil {
				return nil, fmt.Errorf("matching pattern %q: %w", exp, err)
			}

			for _, match := range list {
				if !seen[match] {
					seen[match] = true
					matches = append(matches, match)
				}
			}
		}
	}

	sort.Strings(matches)

	return matches, nil
}

// Suggestions returns a completion source offering the paths of fsys that
// match any of the patterns. When the word being completed names a
// directory, only paths under it are offered.
func Suggestions(fsys fs.FS, patterns ...string) (core.CompletionSource, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
		}
	}

	return func(ctx core.CompletionContext) []string {
		matches, err := Match(fsys, patterns...)
		if err != nil {
			return nil
		}

		dir, _ := path.Split(ctx.Word)
		if dir == "" {
			return matches
		}

		var under []string

		for _, match := range matches {
			if strings.HasPrefix(match, dir) {
				under = append(under, match)
			}
		}

		return under
	}, nil
}

func expandBraces(pattern string) ([]string, error) {
	start := strings.Index(pattern, "{")
	if start == -1 {
		return []string{pattern}, nil
	}

	depth := 0

	for idx := start; idx < len(pattern); idx++ {
		switch pattern[idx] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				before := pattern[:start]
				after := pattern[idx+1:]

				var result []string

				for _, part := range splitBraceOptions(pattern[start+1 : idx]) {
					expanded, err := expandBraces(before + part + after)
					if err != nil {
						return nil, err
					}

					result = append(result, expanded...)
				}

				return result, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnmatchedBrace, pattern)
}

func splitBraceOptions(content string) []string {
	var parts []string

	depth := 0
	start := 0

	for idx := range len(content) {
		switch content[idx] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, content[start:idx])
				start = idx + 1
			}
		}
	}

	return append(parts, content[start:])
}
