package core

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
)

const maxResponseFileDepth = 8

// expandResponseFile tokenizes the contents of a response file in place of
// the "@path" token that named it.
func (t *tokenizer) expandResponseFile(source Token, path string, depth int) {
	if depth >= maxResponseFileDepth {
		t.fail(source, fmt.Errorf("%w %q: nested deeper than %d files", ErrResponseFile, path, maxResponseFileDepth))
		return
	}

	if t.visiting[path] {
		t.fail(source, fmt.Errorf("%w %q: file includes itself", ErrResponseFile, path))
		return
	}

	data, err := t.cfg.ReadFile(path)
	if err != nil {
		t.fail(source, fmt.Errorf("%w %q: %w", ErrResponseFile, path, err))
		return
	}

	words, err := responseFileWords(t.cfg.ResponseFiles, string(data))
	if err != nil {
		t.fail(source, fmt.Errorf("%w %q: %w", ErrResponseFile, path, err))
		return
	}

	t.cfg.Logger.Debug("expanding response file", "path", path, "words", len(words), "depth", depth)

	t.visiting[path] = true
	defer delete(t.visiting, path)

	for _, w := range words {
		t.consume(w, source.position, depth+1)
	}
}

func responseFileWords(mode ResponseFileHandling, content string) ([]string, error) {
	if mode == ResponseFilesSpaceSeparated {
		//nolint:wrapcheck // wrapped by the caller with the file name
		return shlex.Split(content)
	}

	var words []string

	for line := range strings.Lines(content) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		words = append(words, line)
	}

	return words, nil
}
