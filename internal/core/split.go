package core

// SplitCommandLine splits a raw command line on whitespace. Double-quoted
// segments keep their whitespace and lose the quotes; nothing else is
// interpreted.
func SplitCommandLine(line string) []string {
	words := splitWords(line)
	out := make([]string, len(words))

	for i, w := range words {
		out[i] = w.text
	}

	return out
}

// word is one split piece of a raw line with its byte span [start, end).
type word struct {
	text  string
	start int
	end   int
}

func isLineSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func splitWords(line string) []word {
	var (
		words   []word
		current []byte
		inQuote bool
		started bool
		start   int
	)

	flush := func(end int) {
		if started {
			words = append(words, word{text: string(current), start: start, end: end})
		}

		current = current[:0]
		started = false
	}

	for i := range len(line) {
		ch := line[i]

		switch {
		case ch == '"':
			if !started {
				started = true
				start = i
			}

			inQuote = !inQuote
		case isLineSpace(ch) && !inQuote:
			flush(i)
		default:
			if !started {
				started = true
				start = i
			}

			current = append(current, ch)
		}
	}

	flush(len(line))

	return words
}

// wordAt returns the index of the word containing or ending at the byte
// offset, or -1 when the offset sits in whitespace.
func wordAt(words []word, offset int) int {
	for i, w := range words {
		if offset >= w.start && offset <= w.end {
			return i
		}
	}

	return -1
}
