package core

import (
	"slices"
	"strings"
)

// CompletionItem is one completion candidate.
type CompletionItem struct {
	Label string
	// Kind is the kind of symbol that produced the candidate.
	Kind   SymbolKind
	Detail string
	Symbol Symbol
}

// Complete returns the candidates for the word at the cursor position, a byte
// offset into the raw line. A negative position means the end of the input.
//
// The input before the word is parsed again to find the context, so the
// candidates reflect what is valid at the cursor rather than at the end.
func (r *ParseResult) Complete(position int) []CompletionItem {
	word, prefix := r.completionInput(position)
	before := r.parser.parse(prefix, "", false)

	items := before.candidates(word)

	return rankItems(items, word)
}

// completionInput returns the word being completed and the input before it.
func (r *ParseResult) completionInput(position int) (string, []string) {
	line, ok := r.rawLine, r.hasRawLine
	if !ok && position >= 0 {
		line, ok = strings.Join(r.args, " "), true
	}

	if !ok {
		return r.unmatchedTail()
	}

	if position < 0 || position > len(line) {
		position = len(line)
	}

	words := splitWords(line)
	prefix := make([]string, 0, len(words))

	if idx := wordAt(words, position); idx >= 0 {
		for _, w := range words[:idx] {
			prefix = append(prefix, w.text)
		}

		return words[idx].text, prefix
	}

	for _, w := range words {
		if w.end <= position {
			prefix = append(prefix, w.text)
		}
	}

	return "", prefix
}

// unmatchedTail treats a trailing unmatched token as the word being typed.
func (r *ParseResult) unmatchedTail() (string, []string) {
	if len(r.unmatched) == 0 || len(r.tokens) == 0 || len(r.args) == 0 {
		return "", r.args
	}

	last := r.unmatched[len(r.unmatched)-1]
	final := r.tokens[len(r.tokens)-1]

	if last.position != final.position || last.text != final.text || last.position != len(r.args)-1 {
		return "", r.args
	}

	return last.text, r.args[:len(r.args)-1]
}

func (r *ParseResult) candidates(word string) []CompletionItem {
	cc := CompletionContext{Word: word, Result: r}

	var items []CompletionItem

	if r.pending != nil {
		items = append(items, argumentItems(r.pending.option.argument, cc, r.parser.cfg.Registry)...)

		if r.pending.awaitingValue() {
			return items
		}
	}

	chain := commandChain(r.innermost)
	cmd := r.innermost.command

	for _, sub := range cmd.subcommands {
		if !sub.hidden {
			items = append(items, aliasItems(sub, sub.aliases)...)
		}
	}

	for _, opt := range cmd.options {
		if r.offerOption(chain, opt, word) {
			items = append(items, aliasItems(opt, opt.aliases)...)
		}
	}

	for _, argRes := range r.innermost.arguments {
		if len(argRes.tokens) < argRes.argument.GetArity().Max {
			items = append(items, argumentItems(argRes.argument, cc, r.parser.cfg.Registry)...)
		}
	}

	for i := len(chain) - 2; i >= 0; i-- {
		for _, opt := range chain[i].command.recursiveOptions() {
			if r.offerOption(chain, opt, word) {
				items = append(items, aliasItems(opt, opt.aliases)...)
			}
		}
	}

	return items
}

// offerOption reports whether an option is worth suggesting. An option that
// was already given as many values as it can take is left out, unless the
// word is a token that already named it.
func (r *ParseResult) offerOption(chain []*CommandResult, opt *Option, word string) bool {
	if opt.hidden {
		return false
	}

	res := findOptionResult(chain, opt)
	if res == nil || res.implicit {
		return true
	}

	if slices.ContainsFunc(res.identifierTokens, func(tok Token) bool { return tok.text == word }) {
		return true
	}

	arity := opt.argument.GetArity()

	return arity.Max > 1 && len(res.argument.tokens) < arity.Max
}

func aliasItems(sym Symbol, aliases []string) []CompletionItem {
	items := make([]CompletionItem, 0, len(aliases))

	for _, alias := range aliases {
		items = append(items, CompletionItem{
			Label:  alias,
			Kind:   sym.Kind(),
			Detail: sym.GetDescription(),
			Symbol: sym,
		})
	}

	return items
}

// argumentItems collects static, allowed, registry and dynamic suggestions.
func argumentItems(arg *Argument, cc CompletionContext, reg *Registry) []CompletionItem {
	if arg.hidden {
		return nil
	}

	labels := slices.Clone(arg.completions)
	labels = append(labels, arg.allowed...)
	labels = append(labels, reg.Suggestions(arg.valueType.elementType())...)

	if arg.valueType.kind == KindBool {
		labels = append(labels, "true", "false")
	}

	for _, source := range arg.sources {
		labels = append(labels, source(cc)...)
	}

	var subject Symbol = arg
	if arg.owner != nil {
		subject = arg.owner
	}

	items := make([]CompletionItem, 0, len(labels))
	for _, label := range labels {
		items = append(items, CompletionItem{
			Label:  label,
			Kind:   SymbolArgument,
			Detail: subject.GetDescription(),
			Symbol: arg,
		})
	}

	return items
}

// rankItems keeps the items containing word, case-insensitively, drops
// repeated labels and sorts by where the word matched, then by label.
func rankItems(items []CompletionItem, word string) []CompletionItem {
	needle := strings.ToLower(word)
	seen := map[string]bool{}
	out := make([]CompletionItem, 0, len(items))

	for _, item := range items {
		if seen[item.Label] || !strings.Contains(strings.ToLower(item.Label), needle) {
			continue
		}

		seen[item.Label] = true
		out = append(out, item)
	}

	slices.SortStableFunc(out, func(a, b CompletionItem) int {
		ai := strings.Index(strings.ToLower(a.Label), needle)
		bi := strings.Index(strings.ToLower(b.Label), needle)

		if ai != bi {
			return ai - bi
		}

		return strings.Compare(a.Label, b.Label)
	})

	return out
}
