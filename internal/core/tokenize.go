package core

import (
	"strings"
)

// tokenizer classifies raw input strings against the symbol tree. It tracks
// the commands seen so far so aliases are only recognized where they are in
// scope.
type tokenizer struct {
	cfg        *Config
	directives map[string]*Directive

	tokens []Token
	errors []*ParseError
	// path holds the commands named so far, root first.
	path     []*Command
	afterEnd bool
	// awaiting is the option whose required values have not arrived yet.
	awaiting     *Option
	awaitingNeed int
	visiting     map[string]bool
}

func newTokenizer(p *Parser) *tokenizer {
	return &tokenizer{
		cfg:        &p.cfg,
		directives: p.directives,
		path:       []*Command{p.cfg.Root},
		visiting:   map[string]bool{},
	}
}

func (t *tokenizer) consume(text string, position, depth int) {
	if t.afterEnd {
		t.emit(text, TokenOperand, position, nil)
		return
	}

	if text == "--" {
		t.emit(text, TokenEndOfArguments, position, nil)
		t.afterEnd = true

		return
	}

	if t.cfg.ResponseFiles != ResponseFilesDisabled && len(text) > 1 && text[0] == '@' {
		t.expandResponseFile(NewToken(text, TokenArgument, position), text[1:], depth)
		return
	}

	if t.trySplitDelimited(text, position) {
		return
	}

	if t.tryUnbundle(text, position) {
		return
	}

	switch sym := t.lookup(text).(type) {
	case *Command:
		if t.awaitingValue() {
			t.emit(text, TokenArgument, position, nil)
			return
		}

		t.emit(text, TokenCommand, position, sym)
	case *Option:
		if t.awaitingValue() {
			t.emit(text, TokenArgument, position, nil)
			return
		}

		t.emit(text, TokenOption, position, sym)
	default:
		t.emit(text, TokenArgument, position, nil)
	}
}

func (t *tokenizer) awaitingValue() bool {
	return t.awaiting != nil && t.awaitingNeed > 0
}

func (t *tokenizer) emit(text string, kind TokenKind, position int, sym Symbol) {
	t.tokens = append(t.tokens, Token{text: text, kind: kind, position: position, symbol: sym})

	switch kind {
	case TokenCommand:
		t.path = append(t.path, sym.(*Command)) //nolint:forcetypeassert // command tokens carry commands
		t.awaiting = nil
	case TokenOption:
		opt := sym.(*Option) //nolint:forcetypeassert // option tokens carry options
		t.awaiting = opt
		t.awaitingNeed = opt.argument.GetArity().Min
	case TokenArgument:
		if t.awaiting != nil {
			t.awaitingNeed--
			if t.awaitingNeed <= 0 {
				t.awaiting = nil
			}
		}
	case TokenDirective, TokenEndOfArguments, TokenOperand:
		t.awaiting = nil
	}
}

func (t *tokenizer) fail(source Token, err error) {
	tok := source
	t.errors = append(t.errors, newParseError(ErrorResponseFile, nil, &tok, err))
}

// lookup resolves text among the aliases in scope: the innermost command's
// options and subcommands, then the recursive options of its ancestors.
func (t *tokenizer) lookup(text string) Symbol {
	innermost := t.path[len(t.path)-1]

	if sym := innermost.lookup(text, t.cfg.CaseInsensitive); sym != nil {
		return sym
	}

	for i := len(t.path) - 2; i >= 0; i-- {
		for _, opt := range t.path[i].recursiveOptions() {
			if opt.HasRawAlias(text) || (t.cfg.CaseInsensitive && hasAliasFold(opt.aliases, text)) {
				return opt
			}
		}
	}

	return nil
}

func (t *tokenizer) lookupOption(text string) *Option {
	opt, _ := t.lookup(text).(*Option)
	return opt
}

func (t *tokenizer) tokenizeDirectives(args []string) int {
	count := 0

	for _, arg := range args {
		name, _, _, ok := splitDirective(arg)
		if !ok {
			break
		}

		directive, known := t.directives[name]
		if !known {
			break
		}

		t.emit(arg, TokenDirective, count, directive)
		count++
	}

	return count
}

// trySplitDelimited handles "--name=value" and "--name:value".
func (t *tokenizer) trySplitDelimited(text string, position int) bool {
	if !isPrefixed(text) || t.lookup(text) != nil {
		return false
	}

	idx := strings.IndexAny(text, "=:")
	if idx <= 0 {
		return false
	}

	opt := t.lookupOption(text[:idx])
	if opt == nil {
		return false
	}

	t.emit(text[:idx], TokenOption, position, opt)

	if value := text[idx+1:]; value != "" {
		t.emit(value, TokenArgument, position, nil)
	}

	return true
}

// tryUnbundle handles "-abc" meaning "-a -b -c".
func (t *tokenizer) tryUnbundle(text string, position int) bool {
	if t.cfg.DisablePosixBundling || t.awaitingValue() || len(text) <= len("-x") {
		return false
	}

	if text[0] != '-' || text[1] == '-' || t.lookup(text) != nil {
		return false
	}

	chars := []rune(text[1:])
	options := make([]*Option, 0, len(chars))

	for _, ch := range chars {
		opt := t.lookupOption("-" + string(ch))
		if opt == nil {
			return false
		}

		options = append(options, opt)
	}

	for i, opt := range options {
		t.emit("-"+string(chars[i]), TokenOption, position, opt)
	}

	return true
}

func hasAliasFold(aliases []string, text string) bool {
	for _, alias := range aliases {
		if strings.EqualFold(alias, text) {
			return true
		}
	}

	return false
}

func isPrefixed(text string) bool {
	return strings.HasPrefix(text, "-") || strings.HasPrefix(text, "/")
}

// tokenize classifies args, leading directives first.
func tokenize(p *Parser, args []string) ([]Token, []*ParseError) {
	t := newTokenizer(p)

	start := t.tokenizeDirectives(args)

	for i := start; i < len(args); i++ {
		t.consume(args[i], i, 0)
	}

	return t.tokens, t.errors
}
