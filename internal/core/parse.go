package core

import (
	"fmt"

	"github.com/ef-ds/deque"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Parse tokenizes and matches already split arguments. It never fails: every
// problem is collected on the returned result.
func (p *Parser) Parse(args []string) *ParseResult {
	return p.parse(args, "", false)
}

// ParseLine splits a raw command line with SplitCommandLine and parses it.
// The line is kept for completion.
func (p *Parser) ParseLine(line string) *ParseResult {
	return p.parse(SplitCommandLine(line), line, true)
}

// matcher walks the token queue and builds the result tree.
type matcher struct {
	parser *Parser
	queue  deque.Deque

	root      *CommandResult
	innermost *CommandResult
	// open lists the results that may take argument tokens, oldest first.
	open       []SymbolResult
	unmatched  []Token
	directives *orderedmap.OrderedMap[string, []string]
}

func (m *matcher) closeOptions() {
	kept := m.open[:0]

	for _, res := range m.open {
		if opt, ok := res.(*OptionResult); ok {
			opt.state.close()
			continue
		}

		kept = append(kept, res)
	}

	m.open = kept
}

func (m *matcher) matchArgument(tok Token) {
	for i := len(m.open) - 1; i >= 0; i-- {
		switch res := m.open[i].(type) {
		case *OptionResult:
			if res.tryTake(tok) {
				return
			}
		case *CommandResult:
			if res.tryTake(tok) {
				return
			}
		}
	}

	m.parser.cfg.Logger.Debug("unmatched token", "text", tok.text, "position", tok.position)
	m.unmatched = append(m.unmatched, tok)
}

func (m *matcher) matchCommand(tok Token) {
	cmd := tok.symbol.(*Command) //nolint:forcetypeassert // command tokens carry commands

	m.closeOptions()
	m.innermost.state.close()

	child := &CommandResult{
		command: cmd,
		parent:  m.innermost,
		token:   &tok,
		options: map[*Option]*OptionResult{},
	}
	child.state.open()

	m.innermost.subcommand = child
	m.innermost.addChild(child)
	m.innermost = child
	m.open = []SymbolResult{child}
}

func (m *matcher) matchDirective(tok Token) {
	name, value, hasValue, _ := splitDirective(tok.text)

	values, _ := m.directives.Get(name)
	if values == nil {
		values = []string{}
	}

	if hasValue {
		values = append(values, value)
	}

	m.directives.Set(name, values)
}

func (m *matcher) matchOption(tok Token) {
	opt := tok.symbol.(*Option) //nolint:forcetypeassert // option tokens carry options

	m.closeOptions()

	res := m.innermost.options[opt]
	if res == nil {
		res = newOptionResult(opt, m.innermost, m.parser.cfg.Registry)
		m.innermost.options[opt] = res
		m.innermost.addChild(res)
	}

	res.specify(tok)
	m.open = append(m.open, res)
}

func (m *matcher) run() {
	for m.queue.Len() > 0 {
		item, _ := m.queue.PopFront()
		tok := item.(Token) //nolint:forcetypeassert // the queue only holds tokens

		switch tok.kind {
		case TokenDirective:
			m.matchDirective(tok)
		case TokenEndOfArguments:
			m.closeOptions()
		case TokenCommand:
			m.matchCommand(tok)
		case TokenOption:
			m.matchOption(tok)
		case TokenArgument, TokenOperand:
			m.matchArgument(tok)
		}
	}
}

// pendingOption returns the option result still open after the last token.
func (m *matcher) pendingOption() *OptionResult {
	if len(m.open) == 0 {
		return nil
	}

	res, ok := m.open[len(m.open)-1].(*OptionResult)
	if !ok || !res.state.accepting() {
		return nil
	}

	return res
}

func (p *Parser) parse(args []string, line string, hasLine bool) *ParseResult {
	tokens, lexErrors := tokenize(p, args)

	root := &CommandResult{command: p.cfg.Root, options: map[*Option]*OptionResult{}}
	root.state.open()

	m := &matcher{
		parser:     p,
		root:       root,
		innermost:  root,
		open:       []SymbolResult{root},
		directives: orderedmap.New[string, []string](),
	}

	for _, tok := range tokens {
		m.queue.PushBack(tok)
	}

	m.run()

	result := &ParseResult{
		parser:     p,
		args:       args,
		rawLine:    line,
		hasRawLine: hasLine,
		tokens:     tokens,
		root:       root,
		innermost:  m.innermost,
		unmatched:  m.unmatched,
		directives: m.directives,
		pending:    m.pendingOption(),
	}
	result.errors = append(result.errors, lexErrors...)
	result.errors = append(result.errors, finalize(m)...)

	return result
}

// finalize distributes argument tokens, fills in defaults and reports
// everything wrong with the finished tree.
func finalize(m *matcher) []*ParseError {
	var errs []*ParseError

	chain := commandChain(m.innermost)

	for _, res := range chain {
		distributeArguments(res, m.parser.cfg.Registry)
	}

	addImplicitOptions(chain, m.parser.cfg.Registry)

	for _, res := range chain {
		errs = append(errs, checkResults(res)...)
	}

	errs = append(errs, checkRequired(chain)...)

	innermost := m.innermost.command
	if len(innermost.subcommands) > 0 && innermost.action == nil {
		errs = append(errs, newParseError(ErrorRequiredCommandMissing, m.innermost, nil,
			fmt.Errorf("%w: %q needs a subcommand", ErrRequiredCommandMissing, innermost.name)))
	}

	if innermost.treatUnmatchedTokensAsErrors {
		for i := range m.unmatched {
			tok := m.unmatched[i]
			parseErr := newParseError(ErrorUnrecognizedToken, nil, &tok,
				fmt.Errorf("%w: %q", ErrUnrecognizedToken, tok.text))
			parseErr.Suggestions = suggestAliases(chain, tok.text)
			errs = append(errs, parseErr)
		}
	}

	return errs
}

// commandChain returns the command results from the root to innermost.
func commandChain(innermost *CommandResult) []*CommandResult {
	var chain []*CommandResult

	for res := innermost; res != nil; res = res.parent {
		chain = append([]*CommandResult{res}, chain...)
	}

	return chain
}

// distributeArguments splits the command's tokens across its arguments in
// declaration order. Each argument takes as many as it may while leaving
// enough for the minimums of the arguments after it.
func distributeArguments(res *CommandResult, reg *Registry) {
	args := res.command.arguments
	remaining := res.argumentTokens

	for i, arg := range args {
		arity := arg.GetArity()

		laterMin := 0
		for _, later := range args[i+1:] {
			laterMin += later.GetArity().Min
		}

		take := max(min(arity.Min, len(remaining)), min(arity.Max, len(remaining)-laterMin))

		argRes := &ArgumentResult{argument: arg, parent: res, reg: reg}
		for _, tok := range remaining[:take] {
			argRes.add(tok)
		}

		remaining = remaining[take:]
		res.arguments = append(res.arguments, argRes)
		res.addChild(argRes)
	}
}

// addImplicitOptions adds results for options with defaults that were not
// specified, so they appear in the tree and in diagrams.
func addImplicitOptions(chain []*CommandResult, reg *Registry) {
	for _, res := range chain {
		for _, opt := range res.command.options {
			if !opt.argument.HasDefault() || findOptionResult(chain, opt) != nil {
				continue
			}

			implicit := newOptionResult(opt, res, reg)
			implicit.implicit = true
			implicit.state.close()
			res.options[opt] = implicit
			res.addChild(implicit)
		}
	}
}

func checkArity(res *ArgumentResult, implicit bool) *ParseError {
	arg := res.argument
	arity := arg.GetArity()
	count := len(res.tokens)

	var (
		kind ErrorKind
		err  error
	)

	switch {
	case count < arity.Min && !implicit && !arg.HasDefault():
		kind = ErrorMissingArgument
		err = fmt.Errorf("%w: %s %q expects at least %d, got %d",
			ErrMissingArgument, ownerKind(arg), arg.GetName(), arity.Min, count)
	case count > arity.Max:
		kind = ErrorTooManyArguments
		err = fmt.Errorf("%w: %s %q expects at most %d, got %d",
			ErrTooManyArguments, ownerKind(arg), arg.GetName(), arity.Max, count)
	default:
		return nil
	}

	res.arityErr = err

	return newParseError(kind, resultFor(res), nil, err)
}

// checkResults validates arity, allowed values, conversion and validators of
// every argument under the command.
func checkResults(res *CommandResult) []*ParseError {
	var errs []*ParseError

	argResults := make([]*ArgumentResult, 0, len(res.children))
	implicitFlags := map[*ArgumentResult]bool{}

	for _, child := range res.children {
		switch c := child.(type) {
		case *OptionResult:
			argResults = append(argResults, c.argument)
			implicitFlags[c.argument] = c.implicit
		case *ArgumentResult:
			argResults = append(argResults, c)
		}
	}

	for _, argRes := range argResults {
		parseErr := checkArity(argRes, implicitFlags[argRes])
		if parseErr != nil {
			errs = append(errs, parseErr)
			continue
		}

		_, err := argRes.Value()
		if err != nil {
			kind := ErrorConversionFailed
			if isValidatorError(err) {
				kind = ErrorValidatorFailed
			}

			errs = append(errs, newParseError(kind, resultFor(argRes), nil, err))
		}
	}

	return errs
}

// checkRequired reports required options of the innermost command, and the
// recursive ones of its ancestors, that were never specified.
func checkRequired(chain []*CommandResult) []*ParseError {
	var errs []*ParseError

	innermost := chain[len(chain)-1]

	for _, opt := range visibleOptions(chain) {
		if !opt.required {
			continue
		}

		res := findOptionResult(chain, opt)
		if res != nil && !res.implicit {
			continue
		}

		errs = append(errs, newParseError(ErrorRequiredOptionMissing, innermost, nil,
			fmt.Errorf("%w: %q", ErrRequiredOptionMissing, opt.name)))
	}

	return errs
}

func findOptionResult(chain []*CommandResult, opt *Option) *OptionResult {
	for _, res := range chain {
		if found := res.options[opt]; found != nil {
			return found
		}
	}

	return nil
}

func ownerKind(arg *Argument) SymbolKind {
	if arg.owner != nil {
		return SymbolOption
	}

	return SymbolArgument
}

// resultFor returns the option result for an option's argument, else the
// argument result itself.
func resultFor(res *ArgumentResult) SymbolResult {
	if res.owner != nil {
		return res.owner
	}

	return res
}

// visibleOptions returns the innermost command's options followed by the
// recursive options of its ancestors, nearest first.
func visibleOptions(chain []*CommandResult) []*Option {
	innermost := chain[len(chain)-1].command
	out := append([]*Option(nil), innermost.options...)

	for i := len(chain) - 2; i >= 0; i-- {
		out = append(out, chain[i].command.recursiveOptions()...)
	}

	return out
}
