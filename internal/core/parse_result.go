package core

import (
	"errors"
	"fmt"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// unexported variables.
var (
	errNotAValueSymbol = errors.New("symbol has no value")
)

// ParseResult is the outcome of one parse: the tokens, the result tree and
// every problem found.
type ParseResult struct {
	parser     *Parser
	args       []string
	rawLine    string
	hasRawLine bool
	tokens     []Token
	root       *CommandResult
	innermost  *CommandResult
	errors     []*ParseError
	unmatched  []Token
	directives *orderedmap.OrderedMap[string, []string]
	// pending is the option result still open after the last token.
	pending *OptionResult
}

// Args returns the input strings the parse started from.
func (r *ParseResult) Args() []string { return slices.Clone(r.args) }

// CommandResult returns the innermost matched command.
func (r *ParseResult) CommandResult() *CommandResult { return r.innermost }

// Directive returns the values given to a directive, in input order, and
// whether the directive appeared at all.
func (r *ParseResult) Directive(name string) ([]string, bool) {
	values, ok := r.directives.Get(name)
	if !ok {
		return nil, false
	}

	return slices.Clone(values), true
}

// DirectiveNames returns the directives that appeared, in input order.
func (r *ParseResult) DirectiveNames() []string {
	names := make([]string, 0, r.directives.Len())

	for pair := r.directives.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}

	return names
}

// Errors returns the parse errors: tokenizing problems first, then matching
// and validation problems, then unrecognized tokens.
func (r *ParseResult) Errors() []*ParseError { return slices.Clone(r.errors) }

// FindResultForArgument returns the result of an argument, or nil.
func (r *ParseResult) FindResultForArgument(arg *Argument) *ArgumentResult {
	if arg.owner != nil {
		res := r.FindResultForOption(arg.owner)
		if res == nil {
			return nil
		}

		return res.argument
	}

	for res := r.innermost; res != nil; res = res.parent {
		if found := res.ArgumentResult(arg); found != nil {
			return found
		}
	}

	return nil
}

// FindResultForCommand returns the result of a matched command, or nil.
func (r *ParseResult) FindResultForCommand(cmd *Command) *CommandResult {
	for res := r.innermost; res != nil; res = res.parent {
		if res.command == cmd {
			return res
		}
	}

	return nil
}

// FindResultForOption returns the result of an option, or nil. Implicit
// results for defaults count.
func (r *ParseResult) FindResultForOption(opt *Option) *OptionResult {
	for res := r.innermost; res != nil; res = res.parent {
		if found := res.options[opt]; found != nil {
			return found
		}
	}

	return nil
}

// Parser returns the parser that produced the result.
func (r *ParseResult) Parser() *Parser { return r.parser }

// RawLine returns the line given to ParseLine and whether there was one.
func (r *ParseResult) RawLine() (string, bool) { return r.rawLine, r.hasRawLine }

// RootCommandResult returns the result of the root command.
func (r *ParseResult) RootCommandResult() *CommandResult { return r.root }

// Tokens returns every token in input order.
func (r *ParseResult) Tokens() []Token { return slices.Clone(r.tokens) }

// UnmatchedTokens returns the text of tokens no symbol consumed.
func (r *ParseResult) UnmatchedTokens() []string {
	out := make([]string, len(r.unmatched))
	for i, tok := range r.unmatched {
		out[i] = tok.text
	}

	return out
}

// valueOf returns the value of an option or argument, falling back to its
// default or zero value when it was not matched.
func (r *ParseResult) valueOf(symbol Symbol) (any, error) {
	switch sym := symbol.(type) {
	case *Option:
		if res := r.FindResultForOption(sym); res != nil {
			return res.Value()
		}

		return sym.argument.implicitValue(false)
	case *Argument:
		if res := r.FindResultForArgument(sym); res != nil {
			return res.Value()
		}

		return sym.implicitValue(false)
	default:
		return nil, fmt.Errorf("%w: %s %q", errNotAValueSymbol, symbol.Kind(), symbol.GetName())
	}
}
