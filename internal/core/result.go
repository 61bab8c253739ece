package core

import (
	"fmt"
	"slices"
)

// SymbolResult is a node of the result tree.
type SymbolResult interface {
	// Symbol returns the matched symbol.
	Symbol() Symbol
	// Parent returns the enclosing command result, nil for the root.
	Parent() *CommandResult
	// Tokens returns the tokens the result consumed, in consumption order.
	Tokens() []Token
}

// ArgumentResult holds the tokens given to one argument and their value.
type ArgumentResult struct {
	argument *Argument
	parent   *CommandResult
	// owner is the option result wrapping this one, nil for command arguments.
	owner  *OptionResult
	tokens []Token
	reg    *Registry

	// arityErr is set when the token count breaks the arity.
	arityErr  error
	converted bool
	value     any
	err       error
}

// Argument returns the matched argument.
func (r *ArgumentResult) Argument() *Argument { return r.argument }

// OptionResult returns the option result wrapping this one, or nil.
func (r *ArgumentResult) OptionResult() *OptionResult { return r.owner }

// Parent returns the command result the argument belongs to.
func (r *ArgumentResult) Parent() *CommandResult { return r.parent }

// Symbol returns the matched argument.
func (r *ArgumentResult) Symbol() Symbol { return r.argument }

// Tokens returns the value tokens.
func (r *ArgumentResult) Tokens() []Token { return slices.Clone(r.tokens) }

// Value converts the tokens on first use and returns the cached value.
// A value that broke its arity, failed to convert or failed a validator
// returns that error.
func (r *ArgumentResult) Value() (any, error) {
	if r.arityErr != nil {
		return nil, r.arityErr
	}

	if r.converted {
		return r.value, r.err
	}

	r.converted = true

	specified := r.owner != nil && !r.owner.implicit

	err := r.argument.checkAllowed(r.tokens)
	if err != nil {
		r.err = err
		return nil, err
	}

	value, err := r.argument.convertTokens(r.reg, r.tokens, specified)
	if err != nil {
		r.err = err
		return nil, err
	}

	for _, validate := range r.argument.validators {
		err = validate(value)
		if err != nil {
			r.err = fmt.Errorf("%w: %q: %w", ErrValidatorFailed, r.argument.GetName(), err)
			return nil, r.err
		}
	}

	r.value = value

	return value, nil
}

func (r *ArgumentResult) add(tok Token) {
	r.tokens = append(r.tokens, tok)
	r.converted = false
}

// CommandResult is the match of a command and everything under it.
type CommandResult struct {
	command *Command
	parent  *CommandResult
	// token is the identifier token, nil for the root.
	token *Token

	children   []SymbolResult
	options    map[*Option]*OptionResult
	arguments  []*ArgumentResult
	subcommand *CommandResult
	// argumentTokens are the tokens offered to the arguments, distributed
	// across them once matching ends.
	argumentTokens []Token
	state          resultState
}

// ArgumentResult returns the result of one of the command's arguments, or nil.
func (r *CommandResult) ArgumentResult(arg *Argument) *ArgumentResult {
	for _, res := range r.arguments {
		if res.argument == arg {
			return res
		}
	}

	return nil
}

// Children returns the option, argument and subcommand results in the order
// they were created.
func (r *CommandResult) Children() []SymbolResult { return slices.Clone(r.children) }

// Command returns the matched command.
func (r *CommandResult) Command() *Command { return r.command }

// IdentifierToken returns the token that named the command, nil for the root.
func (r *CommandResult) IdentifierToken() *Token { return r.token }

// OptionResult returns the result of an option specified under this command, or nil.
func (r *CommandResult) OptionResult(opt *Option) *OptionResult { return r.options[opt] }

// Parent returns the enclosing command result, nil for the root.
func (r *CommandResult) Parent() *CommandResult { return r.parent }

// Subcommand returns the nested command result, or nil.
func (r *CommandResult) Subcommand() *CommandResult { return r.subcommand }

// Symbol returns the matched command.
func (r *CommandResult) Symbol() Symbol { return r.command }

// Tokens returns the identifier token followed by the argument tokens.
func (r *CommandResult) Tokens() []Token {
	out := make([]Token, 0, len(r.argumentTokens)+1)
	if r.token != nil {
		out = append(out, *r.token)
	}

	return append(out, r.argumentTokens...)
}

func (r *CommandResult) addChild(child SymbolResult) {
	r.children = append(r.children, child)
}

// capacity is the total number of tokens the command's arguments can hold.
func (r *CommandResult) capacity() int {
	total := 0

	for _, arg := range r.command.arguments {
		total += arg.GetArity().Max
		if total >= ArityUnbounded {
			return ArityUnbounded
		}
	}

	return total
}

func (r *CommandResult) tryTake(tok Token) bool {
	if !r.state.accepting() || len(r.argumentTokens) >= r.capacity() {
		return false
	}

	r.argumentTokens = append(r.argumentTokens, tok)

	return true
}

// OptionResult is the match of an option, possibly specified several times.
type OptionResult struct {
	option *Option
	parent *CommandResult
	// tokens holds identifier and value tokens in consumption order.
	tokens           []Token
	identifierTokens []Token
	argument         *ArgumentResult
	// implicit marks a result added for a default value, with no tokens.
	implicit bool
	// takenThisSpec counts values taken since the last identifier token.
	takenThisSpec int
	state         resultState
}

// ArgumentResult returns the result of the wrapped argument.
func (r *OptionResult) ArgumentResult() *ArgumentResult { return r.argument }

// IdentifierTokens returns the tokens that named the option.
func (r *OptionResult) IdentifierTokens() []Token { return slices.Clone(r.identifierTokens) }

// IsImplicit reports whether the result was added for a default value
// rather than matched from input.
func (r *OptionResult) IsImplicit() bool { return r.implicit }

// Option returns the matched option.
func (r *OptionResult) Option() *Option { return r.option }

// Parent returns the command result the option was specified under.
func (r *OptionResult) Parent() *CommandResult { return r.parent }

// Symbol returns the matched option.
func (r *OptionResult) Symbol() Symbol { return r.option }

// Tokens returns identifier and value tokens in consumption order.
func (r *OptionResult) Tokens() []Token { return slices.Clone(r.tokens) }

// Value returns the converted value of the option.
func (r *OptionResult) Value() (any, error) { return r.argument.Value() }

// specify records another identifier token and re-arms the result.
func (r *OptionResult) specify(tok Token) {
	r.tokens = append(r.tokens, tok)
	r.identifierTokens = append(r.identifierTokens, tok)
	r.takenThisSpec = 0
	r.state.open()
}

// awaitingValue reports whether the current occurrence still needs values.
func (r *OptionResult) awaitingValue() bool {
	return r.state.accepting() && r.takenThisSpec < r.option.argument.GetArity().Min
}

func (r *OptionResult) tryTake(tok Token) bool {
	if !r.state.accepting() {
		return false
	}

	arg := r.option.argument
	arity := arg.GetArity()
	total := len(r.argument.tokens)

	switch {
	case arity.Max == 0:
		return false
	case r.takenThisSpec > 0 && !r.option.allowMultiple:
		return false
	case total >= arity.Max && r.takenThisSpec > 0:
		return false
	case arity.Min == 0 && !arg.accepts(r.argument.reg, tok.text):
		return false
	}

	r.tokens = append(r.tokens, tok)
	r.argument.add(tok)
	r.takenThisSpec++

	if !r.option.allowMultiple || len(r.argument.tokens) >= arity.Max {
		r.state.close()
	}

	return true
}

func newOptionResult(opt *Option, parent *CommandResult, reg *Registry) *OptionResult {
	res := &OptionResult{option: opt, parent: parent}
	res.argument = &ArgumentResult{argument: opt.argument, parent: parent, owner: res, reg: reg}

	return res
}
