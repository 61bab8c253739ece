package core

import (
	"fmt"
	"reflect"
	"slices"
)

// Argument is a value slot with an arity and a value type.
type Argument struct {
	symbolBase

	valueType     valueType
	arity         Arity
	arityExplicit bool
	// owner is the option wrapping the argument, nil for command arguments.
	owner       *Option
	defaultFunc func() (any, error)
	parser      CustomParser
	validators  []Validator
	completions []string
	sources     []CompletionSource
	allowed     []string
}

// CompletionContext is what a completion source sees.
type CompletionContext struct {
	// Word is the partial word being completed.
	Word string
	// Result is the parse of the input preceding the word.
	Result *ParseResult
}

// CompletionSource produces completion candidates for an argument.
type CompletionSource func(ctx CompletionContext) []string

// CustomParser converts an argument's tokens into its value.
type CustomParser func(tokens []string) (any, error)

// Validator checks a converted value.
type Validator func(value any) error

// NewArgument creates an argument whose value has type T.
func NewArgument[T any](name string) *Argument {
	return NewArgumentOfType(name, reflect.TypeFor[T]())
}

// NewArgumentOfType creates an argument whose value has the given type.
func NewArgumentOfType(name string, typ reflect.Type) *Argument {
	return newArgument(name, typ)
}

// AcceptOnlyFromAmong restricts the values to the given set. The values are
// also offered as completions.
func (a *Argument) AcceptOnlyFromAmong(values ...string) *Argument {
	a.allowed = append(a.allowed, values...)
	return a
}

// Arity overrides the default arity.
func (a *Argument) Arity(arity Arity) *Argument {
	a.arity = arity
	a.arityExplicit = true

	return a
}

// Completions adds static completion suggestions.
func (a *Argument) Completions(values ...string) *Argument {
	a.completions = append(a.completions, values...)
	return a
}

// CompletionSource adds a dynamic completion source.
func (a *Argument) CompletionSource(source CompletionSource) *Argument {
	a.sources = append(a.sources, source)
	return a
}

// CustomParser replaces the default conversion.
func (a *Argument) CustomParser(parser CustomParser) *Argument {
	a.parser = parser
	return a
}

// Default sets the value used when no token was supplied.
func (a *Argument) Default(value any) *Argument {
	a.defaultFunc = func() (any, error) { return value, nil }
	return a
}

// DefaultFunc sets a factory for the default value. It runs on every
// conversion that needs the default.
func (a *Argument) DefaultFunc(factory func() (any, error)) *Argument {
	a.defaultFunc = factory
	return a
}

// Description sets the description.
func (a *Argument) Description(description string) *Argument {
	a.description = description
	return a
}

// GetArity returns the explicit arity, or the default for the value type.
//
// Booleans default to 0..1. Collections default to 1..* on options and 0..*
// on commands. Everything else defaults to 1..1, or 0..1 for a command
// argument with a default value.
func (a *Argument) GetArity() Arity {
	if a.arityExplicit {
		return a.arity
	}

	switch a.valueType.kind {
	case KindBool:
		return ArityZeroOrOne
	case KindCollection:
		if a.owner != nil {
			return ArityOneOrMore
		}

		return ArityZeroOrMore
	case KindScalar, KindOther:
	}

	if a.owner == nil && a.HasDefault() {
		return ArityZeroOrOne
	}

	return ArityExactlyOne
}

// GetName returns the name; an option's argument shares the option's name.
func (a *Argument) GetName() string {
	if a.owner != nil {
		return a.owner.GetName()
	}

	return a.name
}

// GetOwner returns the option wrapping the argument, or nil.
func (a *Argument) GetOwner() *Option { return a.owner }

// HasDefault reports whether a default value was configured.
func (a *Argument) HasDefault() bool { return a.defaultFunc != nil }

// Hidden excludes the argument's suggestions from completions.
func (a *Argument) Hidden() *Argument {
	a.hidden = true
	return a
}

// Kind returns SymbolArgument.
func (a *Argument) Kind() SymbolKind { return SymbolArgument }

// Parents returns the commands the argument belongs to. An option's argument
// reports the option's parents.
func (a *Argument) Parents() []*Command {
	if a.owner != nil {
		return a.owner.Parents()
	}

	return a.symbolBase.Parents()
}

// Validator adds a check run after conversion.
func (a *Argument) Validator(validator Validator) *Argument {
	a.validators = append(a.validators, validator)
	return a
}

// ValueKind returns the value type family.
func (a *Argument) ValueKind() ValueKind { return a.valueType.kind }

// ValueType returns the declared value type.
func (a *Argument) ValueType() reflect.Type { return a.valueType.typ }

// accepts reports whether text converts; optional option values use it to
// avoid swallowing tokens that belong elsewhere.
func (a *Argument) accepts(reg *Registry, text string) bool {
	if a.parser != nil {
		_, err := a.parser([]string{text})
		return err == nil
	}

	if len(a.allowed) > 0 {
		return slices.Contains(a.allowed, text)
	}

	_, err := reg.Convert(a.valueType.elementType(), text)

	return err == nil
}

// checkArity reports an arity that is malformed, or that takes several
// tokens into a value that holds only one.
func (a *Argument) checkArity(sym Symbol) error {
	arity := a.GetArity()
	if !arity.valid() {
		return configError(sym, "invalid arity %s", arity)
	}

	if arity.Max > 1 && a.parser == nil && a.valueType.kind != KindCollection {
		return configError(sym, "arity %s needs a collection type or a custom parser, not %v",
			arity, a.valueType.typ)
	}

	return nil
}

// checkAllowed returns an error for the first token outside the allowed set.
func (a *Argument) checkAllowed(tokens []Token) error {
	if len(a.allowed) == 0 {
		return nil
	}

	for _, tok := range tokens {
		if !slices.Contains(a.allowed, tok.text) {
			return fmt.Errorf("%w: argument %q for %q must be one of %v",
				ErrValidatorFailed, tok.text, a.GetName(), a.allowed)
		}
	}

	return nil
}

func newArgument(name string, typ reflect.Type) *Argument {
	arg := &Argument{valueType: resolveValueType(typ)}
	arg.name = name

	return arg
}
