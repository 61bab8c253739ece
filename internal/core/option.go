package core

import "reflect"

// Option is a named flag wrapping exactly one argument.
type Option struct {
	identifier

	argument      *Argument
	required      bool
	recursive     bool
	allowMultiple bool
}

// NewOption creates an option whose value has type T, identified by one or
// more raw aliases such as "--file" and "-f".
func NewOption[T any](alias string, more ...string) *Option {
	return NewOptionOfType(reflect.TypeFor[T](), alias, more...)
}

// NewOptionOfType creates an option whose value has the given type.
func NewOptionOfType(typ reflect.Type, alias string, more ...string) *Option {
	opt := &Option{}
	opt.self = opt
	opt.aliases = append([]string{alias}, more...)
	opt.name = longestAlias(opt.aliases)
	opt.argument = newArgument(opt.name, typ)
	opt.argument.owner = opt

	return opt
}

// AcceptOnlyFromAmong restricts the values to the given set.
func (o *Option) AcceptOnlyFromAmong(values ...string) *Option {
	o.argument.AcceptOnlyFromAmong(values...)
	return o
}

// AllowMultipleArgumentsPerToken lets one occurrence take several values
// ("--item a b c" instead of "--item a --item b --item c").
func (o *Option) AllowMultipleArgumentsPerToken() *Option {
	o.allowMultiple = true
	return o
}

// AllowsMultipleArgumentsPerToken reports the setting made by AllowMultipleArgumentsPerToken.
func (o *Option) AllowsMultipleArgumentsPerToken() bool { return o.allowMultiple }

// Arity overrides the default arity of the option's value.
func (o *Option) Arity(arity Arity) *Option {
	o.argument.Arity(arity)
	return o
}

// Completions adds static completion suggestions for the value.
func (o *Option) Completions(values ...string) *Option {
	o.argument.Completions(values...)
	return o
}

// CompletionSource adds a dynamic completion source for the value.
func (o *Option) CompletionSource(source CompletionSource) *Option {
	o.argument.CompletionSource(source)
	return o
}

// CustomParser replaces the default conversion of the value.
func (o *Option) CustomParser(parser CustomParser) *Option {
	o.argument.CustomParser(parser)
	return o
}

// Default sets the value used when the option is absent or given no value.
func (o *Option) Default(value any) *Option {
	o.argument.Default(value)
	return o
}

// DefaultFunc sets a factory for the default value.
func (o *Option) DefaultFunc(factory func() (any, error)) *Option {
	o.argument.DefaultFunc(factory)
	return o
}

// Description sets the description.
func (o *Option) Description(description string) *Option {
	o.description = description
	return o
}

// GetArgument returns the wrapped argument.
func (o *Option) GetArgument() *Argument { return o.argument }

// Hidden excludes the option from completions.
func (o *Option) Hidden() *Option {
	o.hidden = true
	return o
}

// IsRecursive reports whether descendants of the parent command see the option.
func (o *Option) IsRecursive() bool { return o.recursive }

// IsRequired reports whether the option must be specified.
func (o *Option) IsRequired() bool { return o.required }

// Kind returns SymbolOption.
func (o *Option) Kind() SymbolKind { return SymbolOption }

// Name overrides the name derived from the longest alias.
func (o *Option) Name(name string) *Option {
	o.name = name
	o.named = true
	o.argument.name = name

	return o
}

// Recursive makes the option visible to every descendant command.
func (o *Option) Recursive() *Option {
	o.recursive = true
	return o
}

// Required makes a missing option a parse error.
func (o *Option) Required() *Option {
	o.required = true
	return o
}

// Validator adds a check run after conversion.
func (o *Option) Validator(validator Validator) *Option {
	o.argument.Validator(validator)
	return o
}
