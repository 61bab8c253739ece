package argot

import (
	"io/fs"
	"os"
	"reflect"

	"github.com/toejough/argot/internal/core"
	"github.com/toejough/argot/internal/diagram"
	"github.com/toejough/argot/internal/file"
	"github.com/toejough/argot/internal/grammar"
)

// --- Re-exported types from core ---

// Action is the handler a caller runs for a matched command.
type Action = core.Action

// Argument is a positional value or the value of an option.
type Argument = core.Argument

// ArgumentResult holds the tokens and value matched to an argument.
type ArgumentResult = core.ArgumentResult

// Arity is the number of tokens an argument may consume.
type Arity = core.Arity

// Command is a named node of the grammar.
type Command = core.Command

// CommandResult is the matched form of a command.
type CommandResult = core.CommandResult

// CompletionContext is what a completion source sees.
type CompletionContext = core.CompletionContext

// CompletionItem is one ranked completion.
type CompletionItem = core.CompletionItem

// CompletionSource produces completions dynamically.
type CompletionSource = core.CompletionSource

// Config controls a Parser.
type Config = core.Config

// ConfigurationError reports a malformed symbol tree.
type ConfigurationError = core.ConfigurationError

// ConvertFunc converts one token to a value.
type ConvertFunc = core.ConvertFunc

// CustomParser converts all tokens of an argument at once.
type CustomParser = core.CustomParser

// Directive is a bracketed annotation given before the first token.
type Directive = core.Directive

// ErrorKind classifies a parse error.
type ErrorKind = core.ErrorKind

// Option is a named symbol wrapping an argument.
type Option = core.Option

// OptionResult is the matched form of an option.
type OptionResult = core.OptionResult

// ParseError is one problem found while parsing.
type ParseError = core.ParseError

// ParseResult is the outcome of one parse.
type ParseResult = core.ParseResult

// Parser parses input against a symbol tree.
type Parser = core.Parser

// Registry converts token text to typed values.
type Registry = core.Registry

// ResponseFileHandling selects how "@file" tokens are expanded.
type ResponseFileHandling = core.ResponseFileHandling

// Symbol is any node of the grammar.
type Symbol = core.Symbol

// SymbolKind names the kind of a symbol.
type SymbolKind = core.SymbolKind

// SymbolResult is any node of a result tree.
type SymbolResult = core.SymbolResult

// Token is one classified piece of input.
type Token = core.Token

// TokenKind classifies a token.
type TokenKind = core.TokenKind

// Validator checks a converted value.
type Validator = core.Validator

// ValueKind is the family of an argument's value type.
type ValueKind = core.ValueKind

// Grammar is a symbol tree built from a grammar file.
type Grammar = grammar.Grammar

// Re-export constants
const (
	ArityUnbounded = core.ArityUnbounded

	ErrorUnrecognizedToken      = core.ErrorUnrecognizedToken
	ErrorMissingArgument        = core.ErrorMissingArgument
	ErrorTooManyArguments       = core.ErrorTooManyArguments
	ErrorConversionFailed       = core.ErrorConversionFailed
	ErrorValidatorFailed        = core.ErrorValidatorFailed
	ErrorRequiredOptionMissing  = core.ErrorRequiredOptionMissing
	ErrorRequiredCommandMissing = core.ErrorRequiredCommandMissing
	ErrorResponseFile           = core.ErrorResponseFile

	ResponseFilesLineSeparated  = core.ResponseFilesLineSeparated
	ResponseFilesSpaceSeparated = core.ResponseFilesSpaceSeparated
	ResponseFilesDisabled       = core.ResponseFilesDisabled

	SymbolCommand   = core.SymbolCommand
	SymbolOption    = core.SymbolOption
	SymbolArgument  = core.SymbolArgument
	SymbolDirective = core.SymbolDirective

	TokenArgument       = core.TokenArgument
	TokenCommand        = core.TokenCommand
	TokenOption         = core.TokenOption
	TokenDirective      = core.TokenDirective
	TokenEndOfArguments = core.TokenEndOfArguments
	TokenOperand        = core.TokenOperand

	KindScalar     = core.KindScalar
	KindBool       = core.KindBool
	KindCollection = core.KindCollection
	KindOther      = core.KindOther

	ParseDirectiveName   = core.ParseDirectiveName
	SuggestDirectiveName = core.SuggestDirectiveName
)

// Re-export errors and arities
//
//nolint:gochecknoglobals // re-exported sentinels
var (
	ErrConversionFailed       = core.ErrConversionFailed
	ErrInvalidConfiguration   = core.ErrInvalidConfiguration
	ErrMissingArgument        = core.ErrMissingArgument
	ErrRequiredCommandMissing = core.ErrRequiredCommandMissing
	ErrRequiredOptionMissing  = core.ErrRequiredOptionMissing
	ErrResponseFile           = core.ErrResponseFile
	ErrTooManyArguments       = core.ErrTooManyArguments
	ErrUnrecognizedToken      = core.ErrUnrecognizedToken
	ErrValidatorFailed        = core.ErrValidatorFailed

	ArityZero       = core.ArityZero
	ArityZeroOrOne  = core.ArityZeroOrOne
	ArityExactlyOne = core.ArityExactlyOne
	ArityZeroOrMore = core.ArityZeroOrMore
	ArityOneOrMore  = core.ArityOneOrMore
)

// --- Public API ---

// NewArgument creates a positional argument of type T.
func NewArgument[T any](name string) *Argument {
	return core.NewArgument[T](name)
}

// NewArgumentOfType creates a positional argument of a runtime type.
func NewArgumentOfType(name string, typ reflect.Type) *Argument {
	return core.NewArgumentOfType(name, typ)
}

// NewCommand creates a command whose name is also its first alias.
func NewCommand(name, description string) *Command {
	return core.NewCommand(name, description)
}

// NewRootCommand creates a command named after the running executable.
func NewRootCommand(description string) *Command {
	return core.NewRootCommand(description)
}

// NewOption creates an option of type T with at least one alias.
func NewOption[T any](alias string, more ...string) *Option {
	return core.NewOption[T](alias, more...)
}

// NewOptionOfType creates an option of a runtime type.
func NewOptionOfType(typ reflect.Type, alias string, more ...string) *Option {
	return core.NewOptionOfType(typ, alias, more...)
}

// NewDirective creates a directive.
func NewDirective(name, description string) *Directive {
	return core.NewDirective(name, description)
}

// NewParseDirective creates the "[parse]" directive.
func NewParseDirective() *Directive {
	return core.NewParseDirective()
}

// NewSuggestDirective creates the "[suggest:position]" directive.
func NewSuggestDirective() *Directive {
	return core.NewSuggestDirective()
}

// NewParser returns a parser for cfg.
func NewParser(cfg Config) (*Parser, error) {
	return core.NewParser(cfg)
}

// NewRegistry returns a registry with only the built-in kinds.
func NewRegistry() *Registry {
	return core.NewRegistry()
}

// NewDefaultRegistry returns a registry that also knows durations, times
// and byte slices.
func NewDefaultRegistry() *Registry {
	return core.NewDefaultRegistry()
}

// RegisterConverter registers a typed converter for T.
func RegisterConverter[T any](reg *Registry, convert func(text string) (T, error)) {
	core.RegisterConverter(reg, convert)
}

// RegisterEnum registers T as an enumeration with the given names.
func RegisterEnum[T any](reg *Registry, values map[string]T) {
	core.RegisterEnum(reg, values)
}

// GetValue returns the converted value of symbol as a T.
func GetValue[T any](result *ParseResult, symbol Symbol) (T, error) {
	return core.GetValue[T](result, symbol)
}

// Validate checks a whole symbol tree.
func Validate(root *Command) error {
	return core.Validate(root)
}

// SplitCommandLine splits a raw command line into arguments.
func SplitCommandLine(line string) []string {
	return core.SplitCommandLine(line)
}

// PathCompletions returns a completion source offering the paths of fsys
// matched by fish-style glob patterns.
func PathCompletions(fsys fs.FS, patterns ...string) (CompletionSource, error) {
	return file.Suggestions(fsys, patterns...)
}

// LoadGrammar reads a YAML or TOML grammar file and builds it. Path
// completions in the grammar glob relative to the working directory.
func LoadGrammar(path string) (*Grammar, error) {
	doc, err := grammar.Load(path)
	if err != nil {
		return nil, err
	}

	return doc.Build(os.DirFS("."), nil)
}

// Diagram renders how result matched its input. Colored output uses ANSI
// styles when the terminal supports them.
func Diagram(result *ParseResult, colored bool) string {
	styles := diagram.PlainStyles()
	if colored {
		styles = diagram.DefaultStyles()
	}

	return diagram.Render(result, styles)
}
