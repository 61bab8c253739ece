package core

import (
	"errors"
	"fmt"
)

// Exported variables.
var (
	ErrConversionFailed       = errors.New("cannot parse argument")
	ErrInvalidConfiguration   = errors.New("invalid configuration")
	ErrMissingArgument        = errors.New("required argument missing")
	ErrRequiredCommandMissing = errors.New("required command was not provided")
	ErrRequiredOptionMissing  = errors.New("option is required")
	ErrResponseFile           = errors.New("cannot read response file")
	ErrTooManyArguments       = errors.New("too many arguments")
	ErrUnrecognizedToken      = errors.New("unrecognized command or argument")
	ErrValidatorFailed        = errors.New("validation failed")
)

// Parse error kinds.
const (
	ErrorUnrecognizedToken ErrorKind = iota
	ErrorMissingArgument
	ErrorTooManyArguments
	ErrorConversionFailed
	ErrorValidatorFailed
	ErrorRequiredOptionMissing
	ErrorRequiredCommandMissing
	ErrorResponseFile
)

// ConfigurationError reports a malformed symbol tree. It is returned while
// building or validating a grammar, never while parsing.
type ConfigurationError struct {
	Symbol Symbol
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Symbol == nil {
		return fmt.Sprintf("%s: %s", ErrInvalidConfiguration, e.Reason)
	}

	return fmt.Sprintf("%s: %s %q: %s",
		ErrInvalidConfiguration, e.Symbol.Kind(), e.Symbol.GetName(), e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfiguration.
func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// ErrorKind classifies a parse error.
type ErrorKind int

// String returns the name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorUnrecognizedToken:
		return "UnrecognizedToken"
	case ErrorMissingArgument:
		return "MissingArgument"
	case ErrorTooManyArguments:
		return "TooManyArguments"
	case ErrorConversionFailed:
		return "ConversionFailed"
	case ErrorValidatorFailed:
		return "ValidatorFailed"
	case ErrorRequiredOptionMissing:
		return "RequiredOptionMissing"
	case ErrorRequiredCommandMissing:
		return "RequiredCommandMissing"
	case ErrorResponseFile:
		return "ResponseFile"
	default:
		return "Unknown"
	}
}

// ParseError is a non-fatal problem found while parsing. Parse errors are
// collected on the ParseResult, never returned from Parse.
type ParseError struct {
	Kind    ErrorKind
	Message string
	// Result is the result the error is about, nil for token-level errors.
	Result SymbolResult
	// Token is the offending token, nil when the error is about a result.
	Token *Token
	// Suggestions holds close aliases for an unrecognized token.
	Suggestions []string

	err error
}

func (e *ParseError) Error() string {
	return e.Message
}

// Unwrap returns the wrapped sentinel chain.
func (e *ParseError) Unwrap() error {
	return e.err
}

func configError(symbol Symbol, format string, args ...any) error {
	return &ConfigurationError{Symbol: symbol, Reason: fmt.Sprintf(format, args...)}
}

func newParseError(kind ErrorKind, result SymbolResult, token *Token, err error) *ParseError {
	return &ParseError{
		Kind:    kind,
		Message: err.Error(),
		Result:  result,
		Token:   token,
		err:     err,
	}
}

func isValidatorError(err error) bool {
	return errors.Is(err, ErrValidatorFailed)
}
