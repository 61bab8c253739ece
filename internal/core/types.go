package core

import (
	"math"
	"strconv"
)

// Exported constants.
const (
	// ArityUnbounded is the maximum of an arity without an upper limit.
	ArityUnbounded = math.MaxInt32
)

// Token kinds.
const (
	TokenArgument TokenKind = iota
	TokenCommand
	TokenOption
	TokenDirective
	TokenEndOfArguments
	TokenOperand
)

// Symbol kinds.
const (
	SymbolCommand SymbolKind = iota
	SymbolOption
	SymbolArgument
	SymbolDirective
)

// Value type families.
const (
	KindScalar ValueKind = iota
	KindBool
	KindCollection
	KindOther
)

// Common arities.
//
//nolint:gochecknoglobals // immutable arity values
var (
	ArityZero       = Arity{Min: 0, Max: 0}
	ArityZeroOrOne  = Arity{Min: 0, Max: 1}
	ArityExactlyOne = Arity{Min: 1, Max: 1}
	ArityZeroOrMore = Arity{Min: 0, Max: ArityUnbounded}
	ArityOneOrMore  = Arity{Min: 1, Max: ArityUnbounded}
)

// Arity is the number of tokens an argument may consume.
type Arity struct {
	Min int
	Max int
}

// IsUnbounded reports whether the arity has no upper limit.
func (a Arity) IsUnbounded() bool {
	return a.Max >= ArityUnbounded
}

// String renders the arity as "min..max", with "*" for an unbounded maximum.
func (a Arity) String() string {
	maxText := strconv.Itoa(a.Max)
	if a.IsUnbounded() {
		maxText = "*"
	}

	return strconv.Itoa(a.Min) + ".." + maxText
}

func (a Arity) valid() bool {
	return a.Min >= 0 && a.Max >= a.Min
}

// SymbolKind identifies the kind of a grammar symbol.
type SymbolKind int

// String returns the lowercase name of the kind.
func (k SymbolKind) String() string {
	switch k {
	case SymbolCommand:
		return "command"
	case SymbolOption:
		return "option"
	case SymbolArgument:
		return "argument"
	case SymbolDirective:
		return "directive"
	default:
		return "unknown"
	}
}

// Token is one classified unit of input. Tokens are immutable.
type Token struct {
	text     string
	kind     TokenKind
	position int
	symbol   Symbol
}

// NewToken creates a token that is not bound to a symbol.
func NewToken(text string, kind TokenKind, position int) Token {
	return Token{text: text, kind: kind, position: position}
}

// Kind returns the token kind.
func (t Token) Kind() TokenKind { return t.kind }

// Position returns the index of the raw input string the token came from.
func (t Token) Position() int { return t.position }

// String renders the token as "kind: text".
func (t Token) String() string {
	return t.kind.String() + ": " + t.text
}

// Symbol returns the symbol a command, option or directive token resolved to.
func (t Token) Symbol() Symbol { return t.symbol }

// Text returns the token text.
func (t Token) Text() string { return t.text }

// TokenKind classifies a token.
type TokenKind int

// String returns the name of the kind.
func (k TokenKind) String() string {
	switch k {
	case TokenArgument:
		return "Argument"
	case TokenCommand:
		return "Command"
	case TokenOption:
		return "Option"
	case TokenDirective:
		return "Directive"
	case TokenEndOfArguments:
		return "EndOfArguments"
	case TokenOperand:
		return "Operand"
	default:
		return "Unknown"
	}
}

// ValueKind is the family of an argument's value type. It selects the default
// arity and the conversion strategy.
type ValueKind int

// String returns the name of the family.
func (k ValueKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindBool:
		return "bool"
	case KindCollection:
		return "collection"
	default:
		return "other"
	}
}
