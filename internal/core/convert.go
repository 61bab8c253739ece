package core

import (
	"errors"
	"fmt"
	"reflect"
)

// unexported variables.
var (
	errTypeMismatch = errors.New("value type mismatch")
)

// GetValue returns the converted value of an option or argument as T.
//
// A symbol that was not matched yields its default value, or the zero value
// of its type (an empty collection for collection types).
func GetValue[T any](result *ParseResult, symbol Symbol) (T, error) {
	var zero T

	value, err := result.valueOf(symbol)
	if err != nil {
		return zero, err
	}

	if value == nil {
		return zero, nil
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s holds %T, not %s",
			errTypeMismatch, symbol.GetName(), value, reflect.TypeFor[T]())
	}

	return typed, nil
}

// convertTokens converts an argument's tokens. specified tells whether the
// owning option appeared on the command line, which makes a valueless
// boolean true.
func (a *Argument) convertTokens(reg *Registry, tokens []Token, specified bool) (any, error) {
	if len(tokens) == 0 {
		return a.implicitValue(specified)
	}

	texts := make([]string, len(tokens))
	for i, tok := range tokens {
		texts[i] = tok.text
	}

	if a.parser != nil {
		value, err := a.parser(texts)
		if err != nil {
			return nil, fmt.Errorf("%w %q for %q: %w", ErrConversionFailed, texts, a.GetName(), err)
		}

		return value, nil
	}

	if a.valueType.kind == KindCollection {
		return a.convertCollection(reg, texts)
	}

	text := texts[len(texts)-1]

	value, err := reg.Convert(a.valueType.typ, text)
	if err != nil {
		return nil, fmt.Errorf("%w %q for %q as %s: %w",
			ErrConversionFailed, text, a.GetName(), a.valueType.typ, err)
	}

	return value, nil
}

// convertCollection converts every token and stops at the first failure.
func (a *Argument) convertCollection(reg *Registry, texts []string) (any, error) {
	out := reflect.MakeSlice(a.valueType.typ, 0, len(texts))

	for _, text := range texts {
		elem, err := reg.Convert(a.valueType.elem, text)
		if err != nil {
			return nil, fmt.Errorf("%w %q for %q as %s: %w",
				ErrConversionFailed, text, a.GetName(), a.valueType.elem, err)
		}

		out = reflect.Append(out, reflect.ValueOf(elem))
	}

	return out.Interface(), nil
}

// implicitValue is the value of an argument that received no tokens.
func (a *Argument) implicitValue(specified bool) (any, error) {
	if a.defaultFunc != nil {
		value, err := a.defaultFunc()
		if err != nil {
			return nil, fmt.Errorf("%w: default for %q: %w", ErrConversionFailed, a.GetName(), err)
		}

		return value, nil
	}

	typ := a.valueType.typ

	switch a.valueType.kind {
	case KindBool:
		if specified {
			return reflect.ValueOf(true).Convert(typ).Interface(), nil
		}
	case KindCollection:
		return reflect.MakeSlice(typ, 0, 0).Interface(), nil
	case KindScalar, KindOther:
	}

	return reflect.Zero(typ).Interface(), nil
}
