package core

import (
	"encoding"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

// unexported variables.
var (
	errStringSetterFailed    = errors.New("type assertion to Set(string) error failed")
	errTextUnmarshalerFailed = errors.New("type assertion to TextUnmarshaler failed")
	errUnknownEnumValue      = errors.New("unknown value")
	errUnsupportedValueType  = errors.New("unsupported value type")
)

// ConvertFunc converts one token into a value.
type ConvertFunc func(text string) (any, error)

// Registry maps value types to converters and completion suggestions.
//
// A registry is built once, passed to parsers through Config, and shared
// read-only by every parse. Register everything before the first parse.
type Registry struct {
	converters  map[reflect.Type]ConvertFunc
	suggestions map[reflect.Type][]string
}

// NewDefaultRegistry returns a registry with converters for time.Duration,
// time.Time (RFC 3339) and []byte on top of the built-in kinds.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()

	RegisterConverter(reg, time.ParseDuration)
	RegisterConverter(reg, func(text string) (time.Time, error) {
		return time.Parse(time.RFC3339, text)
	})
	RegisterConverter(reg, func(text string) ([]byte, error) {
		return []byte(text), nil
	})

	return reg
}

// NewRegistry returns a registry with only the built-in kinds: strings,
// booleans, integers, floats, encoding.TextUnmarshaler and Set(string) error.
func NewRegistry() *Registry {
	return &Registry{
		converters:  map[reflect.Type]ConvertFunc{},
		suggestions: map[reflect.Type][]string{},
	}
}

// RegisterConverter registers a typed converter for T.
func RegisterConverter[T any](reg *Registry, convert func(text string) (T, error)) {
	reg.Register(reflect.TypeFor[T](), func(text string) (any, error) {
		return convert(text)
	})
}

// RegisterEnum registers T as an enumeration with the given names. Names
// match case-insensitively and are offered as completions.
func RegisterEnum[T any](reg *Registry, values map[string]T) {
	typ := reflect.TypeFor[T]()
	names := slices.Sorted(maps.Keys(values))

	reg.Register(typ, func(text string) (any, error) {
		if value, ok := values[text]; ok {
			return value, nil
		}

		for _, name := range names {
			if strings.EqualFold(name, text) {
				return values[name], nil
			}
		}

		return nil, fmt.Errorf("%w %q: expected one of %s",
			errUnknownEnumValue, text, strings.Join(names, ", "))
	})
	reg.Suggest(typ, names...)
}

// Convert converts text to a value of typ.
func (r *Registry) Convert(typ reflect.Type, text string) (any, error) {
	if convert, ok := r.converters[typ]; ok {
		return convert(text)
	}

	if convert, ok := stringInputConverter(typ); ok {
		return convert(text)
	}

	return convertByKind(typ, text)
}

// Register sets the converter for typ.
func (r *Registry) Register(typ reflect.Type, convert ConvertFunc) *Registry {
	r.converters[typ] = convert
	return r
}

// Suggest adds completion suggestions offered for every argument of typ.
func (r *Registry) Suggest(typ reflect.Type, values ...string) *Registry {
	r.suggestions[typ] = append(r.suggestions[typ], values...)
	return r
}

// Suggestions returns the completion suggestions registered for typ.
func (r *Registry) Suggestions(typ reflect.Type) []string {
	return slices.Clone(r.suggestions[typ])
}

// convertByKind handles the type-specific conversion logic.
func convertByKind(typ reflect.Type, text string) (any, error) {
	value := reflect.New(typ).Elem()

	switch typ.Kind() { //nolint:exhaustive // default handles unsupported types
	case reflect.String:
		value.SetString(text)
	case reflect.Bool:
		parsed, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("parsing bool %q: %w", text, err)
		}

		value.SetBool(parsed)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		parsed, err := strconv.ParseInt(text, 10, typ.Bits())
		if err != nil {
			return nil, fmt.Errorf("parsing int %q: %w", text, err)
		}

		value.SetInt(parsed)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		parsed, err := strconv.ParseUint(text, 10, typ.Bits())
		if err != nil {
			return nil, fmt.Errorf("parsing uint %q: %w", text, err)
		}

		value.SetUint(parsed)
	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(text, typ.Bits())
		if err != nil {
			return nil, fmt.Errorf("parsing float %q: %w", text, err)
		}

		value.SetFloat(parsed)
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedValueType, typ)
	}

	return value.Interface(), nil
}

// stringInputConverter returns a converter for types whose pointer
// implements encoding.TextUnmarshaler or Set(string) error.
func stringInputConverter(typ reflect.Type) (ConvertFunc, bool) {
	ptr := reflect.PointerTo(typ)

	if ptr.Implements(textUnmarshalerType) {
		return func(text string) (any, error) {
			target := reflect.New(typ)

			u, ok := target.Interface().(encoding.TextUnmarshaler)
			if !ok {
				return nil, errTextUnmarshalerFailed
			}

			err := u.UnmarshalText([]byte(text))
			if err != nil {
				return nil, err
			}

			return target.Elem().Interface(), nil
		}, true
	}

	if ptr.Implements(stringSetterType) {
		return func(text string) (any, error) {
			target := reflect.New(typ)

			s, ok := target.Interface().(interface{ Set(s string) error })
			if !ok {
				return nil, errStringSetterFailed
			}

			err := s.Set(text)
			if err != nil {
				return nil, err
			}

			return target.Elem().Interface(), nil
		}, true
	}

	return nil, false
}
