package grammar

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/toejough/argot/internal/core"
)

// unexported variables.
var (
	//nolint:gochecknoglobals // lookup table
	scalarTypes = map[string]reflect.Type{
		"bool":     reflect.TypeFor[bool](),
		"duration": reflect.TypeFor[time.Duration](),
		"float32":  reflect.TypeFor[float32](),
		"float64":  reflect.TypeFor[float64](),
		"int":      reflect.TypeFor[int](),
		"int8":     reflect.TypeFor[int8](),
		"int16":    reflect.TypeFor[int16](),
		"int32":    reflect.TypeFor[int32](),
		"int64":    reflect.TypeFor[int64](),
		"string":   reflect.TypeFor[string](),
		"time":     reflect.TypeFor[time.Time](),
		"uint":     reflect.TypeFor[uint](),
		"uint8":    reflect.TypeFor[uint8](),
		"uint16":   reflect.TypeFor[uint16](),
		"uint32":   reflect.TypeFor[uint32](),
		"uint64":   reflect.TypeFor[uint64](),
	}
)

// ParseArity reads "N", "N..M" or "N..*".
func ParseArity(text string) (core.Arity, error) {
	minText, maxText, ranged := strings.Cut(strings.TrimSpace(text), "..")

	minimum, err := strconv.Atoi(minText)
	if err != nil || minimum < 0 {
		return core.Arity{}, fmt.Errorf("%w: %q", ErrBadArity, text)
	}

	if !ranged {
		return core.Arity{Min: minimum, Max: minimum}, nil
	}

	if maxText == "*" {
		return core.Arity{Min: minimum, Max: core.ArityUnbounded}, nil
	}

	maximum, err := strconv.Atoi(maxText)
	if err != nil || maximum < minimum {
		return core.Arity{}, fmt.Errorf("%w: %q", ErrBadArity, text)
	}

	return core.Arity{Min: minimum, Max: maximum}, nil
}

// convertDefault converts a decoded default to typ. Scalars go through the
// registry as text; collections take a list or a single scalar.
func convertDefault(reg *core.Registry, typ reflect.Type, raw any) (any, error) {
	if typ.Kind() != reflect.Slice || typ.Elem().Kind() == reflect.Uint8 {
		value, err := reg.Convert(typ, defaultText(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadDefault, err)
		}

		return value, nil
	}

	items, ok := raw.([]any)
	if !ok {
		items = []any{raw}
	}

	out := reflect.MakeSlice(typ, 0, len(items))

	for _, item := range items {
		value, err := reg.Convert(typ.Elem(), defaultText(item))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadDefault, err)
		}

		out = reflect.Append(out, reflect.ValueOf(value))
	}

	return out.Interface(), nil
}

func defaultText(raw any) string {
	if when, ok := raw.(time.Time); ok {
		return when.Format(time.RFC3339Nano)
	}

	return fmt.Sprint(raw)
}

func typeNamed(name string) (reflect.Type, error) {
	if elem, ok := strings.CutPrefix(name, "[]"); ok {
		typ, found := scalarTypes[elem]
		if !found || elem == "bool" {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
		}

		return reflect.SliceOf(typ), nil
	}

	typ, found := scalarTypes[name]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}

	return typ, nil
}
