package core

import (
	"encoding"
	"reflect"
)

// unexported variables.
var (
	//nolint:gochecknoglobals,inamedparam // reflect type for Set(string) error values
	stringSetterType = reflect.TypeFor[interface{ Set(string) error }]()
	//nolint:gochecknoglobals // reflect type for text unmarshaling
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// valueType is the value type of an argument resolved once at construction.
type valueType struct {
	kind ValueKind
	typ  reflect.Type
	// elem is the element type of a collection.
	elem reflect.Type
}

// elementType returns the type a single token converts to.
func (v valueType) elementType() reflect.Type {
	if v.kind == KindCollection {
		return v.elem
	}

	return v.typ
}

func implementsStringInput(typ reflect.Type) bool {
	ptr := reflect.PointerTo(typ)

	return ptr.Implements(textUnmarshalerType) || ptr.Implements(stringSetterType)
}

func isScalarKind(kind reflect.Kind) bool {
	switch kind { //nolint:exhaustive // default handles the rest
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func resolveValueType(typ reflect.Type) valueType {
	if typ == nil {
		typ = reflect.TypeFor[string]()
	}

	switch {
	case implementsStringInput(typ):
		return valueType{kind: KindScalar, typ: typ}
	case typ.Kind() == reflect.Bool:
		return valueType{kind: KindBool, typ: typ}
	case typ.Kind() == reflect.Slice && typ.Elem().Kind() == reflect.Uint8:
		return valueType{kind: KindScalar, typ: typ}
	case typ.Kind() == reflect.Slice:
		return valueType{kind: KindCollection, typ: typ, elem: typ.Elem()}
	case isScalarKind(typ.Kind()):
		return valueType{kind: KindScalar, typ: typ}
	default:
		return valueType{kind: KindOther, typ: typ}
	}
}
