// Package attribute implements the tagged-union Attribute value used by
// properties and components, plus the ordered Context/Properties bundle
// carried by every nameable map entity (spec.md §3 "Attribute" / "Context").
package attribute

import (
	"fmt"

	"github.com/mapeditor/tactile-core/core/ident"
)

// Kind describes the dynamic type of an Attribute's payload.
type Kind int

const (
	KindString Kind = iota
	KindInt32
	KindFloat32
	KindBool
	KindColor
	KindFilePath
	KindObjectRef
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt32:
		return "int"
	case KindFloat32:
		return "float"
	case KindBool:
		return "bool"
	case KindColor:
		return "color"
	case KindFilePath:
		return "file"
	case KindObjectRef:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Attribute is a dynamically-typed value: one of string, int32, float32,
// bool, color, file-path, or object-ref (spec.md §3).
type Attribute struct {
	kind  Kind
	value any
}

// String constructs a string attribute.
func String(v string) Attribute { return Attribute{kind: KindString, value: v} }

// Int32 constructs an integer attribute.
func Int32(v int32) Attribute { return Attribute{kind: KindInt32, value: v} }

// Float32 constructs a floating-point attribute.
func Float32(v float32) Attribute { return Attribute{kind: KindFloat32, value: v} }

// Bool constructs a boolean attribute.
func Bool(v bool) Attribute { return Attribute{kind: KindBool, value: v} }

// ColorAttr constructs a color attribute.
func ColorAttr(v Color) Attribute { return Attribute{kind: KindColor, value: v} }

// FilePath constructs a file-path attribute. Paths are stored exactly as
// given; relative-path resolution is a serializer concern (spec.md §4.7).
func FilePath(v string) Attribute { return Attribute{kind: KindFilePath, value: v} }

// ObjectRef constructs an object-reference attribute.
func ObjectRef(v ident.ObjectID) Attribute { return Attribute{kind: KindObjectRef, value: v} }

// Zero returns the default-initialized attribute value for a kind, used
// when adding a new property/attribute without an explicit initial value.
func Zero(k Kind) Attribute {
	switch k {
	case KindString:
		return String("")
	case KindInt32:
		return Int32(0)
	case KindFloat32:
		return Float32(0)
	case KindBool:
		return Bool(false)
	case KindColor:
		return ColorAttr(0)
	case KindFilePath:
		return FilePath("")
	case KindObjectRef:
		return ObjectRef(0)
	default:
		panic(fmt.Sprintf("attribute: invalid kind %v", k))
	}
}

// Kind reports the attribute's dynamic type.
func (a Attribute) Kind() Kind { return a.kind }

// AsString returns the string value and whether the attribute holds one.
func (a Attribute) AsString() (string, bool) { v, ok := a.value.(string); return v, ok && a.kind == KindString }

// AsInt32 returns the int32 value and whether the attribute holds one.
func (a Attribute) AsInt32() (int32, bool) { v, ok := a.value.(int32); return v, ok && a.kind == KindInt32 }

// AsFloat32 returns the float32 value and whether the attribute holds one.
func (a Attribute) AsFloat32() (float32, bool) {
	v, ok := a.value.(float32)
	return v, ok && a.kind == KindFloat32
}

// AsBool returns the bool value and whether the attribute holds one.
func (a Attribute) AsBool() (bool, bool) { v, ok := a.value.(bool); return v, ok && a.kind == KindBool }

// AsColor returns the Color value and whether the attribute holds one.
func (a Attribute) AsColor() (Color, bool) {
	v, ok := a.value.(Color)
	return v, ok && a.kind == KindColor
}

// AsFilePath returns the file-path value and whether the attribute holds one.
func (a Attribute) AsFilePath() (string, bool) {
	v, ok := a.value.(string)
	return v, ok && a.kind == KindFilePath
}

// AsObjectRef returns the object reference and whether the attribute holds one.
func (a Attribute) AsObjectRef() (ident.ObjectID, bool) {
	v, ok := a.value.(ident.ObjectID)
	return v, ok && a.kind == KindObjectRef
}

// ExpectString returns the string value, panicking (a LogicError-class
// programmer fault) if the attribute is not a string. Intended for test
// code and call-sites that have already validated the kind.
func (a Attribute) ExpectString() string {
	v, ok := a.AsString()
	if !ok {
		panic(fmt.Sprintf("attribute: expected string, got %v", a.kind))
	}
	return v
}

// ExpectInt32 panics unless the attribute is an int32.
func (a Attribute) ExpectInt32() int32 {
	v, ok := a.AsInt32()
	if !ok {
		panic(fmt.Sprintf("attribute: expected int, got %v", a.kind))
	}
	return v
}

// ExpectBool panics unless the attribute is a bool.
func (a Attribute) ExpectBool() bool {
	v, ok := a.AsBool()
	if !ok {
		panic(fmt.Sprintf("attribute: expected bool, got %v", a.kind))
	}
	return v
}

// Equal reports structural equality between two attributes.
func (a Attribute) Equal(other Attribute) bool {
	return a.kind == other.kind && a.value == other.value
}

// Raw returns the untyped payload, for serializers that need to dispatch
// on kind themselves.
func (a Attribute) Raw() any { return a.value }
