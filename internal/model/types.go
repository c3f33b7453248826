// Package model is the typed intermediate representation of type units,
// interfaces and module manifests.
//
// Type is a closed set of variants. Code that needs to handle every kind
// implements Visitor; adding a kind adds a Visitor method, so every such
// site fails to compile until it handles the new kind.
package model

import (
	"strings"
)

// Kind identifies a Type variant.
type Kind int

// Type kinds.
const (
	KindNull Kind = iota
	KindBoolean
	KindInteger
	KindNumber
	KindString
	KindArray
	KindObject
	KindVariant
	KindReference
)

var kindNames = [...]string{
	KindNull:      "null",
	KindBoolean:   "boolean",
	KindInteger:   "integer",
	KindNumber:    "number",
	KindString:    "string",
	KindArray:     "array",
	KindObject:    "object",
	KindVariant:   "variant",
	KindReference: "reference",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Type is one node of a type definition.
type Type interface {
	Kind() Kind
	sealed()
}

// NullType is the JSON null type.
type NullType struct{}

// BooleanType is the JSON boolean type.
type BooleanType struct{}

// IntegerType is a JSON integer with an optional format (e.g. "int64").
type IntegerType struct {
	Format string
}

// NumberType is a JSON number with an optional format (e.g. "float").
type NumberType struct {
	Format string
}

// StringType is a JSON string; IsEnum is set when the definition lists
// allowed values.
type StringType struct {
	IsEnum bool
	Enum   []string
}

// ArrayType is a homogeneous JSON array.
type ArrayType struct {
	Items Type
}

// Property is one named member of an ObjectType.
type Property struct {
	Name     string
	Type     Type
	Required bool
}

// ObjectType is a JSON object with properties in definition order.
type ObjectType struct {
	Properties []Property
}

// VariantType is a union of simple types. A null member, when present, is
// always first.
type VariantType struct {
	Members []Type
}

// Reference points at a named type, either in the same unit or in another.
type Reference struct {
	// Name is the referenced type name.
	Name string

	// Unit is the slash-separated unit path. For local references it is the
	// name of the unit the reference was parsed in.
	Unit string

	// IsLocal is true when the reference string named no unit (#/Name).
	IsLocal bool
}

func (NullType) Kind() Kind     { return KindNull }
func (BooleanType) Kind() Kind  { return KindBoolean }
func (IntegerType) Kind() Kind  { return KindInteger }
func (NumberType) Kind() Kind   { return KindNumber }
func (StringType) Kind() Kind   { return KindString }
func (*ArrayType) Kind() Kind   { return KindArray }
func (*ObjectType) Kind() Kind  { return KindObject }
func (*VariantType) Kind() Kind { return KindVariant }
func (Reference) Kind() Kind    { return KindReference }

func (NullType) sealed()     {}
func (BooleanType) sealed()  {}
func (IntegerType) sealed()  {}
func (NumberType) sealed()   {}
func (StringType) sealed()   {}
func (*ArrayType) sealed()   {}
func (*ObjectType) sealed()  {}
func (*VariantType) sealed() {}
func (Reference) sealed()    {}

// Namespaces splits the unit path into its segments.
func (r Reference) Namespaces() []string {
	if r.Unit == "" {
		return nil
	}
	return strings.Split(r.Unit, "/")
}

// String renders the reference in its canonical cross-unit form.
func (r Reference) String() string {
	return "/" + r.Unit + "#/" + r.Name
}

// Visitor handles every Type variant.
type Visitor[R any] interface {
	VisitNull(NullType) R
	VisitBoolean(BooleanType) R
	VisitInteger(IntegerType) R
	VisitNumber(NumberType) R
	VisitString(StringType) R
	VisitArray(*ArrayType) R
	VisitObject(*ObjectType) R
	VisitVariant(*VariantType) R
	VisitReference(Reference) R
}

// Visit dispatches t to the matching Visitor method.
func Visit[R any](t Type, v Visitor[R]) R {
	switch tt := t.(type) {
	case NullType:
		return v.VisitNull(tt)
	case BooleanType:
		return v.VisitBoolean(tt)
	case IntegerType:
		return v.VisitInteger(tt)
	case NumberType:
		return v.VisitNumber(tt)
	case StringType:
		return v.VisitString(tt)
	case *ArrayType:
		return v.VisitArray(tt)
	case *ObjectType:
		return v.VisitObject(tt)
	case *VariantType:
		return v.VisitVariant(tt)
	case Reference:
		return v.VisitReference(tt)
	default:
		// Type is sealed; every implementation is listed above.
		panic("model: unknown type variant")
	}
}

// TypeUnit is a named collection of type definitions loaded from one file.
type TypeUnit struct {
	Name        string
	Description string

	// Names lists the type names in definition order.
	Names []string

	// Types maps a local type name to its definition.
	Types map[string]Type
}
