// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package ir

import (
	"fmt"
	"sort"
)

// Kind discriminates the closed set of type variants. Every consumer
// switches exhaustively over it; adding a variant means visiting every
// switch, not adding a runtime type check.
type Kind int

const (
	// KindString is the string primitive.
	KindString Kind = iota

	// KindNumber is the floating-point number primitive.
	KindNumber

	// KindInteger is the integer primitive.
	KindInteger

	// KindBoolean is the boolean primitive.
	KindBoolean

	// KindAny is the unconstrained type for schemas that declare
	// neither a type nor properties.
	KindAny

	// KindArray is a homogeneous list; Elem holds the element type.
	KindArray

	// KindOptional marks a value that may be absent; Elem holds the
	// wrapped type. Optional never wraps Optional.
	KindOptional

	// KindNamed is an indirection to a TypeMap entry by name.
	KindNamed
)

// String returns the lowercase variant name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindAny:
		return "any"
	case KindArray:
		return "array"
	case KindOptional:
		return "optional"
	case KindNamed:
		return "named"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Type is one node of the type graph. Elem and Name are populated
// according to Kind; Doc and Nullable carry source metadata and never
// influence the type's identity.
type Type struct {
	// Kind selects the variant.
	Kind Kind

	// Elem is the element type for Array and Optional nodes.
	Elem *Type

	// Name is the target of a Named node.
	Name TypeName

	// Doc is the description attached to the source schema, if any.
	Doc string

	// Nullable records that the source schema was marked nullable. It
	// is metadata only and does not imply Optional wrapping.
	Nullable bool
}

// StringType returns the string primitive.
func StringType() Type { return Type{Kind: KindString} }

// NumberType returns the floating-point primitive.
func NumberType() Type { return Type{Kind: KindNumber} }

// IntegerType returns the integer primitive.
func IntegerType() Type { return Type{Kind: KindInteger} }

// BooleanType returns the boolean primitive.
func BooleanType() Type { return Type{Kind: KindBoolean} }

// AnyType returns the unconstrained type.
func AnyType() Type { return Type{Kind: KindAny} }

// ArrayOf returns an array of elem.
func ArrayOf(elem Type) Type {
	return Type{Kind: KindArray, Elem: &elem}
}

// OptionalOf wraps elem in Optional. Wrapping an Optional returns it
// unchanged, so Optional never nests.
func OptionalOf(elem Type) Type {
	if elem.Kind == KindOptional {
		return elem
	}
	return Type{Kind: KindOptional, Elem: &elem}
}

// NamedOf returns an indirection to the type registered under name.
func NamedOf(name TypeName) Type {
	return Type{Kind: KindNamed, Name: name}
}

// WithDoc returns a copy of t carrying doc.
func (t Type) WithDoc(doc string) Type {
	t.Doc = doc
	return t
}

// WithNullable returns a copy of t carrying the nullable-source flag.
func (t Type) WithNullable(nullable bool) Type {
	t.Nullable = nullable
	return t
}

// IsOptional reports whether t is an Optional node.
func (t Type) IsOptional() bool {
	return t.Kind == KindOptional
}

// String renders a compact debug form such as "array(named(Pet))".
func (t Type) String() string {
	switch t.Kind {
	case KindArray, KindOptional:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Elem)
	case KindNamed:
		return fmt.Sprintf("named(%s)", t.Name)
	default:
		return t.Kind.String()
	}
}

// Field is one member of a Struct.
type Field struct {
	// Name is the field identifier.
	Name Identifier

	// Type is the field's fully built type. Optional-wrapped types
	// mark fields absent from the source's required list.
	Type Type

	// Required mirrors the source's required list.
	Required bool

	// Doc is the property description, if any.
	Doc string
}

// Struct is an ordered, non-empty field list. It carries no name of its
// own: it is either promoted to a TypeMap entry or inlined as an
// operation's query-parameter bag, never emitted anonymously.
type Struct struct {
	fields []Field
}

// NewStruct builds a Struct from fields. Zero fields fail with
// ErrEmptyStruct; structural emptiness is a generation-time error, not a
// degenerate type.
func NewStruct(fields []Field) (*Struct, error) {
	if len(fields) == 0 {
		return nil, ErrEmptyStruct
	}
	return &Struct{fields: fields}, nil
}

// Fields returns the fields in order. The slice is shared; callers must
// treat it as read-only.
func (s *Struct) Fields() []Field {
	return s.fields
}

// Len returns the number of fields.
func (s *Struct) Len() int {
	return len(s.fields)
}

// TypeDecl is one named entry of the TypeMap: either a struct
// definition or an alias for a non-struct type.
type TypeDecl struct {
	// Name is the component-level type name.
	Name TypeName

	// Struct is the definition when the schema built to an object.
	Struct *Struct

	// Alias is the definition when Struct is nil.
	Alias Type

	// Doc is the schema description, if any.
	Doc string
}

// IsStruct reports whether the declaration defines a struct.
func (d TypeDecl) IsStruct() bool {
	return d.Struct != nil
}

// TypeMap is the ordered name-to-declaration table built once per
// compilation. It is immutable after BuildTypeMap returns; emitters
// read it through Names, Decls, and Get.
type TypeMap struct {
	names []TypeName
	decls map[string]TypeDecl
}

// BuildTypeMap assembles a TypeMap from decls, ordering entries by
// name. A repeated name fails with ErrDuplicateName.
func BuildTypeMap(decls []TypeDecl) (*TypeMap, error) {
	m := &TypeMap{decls: make(map[string]TypeDecl, len(decls))}
	for _, d := range decls {
		key := d.Name.String()
		if _, exists := m.decls[key]; exists {
			return nil, fmt.Errorf("%w: type %q", ErrDuplicateName, key)
		}
		m.decls[key] = d
		m.names = append(m.names, d.Name)
	}
	sort.Slice(m.names, func(i, j int) bool {
		return m.names[i].String() < m.names[j].String()
	})
	return m, nil
}

// Names returns the type names in order.
func (m *TypeMap) Names() []TypeName {
	return m.names
}

// Decls returns the declarations in name order.
func (m *TypeMap) Decls() []TypeDecl {
	out := make([]TypeDecl, 0, len(m.names))
	for _, n := range m.names {
		out = append(out, m.decls[n.String()])
	}
	return out
}

// Get looks up the declaration for name.
func (m *TypeMap) Get(name TypeName) (TypeDecl, bool) {
	d, ok := m.decls[name.String()]
	return d, ok
}

// Len returns the number of declarations.
func (m *TypeMap) Len() int {
	return len(m.names)
}
