// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package compile

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/jayvdb/hsr/pkg/ir"
)

// built is the outcome of building one schema node: a struct definition
// or a plain type, never both.
type built struct {
	strct *ir.Struct
	typ   ir.Type
}

func structBuilt(s *ir.Struct) built { return built{strct: s} }
func typeBuilt(t ir.Type) built      { return built{typ: t} }

func (b built) isStruct() bool { return b.strct != nil }

// discardStruct narrows a build outcome to a plain type. Inline structs
// are not representable in positions that require a named or primitive
// type, so they fail with ErrNotStructurallyTyped; the caller names the
// position for the diagnostic.
func discardStruct(b built, position string) (ir.Type, error) {
	if b.isStruct() {
		return ir.Type{}, fmt.Errorf("%w: %s", ir.ErrNotStructurallyTyped, position)
	}
	return b.typ, nil
}

// annotate copies the schema's description and nullable flag onto t.
func annotate(t ir.Type, schema *openapi3.Schema) ir.Type {
	if schema.Description != "" {
		t = t.WithDoc(schema.Description)
	}
	if schema.Nullable {
		t = t.WithNullable(true)
	}
	return t
}

// buildType converts one schema node into a struct or a type. A bare
// reference short-circuits to a Named leaf carrying the terminal
// target's description; the referenced definition is never inlined, so
// self-referential schema graphs stay flat.
func (c *Compiler) buildType(ref *openapi3.SchemaRef) (built, error) {
	if ref == nil {
		return built{}, fmt.Errorf("%w: missing schema", ir.ErrUnsupportedKind)
	}
	if ref.Ref != "" {
		name, target, err := c.refs.schemaTarget(ref.Ref)
		if err != nil {
			return built{}, err
		}
		return typeBuilt(ir.NamedOf(name).WithDoc(target.Description)), nil
	}

	schema := ref.Value
	if schema == nil {
		return built{}, fmt.Errorf("%w: schema node has no content", ir.ErrUnsupportedKind)
	}
	if len(schema.OneOf) > 0 || len(schema.AnyOf) > 0 || schema.Not != nil {
		return built{}, fmt.Errorf("%w: oneOf, anyOf, and not are not modeled", ir.ErrUnsupportedKind)
	}
	if len(schema.AllOf) > 0 {
		s, err := c.mergeAllOf(schema)
		if err != nil {
			return built{}, err
		}
		return structBuilt(s), nil
	}

	if schema.Type == nil || len(*schema.Type) == 0 {
		// No declared type: object-like when properties exist,
		// otherwise unconstrained. A required list with no properties
		// is evidence of a mis-declared object, not an Any.
		if len(schema.Properties) > 0 {
			s, err := c.structFromObject(schema)
			if err != nil {
				return built{}, err
			}
			return structBuilt(s), nil
		}
		if len(schema.Required) > 0 {
			return built{}, fmt.Errorf("%w: required list without properties", ir.ErrEmptyStruct)
		}
		return typeBuilt(annotate(ir.AnyType(), schema)), nil
	}
	if len(*schema.Type) > 1 {
		return built{}, fmt.Errorf("%w: multiple types %v", ir.ErrUnsupportedKind, schema.Type.Slice())
	}

	switch (*schema.Type)[0] {
	case openapi3.TypeString:
		return typeBuilt(annotate(ir.StringType(), schema)), nil
	case openapi3.TypeNumber:
		return typeBuilt(annotate(ir.NumberType(), schema)), nil
	case openapi3.TypeInteger:
		return typeBuilt(annotate(ir.IntegerType(), schema)), nil
	case openapi3.TypeBoolean:
		return typeBuilt(annotate(ir.BooleanType(), schema)), nil
	case openapi3.TypeArray:
		if schema.Items == nil {
			return built{}, fmt.Errorf("%w: array without items", ir.ErrUnsupportedKind)
		}
		elemBuilt, err := c.buildType(schema.Items)
		if err != nil {
			return built{}, err
		}
		elem, err := discardStruct(elemBuilt, "array element")
		if err != nil {
			return built{}, err
		}
		return typeBuilt(annotate(ir.ArrayOf(elem), schema)), nil
	case openapi3.TypeObject:
		s, err := c.structFromObject(schema)
		if err != nil {
			return built{}, err
		}
		return structBuilt(s), nil
	default:
		return built{}, fmt.Errorf("%w: type %q", ir.ErrUnsupportedKind, (*schema.Type)[0])
	}
}

// structFromObject extracts a Struct from an object-like schema.
// Properties are visited in name order; each one builds its full type,
// then gains an Optional wrapper exactly when its name is absent from
// the required list. Zero resulting fields fail with ErrEmptyStruct.
func (c *Compiler) structFromObject(schema *openapi3.Schema) (*ir.Struct, error) {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	fields := make([]ir.Field, 0, len(names))
	for _, name := range names {
		id, err := ir.ParseIdentifier(name)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		b, err := c.buildType(schema.Properties[name])
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		fieldType, err := discardStruct(b, fmt.Sprintf("property %q", name))
		if err != nil {
			return nil, err
		}
		doc := fieldType.Doc
		if !required[name] {
			fieldType = ir.OptionalOf(fieldType)
		}
		fields = append(fields, ir.Field{
			Name:     id,
			Type:     fieldType,
			Required: required[name],
			Doc:      doc,
		})
	}

	s, err := ir.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// mergeAllOf merges the constituents of an allOf schema into one
// Struct. Every constituent must itself build to a struct; primitives,
// arrays, and named references are rejected rather than approximated.
// Fields append in constituent order, and a field declared by two
// constituents is a collision, not an override.
func (c *Compiler) mergeAllOf(schema *openapi3.Schema) (*ir.Struct, error) {
	var fields []ir.Field
	seen := make(map[string]struct{})

	for _, constituent := range schema.AllOf {
		b, err := c.buildType(constituent)
		if err != nil {
			return nil, err
		}
		if !b.isStruct() {
			return nil, fmt.Errorf("%w: structural merge is not supported for %s constituents", ir.ErrUnsupportedKind, b.typ.Kind)
		}
		for _, f := range b.strct.Fields() {
			key := f.Name.String()
			if _, dup := seen[key]; dup {
				return nil, fmt.Errorf("%w: field %q declared by more than one allOf constituent", ir.ErrDuplicateName, key)
			}
			seen[key] = struct{}{}
			fields = append(fields, f)
		}
	}

	return ir.NewStruct(fields)
}
