// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package compile

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayvdb/hsr/pkg/ir"
)

func newTestCompiler(schemas openapi3.Schemas) *Compiler {
	return New(&openapi3.T{Components: &openapi3.Components{Schemas: schemas}})
}

func typed(kind string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{kind}}}
}

func TestBuildType_Primitives(t *testing.T) {
	c := newTestCompiler(nil)

	tests := []struct {
		name   string
		schema *openapi3.SchemaRef
		want   ir.Kind
	}{
		{name: "string", schema: typed(openapi3.TypeString), want: ir.KindString},
		{name: "number", schema: typed(openapi3.TypeNumber), want: ir.KindNumber},
		{name: "integer", schema: typed(openapi3.TypeInteger), want: ir.KindInteger},
		{name: "boolean", schema: typed(openapi3.TypeBoolean), want: ir.KindBoolean},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := c.buildType(tt.schema)
			require.NoError(t, err)
			require.False(t, b.isStruct())
			assert.Equal(t, tt.want, b.typ.Kind)
		})
	}
}

func TestBuildType_Metadata(t *testing.T) {
	c := newTestCompiler(nil)

	b, err := c.buildType(&openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:        &openapi3.Types{openapi3.TypeString},
		Description: "a short label",
		Nullable:    true,
	}})
	require.NoError(t, err)
	assert.Equal(t, ir.KindString, b.typ.Kind)
	assert.Equal(t, "a short label", b.typ.Doc)
	assert.True(t, b.typ.Nullable)
}

func TestBuildType_Any(t *testing.T) {
	c := newTestCompiler(nil)

	b, err := c.buildType(&openapi3.SchemaRef{Value: &openapi3.Schema{}})
	require.NoError(t, err)
	assert.Equal(t, ir.KindAny, b.typ.Kind)
}

func TestBuildType_RequiredWithoutProperties(t *testing.T) {
	c := newTestCompiler(nil)

	_, err := c.buildType(&openapi3.SchemaRef{Value: &openapi3.Schema{
		Required: []string{"id"},
	}})
	assert.ErrorIs(t, err, ir.ErrEmptyStruct)
}

func TestBuildType_Array(t *testing.T) {
	c := newTestCompiler(nil)

	b, err := c.buildType(&openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:  &openapi3.Types{openapi3.TypeArray},
		Items: typed(openapi3.TypeInteger),
	}})
	require.NoError(t, err)
	require.Equal(t, ir.KindArray, b.typ.Kind)
	assert.Equal(t, ir.KindInteger, b.typ.Elem.Kind)
}

func TestBuildType_ArrayWithoutItems(t *testing.T) {
	c := newTestCompiler(nil)

	_, err := c.buildType(&openapi3.SchemaRef{Value: &openapi3.Schema{
		Type: &openapi3.Types{openapi3.TypeArray},
	}})
	assert.ErrorIs(t, err, ir.ErrUnsupportedKind)
}

func TestBuildType_ArrayOfInlineObject(t *testing.T) {
	c := newTestCompiler(nil)

	_, err := c.buildType(&openapi3.SchemaRef{Value: &openapi3.Schema{
		Type: &openapi3.Types{openapi3.TypeArray},
		Items: &openapi3.SchemaRef{Value: &openapi3.Schema{
			Type:       &openapi3.Types{openapi3.TypeObject},
			Properties: openapi3.Schemas{"id": typed(openapi3.TypeInteger)},
		}},
	}})
	assert.ErrorIs(t, err, ir.ErrNotStructurallyTyped)
}

func TestBuildType_Reference(t *testing.T) {
	c := newTestCompiler(openapi3.Schemas{
		"Pet": {Value: &openapi3.Schema{
			Type:        &openapi3.Types{openapi3.TypeObject},
			Description: "A pet.",
			Properties:  openapi3.Schemas{"name": typed(openapi3.TypeString)},
		}},
	})

	b, err := c.buildType(schemaAlias("Pet"))
	require.NoError(t, err)
	require.Equal(t, ir.KindNamed, b.typ.Kind)
	assert.Equal(t, "Pet", b.typ.Name.String())
	assert.Equal(t, "A pet.", b.typ.Doc)
}

func TestBuildType_SelfReference(t *testing.T) {
	// The node schema refers to itself through its children property.
	// The reference short-circuits to a Named leaf, so the graph stays
	// finite.
	node := &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type: &openapi3.Types{openapi3.TypeObject},
		Properties: openapi3.Schemas{
			"children": {Value: &openapi3.Schema{
				Type:  &openapi3.Types{openapi3.TypeArray},
				Items: schemaAlias("Node"),
			}},
			"label": typed(openapi3.TypeString),
		},
		Required: []string{"label"},
	}}
	c := newTestCompiler(openapi3.Schemas{"Node": node})

	b, err := c.buildType(node)
	require.NoError(t, err)
	require.True(t, b.isStruct())

	fields := b.strct.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "children", fields[0].Name.String())
	assert.Equal(t, "optional(array(named(Node)))", fields[0].Type.String())
	assert.Equal(t, "label", fields[1].Name.String())
	assert.True(t, fields[1].Required)
}

func TestBuildType_Object(t *testing.T) {
	c := newTestCompiler(nil)

	b, err := c.buildType(&openapi3.SchemaRef{Value: &openapi3.Schema{
		Type: &openapi3.Types{openapi3.TypeObject},
		Properties: openapi3.Schemas{
			"tag":  typed(openapi3.TypeString),
			"id":   typed(openapi3.TypeInteger),
			"name": typed(openapi3.TypeString),
		},
		Required: []string{"id", "name"},
	}})
	require.NoError(t, err)
	require.True(t, b.isStruct())

	fields := b.strct.Fields()
	require.Len(t, fields, 3)

	// Properties come out in name order regardless of source order.
	assert.Equal(t, "id", fields[0].Name.String())
	assert.Equal(t, ir.KindInteger, fields[0].Type.Kind)
	assert.True(t, fields[0].Required)

	assert.Equal(t, "name", fields[1].Name.String())
	assert.Equal(t, ir.KindString, fields[1].Type.Kind)
	assert.True(t, fields[1].Required)

	assert.Equal(t, "tag", fields[2].Name.String())
	assert.True(t, fields[2].Type.IsOptional())
	assert.Equal(t, ir.KindString, fields[2].Type.Elem.Kind)
	assert.False(t, fields[2].Required)
}

func TestBuildType_ObjectWithoutProperties(t *testing.T) {
	c := newTestCompiler(nil)

	_, err := c.buildType(&openapi3.SchemaRef{Value: &openapi3.Schema{
		Type: &openapi3.Types{openapi3.TypeObject},
	}})
	assert.ErrorIs(t, err, ir.ErrEmptyStruct)
}

func TestBuildType_UntypedObject(t *testing.T) {
	// Properties without a declared type still build as an object.
	c := newTestCompiler(nil)

	b, err := c.buildType(&openapi3.SchemaRef{Value: &openapi3.Schema{
		Properties: openapi3.Schemas{"id": typed(openapi3.TypeInteger)},
	}})
	require.NoError(t, err)
	assert.True(t, b.isStruct())
}

func TestBuildType_BadPropertyName(t *testing.T) {
	c := newTestCompiler(nil)

	_, err := c.buildType(&openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:       &openapi3.Types{openapi3.TypeObject},
		Properties: openapi3.Schemas{"Pet-Name": typed(openapi3.TypeString)},
	}})
	assert.ErrorIs(t, err, ir.ErrBadIdentifier)
}

func TestBuildType_UnsupportedShapes(t *testing.T) {
	c := newTestCompiler(nil)

	tests := []struct {
		name   string
		schema *openapi3.SchemaRef
	}{
		{name: "nil ref", schema: nil},
		{name: "empty ref", schema: &openapi3.SchemaRef{}},
		{name: "oneOf", schema: &openapi3.SchemaRef{Value: &openapi3.Schema{
			OneOf: openapi3.SchemaRefs{typed(openapi3.TypeString)},
		}}},
		{name: "anyOf", schema: &openapi3.SchemaRef{Value: &openapi3.Schema{
			AnyOf: openapi3.SchemaRefs{typed(openapi3.TypeString)},
		}}},
		{name: "not", schema: &openapi3.SchemaRef{Value: &openapi3.Schema{
			Not: typed(openapi3.TypeString),
		}}},
		{name: "multiple types", schema: &openapi3.SchemaRef{Value: &openapi3.Schema{
			Type: &openapi3.Types{openapi3.TypeString, openapi3.TypeInteger},
		}}},
		{name: "null type", schema: &openapi3.SchemaRef{Value: &openapi3.Schema{
			Type: &openapi3.Types{"null"},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.buildType(tt.schema)
			assert.ErrorIs(t, err, ir.ErrUnsupportedKind)
		})
	}
}

func TestMergeAllOf(t *testing.T) {
	c := newTestCompiler(nil)

	b, err := c.buildType(&openapi3.SchemaRef{Value: &openapi3.Schema{
		AllOf: openapi3.SchemaRefs{
			{Value: &openapi3.Schema{
				Type:       &openapi3.Types{openapi3.TypeObject},
				Properties: openapi3.Schemas{"name": typed(openapi3.TypeString)},
				Required:   []string{"name"},
			}},
			{Value: &openapi3.Schema{
				Type:       &openapi3.Types{openapi3.TypeObject},
				Properties: openapi3.Schemas{"id": typed(openapi3.TypeInteger)},
				Required:   []string{"id"},
			}},
		},
	}})
	require.NoError(t, err)
	require.True(t, b.isStruct())

	// Constituent order wins over name order.
	fields := b.strct.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "name", fields[0].Name.String())
	assert.Equal(t, "id", fields[1].Name.String())
}

func TestMergeAllOf_DuplicateField(t *testing.T) {
	c := newTestCompiler(nil)

	_, err := c.buildType(&openapi3.SchemaRef{Value: &openapi3.Schema{
		AllOf: openapi3.SchemaRefs{
			{Value: &openapi3.Schema{
				Type:       &openapi3.Types{openapi3.TypeObject},
				Properties: openapi3.Schemas{"id": typed(openapi3.TypeInteger)},
			}},
			{Value: &openapi3.Schema{
				Type:       &openapi3.Types{openapi3.TypeObject},
				Properties: openapi3.Schemas{"id": typed(openapi3.TypeString)},
			}},
		},
	}})
	assert.ErrorIs(t, err, ir.ErrDuplicateName)
}

func TestMergeAllOf_NonStructConstituent(t *testing.T) {
	c := newTestCompiler(openapi3.Schemas{"Base": stringSchema("")})

	tests := []struct {
		name        string
		constituent *openapi3.SchemaRef
	}{
		{name: "primitive", constituent: typed(openapi3.TypeString)},
		{name: "reference", constituent: schemaAlias("Base")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.buildType(&openapi3.SchemaRef{Value: &openapi3.Schema{
				AllOf: openapi3.SchemaRefs{
					tt.constituent,
					{Value: &openapi3.Schema{
						Type:       &openapi3.Types{openapi3.TypeObject},
						Properties: openapi3.Schemas{"id": typed(openapi3.TypeInteger)},
					}},
				},
			}})
			assert.ErrorIs(t, err, ir.ErrUnsupportedKind)
		})
	}
}
