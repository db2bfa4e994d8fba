// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

// Package compile lowers a loaded OpenAPI description into the typed
// model consumed by the emitters. Lowering is strict: the first schema,
// reference, path, or response that falls outside the supported subset
// aborts the compilation with a sentinel error from pkg/ir.
package compile

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/jayvdb/hsr/pkg/ir"
)

// Compiler lowers one document. It holds no mutable state between
// calls; Compile may be invoked repeatedly and concurrently.
type Compiler struct {
	doc  *openapi3.T
	refs *resolver
}

// New returns a Compiler over doc. The document should already have
// passed validation by the loader.
func New(doc *openapi3.T) *Compiler {
	var components *openapi3.Components
	if doc != nil {
		components = doc.Components
	}
	return &Compiler{doc: doc, refs: newResolver(components)}
}

// Compile lowers the document into a Model: the named type
// declarations, then the route table. The two passes are independent;
// routes refer to named types without consulting the type map.
func (c *Compiler) Compile() (*ir.Model, error) {
	types, err := c.gatherTypes()
	if err != nil {
		return nil, err
	}
	routes, err := c.gatherRoutes()
	if err != nil {
		return nil, err
	}
	return &ir.Model{Types: types, Routes: routes}, nil
}

// gatherTypes builds one declaration per component schema, visiting
// names in sorted order. An object-like schema becomes a struct
// declaration; anything else becomes an alias, including a bare
// reference to another component.
func (c *Compiler) gatherTypes() (*ir.TypeMap, error) {
	if c.doc == nil || c.doc.Components == nil {
		return ir.BuildTypeMap(nil)
	}

	names := make([]string, 0, len(c.doc.Components.Schemas))
	for name := range c.doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	decls := make([]ir.TypeDecl, 0, len(names))
	for _, raw := range names {
		name, err := ir.ParseTypeName(raw)
		if err != nil {
			return nil, fmt.Errorf("schema: %w", err)
		}
		entry := c.doc.Components.Schemas[raw]
		b, err := c.buildType(entry)
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", raw, err)
		}

		decl := ir.TypeDecl{Name: name}
		if b.isStruct() {
			decl.Struct = b.strct
			if entry.Value != nil {
				decl.Doc = entry.Value.Description
			}
		} else {
			decl.Alias = b.typ
			decl.Doc = b.typ.Doc
		}
		decls = append(decls, decl)
	}
	return ir.BuildTypeMap(decls)
}
