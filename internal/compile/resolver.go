// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package compile

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/jayvdb/hsr/pkg/ir"
)

// Reference pointer namespaces. Cross-namespace references are never
// followed: each dereference consults exactly one table.
const (
	nsSchemas       = "schemas"
	nsParameters    = "parameters"
	nsResponses     = "responses"
	nsRequestBodies = "requestBodies"
)

// refDepthLimit bounds schema reference chains. Exceeding it converts a
// would-be infinite loop into a reported error.
const refDepthLimit = 20

// resolver bundles the four component lookup tables for one
// compilation run. All tables are read-only for the run's duration.
type resolver struct {
	schemas    openapi3.Schemas
	parameters openapi3.ParametersMap
	responses  openapi3.ResponseBodies
	bodies     openapi3.RequestBodies
}

func newResolver(components *openapi3.Components) *resolver {
	r := &resolver{}
	if components != nil {
		r.schemas = components.Schemas
		r.parameters = components.Parameters
		r.responses = components.Responses
		r.bodies = components.RequestBodies
	}
	return r
}

// parseRef splits a pointer of the exact form
// #/components/<namespace>/<name>; any other shape is ErrBadReference.
func parseRef(ref string) (namespace, name string, err error) {
	parts := strings.Split(ref, "/")
	if len(parts) != 4 || parts[0] != "#" || parts[1] != "components" {
		return "", "", fmt.Errorf("%w: %q", ir.ErrBadReference, ref)
	}
	switch parts[2] {
	case nsSchemas, nsParameters, nsResponses, nsRequestBodies:
		return parts[2], parts[3], nil
	default:
		return "", "", fmt.Errorf("%w: unknown namespace in %q", ir.ErrBadReference, ref)
	}
}

// schemaTarget resolves a schema pointer to its first-hop TypeName and
// the terminal non-reference schema. A referenced entry may itself be a
// reference; chains are followed up to refDepthLimit entries, so a
// cycle surfaces as ErrBadReference instead of looping.
func (r *resolver) schemaTarget(ref string) (ir.TypeName, *openapi3.Schema, error) {
	ns, first, err := parseRef(ref)
	if err != nil {
		return ir.TypeName{}, nil, err
	}
	if ns != nsSchemas {
		return ir.TypeName{}, nil, fmt.Errorf("%w: %q does not point into schemas", ir.ErrBadReference, ref)
	}
	name, err := ir.ParseTypeName(first)
	if err != nil {
		return ir.TypeName{}, nil, fmt.Errorf("reference %q: %w", ref, err)
	}

	key := first
	for depth := 0; depth < refDepthLimit; depth++ {
		entry, ok := r.schemas[key]
		if !ok || entry == nil {
			return ir.TypeName{}, nil, fmt.Errorf("%w: %q points to missing schema %q", ir.ErrBadReference, ref, key)
		}
		if entry.Ref != "" {
			ns, next, err := parseRef(entry.Ref)
			if err != nil {
				return ir.TypeName{}, nil, err
			}
			if ns != nsSchemas {
				return ir.TypeName{}, nil, fmt.Errorf("%w: %q does not point into schemas", ir.ErrBadReference, entry.Ref)
			}
			key = next
			continue
		}
		if entry.Value == nil {
			return ir.TypeName{}, nil, fmt.Errorf("%w: schema %q has no content", ir.ErrBadReference, key)
		}
		return name, entry.Value, nil
	}
	return ir.TypeName{}, nil, fmt.Errorf("%w: chain longer than %d entries resolving %q", ir.ErrBadReference, refDepthLimit, ref)
}

// parameter dereferences a parameter. Dereference outside the schemas
// namespace is single-hop: a reference to another reference, or to a
// missing key, is ErrBadReference.
func (r *resolver) parameter(ref *openapi3.ParameterRef) (*openapi3.Parameter, error) {
	if ref == nil {
		return nil, fmt.Errorf("%w: nil parameter", ir.ErrBadReference)
	}
	if ref.Ref == "" {
		if ref.Value == nil {
			return nil, fmt.Errorf("%w: parameter has no content", ir.ErrBadReference)
		}
		return ref.Value, nil
	}
	ns, name, err := parseRef(ref.Ref)
	if err != nil {
		return nil, err
	}
	if ns != nsParameters {
		return nil, fmt.Errorf("%w: %q does not point into parameters", ir.ErrBadReference, ref.Ref)
	}
	entry, ok := r.parameters[name]
	if !ok || entry == nil {
		return nil, fmt.Errorf("%w: %q points to missing parameter %q", ir.ErrBadReference, ref.Ref, name)
	}
	if entry.Ref != "" || entry.Value == nil {
		return nil, fmt.Errorf("%w: parameter %q is not a concrete definition", ir.ErrBadReference, name)
	}
	return entry.Value, nil
}

// response dereferences a response, single-hop.
func (r *resolver) response(ref *openapi3.ResponseRef) (*openapi3.Response, error) {
	if ref == nil {
		return nil, fmt.Errorf("%w: nil response", ir.ErrBadReference)
	}
	if ref.Ref == "" {
		if ref.Value == nil {
			return nil, fmt.Errorf("%w: response has no content", ir.ErrBadReference)
		}
		return ref.Value, nil
	}
	ns, name, err := parseRef(ref.Ref)
	if err != nil {
		return nil, err
	}
	if ns != nsResponses {
		return nil, fmt.Errorf("%w: %q does not point into responses", ir.ErrBadReference, ref.Ref)
	}
	entry, ok := r.responses[name]
	if !ok || entry == nil {
		return nil, fmt.Errorf("%w: %q points to missing response %q", ir.ErrBadReference, ref.Ref, name)
	}
	if entry.Ref != "" || entry.Value == nil {
		return nil, fmt.Errorf("%w: response %q is not a concrete definition", ir.ErrBadReference, name)
	}
	return entry.Value, nil
}

// requestBody dereferences a request body, single-hop.
func (r *resolver) requestBody(ref *openapi3.RequestBodyRef) (*openapi3.RequestBody, error) {
	if ref == nil {
		return nil, fmt.Errorf("%w: nil request body", ir.ErrBadReference)
	}
	if ref.Ref == "" {
		if ref.Value == nil {
			return nil, fmt.Errorf("%w: request body has no content", ir.ErrBadReference)
		}
		return ref.Value, nil
	}
	ns, name, err := parseRef(ref.Ref)
	if err != nil {
		return nil, err
	}
	if ns != nsRequestBodies {
		return nil, fmt.Errorf("%w: %q does not point into requestBodies", ir.ErrBadReference, ref.Ref)
	}
	entry, ok := r.bodies[name]
	if !ok || entry == nil {
		return nil, fmt.Errorf("%w: %q points to missing request body %q", ir.ErrBadReference, ref.Ref, name)
	}
	if entry.Ref != "" || entry.Value == nil {
		return nil, fmt.Errorf("%w: request body %q is not a concrete definition", ir.ErrBadReference, name)
	}
	return entry.Value, nil
}
