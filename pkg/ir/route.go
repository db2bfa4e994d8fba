// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package ir

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Method is an HTTP verb. The set is fixed: four body-less verbs and
// four body-carrying verbs.
type Method string

// The eight supported verbs.
const (
	MethodGet     Method = http.MethodGet
	MethodHead    Method = http.MethodHead
	MethodOptions Method = http.MethodOptions
	MethodTrace   Method = http.MethodTrace
	MethodPost    Method = http.MethodPost
	MethodPut     Method = http.MethodPut
	MethodPatch   Method = http.MethodPatch
	MethodDelete  Method = http.MethodDelete
)

// Methods returns all verbs in canonical order, body-less before
// body-carrying. Route tables and dispatch tables list verbs in this
// order.
func Methods() []Method {
	return []Method{
		MethodGet, MethodHead, MethodOptions, MethodTrace,
		MethodPost, MethodPut, MethodPatch, MethodDelete,
	}
}

// AllowsBody reports whether the verb may carry a request body. The
// partition is fixed: GET, HEAD, OPTIONS, and TRACE are body-less; POST,
// PUT, PATCH, and DELETE are body-carrying.
func (m Method) AllowsBody() bool {
	switch m {
	case MethodGet, MethodHead, MethodOptions, MethodTrace:
		return false
	default:
		return true
	}
}

// String returns the verb.
func (m Method) String() string {
	return string(m)
}

// SegmentKind discriminates path segment variants.
type SegmentKind int

const (
	// SegmentLiteral is fixed path text.
	SegmentLiteral SegmentKind = iota

	// SegmentParameter is a {name} placeholder.
	SegmentParameter
)

// PathSegment is one segment of a route path: literal text or a named
// placeholder.
type PathSegment struct {
	// Kind selects the variant.
	Kind SegmentKind

	// Literal is the segment text for SegmentLiteral.
	Literal string

	// Name is the placeholder identifier for SegmentParameter.
	Name Identifier
}

// LiteralSegment returns a literal segment.
func LiteralSegment(text string) PathSegment {
	return PathSegment{Kind: SegmentLiteral, Literal: text}
}

// ParameterSegment returns a placeholder segment.
func ParameterSegment(name Identifier) PathSegment {
	return PathSegment{Kind: SegmentParameter, Name: name}
}

// RoutePath is an ordered segment sequence. Flattening it back to a
// template string is unambiguous: no two parameter segments share a
// name.
type RoutePath struct {
	segments []PathSegment
}

// NewRoutePath builds a RoutePath from segments, rejecting repeated
// parameter names with ErrMalformedPath.
func NewRoutePath(segments []PathSegment) (RoutePath, error) {
	seen := make(map[string]struct{})
	for _, seg := range segments {
		if seg.Kind != SegmentParameter {
			continue
		}
		key := seg.Name.String()
		if _, dup := seen[key]; dup {
			return RoutePath{}, fmt.Errorf("%w: repeated parameter %q", ErrMalformedPath, key)
		}
		seen[key] = struct{}{}
	}
	return RoutePath{segments: segments}, nil
}

// Segments returns the segments in order. The slice is shared; callers
// must treat it as read-only.
func (p RoutePath) Segments() []PathSegment {
	return p.segments
}

// Parameters returns the placeholder identifiers in segment order.
func (p RoutePath) Parameters() []Identifier {
	var params []Identifier
	for _, seg := range p.segments {
		if seg.Kind == SegmentParameter {
			params = append(params, seg.Name)
		}
	}
	return params
}

// Render flattens the path back to its template string. Placeholders
// render in mixedCase, so re-parsing the result yields an identical
// segment sequence.
func (p RoutePath) Render() string {
	if len(p.segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		switch seg.Kind {
		case SegmentLiteral:
			b.WriteString(seg.Literal)
		case SegmentParameter:
			b.WriteString("{")
			b.WriteString(seg.Name.LowerCamel())
			b.WriteString("}")
		}
	}
	return b.String()
}

// Param is one typed operation parameter.
type Param struct {
	// Name is the parameter identifier.
	Name Identifier

	// Type is the parameter's type. Query parameters carry an Optional
	// wrapper when the source does not mark them required; path
	// parameters never do.
	Type Type

	// Doc is the parameter description, if any.
	Doc string
}

// Response is one (status, body type) pair. A nil Type means the
// response has no content.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// Type is the JSON body type, or nil for a body-less response.
	Type *Type
}

// Route is one fully validated HTTP operation. Construction lives in
// the compiler and fails fast; a Route observable outside it is
// internally consistent: the verb matches the body's presence, path
// parameters are required and bound to placeholders, the success status
// is in 200..300, and every error status is in 400..500.
type Route struct {
	// OperationID names the operation, uniquely across the table.
	OperationID Identifier

	// Method is the verb.
	Method Method

	// Path is the parsed path template.
	Path RoutePath

	// PathParams are the path parameters in declared order.
	PathParams []Param

	// QueryParams are the query parameters in declared order.
	QueryParams []Param

	// Body is the request body type, nil when absent.
	Body *Type

	// Success is the single success response.
	Success Response

	// Errors are the error responses in ascending status order.
	Errors []Response

	// Doc is the operation summary or description, if any.
	Doc string
}

// HasBody reports whether the route carries a request body.
func (r Route) HasBody() bool {
	return r.Body != nil
}

// ErrorName maps an HTTP status code to the TypeName for its error
// variant: the canonical reason phrase in CamelCase when it normalizes
// cleanly, otherwise the synthetic E<code> form. Every status is
// nameable.
func ErrorName(status int) TypeName {
	if phrase := http.StatusText(status); phrase != "" {
		if tn, err := ParseTypeName(camelJoin(splitWords(phrase))); err == nil {
			return tn
		}
	}
	return TypeName{name: fmt.Sprintf("E%d", status)}
}

// RouteTable is the ordered template-to-routes table built once per
// compilation. Keys are rendered templates, so two source paths that
// normalize to the same template collide. Operation ids are unique
// across the whole table.
type RouteTable struct {
	templates []string
	routes    map[string][]Route
	opIDs     map[string]struct{}
}

// NewRouteTable returns an empty table.
func NewRouteTable() *RouteTable {
	return &RouteTable{
		routes: make(map[string][]Route),
		opIDs:  make(map[string]struct{}),
	}
}

// Insert adds the routes sharing template. A repeated template or
// operation id fails with ErrDuplicateName.
func (t *RouteTable) Insert(template string, routes []Route) error {
	if _, exists := t.routes[template]; exists {
		return fmt.Errorf("%w: path %q", ErrDuplicateName, template)
	}
	for _, r := range routes {
		key := r.OperationID.String()
		if _, dup := t.opIDs[key]; dup {
			return fmt.Errorf("%w: operation %q", ErrDuplicateName, key)
		}
		t.opIDs[key] = struct{}{}
	}
	t.routes[template] = routes
	t.templates = append(t.templates, template)
	return nil
}

// Templates returns the templates in sorted order.
func (t *RouteTable) Templates() []string {
	out := make([]string, len(t.templates))
	copy(out, t.templates)
	sort.Strings(out)
	return out
}

// Routes returns the routes registered under template.
func (t *RouteTable) Routes(template string) []Route {
	return t.routes[template]
}

// All returns every route in table order: templates sorted, verbs in
// their per-template insertion order.
func (t *RouteTable) All() []Route {
	var out []Route
	for _, tmpl := range t.Templates() {
		out = append(out, t.routes[tmpl]...)
	}
	return out
}

// Len returns the total number of routes.
func (t *RouteTable) Len() int {
	n := 0
	for _, rs := range t.routes {
		n += len(rs)
	}
	return n
}
