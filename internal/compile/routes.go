// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package compile

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/jayvdb/hsr/pkg/ir"
)

// Segment grammar: purely alphabetic literals and single {name}
// placeholders with purely alphabetic names. Digit-bearing segments are
// rejected; this is an accepted restriction, not an oversight.
var (
	literalSegmentRE   = regexp.MustCompile(`^[A-Za-z]+$`)
	parameterSegmentRE = regexp.MustCompile(`^\{([A-Za-z]+)\}$`)
)

// Supported body media type, for requests and responses alike.
const contentTypeJSON = "application/json"

// Success statuses live in [200,300], error statuses in [400,500]. Both
// ranges are closed.
const (
	successRangeLo = 200
	successRangeHi = 300
	errorRangeLo   = 400
	errorRangeHi   = 500
)

// analysePath parses a path template into its segment sequence. The
// template must begin with '/'; one trailing empty segment (a trailing
// slash) is dropped; every remaining segment must match the segment
// grammar, and placeholder names must be valid, non-repeating
// identifiers.
func analysePath(path string) (ir.RoutePath, error) {
	if len(path) == 0 || path[0] != '/' {
		return ir.RoutePath{}, fmt.Errorf("%w: %q does not begin with '/'", ir.ErrMalformedPath, path)
	}

	raw := splitSegments(path)
	segments := make([]ir.PathSegment, 0, len(raw))
	for _, seg := range raw {
		switch {
		case literalSegmentRE.MatchString(seg):
			segments = append(segments, ir.LiteralSegment(seg))
		case parameterSegmentRE.MatchString(seg):
			name := parameterSegmentRE.FindStringSubmatch(seg)[1]
			id, err := ir.ParseIdentifier(name)
			if err != nil {
				return ir.RoutePath{}, fmt.Errorf("path %q: %w", path, err)
			}
			segments = append(segments, ir.ParameterSegment(id))
		default:
			return ir.RoutePath{}, fmt.Errorf("%w: segment %q in %q", ir.ErrMalformedPath, seg, path)
		}
	}
	return ir.NewRoutePath(segments)
}

// splitSegments splits past the leading slash and drops one trailing
// empty segment. Interior empty segments stay, and fail the grammar.
func splitSegments(path string) []string {
	var segs []string
	start := 1
	for i := 1; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			segs = append(segs, path[start:i])
			start = i + 1
		}
	}
	if n := len(segs); n > 0 && segs[n-1] == "" {
		segs = segs[:n-1]
	}
	return segs
}

// operationFor selects the path item's operation for one verb.
func operationFor(item *openapi3.PathItem, m ir.Method) *openapi3.Operation {
	switch m {
	case ir.MethodGet:
		return item.Get
	case ir.MethodHead:
		return item.Head
	case ir.MethodOptions:
		return item.Options
	case ir.MethodTrace:
		return item.Trace
	case ir.MethodPost:
		return item.Post
	case ir.MethodPut:
		return item.Put
	case ir.MethodPatch:
		return item.Patch
	case ir.MethodDelete:
		return item.Delete
	default:
		return nil
	}
}

// buildRoute validates one operation into a Route. It fails fast: any
// violation aborts before a Route value exists, so a Route observable
// by callers is internally consistent.
func (c *Compiler) buildRoute(template string, path ir.RoutePath, method ir.Method, op *openapi3.Operation) (ir.Route, error) {
	if op.OperationID == "" {
		return ir.Route{}, fmt.Errorf("%w: %s %s", ir.ErrNoOperationID, method, template)
	}
	opID, err := ir.ParseIdentifier(op.OperationID)
	if err != nil {
		return ir.Route{}, fmt.Errorf("operation id: %w", err)
	}

	pathParams, queryParams, err := c.buildParams(op.Parameters)
	if err != nil {
		return ir.Route{}, err
	}
	if err := bindPathParams(path, pathParams); err != nil {
		return ir.Route{}, err
	}

	body, err := c.buildRequestBody(method, op.RequestBody)
	if err != nil {
		return ir.Route{}, err
	}

	success, errorResponses, err := c.buildResponses(op.Responses)
	if err != nil {
		return ir.Route{}, err
	}

	doc := op.Summary
	if doc == "" {
		doc = op.Description
	}

	return ir.Route{
		OperationID: opID,
		Method:      method,
		Path:        path,
		PathParams:  pathParams,
		QueryParams: queryParams,
		Body:        body,
		Success:     success,
		Errors:      errorResponses,
		Doc:         doc,
	}, nil
}

// buildParams extracts the typed path and query parameters in their
// declared order. Path parameters must be declared required; header,
// cookie, and content-style parameters are not modeled.
func (c *Compiler) buildParams(params openapi3.Parameters) (pathParams, queryParams []ir.Param, err error) {
	seen := make(map[string]struct{})
	for _, ref := range params {
		p, err := c.refs.parameter(ref)
		if err != nil {
			return nil, nil, err
		}
		name, err := ir.ParseIdentifier(p.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("parameter: %w", err)
		}
		if _, dup := seen[name.String()]; dup {
			return nil, nil, fmt.Errorf("%w: parameter %q declared twice", ir.ErrDuplicateName, p.Name)
		}
		seen[name.String()] = struct{}{}

		if p.Schema == nil {
			if len(p.Content) > 0 {
				return nil, nil, fmt.Errorf("%w: content-style parameter %q", ir.ErrUnsupportedKind, p.Name)
			}
			return nil, nil, fmt.Errorf("%w: parameter %q has no schema", ir.ErrUnsupportedKind, p.Name)
		}
		b, err := c.buildType(p.Schema)
		if err != nil {
			return nil, nil, fmt.Errorf("parameter %q: %w", p.Name, err)
		}
		paramType, err := discardStruct(b, fmt.Sprintf("parameter %q", p.Name))
		if err != nil {
			return nil, nil, err
		}

		switch p.In {
		case "path":
			// A path parameter cannot be omitted from a concrete URL.
			if !p.Required {
				return nil, nil, fmt.Errorf("%w: %q", ir.ErrOptionalPathParam, p.Name)
			}
			pathParams = append(pathParams, ir.Param{Name: name, Type: paramType, Doc: p.Description})
		case "query":
			if !p.Required {
				paramType = ir.OptionalOf(paramType)
			}
			queryParams = append(queryParams, ir.Param{Name: name, Type: paramType, Doc: p.Description})
		default:
			return nil, nil, fmt.Errorf("%w: %s parameter %q", ir.ErrUnsupportedKind, p.In, p.Name)
		}
	}
	return pathParams, queryParams, nil
}

// bindPathParams checks the 1:1 binding between declared path
// parameters and the path's placeholders, in both directions.
func bindPathParams(path ir.RoutePath, declared []ir.Param) error {
	placeholders := make(map[string]struct{})
	for _, name := range path.Parameters() {
		placeholders[name.String()] = struct{}{}
	}
	declaredNames := make(map[string]struct{}, len(declared))
	for _, p := range declared {
		key := p.Name.String()
		if _, ok := placeholders[key]; !ok {
			return fmt.Errorf("%w: parameter %q has no {%s} placeholder", ir.ErrUnboundParameter, key, p.Name.LowerCamel())
		}
		declaredNames[key] = struct{}{}
	}
	for _, name := range path.Parameters() {
		if _, ok := declaredNames[name.String()]; !ok {
			return fmt.Errorf("%w: placeholder {%s} has no declared parameter", ir.ErrUnboundParameter, name.LowerCamel())
		}
	}
	return nil
}

// buildRequestBody resolves the request body type. Declaring a body on
// a body-less verb violates the route invariant and is rejected rather
// than ignored.
func (c *Compiler) buildRequestBody(method ir.Method, ref *openapi3.RequestBodyRef) (*ir.Type, error) {
	if ref == nil {
		return nil, nil
	}
	if !method.AllowsBody() {
		return nil, fmt.Errorf("%w: %s operations cannot declare one", ir.ErrBodyNotAllowed, method)
	}
	rb, err := c.refs.requestBody(ref)
	if err != nil {
		return nil, err
	}
	schemaRef, err := jsonContent(rb.Content, "request body")
	if err != nil {
		return nil, err
	}
	b, err := c.buildType(schemaRef)
	if err != nil {
		return nil, fmt.Errorf("request body: %w", err)
	}
	bodyType, err := discardStruct(b, "request body")
	if err != nil {
		return nil, err
	}
	return &bodyType, nil
}

// buildResponses classifies the response table: exactly one success
// status in [200,300], each status in [400,500] accumulated as an error
// variant in ascending order, anything else rejected.
func (c *Compiler) buildResponses(responses *openapi3.Responses) (ir.Response, []ir.Response, error) {
	var (
		successes []ir.Response
		errors    []ir.Response
	)

	if responses != nil {
		byStatus := responses.Map()
		keys := make([]string, 0, len(byStatus))
		for key := range byStatus {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			status, err := strconv.Atoi(key)
			if err != nil {
				return ir.Response{}, nil, fmt.Errorf("%w: %q", ir.ErrBadStatusCode, key)
			}
			resp, err := c.refs.response(byStatus[key])
			if err != nil {
				return ir.Response{}, nil, err
			}
			bodyType, err := c.responseBody(status, resp)
			if err != nil {
				return ir.Response{}, nil, err
			}

			switch {
			case status >= successRangeLo && status <= successRangeHi:
				successes = append(successes, ir.Response{Status: status, Type: bodyType})
			case status >= errorRangeLo && status <= errorRangeHi:
				errors = append(errors, ir.Response{Status: status, Type: bodyType})
			default:
				return ir.Response{}, nil, fmt.Errorf("%w: %d", ir.ErrBadStatusCode, status)
			}
		}
	}

	if len(successes) != 1 {
		return ir.Response{}, nil, fmt.Errorf("%w: found %d", ir.ErrOneSuccess, len(successes))
	}
	sort.Slice(errors, func(i, j int) bool { return errors[i].Status < errors[j].Status })
	return successes[0], errors, nil
}

// responseBody resolves one response's body type: no content at all, or
// a single application/json media type. Response headers and links are
// not modeled.
func (c *Compiler) responseBody(status int, resp *openapi3.Response) (*ir.Type, error) {
	if len(resp.Headers) > 0 {
		return nil, fmt.Errorf("%w: response %d declares headers", ir.ErrUnsupportedKind, status)
	}
	if len(resp.Links) > 0 {
		return nil, fmt.Errorf("%w: response %d declares links", ir.ErrUnsupportedKind, status)
	}
	if len(resp.Content) == 0 {
		return nil, nil
	}
	schemaRef, err := jsonContent(resp.Content, fmt.Sprintf("response %d", status))
	if err != nil {
		return nil, err
	}
	b, err := c.buildType(schemaRef)
	if err != nil {
		return nil, fmt.Errorf("response %d: %w", status, err)
	}
	bodyType, err := discardStruct(b, fmt.Sprintf("response %d body", status))
	if err != nil {
		return nil, err
	}
	return &bodyType, nil
}

// jsonContent returns the schema of a content table's single
// application/json media type; any other content shape is rejected.
func jsonContent(content openapi3.Content, position string) (*openapi3.SchemaRef, error) {
	if len(content) != 1 {
		return nil, fmt.Errorf("%w: %s declares %d media types", ir.ErrUnsupportedContent, position, len(content))
	}
	mt, ok := content[contentTypeJSON]
	if !ok || mt == nil {
		for declared := range content {
			return nil, fmt.Errorf("%w: %s declares %q", ir.ErrUnsupportedContent, position, declared)
		}
	}
	if mt.Schema == nil {
		return nil, fmt.Errorf("%w: %s media type has no schema", ir.ErrUnsupportedContent, position)
	}
	return mt.Schema, nil
}

// gatherRoutes walks the paths table in sorted order and assembles the
// route table. Operations visit verbs in canonical order, body-less
// before body-carrying. The table is keyed by rendered templates, so
// two source paths that normalize identically collide.
func (c *Compiler) gatherRoutes() (*ir.RouteTable, error) {
	table := ir.NewRouteTable()
	if c.doc.Paths == nil {
		return table, nil
	}

	items := c.doc.Paths.Map()
	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, rawPath := range keys {
		item := items[rawPath]
		if item == nil {
			continue
		}
		path, err := analysePath(rawPath)
		if err != nil {
			return nil, err
		}
		template := path.Render()

		var routes []ir.Route
		for _, method := range ir.Methods() {
			op := operationFor(item, method)
			if op == nil {
				continue
			}
			route, err := c.buildRoute(template, path, method, op)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", method, rawPath, err)
			}
			routes = append(routes, route)
		}

		if err := table.Insert(template, routes); err != nil {
			return nil, err
		}
	}
	return table, nil
}
