// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package emit

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jayvdb/hsr/pkg/ir"
)

// The view layer: templates render plain strings, so every naming and
// typing decision is made here, once, for all emitters.

type typeDeclView struct {
	Name     string
	Doc      []string
	IsStruct bool
	Fields   []fieldView
	Alias    string
}

type fieldView struct {
	Name string
	Type string
	Tag  string
	Doc  []string
}

type paramView struct {
	// Name is the Go parameter name.
	Name string

	// RawVar names the adapter's local holding the undecoded text of
	// a required query parameter.
	RawVar string

	// Wire is the name the value travels under.
	Wire string

	// Placeholder is the path template placeholder, for path
	// parameters only.
	Placeholder string

	// GoType is the parameter's rendered type, pointer-wrapped for
	// optional query parameters.
	GoType string

	// ElemType is the unwrapped type of an optional query parameter.
	ElemType string

	// Binder is the dispatcher helper decoding the parameter's text;
	// it binds the unwrapped type for optional parameters.
	Binder string

	// Text is the client helper rendering the parameter's text form,
	// mirroring Binder on the sending side.
	Text string

	Optional bool
}

type variantView struct {
	Status int
	Field  string

	// Cond tests whether the variant is set on receiver e.
	Cond string

	// Text is the status line returned by the generated Error method.
	Text string

	// Doc is the variant field's comment line.
	Doc string

	HasPayload  bool
	PayloadType string
}

type opView struct {
	// OpID is the operation identifier in canonical form; it names the
	// routing table entry.
	OpID string

	// Method is the Go method on the service interface and the client.
	Method string

	Verb    string
	Path    string
	Pattern string
	Adapter string
	Doc     []string

	// Signature is the shared method signature, receiver excluded.
	Signature string

	// CallLHS assigns the handler call's results inside the dispatcher
	// adapter, accounting for whether err is already in scope.
	CallLHS string

	// CallArgs are the argument names after ctx, in signature order.
	CallArgs []string

	PathParams  []paramView
	QueryParams []paramView

	HasBody  bool
	BodyName string
	BodyType string

	HasResult     bool
	ResultType    string
	SuccessStatus int

	// ErrType is the operation's error taxonomy type, empty when the
	// route declares no error responses.
	ErrType     string
	ErrVariants []variantView

	// PathExpr is the client-side Go expression building the request
	// path from the bound parameters.
	PathExpr string
}

func docLines(doc string) []string {
	if doc == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(doc, "\n"), "\n")
}

func buildTypeDecls(types *ir.TypeMap) []typeDeclView {
	decls := make([]typeDeclView, 0, types.Len())
	for _, d := range types.Decls() {
		view := typeDeclView{
			Name: d.Name.String(),
			Doc:  docLines(d.Doc),
		}
		if d.IsStruct() {
			view.IsStruct = true
			for _, f := range d.Struct.Fields() {
				view.Fields = append(view.Fields, fieldView{
					Name: fieldName(f.Name),
					Type: goType(f.Type),
					Tag:  jsonTag(f),
					Doc:  docLines(f.Doc),
				})
			}
		} else {
			view.Alias = goType(d.Alias)
		}
		decls = append(decls, view)
	}
	return decls
}

func buildParam(p ir.Param, placeholder bool, types *ir.TypeMap) paramView {
	view := paramView{
		Name:   paramName(p.Name),
		RawVar: "raw" + p.Name.Camel(),
		Wire:   wireName(p.Name),
		GoType: goType(p.Type),
		Binder: binderFor(p.Type, types),
		Text:   textFuncFor(p.Type, types),
	}
	if placeholder {
		view.Placeholder = p.Name.LowerCamel()
	}
	if p.Type.IsOptional() {
		view.Optional = true
		view.ElemType = goType(*p.Type.Elem)
		view.Binder = binderFor(*p.Type.Elem, types)
		view.Text = textFuncFor(*p.Type.Elem, types)
	}
	return view
}

func buildOp(r ir.Route, types *ir.TypeMap) opView {
	op := opView{
		OpID:          r.OperationID.String(),
		Method:        methodName(r.OperationID),
		Verb:          string(r.Method),
		Path:          r.Path.Render(),
		Pattern:       muxPattern(r),
		Adapter:       adapterName(r.OperationID),
		Doc:           docLines(r.Doc),
		SuccessStatus: r.Success.Status,
	}

	for _, p := range r.PathParams {
		op.PathParams = append(op.PathParams, buildParam(p, true, types))
	}
	for _, p := range r.QueryParams {
		op.QueryParams = append(op.QueryParams, buildParam(p, false, types))
	}
	if r.HasBody() {
		op.HasBody = true
		op.BodyName = bodyParamName(*r.Body)
		op.BodyType = goType(*r.Body)
	}
	if r.Success.Type != nil {
		op.HasResult = true
		op.ResultType = goType(*r.Success.Type)
	}
	if len(r.Errors) > 0 {
		op.ErrType = errTypeName(r.OperationID)
		for _, e := range r.Errors {
			op.ErrVariants = append(op.ErrVariants, buildVariant(e))
		}
	}

	op.Signature = buildSignature(op)
	op.CallLHS = buildCallLHS(op)
	op.CallArgs = buildCallArgs(op)
	op.PathExpr = buildPathExpr(r, types)
	return op
}

func buildVariant(e ir.Response) variantView {
	v := variantView{
		Status: e.Status,
		Field:  ir.ErrorName(e.Status).String(),
	}
	status := strconv.Itoa(e.Status)
	if phrase := http.StatusText(e.Status); phrase != "" {
		status += " " + phrase
	}
	v.Text = status
	if e.Type != nil {
		v.HasPayload = true
		v.PayloadType = goType(*e.Type)
		v.Cond = "e." + v.Field + " != nil"
		v.Doc = v.Field + " carries the " + status + " response body."
	} else {
		v.Cond = "e." + v.Field
		v.Doc = v.Field + " marks a " + status + " response."
	}
	return v
}

func buildSignature(op opView) string {
	params := []string{"ctx context.Context"}
	for _, p := range op.PathParams {
		params = append(params, p.Name+" "+p.GoType)
	}
	for _, p := range op.QueryParams {
		params = append(params, p.Name+" "+p.GoType)
	}
	if op.HasBody {
		params = append(params, op.BodyName+" "+op.BodyType)
	}

	results := "error"
	if op.HasResult {
		results = "(" + op.ResultType + ", error)"
	}
	return op.Method + "(" + strings.Join(params, ", ") + ") " + results
}

// buildCallLHS picks the assignment form for the handler call. The
// adapter body declares err at the top level only while binding path
// parameters and required query parameters.
func buildCallLHS(op opView) string {
	if op.HasResult {
		return "result, err :="
	}
	errInScope := len(op.PathParams) > 0
	for _, p := range op.QueryParams {
		if !p.Optional {
			errInScope = true
		}
	}
	if errInScope {
		return "err ="
	}
	return "err :="
}

func buildCallArgs(op opView) []string {
	var args []string
	for _, p := range op.PathParams {
		args = append(args, p.Name)
	}
	for _, p := range op.QueryParams {
		args = append(args, p.Name)
	}
	if op.HasBody {
		args = append(args, op.BodyName)
	}
	return args
}

// buildPathExpr renders the client's request path as a concatenation
// of quoted literal runs and escaped parameter values.
func buildPathExpr(r ir.Route, types *ir.TypeMap) string {
	values := make(map[string]string, len(r.PathParams))
	for _, p := range r.PathParams {
		values[p.Name.String()] = textFuncFor(p.Type, types) + "(" + paramName(p.Name) + ")"
	}

	var pieces []string
	current := ""
	for _, seg := range r.Path.Segments() {
		current += "/"
		switch seg.Kind {
		case ir.SegmentLiteral:
			current += seg.Literal
		case ir.SegmentParameter:
			pieces = append(pieces, strconv.Quote(current))
			pieces = append(pieces, "url.PathEscape("+values[seg.Name.String()]+")")
			current = ""
		}
	}
	if current != "" {
		pieces = append(pieces, strconv.Quote(current))
	}
	if len(pieces) == 0 {
		return `"/"`
	}
	return strings.Join(pieces, " + ")
}

// buildOps converts the route table in table order: templates sorted,
// verbs in canonical order within each template.
func buildOps(model *ir.Model) []opView {
	ops := make([]opView, 0, model.Routes.Len())
	for _, r := range model.Routes.All() {
		ops = append(ops, buildOp(r, model.Types))
	}
	return ops
}

// hasErrors reports whether any operation declares an error taxonomy.
func hasErrors(ops []opView) bool {
	for _, op := range ops {
		if op.ErrType != "" {
			return true
		}
	}
	return false
}

// The need* helpers gate the client artifact's imports: an import only
// appears when some operation produces code that uses it.

func needBytes(ops []opView) bool {
	for _, op := range ops {
		if op.HasBody {
			return true
		}
	}
	return false
}

func needJSON(ops []opView) bool {
	for _, op := range ops {
		if op.HasBody || op.HasResult {
			return true
		}
		for _, v := range op.ErrVariants {
			if v.HasPayload {
				return true
			}
		}
	}
	return needJSONText(ops)
}

func needJSONText(ops []opView) bool {
	for _, op := range ops {
		for _, p := range op.PathParams {
			if p.Text == "jsonValue" {
				return true
			}
		}
		for _, p := range op.QueryParams {
			if p.Text == "jsonValue" {
				return true
			}
		}
	}
	return false
}

func needURL(ops []opView) bool {
	for _, op := range ops {
		if len(op.PathParams) > 0 || len(op.QueryParams) > 0 {
			return true
		}
	}
	return false
}
