// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package emit

import (
	"fmt"
	"go/token"

	"github.com/jayvdb/hsr/pkg/ir"
)

// The naming contract shared by every stock emitter. The interface
// method, dispatcher adapter, routing table entry, and client method
// for one route all derive their names from the same operation
// identifier; types and wire names derive from the same field
// identifiers. Emitters must not invent names outside these helpers.

// methodName renders an operation identifier as the exported Go method
// shared by the service interface and the client.
func methodName(id ir.Identifier) string {
	return id.Camel()
}

// errTypeName names the error taxonomy type of an operation.
func errTypeName(id ir.Identifier) string {
	return id.Camel() + "Err"
}

// adapterName names the unexported dispatcher adapter for an operation.
func adapterName(id ir.Identifier) string {
	return "handle" + id.Camel()
}

// fieldName renders a field identifier as an exported Go struct field.
func fieldName(id ir.Identifier) string {
	return id.Camel()
}

// reservedParamNames are locals the generated method and adapter
// bodies declare for themselves. A parameter that would collide is
// suffixed instead of shadowing them.
var reservedParamNames = map[string]struct{}{
	"base": {}, "buf": {}, "c": {}, "ctx": {}, "err": {}, "h": {},
	"hc": {}, "mux": {}, "ok": {}, "opErr": {}, "path": {}, "q": {},
	"r": {}, "raw": {}, "req": {}, "resp": {}, "result": {}, "u": {},
	"v": {}, "w": {}, bodyFallbackName: {},
}

// paramName renders a parameter identifier as a Go parameter name,
// stepping around Go keywords and the generated bodies' own locals.
func paramName(id ir.Identifier) string {
	name := id.LowerCamel()
	if token.IsKeyword(name) {
		return name + "Arg"
	}
	if _, reserved := reservedParamNames[name]; reserved {
		return name + "Arg"
	}
	return name
}

// bodyFallbackName names the request body parameter when the body type
// carries no usable name of its own.
const bodyFallbackName = "payload"

// bodyParamName names the request body parameter: the body type's own
// name in mixedCase when the body is a named type, else the fallback.
func bodyParamName(t ir.Type) string {
	if t.Kind == ir.KindNamed {
		return t.Name.LowerCamel()
	}
	return bodyFallbackName
}

// wireName is the name a field or parameter travels under: the
// identifier's canonical form.
func wireName(id ir.Identifier) string {
	return id.String()
}

// goType renders an IR type as Go source. Optional renders as a
// pointer, so absence stays distinguishable from a zero value.
func goType(t ir.Type) string {
	switch t.Kind {
	case ir.KindString:
		return "string"
	case ir.KindNumber:
		return "float64"
	case ir.KindInteger:
		return "int64"
	case ir.KindBoolean:
		return "bool"
	case ir.KindAny:
		return "any"
	case ir.KindArray:
		return "[]" + goType(*t.Elem)
	case ir.KindOptional:
		return "*" + goType(*t.Elem)
	case ir.KindNamed:
		return t.Name.String()
	default:
		panic(fmt.Sprintf("unknown type kind %v", t.Kind))
	}
}

// underlyingKind chases named aliases through the type map until a
// non-alias is reached. A name that points at a struct declaration, or
// at nothing, stays Named. The hop bound mirrors the table size; a
// well-formed model cannot cycle, so the bound is never the limit.
func underlyingKind(t ir.Type, types *ir.TypeMap) ir.Kind {
	for hops := 0; hops <= types.Len(); hops++ {
		if t.Kind != ir.KindNamed {
			return t.Kind
		}
		decl, ok := types.Get(t.Name)
		if !ok || decl.IsStruct() {
			return ir.KindNamed
		}
		t = decl.Alias
	}
	return ir.KindNamed
}

// binderFor picks the generated dispatcher's binding helper for a
// parameter type. Primitives (and aliases of primitives) bind from
// their text form; everything else binds through JSON.
func binderFor(t ir.Type, types *ir.TypeMap) string {
	switch underlyingKind(t, types) {
	case ir.KindString:
		return "bindString"
	case ir.KindInteger:
		return "bindInt"
	case ir.KindNumber:
		return "bindFloat"
	case ir.KindBoolean:
		return "bindBool"
	default:
		return "bindJSON[" + goType(t) + "]"
	}
}

// textFuncFor picks the generated client's rendering helper for a
// parameter type, the inverse of binderFor: primitives render through
// textValue, everything else through jsonValue.
func textFuncFor(t ir.Type, types *ir.TypeMap) string {
	switch underlyingKind(t, types) {
	case ir.KindString, ir.KindInteger, ir.KindNumber, ir.KindBoolean:
		return "textValue"
	default:
		return "jsonValue"
	}
}

// jsonTag renders a field's struct tag. Optional fields are dropped
// from the payload when unset.
func jsonTag(f ir.Field) string {
	if f.Type.IsOptional() {
		return fmt.Sprintf("`json:%q`", wireName(f.Name)+",omitempty")
	}
	return fmt.Sprintf("`json:%q`", wireName(f.Name))
}

// muxPattern renders a route as a net/http ServeMux pattern, verb
// included. The path placeholders match the route template rendering,
// so r.PathValue sees the same names the client substitutes.
func muxPattern(r ir.Route) string {
	return string(r.Method) + " " + r.Path.Render()
}
