// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

// Package diff compares two compiled models and reports what changed
// in the generated surface: operations and named types.
package diff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jayvdb/hsr/pkg/ir"
)

// ChangeType represents the type of change detected.
type ChangeType string

const (
	// ChangeAdded indicates a new item was added.
	ChangeAdded ChangeType = "added"

	// ChangeRemoved indicates an item was removed.
	ChangeRemoved ChangeType = "removed"

	// ChangeModified indicates an item was modified.
	ChangeModified ChangeType = "modified"
)

// RouteChange represents a change to one operation.
type RouteChange struct {
	Type      ChangeType `yaml:"type" json:"type"`
	Method    string     `yaml:"method" json:"method"`
	Path      string     `yaml:"path" json:"path"`
	Operation string     `yaml:"operation,omitempty" json:"operation,omitempty"`
	Detail    string     `yaml:"detail" json:"detail"`
}

// TypeChange represents a change to one named type.
type TypeChange struct {
	Type   ChangeType `yaml:"type" json:"type"`
	Name   string     `yaml:"name" json:"name"`
	Detail string     `yaml:"detail" json:"detail"`
}

// Result contains the differences between two compiled models.
type Result struct {
	// RouteChanges contains all operation changes.
	RouteChanges []RouteChange `yaml:"routes" json:"routes"`

	// TypeChanges contains all named type changes.
	TypeChanges []TypeChange `yaml:"types" json:"types"`

	// Breaking indicates that existing generated surface was removed
	// or retyped, so code built against the old model can break.
	Breaking bool `yaml:"breaking" json:"breaking"`

	// Summary provides a human-readable summary of changes.
	Summary string `yaml:"summary" json:"summary"`
}

// IsEmpty returns true if there are no differences.
func (r *Result) IsEmpty() bool {
	return len(r.RouteChanges) == 0 && len(r.TypeChanges) == 0
}

// Differ compares two compiled models.
type Differ struct{}

// New creates a new Differ.
func New() *Differ {
	return &Differ{}
}

// Diff compares two models and returns the differences. Changes are
// reported in table order, so the result is deterministic.
func (d *Differ) Diff(a, b *ir.Model) *Result {
	result := &Result{
		RouteChanges: []RouteChange{},
		TypeChanges:  []TypeChange{},
	}

	d.diffRoutes(a.Routes, b.Routes, result)
	d.diffTypes(a.Types, b.Types, result)

	result.Breaking = d.detectBreaking(result)
	result.Summary = d.summarize(result)

	return result
}

func routeKey(r ir.Route) string {
	return string(r.Method) + " " + r.Path.Render()
}

// diffRoutes compares the operations between two route tables.
func (d *Differ) diffRoutes(a, b *ir.RouteTable, result *Result) {
	bByKey := make(map[string]ir.Route, b.Len())
	for _, r := range b.All() {
		bByKey[routeKey(r)] = r
	}

	seen := make(map[string]struct{}, a.Len())
	for _, aRoute := range a.All() {
		key := routeKey(aRoute)
		seen[key] = struct{}{}

		bRoute, exists := bByKey[key]
		if !exists {
			result.RouteChanges = append(result.RouteChanges, RouteChange{
				Type:      ChangeRemoved,
				Method:    string(aRoute.Method),
				Path:      aRoute.Path.Render(),
				Operation: aRoute.OperationID.String(),
				Detail:    fmt.Sprintf("Removed %s", key),
			})
			continue
		}
		if detail := routeDetail(aRoute, bRoute); detail != "" {
			result.RouteChanges = append(result.RouteChanges, RouteChange{
				Type:      ChangeModified,
				Method:    string(bRoute.Method),
				Path:      bRoute.Path.Render(),
				Operation: bRoute.OperationID.String(),
				Detail:    detail,
			})
		}
	}

	for _, bRoute := range b.All() {
		key := routeKey(bRoute)
		if _, exists := seen[key]; !exists {
			result.RouteChanges = append(result.RouteChanges, RouteChange{
				Type:      ChangeAdded,
				Method:    string(bRoute.Method),
				Path:      bRoute.Path.Render(),
				Operation: bRoute.OperationID.String(),
				Detail:    fmt.Sprintf("Added %s", key),
			})
		}
	}
}

// routeDetail names the parts of the operation surface that differ,
// or returns "" when the surfaces match. Doc changes do not count.
func routeDetail(a, b ir.Route) string {
	var parts []string

	if a.OperationID.String() != b.OperationID.String() {
		parts = append(parts, "operation id changed")
	}
	if paramShape(a.PathParams) != paramShape(b.PathParams) {
		parts = append(parts, "path parameters changed")
	}
	if paramShape(a.QueryParams) != paramShape(b.QueryParams) {
		parts = append(parts, "query parameters changed")
	}
	if typeShape(a.Body) != typeShape(b.Body) {
		parts = append(parts, "request body changed")
	}
	if responseShape(a.Success) != responseShape(b.Success) {
		parts = append(parts, "success response changed")
	}
	if responsesShape(a.Errors) != responsesShape(b.Errors) {
		parts = append(parts, "error responses changed")
	}

	return strings.Join(parts, "; ")
}

func paramShape(params []ir.Param) string {
	var b strings.Builder
	for _, p := range params {
		b.WriteString(p.Name.String())
		b.WriteString(":")
		b.WriteString(p.Type.String())
		b.WriteString(",")
	}
	return b.String()
}

func typeShape(t *ir.Type) string {
	if t == nil {
		return "none"
	}
	return t.String()
}

func responseShape(r ir.Response) string {
	return fmt.Sprintf("%d:%s", r.Status, typeShape(r.Type))
}

func responsesShape(rs []ir.Response) string {
	var b strings.Builder
	for _, r := range rs {
		b.WriteString(responseShape(r))
		b.WriteString(",")
	}
	return b.String()
}

// diffTypes compares the named types between two type maps.
func (d *Differ) diffTypes(a, b *ir.TypeMap, result *Result) {
	for _, aDecl := range a.Decls() {
		bDecl, exists := b.Get(aDecl.Name)
		if !exists {
			result.TypeChanges = append(result.TypeChanges, TypeChange{
				Type:   ChangeRemoved,
				Name:   aDecl.Name.String(),
				Detail: fmt.Sprintf("Removed type: %s", aDecl.Name),
			})
			continue
		}
		if declShape(aDecl) != declShape(bDecl) {
			result.TypeChanges = append(result.TypeChanges, TypeChange{
				Type:   ChangeModified,
				Name:   aDecl.Name.String(),
				Detail: fmt.Sprintf("Modified type: %s", aDecl.Name),
			})
		}
	}

	for _, bDecl := range b.Decls() {
		if _, exists := a.Get(bDecl.Name); !exists {
			result.TypeChanges = append(result.TypeChanges, TypeChange{
				Type:   ChangeAdded,
				Name:   bDecl.Name.String(),
				Detail: fmt.Sprintf("Added type: %s", bDecl.Name),
			})
		}
	}
}

// declShape flattens a declaration's structural surface. Docs do not
// count.
func declShape(d ir.TypeDecl) string {
	if !d.IsStruct() {
		return "alias:" + d.Alias.String()
	}
	var b strings.Builder
	b.WriteString("struct:")
	for _, f := range d.Struct.Fields() {
		b.WriteString(f.Name.String())
		b.WriteString(":")
		b.WriteString(f.Type.String())
		b.WriteString(",")
	}
	return b.String()
}

// detectBreaking checks if any changes are breaking. Removing surface
// breaks callers of the old generated code; modifying retypes it.
func (d *Differ) detectBreaking(result *Result) bool {
	for _, change := range result.RouteChanges {
		if change.Type == ChangeRemoved || change.Type == ChangeModified {
			return true
		}
	}
	for _, change := range result.TypeChanges {
		if change.Type == ChangeRemoved || change.Type == ChangeModified {
			return true
		}
	}
	return false
}

// summarize creates a human-readable summary of changes.
func (d *Differ) summarize(result *Result) string {
	if result.IsEmpty() {
		return "No changes detected"
	}

	routeAdded, routeRemoved, routeModified := 0, 0, 0
	for _, c := range result.RouteChanges {
		switch c.Type {
		case ChangeAdded:
			routeAdded++
		case ChangeRemoved:
			routeRemoved++
		case ChangeModified:
			routeModified++
		}
	}

	typeAdded, typeRemoved, typeModified := 0, 0, 0
	for _, c := range result.TypeChanges {
		switch c.Type {
		case ChangeAdded:
			typeAdded++
		case ChangeRemoved:
			typeRemoved++
		case ChangeModified:
			typeModified++
		}
	}

	var parts []string

	if routeAdded > 0 {
		parts = append(parts, fmt.Sprintf("%d operation(s) added", routeAdded))
	}
	if routeRemoved > 0 {
		parts = append(parts, fmt.Sprintf("%d operation(s) removed", routeRemoved))
	}
	if routeModified > 0 {
		parts = append(parts, fmt.Sprintf("%d operation(s) modified", routeModified))
	}
	if typeAdded > 0 {
		parts = append(parts, fmt.Sprintf("%d type(s) added", typeAdded))
	}
	if typeRemoved > 0 {
		parts = append(parts, fmt.Sprintf("%d type(s) removed", typeRemoved))
	}
	if typeModified > 0 {
		parts = append(parts, fmt.Sprintf("%d type(s) modified", typeModified))
	}

	summary := strings.Join(parts, ", ")
	if result.Breaking {
		summary += " [BREAKING CHANGES DETECTED]"
	}
	return summary
}

// Format returns a formatted string representation of the diff.
func Format(result *Result) string {
	if result.IsEmpty() {
		return "No differences found.\n"
	}

	var sb strings.Builder

	sb.WriteString("=== API Diff ===\n\n")
	sb.WriteString(result.Summary)
	sb.WriteString("\n\n")

	if len(result.RouteChanges) > 0 {
		sb.WriteString("--- Operations ---\n")

		changes := make([]RouteChange, len(result.RouteChanges))
		copy(changes, result.RouteChanges)
		sort.Slice(changes, func(i, j int) bool {
			if changes[i].Path != changes[j].Path {
				return changes[i].Path < changes[j].Path
			}
			return changes[i].Method < changes[j].Method
		})

		for _, c := range changes {
			sb.WriteString(fmt.Sprintf("%s%s %s\n", changeSymbol(c.Type), c.Method, c.Path))
			if c.Type == ChangeModified {
				sb.WriteString(fmt.Sprintf("    %s\n", c.Detail))
			}
		}
		sb.WriteString("\n")
	}

	if len(result.TypeChanges) > 0 {
		sb.WriteString("--- Types ---\n")

		changes := make([]TypeChange, len(result.TypeChanges))
		copy(changes, result.TypeChanges)
		sort.Slice(changes, func(i, j int) bool {
			return changes[i].Name < changes[j].Name
		})

		for _, c := range changes {
			sb.WriteString(fmt.Sprintf("%s%s\n", changeSymbol(c.Type), c.Name))
		}
	}

	return sb.String()
}

func changeSymbol(t ChangeType) string {
	switch t {
	case ChangeAdded:
		return "+ "
	case ChangeRemoved:
		return "- "
	case ChangeModified:
		return "~ "
	}
	return "  "
}
