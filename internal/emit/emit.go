// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

// Package emit renders Go source artifacts from a compiled model.
//
// Every emitter is a pure function over the model: same model, same
// options, same bytes. The five stock emitters (types, interface,
// dispatcher, server, client) share one naming contract, so the
// operation identifier ties together the interface method, its
// dispatcher adapter, the routing table entry, and the client method.
package emit

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/jayvdb/hsr/pkg/ir"
)

//go:embed templates/*.go.tpl
var templateFS embed.FS

// Options configures one emission run. The zero value is usable.
type Options struct {
	// Package is the package clause of every emitted file. Empty
	// selects DefaultPackage.
	Package string

	// Addr is the fallback listen address baked into the server
	// artifact. Empty selects DefaultServerAddr.
	Addr string
}

// DefaultPackage is the package clause used when none is configured.
const DefaultPackage = "api"

// DefaultServerAddr is the listen address baked into the server
// artifact when none is configured.
const DefaultServerAddr = ":8080"

func (o Options) packageName() string {
	if o.Package == "" {
		return DefaultPackage
	}
	return o.Package
}

func (o Options) serverAddr() string {
	if o.Addr == "" {
		return DefaultServerAddr
	}
	return o.Addr
}

// Artifact is one rendered output file.
type Artifact struct {
	// Name is the emitter that produced the artifact.
	Name string

	// Filename is the artifact's file name inside the output
	// directory.
	Filename string

	// Source is the rendered Go source, unformatted.
	Source []byte
}

// Emitter renders one artifact from a model.
type Emitter interface {
	// Name is the registry key.
	Name() string

	// Filename returns the artifact's output file name.
	Filename() string

	// Emit renders the artifact.
	Emit(model *ir.Model, opts Options) ([]byte, error)
}

// render executes the named embedded template over data.
func render(name string, data any) ([]byte, error) {
	text, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}
	tpl, err := template.New(name).Parse(string(text))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("exec template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// EmitAll runs the named emitters from the global registry in the
// given order and collects their artifacts. An unknown name fails the
// whole run before any emitter executes.
func EmitAll(names []string, model *ir.Model, opts Options) ([]Artifact, error) {
	emitters := make([]Emitter, 0, len(names))
	for _, name := range names {
		e := Get(name)
		if e == nil {
			return nil, fmt.Errorf("unknown emitter %q (have %v)", name, List())
		}
		emitters = append(emitters, e)
	}

	artifacts := make([]Artifact, 0, len(emitters))
	for _, e := range emitters {
		source, err := e.Emit(model, opts)
		if err != nil {
			return nil, fmt.Errorf("emitter %s: %w", e.Name(), err)
		}
		artifacts = append(artifacts, Artifact{
			Name:     e.Name(),
			Filename: e.Filename(),
			Source:   source,
		})
	}
	return artifacts, nil
}
