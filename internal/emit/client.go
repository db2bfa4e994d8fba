// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package emit

import "github.com/jayvdb/hsr/pkg/ir"

func init() {
	MustRegister(clientEmitter{})
}

// clientEmitter renders an HTTP client implementing the Handler
// interface: request paths from the route templates, query encoding,
// JSON bodies, and error-variant decoding by response status.
type clientEmitter struct{}

func (clientEmitter) Name() string { return "client" }

func (clientEmitter) Filename() string { return "client_gen.go" }

func (clientEmitter) Emit(model *ir.Model, opts Options) ([]byte, error) {
	ops := buildOps(model)
	data := struct {
		Package      string
		Ops          []opView
		NeedBytes    bool
		NeedJSON     bool
		NeedJSONText bool
		NeedURL      bool
	}{
		Package:      opts.packageName(),
		Ops:          ops,
		NeedBytes:    needBytes(ops),
		NeedJSON:     needJSON(ops),
		NeedJSONText: needJSONText(ops),
		NeedURL:      needURL(ops),
	}
	return render("client.go.tpl", data)
}
