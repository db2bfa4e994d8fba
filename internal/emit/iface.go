// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package emit

import "github.com/jayvdb/hsr/pkg/ir"

func init() {
	MustRegister(ifaceEmitter{})
}

// ifaceEmitter renders the Handler interface, one method per route,
// plus the error taxonomy type of every route that declares error
// responses.
type ifaceEmitter struct{}

func (ifaceEmitter) Name() string { return "interface" }

func (ifaceEmitter) Filename() string { return "handler_gen.go" }

func (ifaceEmitter) Emit(model *ir.Model, opts Options) ([]byte, error) {
	data := struct {
		Package string
		Ops     []opView
	}{
		Package: opts.packageName(),
		Ops:     buildOps(model),
	}
	return render("iface.go.tpl", data)
}
