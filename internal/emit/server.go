// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package emit

import "github.com/jayvdb/hsr/pkg/ir"

func init() {
	MustRegister(serverEmitter{})
}

// serverEmitter renders the routing table: a ServeMux constructor
// mounting every adapter on its "<VERB> <template>" pattern, in table
// order, plus a ListenAndServe entry point.
type serverEmitter struct{}

func (serverEmitter) Name() string { return "server" }

func (serverEmitter) Filename() string { return "server_gen.go" }

func (serverEmitter) Emit(model *ir.Model, opts Options) ([]byte, error) {
	data := struct {
		Package string
		Addr    string
		Ops     []opView
	}{
		Package: opts.packageName(),
		Addr:    opts.serverAddr(),
		Ops:     buildOps(model),
	}
	return render("server.go.tpl", data)
}
