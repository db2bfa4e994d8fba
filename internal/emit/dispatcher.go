// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package emit

import "github.com/jayvdb/hsr/pkg/ir"

func init() {
	MustRegister(dispatcherEmitter{})
}

// dispatcherEmitter renders one http.HandlerFunc adapter per route:
// bind path and query parameters, decode the JSON body, call the
// Handler method, map its error taxonomy to declared statuses, and
// encode the success response.
type dispatcherEmitter struct{}

func (dispatcherEmitter) Name() string { return "dispatcher" }

func (dispatcherEmitter) Filename() string { return "dispatcher_gen.go" }

func (dispatcherEmitter) Emit(model *ir.Model, opts Options) ([]byte, error) {
	ops := buildOps(model)
	data := struct {
		Package   string
		Ops       []opView
		HasErrors bool
	}{
		Package:   opts.packageName(),
		Ops:       ops,
		HasErrors: hasErrors(ops),
	}
	return render("dispatcher.go.tpl", data)
}
