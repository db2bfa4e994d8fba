// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package emit

import "github.com/jayvdb/hsr/pkg/ir"

func init() {
	MustRegister(typesEmitter{})
}

// typesEmitter renders one Go declaration per named type: a struct
// with JSON-tagged exported fields, or a type alias.
type typesEmitter struct{}

func (typesEmitter) Name() string { return "types" }

func (typesEmitter) Filename() string { return "types_gen.go" }

func (typesEmitter) Emit(model *ir.Model, opts Options) ([]byte, error) {
	data := struct {
		Package string
		Decls   []typeDeclView
	}{
		Package: opts.packageName(),
		Decls:   buildTypeDecls(model.Types),
	}
	return render("types.go.tpl", data)
}
