// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

// Package ir defines the intermediate representation produced by
// compiling an API description: a TypeMap of named type declarations
// and a RouteTable of validated operations. Both are built once per
// compilation and read-only afterwards; emitters consume them without
// re-validation. The package also owns the validated name kinds
// (Identifier, TypeName) and the error taxonomy shared by the whole
// pipeline.
package ir

// Model is the complete compilation result handed to emitters.
type Model struct {
	// Types is the named type table.
	Types *TypeMap

	// Routes is the operation table.
	Routes *RouteTable
}
