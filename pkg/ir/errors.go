// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package ir

import "errors"

// Compilation failures are reported as one of these sentinel errors,
// wrapped with the offending reference, path, or name verbatim. They are
// never retried: each one marks malformed input, and the whole run stops
// at the first occurrence.
var (
	// ErrBadReference marks a pointer grammar violation, a dangling
	// target, or a reference chain deeper than the resolver allows.
	ErrBadReference = errors.New("bad reference")

	// ErrUnsupportedKind marks a schema shape the type model does not
	// cover (oneOf, anyOf, not, multi-valued types, unknown types).
	ErrUnsupportedKind = errors.New("unsupported schema kind")

	// ErrEmptyStruct marks an object schema with zero usable fields.
	ErrEmptyStruct = errors.New("object schema has no fields")

	// ErrNotStructurallyTyped marks an inline object schema in a
	// position that only admits named or primitive types.
	ErrNotStructurallyTyped = errors.New("inline object schema must have a name")

	// ErrMalformedPath marks a path template that fails the segment
	// grammar.
	ErrMalformedPath = errors.New("malformed path")

	// ErrNoOperationID marks an operation missing its identifier.
	ErrNoOperationID = errors.New("missing operation id")

	// ErrBadIdentifier marks a name that is neither snake_case nor
	// mixedCase.
	ErrBadIdentifier = errors.New("not a valid identifier")

	// ErrBadTypeName marks a name that is not CamelCase.
	ErrBadTypeName = errors.New("not a valid type name")

	// ErrDuplicateName marks a merge or route-table collision.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrBadStatusCode marks a response status outside the supported
	// success and error ranges, or one that does not parse at all.
	ErrBadStatusCode = errors.New("unsupported status code")

	// ErrOneSuccess marks a response table without exactly one success
	// status in the 200..300 range.
	ErrOneSuccess = errors.New("expected exactly one success response")

	// ErrUnsupportedContent marks a request or response body that is
	// not a single application/json media type with a schema.
	ErrUnsupportedContent = errors.New("content type must be application/json")

	// ErrBodyNotAllowed marks a request body declared on a body-less
	// method.
	ErrBodyNotAllowed = errors.New("request body not allowed")

	// ErrOptionalPathParam marks a path parameter not declared
	// required.
	ErrOptionalPathParam = errors.New("path parameters must be required")

	// ErrUnboundParameter marks a mismatch between declared path
	// parameters and the path's placeholders.
	ErrUnboundParameter = errors.New("path parameter not bound to placeholder")
)
