// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethod_AllowsBody(t *testing.T) {
	tests := []struct {
		method     Method
		allowsBody bool
	}{
		{MethodGet, false},
		{MethodHead, false},
		{MethodOptions, false},
		{MethodTrace, false},
		{MethodPost, true},
		{MethodPut, true},
		{MethodPatch, true},
		{MethodDelete, true},
	}

	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowsBody, tt.method.AllowsBody())
		})
	}
}

func TestMethods_CanonicalOrder(t *testing.T) {
	ms := Methods()
	require.Len(t, ms, 8)

	// Body-less verbs come first.
	for _, m := range ms[:4] {
		assert.False(t, m.AllowsBody())
	}
	for _, m := range ms[4:] {
		assert.True(t, m.AllowsBody())
	}
}

func TestRoutePath_Render(t *testing.T) {
	tests := []struct {
		name     string
		segments []PathSegment
		expected string
	}{
		{
			name:     "root",
			segments: nil,
			expected: "/",
		},
		{
			name: "literals only",
			segments: []PathSegment{
				LiteralSegment("pets"),
			},
			expected: "/pets",
		},
		{
			name: "literal then parameter",
			segments: []PathSegment{
				LiteralSegment("pets"),
				ParameterSegment(mustIdentifier(t, "petId")),
			},
			expected: "/pets/{petId}",
		},
		{
			name: "parameters then literals",
			segments: []PathSegment{
				ParameterSegment(mustIdentifier(t, "a")),
				ParameterSegment(mustIdentifier(t, "b")),
				LiteralSegment("a"),
				LiteralSegment("b"),
			},
			expected: "/{a}/{b}/a/b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewRoutePath(tt.segments)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.Render())
		})
	}
}

func TestNewRoutePath_RejectsRepeatedParameters(t *testing.T) {
	_, err := NewRoutePath([]PathSegment{
		ParameterSegment(mustIdentifier(t, "id")),
		LiteralSegment("sub"),
		ParameterSegment(mustIdentifier(t, "id")),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedPath)
}

func TestRoutePath_Parameters(t *testing.T) {
	p, err := NewRoutePath([]PathSegment{
		LiteralSegment("users"),
		ParameterSegment(mustIdentifier(t, "userId")),
		LiteralSegment("pets"),
		ParameterSegment(mustIdentifier(t, "petId")),
	})
	require.NoError(t, err)

	params := p.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "user_id", params[0].String())
	assert.Equal(t, "pet_id", params[1].String())
}

func TestErrorName(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected string
	}{
		{
			name:     "not found",
			status:   404,
			expected: "NotFound",
		},
		{
			name:     "unauthorized",
			status:   401,
			expected: "Unauthorized",
		},
		{
			name:     "payment required",
			status:   402,
			expected: "PaymentRequired",
		},
		{
			name:     "unprocessable entity",
			status:   422,
			expected: "UnprocessableEntity",
		},
		{
			name:     "internal server error",
			status:   500,
			expected: "InternalServerError",
		},
		{
			name:     "teapot phrase does not normalize cleanly",
			status:   418,
			expected: "E418",
		},
		{
			name:     "unknown status",
			status:   430,
			expected: "E430",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorName(tt.status).String())
		})
	}
}

func TestRouteTable_Insert(t *testing.T) {
	table := NewRouteTable()

	petsPath, err := NewRoutePath([]PathSegment{LiteralSegment("pets")})
	require.NoError(t, err)

	getAll := Route{
		OperationID: mustIdentifier(t, "getAllPets"),
		Method:      MethodGet,
		Path:        petsPath,
		Success:     Response{Status: 200},
	}
	create := Route{
		OperationID: mustIdentifier(t, "createPet"),
		Method:      MethodPost,
		Path:        petsPath,
		Success:     Response{Status: 201},
	}

	require.NoError(t, table.Insert("/pets", []Route{getAll, create}))
	assert.Equal(t, 2, table.Len())

	routes := table.Routes("/pets")
	require.Len(t, routes, 2)
	assert.Equal(t, MethodGet, routes[0].Method)
	assert.Equal(t, MethodPost, routes[1].Method)
}

func TestRouteTable_RejectsDuplicateTemplate(t *testing.T) {
	table := NewRouteTable()

	require.NoError(t, table.Insert("/pets", nil))
	err := table.Insert("/pets", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestRouteTable_RejectsDuplicateOperationID(t *testing.T) {
	table := NewRouteTable()

	r := Route{OperationID: mustIdentifier(t, "getPet")}
	require.NoError(t, table.Insert("/pets", []Route{r}))

	err := table.Insert("/owners", []Route{r})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestRouteTable_TemplatesSorted(t *testing.T) {
	table := NewRouteTable()

	require.NoError(t, table.Insert("/pets/{petId}", nil))
	require.NoError(t, table.Insert("/owners", nil))
	require.NoError(t, table.Insert("/pets", nil))

	assert.Equal(t, []string{"/owners", "/pets", "/pets/{petId}"}, table.Templates())
}
