// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayvdb/hsr/pkg/ir"
)

// mockEmitter is a test implementation of Emitter.
type mockEmitter struct {
	name     string
	filename string
	source   []byte
	err      error
}

func (m *mockEmitter) Name() string {
	return m.name
}

func (m *mockEmitter) Filename() string {
	return m.filename
}

func (m *mockEmitter) Emit(model *ir.Model, opts Options) ([]byte, error) {
	return m.source, m.err
}

func TestRegistry_Register(t *testing.T) {
	tests := []struct {
		name        string
		emitter     Emitter
		wantErr     bool
		errContains string
	}{
		{
			name: "register valid emitter",
			emitter: &mockEmitter{
				name:     "test-emitter",
				filename: "test_gen.go",
			},
			wantErr: false,
		},
		{
			name:        "register nil emitter",
			emitter:     nil,
			wantErr:     true,
			errContains: "nil emitter",
		},
		{
			name: "register empty name",
			emitter: &mockEmitter{
				name: "",
			},
			wantErr:     true,
			errContains: "name cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			err := reg.Register(tt.emitter)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				require.NoError(t, err)
				assert.True(t, reg.Has(tt.emitter.Name()))
			}
		})
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	reg := NewRegistry()

	first := &mockEmitter{name: "duplicate", filename: "a_gen.go"}
	second := &mockEmitter{name: "duplicate", filename: "b_gen.go"}

	require.NoError(t, reg.Register(first))

	err := reg.Register(second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_MustRegister_Panics(t *testing.T) {
	reg := NewRegistry()

	assert.Panics(t, func() {
		reg.MustRegister(nil)
	})
}

func TestRegistry_Get(t *testing.T) {
	reg := NewRegistry()

	e := &mockEmitter{name: "test-emitter", filename: "test_gen.go"}
	require.NoError(t, reg.Register(e))

	got := reg.Get("test-emitter")
	assert.NotNil(t, got)
	assert.Equal(t, "test-emitter", got.Name())

	got = reg.Get("non-existent")
	assert.Nil(t, got)
}

func TestRegistry_List(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(&mockEmitter{name: "charlie"}))
	require.NoError(t, reg.Register(&mockEmitter{name: "alpha"}))
	require.NoError(t, reg.Register(&mockEmitter{name: "bravo"}))

	list := reg.List()
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, list)
}

func TestRegistry_Count(t *testing.T) {
	reg := NewRegistry()

	assert.Equal(t, 0, reg.Count())

	require.NoError(t, reg.Register(&mockEmitter{name: "one"}))
	assert.Equal(t, 1, reg.Count())

	require.NoError(t, reg.Register(&mockEmitter{name: "two"}))
	assert.Equal(t, 2, reg.Count())
}

func TestRegistry_Has(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(&mockEmitter{name: "exists"}))

	assert.True(t, reg.Has("exists"))
	assert.False(t, reg.Has("does-not-exist"))
}

func TestRegistry_Unregister(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(&mockEmitter{name: "to-remove"}))
	assert.True(t, reg.Has("to-remove"))

	err := reg.Unregister("to-remove")
	require.NoError(t, err)
	assert.False(t, reg.Has("to-remove"))

	err = reg.Unregister("non-existent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestGlobalRegistry_StockEmitters(t *testing.T) {
	assert.Equal(t, []string{"client", "dispatcher", "interface", "server", "types"}, List())

	for _, name := range List() {
		e := Get(name)
		require.NotNil(t, e, "stock emitter %s must be registered", name)
		assert.Equal(t, name, e.Name())
		assert.NotEmpty(t, e.Filename())
		assert.True(t, Has(name))
	}
}
