package factory

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/factorykit/errors"
	"github.com/c360/factorykit/resolver"
	"github.com/c360/factorykit/typeregistry"
)

type gadget struct {
	label string
	extra bool
}

func newGadget(label string) *gadget              { return &gadget{label: label} }
func newGadgetExtra(label string, e bool) *gadget { return &gadget{label: label, extra: e} }

func TestForTypeSelection(t *testing.T) {
	tests := []struct {
		name         string
		constructors []typeregistry.Constructor
		wantErr      bool
	}{
		{
			name: "single exported among several unexported",
			constructors: []typeregistry.Constructor{
				{Name: "newGadget", Fn: newGadget},
				{Name: "NewGadget", Fn: newGadget},
				{Name: "newGadgetExtra", Fn: newGadgetExtra},
			},
		},
		{
			name: "sole unexported constructor",
			constructors: []typeregistry.Constructor{
				{Name: "newGadget", Fn: newGadget},
			},
		},
		{
			name: "sole exported constructor",
			constructors: []typeregistry.Constructor{
				{Name: "NewGadget", Fn: newGadget},
			},
		},
		{
			name: "two ambiguous unexported constructors",
			constructors: []typeregistry.Constructor{
				{Name: "newGadget", Fn: newGadget},
				{Name: "newGadgetExtra", Fn: newGadgetExtra},
			},
			wantErr: true,
		},
		{
			name: "two exported constructors",
			constructors: []typeregistry.Constructor{
				{Name: "NewGadget", Fn: newGadget},
				{Name: "MakeGadget", Fn: newGadget},
			},
			wantErr: true,
		},
		{
			name:         "no constructors",
			constructors: nil,
			wantErr:      true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			desc := typeregistry.For[*gadget](test.constructors...)
			inst, err := ForType(desc)
			if test.wantErr {
				require.Error(t, err)
				assert.Nil(t, inst)
				assert.ErrorIs(t, err, errors.ErrNoSuitableConstructor)
				assert.Contains(t, err.Error(), "no suitable constructor")
				assert.Contains(t, err.Error(), desc.Name)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, desc.Name, inst.TypeName())
		})
	}
}

func TestForTypePrefersExportedConstructor(t *testing.T) {
	desc := typeregistry.For[*gadget](
		typeregistry.Constructor{Name: "newGadgetExtra", Fn: newGadgetExtra},
		typeregistry.Constructor{Name: "NewGadget", Fn: newGadget},
	)

	inst, err := ForType(desc)
	require.NoError(t, err)

	// The exported single-parameter constructor was selected, not the
	// two-parameter unexported one.
	assert.Equal(t, []reflect.Type{reflect.TypeOf((*string)(nil)).Elem()}, inst.ParameterTypes())
}

func TestInstantiateInjectsResolvedArguments(t *testing.T) {
	inst, err := ForType(typeregistry.For[*gadget](
		typeregistry.Constructor{Name: "newGadget", Fn: newGadget},
	))
	require.NoError(t, err)

	obj, err := inst.Instantiate(resolver.Of("injected"))
	require.NoError(t, err)

	g, ok := obj.(*gadget)
	require.True(t, ok)
	assert.Equal(t, "injected", g.label)
}

func TestInstantiateZeroValueForUnresolvedParameters(t *testing.T) {
	inst, err := ForType(typeregistry.For[*gadget](
		typeregistry.Constructor{Name: "newGadgetExtra", Fn: newGadgetExtra},
	))
	require.NoError(t, err)

	// Only the string parameter is bound; bool stays at its zero value.
	obj, err := inst.Instantiate(resolver.Of("partial"))
	require.NoError(t, err)

	g := obj.(*gadget)
	assert.Equal(t, "partial", g.label)
	assert.False(t, g.extra)
}

func TestInstantiateDefaultConstructorNeedsNoBindings(t *testing.T) {
	inst, err := ForType(typeregistry.For[*gadget](
		typeregistry.Constructor{Name: "newDefaultGadget", Fn: func() *gadget { return &gadget{} }},
	))
	require.NoError(t, err)

	obj, err := inst.Instantiate(resolver.None())
	require.NoError(t, err)
	assert.NotNil(t, obj)
}

func TestInstantiateConstructorErrorPropagated(t *testing.T) {
	cause := fmt.Errorf("dependency unavailable")
	inst, err := ForType(typeregistry.For[*gadget](
		typeregistry.Constructor{Name: "newGadget", Fn: func() (*gadget, error) { return nil, cause }},
	))
	require.NoError(t, err)

	obj, err := inst.Instantiate(resolver.None())
	require.Error(t, err)
	assert.Nil(t, obj)
	assert.ErrorIs(t, err, errors.ErrInstantiationFailed)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), inst.TypeName())
}

func TestInstantiateConstructorPanicRecovered(t *testing.T) {
	inst, err := ForType(typeregistry.For[*gadget](
		typeregistry.Constructor{Name: "newGadget", Fn: func() *gadget { panic("boom") }},
	))
	require.NoError(t, err)

	obj, err := inst.Instantiate(resolver.None())
	require.Error(t, err)
	assert.Nil(t, obj)
	assert.ErrorIs(t, err, errors.ErrInstantiationFailed)
	assert.Contains(t, err.Error(), "boom")
}

func TestInstantiateRejectsNonAssignableResolvedValue(t *testing.T) {
	inst, err := ForType(typeregistry.For[*gadget](
		typeregistry.Constructor{Name: "newGadget", Fn: newGadget},
	))
	require.NoError(t, err)

	// A From-adapted resolver can hand back any dynamic type; guard it.
	bad := resolver.From(func(reflect.Type) (any, bool) { return 42, true })
	obj, err := inst.Instantiate(bad)
	require.Error(t, err)
	assert.Nil(t, obj)
	assert.ErrorIs(t, err, errors.ErrInstantiationFailed)
}

func TestInstantiateNilInterfaceValueBecomesZero(t *testing.T) {
	type holder struct{ s fmt.Stringer }
	inst, err := ForType(typeregistry.For[*holder](
		typeregistry.Constructor{Name: "newHolder", Fn: func(s fmt.Stringer) *holder { return &holder{s: s} }},
	))
	require.NoError(t, err)

	obj, err := inst.Instantiate(resolver.Of[fmt.Stringer](nil))
	require.NoError(t, err)
	assert.Nil(t, obj.(*holder).s)
}

func TestInstantiateIsReusable(t *testing.T) {
	inst, err := ForType(typeregistry.For[*gadget](
		typeregistry.Constructor{Name: "newGadget", Fn: newGadget},
	))
	require.NoError(t, err)

	first, err := inst.Instantiate(resolver.Of("one"))
	require.NoError(t, err)
	second, err := inst.Instantiate(resolver.Of("two"))
	require.NoError(t, err)

	assert.Equal(t, "one", first.(*gadget).label)
	assert.Equal(t, "two", second.(*gadget).label)
	assert.NotSame(t, first, second)
}
