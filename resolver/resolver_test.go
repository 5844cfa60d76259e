package resolver

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stringAlias shares string's underlying type but is a distinct type; exact
// matching must not conflate the two.
type stringAlias string

func resolve(t *testing.T, r ArgumentResolver, typ reflect.Type) any {
	t.Helper()
	value, ok := r.Resolve(typ)
	require.True(t, ok, "expected binding for %s", typ)
	return value
}

func assertAbsent(t *testing.T, r ArgumentResolver, typ reflect.Type) {
	t.Helper()
	value, ok := r.Resolve(typ)
	assert.False(t, ok, "expected no binding for %s", typ)
	assert.Nil(t, value)
}

func TestOfResolvesExactTypeOnly(t *testing.T) {
	r := Of[fmt.Stringer](nil)
	_, ok := r.Resolve(reflect.TypeOf((*fmt.Stringer)(nil)).Elem())
	assert.True(t, ok)

	r = Of("test")
	assert.Equal(t, "test", resolve(t, r, reflect.TypeOf((*string)(nil)).Elem()))
	assertAbsent(t, r, reflect.TypeOf((*stringAlias)(nil)).Elem())
	assertAbsent(t, r, reflect.TypeOf((*int)(nil)).Elem())
}

func TestSuppliedInvokesSupplierEveryResolve(t *testing.T) {
	calls := 0
	r := Supplied(func() int {
		calls++
		return calls
	})

	assert.Equal(t, 1, resolve(t, r, reflect.TypeOf((*int)(nil)).Elem()))
	assert.Equal(t, 2, resolve(t, r, reflect.TypeOf((*int)(nil)).Elem()))
	assert.Equal(t, 2, calls)

	// Absence never touches the supplier.
	assertAbsent(t, r, reflect.TypeOf((*string)(nil)).Elem())
	assert.Equal(t, 2, calls)
}

func TestFromAdaptsFunction(t *testing.T) {
	r := From(func(requested reflect.Type) (any, bool) {
		if requested == reflect.TypeOf((*string)(nil)).Elem() {
			return "test", true
		}
		return nil, false
	})

	assert.Equal(t, "test", resolve(t, r, reflect.TypeOf((*string)(nil)).Elem()))
	assertAbsent(t, r, reflect.TypeOf((*stringAlias)(nil)).Elem())
	assertAbsent(t, r, reflect.TypeOf((*int)(nil)).Elem())
}

func TestAndValueReturnsComposite(t *testing.T) {
	r := Of("test").AndValue(reflect.TypeOf((*int)(nil)).Elem(), 123)

	assert.Equal(t, "test", resolve(t, r, reflect.TypeOf((*string)(nil)).Elem()))
	assertAbsent(t, r, reflect.TypeOf((*stringAlias)(nil)).Elem())
	assert.Equal(t, 123, resolve(t, r, reflect.TypeOf((*int)(nil)).Elem()))
}

func TestAndValueSameTypeResolvesFirst(t *testing.T) {
	r := Of("test").AndValue(reflect.TypeOf((*string)(nil)).Elem(), "ignore")
	assert.Equal(t, "test", resolve(t, r, reflect.TypeOf((*string)(nil)).Elem()))
}

func TestAndSuppliedReturnsComposite(t *testing.T) {
	r := Of("test").AndSupplied(reflect.TypeOf((*int)(nil)).Elem(), func() any { return 123 })

	assert.Equal(t, "test", resolve(t, r, reflect.TypeOf((*string)(nil)).Elem()))
	assert.Equal(t, 123, resolve(t, r, reflect.TypeOf((*int)(nil)).Elem()))
}

func TestAndSuppliedSameTypeResolvesFirstWithoutInvoking(t *testing.T) {
	invoked := false
	r := Of("test").AndSupplied(reflect.TypeOf((*string)(nil)).Elem(), func() any {
		invoked = true
		return "ignore"
	})

	assert.Equal(t, "test", resolve(t, r, reflect.TypeOf((*string)(nil)).Elem()))
	assert.False(t, invoked, "shadowed supplier must not run")
}

func TestAndResolverReturnsComposite(t *testing.T) {
	r := Of("test").AndValue(reflect.TypeOf((*int)(nil)).Elem(), 123)
	r = r.And(Of("ignore").AndValue(reflect.TypeOf((*int64)(nil)).Elem(), int64(234)))

	assert.Equal(t, "test", resolve(t, r, reflect.TypeOf((*string)(nil)).Elem()))
	assertAbsent(t, r, reflect.TypeOf((*stringAlias)(nil)).Elem())
	assert.Equal(t, 123, resolve(t, r, reflect.TypeOf((*int)(nil)).Elem()))
	assert.Equal(t, int64(234), resolve(t, r, reflect.TypeOf((*int64)(nil)).Elem()))
}

func TestZeroResolverResolvesNothing(t *testing.T) {
	var r ArgumentResolver
	assertAbsent(t, r, reflect.TypeOf((*string)(nil)).Elem())

	assertAbsent(t, None(), reflect.TypeOf((*string)(nil)).Elem())
}

func TestZeroResolverComposes(t *testing.T) {
	r := None().AndValue(reflect.TypeOf((*string)(nil)).Elem(), "fallback")
	assert.Equal(t, "fallback", resolve(t, r, reflect.TypeOf((*string)(nil)).Elem()))
}

func TestResolveNilType(t *testing.T) {
	value, ok := Of("test").Resolve(nil)
	assert.False(t, ok)
	assert.Nil(t, value)
}
