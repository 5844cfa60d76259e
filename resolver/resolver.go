package resolver

import "reflect"

// ArgumentResolver maps a requested parameter type to an injectable value.
// It is a value type; only behavior matters, never identity. The zero
// ArgumentResolver resolves nothing and serves as the default-empty resolver.
type ArgumentResolver struct {
	fn func(reflect.Type) (any, bool)
}

// Resolve returns the value bound to exactly t, or (nil, false) when the
// resolver holds no binding for it. Absence is not a failure; the
// instantiator injects the parameter's zero value instead.
func (r ArgumentResolver) Resolve(t reflect.Type) (any, bool) {
	if r.fn == nil || t == nil {
		return nil, false
	}
	return r.fn(t)
}

// None returns the default-empty resolver.
func None() ArgumentResolver {
	return ArgumentResolver{}
}

// Of binds exactly type T to a literal value. Matching is by exact type
// identity; no supertype or subtype coercion occurs.
func Of[T any](value T) ArgumentResolver {
	return OfType(reflect.TypeOf((*T)(nil)).Elem(), value)
}

// OfType binds exactly t to a literal value.
func OfType(t reflect.Type, value any) ArgumentResolver {
	return ArgumentResolver{fn: func(requested reflect.Type) (any, bool) {
		if requested == t {
			return value, true
		}
		return nil, false
	}}
}

// Supplied binds exactly type T to a supplier invoked anew on every resolve
// call; the result is never memoized.
func Supplied[T any](supplier func() T) ArgumentResolver {
	return OfSupplied(reflect.TypeOf((*T)(nil)).Elem(), func() any { return supplier() })
}

// OfSupplied binds exactly t to a supplier invoked anew on every resolve call.
func OfSupplied(t reflect.Type, supplier func() any) ArgumentResolver {
	return ArgumentResolver{fn: func(requested reflect.Type) (any, bool) {
		if requested == t {
			return supplier(), true
		}
		return nil, false
	}}
}

// From adapts an arbitrary type-to-value function into a resolver.
func From(fn func(reflect.Type) (any, bool)) ArgumentResolver {
	return ArgumentResolver{fn: fn}
}

// And composes this resolver with another: the left side is asked first and
// the right side only for types the left side did not match. Precedence is
// therefore left-to-right and transitive across repeated chaining; the
// leftmost matching binding always wins.
func (r ArgumentResolver) And(other ArgumentResolver) ArgumentResolver {
	left, right := r, other
	return ArgumentResolver{fn: func(requested reflect.Type) (any, bool) {
		if value, ok := left.Resolve(requested); ok {
			return value, true
		}
		return right.Resolve(requested)
	}}
}

// AndValue appends a literal binding with lower precedence than every
// binding already in the chain.
func (r ArgumentResolver) AndValue(t reflect.Type, value any) ArgumentResolver {
	return r.And(OfType(t, value))
}

// AndSupplied appends a supplier binding with lower precedence than every
// binding already in the chain.
func (r ArgumentResolver) AndSupplied(t reflect.Type, supplier func() any) ArgumentResolver {
	return r.And(OfSupplied(t, supplier))
}
