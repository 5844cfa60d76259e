package typeregistry

import (
	"fmt"
	"go/token"
	"reflect"
	"sync"

	"github.com/c360/factorykit/errors"
)

// Constructor is a constructor function registered alongside an
// implementation type. Fn must be a non-variadic function of the form
//
//	func(params...) T
//	func(params...) (T, error)
//
// with T assignable to the implementation type. Name is the constructor's
// declared identifier; an exported Go identifier marks the constructor as
// public, which drives constructor selection.
type Constructor struct {
	Name string
	Fn   any
}

// Exported reports whether the constructor's declared name is exported.
func (c Constructor) Exported() bool {
	return token.IsExported(c.Name)
}

// Type describes a registered implementation type: its name, its Go type and
// the constructor functions its defining package registered for it. Names are
// the currency of registration sources; resolution from name to Type happens
// here rather than through any dynamic type loading.
type Type struct {
	Name         string
	GoType       reflect.Type
	Constructors []Constructor
}

// Registry maps implementation type names to their descriptors. Each
// implementation's own package registers itself explicitly, typically at
// process start, colocated with the type's definition.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Type
}

// NewRegistry creates an empty type registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]Type)}
}

// Register adds a type descriptor to the registry. The descriptor must carry
// a name, a Go type and at least one valid constructor. Registering a name
// twice is an error; registrations are expected to be a one-time, startup
// concern.
func (r *Registry) Register(t Type) error {
	if t.Name == "" {
		return errors.WrapInvalid(errors.ErrInvalidData, "Registry", "Register", "type name validation")
	}
	if t.GoType == nil {
		return errors.WrapInvalid(errors.ErrInvalidData, "Registry", "Register", "go type validation")
	}
	if len(t.Constructors) == 0 {
		return errors.WrapInvalid(
			fmt.Errorf("%w: type %q registered without constructors", errors.ErrInvalidConstructor, t.Name),
			"Registry", "Register", "constructor validation")
	}
	for _, ctor := range t.Constructors {
		if err := validateConstructor(t, ctor); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[t.Name]; exists {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %q", errors.ErrDuplicateType, t.Name),
			"Registry", "Register", "duplicate type check")
	}

	r.types[t.Name] = t
	return nil
}

// MustRegister registers a type descriptor and panics on error. Intended for
// package-level registration at process start, where a bad descriptor is a
// programming error.
func (r *Registry) MustRegister(t Type) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Resolve returns the descriptor registered under name.
func (r *Registry) Resolve(name string) (Type, error) {
	r.mu.RLock()
	t, exists := r.types[name]
	r.mu.RUnlock()

	if !exists {
		return Type{}, errors.WrapInvalid(
			fmt.Errorf("%w: %q", errors.ErrUnknownType, name),
			"Registry", "Resolve", "type lookup")
	}
	return t, nil
}

// Names returns the registered type names (order unspecified).
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	return names
}

// Count returns the number of registered types.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// Reset clears all registrations. Test isolation only.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = make(map[string]Type)
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// validateConstructor checks a constructor's shape at registration time so
// that selection and instantiation never see a malformed function.
func validateConstructor(t Type, ctor Constructor) error {
	if ctor.Name == "" {
		return errors.WrapInvalid(
			fmt.Errorf("%w: type %q has a constructor without a name", errors.ErrInvalidConstructor, t.Name),
			"Registry", "Register", "constructor validation")
	}
	if ctor.Fn == nil {
		return constructorError(t, ctor, "nil function")
	}

	fnType := reflect.TypeOf(ctor.Fn)
	if fnType.Kind() != reflect.Func {
		return constructorError(t, ctor, "not a function")
	}
	if fnType.IsVariadic() {
		return constructorError(t, ctor, "variadic constructors are not supported")
	}
	if fnType.NumOut() == 0 || fnType.NumOut() > 2 {
		return constructorError(t, ctor, "must return (T) or (T, error)")
	}
	if fnType.NumOut() == 2 && !fnType.Out(1).Implements(errType) {
		return constructorError(t, ctor, "second return value must implement error")
	}
	if !fnType.Out(0).AssignableTo(t.GoType) {
		return constructorError(t, ctor,
			fmt.Sprintf("returns %s, not assignable to %s", fnType.Out(0), t.GoType))
	}
	return nil
}

func constructorError(t Type, ctor Constructor, reason string) error {
	return errors.WrapInvalid(
		fmt.Errorf("%w: type %q constructor %q: %s",
			errors.ErrInvalidConstructor, t.Name, ctor.Name, reason),
		"Registry", "Register", "constructor validation")
}

// NameOf returns the canonical registration name of a Go type: its
// package-qualified string form, e.g. "shapes.Circle" or "*shapes.Circle".
func NameOf(t reflect.Type) string {
	return t.String()
}

// NameFor returns the canonical registration name for T. For interface
// capabilities this is the name used as the factory map key.
func NameFor[T any]() string {
	return NameOf(reflect.TypeOf((*T)(nil)).Elem())
}

// For builds a descriptor for implementation type T with the given
// constructors, named canonically via NameFor.
func For[T any](constructors ...Constructor) Type {
	return Type{
		Name:         NameFor[T](),
		GoType:       reflect.TypeOf((*T)(nil)).Elem(),
		Constructors: constructors,
	}
}
