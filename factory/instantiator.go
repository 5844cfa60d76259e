package factory

import (
	"fmt"
	"reflect"

	"github.com/c360/factorykit/errors"
	"github.com/c360/factorykit/resolver"
	"github.com/c360/factorykit/typeregistry"
)

// Instantiator binds the selected constructor of an implementation type to an
// argument resolution strategy. Selection happens once, at ForType time, and
// the resulting Instantiator is reused for every subsequent instantiation.
type Instantiator struct {
	typeName   string
	fn         reflect.Value
	params     []reflect.Type
	returnsErr bool
}

// ForType eagerly selects the single eligible constructor of a registered
// type. The selection rule, in order:
//
//  1. Consider every registered constructor regardless of visibility.
//  2. If exactly one constructor has an exported name, select it.
//  3. Else, if the type has exactly one constructor in total, select it.
//  4. Otherwise fail with ErrNoSuitableConstructor naming the type.
//
// Selection failures surface here, never at Instantiate time.
func ForType(t typeregistry.Type) (*Instantiator, error) {
	selected, err := selectConstructor(t)
	if err != nil {
		return nil, err
	}

	fn := reflect.ValueOf(selected.Fn)
	fnType := fn.Type()
	params := make([]reflect.Type, fnType.NumIn())
	for i := range params {
		params[i] = fnType.In(i)
	}

	return &Instantiator{
		typeName:   t.Name,
		fn:         fn,
		params:     params,
		returnsErr: fnType.NumOut() == 2,
	}, nil
}

// TypeName returns the implementation type name the instantiator builds.
func (i *Instantiator) TypeName() string { return i.typeName }

// ParameterTypes returns the ordered parameter types of the selected
// constructor.
func (i *Instantiator) ParameterTypes() []reflect.Type {
	out := make([]reflect.Type, len(i.params))
	copy(out, i.params)
	return out
}

// Instantiate resolves each constructor parameter through res, binding
// unresolved parameters to their zero value, and invokes the constructor.
// Every invocation failure (a non-assignable resolved value, an error
// returned by the constructor, or a panic inside it) is reported as an
// instantiation failure carrying the implementation type name and the
// original cause.
func (i *Instantiator) Instantiate(res resolver.ArgumentResolver) (instance any, err error) {
	args := make([]reflect.Value, len(i.params))
	for idx, param := range i.params {
		value, ok := res.Resolve(param)
		if !ok || value == nil {
			args[idx] = reflect.Zero(param)
			continue
		}

		rv := reflect.ValueOf(value)
		if !rv.Type().AssignableTo(param) {
			return nil, i.failure(fmt.Errorf(
				"resolved value of type %s is not assignable to parameter %d (%s)",
				rv.Type(), idx, param))
		}
		args[idx] = rv
	}

	defer func() {
		if r := recover(); r != nil {
			instance = nil
			err = i.failure(fmt.Errorf("constructor panic: %v", r))
		}
	}()

	results := i.fn.Call(args)
	if i.returnsErr && !results[1].IsNil() {
		return nil, i.failure(results[1].Interface().(error))
	}

	return results[0].Interface(), nil
}

func (i *Instantiator) failure(cause error) error {
	return errors.WrapFatal(
		fmt.Errorf("%w: type [%s]: %w", errors.ErrInstantiationFailed, i.typeName, cause),
		"Instantiator", "Instantiate", "constructor invocation")
}

// selectConstructor applies the uniqueness rule over the registered
// constructors of t.
func selectConstructor(t typeregistry.Type) (typeregistry.Constructor, error) {
	var exported []typeregistry.Constructor
	for _, ctor := range t.Constructors {
		if ctor.Exported() {
			exported = append(exported, ctor)
		}
	}

	switch {
	case len(exported) == 1:
		return exported[0], nil
	case len(t.Constructors) == 1:
		return t.Constructors[0], nil
	default:
		return typeregistry.Constructor{}, errors.WrapInvalid(
			fmt.Errorf("%w: type [%s] has %d constructors (%d exported), expected a unique candidate",
				errors.ErrNoSuitableConstructor, t.Name, len(t.Constructors), len(exported)),
			"Instantiator", "ForType", "constructor selection")
	}
}
