package loader

import (
	"fmt"
	"time"

	"github.com/c360/factorykit/errors"
	"github.com/c360/factorykit/resolver"
	"github.com/c360/factorykit/typeregistry"
)

// defaultLoader backs the package-level load operations. Callers that need
// their own cache lifetimes or metrics build a Loader explicitly and use the
// *From variants.
var defaultLoader = mustNewLoader()

func mustNewLoader() *Loader {
	l, err := NewLoader()
	if err != nil {
		panic(err)
	}
	return l
}

// Default returns the process-wide loader behind the package-level
// operations.
func Default() *Loader { return defaultLoader }

// ResetCache clears the default loader's caches. Test isolation only.
func ResetCache() { defaultLoader.Reset() }

// LoadFactoryNames returns the ordered implementation type names registered
// for factoryType in ctx, using the default loader.
func LoadFactoryNames(factoryType string, ctx *Context) ([]string, error) {
	return defaultLoader.LoadFactoryNames(factoryType, ctx)
}

// LoadFactories discovers, instantiates and returns all implementations of
// the capability type T registered in ctx, in discovery order, using the
// default loader. Pass resolver.None() when no constructor arguments are
// needed.
func LoadFactories[T any](ctx *Context, res resolver.ArgumentResolver) ([]T, error) {
	return LoadFactoriesFrom[T](defaultLoader, ctx, res)
}

// LoadFactoriesFrom is LoadFactories on an explicit Loader.
//
// For each discovered name, in order: the name is resolved to a type
// descriptor through ctx, its selected constructor is instantiated with res,
// and the instance is checked against T. Any failure (an unknown name, a
// selection ambiguity, a constructor failure or an incompatible instance)
// aborts the whole call; there is no skip-and-continue and no partial result.
func LoadFactoriesFrom[T any](l *Loader, ctx *Context, res resolver.ArgumentResolver) ([]T, error) {
	start := time.Now()
	factoryType := typeregistry.NameFor[T]()

	names, err := l.LoadFactoryNames(factoryType, ctx)
	if err != nil {
		l.recordLoad(factoryType, "error")
		return nil, err
	}

	instances := make([]T, 0, len(names))
	for _, name := range names {
		instance, err := instantiateAs[T](l, ctx, name, factoryType, res)
		if err != nil {
			l.recordLoad(factoryType, "error")
			l.recordError("Loader", err)
			return nil, err
		}
		instances = append(instances, instance)
	}

	l.recordLoad(factoryType, "success")
	if l.metrics != nil {
		l.metrics.RecordLoadDuration("load_factories", time.Since(start))
	}
	return instances, nil
}

// instantiateAs builds one named implementation and verifies it satisfies the
// requested capability type.
func instantiateAs[T any](
	l *Loader, ctx *Context, name, factoryType string, res resolver.ArgumentResolver,
) (T, error) {
	var zero T

	desc, err := ctx.ResolveType(name)
	if err != nil {
		return zero, unableToInstantiate(name, factoryType, err)
	}

	inst, err := l.instantiatorFor(desc)
	if err != nil {
		return zero, unableToInstantiate(name, factoryType, err)
	}

	obj, err := inst.Instantiate(res)
	if err != nil {
		if l.metrics != nil {
			l.metrics.RecordInstantiation(name, "error")
		}
		return zero, unableToInstantiate(name, factoryType, err)
	}

	typed, ok := obj.(T)
	if !ok {
		return zero, unableToInstantiate(name, factoryType, fmt.Errorf(
			"%w: instance of [%s] is not assignable to factory type [%s]",
			errors.ErrTypeMismatch, name, factoryType))
	}

	if l.metrics != nil {
		l.metrics.RecordInstantiation(name, "success")
	}
	return typed, nil
}

// unableToInstantiate is the uniform failure wrapper of the load facade; it
// names both sides of the failed pairing and chains the original cause.
func unableToInstantiate(name, factoryType string, cause error) error {
	return errors.WrapInvalid(
		fmt.Errorf("unable to instantiate factory implementation [%s] for factory type [%s]: %w",
			name, factoryType, cause),
		"Loader", "LoadFactories", "factory instantiation")
}

func (l *Loader) recordLoad(factoryType, status string) {
	if l.metrics != nil {
		l.metrics.RecordLoad(factoryType, status)
	}
}
