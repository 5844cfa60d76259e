// Package loader discovers and instantiates registered factory
// implementations.
//
// A Context bundles the ordered registration sources visible to a caller with
// the type registry that turns discovered names into constructible types. A
// Loader scans those sources at most once per context, merges the entries
// into a factory map (first occurrence wins, duplicates collapse) and caches
// both the map and the selected constructor per implementation type.
//
// Most callers use the generic facade:
//
//	shapes, err := loader.LoadFactories[Shape](ctx, resolver.None())
//
// which returns every registered implementation of Shape in discovery order,
// or the first error encountered. LoadFactoryNames exposes the name layer
// when callers want discovery without instantiation.
package loader
