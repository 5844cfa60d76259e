// Package factorykit provides named-factory discovery and instantiation:
// declarative registration of implementation types against the capability
// types they provide, and a loader that discovers and constructs them on
// demand.
//
// # Philosophy: Registration Without Dynamic Loading
//
// Factorykit separates three concerns that plugin systems usually entangle:
//
//   - Registration: plain-text resources map a factory type name to the
//     implementation type names that provide it (registration package)
//   - Resolution: an explicit type registry maps those names to Go types and
//     constructor functions, registered by each implementation's own package
//     at startup (typeregistry package)
//   - Instantiation: a loader merges registrations from ordered sources,
//     selects one constructor per implementation and builds instances with
//     caller-supplied arguments (loader, factory and resolver packages)
//
// There is no dynamic code loading. A name discovered in a registration
// resource is only constructible if some compiled-in package registered it.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│            Loader                   │  Merge, dedup, cache,
//	│  (LoadFactories, LoadFactoryNames)  │  instantiate in order
//	└─────────────────────────────────────┘
//	      ↓ discovers via        ↓ resolves via
//	┌──────────────────┐  ┌──────────────────┐
//	│  Registration    │  │  Type Registry   │  Name → Go type +
//	│  Sources         │  │                  │  constructors
//	│  (fs, static)    │  └──────────────────┘
//	└──────────────────┘         ↓ constructs via
//	                      ┌──────────────────┐
//	                      │  Instantiator +  │  Constructor selection,
//	                      │  ArgumentResolver│  argument injection
//	                      └──────────────────┘
//
// Typical use:
//
//	reg := typeregistry.NewRegistry()
//	reg.MustRegister(typeregistry.For[JSONCodec](
//		typeregistry.Constructor{Name: "NewJSONCodec", Fn: NewJSONCodec}))
//
//	ctx := loader.NewContext("app", reg,
//		registration.NewFSSource(os.DirFS("."), "META-INF/factories/*.factories"))
//
//	codecs, err := loader.LoadFactories[Codec](ctx, resolver.None())
//
// Supporting packages: errors (classified error handling), metric
// (Prometheus instrumentation), pkg/cache (single-flight caching).
package factorykit
