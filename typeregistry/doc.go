// Package typeregistry maps implementation type names to explicit type
// descriptors carrying registered constructor functions.
//
// Registration sources deal purely in strings; something has to turn the
// string "shapes.Circle" back into a constructible Go type. Instead of any
// form of dynamic type loading, each implementation's defining package
// registers a descriptor (the type's canonical name, its reflect.Type and
// one or more constructor closures) at process start:
//
//	var Types = typeregistry.NewRegistry()
//
//	func init() {
//	    Types.MustRegister(typeregistry.For[*Circle](
//	        typeregistry.Constructor{Name: "NewCircle", Fn: NewCircle},
//	    ))
//	}
//
// Because the descriptor is supplied by the implementation's own package,
// unexported constructors and unexported implementation types participate
// without any visibility bypass: the closure crosses the package boundary,
// not the reflection layer. A constructor's declared name records its
// visibility (exported identifier = public) for the selection rule applied
// by the factory package.
package typeregistry
