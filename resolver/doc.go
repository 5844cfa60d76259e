// Package resolver provides composable argument resolution strategies used to
// inject values into selected constructors.
//
// A resolver maps a requested parameter type to a value, matching on exact
// type identity only. Bindings compose left to right:
//
//	r := resolver.Of[io.Writer](buf).
//	    AndValue(reflect.TypeOf((*int)(nil)).Elem(), 123).
//	    And(other)
//
// The leftmost matching binding wins, even when a later binding in the chain
// covers the same type. Resolution never fails for an unmatched type; it
// reports absence, and the factory instantiator binds the parameter to its
// zero value.
package resolver
