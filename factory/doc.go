// Package factory selects and invokes constructors of registered
// implementation types.
//
// ForType applies the uniqueness rule once per type: one exported
// constructor wins; failing that, a sole constructor of any visibility;
// anything else is a selection ambiguity reported immediately. It returns
// an Instantiator that binds the selected constructor to an argument
// resolver at instantiation time. Parameters the resolver does not match are
// bound to their zero value, never treated as failures.
package factory
