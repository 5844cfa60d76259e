// Package errors provides standardized error handling patterns for factorykit.
//
// # Overview
//
// The errors package implements a three-class error classification system:
// Transient (may clear on a later call), Invalid (bad input or registration,
// do not retry), and Fatal (unrecoverable, stop processing). The loading
// pipeline never retries on its own; classification exists so that callers
// can make informed decisions without string matching.
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapTransient(err, "Component", "Method", "action")
//	errors.WrapInvalid(err, "Component", "Method", "action")
//	errors.WrapFatal(err, "Component", "Method", "action")
//
// The generic Wrap() applies the format without assigning a class.
//
// # Standard Error Variables
//
// Sentinel variables cover the failure kinds of the loading pipeline:
//
//   - Sources: ErrMalformedRegistration, ErrSourceUnavailable
//   - Type registry: ErrUnknownType, ErrDuplicateType, ErrInvalidConstructor,
//     ErrNoSuitableConstructor
//   - Instantiation: ErrInstantiationFailed, ErrTypeMismatch
//   - Input: ErrInvalidConfig, ErrInvalidData
//
// All types support the standard library error inspection idioms, so
// classification and sentinels are preserved through wrapping chains:
//
//	if errors.Is(err, errors.ErrNoSuitableConstructor) { ... }
//
//	var ce *errors.ClassifiedError
//	if errors.As(err, &ce) {
//	    log.Printf("component=%s class=%s", ce.Component, ce.Class)
//	}
package errors
