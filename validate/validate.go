// Package validate implements the "info vs validated" conversion pattern
// of spec section 4.8: every persisted or wire-received object first
// exists as an unchecked Info record, and is only promoted to a Validated
// record by running it through a Context that has access to
// whatever already-validated context (fixed parameters, manifest, joint
// key) the check needs.
//
// Grounded on the shape of original_source's eg_validate trait family
// (validate_unwrap / ValidationContext), reworked from Rust's async trait
// object into a plain Go interface, since this module has no async
// runtime to thread through.
package validate

// Info is implemented by any wire/persisted record that has not yet been
// checked against its dependencies.
type Info[V any] interface {
	// Validate runs this record's structural and cross-reference checks
	// against ctx, returning the promoted Validated record on success.
	Validate(ctx Context) (V, error)
}

// Context exposes whatever already-validated artifacts a Validate
// implementation might need, without binding every validator to a single
// concrete struct. Individual packages type-assert ctx to a more specific
// interface they define locally (e.g. a context exposing GuardianPublicKeys()),
// the same "ask only for what you use" shape as the original trait-object
// design.
type Context interface {
	// ElectionHash returns the extended base hash H_E every downstream
	// artifact must be bound to, or an error if it is not yet available
	// (e.g. validating guardian keys before the manifest hash exists).
	ElectionHash() ([32]byte, error)
}

// Validated promotes an Info record using ctx, a free function wrapper so
// call sites read as validate.Validated(rec, ctx) rather than
// rec.Validate(ctx) repeated at every use site; both spellings work since
// Info is just an interface.
func Validated[V any](info Info[V], ctx Context) (V, error) {
	return info.Validate(ctx)
}
