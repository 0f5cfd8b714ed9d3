// Package regionutil carries the ambient concerns shared by every package in
// this module: error sentinels, debug-only invariant checking, alignment
// arithmetic, and the memory-usage accounting the region core needs for its
// GC heuristic. None of it is specific to rings or objects; region imports it
// the way a domain package imports a shared low-level utility package.
package regionutil

import "github.com/cockroachdb/errors"

// NotPowerOfTwoError is returned by CheckPow2 when a value that is required
// to be a power of two (object alignment, size-class granularity) is not.
var NotPowerOfTwoError error = errors.New("value must be a power of two")

// PreconditionError is wrapped around every debug-only invariant violation:
// wrong iso passed to an operation, merge of a region with itself, swap to a
// non-member, and so on. These are programmer bugs, not recoverable
// conditions - DebugAssert panics with this error in debug builds and does
// nothing in release builds.
var PreconditionError error = errors.New("trace region precondition violated")

// KindMismatchError is returned when a region-manager-level operation (merge)
// is attempted across incompatible region kinds (trace vs. arena).
var KindMismatchError error = errors.New("region kind mismatch")

// CorruptHeaderError is raised when mark or sweep encounters a class tag
// value it does not recognise: a sign of header corruption, not a
// recoverable error.
var CorruptHeaderError error = errors.New("unknown object class tag")

// wrapPrecondition wraps PreconditionError with msg for DebugAssert.
func wrapPrecondition(msg string) error {
	return errors.Wrap(PreconditionError, msg)
}
