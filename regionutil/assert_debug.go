//go:build debug_traceregion

package regionutil

// DebugValidate calls Validate on validatable and panics if it returns an
// error. No-ops unless the debug_traceregion build tag is present.
func DebugValidate(validatable Validatable) {
	if err := validatable.Validate(); err != nil {
		panic(err)
	}
}

// DebugCheckPow2 panics if value is not a power of two. No-ops unless the
// debug_traceregion build tag is present.
func DebugCheckPow2[T Number](value T, name string) {
	if err := CheckPow2[T](value, name); err != nil {
		panic(err)
	}
}

// DebugAssert panics with PreconditionError, wrapped with msg, if cond is
// false. Every precondition the core relies on (wrong iso passed to an
// operation, merge of a region with itself, swap to a non-member) is checked
// this way: a programmer bug, not a recoverable condition. No-ops unless the
// debug_traceregion build tag is present.
func DebugAssert(cond bool, msg string) {
	if !cond {
		panic(wrapPrecondition(msg))
	}
}
