//go:build !debug_traceregion

package regionutil

// DebugValidate no-ops outside the debug_traceregion build tag.
func DebugValidate(validatable Validatable) {
}

// DebugCheckPow2 no-ops outside the debug_traceregion build tag.
func DebugCheckPow2[T Number](value T, name string) {
}

// DebugAssert no-ops outside the debug_traceregion build tag: precondition
// violations are undefined behaviour in release builds, not checked errors.
func DebugAssert(cond bool, msg string) {
}
