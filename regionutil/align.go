package regionutil

import (
	cerrors "github.com/cockroachdb/errors"
)

// Number is any integer type CheckPow2 can validate.
type Number interface {
	~int | ~uint
}

// CheckPow2 returns an error wrapping NotPowerOfTwoError if number is not a
// power of two. The allocator checks its configured alignment with it,
// through DebugCheckPow2 and so in debug builds only, before rounding any
// request up to it.
func CheckPow2[T Number](number T, name string) error {
	if number&(number-1) != 0 {
		return cerrors.Wrapf(NotPowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

// AlignUp rounds value up to the nearest multiple of alignment, which must be
// a power of two.
func AlignUp(value int, alignment uint) int {
	return (value + int(alignment) - 1) & int(^(alignment - 1))
}

// AlignDown rounds value down to the nearest multiple of alignment, which
// must be a power of two.
func AlignDown(value int, alignment uint) int {
	return value & int(^(alignment - 1))
}
