package driver

import "github.com/pkg/errors"

// ErrInvalidValue matches GL_INVALID_VALUE: an upload whose data is not a whole number of elements.
var ErrInvalidValue = errors.New("GL_INVALID_VALUE")

// CheckCount validates the length of a vector or matrix upload before it reaches GL, which would
// otherwise truncate the data to whole elements silently.
//
// Parameters:
//   - call: the upload call name used in the error
//   - n: the number of values supplied
//   - per: the number of values in one element (vector width or matrix order squared)
//
// Returns:
//   - error: ErrInvalidValue wrapped with the call and counts, or nil
func CheckCount(call string, n, per int) error {
	if per <= 0 || n < per || n%per != 0 {
		return errors.Wrapf(ErrInvalidValue, "%s: %d values, %d per element", call, n, per)
	}
	return nil
}
