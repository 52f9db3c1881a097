package shader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/driver"
	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedUniformType matches any *UnsupportedUniformTypeError.
	ErrUnsupportedUniformType = errors.New("shader: unsupported uniform type")

	// ErrInvalidUniformValue is returned by Uniform.Set when the Go value cannot be converted
	// to the uniform's element kind. The shape of the value is never checked.
	ErrInvalidUniformValue = errors.New("shader: invalid uniform value")

	// ErrAlreadyBound is returned by PendingShader.Bind when the binding was already populated.
	ErrAlreadyBound = errors.New("shader: binding already populated")
)

// UnsupportedUniformTypeError reports an active uniform whose declared type has no setter rule.
type UnsupportedUniformTypeError struct {
	// Program is the program handle being bound.
	Program uint32

	// Name is the offending uniform.
	Name string

	// Type is the uniform's declared type tag.
	Type driver.Type
}

func (e *UnsupportedUniformTypeError) Error() string {
	return fmt.Sprintf("shader: invalid uniform type %v for %q in program %d", e.Type, e.Name, e.Program)
}

// Is reports whether target is ErrUnsupportedUniformType.
func (e *UnsupportedUniformTypeError) Is(target error) bool {
	return target == ErrUnsupportedUniformType
}
