package shader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/driver"
)

// uniform is the implementation of the Uniform interface.
type uniform struct {
	name     string
	typ      driver.Type
	location int32
	size     int
	rule     uniformRule

	// set is the setter selected at bind time, closed over the driver and location.
	set func(v any) error
}

// Uniform is a typed setter for one active uniform of a bound program. Its upload shape is
// fixed when the binding is built and never re-resolved.
type Uniform interface {
	// Name returns the uniform name as reported by the driver.
	//
	// Returns:
	//   - string: the uniform name
	Name() string

	// Type returns the uniform's declared type tag.
	//
	// Returns:
	//   - driver.Type: the declared type
	Type() driver.Type

	// Location returns the resolved uniform location. It is only meaningful while the
	// program is alive.
	//
	// Returns:
	//   - int32: the driver location, -1 if the name did not resolve
	Location() int32

	// Size returns the array length of the uniform, 1 for non-array uniforms.
	//
	// Returns:
	//   - int: the array length
	Size() int

	// Components returns how many elements one value of this uniform holds:
	// 1 for scalars, the width for vectors and order*order for matrices.
	//
	// Returns:
	//   - int: the component count
	Components() int

	// Set uploads v to the uniform through the primitive chosen for its declared type.
	// Integer uniforms (int, bool, samplers and their vectors) accept int, int32, uint32, bool,
	// []int32, []int, []bool and [2|3|4]int32. Float uniforms accept float32, float64, int,
	// []float32, []float64 and [2|3|4|9|16]float32. Matrices are uploaded non-transposed.
	// The length of v is not checked; the driver reports malformed uploads.
	//
	// Parameters:
	//   - v: the value to upload
	//
	// Returns:
	//   - error: ErrInvalidUniformValue if v has an unusable Go type, otherwise the driver's error
	Set(v any) error
}

var _ Uniform = &uniform{}

// newUniform builds the accessor for one active uniform, resolving its location and setter once.
func newUniform(d driver.Driver, program uint32, v driver.Variable) (*uniform, error) {
	rule, ok := uniformRules[v.Type]
	if !ok {
		return nil, &UnsupportedUniformTypeError{Program: program, Name: v.Name, Type: v.Type}
	}
	setter, ok := lookupSetter(rule)
	if !ok {
		return nil, &UnsupportedUniformTypeError{Program: program, Name: v.Name, Type: v.Type}
	}

	u := &uniform{
		name:     v.Name,
		typ:      v.Type,
		location: d.UniformLocation(program, v.Name),
		size:     v.Size,
		rule:     rule,
	}
	location := u.location
	u.set = func(val any) error {
		return setter(d, location, val)
	}
	return u, nil
}

func (u *uniform) Name() string {
	return u.name
}

func (u *uniform) Type() driver.Type {
	return u.typ
}

func (u *uniform) Location() int32 {
	return u.location
}

func (u *uniform) Size() int {
	return u.size
}

func (u *uniform) Components() int {
	return u.rule.arity
}

func (u *uniform) Set(v any) error {
	return u.set(v)
}

func (u *uniform) String() string {
	return fmt.Sprintf("Uniform(%q, type:%v, location:%d)", u.name, u.typ, u.location)
}
