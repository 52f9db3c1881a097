// Package gogl implements driver.Driver on top of the go-gl OpenGL 2.1 bindings.
// All methods must be called on the thread that owns the current GL context.
package gogl

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/driver"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/pkg/errors"
)

// glDriver is the implementation of driver.Driver over go-gl.
type glDriver struct{}

var _ driver.Driver = &glDriver{}

// NewDriver loads the GL function pointers for the current context and returns a Driver.
// A GL context must be current on the calling thread.
//
// Returns:
//   - driver.Driver: the GL-backed driver
//   - error: error if the GL function pointers could not be loaded
func NewDriver() (driver.Driver, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "gogl: failed to initialize OpenGL bindings")
	}
	return &glDriver{}, nil
}

// Version returns the GL_VERSION string of the current context.
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *glDriver) ActiveUniformCount(program uint32) int {
	var n int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &n)
	return int(n)
}

func (d *glDriver) ActiveUniform(program uint32, index int) driver.Variable {
	var maxLen int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	return activeVariable(program, index, maxLen, gl.GetActiveUniform)
}

func (d *glDriver) ActiveAttribCount(program uint32) int {
	var n int32
	gl.GetProgramiv(program, gl.ACTIVE_ATTRIBUTES, &n)
	return int(n)
}

func (d *glDriver) ActiveAttrib(program uint32, index int) driver.Variable {
	var maxLen int32
	gl.GetProgramiv(program, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, &maxLen)
	return activeVariable(program, index, maxLen, gl.GetActiveAttrib)
}

func (d *glDriver) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *glDriver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *glDriver) Uniform1i(location int32, v int32) error {
	gl.Uniform1i(location, v)
	return checkError("glUniform1i")
}

func (d *glDriver) Uniform1f(location int32, v float32) error {
	gl.Uniform1f(location, v)
	return checkError("glUniform1f")
}

func (d *glDriver) UniformIntVector(location int32, width int, v []int32) error {
	if err := driver.CheckCount(fmt.Sprintf("glUniform%div", width), len(v), width); err != nil {
		return err
	}
	count := int32(len(v) / width)
	switch width {
	case 2:
		gl.Uniform2iv(location, count, &v[0])
	case 3:
		gl.Uniform3iv(location, count, &v[0])
	case 4:
		gl.Uniform4iv(location, count, &v[0])
	default:
		return errors.Errorf("glUniform%div: invalid vector width", width)
	}
	return checkError(fmt.Sprintf("glUniform%div", width))
}

func (d *glDriver) UniformFloatVector(location int32, width int, v []float32) error {
	if err := driver.CheckCount(fmt.Sprintf("glUniform%dfv", width), len(v), width); err != nil {
		return err
	}
	count := int32(len(v) / width)
	switch width {
	case 2:
		gl.Uniform2fv(location, count, &v[0])
	case 3:
		gl.Uniform3fv(location, count, &v[0])
	case 4:
		gl.Uniform4fv(location, count, &v[0])
	default:
		return errors.Errorf("glUniform%dfv: invalid vector width", width)
	}
	return checkError(fmt.Sprintf("glUniform%dfv", width))
}

func (d *glDriver) UniformMatrix(location int32, order int, transpose bool, v []float32) error {
	if err := driver.CheckCount(fmt.Sprintf("glUniformMatrix%dfv", order), len(v), order*order); err != nil {
		return err
	}
	count := int32(len(v) / (order * order))
	switch order {
	case 2:
		gl.UniformMatrix2fv(location, count, transpose, &v[0])
	case 3:
		gl.UniformMatrix3fv(location, count, transpose, &v[0])
	case 4:
		gl.UniformMatrix4fv(location, count, transpose, &v[0])
	default:
		return errors.Errorf("glUniformMatrix%dfv: invalid matrix order", order)
	}
	return checkError(fmt.Sprintf("glUniformMatrix%dfv", order))
}

func (d *glDriver) BindBuffer(target uint32, buffer uint32) {
	gl.BindBuffer(target, buffer)
}

func (d *glDriver) VertexAttribPointer(slot uint32, size int32, componentType driver.ComponentType, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(slot, size, uint32(componentType), normalized, stride, gl.PtrOffset(offset))
}

func (d *glDriver) EnableVertexAttribArray(slot uint32) {
	gl.EnableVertexAttribArray(slot)
}

func (d *glDriver) DisableVertexAttribArray(slot uint32) {
	gl.DisableVertexAttribArray(slot)
}

func (d *glDriver) CreateShader(stage driver.Stage) uint32 {
	switch stage {
	case driver.StageVertex:
		return gl.CreateShader(gl.VERTEX_SHADER)
	case driver.StageFragment:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	}
	return 0
}

func (d *glDriver) CompileShader(shader uint32, source string) (bool, string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)

	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 1 {
		return status != gl.FALSE, ""
	}
	log := make([]byte, logLength+1)
	gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
	return status != gl.FALSE, strings.TrimRight(string(log), "\x00")
}

func (d *glDriver) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *glDriver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *glDriver) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *glDriver) BindAttribLocation(program uint32, slot uint32, name string) {
	gl.BindAttribLocation(program, slot, gl.Str(name+"\x00"))
}

func (d *glDriver) LinkProgram(program uint32) (bool, string) {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)

	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 1 {
		return status != gl.FALSE, ""
	}
	log := make([]byte, logLength+1)
	gl.GetProgramInfoLog(program, logLength, nil, &log[0])
	return status != gl.FALSE, strings.TrimRight(string(log), "\x00")
}

func (d *glDriver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

// activeVariableFunc matches gl.GetActiveUniform and gl.GetActiveAttrib.
type activeVariableFunc func(program uint32, index uint32, bufSize int32, length *int32, size *int32, xtype *uint32, name *uint8)

// activeVariable reads the name, size and type of one active program variable.
func activeVariable(program uint32, index int, maxLen int32, query activeVariableFunc) driver.Variable {
	if maxLen < 1 {
		maxLen = 1
	}
	buf := make([]uint8, maxLen)
	var length, size int32
	var xtype uint32
	query(program, uint32(index), maxLen, &length, &size, &xtype, &buf[0])
	return driver.Variable{
		Name: string(buf[:length]),
		Type: driver.Type(xtype),
		Size: int(size),
	}
}

// checkError reports the GL error flag raised by call, if any.
func checkError(call string) error {
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	return errors.Errorf("%s: %s", call, errorName(code))
}

func errorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	}
	return fmt.Sprintf("GL error %#04x", code)
}
