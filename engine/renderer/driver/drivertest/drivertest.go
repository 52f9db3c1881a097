// Package drivertest provides a recording in-memory driver.Driver for tests.
//
// The fake keeps the same global state a GL context would (current program, bound array
// buffer, per-slot attribute array flags) and records every call in order so tests can
// assert on exactly what the code under test asked the driver to do.
package drivertest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/driver"
)

// Call is one recorded driver call.
type Call struct {
	// Method is the driver.Driver method name, e.g. "Uniform1f".
	Method string

	// Args holds the call arguments in declaration order.
	Args []any
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return fmt.Sprintf("%s(%s)", c.Method, strings.Join(parts, ", "))
}

// Program is the fake's view of one program object.
type Program struct {
	// Uniforms are the active uniforms reported after a successful link, in enumeration order.
	Uniforms []driver.Variable

	// Attribs are the active attributes reported after a successful link, in enumeration order.
	Attribs []driver.Variable

	// Linked reports whether the last LinkProgram call succeeded.
	Linked bool

	// Shaders are the attached shader handles.
	Shaders []uint32

	// AttribBindings records BindAttribLocation calls by name.
	AttribBindings map[string]uint32
}

// Driver is the recording fake. The zero value is not usable; call New.
type Driver struct {
	mu sync.Mutex

	calls []Call

	nextHandle uint32

	programs map[uint32]*Program
	shaders  map[uint32]string

	current       uint32
	arrayBuffer   uint32
	enabled       map[uint32]bool
	deletedShader map[uint32]bool

	// Template is copied into every program created through CreateProgram; it defines the
	// active uniforms and attributes the program will report once linked.
	Template Program

	// CompileFail makes CompileShader fail for any source containing this marker.
	CompileFail string

	// LinkFail makes every LinkProgram call fail with this info log when non-empty.
	LinkFail string

	// UploadErr, when set, is returned by every uniform upload call.
	UploadErr error

	// ReorderAttribs, when set, rewrites a program's attribute enumeration after every
	// successful link. bindings holds the program's BindAttribLocation calls so far.
	ReorderAttribs func(attribs []driver.Variable, bindings map[string]uint32) []driver.Variable
}

var _ driver.Driver = &Driver{}

// New creates an empty recording driver.
//
// Returns:
//   - *Driver: the fake driver
func New() *Driver {
	return &Driver{
		nextHandle:    1,
		programs:      make(map[uint32]*Program),
		shaders:       make(map[uint32]string),
		enabled:       make(map[uint32]bool),
		deletedShader: make(map[uint32]bool),
	}
}

// AddProgram registers an already linked program with the given variables and returns its handle.
//
// Parameters:
//   - uniforms: active uniforms in enumeration order
//   - attribs: active attributes in enumeration order
//
// Returns:
//   - uint32: the program handle
func (d *Driver) AddProgram(uniforms, attribs []driver.Variable) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := d.handle()
	d.programs[h] = &Program{
		Uniforms:       uniforms,
		Attribs:        attribs,
		Linked:         true,
		AttribBindings: make(map[string]uint32),
	}
	return h
}

// Program returns the fake program object for handle, or nil.
func (d *Driver) Program(handle uint32) *Program {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.programs[handle]
}

// Calls returns a copy of the recorded calls.
func (d *Driver) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// CallsTo returns the recorded calls to method, in order.
func (d *Driver) CallsTo(method string) []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []Call
	for _, c := range d.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many times method was called.
func (d *Driver) Count(method string) int {
	return len(d.CallsTo(method))
}

// Reset forgets the recorded calls but keeps all driver state.
func (d *Driver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = nil
}

// CurrentProgram returns the program installed by the last UseProgram call.
func (d *Driver) CurrentProgram() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// ArrayBufferBinding returns the buffer bound to driver.ArrayBuffer.
func (d *Driver) ArrayBufferBinding() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.arrayBuffer
}

// Enabled reports whether the attribute array at slot is enabled.
func (d *Driver) Enabled(slot uint32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled[slot]
}

// SetEnabled forces the attribute array flag at slot without recording a call.
func (d *Driver) SetEnabled(slot uint32, enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enabled[slot] = enabled
}

// ShaderDeleted reports whether DeleteShader was called for shader.
func (d *Driver) ShaderDeleted(shader uint32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deletedShader[shader]
}

func (d *Driver) record(method string, args ...any) {
	d.calls = append(d.calls, Call{Method: method, Args: args})
}

func (d *Driver) handle() uint32 {
	h := d.nextHandle
	d.nextHandle++
	return h
}

func (d *Driver) linked(program uint32) *Program {
	p := d.programs[program]
	if p == nil || !p.Linked {
		return nil
	}
	return p
}

func (d *Driver) ActiveUniformCount(program uint32) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("ActiveUniformCount", program)
	if p := d.linked(program); p != nil {
		return len(p.Uniforms)
	}
	return 0
}

func (d *Driver) ActiveUniform(program uint32, index int) driver.Variable {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("ActiveUniform", program, index)
	if p := d.linked(program); p != nil && index >= 0 && index < len(p.Uniforms) {
		return p.Uniforms[index]
	}
	return driver.Variable{}
}

func (d *Driver) ActiveAttribCount(program uint32) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("ActiveAttribCount", program)
	if p := d.linked(program); p != nil {
		return len(p.Attribs)
	}
	return 0
}

func (d *Driver) ActiveAttrib(program uint32, index int) driver.Variable {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("ActiveAttrib", program, index)
	if p := d.linked(program); p != nil && index >= 0 && index < len(p.Attribs) {
		return p.Attribs[index]
	}
	return driver.Variable{}
}

// UniformLocation resolves to 100 + the uniform's enumeration index so that locations are
// distinct from indices and slots in assertions.
func (d *Driver) UniformLocation(program uint32, name string) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("UniformLocation", program, name)
	if p := d.linked(program); p != nil {
		for i, u := range p.Uniforms {
			if u.Name == name {
				return int32(100 + i)
			}
		}
	}
	return -1
}

func (d *Driver) UseProgram(program uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("UseProgram", program)
	d.current = program
}

func (d *Driver) Uniform1i(location int32, v int32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("Uniform1i", location, v)
	return d.UploadErr
}

func (d *Driver) Uniform1f(location int32, v float32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("Uniform1f", location, v)
	return d.UploadErr
}

func (d *Driver) UniformIntVector(location int32, width int, v []int32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("UniformIntVector", location, width, append([]int32(nil), v...))
	if d.UploadErr != nil {
		return d.UploadErr
	}
	return driver.CheckCount("UniformIntVector", len(v), width)
}

func (d *Driver) UniformFloatVector(location int32, width int, v []float32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("UniformFloatVector", location, width, append([]float32(nil), v...))
	if d.UploadErr != nil {
		return d.UploadErr
	}
	return driver.CheckCount("UniformFloatVector", len(v), width)
}

func (d *Driver) UniformMatrix(location int32, order int, transpose bool, v []float32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("UniformMatrix", location, order, transpose, append([]float32(nil), v...))
	if d.UploadErr != nil {
		return d.UploadErr
	}
	return driver.CheckCount("UniformMatrix", len(v), order*order)
}

func (d *Driver) BindBuffer(target uint32, buffer uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("BindBuffer", target, buffer)
	if target == driver.ArrayBuffer {
		d.arrayBuffer = buffer
	}
}

func (d *Driver) VertexAttribPointer(slot uint32, size int32, componentType driver.ComponentType, normalized bool, stride int32, offset int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("VertexAttribPointer", slot, size, componentType, normalized, stride, offset)
}

func (d *Driver) EnableVertexAttribArray(slot uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("EnableVertexAttribArray", slot)
	d.enabled[slot] = true
}

func (d *Driver) DisableVertexAttribArray(slot uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DisableVertexAttribArray", slot)
	d.enabled[slot] = false
}

func (d *Driver) CreateShader(stage driver.Stage) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := d.handle()
	d.record("CreateShader", stage)
	d.shaders[h] = ""
	return h
}

func (d *Driver) CompileShader(shader uint32, source string) (bool, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("CompileShader", shader, source)
	d.shaders[shader] = source
	if d.CompileFail != "" && strings.Contains(source, d.CompileFail) {
		return false, fmt.Sprintf("ERROR: 0:1: '%s' : syntax error", d.CompileFail)
	}
	return true, ""
}

func (d *Driver) DeleteShader(shader uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DeleteShader", shader)
	d.deletedShader[shader] = true
}

func (d *Driver) CreateProgram() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := d.handle()
	d.record("CreateProgram")
	d.programs[h] = &Program{AttribBindings: make(map[string]uint32)}
	return h
}

func (d *Driver) AttachShader(program, shader uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("AttachShader", program, shader)
	if p := d.programs[program]; p != nil {
		p.Shaders = append(p.Shaders, shader)
	}
}

func (d *Driver) BindAttribLocation(program uint32, slot uint32, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("BindAttribLocation", program, slot, name)
	if p := d.programs[program]; p != nil {
		p.AttribBindings[name] = slot
	}
}

func (d *Driver) LinkProgram(program uint32) (bool, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("LinkProgram", program)
	p := d.programs[program]
	if p == nil {
		return false, "invalid program"
	}
	if d.LinkFail != "" {
		p.Linked = false
		return false, d.LinkFail
	}
	p.Uniforms = append([]driver.Variable(nil), d.Template.Uniforms...)
	p.Attribs = append([]driver.Variable(nil), d.Template.Attribs...)
	if d.ReorderAttribs != nil {
		p.Attribs = d.ReorderAttribs(p.Attribs, p.AttribBindings)
	}
	p.Linked = true
	return true, ""
}

func (d *Driver) DeleteProgram(program uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DeleteProgram", program)
	delete(d.programs, program)
}
