// Package driver defines the boundary between the shader binding code and the graphics
// driver. Everything above this package talks to the GL through these interfaces so the
// binding logic can run against a real context (package gogl) or a recording fake (package
// drivertest).
package driver

// ArrayBuffer is the GL_ARRAY_BUFFER binding target used for vertex sources.
const ArrayBuffer uint32 = 0x8892

// ProgramQuerier enumerates the active variables of a linked program and activates it.
type ProgramQuerier interface {
	// ActiveUniformCount returns the number of active uniforms in a linked program.
	//
	// Parameters:
	//   - program: the program handle
	//
	// Returns:
	//   - int: the active uniform count, 0 if the program is not linked
	ActiveUniformCount(program uint32) int

	// ActiveUniform returns the name and type of the active uniform at index.
	//
	// Parameters:
	//   - program: the program handle
	//   - index: the active uniform index in [0, ActiveUniformCount)
	//
	// Returns:
	//   - Variable: the uniform's name, declared type tag and array size
	ActiveUniform(program uint32, index int) Variable

	// ActiveAttribCount returns the number of active vertex attributes in a linked program.
	//
	// Parameters:
	//   - program: the program handle
	//
	// Returns:
	//   - int: the active attribute count, 0 if the program is not linked
	ActiveAttribCount(program uint32) int

	// ActiveAttrib returns the name and type of the active attribute at index.
	//
	// Parameters:
	//   - program: the program handle
	//   - index: the active attribute index in [0, ActiveAttribCount)
	//
	// Returns:
	//   - Variable: the attribute's name, declared type tag and array size
	ActiveAttrib(program uint32, index int) Variable

	// UniformLocation resolves a uniform name to its location.
	//
	// Parameters:
	//   - program: the program handle
	//   - name: the uniform name
	//
	// Returns:
	//   - int32: the location, or -1 if the name does not resolve
	UniformLocation(program uint32, name string) int32

	// UseProgram installs the program as part of the current rendering state.
	//
	// Parameters:
	//   - program: the program handle
	UseProgram(program uint32)
}

// UniformUploader holds the typed uniform upload primitives. Each returns whatever error the
// driver raises for the call; the values are not checked before they reach the driver.
type UniformUploader interface {
	// Uniform1i uploads a single integer (also used for bool and sampler uniforms).
	Uniform1i(location int32, v int32) error

	// Uniform1f uploads a single float.
	Uniform1f(location int32, v float32) error

	// UniformIntVector uploads integer vectors of the given width (2, 3 or 4).
	// The number of vectors written is len(v)/width.
	UniformIntVector(location int32, width int, v []int32) error

	// UniformFloatVector uploads float vectors of the given width (2, 3 or 4).
	// The number of vectors written is len(v)/width.
	UniformFloatVector(location int32, width int, v []float32) error

	// UniformMatrix uploads square float matrices of the given order (2, 3 or 4).
	// The number of matrices written is len(v)/(order*order).
	UniformMatrix(location int32, order int, transpose bool, v []float32) error
}

// VertexArrayer describes vertex sources and toggles per-slot vertex attribute arrays.
type VertexArrayer interface {
	// BindBuffer binds a buffer object to a target.
	//
	// Parameters:
	//   - target: the binding target, usually ArrayBuffer
	//   - buffer: the buffer object handle
	BindBuffer(target uint32, buffer uint32)

	// VertexAttribPointer describes the layout of a vertex attribute slot within the
	// buffer currently bound to ArrayBuffer.
	//
	// Parameters:
	//   - slot: the attribute slot index
	//   - size: number of components per vertex (1-4)
	//   - componentType: element type of each component
	//   - normalized: whether fixed-point values are normalized
	//   - stride: byte offset between consecutive vertices, 0 for tightly packed
	//   - offset: byte offset of the first component
	VertexAttribPointer(slot uint32, size int32, componentType ComponentType, normalized bool, stride int32, offset int)

	// EnableVertexAttribArray turns on the vertex attribute array at slot.
	EnableVertexAttribArray(slot uint32)

	// DisableVertexAttribArray turns off the vertex attribute array at slot.
	DisableVertexAttribArray(slot uint32)
}

// ProgramBuilder creates, compiles and links shader programs.
type ProgramBuilder interface {
	// CreateShader creates an empty shader object for the given stage.
	CreateShader(stage Stage) uint32

	// CompileShader sets the shader source and compiles it.
	//
	// Returns:
	//   - bool: the compile status
	//   - string: the shader info log, empty when the driver reports none
	CompileShader(shader uint32, source string) (bool, string)

	// DeleteShader flags a shader object for deletion.
	DeleteShader(shader uint32)

	// CreateProgram creates an empty program object.
	CreateProgram() uint32

	// AttachShader attaches a compiled shader to a program.
	AttachShader(program, shader uint32)

	// BindAttribLocation associates an attribute name with a slot; takes effect on the next link.
	BindAttribLocation(program uint32, slot uint32, name string)

	// LinkProgram links the program.
	//
	// Returns:
	//   - bool: the link status
	//   - string: the program info log, empty when the driver reports none
	LinkProgram(program uint32) (bool, string)

	// DeleteProgram deletes a program object.
	DeleteProgram(program uint32)
}

// Driver is the full driver surface used by the binding, the program builder and the loader.
type Driver interface {
	ProgramQuerier
	UniformUploader
	VertexArrayer
	ProgramBuilder
}
