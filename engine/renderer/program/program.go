package program

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/driver"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
)

// program is the implementation of the Program interface.
type program struct {
	mu sync.Mutex

	d        driver.Driver
	handle   uint32
	sources  []Source
	released bool
}

// Program is a linked GL program built by a Builder.
type Program interface {
	// Handle returns the driver's program handle.
	//
	// Returns:
	//   - uint32: the program handle, 0 after Release
	Handle() uint32

	// Sources returns the sources the program was built from, before pre-processing.
	//
	// Returns:
	//   - []Source: the stage sources
	Sources() []Source

	// Bind builds a shader binding for this program.
	//
	// Parameters:
	//   - options: variadic list of shader.ShaderBuilderOption passed to shader.NewShader
	//
	// Returns:
	//   - shader.Shader: the populated binding
	//   - error: an error from shader.NewShader
	Bind(options ...shader.ShaderBuilderOption) (shader.Shader, error)

	// Release deletes the program. Bindings built for it become invalid. Calling Release
	// more than once is a no-op.
	Release()
}

var _ Program = &program{}

func (p *program) Handle() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return 0
	}
	return p.handle
}

func (p *program) Sources() []Source {
	return append([]Source(nil), p.sources...)
}

func (p *program) Bind(options ...shader.ShaderBuilderOption) (shader.Shader, error) {
	return shader.NewShader(p.d, p.Handle(), options...)
}

func (p *program) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return
	}
	p.d.DeleteProgram(p.handle)
	p.released = true
}
