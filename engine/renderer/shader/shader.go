package shader

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/driver"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// shader is the implementation of the Shader and PendingShader interfaces.
// It holds the program handle and the ordered uniform and attribute accessors built for it.
type shader struct {
	mu sync.RWMutex

	d       driver.Driver
	key     string
	program uint32
	ready   bool

	uniforms     []Uniform
	uniformIndex map[string]int
	attribs      []Attrib
	attribIndex  map[string]int

	logger zerolog.Logger
}

// Shader is the binding of one linked GL program. It exposes a typed accessor per active
// uniform and per active vertex attribute, in driver enumeration order, and brackets draw
// calls with Begin and End. The accessors are populated exactly once and never re-queried.
// All methods that reach the driver must be called on the thread owning the GL context.
type Shader interface {
	// Key retrieves the identifier given to this binding, used for caching and logging.
	//
	// Returns:
	//   - string: the binding key, empty if none was set
	Key() string

	// Program returns the program handle this binding was built for. The binding does not own it.
	//
	// Returns:
	//   - uint32: the program handle, 0 while the binding is unpopulated
	Program() uint32

	// Ready reports whether the accessors have been populated.
	//
	// Returns:
	//   - bool: true once the binding has been built for a program
	Ready() bool

	// Uniforms returns the uniform accessors in enumeration order.
	//
	// Returns:
	//   - []Uniform: a copy of the ordered uniform accessors, empty while unpopulated
	Uniforms() []Uniform

	// Uniform looks up a uniform accessor by the name the driver reported for it.
	//
	// Parameters:
	//   - name: the uniform name
	//
	// Returns:
	//   - Uniform: the accessor, nil if absent
	//   - bool: true if the uniform exists
	Uniform(name string) (Uniform, bool)

	// Attribs returns the attribute accessors in enumeration order.
	//
	// Returns:
	//   - []Attrib: a copy of the ordered attribute accessors, empty while unpopulated
	Attribs() []Attrib

	// Attrib looks up an attribute accessor by the name the driver reported for it.
	//
	// Parameters:
	//   - name: the attribute name
	//
	// Returns:
	//   - Attrib: the accessor, nil if absent
	//   - bool: true if the attribute exists
	Attrib(name string) (Attrib, bool)

	// Begin makes the program current, then enables every attribute array in enumeration order.
	// Calling Begin repeatedly is legal. It is a no-op on an unpopulated binding.
	Begin()

	// End disables every attribute array. Calling End without Begin is legal.
	End()

	// EnableAttribs enables every attribute array without touching the current program.
	EnableAttribs()

	// DisableAttribs disables every attribute array.
	DisableAttribs()
}

// PendingShader is a Shader whose accessors are filled in later, once its program is linked.
type PendingShader interface {
	Shader

	// Bind introspects program and populates the accessors. It succeeds at most once.
	// On error the binding is left unpopulated.
	//
	// Parameters:
	//   - program: the linked program handle
	//
	// Returns:
	//   - error: ErrAlreadyBound on a second call, an *UnsupportedUniformTypeError if a uniform has no setter rule
	Bind(program uint32) error
}

var _ PendingShader = &shader{}

// NewPending creates an unpopulated binding. Its accessor lists stay empty until Bind succeeds.
//
// Parameters:
//   - d: the driver used for introspection, uploads and attribute toggles
//   - options: variadic list of ShaderBuilderOption to configure the binding
//
// Returns:
//   - PendingShader: the unpopulated binding
func NewPending(d driver.Driver, options ...ShaderBuilderOption) PendingShader {
	if d == nil {
		panic("shader: a driver is required")
	}
	s := &shader{
		d:            d,
		uniformIndex: make(map[string]int),
		attribIndex:  make(map[string]int),
		logger:       log.Logger,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// NewShader builds a populated binding for a linked program in one pass: active uniforms are
// enumerated first, then active attributes. If any uniform has an unsupported type, no binding
// is returned.
//
// Parameters:
//   - d: the driver used for introspection, uploads and attribute toggles
//   - program: the linked program handle
//   - options: variadic list of ShaderBuilderOption to configure the binding
//
// Returns:
//   - Shader: the populated binding, nil on error
//   - error: an *UnsupportedUniformTypeError if a uniform type has no setter rule
func NewShader(d driver.Driver, program uint32, options ...ShaderBuilderOption) (Shader, error) {
	s := NewPending(d, options...)
	if err := s.Bind(program); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *shader) Bind(program uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return ErrAlreadyBound
	}

	found := introspect(s.d, program)

	uniforms := make([]Uniform, 0, len(found.uniforms))
	uniformIndex := make(map[string]int, len(found.uniforms))
	for _, v := range found.uniforms {
		u, err := newUniform(s.d, program, v)
		if err != nil {
			s.logger.Error().Err(err).Str("shader", s.key).Uint32("program", program).Msg("shader: bind failed")
			return err
		}
		uniformIndex[v.Name] = len(uniforms)
		uniforms = append(uniforms, u)
	}

	attribs := make([]Attrib, 0, len(found.attribs))
	attribIndex := make(map[string]int, len(found.attribs))
	for i, v := range found.attribs {
		attribIndex[v.Name] = len(attribs)
		attribs = append(attribs, newAttrib(s.d, uint32(i), v))
	}

	s.program = program
	s.uniforms, s.uniformIndex = uniforms, uniformIndex
	s.attribs, s.attribIndex = attribs, attribIndex
	s.ready = true

	s.logger.Debug().
		Str("shader", s.key).
		Uint32("program", program).
		Int("uniforms", len(uniforms)).
		Int("attribs", len(attribs)).
		Msg("shader: bound")
	return nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Program() uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.program
}

func (s *shader) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *shader) Uniforms() []Uniform {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Uniform, len(s.uniforms))
	copy(out, s.uniforms)
	return out
}

func (s *shader) Uniform(name string) (Uniform, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.uniformIndex[name]
	if !ok {
		return nil, false
	}
	return s.uniforms[i], true
}

func (s *shader) Attribs() []Attrib {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Attrib, len(s.attribs))
	copy(out, s.attribs)
	return out
}

func (s *shader) Attrib(name string) (Attrib, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.attribIndex[name]
	if !ok {
		return nil, false
	}
	return s.attribs[i], true
}

func (s *shader) Begin() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return
	}
	s.d.UseProgram(s.program)
	s.enableAttribs()
}

func (s *shader) End() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.disableAttribs()
}

func (s *shader) EnableAttribs() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.enableAttribs()
}

func (s *shader) DisableAttribs() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.disableAttribs()
}

// enableAttribs must be called with s.mu held.
func (s *shader) enableAttribs() {
	for _, a := range s.attribs {
		a.Enable()
	}
}

// disableAttribs must be called with s.mu held.
func (s *shader) disableAttribs() {
	for _, a := range s.attribs {
		a.Disable()
	}
}
