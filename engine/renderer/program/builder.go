// Package program compiles GLSL sources into linked GL programs whose attribute locations
// match the slot assignment made by the shader binding.
package program

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/driver"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// ErrCompile wraps the driver's info log when a stage fails to compile.
	ErrCompile = errors.New("could not compile shader")

	// ErrLink wraps the driver's info log when a program fails to link.
	ErrLink = errors.New("could not link program")

	// ErrNoSources is returned by Build when it is given no sources.
	ErrNoSources = errors.New("program: no sources")
)

// builder is the implementation of the Builder interface.
type builder struct {
	mu sync.Mutex

	d  driver.Driver
	pp shader.PreProcessor

	// shaders caches compiled shader objects by stage and processed source.
	shaders map[Source]uint32

	noCache bool
	logger  zerolog.Logger
}

// Builder compiles and links programs for one GL context. Compiled shader objects are cached
// by stage and source, so programs sharing a stage compile it once. All methods must be called
// on the thread owning the context.
type Builder interface {
	// Build compiles every source, attaches the shader objects to a new program and links it.
	// After a successful link every active attribute is bound to its enumeration index and the
	// program is relinked, so that attribute i of the binding lives at slot i.
	//
	// Parameters:
	//   - sources: one Source per stage
	//
	// Returns:
	//   - Program: the linked program
	//   - error: ErrNoSources, or ErrCompile / ErrLink wrapped with the driver's info log
	Build(sources ...Source) (Program, error)

	// Cached returns how many compiled shader objects the builder holds.
	//
	// Returns:
	//   - int: the number of cached shader objects
	Cached() int

	// Release deletes every cached shader object. Programs already built stay valid.
	Release()
}

var _ Builder = &builder{}

// NewBuilder creates a Builder for the given driver.
//
// Parameters:
//   - d: the driver owning the GL context
//   - options: variadic list of BuilderOption to configure the builder
//
// Returns:
//   - Builder: the program builder
func NewBuilder(d driver.Driver, options ...BuilderOption) Builder {
	if d == nil {
		panic("program: a driver is required")
	}
	b := &builder{
		d:       d,
		shaders: make(map[Source]uint32),
		logger:  log.Logger,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *builder) Build(sources ...Source) (Program, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	compiled := make([]uint32, 0, len(sources))
	cleanup := func() {
		if b.noCache {
			for _, s := range compiled {
				b.d.DeleteShader(s)
			}
		}
	}

	for _, src := range sources {
		s, err := b.compile(src)
		if err != nil {
			cleanup()
			b.logger.Error().Err(err).Stringer("stage", src.Stage).Msg("program: compile failed")
			return nil, err
		}
		compiled = append(compiled, s)
	}

	handle := b.d.CreateProgram()
	for _, s := range compiled {
		b.d.AttachShader(handle, s)
	}

	if err := b.link(handle); err != nil {
		b.d.DeleteProgram(handle)
		cleanup()
		b.logger.Error().Err(err).Uint32("program", handle).Msg("program: link failed")
		return nil, err
	}
	if err := b.bindAttribSlots(handle); err != nil {
		b.d.DeleteProgram(handle)
		cleanup()
		b.logger.Error().Err(err).Uint32("program", handle).Msg("program: relink failed")
		return nil, err
	}

	// Uncached shader objects are only flagged; the driver frees them with the program.
	cleanup()

	b.logger.Debug().Uint32("program", handle).Int("stages", len(sources)).Msg("program: linked")
	return &program{d: b.d, handle: handle, sources: sources}, nil
}

// compile returns a compiled shader object for src, from the cache when possible.
func (b *builder) compile(src Source) (uint32, error) {
	if b.pp != nil {
		code, err := b.pp.Process(src.Code)
		if err != nil {
			return 0, errors.Wrapf(err, "program: pre-process %v", src.Stage)
		}
		src.Code = code
	}

	if s, ok := b.shaders[src]; ok {
		return s, nil
	}

	s := b.d.CreateShader(src.Stage)
	if ok, infoLog := b.d.CompileShader(s, src.Code); !ok {
		b.d.DeleteShader(s)
		return 0, errors.Wrapf(ErrCompile, "program: %v: %s", src.Stage, infoLog)
	}
	if !b.noCache {
		b.shaders[src] = s
	}
	return s, nil
}

func (b *builder) link(handle uint32) error {
	if ok, infoLog := b.d.LinkProgram(handle); !ok {
		return errors.Wrapf(ErrLink, "program: %s", infoLog)
	}
	return nil
}

// maxSlotPasses bounds how many rebind and relink rounds bindAttribSlots attempts.
const maxSlotPasses = 3

// bindAttribSlots pins every active attribute to its enumeration index and relinks, repeating
// until the enumeration after a relink matches the bindings it was linked with.
func (b *builder) bindAttribSlots(handle uint32) error {
	names := b.attribNames(handle)
	for pass := 0; pass < maxSlotPasses; pass++ {
		if len(names) == 0 {
			return nil
		}
		for i, name := range names {
			b.d.BindAttribLocation(handle, uint32(i), name)
		}
		if err := b.link(handle); err != nil {
			return err
		}
		got := b.attribNames(handle)
		if slices.Equal(got, names) {
			return nil
		}
		b.logger.Debug().
			Uint32("program", handle).
			Strs("want", names).
			Strs("got", got).
			Msg("program: attribute enumeration changed after relink")
		names = got
	}
	return errors.Wrapf(ErrLink, "program: attribute slots did not settle after %d relinks", maxSlotPasses)
}

func (b *builder) attribNames(handle uint32) []string {
	n := b.d.ActiveAttribCount(handle)
	names := make([]string, n)
	for i := range names {
		names[i] = b.d.ActiveAttrib(handle, i).Name
	}
	return names
}

func (b *builder) Cached() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.shaders)
}

func (b *builder) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for src, s := range b.shaders {
		b.d.DeleteShader(s)
		delete(b.shaders, src)
	}
}
