package program

import (
	"slices"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/driver"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/driver/drivertest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	vertexSrc   = "attribute vec3 position;\nvoid main() { gl_Position = vec4(position, 1.0); }"
	fragmentSrc = "uniform float time;\nvoid main() { gl_FragColor = vec4(time); }"
)

func newFake() *drivertest.Driver {
	d := drivertest.New()
	d.Template = drivertest.Program{
		Uniforms: []driver.Variable{{Name: "time", Type: driver.TypeFloat, Size: 1}},
		Attribs: []driver.Variable{
			{Name: "position", Type: driver.TypeFloatVec3, Size: 1},
			{Name: "uv", Type: driver.TypeFloatVec2, Size: 1},
		},
	}
	return d
}

func TestBuildLinksAndPinsAttribSlots(t *testing.T) {
	d := newFake()
	b := NewBuilder(d, WithLogger(zerolog.Nop()))

	p, err := b.Build(VertexSource(vertexSrc), FragmentSource(fragmentSrc))
	require.NoError(t, err)
	require.NotZero(t, p.Handle())

	fake := d.Program(p.Handle())
	require.NotNil(t, fake)
	assert.True(t, fake.Linked)
	assert.Len(t, fake.Shaders, 2)
	assert.Equal(t, map[string]uint32{"position": 0, "uv": 1}, fake.AttribBindings)
	assert.Equal(t, 2, d.Count("LinkProgram"))

	s, err := p.Bind(shader.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	pos, ok := s.Attrib("position")
	require.True(t, ok)
	assert.Equal(t, fake.AttribBindings["position"], pos.Location())
}

func TestBuildCompileFailureCarriesInfoLog(t *testing.T) {
	d := newFake()
	d.CompileFail = "gl_FragColor"
	b := NewBuilder(d, WithLogger(zerolog.Nop()))

	p, err := b.Build(VertexSource(vertexSrc), FragmentSource(fragmentSrc))
	require.Error(t, err)
	assert.Nil(t, p)
	assert.True(t, errors.Is(err, ErrCompile))
	assert.Contains(t, err.Error(), "syntax error")
	assert.Contains(t, err.Error(), "fragment")
	assert.Zero(t, d.Count("CreateProgram"))
}

func TestBuildLinkFailureDeletesProgram(t *testing.T) {
	d := newFake()
	d.LinkFail = "error: vertex shader lacks main"
	b := NewBuilder(d, WithLogger(zerolog.Nop()))

	_, err := b.Build(VertexSource(vertexSrc), FragmentSource(fragmentSrc))
	require.ErrorIs(t, err, ErrLink)
	assert.Contains(t, err.Error(), "lacks main")
	assert.Equal(t, 1, d.Count("DeleteProgram"))
}

func TestBuildWithoutSources(t *testing.T) {
	b := NewBuilder(newFake(), WithLogger(zerolog.Nop()))
	_, err := b.Build()
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestBuildCachesShaderObjects(t *testing.T) {
	d := newFake()
	b := NewBuilder(d, WithLogger(zerolog.Nop()))

	first, err := b.Build(VertexSource(vertexSrc), FragmentSource(fragmentSrc))
	require.NoError(t, err)
	second, err := b.Build(VertexSource(vertexSrc), FragmentSource("void main() {}"))
	require.NoError(t, err)

	assert.NotEqual(t, first.Handle(), second.Handle())
	assert.Equal(t, 3, d.Count("CreateShader"))
	assert.Equal(t, 3, b.Cached())
	assert.Equal(t, d.Program(first.Handle()).Shaders[0], d.Program(second.Handle()).Shaders[0])

	b.Release()
	assert.Zero(t, b.Cached())
	assert.Equal(t, 3, d.Count("DeleteShader"))
}

func TestBuildWithoutCacheDeletesShaders(t *testing.T) {
	d := newFake()
	b := NewBuilder(d, WithoutShaderCache(), WithLogger(zerolog.Nop()))

	p, err := b.Build(VertexSource(vertexSrc), FragmentSource(fragmentSrc))
	require.NoError(t, err)
	assert.Zero(t, b.Cached())
	for _, s := range d.Program(p.Handle()).Shaders {
		assert.True(t, d.ShaderDeleted(s))
	}
}

func TestBuildRunsPreProcessor(t *testing.T) {
	d := newFake()
	b := NewBuilder(d, WithPreProcessor(shader.NewPreProcessor()), WithLogger(zerolog.Nop()))

	_, err := b.Build(VertexSource("//@oxy:include transform\nvoid main() {}"), FragmentSource(fragmentSrc))
	require.NoError(t, err)

	compiles := d.CallsTo("CompileShader")
	require.Len(t, compiles, 2)
	assert.Contains(t, compiles[0].Args[1], "uniform mat4 mvp;")

	_, err = b.Build(VertexSource("//@oxy:include missing"), FragmentSource(fragmentSrc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown @oxy:include chunk")
}

func TestReleaseIsIdempotent(t *testing.T) {
	d := newFake()
	p, err := NewBuilder(d, WithLogger(zerolog.Nop())).Build(VertexSource(vertexSrc), FragmentSource(fragmentSrc))
	require.NoError(t, err)

	p.Release()
	p.Release()
	assert.Equal(t, 1, d.Count("DeleteProgram"))
	assert.Zero(t, p.Handle())
}

func TestBuildRebindsUntilAttribOrderSettles(t *testing.T) {
	d := newFake()
	links := 0
	d.ReorderAttribs = func(attribs []driver.Variable, bindings map[string]uint32) []driver.Variable {
		links++
		if links == 2 {
			slices.Reverse(attribs)
			return attribs
		}
		if len(bindings) > 0 {
			slices.SortStableFunc(attribs, func(a, b driver.Variable) int {
				return int(bindings[a.Name]) - int(bindings[b.Name])
			})
		}
		return attribs
	}
	b := NewBuilder(d, WithLogger(zerolog.Nop()))

	p, err := b.Build(VertexSource(vertexSrc), FragmentSource(fragmentSrc))
	require.NoError(t, err)
	assert.Equal(t, 3, d.Count("LinkProgram"))
	assert.Equal(t, map[string]uint32{"uv": 0, "position": 1}, d.Program(p.Handle()).AttribBindings)

	s, err := p.Bind(shader.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	uv, ok := s.Attrib("uv")
	require.True(t, ok)
	assert.Equal(t, uint32(0), uv.Location())
}

func TestBuildFailsWhenAttribOrderNeverSettles(t *testing.T) {
	d := newFake()
	links := 0
	d.ReorderAttribs = func(attribs []driver.Variable, _ map[string]uint32) []driver.Variable {
		links++
		if links%2 == 1 {
			slices.Reverse(attribs)
		}
		return attribs
	}
	b := NewBuilder(d, WithLogger(zerolog.Nop()))

	p, err := b.Build(VertexSource(vertexSrc), FragmentSource(fragmentSrc))
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrLink)
	assert.ErrorContains(t, err, "did not settle")
	assert.Equal(t, 1+maxSlotPasses, d.Count("LinkProgram"))
	assert.Equal(t, 1, d.Count("DeleteProgram"))
}
