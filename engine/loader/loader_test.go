package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/driver"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/driver/drivertest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/program"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	vertexGLSL   = "attribute vec3 position;\nvoid main() { gl_Position = vec4(position, 1.0); }\n"
	fragmentGLSL = "uniform float time;\nvoid main() { gl_FragColor = vec4(time); }\n"
)

type errorLog struct {
	mu   sync.Mutex
	errs []error
}

func (e *errorLog) handle(_ string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errs = append(e.errs, err)
}

func (e *errorLog) all() []error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]error(nil), e.errs...)
}

func newFake() *drivertest.Driver {
	d := drivertest.New()
	d.Template = drivertest.Program{
		Uniforms: []driver.Variable{{Name: "time", Type: driver.TypeFloat, Size: 1}},
		Attribs:  []driver.Variable{{Name: "position", Type: driver.TypeFloatVec3, Size: 1}},
	}
	return d
}

// gatedServer serves the two sources, each held until its gate is closed.
func gatedServer(t *testing.T, vertexGate, fragmentGate <-chan struct{}) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/basic.vert", func(w http.ResponseWriter, r *http.Request) {
		<-vertexGate
		_, _ = w.Write([]byte(vertexGLSL))
	})
	mux.HandleFunc("/basic.frag", func(w http.ResponseWriter, r *http.Request) {
		<-fragmentGate
		_, _ = w.Write([]byte(fragmentGLSL))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadLinksOnceRegardlessOfFetchOrder(t *testing.T) {
	for _, vertexFirst := range []bool{true, false} {
		name := "fragment first"
		if vertexFirst {
			name = "vertex first"
		}
		t.Run(name, func(t *testing.T) {
			vertexGate, fragmentGate := make(chan struct{}), make(chan struct{})
			srv := gatedServer(t, vertexGate, fragmentGate)
			d := newFake()
			errs := &errorLog{}
			l := NewLoader(d, WithLogger(zerolog.Nop()), WithErrorHandler(errs.handle))

			s := l.Load(context.Background(), srv.URL+"/basic.vert", srv.URL+"/basic.frag")
			require.NotNil(t, s)
			assert.False(t, s.Ready())
			assert.Empty(t, s.Uniforms())

			if vertexFirst {
				close(vertexGate)
				time.Sleep(20 * time.Millisecond)
				assert.Zero(t, l.Poll())
				close(fragmentGate)
			} else {
				close(fragmentGate)
				time.Sleep(20 * time.Millisecond)
				assert.Zero(t, l.Poll())
				close(vertexGate)
			}
			l.Wait()

			assert.False(t, s.Ready())
			assert.Equal(t, 1, l.Poll())
			assert.Zero(t, l.Poll())

			assert.True(t, s.Ready())
			assert.Equal(t, 1, d.Count("CreateProgram"))
			assert.Equal(t, 1, d.Count("ActiveUniformCount"))
			assert.Empty(t, errs.all())

			_, ok := s.Uniform("time")
			assert.True(t, ok)
			pos, ok := s.Attrib("position")
			require.True(t, ok)
			assert.Equal(t, uint32(0), pos.Location())

			l.Close()
			assert.Equal(t, 1, d.Count("DeleteProgram"))
		})
	}
}

func TestLoadFetchFailureLeavesBindingEmpty(t *testing.T) {
	vertexGate := make(chan struct{})
	close(vertexGate)
	srv := gatedServer(t, vertexGate, vertexGate)
	d := newFake()
	errs := &errorLog{}
	l := NewLoader(d, WithLogger(zerolog.Nop()), WithErrorHandler(errs.handle), WithRetryMax(0))
	defer l.Close()

	s := l.Load(context.Background(), srv.URL+"/basic.vert", srv.URL+"/missing.frag")
	l.Wait()

	assert.Zero(t, l.Poll())
	assert.False(t, s.Ready())
	assert.Empty(t, s.Attribs())
	assert.Zero(t, d.Count("CreateProgram"))

	got := errs.all()
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Error(), "404")
}

func TestLoadTimeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	d := newFake()
	errs := &errorLog{}
	l := NewLoader(d, WithLogger(zerolog.Nop()), WithErrorHandler(errs.handle), WithTimeout(50*time.Millisecond), WithRetryMax(0))
	defer l.Close()

	s := l.Load(context.Background(), srv.URL+"/a.vert", srv.URL+"/a.frag")
	l.Wait()

	assert.Zero(t, l.Poll())
	assert.False(t, s.Ready())
	got := errs.all()
	require.Len(t, got, 1)
	assert.True(t, errors.Is(got[0], context.DeadlineExceeded))
}

func TestLoadCancelled(t *testing.T) {
	gate := make(chan struct{})
	srv := gatedServer(t, gate, gate)
	defer close(gate)

	d := newFake()
	errs := &errorLog{}
	l := NewLoader(d, WithLogger(zerolog.Nop()), WithErrorHandler(errs.handle), WithRetryMax(0))

	ctx, cancel := context.WithCancel(context.Background())
	s := l.Load(ctx, srv.URL+"/basic.vert", srv.URL+"/basic.frag")
	cancel()
	l.Wait()

	assert.Zero(t, l.Poll())
	assert.False(t, s.Ready())
	got := errs.all()
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], context.Canceled)
}

func TestLoadCompileFailureReportedFromPoll(t *testing.T) {
	gate := make(chan struct{})
	close(gate)
	srv := gatedServer(t, gate, gate)

	d := newFake()
	d.CompileFail = "gl_FragColor"
	errs := &errorLog{}
	l := NewLoader(d, WithLogger(zerolog.Nop()), WithErrorHandler(errs.handle))
	defer l.Close()

	s := l.Load(context.Background(), srv.URL+"/basic.vert", srv.URL+"/basic.frag")
	l.Wait()
	assert.Empty(t, errs.all())

	assert.Equal(t, 1, l.Poll())
	assert.False(t, s.Ready())
	got := errs.all()
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], program.ErrCompile)
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "basic.vert"), []byte("//@oxy:include transform\n"+vertexGLSL), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "basic.frag"), []byte(fragmentGLSL), 0o644))

	d := newFake()
	l := NewLoader(d, WithLogger(zerolog.Nop()), WithRoot(dir), WithPreProcessor(shader.NewPreProcessor()))
	defer l.Close()

	s := l.Load(context.Background(), "basic.vert", "file://"+filepath.ToSlash(filepath.Join(dir, "basic.frag")))
	l.Wait()
	require.Equal(t, 1, l.Poll())
	assert.True(t, s.Ready())

	compiles := d.CallsTo("CompileShader")
	require.Len(t, compiles, 2)
	assert.Contains(t, compiles[0].Args[1], "uniform mat4 mvp;")
}

func TestLoadAfterClose(t *testing.T) {
	d := newFake()
	errs := &errorLog{}
	l := NewLoader(d, WithLogger(zerolog.Nop()), WithErrorHandler(errs.handle))
	l.Close()

	s := l.Load(context.Background(), "a.vert", "a.frag")
	assert.False(t, s.Ready())
	got := errs.all()
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], ErrClosed)
}

func TestHTTPBackendRejectsOversizedSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 17)))
	}))
	defer srv.Close()

	b := newHTTPSourceBackend(0, time.Second, srv.Client())
	b.limit = 16
	_, err := b.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrSourceTooLarge)

	b.limit = 17
	src, err := b.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, src, 17)
}

func TestResolveBackendType(t *testing.T) {
	tests := []struct {
		location string
		want     SourceBackendType
		wantErr  bool
	}{
		{"http://localhost/a.vert", BackendTypeHTTP, false},
		{"HTTPS://example.com/a.vert", BackendTypeHTTP, false},
		{"file:///tmp/a.vert", BackendTypeFile, false},
		{"shaders/a.vert", BackendTypeFile, false},
		{"ftp://example.com/a.vert", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			got, err := resolveBackendType(tt.location)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLoaderPanicsWithoutDriver(t *testing.T) {
	assert.PanicsWithValue(t, "loader: a driver is required", func() {
		NewLoader(nil)
	})
}
