package loader

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/driver"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/program"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultWorkers  = 4
	defaultQueue    = 64
	defaultRetryMax = 3
	workerIdle      = time.Second
)

// ErrClosed is reported for loads started after Close.
var ErrClosed = errors.New("loader: closed")

// ErrorHandler receives load failures. key is the binding's key.
type ErrorHandler func(key string, err error)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.Mutex

	d        driver.Driver
	programs program.Builder
	pp       shader.PreProcessor

	pool     worker.DynamicWorkerPool
	workers  int
	inflight sync.WaitGroup
	nextTask int

	backends   map[SourceBackendType]sourceBackend
	timeout    time.Duration
	retryMax   int
	httpClient *http.Client
	root       string

	// pending holds GL work queued by fetch tasks; Poll drains it on the GL thread.
	pending []func()
	built   []program.Program
	closed  bool

	logger  zerolog.Logger
	onError ErrorHandler
}

// Loader fetches vertex and fragment sources asynchronously and binds the linked program to
// a binding returned up front. Fetches run on a bounded worker pool; compile, link and bind run
// on the GL thread inside Poll.
type Loader interface {
	// Load starts fetching both sources and returns an unpopulated binding at once. Once both
	// fetches succeed, the next Poll links the program and populates the binding exactly once,
	// whichever fetch finished first. If either fetch fails, is cancelled through ctx or exceeds
	// the loader's timeout, the binding stays unpopulated and the error handler is called.
	//
	// Parameters:
	//   - ctx: cancels both fetches
	//   - vertexURL: location of the vertex source (http(s)://, file:// or a path)
	//   - fragmentURL: location of the fragment source
	//   - options: variadic list of shader.ShaderBuilderOption for the returned binding
	//
	// Returns:
	//   - shader.Shader: the binding, populated by a later Poll
	Load(ctx context.Context, vertexURL, fragmentURL string, options ...shader.ShaderBuilderOption) shader.Shader

	// Poll runs the GL work queued by finished loads. It must be called on the thread that owns
	// the GL context, typically once per frame.
	//
	// Returns:
	//   - int: the number of queued jobs run
	Poll() int

	// Wait blocks until every started fetch has finished and queued its result.
	Wait()

	// Close waits for outstanding fetches, runs their queued GL work, then deletes every program
	// the loader linked and the builder's cached shader objects. Call it on the GL thread.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a Loader using the given driver for program builds and bindings.
//
// Parameters:
//   - d: the driver owning the GL context
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: the loader
func NewLoader(d driver.Driver, options ...LoaderBuilderOption) Loader {
	if d == nil {
		panic("loader: a driver is required")
	}
	l := &loader{
		d:        d,
		workers:  defaultWorkers,
		timeout:  defaultTimeout,
		backends: make(map[SourceBackendType]sourceBackend),
		retryMax: defaultRetryMax,
		logger:   log.Logger,
	}
	for _, option := range options {
		option(l)
	}

	if _, ok := l.backends[BackendTypeFile]; !ok {
		l.backends[BackendTypeFile] = newFileSourceBackend(l.root)
	}
	if _, ok := l.backends[BackendTypeHTTP]; !ok {
		l.backends[BackendTypeHTTP] = newHTTPSourceBackend(l.retryMax, l.timeout, l.httpClient)
	}
	if l.programs == nil {
		opts := []program.BuilderOption{program.WithLogger(l.logger)}
		if l.pp != nil {
			opts = append(opts, program.WithPreProcessor(l.pp))
		}
		l.programs = program.NewBuilder(d, opts...)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, defaultQueue, workerIdle)
	return l
}

func (l *loader) Load(ctx context.Context, vertexURL, fragmentURL string, options ...shader.ShaderBuilderOption) shader.Shader {
	key := vertexURL + "+" + fragmentURL
	opts := append([]shader.ShaderBuilderOption{shader.WithKey(key), shader.WithLogger(l.logger)}, options...)
	s := shader.NewPending(l.d, opts...)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		l.fail(s.Key(), ErrClosed)
		return s
	}
	id := l.nextTask
	l.nextTask++
	l.inflight.Add(1)
	l.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer l.inflight.Done()
			defer cancel()

			vertex, fragment, err := l.fetchPair(ctx, vertexURL, fragmentURL)
			if err != nil {
				l.fail(s.Key(), err)
				return nil, err
			}
			l.enqueue(func() {
				l.link(s, vertex, fragment)
			})
			return nil, nil
		},
	})
	return s
}

// fetchPair fetches both sources concurrently. The first failure cancels the other fetch.
func (l *loader) fetchPair(ctx context.Context, vertexURL, fragmentURL string) (string, string, error) {
	var vertex, fragment string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		src, err := l.fetch(gctx, vertexURL)
		vertex = src
		return err
	})
	g.Go(func() error {
		src, err := l.fetch(gctx, fragmentURL)
		fragment = src
		return err
	})
	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", "", errors.Wrap(ctxErr, "loader: fetch cancelled")
		}
		return "", "", err
	}
	return vertex, fragment, nil
}

func (l *loader) fetch(ctx context.Context, location string) (string, error) {
	t, err := resolveBackendType(location)
	if err != nil {
		return "", err
	}
	backend, ok := l.backends[t]
	if !ok {
		return "", errors.Errorf("loader: no %v backend", t)
	}
	return backend.Fetch(ctx, location)
}

// link runs on the GL thread. It is queued once per Load.
func (l *loader) link(s shader.PendingShader, vertex, fragment string) {
	p, err := l.programs.Build(program.VertexSource(vertex), program.FragmentSource(fragment))
	if err != nil {
		l.fail(s.Key(), err)
		return
	}
	if err := s.Bind(p.Handle()); err != nil {
		p.Release()
		l.fail(s.Key(), err)
		return
	}

	l.mu.Lock()
	l.built = append(l.built, p)
	l.mu.Unlock()
}

func (l *loader) enqueue(job func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = append(l.pending, job)
}

func (l *loader) fail(key string, err error) {
	l.logger.Error().Err(err).Str("shader", key).Msg("loader: load failed")
	if l.onError != nil {
		l.onError(key, err)
	}
}

func (l *loader) Poll() int {
	l.mu.Lock()
	jobs := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, job := range jobs {
		job()
	}
	return len(jobs)
}

func (l *loader) Wait() {
	l.inflight.Wait()
}

func (l *loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()

	l.inflight.Wait()
	l.Poll()

	l.mu.Lock()
	built := l.built
	l.built = nil
	l.mu.Unlock()

	for _, p := range built {
		p.Release()
	}
	l.programs.Release()
}
