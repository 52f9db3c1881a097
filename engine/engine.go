package engine

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/loader"
	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
	"github.com/rs/zerolog/log"
)

// maxTicksPerFrame bounds the fixed-step catch-up after a long frame.
const maxTicksPerFrame = 5

// engine implements the Engine interface.
// Drives the window's message loop on the GL thread and runs loader and tick work per frame.
type engine struct {
	mu sync.Mutex

	window window.Window
	loader loader.Loader

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickRate         time.Duration
	accumulator      time.Duration
	tickCallback     func(deltaTime float32)
	renderCallback   func(deltaTime float32)
	shutdownCallback func()

	now       func() time.Time
	lastFrame time.Time

	quitOnce sync.Once
}

// Engine is the main entry point for the engine.
// It owns the frame loop: each window update polls the shader loader, runs fixed-rate ticks,
// then renders. Everything runs on the thread that created the window.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Loader returns the shader loader polled each frame, or nil if none was set.
	//
	// Returns:
	//   - loader.Loader: the loader
	Loader() loader.Loader

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each fixed tick.
	// Use this for game logic, input processing and animation updates.
	//
	// Parameters:
	//   - callback: function receiving the fixed delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called once per frame after the ticks.
	// Shader bindings populated by this frame's loader poll are ready here.
	//
	// Parameters:
	//   - callback: function receiving the frame delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetShutdownCallback registers the function run once after the last frame, while the GL
	// context is still current. Delete caller-owned GL objects here.
	//
	// Parameters:
	//   - callback: the shutdown function
	SetShutdownCallback(callback func())

	// Run starts the frame loop and blocks until the window stops running. It then closes the
	// loader while the GL context is still alive, and destroys the window last.
	Run()

	// Quit asks the window to stop, which ends Run after the current frame. Resources are
	// released by Run, not here. Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// A window is required.
//
// Parameters:
//   - options: functional options for engine configuration (window, loader, profiling, tick rate)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler: profiler.NewProfiler(),
		tickRate: time.Second / 60,
		now:      time.Now,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.window == nil {
		panic("engine: a window is required")
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Loader() loader.Loader {
	return e.loader
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	e.profilingEnabled = true
	e.mu.Unlock()
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	e.profilingEnabled = false
	e.mu.Unlock()
}

func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	e.mu.Lock()
	e.tickRate = time.Duration(float64(time.Second) / fps)
	e.mu.Unlock()
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	e.tickCallback = callback
	e.mu.Unlock()
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	e.renderCallback = callback
	e.mu.Unlock()
}

func (e *engine) SetShutdownCallback(callback func()) {
	e.mu.Lock()
	e.shutdownCallback = callback
	e.mu.Unlock()
}

func (e *engine) Run() {
	e.lastFrame = e.now()
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()

	e.mu.Lock()
	shutdown := e.shutdownCallback
	e.mu.Unlock()
	if shutdown != nil {
		shutdown()
	}
	if e.loader != nil {
		e.loader.Close()
	}
	if err := e.window.Close(); err != nil {
		log.Error().Err(err).Msg("engine: closing window")
	}
}

func (e *engine) Quit() {
	e.quitOnce.Do(e.window.RequestClose)
}

// frame runs one iteration of the loop: loader GL work, fixed ticks, render, profiler.
func (e *engine) frame() {
	current := e.now()
	delta := current.Sub(e.lastFrame)
	e.lastFrame = current

	if e.loader != nil {
		e.loader.Poll()
	}

	e.mu.Lock()
	tickRate, tick, render, profiling := e.tickRate, e.tickCallback, e.renderCallback, e.profilingEnabled
	e.mu.Unlock()

	e.accumulator += delta
	for n := 0; e.accumulator >= tickRate; n++ {
		if n == maxTicksPerFrame {
			e.accumulator = 0
			break
		}
		if tick != nil {
			tick(float32(tickRate.Seconds()))
		}
		e.accumulator -= tickRate
	}

	if render != nil {
		render(float32(delta.Seconds()))
	}
	if profiling {
		e.profiler.Tick()
	}
}
