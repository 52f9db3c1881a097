package engine

import (
	"context"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow runs a fixed number of frames, advancing the clock before each one. Lifecycle
// calls are appended to events, shared with fakeLoader.
type fakeWindow struct {
	frames    int
	step      time.Duration
	clock     *time.Time
	update    func()
	requested int
	destroyed bool
	events    *[]string
}

func (w *fakeWindow) SetUpdateCallback(callback func()) { w.update = callback }
func (w *fakeWindow) SetResizeCallback(func(width, height int)) {}
func (w *fakeWindow) SetKeyDownCallback(func(keyCode uint32)) {}
func (w *fakeWindow) SetKeyUpCallback(func(keyCode uint32)) {}
func (w *fakeWindow) MakeCurrent() {}
func (w *fakeWindow) SwapBuffers() {}
func (w *fakeWindow) IsRunning() bool { return w.requested == 0 && !w.destroyed }
func (w *fakeWindow) Width() int { return 640 }
func (w *fakeWindow) Height() int { return 480 }

func (w *fakeWindow) RequestClose() {
	w.requested++
	*w.events = append(*w.events, "window.RequestClose")
}

func (w *fakeWindow) Close() error {
	w.destroyed = true
	*w.events = append(*w.events, "window.Close")
	return nil
}

func (w *fakeWindow) ProcessMessages() {
	for i := 0; i < w.frames && w.IsRunning(); i++ {
		*w.clock = w.clock.Add(w.step)
		w.update()
	}
}

type fakeLoader struct {
	polls  int
	closed bool
	window *fakeWindow
	events *[]string
}

func (l *fakeLoader) Load(context.Context, string, string, ...shader.ShaderBuilderOption) shader.Shader {
	return nil
}
func (l *fakeLoader) Poll() int { l.polls++; return 0 }
func (l *fakeLoader) Wait() {}

func (l *fakeLoader) Close() {
	l.closed = true
	state := "live"
	if l.window.destroyed {
		state = "destroyed"
	}
	*l.events = append(*l.events, "loader.Close("+state+")")
}

func newTestEngine(frames int, step time.Duration, options ...EngineBuilderOption) (Engine, *fakeWindow, *fakeLoader) {
	clock := time.Unix(0, 0)
	events := []string{}
	w := &fakeWindow{frames: frames, step: step, clock: &clock, events: &events}
	l := &fakeLoader{window: w, events: &events}
	opts := append([]EngineBuilderOption{
		WithWindow(w),
		WithLoader(l),
		WithClock(func() time.Time { return clock }),
	}, options...)
	return NewEngine(opts...), w, l
}

func TestRunPollsLoaderBeforeRender(t *testing.T) {
	e, _, l := newTestEngine(3, 10*time.Millisecond)

	var pollsSeen []int
	e.SetRenderCallback(func(float32) {
		pollsSeen = append(pollsSeen, l.polls)
	})
	e.Run()

	assert.Equal(t, []int{1, 2, 3}, pollsSeen)
	assert.True(t, l.closed)
}

func TestRunFixedTicks(t *testing.T) {
	e, _, _ := newTestEngine(4, 25*time.Millisecond, WithTickRate(100))

	ticks := 0
	var deltas []float32
	e.SetTickCallback(func(dt float32) {
		ticks++
		assert.InDelta(t, 0.01, dt, 1e-6)
	})
	e.SetRenderCallback(func(dt float32) {
		deltas = append(deltas, dt)
	})
	e.Run()

	assert.Equal(t, 10, ticks)
	require.Len(t, deltas, 4)
	assert.InDelta(t, 0.025, deltas[0], 1e-6)
}

func TestRunCapsCatchUpTicks(t *testing.T) {
	e, _, _ := newTestEngine(1, time.Second, WithTickRate(60))

	ticks := 0
	e.SetTickCallback(func(float32) { ticks++ })
	e.Run()

	assert.Equal(t, maxTicksPerFrame, ticks)
}

func TestQuitStopsLoopAndReleasesInOrder(t *testing.T) {
	e, w, _ := newTestEngine(10, time.Millisecond)

	frames := 0
	e.SetRenderCallback(func(float32) {
		frames++
		if frames == 2 {
			e.Quit()
			e.Quit()
			assert.False(t, w.destroyed, "Quit must not destroy the window mid-frame")
		}
	})
	e.Run()

	assert.Equal(t, 2, frames)
	assert.Equal(t, []string{"window.RequestClose", "loader.Close(live)", "window.Close"}, *w.events)
}

func TestRunReleasesWhenWindowClosedByUser(t *testing.T) {
	e, w, l := newTestEngine(3, time.Millisecond)
	e.SetShutdownCallback(func() {
		assert.False(t, w.destroyed)
		*w.events = append(*w.events, "shutdown")
	})
	e.Run()

	assert.True(t, l.closed)
	assert.True(t, w.destroyed)
	assert.Equal(t, []string{"shutdown", "loader.Close(live)", "window.Close"}, *w.events)
}

func TestNewEngineRequiresWindow(t *testing.T) {
	assert.PanicsWithValue(t, "engine: a window is required", func() {
		NewEngine()
	})
}
