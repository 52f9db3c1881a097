// Package window opens a GLFW window that owns an OpenGL context and runs its event loop.
// Everything in this package must be called on the thread that created the window.
package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-gl/common"
)

// Window is a desktop window with a current OpenGL context.
type Window interface {
	// SetUpdateCallback sets the function run once per loop iteration, before the buffer swap.
	// Draw calls belong here.
	//
	// Parameters:
	//   - callback: the per-frame function, or nil
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function run when the framebuffer changes size.
	//
	// Parameters:
	//   - callback: receives the framebuffer width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the function run on key press and key repeat.
	//
	// Parameters:
	//   - callback: receives the key code (see common.Key*)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the function run on key release.
	//
	// Parameters:
	//   - callback: receives the key code (see common.Key*)
	SetKeyUpCallback(callback func(keyCode uint32))

	// MakeCurrent binds the window's GL context to the calling thread.
	MakeCurrent()

	// SwapBuffers presents the back buffer.
	SwapBuffers()

	// IsRunning reports whether the loop should keep going: false once a close was requested
	// by the user, by Escape or by RequestClose.
	IsRunning() bool

	// RequestClose ends ProcessMessages after the current iteration. The window and its GL
	// context stay alive until Close, so GL objects can still be deleted.
	RequestClose()

	// Close destroys the window and its GL context and terminates GLFW. Calling it more than
	// once is a no-op.
	//
	// Returns:
	//   - error: error if the window was never created
	Close() error

	// ProcessMessages polls events, runs the update callback and swaps buffers until the
	// window stops running. It does not destroy the window.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	// Size limits applied by the window manager while resizing.
	minWidth, minHeight int
	maxWidth, maxHeight int

	// width and height track the framebuffer, which differs from the window size on high-DPI displays.
	width, height int

	glMajor, glMinor int
	vsync            bool

	// internalWindow is the platform state, a *glfwWindow.
	internalWindow any

	onUpdate  func()
	onResize  func(width, height int)
	onKeyDown func(keyCode uint32)
	onKeyUp   func(keyCode uint32)
}

var _ Window = &engineWindow{}

// NewWindow opens a window and makes its OpenGL context current on the calling goroutine,
// which stays locked to its OS thread.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "oxy-gl",
		minWidth:  320,
		minHeight: 200,
		maxWidth:  3840,
		maxHeight: 2160,
		width:     1280,
		height:    720,
		glMajor:   2,
		glMinor:   1,
		vsync:     true,
	}
	for _, opt := range options {
		opt(w)
	}
	w.width = common.Clamp(w.width, w.minWidth, w.maxWidth)
	w.height = common.Clamp(w.height, w.minHeight, w.maxHeight)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) MakeCurrent() {
	platformMakeCurrent(w)
}

func (w *engineWindow) SwapBuffers() {
	platformSwapBuffers(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunning(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformDestroy(w)
}

func (w *engineWindow) ProcessMessages() {
	for platformPollEvents(w) {
		if w.onUpdate != nil {
			w.onUpdate()
		}
		w.SwapBuffers()
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
