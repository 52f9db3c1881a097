package window

import (
	"runtime"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// glfwWindow holds the GLFW handle. destroyed is set once Close has released it.
type glfwWindow struct {
	window    *glfw.Window
	destroyed bool
}

// newPlatformWindow initializes GLFW, opens the window with a GL context of the configured
// version and installs the input callbacks.
//
// GLFW reference: https://www.glfw.org/docs/latest/context_guide.html
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize GLFW")
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, w.glMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, w.glMinor)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return errors.Wrapf(err, "failed to create GL %d.%d window", w.glMajor, w.glMinor)
	}
	win.MakeContextCurrent()
	interval := 0
	if w.vsync {
		interval = 1
	}
	glfw.SwapInterval(interval)
	win.SetSizeLimits(w.minWidth, w.minHeight, limit(w.maxWidth), limit(w.maxHeight))

	w.internalWindow = &glfwWindow{window: win}

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == common.KeyEsc && action == glfw.Press {
			win.SetShouldClose(true)
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			if w.onKeyDown != nil {
				w.onKeyDown(uint32(key))
			}
		case glfw.Release:
			if w.onKeyUp != nil {
				w.onKeyUp(uint32(key))
			}
		}
	})

	// Framebuffer size, not window size: glViewport takes framebuffer pixels.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
	w.width, w.height = win.GetFramebufferSize()
	return nil
}

// limit maps an unbounded (zero) size limit to glfw.DontCare.
func limit(v int) int {
	if v == 0 {
		return glfw.DontCare
	}
	return v
}

// live returns the GLFW window, or nil before creation and after Close.
func live(w *engineWindow) *glfw.Window {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok || gw.destroyed {
		return nil
	}
	return gw.window
}

func platformMakeCurrent(w *engineWindow) {
	if win := live(w); win != nil {
		win.MakeContextCurrent()
	}
}

func platformSwapBuffers(w *engineWindow) {
	if win := live(w); win != nil {
		win.SwapBuffers()
	}
}

func platformIsRunning(w *engineWindow) bool {
	win := live(w)
	return win != nil && !win.ShouldClose()
}

func platformRequestClose(w *engineWindow) {
	if win := live(w); win != nil {
		win.SetShouldClose(true)
	}
}

// platformPollEvents processes pending events without blocking and reports whether the loop
// should run another iteration.
func platformPollEvents(w *engineWindow) bool {
	if live(w) == nil {
		return false
	}
	glfw.PollEvents()
	return platformIsRunning(w)
}

// platformDestroy destroys the window, which also destroys its GL context, then terminates GLFW.
func platformDestroy(w *engineWindow) error {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return errors.New("window is not initialized")
	}
	if gw.destroyed {
		return nil
	}
	gw.destroyed = true
	gw.window.Destroy()
	glfw.Terminate()
	return nil
}
