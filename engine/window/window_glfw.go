package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var errClosed = errors.New("window: already closed")

type glfwWindow struct {
	window  *glfw.Window
	running bool
}

// newPlatformWindow creates the GLFW window without a client API, since wgpu drives the surface.
// The calling goroutine stays locked to its OS thread for the lifetime of the window.
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initialize GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("create GLFW window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, glfw.DontCare, glfw.DontCare)

	gw := &glfwWindow{window: win, running: true}
	w.platform = gw

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running = false
			win.SetShouldClose(true)
			return
		}
		if (action == glfw.Press || action == glfw.Repeat) && w.onKeyDown != nil {
			w.onKeyDown(uint32(key))
		}
	})

	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		w.dragging = action == glfw.Press
		w.lastX, w.lastY = win.GetCursorPos()
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.cursorMoved(x, y)
	})

	// framebuffer size, not window size, so high-DPI surfaces are configured in pixels
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
	w.width, w.height = win.GetFramebufferSize()
	return nil
}

func platformSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	if w.platform == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(w.platform.window)
}

func platformIsRunning(w *engineWindow) bool {
	if w.platform == nil {
		return false
	}
	return w.platform.running && !w.platform.window.ShouldClose()
}

func platformClose(w *engineWindow) error {
	if w.platform == nil {
		return errClosed
	}
	w.platform.running = false
	w.platform.window.Destroy()
	w.platform = nil
	glfw.Terminate()
	return nil
}

// platformPollEvents polls pending events without blocking.
func platformPollEvents(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunning(w)
}
