// Package window opens a native window for the WebGPU device and forwards its input events.
package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window is a native window with a non-blocking message loop.
type Window interface {
	// SetUpdateCallback sets the function called once per message loop iteration, after events
	// were polled.
	//
	// Parameters:
	//   - callback: function to call, or nil to disable
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer size changes.
	//
	// Parameters:
	//   - callback: function receiving the new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving the vertical scroll delta, positive when scrolling up
	SetScrollCallback(callback func(delta float32))

	// SetDragCallback sets the callback for cursor movement while the left button is held.
	//
	// Parameters:
	//   - callback: function receiving the cursor movement in pixels since the last event
	SetDragCallback(callback func(dx, dy float32))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the GLFW key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SurfaceDescriptor returns the platform surface descriptor for wgpu.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor, or nil if the window was closed
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is open and no close was requested.
	//
	// Returns:
	//   - bool: true while running
	IsRunning() bool

	// Close destroys the window and terminates GLFW.
	//
	// Returns:
	//   - error: an error if the window was already closed
	Close() error

	// ProcessMessages runs the message loop until the window closes, calling the update callback
	// on every iteration. It must run on the goroutine that created the window.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

type engineWindow struct {
	title  string
	width  int
	height int

	minWidth, minHeight int

	platform *glfwWindow

	onUpdate  func()
	onResize  func(width, height int)
	onScroll  func(delta float32)
	onDrag    func(dx, dy float32)
	onKeyDown func(keyCode uint32)

	dragging     bool
	lastX, lastY   float64
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a window.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
//   - error: an error if GLFW could not be initialized or the window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "oxy-sg",
		width:     1280,
		height:    720,
		minWidth:  320,
		minHeight: 200,
	}
	for _, option := range options {
		option(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetDragCallback(callback func(dx, dy float32)) {
	w.onDrag = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunning(w)
}

func (w *engineWindow) Close() error {
	return platformClose(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if !platformPollEvents(w) {
			break
		}
		if w.onUpdate != nil {
			w.onUpdate()
		}
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// cursorMoved turns absolute cursor positions into drag deltas.
func (w *engineWindow) cursorMoved(x, y float64) {
	dx, dy := x-w.lastX, y-w.lastY
	w.lastX, w.lastY = x, y
	if w.dragging && w.onDrag != nil {
		w.onDrag(float32(dx), float32(dy))
	}
}
