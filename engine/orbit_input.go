package engine

import (
	"github.com/Carmen-Shannon/oxy-sg/engine/camera"
)

// DragRadiansPerPixel converts cursor drag distance into orbit angles.
const DragRadiansPerPixel = 0.005

// InputSource is the subset of window.Window that produces orbit input.
type InputSource interface {
	SetDragCallback(callback func(dx, dy float32))
	SetScrollCallback(callback func(delta float32))
}

// BindOrbitInput routes drags to Orbit and scrolling to Zoom. Dragging right orbits left and
// dragging down raises the camera.
//
// Parameters:
//   - src: the input source, usually a window
//   - oc: the controller to drive
func BindOrbitInput(src InputSource, oc camera.OrbitController) {
	src.SetDragCallback(func(dx, dy float32) {
		oc.Orbit(-dx*DragRadiansPerPixel, dy*DragRadiansPerPixel)
	})
	src.SetScrollCallback(func(delta float32) {
		oc.Zoom(delta)
	})
}
