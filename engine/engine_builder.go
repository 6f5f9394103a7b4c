package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-sg/engine/camera"
	"github.com/Carmen-Shannon/oxy-sg/engine/log"
	"github.com/Carmen-Shannon/oxy-sg/engine/profiler"
	"github.com/Carmen-Shannon/oxy-sg/engine/scene"
)

// EngineBuilderOption is a functional option for configuring an Engine.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables profiler reports.
//
// Parameters:
//   - enabled: if true, the profiler is ticked after every frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow attaches a window. Its resize events reconfigure the device surface and the camera
// aspect, and Run drives frames from its message loop.
//
// Parameters:
//   - w: an open window, usually a window.Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene sets the scene to render.
//
// Parameters:
//   - s: the scene
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithCamera sets a camera used instead of the scene's camera.
func WithCamera(cam camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = cam
	}
}

// WithOrbitController applies the controller to the active camera before every frame and, with a
// window, binds drag and scroll input to it.
//
// Parameters:
//   - oc: the orbit controller
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithOrbitController(oc camera.OrbitController) EngineBuilderOption {
	return func(e *engine) {
		e.orbit = oc
	}
}

// WithRenderFrameLimit caps the frame rate. Pass 0 to uncap it (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}

// WithLogger sets the engine's logger.
func WithLogger(l log.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = l
	}
}

// WithClock replaces the time source and the sleep used for frame limiting.
func WithClock(now func() time.Time, sleep func(time.Duration)) EngineBuilderOption {
	return func(e *engine) {
		e.now = now
		e.sleep = sleep
	}
}
