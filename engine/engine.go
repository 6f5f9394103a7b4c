// Package engine runs the frame loop: it advances the application through a tick callback,
// renders the scene, presents the frame and feeds the profiler.
//
// Ticking and rendering share a single goroutine, so tick callbacks may edit the scene graph
// freely. With a window the loop runs inside the window's message loop.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-sg/engine/camera"
	"github.com/Carmen-Shannon/oxy-sg/engine/log"
	"github.com/Carmen-Shannon/oxy-sg/engine/profiler"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sg/engine/scene"
)

// Presenter is implemented by devices with a swapchain.
type Presenter interface {
	Present()
}

// SurfaceConfigurer is implemented by devices whose surface follows the window size.
type SurfaceConfigurer interface {
	ConfigureSurface(width, height int) error
}

// Window is the part of window.Window the engine drives.
type Window interface {
	InputSource
	SetUpdateCallback(callback func())
	SetResizeCallback(callback func(width, height int))
	IsRunning() bool
	Close() error
	ProcessMessages()
	Width() int
	Height() int
}

type engine struct {
	logger   log.Logger
	renderer renderer.Renderer
	window   Window
	scene    scene.Scene
	camera   camera.Camera
	orbit    camera.OrbitController

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback     func(deltaTime float32)
	renderCallback   func(info renderer.Info)
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	now       func() time.Time
	sleep     func(time.Duration)
	lastFrame time.Time
	frames    uint64

	quitChannel chan struct{}
	quitOnce    sync.Once
	err         error
}

// Engine owns the frame loop around one renderer and one scene.
type Engine interface {
	// Renderer returns the renderer frames are drawn with.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// Window returns the window, or nil for a headless engine.
	//
	// Returns:
	//   - Window: the window instance
	Window() Window

	// Scene returns the scene being rendered.
	//
	// Returns:
	//   - scene.Scene: the scene, or nil
	Scene() scene.Scene

	// SetScene replaces the scene being rendered.
	//
	// Parameters:
	//   - s: the new scene, or nil to render nothing
	SetScene(s scene.Scene)

	// Camera returns the camera override, or nil when the scene's own camera is used.
	//
	// Returns:
	//   - camera.Camera: the camera override
	Camera() camera.Camera

	// SetCamera sets a camera used instead of the scene's camera.
	//
	// Parameters:
	//   - cam: the camera, or nil to use the scene's camera
	SetCamera(cam camera.Camera)

	// Profiler returns the profiler ticked after every frame while profiling is enabled.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler
	Profiler() *profiler.Profiler

	// EnableProfiler enables profiler reports.
	EnableProfiler()

	// DisableProfiler disables profiler reports.
	DisableProfiler()

	// SetTickCallback registers the function called at the start of every frame. Use it for
	// application logic and scene edits.
	//
	// Parameters:
	//   - callback: function receiving the seconds since the previous frame
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after every rendered frame.
	//
	// Parameters:
	//   - callback: function receiving the statistics of the frame
	SetRenderCallback(callback func(info renderer.Info))

	// SetRenderFrameLimit caps the frame rate. Pass 0 to uncap it.
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Step runs one frame: tick, render, present, profile and then sleeps out the frame limit.
	//
	// Returns:
	//   - error: the wrapped render error
	Step() error

	// RunFrames runs up to n frames, stopping early on Quit or on the first error.
	//
	// Parameters:
	//   - n: the number of frames
	//
	// Returns:
	//   - error: the first frame error
	RunFrames(n int) error

	// Run runs frames until Quit is called or the window closes. With a window it must be
	// called from the goroutine that created the window.
	//
	// Returns:
	//   - error: the frame error that stopped the loop, if any
	Run() error

	// Frames returns the number of frames stepped.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Quit stops Run and RunFrames. Safe to call multiple times and from any goroutine.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an engine drawing with r. The engine and its default profiler log through
// the logger of r's render context unless WithLogger replaces it.
//
// Parameters:
//   - r: the renderer
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(r renderer.Renderer, options ...EngineBuilderOption) Engine {
	e := &engine{
		logger:      r.Context().Logger(),
		renderer:    r,
		now:         time.Now,
		sleep:       time.Sleep,
		quitChannel: make(chan struct{}),
	}
	for _, option := range options {
		option(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithClock(e.now), profiler.WithLogger(e.logger))
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
		if e.orbit != nil {
			BindOrbitInput(e.window, e.orbit)
		}
	}
	return e
}

func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if sc, ok := e.renderer.Device().(SurfaceConfigurer); ok {
		if err := sc.ConfigureSurface(width, height); err != nil {
			e.logger.Warningf("reconfigure surface to %dx%d: %v", width, height, err)
		}
	}
	if cam := e.activeCamera(); cam != nil {
		cam.SetAspect(float32(width) / float32(height))
	}
}

func (e *engine) activeCamera() camera.Camera {
	if e.camera != nil {
		return e.camera
	}
	if e.scene != nil {
		return e.scene.Camera()
	}
	return nil
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Window() Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) SetScene(s scene.Scene) {
	e.scene = s
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) SetCamera(cam camera.Camera) {
	e.camera = cam
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(info renderer.Info)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

func (e *engine) Step() error {
	start := e.now()
	var dt float32
	if !e.lastFrame.IsZero() {
		dt = float32(start.Sub(e.lastFrame).Seconds())
	}
	e.lastFrame = start
	e.frames++

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
	if e.orbit != nil {
		if cam := e.activeCamera(); cam != nil {
			e.orbit.Apply(cam)
		}
	}

	if e.scene != nil {
		if err := e.renderer.Render(e.scene, e.camera); err != nil {
			return fmt.Errorf("engine frame %d: %w", e.frames, err)
		}
		if p, ok := e.renderer.Device().(Presenter); ok {
			p.Present()
		}
	}

	info := e.renderer.Info()
	if e.renderCallback != nil {
		e.renderCallback(info)
	}
	if e.profilingEnabled {
		e.profiler.Tick(info)
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			e.sleep(remaining)
		}
	}
	return nil
}

func (e *engine) quitting() bool {
	select {
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}

func (e *engine) RunFrames(n int) error {
	for i := 0; i < n && !e.quitting(); i++ {
		if err := e.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (e *engine) Run() error {
	if e.window == nil {
		for !e.quitting() {
			if err := e.Step(); err != nil {
				return err
			}
		}
		return nil
	}

	e.window.SetUpdateCallback(func() {
		if !e.quitting() {
			if err := e.Step(); err != nil {
				e.err = err
				e.Quit()
			}
		}
		if e.quitting() && e.window.IsRunning() {
			if err := e.window.Close(); err != nil {
				e.logger.Warningf("close window: %v", err)
			}
		}
	})
	e.window.ProcessMessages()
	e.Quit()
	return e.err
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}
