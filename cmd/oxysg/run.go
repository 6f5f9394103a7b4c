package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-sg/engine"
	"github.com/Carmen-Shannon/oxy-sg/engine/config"
	"github.com/Carmen-Shannon/oxy-sg/engine/log"
	"github.com/Carmen-Shannon/oxy-sg/engine/profiler"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/wgpu_device"
	"github.com/Carmen-Shannon/oxy-sg/engine/window"
	"github.com/Carmen-Shannon/oxy-sg/internal/demo"
	"github.com/urfave/cli"
)

// RunDemo renders the grid demo with the configured backend.
func RunDemo(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	setupLogging(ctx, cfg)

	rc := render_context.NewRenderContext(render_context.WithLogger(log.New("render")))
	switch cfg.Backend() {
	case renderer.BackendTypeWGPU:
		return runWindowed(rc, cfg)
	default:
		return runHeadless(rc, cfg)
	}
}

// setupEngine builds the demo scene and an engine that spins it every frame.
func setupEngine(rc render_context.RenderContext, cfg config.Config, dev gpu.Device, aspect float32, options ...engine.EngineBuilderOption) (engine.Engine, *demo.Demo, error) {
	d, err := demo.Build(rc, cfg.Scene, aspect)
	if err != nil {
		return nil, nil, err
	}
	logger.Infof("built %dx%d grid with %d objects", cfg.Scene.Grid, cfg.Scene.Grid, d.Scene.Count())

	r := renderer.NewRenderer(rc, dev,
		renderer.WithSlots(cfg.SlotTable()),
		renderer.WithFrustumCulling(!cfg.Renderer.DisableCulling),
		renderer.WithRenderListCapacity(d.Scene.Count()),
	)
	eng := engine.NewEngine(r, append([]engine.EngineBuilderOption{
		engine.WithScene(d.Scene),
		engine.WithOrbitController(d.Orbit),
		engine.WithProfiler(profiler.NewProfiler(profiler.WithInterval(cfg.ProfilerInterval()))),
		engine.WithProfiling(cfg.Profiler.Enabled),
	}, options...)...)
	eng.SetTickCallback(d.Spin)
	return eng, d, nil
}

func runHeadless(rc render_context.RenderContext, cfg config.Config) error {
	frames := cfg.Renderer.Frames
	if frames == 0 {
		frames = config.Default().Renderer.Frames
		logger.Warningf("the memory backend cannot run until closed, rendering %d frames", frames)
	}

	eng, d, err := setupEngine(rc, cfg, gpu.NewMemoryDevice(gpu.WithCallLog(false)), float32(cfg.Window.Width)/float32(cfg.Window.Height))
	if err != nil {
		return err
	}
	defer eng.Renderer().Release()
	defer d.Dispose()

	logger.Noticef("rendering %d frames headless", frames)
	start := time.Now()
	err = eng.RunFrames(frames)
	displayFrameStats(eng, time.Since(start))
	return err
}

func runWindowed(rc render_context.RenderContext, cfg config.Config) error {
	w, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return err
	}
	// the engine closes the window when it quits; a window closed by the user is still open here
	defer func() { _ = w.Close() }()

	dev, err := wgpu_device.NewWGPUDevice(w.SurfaceDescriptor(), wgpu_device.WithVSync(cfg.Renderer.VSync))
	if err != nil {
		return fmt.Errorf("create wgpu device: %w", err)
	}
	defer dev.Release()
	if err := dev.ConfigureSurface(w.Width(), w.Height()); err != nil {
		return err
	}

	eng, d, err := setupEngine(rc, cfg, dev, float32(w.Width())/float32(w.Height()), engine.WithWindow(w))
	if err != nil {
		return err
	}
	defer eng.Renderer().Release()
	defer d.Dispose()

	if frames := uint64(cfg.Renderer.Frames); frames > 0 {
		eng.SetRenderCallback(func(renderer.Info) {
			if eng.Frames() >= frames {
				eng.Quit()
			}
		})
	}

	logger.Notice("rendering until the window is closed, drag to orbit and scroll to zoom")
	start := time.Now()
	err = eng.Run()
	displayFrameStats(eng, time.Since(start))
	return err
}

func displayFrameStats(eng engine.Engine, elapsed time.Duration) {
	var buf bytes.Buffer
	demo.WriteStats(&buf, demo.Summary{
		Frames:  eng.Frames(),
		Elapsed: elapsed,
		Last:    eng.Renderer().Info(),
	})
	logger.Noticef("frame statistics\n%s", buf.String())
}
