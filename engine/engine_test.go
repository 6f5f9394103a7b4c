package engine

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/Carmen-Shannon/oxy-sg/engine/camera"
	"github.com/Carmen-Shannon/oxy-sg/engine/game_object"
	"github.com/Carmen-Shannon/oxy-sg/engine/log"
	"github.com/Carmen-Shannon/oxy-sg/engine/material"
	"github.com/Carmen-Shannon/oxy-sg/engine/node"
	"github.com/Carmen-Shannon/oxy-sg/engine/primitives"
	"github.com/Carmen-Shannon/oxy-sg/engine/profiler"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-sg/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type presentingDevice struct {
	*gpu.MemoryDevice
	presents     int
	configured   [][2]int
	configureErr error
}

func (d *presentingDevice) Present() {
	d.presents++
}

func (d *presentingDevice) ConfigureSurface(width, height int) error {
	d.configured = append(d.configured, [2]int{width, height})
	return d.configureErr
}

type fakeWindow struct {
	update  func()
	resize  func(width, height int)
	drag    func(dx, dy float32)
	scroll  func(delta float32)
	running bool
	closed  int
}

func (w *fakeWindow) SetUpdateCallback(callback func())                  { w.update = callback }
func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) { w.resize = callback }
func (w *fakeWindow) SetDragCallback(callback func(dx, dy float32))      { w.drag = callback }
func (w *fakeWindow) SetScrollCallback(callback func(delta float32))     { w.scroll = callback }
func (w *fakeWindow) IsRunning() bool                                    { return w.running }
func (w *fakeWindow) Width() int                                         { return 800 }
func (w *fakeWindow) Height() int                                        { return 600 }

func (w *fakeWindow) Close() error {
	w.running = false
	w.closed++
	return nil
}

func (w *fakeWindow) ProcessMessages() {
	for w.running {
		if w.update != nil {
			w.update()
		}
	}
}

type fakeClock struct {
	t      time.Time
	sleeps []time.Duration
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.t = c.t.Add(d)
}

type fixture struct {
	ctx   render_context.RenderContext
	dev   *presentingDevice
	r     renderer.Renderer
	scene scene.Scene
	cam   camera.Camera
	clock *fakeClock
}

func newFixture() *fixture {
	ctx := render_context.NewRenderContext()
	dev := &presentingDevice{MemoryDevice: gpu.NewMemoryDevice()}
	cam := camera.NewCamera(ctx, camera.WithNodeOptions(node.WithPosition(common.Vec3{0, 0, 10})))
	s := scene.NewScene(ctx, scene.WithCamera(cam))
	s.Add(game_object.NewGameObject(ctx,
		game_object.WithGeometry(primitives.ToGeometry(ctx, primitives.Box(1, 1, 1))),
		game_object.WithMaterial(material.NewMaterial(ctx)),
	))
	return &fixture{
		ctx:   ctx,
		dev:   dev,
		r:     renderer.NewRenderer(ctx, dev),
		scene: s,
		cam:   cam,
		clock: &fakeClock{t: time.Unix(100, 0)},
	}
}

func (f *fixture) engine(options ...EngineBuilderOption) Engine {
	return NewEngine(f.r, append([]EngineBuilderOption{
		WithScene(f.scene),
		WithClock(f.clock.now, f.clock.sleep),
	}, options...)...)
}

func TestRunFramesTicksRendersAndPresents(t *testing.T) {
	f := newFixture()
	e := f.engine()

	var deltas []float32
	e.SetTickCallback(func(dt float32) {
		deltas = append(deltas, dt)
		f.clock.t = f.clock.t.Add(10 * time.Millisecond)
	})
	var infos []renderer.Info
	e.SetRenderCallback(func(info renderer.Info) {
		infos = append(infos, info)
	})

	require.NoError(t, e.RunFrames(3))
	assert.Equal(t, uint64(3), e.Frames())
	assert.Equal(t, uint64(3), f.r.Frame())
	assert.Equal(t, 3, f.dev.presents)

	require.Len(t, deltas, 3)
	assert.Zero(t, deltas[0], "first frame has no predecessor")
	assert.InDelta(t, 0.01, deltas[1], 1e-6)
	assert.InDelta(t, 0.01, deltas[2], 1e-6)

	require.Len(t, infos, 3)
	assert.Equal(t, 1, infos[2].Calls)
	assert.Equal(t, 12, infos[2].Triangles)
	assert.Empty(t, f.clock.sleeps, "uncapped")
}

func TestStepWithoutSceneSkipsRender(t *testing.T) {
	f := newFixture()
	e := NewEngine(f.r, WithClock(f.clock.now, f.clock.sleep))

	require.NoError(t, e.Step())
	assert.Zero(t, f.r.Frame())
	assert.Zero(t, f.dev.presents)
	assert.Nil(t, e.Scene())

	e.SetScene(f.scene)
	require.NoError(t, e.Step())
	assert.Equal(t, uint64(1), f.r.Frame())
}

func TestStepWrapsRenderError(t *testing.T) {
	f := newFixture()
	f.scene.SetCamera(nil)
	e := f.engine()

	err := e.RunFrames(5)
	require.ErrorIs(t, err, renderer.ErrNoCamera)
	assert.Contains(t, err.Error(), "engine frame 1")
	assert.Equal(t, uint64(1), e.Frames())
}

func TestCameraOverride(t *testing.T) {
	f := newFixture()
	other := camera.NewCamera(f.ctx)
	f.scene.SetCamera(nil)
	e := f.engine(WithCamera(other))

	assert.Equal(t, other, e.Camera())
	require.NoError(t, e.Step())
}

func TestRenderFrameLimitSleepsRemainder(t *testing.T) {
	f := newFixture()
	e := f.engine(WithRenderFrameLimit(100))
	e.SetTickCallback(func(float32) {
		f.clock.t = f.clock.t.Add(4 * time.Millisecond)
	})

	require.NoError(t, e.RunFrames(2))
	assert.Equal(t, []time.Duration{6 * time.Millisecond, 6 * time.Millisecond}, f.clock.sleeps)

	e.SetRenderFrameLimit(0)
	require.NoError(t, e.Step())
	assert.Len(t, f.clock.sleeps, 2)
}

func TestProfilerTicksOnlyWhenEnabled(t *testing.T) {
	f := newFixture()
	p := profiler.NewProfiler(profiler.WithClock(f.clock.now), profiler.WithInterval(time.Second))
	e := f.engine(WithProfiler(p))
	e.SetTickCallback(func(float32) {
		f.clock.t = f.clock.t.Add(500 * time.Millisecond)
	})

	require.NoError(t, e.RunFrames(4))
	assert.Zero(t, p.Reports())

	e.EnableProfiler()
	require.NoError(t, e.RunFrames(4))
	assert.Equal(t, 2, p.Reports())
	assert.Equal(t, 1, p.Last().Info.Calls)
	assert.Equal(t, p, e.Profiler())

	e.DisableProfiler()
	require.NoError(t, e.RunFrames(4))
	assert.Equal(t, 2, p.Reports())
}

func TestRunHeadlessUntilQuit(t *testing.T) {
	f := newFixture()
	e := f.engine()
	e.SetTickCallback(func(float32) {
		if e.Frames() == 5 {
			e.Quit()
		}
	})

	require.NoError(t, e.Run())
	assert.Equal(t, uint64(5), e.Frames())

	e.Quit()
	require.NoError(t, e.RunFrames(3))
	assert.Equal(t, uint64(5), e.Frames(), "quit engines do not step")
}

func TestRunWithWindow(t *testing.T) {
	f := newFixture()
	w := &fakeWindow{running: true}
	e := f.engine(WithWindow(w))
	assert.Equal(t, w, e.Window())

	e.SetTickCallback(func(float32) {
		if e.Frames() == 3 {
			e.Quit()
		}
	})
	require.NoError(t, e.Run())
	assert.Equal(t, uint64(3), e.Frames())
	assert.Equal(t, 1, w.closed)
	assert.Equal(t, 3, f.dev.presents)
}

func TestRunWithWindowStopsOnError(t *testing.T) {
	f := newFixture()
	f.scene.SetCamera(nil)
	w := &fakeWindow{running: true}
	e := f.engine(WithWindow(w))

	require.ErrorIs(t, e.Run(), renderer.ErrNoCamera)
	assert.Equal(t, 1, w.closed)
}

func TestResizeUpdatesSurfaceAndAspect(t *testing.T) {
	f := newFixture()
	w := &fakeWindow{running: true}
	f.engine(WithWindow(w))
	require.NotNil(t, w.resize)

	w.resize(800, 400)
	assert.Equal(t, [][2]int{{800, 400}}, f.dev.configured)
	assert.InDelta(t, 2.0, f.cam.Aspect(), 1e-6)

	w.resize(0, 0)
	assert.Len(t, f.dev.configured, 1, "minimized windows are ignored")
}

func TestEngineLogsThroughRenderContext(t *testing.T) {
	var buf bytes.Buffer
	log.SetSink(&buf)
	t.Cleanup(func() { log.SetSink(os.Stdout) })

	ctx := render_context.NewRenderContext(render_context.WithLogger(log.New("engine-ctx")))
	dev := &presentingDevice{MemoryDevice: gpu.NewMemoryDevice(), configureErr: errors.New("surface lost")}
	w := &fakeWindow{running: true}
	NewEngine(renderer.NewRenderer(ctx, dev), WithWindow(w))

	w.resize(640, 480)
	assert.Contains(t, buf.String(), "[engine-ctx]")
	assert.Contains(t, buf.String(), "surface lost")
}

func TestOrbitControllerDrivesCamera(t *testing.T) {
	f := newFixture()
	w := &fakeWindow{running: true}
	oc := camera.NewOrbitController(camera.WithRadius(5), camera.WithElevation(0))
	e := f.engine(WithWindow(w), WithOrbitController(oc))
	require.NotNil(t, w.drag)
	require.NotNil(t, w.scroll)

	w.drag(100, 0)
	assert.InDelta(t, -0.5, oc.Azimuth(), 1e-6)
	w.scroll(1)
	assert.InDelta(t, 4, oc.Radius(), 1e-6)

	require.NoError(t, e.Step())
	assert.True(t, f.cam.Base().Position().ApproxEqual(oc.Position(), 1e-4))
}
