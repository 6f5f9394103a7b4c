package demo

import (
	"bytes"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-sg/engine/config"
	"github.com/Carmen-Shannon/oxy-sg/engine/event"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sceneConfig(shared bool) config.SceneConfig {
	cfg := config.Default().Scene
	cfg.Grid = 3
	cfg.SharedGeometry = shared
	cfg.Workers = 2
	return cfg
}

func TestBuildSharedGrid(t *testing.T) {
	ctx := render_context.NewRenderContext()
	d, err := Build(ctx, sceneConfig(true), 16.0/9)
	require.NoError(t, err)

	assert.Equal(t, 9, d.Scene.Count())
	require.Len(t, d.Objects, 9)
	assert.Same(t, d.Objects[0].Geometry(), d.Objects[2].Geometry())
	assert.NotSame(t, d.Objects[0].Geometry(), d.Objects[1].Geometry())
	assert.True(t, d.Objects[3].Material().Transparent())
	assert.True(t, d.Objects[7].Material().Transparent())
	assert.False(t, d.Objects[0].Material().Transparent())
	assert.InDelta(t, 16.0/9, d.Camera.Aspect(), 1e-6)

	dev := gpu.NewMemoryDevice()
	r := renderer.NewRenderer(ctx, dev)
	require.NoError(t, r.Render(d.Scene, nil))

	info := r.Info()
	assert.Equal(t, 9, info.Calls)
	assert.Zero(t, info.Culled)
	assert.Equal(t, 2, info.Geometries)
	assert.Len(t, r.RenderList().Transparents(), 2)
	assert.Len(t, r.RenderList().Opaques(), 7)
}

func TestBuildUniqueGeometry(t *testing.T) {
	ctx := render_context.NewRenderContext()
	d, err := Build(ctx, sceneConfig(false), 1)
	require.NoError(t, err)

	assert.NotSame(t, d.Objects[0].Geometry(), d.Objects[2].Geometry())
	assert.Equal(t, 24, d.Objects[4].Geometry().VertexCount())
	assert.Equal(t, (sphereSegments+1)*(sphereRings+1), d.Objects[5].Geometry().VertexCount())

	r := renderer.NewRenderer(ctx, gpu.NewMemoryDevice())
	require.NoError(t, r.Render(d.Scene, nil))
	assert.Equal(t, 9, r.Info().Geometries)
}

func TestBuildRejectsEmptyGrid(t *testing.T) {
	cfg := sceneConfig(true)
	cfg.Grid = 0
	_, err := Build(render_context.NewRenderContext(), cfg, 1)
	assert.Error(t, err)
}

func TestSpinRotatesObjects(t *testing.T) {
	ctx := render_context.NewRenderContext()
	d, err := Build(ctx, sceneConfig(true), 1)
	require.NoError(t, err)

	n := d.Objects[0].Base()
	before, pos := n.Quaternion(), n.Position()
	d.Spin(0)
	assert.NotEqual(t, before, n.Quaternion())
	assert.True(t, pos.ApproxEqual(n.Position(), 1e-5), "spinning keeps the cell in place")
}

func TestDisposeReleasesGeometry(t *testing.T) {
	ctx := render_context.NewRenderContext()
	d, err := Build(ctx, sceneConfig(true), 1)
	require.NoError(t, err)

	r := renderer.NewRenderer(ctx, gpu.NewMemoryDevice())
	require.NoError(t, r.Render(d.Scene, nil))
	require.NotZero(t, r.Buffers().Len())

	d.Dispose()
	assert.Zero(t, r.Buffers().Len())
	assert.Zero(t, r.Layouts().Len())
	assert.Nil(t, d.Objects)
	r.Release()
	assert.Zero(t, ctx.Events().Subscribers(event.GeometryDisposed))
}

func TestWriteStats(t *testing.T) {
	var buf bytes.Buffer
	WriteStats(&buf, Summary{
		Frames:  120,
		Elapsed: 2 * time.Second,
		Last:    renderer.Info{Calls: 9, Triangles: 300},
	})
	out := buf.String()
	assert.Contains(t, out, "draw calls")
	assert.Contains(t, out, "300")
	assert.Contains(t, out, "60.0")
}

func TestSummaryFPS(t *testing.T) {
	assert.Zero(t, Summary{}.FPS())
	assert.InDelta(t, 30.0, Summary{Frames: 30, Elapsed: time.Second}.FPS(), 1e-9)
}
