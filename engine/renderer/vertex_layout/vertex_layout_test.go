package vertex_layout

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/Carmen-Shannon/oxy-sg/engine/attribute"
	"github.com/Carmen-Shannon/oxy-sg/engine/event"
	"github.com/Carmen-Shannon/oxy-sg/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/buffer_cache"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx     render_context.RenderContext
	dev     *gpu.MemoryDevice
	buffers buffer_cache.BufferCache
	layouts VertexLayoutCache
}

func newFixture(options ...VertexLayoutBuilderOption) *fixture {
	ctx := render_context.NewRenderContext()
	dev := gpu.NewMemoryDevice()
	buffers := buffer_cache.NewBufferCache(ctx, dev)
	return &fixture{
		ctx:     ctx,
		dev:     dev,
		buffers: buffers,
		layouts: NewVertexLayoutCache(ctx, dev, buffers, options...),
	}
}

func (f *fixture) quad() *geometry.Geometry {
	return geometry.New(f.ctx,
		geometry.WithAttribute("position", attribute.New(f.ctx, make([]float32, 12), 3)),
		geometry.WithAttribute("uv", attribute.New(f.ctx, make([]float32, 8), 2)),
		geometry.WithAttribute("custom", attribute.New(f.ctx, make([]float32, 4), 1)),
		geometry.WithIndex(attribute.New(f.ctx, []uint32{0, 1, 2, 2, 3, 0}, 1)),
	)
}

func TestDefaultSlots(t *testing.T) {
	s := DefaultSlots()
	assert.Equal(t, uint32(0), s["position"])
	assert.Equal(t, uint32(3), s["uv"])
	assert.Equal(t, uint32(7), s["bitangent"])
	assert.Len(t, s, 8)
}

func TestSetupBindsKnownSlotsAndIndex(t *testing.T) {
	f := newFixture()
	geo := f.quad()
	require.NoError(t, f.layouts.Setup(geo, geo.Index()))

	h, err := f.layouts.GetOrCreate(geo)
	require.NoError(t, err)
	l, ok := f.dev.Layout(h)
	require.True(t, ok)

	pos, _ := geo.Get("position")
	posBuf, _ := f.buffers.Get(pos)
	assert.Equal(t, gpu.AttributeBinding{Buffer: posBuf, ItemSize: 3, DataType: common.DataTypeFloat32}, l.Attributes[0])
	assert.Contains(t, l.Attributes, uint32(3))
	assert.Len(t, l.Attributes, 2, "custom has no slot and is skipped")

	idxBuf, ok := f.buffers.Get(geo.Index())
	require.True(t, ok)
	assert.Equal(t, idxBuf, l.Index)
	assert.False(t, f.layouts.NeedsRebind(geo, geo.Index()))
}

func TestSetupSkipsRedundantWork(t *testing.T) {
	f := newFixture()
	geo := f.quad()
	require.NoError(t, f.layouts.Setup(geo, geo.Index()))
	f.dev.ResetCalls()

	require.NoError(t, f.layouts.Setup(geo, geo.Index()))
	assert.Empty(t, f.dev.Calls(), "same layout, same fingerprint, clean index")

	f.layouts.Reset()
	require.NoError(t, f.layouts.Setup(geo, geo.Index()))
	assert.Equal(t, 1, f.dev.Count(gpu.OpBindVertexLayout))
	assert.Equal(t, 0, f.dev.Count(gpu.OpBindAttribute))
}

func TestSetupSyncsDirtyIndexWithoutRebind(t *testing.T) {
	f := newFixture()
	geo := f.quad()
	require.NoError(t, f.layouts.Setup(geo, geo.Index()))
	f.dev.ResetCalls()

	geo.Index().SetX(5, 1)
	require.NoError(t, f.layouts.Setup(geo, geo.Index()))
	assert.Equal(t, 1, f.dev.Count(gpu.OpUpdateBuffer))
	assert.Equal(t, 0, f.dev.Count(gpu.OpBindAttribute))
	assert.Equal(t, 0, f.dev.Count(gpu.OpBindIndexBuffer))
}

func TestFingerprintChanges(t *testing.T) {
	f := newFixture()
	geo := f.quad()
	require.NoError(t, f.layouts.Setup(geo, geo.Index()))

	geo.Set("normal", attribute.New(f.ctx, make([]float32, 12), 3))
	assert.True(t, f.layouts.NeedsRebind(geo, geo.Index()), "count changed")
	require.NoError(t, f.layouts.Setup(geo, geo.Index()))

	geo.Set("normal", attribute.New(f.ctx, make([]float32, 12), 3))
	assert.True(t, f.layouts.NeedsRebind(geo, geo.Index()), "same name, new attribute id")
	require.NoError(t, f.layouts.Setup(geo, geo.Index()))

	newIndex := attribute.New(f.ctx, []uint32{0, 1, 2}, 1)
	assert.True(t, f.layouts.NeedsRebind(geo, newIndex), "index id changed")
}

func TestRemovingIndexRecreatesLayout(t *testing.T) {
	f := newFixture()
	geo := f.quad()
	require.NoError(t, f.layouts.Setup(geo, geo.Index()))
	before, _ := f.layouts.GetOrCreate(geo)

	require.True(t, f.layouts.NeedsRebind(geo, nil))
	require.NoError(t, f.layouts.Setup(geo, nil))

	after, _ := f.layouts.GetOrCreate(geo)
	assert.NotEqual(t, before, after)
	l, ok := f.dev.Layout(after)
	require.True(t, ok)
	assert.Zero(t, l.Index)
	assert.Len(t, l.Attributes, 2)
	assert.Equal(t, 1, f.dev.LayoutCount())
}

func TestCustomSlots(t *testing.T) {
	f := newFixture(WithSlots(Slots{"custom": 9}))
	geo := f.quad()
	require.NoError(t, f.layouts.Setup(geo, nil))

	h, _ := f.layouts.GetOrCreate(geo)
	l, _ := f.dev.Layout(h)
	assert.Len(t, l.Attributes, 1)
	assert.Contains(t, l.Attributes, uint32(9))
}

func TestGeometryDisposeReleasesLayout(t *testing.T) {
	f := newFixture()
	keep, drop := f.quad(), f.quad()
	require.NoError(t, f.layouts.Setup(keep, keep.Index()))
	require.NoError(t, f.layouts.Setup(drop, drop.Index()))
	require.Equal(t, 2, f.layouts.Len())

	drop.Dispose()
	assert.Equal(t, 1, f.layouts.Len())
	assert.Equal(t, 1, f.dev.LayoutCount())
	assert.False(t, f.layouts.NeedsRebind(keep, keep.Index()))

	f.layouts.Release()
	assert.Equal(t, 0, f.dev.LayoutCount())
	assert.Equal(t, 0, f.ctx.Events().Subscribers(event.GeometryDisposed))
}
