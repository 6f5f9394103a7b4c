package geometry

import (
	"bytes"
	"os"
	"testing"

	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/Carmen-Shannon/oxy-sg/engine/attribute"
	"github.com/Carmen-Shannon/oxy-sg/engine/event"
	"github.com/Carmen-Shannon/oxy-sg/engine/log"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangle(ctx render_context.RenderContext) *Geometry {
	pos := attribute.New(ctx, []float32{
		-1, 0, 0,
		3, 0, 0,
		1, 2, -4,
	}, 3)
	return New(ctx, WithName("tri"), WithAttribute(AttributePosition, pos))
}

func TestAttributeMap(t *testing.T) {
	ctx := render_context.NewRenderContext()
	g := triangle(ctx)
	uv := attribute.New(ctx, make([]float32, 6), 2)
	g.Set("uv", uv)

	assert.True(t, g.Has("uv"))
	got, ok := g.Get("uv")
	require.True(t, ok)
	assert.Equal(t, uv.ID(), got.ID())
	assert.Equal(t, []string{"position", "uv"}, g.AttributeNames())

	g.Delete("uv")
	assert.False(t, g.Has("uv"))
	assert.False(t, uv.Disposed())
	_, ok = g.Get("uv")
	assert.False(t, ok)
}

func TestDrawCount(t *testing.T) {
	ctx := render_context.NewRenderContext()
	g := triangle(ctx)
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 3, g.DrawCount())

	g.SetIndex(attribute.New(ctx, []uint32{0, 1, 2, 2, 1, 0}, 1))
	assert.Equal(t, 6, g.DrawCount())

	g.SetIndex(nil)
	assert.Nil(t, g.Index())
	assert.Equal(t, 0, New(ctx).DrawCount())
}

func TestComputeBounds(t *testing.T) {
	g := triangle(render_context.NewRenderContext())
	assert.Nil(t, g.BoundingBox())
	assert.Nil(t, g.BoundingSphere())

	g.ComputeBoundingSphere()
	require.NotNil(t, g.BoundingBox())
	require.NotNil(t, g.BoundingSphere())

	assert.Equal(t, common.Vec3{-1, 0, -4}, g.BoundingBox().Min)
	assert.Equal(t, common.Vec3{3, 2, 0}, g.BoundingBox().Max)

	s := g.BoundingSphere()
	assert.Equal(t, common.Vec3{1, 1, -2}, s.Center)
	// (-1, 0, 0) and (3, 0, 0) are both 3 away from the center
	assert.InDelta(t, 3, s.Radius, 1e-5)
}

func TestBoundsAreNotInvalidatedByEdits(t *testing.T) {
	ctx := render_context.NewRenderContext()
	pos := attribute.New(ctx, []float32{0, 0, 0, 1, 1, 1}, 3)
	g := New(ctx, WithAttribute(AttributePosition, pos))
	g.ComputeBoundingBox()

	pos.SetX(1, 10)
	assert.Equal(t, float32(1), g.BoundingBox().Max[0])

	g.ComputeBoundingBox()
	assert.Equal(t, float32(10), g.BoundingBox().Max[0])
}

func TestEmptyPositionGivesEmptyBounds(t *testing.T) {
	ctx := render_context.NewRenderContext()
	g := New(ctx, WithAttribute(AttributePosition, attribute.New(ctx, []float32{}, 3)))
	g.ComputeBoundingSphere()
	assert.True(t, g.BoundingBox().IsEmpty())
	assert.True(t, g.BoundingSphere().IsEmpty())
}

func TestBoundsWithoutPositionWarns(t *testing.T) {
	var buf bytes.Buffer
	log.SetSink(&buf)
	t.Cleanup(func() { log.SetSink(os.Stdout) })

	g := New(render_context.NewRenderContext())
	g.ComputeBoundingBox()
	g.ComputeBoundingSphere()

	assert.Nil(t, g.BoundingBox())
	assert.Nil(t, g.BoundingSphere())
	assert.Contains(t, buf.String(), "bounding sphere requested")
}

func TestDisposePublishesOnce(t *testing.T) {
	ctx := render_context.NewRenderContext()
	g := triangle(ctx)
	pos, _ := g.Get(AttributePosition)

	var ids []any
	ctx.Events().Subscribe(event.GeometryDisposed, t, "record", func(e event.Event) {
		ids = append(ids, e.Payload)
	})

	g.Dispose()
	g.Dispose()

	assert.Equal(t, []any{g.ID()}, ids)
	assert.True(t, g.Disposed())
	assert.False(t, pos.Disposed())
}
