package render_list

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sg/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sg/engine/material"
	"github.com/Carmen-Shannon/oxy-sg/engine/node"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depths(items []*RenderItem) []float32 {
	out := make([]float32, len(items))
	for i, item := range items {
		out[i] = item.Z
	}
	return out
}

func TestSortSplitsAndOrdersBuckets(t *testing.T) {
	ctx := render_context.NewRenderContext()
	opaque := material.NewMaterial(ctx)
	glass := material.NewMaterial(ctx, material.WithTransparent(0.5))
	geo := geometry.New(ctx)
	l := NewRenderList()

	l.Begin()
	l.Push(node.New(ctx), geo, opaque, 0, 5)
	l.Push(node.New(ctx), geo, glass, 0, 2)
	l.Push(node.New(ctx), geo, opaque, 0, 1)
	l.Push(node.New(ctx), geo, glass, 0, 8)
	l.Sort(nil, nil)

	assert.Equal(t, []float32{1, 5}, depths(l.Opaques()))
	assert.Equal(t, []float32{8, 2}, depths(l.Transparents()))
	assert.Equal(t, 4, l.Len())
	l.End()
}

func TestDefaultOrderTieBreaks(t *testing.T) {
	a := &RenderItem{ID: 1, GroupOrder: 0, Z: 1}
	b := &RenderItem{ID: 2, GroupOrder: 0, Z: 1}
	c := &RenderItem{ID: 3, GroupOrder: 1, Z: 9}

	assert.Negative(t, OpaqueOrder(b, a), "newer id first on equal depth")
	assert.Negative(t, OpaqueOrder(c, a), "higher group first regardless of depth")
	assert.Negative(t, TransparentOrder(c, b))
	assert.Negative(t, TransparentOrder(b, a))
	assert.Zero(t, OpaqueOrder(a, a))
}

func TestPushRecordsGroupOrder(t *testing.T) {
	ctx := render_context.NewRenderContext()
	mat := material.NewMaterial(ctx)
	obj := node.New(ctx)
	l := NewRenderList()

	l.Begin()
	item := l.Push(obj, nil, mat, 7, 3)
	assert.Equal(t, int32(7), item.GroupOrder)
	assert.Equal(t, obj.ID(), item.ID)
	assert.Same(t, obj, item.Object)

	l.Begin()
	again := l.Push(obj, nil, mat, 0, 3)
	assert.Same(t, item, again, "pooled item is reused")
	assert.Equal(t, int32(0), again.GroupOrder)
}

func TestCustomComparator(t *testing.T) {
	ctx := render_context.NewRenderContext()
	mat := material.NewMaterial(ctx)
	l := NewRenderList()

	l.Begin()
	l.Push(node.New(ctx), nil, mat, 0, 1)
	l.Push(node.New(ctx), nil, mat, 0, 5)
	l.Sort(func(a, b *RenderItem) int { return OpaqueOrder(b, a) }, nil)
	assert.Equal(t, []float32{5, 1}, depths(l.Opaques()))
}

func TestNilMaterialIsOpaque(t *testing.T) {
	ctx := render_context.NewRenderContext()
	l := NewRenderList()
	l.Begin()
	l.Push(node.New(ctx), nil, nil, 0, 1)
	assert.Len(t, l.Opaques(), 1)
	assert.Empty(t, l.Transparents())
}

func TestEndClearsUnusedSlots(t *testing.T) {
	ctx := render_context.NewRenderContext()
	mat := material.NewMaterial(ctx)
	geo := geometry.New(ctx)
	l := NewRenderList()

	l.Begin()
	for range 3 {
		l.Push(node.New(ctx), geo, mat, 0, 1)
	}
	l.End()
	require.Equal(t, 3, l.PoolSize())

	l.Begin()
	l.Push(node.New(ctx), geo, mat, 0, 1)
	l.End()

	impl := l.(*renderList)
	assert.NotNil(t, impl.pool[0].Object)
	for _, item := range impl.pool[1:] {
		assert.Nil(t, item.Object)
		assert.Nil(t, item.Geometry)
		assert.Nil(t, item.Material)
	}
	assert.Len(t, l.Opaques(), 1)
}

func TestWithCapacity(t *testing.T) {
	l := NewRenderList(WithCapacity(4))
	assert.Equal(t, 4, l.PoolSize())
	assert.Equal(t, 0, l.Len())
}
