package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/Carmen-Shannon/oxy-sg/engine/camera"
	"github.com/Carmen-Shannon/oxy-sg/engine/game_object"
	"github.com/Carmen-Shannon/oxy-sg/engine/material"
	"github.com/Carmen-Shannon/oxy-sg/engine/node"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSceneDefaults(t *testing.T) {
	s := NewScene(render_context.NewRenderContext(), WithName("main"))
	assert.True(t, s.Active())
	assert.Equal(t, node.KindScene, s.Base().Kind())
	assert.Equal(t, "main", s.Base().Name())
	assert.Equal(t, common.Vec4{0, 0, 0, 1}, s.Background())
	assert.Nil(t, s.Camera())
	assert.Nil(t, s.OverrideMaterial())
	assert.Equal(t, 0, s.Count())
}

func TestAddGetRemove(t *testing.T) {
	ctx := render_context.NewRenderContext()
	s := NewScene(ctx)
	a, b := game_object.NewGameObject(ctx), game_object.NewGameObject(ctx)

	id := s.Add(a)
	s.Add(b)
	s.Add(a)
	assert.Equal(t, a.ID(), id)
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, 2, s.Base().ChildCount())
	assert.Same(t, s.Base(), a.Base().Parent())
	assert.Equal(t, []game_object.GameObject{a, b}, s.Objects())

	assert.Equal(t, b, s.Get(b.ID()))
	removed := s.Remove(b.ID())
	assert.Equal(t, b, removed)
	assert.Nil(t, s.Get(b.ID()))
	assert.Nil(t, b.Base().Parent())
	assert.False(t, b.Base().Disposed())
	assert.Nil(t, s.Remove(b.ID()))
}

func TestGetDropsDisposedObjects(t *testing.T) {
	ctx := render_context.NewRenderContext()
	obj := game_object.NewGameObject(ctx)
	s := NewScene(ctx, WithObjects(obj))
	require.Equal(t, 1, s.Count())

	obj.Dispose()
	assert.Nil(t, s.Get(obj.ID()))
	assert.Equal(t, 0, s.Count())
}

func TestClearDisposesObjects(t *testing.T) {
	ctx := render_context.NewRenderContext()
	a, b := game_object.NewGameObject(ctx), game_object.NewGameObject(ctx)
	s := NewScene(ctx, WithObjects(a, b))

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 0, s.Base().ChildCount())
	assert.True(t, a.Base().Disposed())
	assert.True(t, b.Base().Disposed())
}

func TestUpdateRefreshesTreeAndDetachedCamera(t *testing.T) {
	ctx := render_context.NewRenderContext()
	cam := camera.NewCamera(ctx)
	s := NewScene(ctx, WithCamera(cam))
	parent := game_object.NewGameObject(ctx)
	child := node.New(ctx)
	parent.Base().AddChild(child)
	s.Add(parent)

	parent.Base().SetPosition(common.Vec3{1, 0, 0})
	child.SetPosition(common.Vec3{0, 2, 0})
	cam.Base().SetPosition(common.Vec3{0, 0, 5})
	s.Update()

	assert.True(t, child.WorldPosition().ApproxEqual(common.Vec3{1, 2, 0}, 1e-5))
	assert.True(t, cam.Base().WorldPosition().ApproxEqual(common.Vec3{0, 0, 5}, 1e-5))
}

func TestOverrideAndBackground(t *testing.T) {
	ctx := render_context.NewRenderContext()
	m := material.NewMaterial(ctx)
	s := NewScene(ctx, WithOverrideMaterial(m), WithBackground(common.Vec4{0.1, 0.2, 0.3, 1}), WithActive(false))
	assert.Equal(t, m, s.OverrideMaterial())
	assert.Equal(t, common.Vec4{0.1, 0.2, 0.3, 1}, s.Background())
	assert.False(t, s.Active())

	s.SetOverrideMaterial(nil)
	assert.Nil(t, s.OverrideMaterial())
}

func TestDisposeDestroysTree(t *testing.T) {
	ctx := render_context.NewRenderContext()
	obj := game_object.NewGameObject(ctx)
	s := NewScene(ctx, WithObjects(obj))
	s.Dispose()
	assert.True(t, s.Base().Disposed())
	assert.True(t, obj.Base().Disposed())
	assert.Equal(t, 0, s.Count())
}
