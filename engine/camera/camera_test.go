package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/Carmen-Shannon/oxy-sg/engine/node"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func TestNewCameraDefaults(t *testing.T) {
	cam := NewCamera(render_context.NewRenderContext())
	assert.Equal(t, ProjectionPerspective, cam.Projection())
	assert.InDelta(t, math32.Pi/4, cam.Fov(), eps)
	assert.Equal(t, float32(1), cam.Aspect())
	assert.Equal(t, node.KindCamera, cam.Base().Kind())
	assert.True(t, cam.ViewMatrix().ApproxEqual(common.Mat4Identity(), eps))
	assert.True(t, cam.ProjectionMatrix().ApproxEqual(common.Perspective(cam.Fov(), 1, 0.1, 100), eps))
}

func TestViewMatrixIsInverseWorld(t *testing.T) {
	cam := NewCamera(render_context.NewRenderContext(),
		WithNodeOptions(node.WithPosition(common.Vec3{1, 2, 3})),
	)
	cam.Base().RotateY(0.7)
	cam.Base().UpdateWorldMatrix(false, false)

	product := cam.ViewMatrix().Mul(cam.Base().WorldMatrix())
	assert.True(t, product.ApproxEqual(common.Mat4Identity(), eps))
}

func TestViewDepth(t *testing.T) {
	cam := NewCamera(render_context.NewRenderContext(),
		WithNodeOptions(node.WithPosition(common.Vec3{0, 0, 10})),
	)
	cam.Base().UpdateWorldMatrix(false, false)

	assert.InDelta(t, 10, cam.ViewDepth(common.Vec3{0, 0, 0}), eps)
	assert.InDelta(t, 15, cam.ViewDepth(common.Vec3{3, -2, -5}), eps)
	assert.Negative(t, cam.ViewDepth(common.Vec3{0, 0, 12}), "behind the camera")

	cam.Base().RotateY(0.4)
	cam.Base().UpdateWorldMatrix(false, false)
	view := cam.ViewMatrix()
	for _, p := range []common.Vec3{{0, 0, 0}, {3, -2, -5}, {-4, 1, 2}} {
		assert.InDelta(t, cam.ViewDepth(p), DepthInView(view, p), eps)
	}
}

func TestFrustumCulls(t *testing.T) {
	cam := NewCamera(render_context.NewRenderContext(),
		WithNodeOptions(node.WithPosition(common.Vec3{0, 0, 10})),
	)
	cam.Base().UpdateWorldMatrix(false, false)
	f := cam.Frustum()

	assert.True(t, f.IntersectsSphere(common.Sphere{Center: common.Vec3{0, 0, 0}, Radius: 1}))
	assert.False(t, f.IntersectsSphere(common.Sphere{Center: common.Vec3{0, 0, 20}, Radius: 1}), "behind")
	assert.False(t, f.IntersectsSphere(common.Sphere{Center: common.Vec3{500, 0, 0}, Radius: 1}), "far to the side")
	assert.False(t, f.IntersectsSphere(common.Sphere{Center: common.Vec3{0, 0, -200}, Radius: 1}), "past far plane")
}

func TestSettersRecomputeProjection(t *testing.T) {
	cam := NewCamera(render_context.NewRenderContext())
	cam.SetAspect(2)
	cam.SetFov(1)
	cam.SetNear(1)
	cam.SetFar(50)
	assert.True(t, cam.ProjectionMatrix().ApproxEqual(common.Perspective(1, 2, 1, 50), eps))

	product := cam.ProjectionMatrix().Mul(cam.InverseProjectionMatrix())
	assert.True(t, product.ApproxEqual(common.Mat4Identity(), eps))
}

func TestOrthographic(t *testing.T) {
	cam := NewCamera(render_context.NewRenderContext(), WithOrthographic(5, 0.1, 100), WithAspect(2))
	assert.Equal(t, ProjectionOrthographic, cam.Projection())
	assert.True(t, cam.ProjectionMatrix().ApproxEqual(common.Orthographic(-10, 10, -5, 5, 0.1, 100), eps))

	cam.SetZoom(2)
	assert.True(t, cam.ProjectionMatrix().ApproxEqual(common.Orthographic(-5, 5, -2.5, 2.5, 0.1, 100), eps))
}

func TestOrbitControllerApply(t *testing.T) {
	cam := NewCamera(render_context.NewRenderContext())
	oc := NewOrbitController(WithRadius(10), WithElevation(0), WithTarget(common.Vec3{1, 0, 0}))
	require.True(t, oc.Position().ApproxEqual(common.Vec3{1, 0, 10}, eps))

	oc.Apply(cam)
	cam.Base().UpdateWorldMatrix(false, false)
	assert.True(t, cam.Base().WorldPosition().ApproxEqual(common.Vec3{1, 0, 10}, eps))
	assert.InDelta(t, 10, cam.ViewDepth(common.Vec3{1, 0, 0}), eps)
}

func TestOrbitControllerClamps(t *testing.T) {
	oc := NewOrbitController(WithRadiusLimits(2, 20), WithRadius(10))
	oc.Zoom(100)
	assert.Equal(t, float32(2), oc.Radius())
	oc.Zoom(-100)
	assert.Equal(t, float32(20), oc.Radius())

	oc.Orbit(0.5, 10)
	assert.InDelta(t, math32.Pi/2-0.1, oc.Elevation(), eps)
	assert.InDelta(t, 0.5, oc.Azimuth(), eps)
}
