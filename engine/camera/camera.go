// Package camera provides perspective and orthographic cameras that live in the scene graph.
//
// A camera is a node: its world matrix places it in the scene and the view matrix is the
// inverse of that world matrix. Cameras belong to the render thread like every other node.
package camera

import (
	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/Carmen-Shannon/oxy-sg/engine/node"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
	"github.com/chewxy/math32"
)

// Projection selects how a camera maps view space to clip space.
type Projection uint8

const (
	ProjectionPerspective Projection = iota
	ProjectionOrthographic
)

func (p Projection) String() string {
	switch p {
	case ProjectionPerspective:
		return "perspective"
	case ProjectionOrthographic:
		return "orthographic"
	default:
		return "unknown"
	}
}

type cameraImpl struct {
	*node.Node

	projection Projection

	fov    float32
	aspect float32
	near   float32
	far    float32

	// orthographic half-height at zoom 1; the half-width follows the aspect.
	size float32
	zoom float32

	projectionMatrix        common.Mat4
	inverseProjectionMatrix common.Mat4

	nodeOptions []node.NodeBuilderOption
}

// Camera defines the interface for a scene-graph camera.
// Projection parameters are stored on the camera; the view comes from its node's world matrix,
// so the world matrix must be current before ViewMatrix, ViewProjectionMatrix or Frustum are read.
type Camera interface {
	node.Object

	// Projection returns the projection kind.
	//
	// Returns:
	//   - Projection: perspective or orthographic
	Projection() Projection

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Zoom returns the orthographic zoom factor.
	//
	// Returns:
	//   - float32: the zoom, 1 by default
	Zoom() float32

	// ViewMatrix returns the inverse of the camera's world matrix.
	//
	// Returns:
	//   - common.Mat4: the view matrix
	ViewMatrix() common.Mat4

	// ProjectionMatrix returns the current projection matrix (column-major, depth in [0, 1]).
	//
	// Returns:
	//   - common.Mat4: the projection matrix
	ProjectionMatrix() common.Mat4

	// InverseProjectionMatrix returns the inverse of the current projection matrix.
	//
	// Returns:
	//   - common.Mat4: the inverse projection matrix
	InverseProjectionMatrix() common.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - common.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() common.Mat4

	// Frustum returns the six world-space clipping planes of the camera.
	//
	// Returns:
	//   - common.Frustum: the frustum
	Frustum() common.Frustum

	// ViewDepth returns the distance of a world-space point in front of the camera. Points
	// behind the camera give negative values.
	//
	// Parameters:
	//   - p: world-space point
	//
	// Returns:
	//   - float32: the view-space depth
	ViewDepth(p common.Vec3) float32

	// SetFov sets the field of view in radians and recomputes the projection.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes the projection.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes the projection.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes the projection.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// SetZoom sets the orthographic zoom and recomputes the projection. Perspective cameras
	// store the value and ignore it.
	//
	// Parameters:
	//   - zoom: the zoom factor, larger values show less of the scene
	SetZoom(zoom float32)

	// Dispose destroys the camera's subtree and detaches it from its parent.
	Dispose()
}

var _ Camera = &cameraImpl{}

// NewCamera creates a perspective camera with a 45 degree field of view, aspect 1 and clip
// planes at 0.1 and 100.
//
// Parameters:
//   - ctx: the render context issuing the node ID
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(ctx render_context.RenderContext, options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		projection: ProjectionPerspective,
		fov:        45.0 * (math32.Pi / 180.0),
		aspect:     1.0,
		near:       0.1,
		far:        100.0,
		size:       1.0,
		zoom:       1.0,
	}
	for _, option := range options {
		option(c)
	}
	c.Node = node.New(ctx, append([]node.NodeBuilderOption{node.WithKind(node.KindCamera)}, c.nodeOptions...)...)
	c.nodeOptions = nil
	c.updateProjection()
	return c
}

func (c *cameraImpl) Projection() Projection {
	return c.projection
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) Zoom() float32 {
	return c.zoom
}

func (c *cameraImpl) ViewMatrix() common.Mat4 {
	view, ok := c.WorldMatrix().Invert()
	if !ok {
		return common.Mat4Identity()
	}
	return view
}

func (c *cameraImpl) ProjectionMatrix() common.Mat4 {
	return c.projectionMatrix
}

func (c *cameraImpl) InverseProjectionMatrix() common.Mat4 {
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() common.Mat4 {
	return c.projectionMatrix.Mul(c.ViewMatrix())
}

func (c *cameraImpl) Frustum() common.Frustum {
	return common.ExtractFrustumFromMatrix(c.ViewProjectionMatrix())
}

func (c *cameraImpl) ViewDepth(p common.Vec3) float32 {
	return DepthInView(c.ViewMatrix(), p)
}

// DepthInView returns the view-space depth of the world-space point p under view. Callers that
// already hold the view matrix for a frame use it instead of ViewDepth, which inverts the
// camera's world matrix on every call.
func DepthInView(view common.Mat4, p common.Vec3) float32 {
	return -view.TransformPoint(p)[2]
}

func (c *cameraImpl) SetFov(fov float32) {
	c.fov = fov
	c.updateProjection()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.aspect = aspect
	c.updateProjection()
}

func (c *cameraImpl) SetNear(near float32) {
	c.near = near
	c.updateProjection()
}

func (c *cameraImpl) SetFar(far float32) {
	c.far = far
	c.updateProjection()
}

func (c *cameraImpl) SetZoom(zoom float32) {
	c.zoom = zoom
	c.updateProjection()
}

// updateProjection recalculates the projection and inverse projection matrices.
func (c *cameraImpl) updateProjection() {
	switch c.projection {
	case ProjectionOrthographic:
		h := c.size / c.zoom
		w := h * c.aspect
		c.projectionMatrix = common.Orthographic(-w, w, -h, h, c.near, c.far)
	default:
		c.projectionMatrix = common.Perspective(c.fov, c.aspect, c.near, c.far)
	}
	inv, ok := c.projectionMatrix.Invert()
	if !ok {
		inv = common.Mat4Identity()
	}
	c.inverseProjectionMatrix = inv
}
