package camera

import "github.com/Carmen-Shannon/oxy-sg/engine/node"

// CameraBuilderOption is a functional option for configuring a Camera during construction.
type CameraBuilderOption func(*cameraImpl)

// WithPerspective makes the camera a perspective camera.
//
// Parameters:
//   - fov: vertical field of view in radians
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set a perspective projection
func WithPerspective(fov, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = ProjectionPerspective
		c.fov = fov
		c.near = near
		c.far = far
	}
}

// WithOrthographic makes the camera an orthographic camera.
//
// Parameters:
//   - size: half the visible height at zoom 1
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set an orthographic projection
func WithOrthographic(size, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = ProjectionOrthographic
		c.size = size
		c.near = near
		c.far = far
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithZoom sets the orthographic zoom factor.
//
// Parameters:
//   - zoom: the zoom factor
//
// Returns:
//   - CameraBuilderOption: functional option to set the zoom
func WithZoom(zoom float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.zoom = zoom
	}
}

// WithNodeOptions forwards options to the backing scene-graph node.
//
// Parameters:
//   - options: node builder options such as a position
//
// Returns:
//   - CameraBuilderOption: functional option to configure the node
func WithNodeOptions(options ...node.NodeBuilderOption) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.nodeOptions = append(c.nodeOptions, options...)
	}
}
