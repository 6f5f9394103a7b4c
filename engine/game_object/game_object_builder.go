package game_object

import (
	"github.com/Carmen-Shannon/oxy-sg/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sg/engine/material"
	"github.com/Carmen-Shannon/oxy-sg/engine/node"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/gpu"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithEnabled sets whether the GameObject is enabled for rendering.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithGeometry sets the geometry drawn for the GameObject.
//
// Parameters:
//   - geo: the geometry, possibly shared
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the geometry
func WithGeometry(geo *geometry.Geometry) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.geometry = geo
	}
}

// WithMaterial sets the material of the GameObject.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the material
func WithMaterial(m material.Material) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.material = m
	}
}

// WithGroupOrder sets the render-list group of the GameObject.
//
// Parameters:
//   - order: the group order, higher draws first
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the group order
func WithGroupOrder(order int32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.groupOrder = order
	}
}

// WithFrustumCulled sets whether the GameObject may be culled against the camera frustum.
//
// Parameters:
//   - culled: false to always draw the object
//
// Returns:
//   - GameObjectBuilderOption: functional option to set frustum culling
func WithFrustumCulled(culled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.frustumCulled = culled
	}
}

// WithDrawMode sets the primitive topology of the GameObject.
//
// Parameters:
//   - mode: triangles, lines or points
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the draw mode
func WithDrawMode(mode gpu.DrawMode) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.drawMode = mode
	}
}

// WithNodeOptions forwards options to the backing scene-graph node, such as a name or an
// initial transform. The node kind is always KindMesh unless overridden here.
//
// Parameters:
//   - options: node builder options
//
// Returns:
//   - GameObjectBuilderOption: functional option to configure the node
func WithNodeOptions(options ...node.NodeBuilderOption) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.nodeOptions = append(obj.nodeOptions, options...)
	}
}
