// Package game_object implements drawable scene entities.
package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-sg/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sg/engine/identity"
	"github.com/Carmen-Shannon/oxy-sg/engine/material"
	"github.com/Carmen-Shannon/oxy-sg/engine/node"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/gpu"
)

type gameObject struct {
	*node.Node

	enabled       atomic.Bool
	geometry      *geometry.Geometry
	material      material.Material
	groupOrder    int32
	frustumCulled bool
	drawMode      gpu.DrawMode

	nodeOptions []node.NodeBuilderOption
}

// GameObject defines the interface for a drawable scene entity: a scene-graph node carrying a
// geometry and a material.
//
// Transform and hierarchy operations live on the embedded node, reached through Base. Geometry
// is shared and is never disposed along with the object.
type GameObject interface {
	node.Object

	// ID returns the object's unique identifier, the render-list tie-break.
	//
	// Returns:
	//   - identity.ID: the object ID
	ID() identity.ID

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Geometry returns the vertex data drawn for this object, or nil.
	//
	// Returns:
	//   - *geometry.Geometry: the geometry or nil
	Geometry() *geometry.Geometry

	// SetGeometry assigns the vertex data drawn for this object.
	//
	// Parameters:
	//   - geo: the geometry, possibly shared with other objects
	SetGeometry(geo *geometry.Geometry)

	// Material returns the surface state, or nil.
	//
	// Returns:
	//   - material.Material: the material or nil
	Material() material.Material

	// SetMaterial assigns the surface state.
	//
	// Parameters:
	//   - m: the material
	SetMaterial(m material.Material)

	// GroupOrder returns the render-list group. Higher groups are drawn first within a bucket.
	//
	// Returns:
	//   - int32: the group order
	GroupOrder() int32

	// SetGroupOrder sets the render-list group.
	//
	// Parameters:
	//   - order: the group order
	SetGroupOrder(order int32)

	// FrustumCulled returns whether the object is skipped when its bounds are outside the view.
	//
	// Returns:
	//   - bool: true if culling applies
	FrustumCulled() bool

	// SetFrustumCulled enables or disables frustum culling for this object.
	//
	// Parameters:
	//   - culled: true to allow culling
	SetFrustumCulled(culled bool)

	// DrawMode returns the primitive topology the geometry is drawn with.
	//
	// Returns:
	//   - gpu.DrawMode: triangles, lines or points
	DrawMode() gpu.DrawMode

	// SetDrawMode sets the primitive topology.
	//
	// Parameters:
	//   - mode: triangles, lines or points
	SetDrawMode(mode gpu.DrawMode)

	// Dispose destroys the object's subtree and detaches it from its parent.
	Dispose()
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled, frustum-culled GameObject backed by a mesh node.
//
// Parameters:
//   - ctx: the render context issuing the node ID
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(ctx render_context.RenderContext, options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		frustumCulled: true,
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	obj.Node = node.New(ctx, append([]node.NodeBuilderOption{node.WithKind(node.KindMesh)}, obj.nodeOptions...)...)
	obj.nodeOptions = nil
	return obj
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Geometry() *geometry.Geometry {
	return g.geometry
}

func (g *gameObject) SetGeometry(geo *geometry.Geometry) {
	g.geometry = geo
}

func (g *gameObject) Material() material.Material {
	return g.material
}

func (g *gameObject) SetMaterial(m material.Material) {
	g.material = m
}

func (g *gameObject) GroupOrder() int32 {
	return g.groupOrder
}

func (g *gameObject) SetGroupOrder(order int32) {
	g.groupOrder = order
}

func (g *gameObject) FrustumCulled() bool {
	return g.frustumCulled
}

func (g *gameObject) SetFrustumCulled(culled bool) {
	g.frustumCulled = culled
}

func (g *gameObject) DrawMode() gpu.DrawMode {
	return g.drawMode
}

func (g *gameObject) SetDrawMode(mode gpu.DrawMode) {
	g.drawMode = mode
}
