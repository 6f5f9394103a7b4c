// Package geometry groups named vertex attributes and an optional index buffer into a drawable shape.
package geometry

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/Carmen-Shannon/oxy-sg/engine/attribute"
	"github.com/Carmen-Shannon/oxy-sg/engine/event"
	"github.com/Carmen-Shannon/oxy-sg/engine/identity"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
	"github.com/chewxy/math32"
)

// AttributePosition is the attribute name bounds are computed from.
const AttributePosition = "position"

// Geometry is a set of named vertex attributes plus an optional uint32 index.
//
// Bounds are computed on request only. Editing the position attribute afterwards does not
// invalidate them; call ComputeBoundingBox or ComputeBoundingSphere again.
type Geometry struct {
	ctx        render_context.RenderContext
	id         identity.ID
	name       string
	attributes map[string]attribute.Source
	index      *attribute.Attribute[uint32]

	boundingBox    *common.Box3
	boundingSphere *common.Sphere

	disposed bool
}

// New creates an empty geometry.
//
// Parameters:
//   - ctx: the render context issuing the ID and carrying the event bus
//   - options: functional options to configure the geometry
//
// Returns:
//   - *Geometry: the newly created geometry
func New(ctx render_context.RenderContext, options ...GeometryBuilderOption) *Geometry {
	g := &Geometry{
		ctx:        ctx,
		id:         ctx.NextID(),
		attributes: make(map[string]attribute.Source),
	}
	for _, option := range options {
		option(g)
	}
	return g
}

// ID returns the geometry's unique identifier.
func (g *Geometry) ID() identity.ID {
	return g.id
}

// Name returns the debug name.
func (g *Geometry) Name() string {
	return g.name
}

// Set stores src under name, replacing any attribute already there.
//
// Parameters:
//   - name: the attribute name, e.g. "position"
//   - src: the attribute
func (g *Geometry) Set(name string, src attribute.Source) {
	g.attributes[name] = src
}

// Get returns the attribute stored under name.
func (g *Geometry) Get(name string) (attribute.Source, bool) {
	src, ok := g.attributes[name]
	return src, ok
}

// Has reports whether an attribute is stored under name.
func (g *Geometry) Has(name string) bool {
	_, ok := g.attributes[name]
	return ok
}

// Delete removes the attribute stored under name. The attribute itself is not disposed.
func (g *Geometry) Delete(name string) {
	delete(g.attributes, name)
}

// Attributes returns the name to attribute map. The map must not be modified.
func (g *Geometry) Attributes() map[string]attribute.Source {
	return g.attributes
}

// AttributeNames returns the attribute names in sorted order.
func (g *Geometry) AttributeNames() []string {
	names := make([]string, 0, len(g.attributes))
	for name := range g.attributes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SetIndex sets the index buffer. nil removes it.
func (g *Geometry) SetIndex(index *attribute.Attribute[uint32]) {
	g.index = index
}

// Index returns the index buffer, or nil for non-indexed geometry.
func (g *Geometry) Index() *attribute.Attribute[uint32] {
	return g.index
}

// VertexCount returns the number of vertices in the position attribute, or 0 without one.
func (g *Geometry) VertexCount() int {
	if pos, ok := g.attributes[AttributePosition]; ok {
		return pos.Count()
	}
	return 0
}

// DrawCount returns the number of elements a draw call consumes: the index count for indexed
// geometry, the vertex count otherwise.
func (g *Geometry) DrawCount() int {
	if g.index != nil {
		return g.index.Len()
	}
	return g.VertexCount()
}

// BoundingBox returns the last computed box, or nil if none was computed.
func (g *Geometry) BoundingBox() *common.Box3 {
	return g.boundingBox
}

// BoundingSphere returns the last computed sphere, or nil if none was computed.
func (g *Geometry) BoundingSphere() *common.Sphere {
	return g.boundingSphere
}

// ComputeBoundingBox recomputes the box from the position attribute, starting from an empty box.
// Without a position attribute it logs a warning and leaves the bounds untouched.
func (g *Geometry) ComputeBoundingBox() {
	pos, ok := g.attributes[AttributePosition]
	if !ok {
		g.ctx.Logger().Warningf("geometry %d: bounding box requested without a %q attribute", g.id, AttributePosition)
		return
	}

	box := common.EmptyBox3()
	for i := 0; i < pos.Count(); i++ {
		box.ExpandByPoint(readPoint(pos, i))
	}
	g.boundingBox = &box
}

// ComputeBoundingSphere recomputes the sphere. Its center is the center of the bounding box and
// its radius the largest distance from that center to any position. Without a position
// attribute it logs a warning and leaves the bounds untouched.
func (g *Geometry) ComputeBoundingSphere() {
	pos, ok := g.attributes[AttributePosition]
	if !ok {
		g.ctx.Logger().Warningf("geometry %d: bounding sphere requested without a %q attribute", g.id, AttributePosition)
		return
	}

	g.ComputeBoundingBox()
	center := g.boundingBox.Center()

	var maxSq float32
	for i := 0; i < pos.Count(); i++ {
		d := readPoint(pos, i).Sub(center)
		maxSq = max(maxSq, d.Dot(d))
	}

	sphere := common.Sphere{Center: center, Radius: math32.Sqrt(maxSq)}
	if pos.Count() == 0 {
		sphere.Radius = -1
	}
	g.boundingSphere = &sphere
}

func readPoint(src attribute.Source, i int) common.Vec3 {
	var p common.Vec3
	for c := 0; c < min(3, src.ItemSize()); c++ {
		p[c] = src.Float(i, c)
	}
	return p
}

// Disposed reports whether Dispose has been called.
func (g *Geometry) Disposed() bool {
	return g.disposed
}

// Dispose announces the geometry's destruction so vertex layouts and sync state can be dropped.
// Attributes are shared and are not disposed. Later calls are no-ops.
func (g *Geometry) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.ctx.Events().Publish(event.Event{
		Topic:   event.GeometryDisposed,
		Target:  g,
		Payload: g.id,
	})
}
