// Package vertex_layout keeps one GPU vertex layout per geometry and rebinds it only when the
// set of attributes or the index buffer behind the geometry changed.
//
// The cache is owned by the render thread and is not safe for concurrent use.
package vertex_layout

import (
	"fmt"
	"maps"

	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/Carmen-Shannon/oxy-sg/engine/attribute"
	"github.com/Carmen-Shannon/oxy-sg/engine/event"
	"github.com/Carmen-Shannon/oxy-sg/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sg/engine/identity"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/buffer_cache"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/gpu"
)

// Slots maps attribute names to shader input locations.
type Slots map[string]uint32

// DefaultSlots returns the standard attribute locations.
func DefaultSlots() Slots {
	return Slots{
		"position":   0,
		"normal":     1,
		"color":      2,
		"uv":         3,
		"skinIndex":  4,
		"skinWeight": 5,
		"tangent":    6,
		"bitangent":  7,
	}
}

// fingerprint is what a layout was last bound from.
type fingerprint struct {
	attributes map[string]identity.ID
	count      int
	index      identity.ID
}

func fingerprintOf(geo *geometry.Geometry, index *attribute.Attribute[uint32]) *fingerprint {
	fp := &fingerprint{
		attributes: make(map[string]identity.ID, len(geo.Attributes())),
		count:      len(geo.Attributes()),
		index:      identity.None,
	}
	for name, src := range geo.Attributes() {
		fp.attributes[name] = src.ID()
	}
	if index != nil {
		fp.index = index.ID()
	}
	return fp
}

func (fp *fingerprint) equal(o *fingerprint) bool {
	return fp.count == o.count && fp.index == o.index && maps.Equal(fp.attributes, o.attributes)
}

// shrunk reports whether fp bound something that o no longer has.
func (fp *fingerprint) shrunk(o *fingerprint) bool {
	if fp.index != identity.None && o.index == identity.None {
		return true
	}
	for name := range fp.attributes {
		if _, ok := o.attributes[name]; !ok {
			return true
		}
	}
	return false
}

type layoutEntry struct {
	handle gpu.LayoutHandle
	bound  *fingerprint
}

type vertexLayoutCache struct {
	ctx     render_context.RenderContext
	device  gpu.Device
	buffers buffer_cache.BufferCache
	slots   Slots
	entries map[identity.ID]*layoutEntry
	current gpu.LayoutHandle
	sub     event.Subscription
}

// VertexLayoutCache owns one vertex layout per geometry ID.
type VertexLayoutCache interface {
	// GetOrCreate returns the layout for geo, creating an empty one on first use.
	//
	// Parameters:
	//   - geo: the geometry
	//
	// Returns:
	//   - gpu.LayoutHandle: the layout
	//   - error: a wrapped device error
	GetOrCreate(geo *geometry.Geometry) (gpu.LayoutHandle, error)

	// NeedsRebind reports whether the attribute name to ID map, the attribute count or the index ID
	// differ from what the layout was last bound with. A layout never bound needs a rebind.
	//
	// Parameters:
	//   - geo: the geometry
	//   - index: the index buffer in use, or nil
	//
	// Returns:
	//   - bool: true when Rebind must run
	NeedsRebind(geo *geometry.Geometry, index *attribute.Attribute[uint32]) bool

	// Rebind binds every attribute with a known slot name, ensuring its buffer first, then the
	// index buffer, and records the fingerprint. Attributes without a slot are skipped. When an
	// attribute or the index was removed since the last bind, the layout is recreated so no stale
	// binding survives.
	//
	// Parameters:
	//   - geo: the geometry
	//   - index: the index buffer in use, or nil
	//
	// Returns:
	//   - error: a wrapped buffer or device error
	Rebind(geo *geometry.Geometry, index *attribute.Attribute[uint32]) error

	// Setup prepares a draw of geo: binds its layout unless it is already current, rebinds when
	// the fingerprint changed, and otherwise just syncs the index buffer.
	//
	// Parameters:
	//   - geo: the geometry
	//   - index: the index buffer in use, or nil
	//
	// Returns:
	//   - error: a wrapped buffer or device error
	Setup(geo *geometry.Geometry, index *attribute.Attribute[uint32]) error

	// Reset forgets which layout is current. Call it whenever the device state is reset, such as
	// at the start of a render pass.
	Reset()

	// Slots returns the attribute name to location table.
	//
	// Returns:
	//   - Slots: the table
	Slots() Slots

	// Len returns the number of layouts.
	//
	// Returns:
	//   - int: the entry count
	Len() int

	// Release deletes every layout and stops listening for geometry disposal.
	Release()
}

var _ VertexLayoutCache = &vertexLayoutCache{}

// NewVertexLayoutCache creates an empty cache and subscribes it to geometry-disposed events on
// the context's bus.
//
// Parameters:
//   - ctx: the render context carrying the bus and logger
//   - device: the device layouts are created on
//   - buffers: the cache that owns the attribute buffers
//   - options: functional options to configure the cache
//
// Returns:
//   - VertexLayoutCache: the newly created cache
func NewVertexLayoutCache(ctx render_context.RenderContext, device gpu.Device, buffers buffer_cache.BufferCache, options ...VertexLayoutBuilderOption) VertexLayoutCache {
	c := &vertexLayoutCache{
		ctx:     ctx,
		device:  device,
		buffers: buffers,
		slots:   DefaultSlots(),
		entries: make(map[identity.ID]*layoutEntry),
	}
	for _, option := range options {
		option(c)
	}
	c.sub = ctx.Events().Subscribe(event.GeometryDisposed, c, "Evict", c.onGeometryDisposed)
	return c
}

func (c *vertexLayoutCache) onGeometryDisposed(e event.Event) {
	id, ok := e.Payload.(identity.ID)
	if !ok {
		return
	}
	entry, ok := c.entries[id]
	if !ok {
		return
	}
	c.deleteLayout(entry.handle)
	delete(c.entries, id)
	c.ctx.Logger().Debugf("vertex layout: released layout %d of geometry %d", entry.handle, id)
}

func (c *vertexLayoutCache) deleteLayout(h gpu.LayoutHandle) {
	c.device.DeleteVertexLayout(h)
	if c.current == h {
		c.current = 0
	}
}

func (c *vertexLayoutCache) GetOrCreate(geo *geometry.Geometry) (gpu.LayoutHandle, error) {
	if entry, ok := c.entries[geo.ID()]; ok {
		return entry.handle, nil
	}
	h, err := c.device.CreateVertexLayout()
	if err != nil {
		return 0, fmt.Errorf("create vertex layout for geometry %d: %w", geo.ID(), err)
	}
	c.entries[geo.ID()] = &layoutEntry{handle: h}
	c.ctx.Logger().Debugf("vertex layout: geometry %d -> layout %d", geo.ID(), h)
	return h, nil
}

func (c *vertexLayoutCache) NeedsRebind(geo *geometry.Geometry, index *attribute.Attribute[uint32]) bool {
	entry, ok := c.entries[geo.ID()]
	if !ok || entry.bound == nil {
		return true
	}
	return !entry.bound.equal(fingerprintOf(geo, index))
}

func (c *vertexLayoutCache) bind(h gpu.LayoutHandle) error {
	if c.current == h {
		return nil
	}
	if err := c.device.BindVertexLayout(h); err != nil {
		return err
	}
	c.current = h
	return nil
}

func (c *vertexLayoutCache) Rebind(geo *geometry.Geometry, index *attribute.Attribute[uint32]) error {
	h, err := c.GetOrCreate(geo)
	if err != nil {
		return err
	}
	entry := c.entries[geo.ID()]
	fp := fingerprintOf(geo, index)

	if entry.bound != nil && entry.bound.shrunk(fp) {
		c.deleteLayout(h)
		if h, err = c.device.CreateVertexLayout(); err != nil {
			delete(c.entries, geo.ID())
			return fmt.Errorf("recreate vertex layout for geometry %d: %w", geo.ID(), err)
		}
		entry.handle = h
		entry.bound = nil
	}
	if err := c.bind(h); err != nil {
		return fmt.Errorf("bind layout %d of geometry %d: %w", h, geo.ID(), err)
	}

	for _, name := range geo.AttributeNames() {
		slot, ok := c.slots[name]
		if !ok {
			continue
		}
		src, _ := geo.Get(name)
		buf, err := c.buffers.Ensure(src, gpu.TargetVertex)
		if err != nil {
			return fmt.Errorf("geometry %d attribute %q: %w", geo.ID(), name, err)
		}
		if err := c.device.BindAttribute(slot, buf, src.ItemSize(), src.DataType()); err != nil {
			return fmt.Errorf("geometry %d attribute %q slot %d: %w", geo.ID(), name, slot, err)
		}
	}

	if index != nil {
		buf, err := c.buffers.Ensure(index, gpu.TargetIndex)
		if err != nil {
			return fmt.Errorf("geometry %d index: %w", geo.ID(), err)
		}
		if err := c.device.BindIndexBuffer(buf, common.DataTypeUint32); err != nil {
			return fmt.Errorf("geometry %d index: %w", geo.ID(), err)
		}
	}

	entry.bound = fp
	return nil
}

func (c *vertexLayoutCache) Setup(geo *geometry.Geometry, index *attribute.Attribute[uint32]) error {
	h, err := c.GetOrCreate(geo)
	if err != nil {
		return err
	}
	if err := c.bind(h); err != nil {
		return fmt.Errorf("bind layout %d of geometry %d: %w", h, geo.ID(), err)
	}
	if c.NeedsRebind(geo, index) {
		return c.Rebind(geo, index)
	}
	if index != nil {
		if _, err := c.buffers.Ensure(index, gpu.TargetIndex); err != nil {
			return fmt.Errorf("geometry %d index: %w", geo.ID(), err)
		}
	}
	return nil
}

func (c *vertexLayoutCache) Reset() {
	c.current = 0
}

func (c *vertexLayoutCache) Slots() Slots {
	return c.slots
}

func (c *vertexLayoutCache) Len() int {
	return len(c.entries)
}

func (c *vertexLayoutCache) Release() {
	c.sub.Release()
	for id, entry := range c.entries {
		c.device.DeleteVertexLayout(entry.handle)
		delete(c.entries, id)
	}
	c.current = 0
}
