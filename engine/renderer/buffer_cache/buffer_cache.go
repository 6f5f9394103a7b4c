// Package buffer_cache maps vertex attributes to GPU buffers and keeps their contents in sync,
// issuing sub-range writes when only part of an attribute changed.
//
// The cache is owned by the render thread and is not safe for concurrent use.
package buffer_cache

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-sg/engine/attribute"
	"github.com/Carmen-Shannon/oxy-sg/engine/event"
	"github.com/Carmen-Shannon/oxy-sg/engine/identity"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/gpu"
)

// ErrDisposed is returned when Ensure is called with an attribute that was already disposed.
var ErrDisposed = errors.New("buffer cache: attribute disposed")

type entry struct {
	handle gpu.BufferHandle
	target gpu.Target
	size   int
}

type bufferCache struct {
	ctx     render_context.RenderContext
	device  gpu.Device
	entries map[identity.ID]*entry
	sub     event.Subscription
}

// BufferCache owns one GPU buffer per attribute ID.
type BufferCache interface {
	// Ensure returns the buffer for src, creating it on first use and uploading pending changes.
	//
	// A dirty attribute whose update range is partial and inside the buffer is synced with a
	// single sub-range write. Anything else, including a size change, is a full upload that keeps
	// the handle. On success the attribute's dirty flag and range are cleared; on error they are
	// left untouched so the next call retries.
	//
	// Parameters:
	//   - src: the attribute to sync
	//   - target: vertex or index binding point, used only at creation
	//
	// Returns:
	//   - gpu.BufferHandle: the attribute's buffer
	//   - error: ErrDisposed for a disposed attribute, or a wrapped device error
	Ensure(src attribute.Source, target gpu.Target) (gpu.BufferHandle, error)

	// Get looks up the buffer for src without creating or syncing anything.
	//
	// Parameters:
	//   - src: the attribute to look up
	//
	// Returns:
	//   - gpu.BufferHandle: the buffer, or 0
	//   - bool: true if an entry exists
	Get(src attribute.Source) (gpu.BufferHandle, bool)

	// Evict deletes the GPU buffer of the attribute with the given ID. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the attribute ID
	Evict(id identity.ID)

	// Len returns the number of resident buffers.
	//
	// Returns:
	//   - int: the entry count
	Len() int

	// ResidentBytes returns the bytes allocated across every entry.
	//
	// Returns:
	//   - int: the total allocation size
	ResidentBytes() int

	// Release deletes every buffer and stops listening for attribute disposal.
	Release()
}

var _ BufferCache = &bufferCache{}

// NewBufferCache creates an empty cache and subscribes it to attribute-disposed events on the
// context's bus, so disposing an attribute frees its buffer.
//
// Parameters:
//   - ctx: the render context carrying the bus and logger
//   - device: the device buffers are created on
//
// Returns:
//   - BufferCache: the newly created cache
func NewBufferCache(ctx render_context.RenderContext, device gpu.Device) BufferCache {
	c := &bufferCache{
		ctx:     ctx,
		device:  device,
		entries: make(map[identity.ID]*entry),
	}
	c.sub = ctx.Events().Subscribe(event.AttributeDisposed, c, "Evict", c.onAttributeDisposed)
	return c
}

func (c *bufferCache) onAttributeDisposed(e event.Event) {
	if id, ok := e.Payload.(identity.ID); ok {
		c.Evict(id)
	}
}

func (c *bufferCache) Ensure(src attribute.Source, target gpu.Target) (gpu.BufferHandle, error) {
	if src.Disposed() {
		return 0, fmt.Errorf("ensure attribute %d: %w", src.ID(), ErrDisposed)
	}

	e, ok := c.entries[src.ID()]
	if !ok {
		data := src.Bytes()
		h, err := c.device.CreateBuffer(target, src.Usage(), data)
		if err != nil {
			return 0, fmt.Errorf("create %s buffer for attribute %d: %w", target, src.ID(), err)
		}
		c.entries[src.ID()] = &entry{handle: h, target: target, size: len(data)}
		c.ctx.Logger().Debugf("buffer cache: attribute %d -> %s buffer %d (%d bytes)", src.ID(), target, h, len(data))
		markSynced(src)
		return h, nil
	}

	if !src.NeedsUpdate() {
		return e.handle, nil
	}

	data := src.Bytes()
	r := src.UpdateRange()
	elem := src.DataType().Size()
	if !r.IsWhole() && r.Offset >= 0 && r.End() <= src.Len() && len(data) == e.size {
		start, end := r.Offset*elem, r.End()*elem
		if err := c.device.UpdateBuffer(e.handle, start, data[start:end]); err != nil {
			return 0, fmt.Errorf("update attribute %d bytes [%d, %d): %w", src.ID(), start, end, err)
		}
	} else {
		if err := c.device.UploadBuffer(e.handle, data); err != nil {
			return 0, fmt.Errorf("upload attribute %d (%d bytes): %w", src.ID(), len(data), err)
		}
		e.size = len(data)
	}

	markSynced(src)
	return e.handle, nil
}

func markSynced(src attribute.Source) {
	src.ClearNeedsUpdate()
	src.ClearUpdateRange()
}

func (c *bufferCache) Get(src attribute.Source) (gpu.BufferHandle, bool) {
	e, ok := c.entries[src.ID()]
	if !ok {
		return 0, false
	}
	return e.handle, true
}

func (c *bufferCache) Evict(id identity.ID) {
	e, ok := c.entries[id]
	if !ok {
		return
	}
	c.device.DeleteBuffer(e.handle)
	delete(c.entries, id)
	c.ctx.Logger().Debugf("buffer cache: evicted attribute %d (%s buffer %d)", id, e.target, e.handle)
}

func (c *bufferCache) Len() int {
	return len(c.entries)
}

func (c *bufferCache) ResidentBytes() int {
	total := 0
	for _, e := range c.entries {
		total += e.size
	}
	return total
}

func (c *bufferCache) Release() {
	c.sub.Release()
	for id, e := range c.entries {
		c.device.DeleteBuffer(e.handle)
		delete(c.entries, id)
	}
}
