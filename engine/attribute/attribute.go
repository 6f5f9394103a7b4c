// Package attribute implements typed per-vertex data arrays that track which part of their
// data changed since the last GPU sync.
package attribute

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/Carmen-Shannon/oxy-sg/engine/event"
	"github.com/Carmen-Shannon/oxy-sg/engine/identity"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
)

// Scalar is the set of element types an attribute can hold.
type Scalar interface {
	float32 | uint32 | int32 | uint8 | int8
}

// Source is the type-erased view of an attribute consumed by the GPU caches.
type Source interface {
	// ID returns the attribute's unique identifier, the cache key on the GPU side.
	//
	// Returns:
	//   - identity.ID: the attribute ID
	ID() identity.ID

	// ItemSize returns the number of components per vertex.
	//
	// Returns:
	//   - int: components per vertex
	ItemSize() int

	// Count returns the number of vertices (Len / ItemSize).
	//
	// Returns:
	//   - int: the vertex count
	Count() int

	// Len returns the number of scalar elements.
	//
	// Returns:
	//   - int: the element count
	Len() int

	// Bytes returns a byte view of the whole data buffer. It aliases the attribute's storage.
	//
	// Returns:
	//   - []byte: the raw bytes, nil when empty
	Bytes() []byte

	// DataType returns the scalar type of every element.
	//
	// Returns:
	//   - common.DataType: the element type
	DataType() common.DataType

	// Usage returns the GPU usage hint.
	//
	// Returns:
	//   - common.Usage: static or dynamic
	Usage() common.Usage

	// NeedsUpdate reports whether the data changed since the last ClearNeedsUpdate.
	//
	// Returns:
	//   - bool: true when dirty
	NeedsUpdate() bool

	// UpdateRange returns the dirty span in elements. A whole-buffer range has Count == common.WholeRange.
	//
	// Returns:
	//   - common.Range: the dirty span
	UpdateRange() common.Range

	// ClearNeedsUpdate marks the data as synced.
	ClearNeedsUpdate()

	// ClearUpdateRange resets the dirty span to the whole buffer.
	ClearUpdateRange()

	// Float returns component c of vertex i converted to float32.
	//
	// Parameters:
	//   - i: vertex index
	//   - c: component index, below ItemSize
	//
	// Returns:
	//   - float32: the converted value
	Float(i, c int) float32

	// Disposed reports whether Dispose has been called.
	//
	// Returns:
	//   - bool: true after Dispose
	Disposed() bool

	// Dispose publishes the attribute-disposed event. Later calls do nothing.
	Dispose()
}

// Attribute is a flat array of T where every ItemSize consecutive elements belong to one vertex.
//
// Writes through the component setters mark the attribute dirty and widen its update range:
// a clean attribute gets exactly the touched element, a whole-buffer range stays whole, and a
// partial range grows to cover the union. New attributes start dirty with a whole-buffer range.
type Attribute[T Scalar] struct {
	ctx         render_context.RenderContext
	id          identity.ID
	name        string
	data        []T
	itemSize    int
	usage       common.Usage
	dataType    common.DataType
	needsUpdate bool
	updateRange common.Range
	disposed    bool
}

var _ Source = &Attribute[float32]{}

// New creates an attribute over data, which is used directly rather than copied.
// itemSize must be positive and divide len(data); anything else panics.
//
// Parameters:
//   - ctx: the render context issuing the ID and carrying the event bus
//   - data: the initial elements
//   - itemSize: components per vertex
//   - options: functional options to configure the attribute
//
// Returns:
//   - *Attribute[T]: the new attribute, dirty over the whole buffer
func New[T Scalar](ctx render_context.RenderContext, data []T, itemSize int, options ...AttributeBuilderOption) *Attribute[T] {
	if itemSize <= 0 {
		panic(fmt.Sprintf("attribute: item size must be positive, got %d", itemSize))
	}
	if len(data)%itemSize != 0 {
		panic(fmt.Sprintf("attribute: %d elements is not a multiple of item size %d", len(data), itemSize))
	}

	s := settings{usage: common.UsageStatic}
	for _, option := range options {
		option(&s)
	}

	return &Attribute[T]{
		ctx:         ctx,
		id:          ctx.NextID(),
		name:        s.name,
		data:        data,
		itemSize:    itemSize,
		usage:       s.usage,
		dataType:    dataTypeOf[T](),
		needsUpdate: true,
		updateRange: common.Range{Offset: 0, Count: common.WholeRange},
	}
}

func dataTypeOf[T Scalar]() common.DataType {
	var zero T
	switch any(zero).(type) {
	case float32:
		return common.DataTypeFloat32
	case uint32:
		return common.DataTypeUint32
	case int32:
		return common.DataTypeInt32
	case uint8:
		return common.DataTypeUint8
	case int8:
		return common.DataTypeInt8
	}
	return common.DataTypeFloat32
}

func (a *Attribute[T]) ID() identity.ID {
	return a.id
}

// Name returns the optional debug name.
func (a *Attribute[T]) Name() string {
	return a.name
}

func (a *Attribute[T]) ItemSize() int {
	return a.itemSize
}

func (a *Attribute[T]) Count() int {
	return len(a.data) / a.itemSize
}

func (a *Attribute[T]) Len() int {
	return len(a.data)
}

// Data returns the backing slice. Callers writing through it directly must call
// MarkNeedsUpdate or MarkRangeNeedsUpdate afterwards.
func (a *Attribute[T]) Data() []T {
	return a.data
}

func (a *Attribute[T]) Bytes() []byte {
	return common.SliceToBytes(a.data)
}

func (a *Attribute[T]) DataType() common.DataType {
	return a.dataType
}

func (a *Attribute[T]) Usage() common.Usage {
	return a.usage
}

// SetUsage changes the GPU usage hint. It applies the next time the buffer is allocated.
func (a *Attribute[T]) SetUsage(u common.Usage) {
	a.usage = u
}

func (a *Attribute[T]) NeedsUpdate() bool {
	return a.needsUpdate
}

func (a *Attribute[T]) UpdateRange() common.Range {
	return a.updateRange
}

func (a *Attribute[T]) ClearNeedsUpdate() {
	a.needsUpdate = false
}

func (a *Attribute[T]) ClearUpdateRange() {
	a.updateRange = common.Range{Offset: 0, Count: common.WholeRange}
}

// MarkNeedsUpdate flags the whole buffer for re-upload.
func (a *Attribute[T]) MarkNeedsUpdate() {
	a.needsUpdate = true
	a.updateRange = common.Range{Offset: 0, Count: common.WholeRange}
}

// MarkRangeNeedsUpdate flags count elements starting at offset, merged with any pending range.
//
// Parameters:
//   - offset: first dirty element
//   - count: number of dirty elements
func (a *Attribute[T]) MarkRangeNeedsUpdate(offset, count int) {
	if offset < 0 || count <= 0 || offset+count > len(a.data) {
		panic(fmt.Sprintf("attribute %d: range [%d, %d) outside %d elements", a.id, offset, offset+count, len(a.data)))
	}
	a.widen(offset, count)
}

func (a *Attribute[T]) widen(offset, count int) {
	switch {
	case !a.needsUpdate:
		a.updateRange = common.Range{Offset: offset, Count: count}
	case a.updateRange.IsWhole():
		// already re-uploading everything
	default:
		start := min(a.updateRange.Offset, offset)
		end := max(a.updateRange.End(), offset+count)
		a.updateRange = common.Range{Offset: start, Count: end - start}
	}
	a.needsUpdate = true
}

func (a *Attribute[T]) index(i, c int) int {
	if i < 0 || i >= a.Count() {
		panic(fmt.Sprintf("attribute %d: vertex index %d out of range [0, %d)", a.id, i, a.Count()))
	}
	if c < 0 || c >= a.itemSize {
		panic(fmt.Sprintf("attribute %d: component %d out of range for item size %d", a.id, c, a.itemSize))
	}
	return i*a.itemSize + c
}

// Component returns component c of vertex i.
func (a *Attribute[T]) Component(i, c int) T {
	return a.data[a.index(i, c)]
}

// SetComponent writes component c of vertex i and widens the update range by one element.
func (a *Attribute[T]) SetComponent(i, c int, v T) {
	k := a.index(i, c)
	a.data[k] = v
	a.widen(k, 1)
}

func (a *Attribute[T]) Float(i, c int) float32 {
	return float32(a.Component(i, c))
}

// X returns the first component of vertex i.
func (a *Attribute[T]) X(i int) T { return a.Component(i, 0) }

// Y returns the second component of vertex i.
func (a *Attribute[T]) Y(i int) T { return a.Component(i, 1) }

// Z returns the third component of vertex i.
func (a *Attribute[T]) Z(i int) T { return a.Component(i, 2) }

// W returns the fourth component of vertex i.
func (a *Attribute[T]) W(i int) T { return a.Component(i, 3) }

// SetX writes the first component of vertex i.
func (a *Attribute[T]) SetX(i int, v T) { a.SetComponent(i, 0, v) }

// SetY writes the second component of vertex i.
func (a *Attribute[T]) SetY(i int, v T) { a.SetComponent(i, 1, v) }

// SetZ writes the third component of vertex i.
func (a *Attribute[T]) SetZ(i int, v T) { a.SetComponent(i, 2, v) }

// SetW writes the fourth component of vertex i.
func (a *Attribute[T]) SetW(i int, v T) { a.SetComponent(i, 3, v) }

// SetXYZ writes the first three components of vertex i as a single range widening.
func (a *Attribute[T]) SetXYZ(i int, x, y, z T) {
	k := a.index(i, 0)
	a.index(i, 2)
	a.data[k], a.data[k+1], a.data[k+2] = x, y, z
	a.widen(k, 3)
}

// SetData replaces the whole buffer. len(data) must be a multiple of the item size.
// The next sync re-uploads everything and reallocates if the byte size changed.
func (a *Attribute[T]) SetData(data []T) {
	if len(data)%a.itemSize != 0 {
		panic(fmt.Sprintf("attribute %d: %d elements is not a multiple of item size %d", a.id, len(data), a.itemSize))
	}
	a.data = data
	a.MarkNeedsUpdate()
}

func (a *Attribute[T]) Disposed() bool {
	return a.disposed
}

// Dispose announces the attribute's destruction on the event bus so GPU caches can evict it.
// Later calls are no-ops.
func (a *Attribute[T]) Dispose() {
	if a.disposed {
		return
	}
	a.disposed = true
	a.ctx.Events().Publish(event.Event{
		Topic:   event.AttributeDisposed,
		Target:  a,
		Payload: a.id,
	})
}
