// Package render_list collects the items drawn in a frame into an opaque and a transparent
// bucket, sorts them and keeps the item storage alive across frames.
//
// The list is owned by the render thread and is not safe for concurrent use.
package render_list

import (
	"cmp"
	"slices"

	"github.com/Carmen-Shannon/oxy-sg/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sg/engine/identity"
	"github.com/Carmen-Shannon/oxy-sg/engine/material"
	"github.com/Carmen-Shannon/oxy-sg/engine/node"
)

// RenderItem is one draw of an object. Items are pooled and must not be retained past End.
type RenderItem struct {
	ID         identity.ID
	Object     node.Object
	Geometry   *geometry.Geometry
	Material   material.Material
	GroupOrder int32
	Z          float32
}

func (r *RenderItem) clear() {
	*r = RenderItem{}
}

// Compare orders two items, returning a negative number when a draws before b.
type Compare func(a, b *RenderItem) int

// OpaqueOrder draws higher groups first, then front to back, then newer IDs first.
func OpaqueOrder(a, b *RenderItem) int {
	if c := cmp.Compare(b.GroupOrder, a.GroupOrder); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Z, b.Z); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

// TransparentOrder draws higher groups first, then back to front, then newer IDs first.
func TransparentOrder(a, b *RenderItem) int {
	if c := cmp.Compare(b.GroupOrder, a.GroupOrder); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Z, a.Z); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

type renderList struct {
	pool         []*RenderItem
	used         int
	opaques      []*RenderItem
	transparents []*RenderItem
}

// RenderList is the per-frame draw list.
type RenderList interface {
	// Begin starts a frame. The buckets are emptied and the pool is kept.
	Begin()

	// Push records a draw, reusing a pooled item when one is free. The item goes to the
	// transparent bucket when mat is transparent and to the opaque bucket otherwise.
	//
	// Parameters:
	//   - obj: the object being drawn; its node ID becomes the tie-break
	//   - geo: the geometry drawn
	//   - mat: the material, possibly nil
	//   - groupOrder: the render group
	//   - z: the view-space depth
	//
	// Returns:
	//   - *RenderItem: the recorded item, valid until End
	Push(obj node.Object, geo *geometry.Geometry, mat material.Material, groupOrder int32, z float32) *RenderItem

	// Sort orders both buckets. A nil comparator selects OpaqueOrder or TransparentOrder.
	//
	// Parameters:
	//   - opaque: the opaque comparator, or nil
	//   - transparent: the transparent comparator, or nil
	Sort(opaque, transparent Compare)

	// End finishes a frame, clearing every reference held by pool slots that were not used.
	End()

	// Opaques returns the opaque bucket. The slice is reused by the next Begin.
	//
	// Returns:
	//   - []*RenderItem: the opaque items
	Opaques() []*RenderItem

	// Transparents returns the transparent bucket. The slice is reused by the next Begin.
	//
	// Returns:
	//   - []*RenderItem: the transparent items
	Transparents() []*RenderItem

	// Len returns the number of items pushed since Begin.
	//
	// Returns:
	//   - int: the used count
	Len() int

	// PoolSize returns the number of allocated items.
	//
	// Returns:
	//   - int: the pool size
	PoolSize() int
}

var _ RenderList = &renderList{}

// NewRenderList creates an empty list.
//
// Parameters:
//   - options: functional options to configure the list
//
// Returns:
//   - RenderList: the newly created list
func NewRenderList(options ...RenderListBuilderOption) RenderList {
	l := &renderList{}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *renderList) Begin() {
	l.used = 0
	clear(l.opaques)
	clear(l.transparents)
	l.opaques = l.opaques[:0]
	l.transparents = l.transparents[:0]
}

func (l *renderList) Push(obj node.Object, geo *geometry.Geometry, mat material.Material, groupOrder int32, z float32) *RenderItem {
	var item *RenderItem
	if l.used < len(l.pool) {
		item = l.pool[l.used]
	} else {
		item = &RenderItem{}
		l.pool = append(l.pool, item)
	}
	l.used++

	item.ID = obj.Base().ID()
	item.Object = obj
	item.Geometry = geo
	item.Material = mat
	item.GroupOrder = groupOrder
	item.Z = z

	if mat != nil && mat.Transparent() {
		l.transparents = append(l.transparents, item)
	} else {
		l.opaques = append(l.opaques, item)
	}
	return item
}

func (l *renderList) Sort(opaque, transparent Compare) {
	if opaque == nil {
		opaque = OpaqueOrder
	}
	if transparent == nil {
		transparent = TransparentOrder
	}
	slices.SortStableFunc(l.opaques, opaque)
	slices.SortStableFunc(l.transparents, transparent)
}

func (l *renderList) End() {
	for _, item := range l.pool[l.used:] {
		item.clear()
	}
}

func (l *renderList) Opaques() []*RenderItem {
	return l.opaques
}

func (l *renderList) Transparents() []*RenderItem {
	return l.transparents
}

func (l *renderList) Len() int {
	return l.used
}

func (l *renderList) PoolSize() int {
	return len(l.pool)
}
