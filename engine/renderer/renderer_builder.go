package renderer

import (
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/geometry_updater"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/render_list"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/vertex_layout"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithSlots replaces the attribute name to shader location table used by the vertex-layout cache.
//
// Parameters:
//   - slots: the slot table
//
// Returns:
//   - RendererBuilderOption: a function that applies the slot table to a renderer
func WithSlots(slots vertex_layout.Slots) RendererBuilderOption {
	return func(r *renderer) {
		r.slots = slots
	}
}

// WithSyncer replaces the per-geometry upload strategy. The default ensures every attribute
// through the renderer's buffer cache.
//
// Parameters:
//   - syncer: the upload strategy
//
// Returns:
//   - RendererBuilderOption: a function that applies the syncer to a renderer
func WithSyncer(syncer geometry_updater.Syncer) RendererBuilderOption {
	return func(r *renderer) {
		r.syncer = syncer
	}
}

// WithSorting sets the comparators for the opaque and transparent buckets. Nil selects the
// default order.
//
// Parameters:
//   - opaque: the opaque comparator, or nil
//   - transparent: the transparent comparator, or nil
//
// Returns:
//   - RendererBuilderOption: a function that applies the sorting to a renderer
func WithSorting(opaque, transparent render_list.Compare) RendererBuilderOption {
	return func(r *renderer) {
		r.opaqueSort = opaque
		r.transparentSort = transparent
	}
}

// WithFrustumCulling enables or disables frustum culling. Culling is on by default.
//
// Parameters:
//   - enabled: false to draw every object regardless of the camera frustum
//
// Returns:
//   - RendererBuilderOption: a function that applies the culling option to a renderer
func WithFrustumCulling(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.culling = enabled
	}
}

// WithRenderListCapacity preallocates n render items.
//
// Parameters:
//   - n: the number of items to allocate up front
//
// Returns:
//   - RendererBuilderOption: a function that sizes the render list of a renderer
func WithRenderListCapacity(n int) RendererBuilderOption {
	return func(r *renderer) {
		r.list = render_list.NewRenderList(render_list.WithCapacity(n))
	}
}
