package vertex_layout

import "maps"

// VertexLayoutBuilderOption is a functional option for configuring a VertexLayoutCache during construction.
type VertexLayoutBuilderOption func(*vertexLayoutCache)

// WithSlots replaces the attribute location table. Names missing from slots are never bound.
//
// Parameters:
//   - slots: attribute name to shader location
//
// Returns:
//   - VertexLayoutBuilderOption: functional option to set the slot table
func WithSlots(slots Slots) VertexLayoutBuilderOption {
	return func(c *vertexLayoutCache) {
		c.slots = maps.Clone(slots)
	}
}
