package render_list

// RenderListBuilderOption is a functional option for configuring a RenderList during construction.
type RenderListBuilderOption func(*renderList)

// WithCapacity preallocates n pooled items.
//
// Parameters:
//   - n: the number of items to allocate up front
//
// Returns:
//   - RenderListBuilderOption: functional option to size the pool
func WithCapacity(n int) RenderListBuilderOption {
	return func(l *renderList) {
		for range n {
			l.pool = append(l.pool, &RenderItem{})
		}
		l.opaques = make([]*RenderItem, 0, n)
		l.transparents = make([]*RenderItem, 0, n)
	}
}
