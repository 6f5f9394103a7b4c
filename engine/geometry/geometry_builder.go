package geometry

import "github.com/Carmen-Shannon/oxy-sg/engine/attribute"

// GeometryBuilderOption is a functional option for configuring a Geometry during construction.
type GeometryBuilderOption func(*Geometry)

// WithName sets the debug name.
//
// Parameters:
//   - name: the label
//
// Returns:
//   - GeometryBuilderOption: functional option to set the name
func WithName(name string) GeometryBuilderOption {
	return func(g *Geometry) {
		g.name = name
	}
}

// WithAttribute stores src under name.
//
// Parameters:
//   - name: the attribute name
//   - src: the attribute
//
// Returns:
//   - GeometryBuilderOption: functional option to add the attribute
func WithAttribute(name string, src attribute.Source) GeometryBuilderOption {
	return func(g *Geometry) {
		g.attributes[name] = src
	}
}

// WithIndex sets the index buffer.
//
// Parameters:
//   - index: the uint32 index attribute
//
// Returns:
//   - GeometryBuilderOption: functional option to set the index
func WithIndex(index *attribute.Attribute[uint32]) GeometryBuilderOption {
	return func(g *Geometry) {
		g.index = index
	}
}
