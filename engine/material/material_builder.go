package material

import "github.com/Carmen-Shannon/oxy-sg/common"

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithKind is an option builder that sets the material variant.
//
// Parameters:
//   - kind: basic, line, point or depth
//
// Returns:
//   - MaterialBuilderOption: a function that applies the kind option to a material
func WithKind(kind Kind) MaterialBuilderOption {
	return func(m *material) {
		m.kind = kind
	}
}

// WithBaseColor is an option builder that sets the RGBA color of the material.
//
// Parameters:
//   - color: the base color as RGBA float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(color common.Vec4) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color
	}
}

// WithTransparent is an option builder that places the material in the transparent bucket.
// Transparent materials default to not writing depth.
//
// Parameters:
//   - opacity: the alpha multiplier, clamped to [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that applies the transparency option to a material
func WithTransparent(opacity float32) MaterialBuilderOption {
	return func(m *material) {
		m.transparent = true
		m.opacity = min(max(opacity, 0), 1)
		m.depthWrite = false
	}
}

// WithDepth is an option builder that sets depth testing and writing.
//
// Parameters:
//   - test: whether fragments are depth tested
//   - write: whether fragments write depth
//
// Returns:
//   - MaterialBuilderOption: a function that applies the depth option to a material
func WithDepth(test, write bool) MaterialBuilderOption {
	return func(m *material) {
		m.depthTest = test
		m.depthWrite = write
	}
}

// WithSide is an option builder that sets which faces are drawn.
//
// Parameters:
//   - side: front, back or double
//
// Returns:
//   - MaterialBuilderOption: a function that applies the side option to a material
func WithSide(side Side) MaterialBuilderOption {
	return func(m *material) {
		m.side = side
	}
}
