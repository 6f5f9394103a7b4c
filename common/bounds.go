package common

import "github.com/chewxy/math32"

// Box3 is an axis-aligned bounding box. An empty box has Min > Max on some axis.
type Box3 struct {
	Min Vec3
	Max Vec3
}

// EmptyBox3 returns a box that contains nothing; expanding it by a point yields that point.
func EmptyBox3() Box3 {
	inf := math32.Inf(1)
	return Box3{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// ExpandByPoint grows the box to include p.
func (b *Box3) ExpandByPoint(p Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Center returns the midpoint of the box, or the origin for an empty box.
func (b Box3) Center() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis, or zero for an empty box.
func (b Box3) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// ContainsPoint reports whether p is inside or on the box.
func (b Box3) ContainsPoint(p Vec3) bool {
	for i := range p {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// ApplyMatrix returns the axis-aligned box enclosing the eight transformed corners.
//
// Parameters:
//   - m: the transform to apply
//
// Returns:
//   - Box3: the transformed bounds, or the empty box unchanged
func (b Box3) ApplyMatrix(m Mat4) Box3 {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBox3()
	for i := 0; i < 8; i++ {
		c := Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		out.ExpandByPoint(m.TransformPoint(c))
	}
	return out
}

// Sphere is a bounding sphere. A negative radius marks an empty sphere.
type Sphere struct {
	Center Vec3
	Radius float32
}

// IsEmpty reports whether the sphere contains nothing.
func (s Sphere) IsEmpty() bool {
	return s.Radius < 0
}

// ApplyMatrix moves the center by m and scales the radius by the largest axis scale.
func (s Sphere) ApplyMatrix(m Mat4) Sphere {
	return Sphere{
		Center: m.TransformPoint(s.Center),
		Radius: s.Radius * m.MaxScaleOnAxis(),
	}
}

// ContainsPoint reports whether p is inside or on the sphere.
func (s Sphere) ContainsPoint(p Vec3) bool {
	return p.Sub(s.Center).Len() <= s.Radius
}
