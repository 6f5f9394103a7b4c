package common

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   Vec3
	Distance float32
}

// DistanceToPoint returns the signed distance from the plane to p.
// Positive values are on the side the normal points to.
func (p Plane) DistanceToPoint(v Vec3) float32 {
	return p.Normal.Dot(v) + p.Distance
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumFromMatrix extracts frustum planes from a view-projection matrix.
// The matrix should be the combined Projection * View matrix with WebGPU depth in [0, 1].
// Uses the Gribb/Hartmann method for plane extraction.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the view-projection matrix (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj Mat4) Frustum {
	var f Frustum

	// For column-major matrix M, element M[row][col] is at index col*4 + row.
	row := func(r int) (Vec3, float32) {
		return Vec3{viewProj[r], viewProj[4+r], viewProj[8+r]}, viewProj[12+r]
	}
	r0, d0 := row(0)
	r1, d1 := row(1)
	r2, d2 := row(2)
	r3, d3 := row(3)

	f.Planes[FrustumLeft] = Plane{Normal: r3.Add(r0), Distance: d3 + d0}
	f.Planes[FrustumRight] = Plane{Normal: r3.Sub(r0), Distance: d3 - d0}
	f.Planes[FrustumBottom] = Plane{Normal: r3.Add(r1), Distance: d3 + d1}
	f.Planes[FrustumTop] = Plane{Normal: r3.Sub(r1), Distance: d3 - d1}
	// Depth is [0, 1], so near is row2 alone rather than row3 + row2.
	f.Planes[FrustumNear] = Plane{Normal: r2, Distance: d2}
	f.Planes[FrustumFar] = Plane{Normal: r3.Sub(r2), Distance: d3 - d2}

	for i := range f.Planes {
		f.normalizePlane(i)
	}

	return f
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := p.Normal.Len()
	if length > 0 {
		invLen := 1.0 / length
		p.Normal = p.Normal.Mul(invLen)
		p.Distance *= invLen
	}
}

// IntersectsSphere reports whether the sphere is at least partially inside the frustum.
//
// Parameters:
//   - s: the bounding sphere in the same space as the planes
//
// Returns:
//   - bool: false only when the sphere is fully outside one plane
func (f Frustum) IntersectsSphere(s Sphere) bool {
	for _, p := range f.Planes {
		if p.DistanceToPoint(s.Center) < -s.Radius {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether p lies inside every plane.
func (f Frustum) ContainsPoint(v Vec3) bool {
	for _, p := range f.Planes {
		if p.DistanceToPoint(v) < 0 {
			return false
		}
	}
	return true
}
