package common

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// Mat4Identity returns the 4x4 identity matrix.
func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Mul multiplies two 4x4 matrices. All matrices are column-major.
// Result: m * o, so o is applied first when transforming a point.
//
// Parameters:
//   - o: right-hand matrix
//
// Returns:
//   - Mat4: the product
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ { // column of o
		for j := 0; j < 4; j++ { // row of m
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += m[k*4+j] * o[i*4+k]
			}
			out[i*4+j] = sum
		}
	}
	return out
}

// Column returns the xyz part of column i.
func (m Mat4) Column(i int) Vec3 {
	return Vec3{m[i*4], m[i*4+1], m[i*4+2]}
}

// SetColumn overwrites the xyz part of column i, leaving the w row untouched.
func (m *Mat4) SetColumn(i int, v Vec3) {
	m[i*4], m[i*4+1], m[i*4+2] = v[0], v[1], v[2]
}

// Position returns the translation column.
func (m Mat4) Position() Vec3 {
	return m.Column(3)
}

// Determinant3 returns the determinant of the upper-left 3x3 basis.
func (m Mat4) Determinant3() float32 {
	return m.Column(0).Dot(m.Column(1).Cross(m.Column(2)))
}

// MaxScaleOnAxis returns the largest basis column length. Used to scale bounding spheres.
func (m Mat4) MaxScaleOnAxis() float32 {
	return math32.Max(m.Column(0).Len(), math32.Max(m.Column(1).Len(), m.Column(2).Len()))
}

// TransformPoint applies m to the point p (w = 1) with perspective divide.
//
// Parameters:
//   - p: the point to transform
//
// Returns:
//   - Vec3: the transformed point
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12]
	y := m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13]
	z := m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14]
	w := m[3]*p[0] + m[7]*p[1] + m[11]*p[2] + m[15]
	if w != 0 && w != 1 {
		inv := 1 / w
		return Vec3{x * inv, y * inv, z * inv}
	}
	return Vec3{x, y, z}
}

// ApproxEqual reports whether every element of m is within eps of o.
func (m Mat4) ApproxEqual(o Mat4, eps float32) bool {
	for i := range m {
		if math32.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

// Compose builds a local transform from translation, rotation and scale (T * R * S).
//
// Parameters:
//   - position: translation
//   - q: unit rotation quaternion
//   - scale: per-axis scale
//
// Returns:
//   - Mat4: the composed column-major matrix
func Compose(position Vec3, q Quat, scale Vec3) Mat4 {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.W
	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2
	sx, sy, sz := scale[0], scale[1], scale[2]

	return Mat4{
		(1 - (yy + zz)) * sx, (xy + wz) * sx, (xz - wy) * sx, 0,
		(xy - wz) * sy, (1 - (xx + zz)) * sy, (yz + wx) * sy, 0,
		(xz + wy) * sz, (yz - wx) * sz, (1 - (xx + yy)) * sz, 0,
		position[0], position[1], position[2], 1,
	}
}

// Decompose splits an affine transform into translation, rotation and scale.
// Scale comes from the basis column lengths; a negative determinant flips the x scale.
// The basis is normalized by the scale before the rotation is extracted, so shear-free
// inputs round-trip through Compose. A zero scale on any axis leaves that column out of
// the rotation and the result is undefined.
//
// Returns:
//   - position: the translation column
//   - q: the unit rotation
//   - scale: per-axis scale
func (m Mat4) Decompose() (position Vec3, q Quat, scale Vec3) {
	sx := m.Column(0).Len()
	sy := m.Column(1).Len()
	sz := m.Column(2).Len()
	if m.Determinant3() < 0 {
		sx = -sx
	}

	position = m.Position()
	scale = Vec3{sx, sy, sz}

	var r Mat4
	r.SetColumn(0, safeDiv(m.Column(0), sx))
	r.SetColumn(1, safeDiv(m.Column(1), sy))
	r.SetColumn(2, safeDiv(m.Column(2), sz))
	q = QuatFromRotationMatrix(r)
	return position, q, scale
}

func safeDiv(v Vec3, s float32) Vec3 {
	if s == 0 {
		return Vec3{}
	}
	return v.Mul(1 / s)
}

// QuatFromRotationMatrix extracts the rotation of a pure-rotation upper 3x3 basis.
//
// Parameters:
//   - m: matrix whose basis columns are orthonormal
//
// Returns:
//   - Quat: the unit rotation
func QuatFromRotationMatrix(m Mat4) Quat {
	m11, m12, m13 := m[0], m[4], m[8]
	m21, m22, m23 := m[1], m[5], m[9]
	m31, m32, m33 := m[2], m[6], m[10]
	trace := m11 + m22 + m33

	var q Quat
	switch {
	case trace > 0:
		s := 0.5 / math32.Sqrt(trace+1)
		q.W = 0.25 / s
		q.V = Vec3{(m32 - m23) * s, (m13 - m31) * s, (m21 - m12) * s}
	case m11 > m22 && m11 > m33:
		s := 2 * math32.Sqrt(1+m11-m22-m33)
		q.W = (m32 - m23) / s
		q.V = Vec3{0.25 * s, (m12 + m21) / s, (m13 + m31) / s}
	case m22 > m33:
		s := 2 * math32.Sqrt(1+m22-m11-m33)
		q.W = (m13 - m31) / s
		q.V = Vec3{(m12 + m21) / s, 0.25 * s, (m23 + m32) / s}
	default:
		s := 2 * math32.Sqrt(1+m33-m11-m22)
		q.W = (m21 - m12) / s
		q.V = Vec3{(m13 + m31) / s, (m23 + m32) / s, 0.25 * s}
	}
	return q.Normalize()
}

// Invert computes the inverse of a 4x4 column-major matrix using the Laplace
// expansion (cofactor) method.
//
// Returns:
//   - Mat4: the inverse, or m unchanged when singular
//   - bool: true if the matrix was successfully inverted, false if singular
func (m Mat4) Invert() (Mat4, bool) {
	// 2x2 sub-determinants of the upper-left and lower-right quadrants.
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return m, false
	}
	invDet := 1.0 / det

	var out Mat4
	out[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * invDet
	out[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * invDet
	out[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * invDet
	out[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * invDet

	out[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * invDet
	out[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * invDet
	out[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * invDet
	out[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * invDet

	out[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * invDet
	out[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * invDet
	out[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * invDet
	out[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * invDet

	out[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * invDet
	out[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * invDet
	out[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * invDet
	out[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * invDet

	return out, true
}

// Perspective creates a perspective projection matrix for WebGPU clip space (depth in [0, 1]).
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - Mat4: the projection matrix
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1.0 / math32.Tan(fovY/2.0)
	out := Mat4Identity()

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
	return out
}

// Orthographic creates an orthographic projection matrix for WebGPU clip space (depth in [0, 1]).
//
// Parameters:
//   - left, right, bottom, top: view volume extents
//   - near, far: clipping plane distances
//
// Returns:
//   - Mat4: the projection matrix
func Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	out := Mat4Identity()
	out[0] = 2 / (right - left)
	out[5] = 2 / (top - bottom)
	out[10] = 1 / (near - far)
	out[12] = -(right + left) / (right - left)
	out[13] = -(top + bottom) / (top - bottom)
	out[14] = near / (near - far)
	return out
}

// LookAtView creates a view matrix that positions and orients a camera at eye looking at center.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
//
// Returns:
//   - Mat4: the view matrix
func LookAtView(eye, center, up Vec3) Mat4 {
	z := eye.Sub(center).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)

	var out Mat4
	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -x.Dot(eye)
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -y.Dot(eye)
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -z.Dot(eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
	return out
}

// Transpose returns the transpose of m.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[r*4+c] = m[c*4+r]
		}
	}
	return out
}

// NormalMatrix returns the inverse-transpose of the upper 3x3 basis of m, with the
// translation cleared. It transforms normals the way m transforms positions.
//
// Returns:
//   - Mat4: the normal matrix, or the identity when m is singular
func (m Mat4) NormalMatrix() Mat4 {
	basis := m
	basis[12], basis[13], basis[14] = 0, 0, 0
	basis[3], basis[7], basis[11], basis[15] = 0, 0, 0, 1
	inv, ok := basis.Invert()
	if !ok {
		return Mat4Identity()
	}
	return inv.Transpose()
}
