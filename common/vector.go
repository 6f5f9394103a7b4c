package common

import "github.com/chewxy/math32"

const floatEpsilon = 1e-6

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Mul returns v scaled by s.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// MulVec returns the component-wise product of v and o.
func (v Vec3) MulVec(o Vec3) Vec3 {
	return Vec3{v[0] * o[0], v[1] * o[1], v[2] * o[2]}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Cross returns the cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Len returns the euclidean length of v.
func (v Vec3) Len() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length.
// A zero-length vector normalizes to the zero vector instead of dividing by zero.
//
// Returns:
//   - Vec3: the unit vector, or the zero vector if v has no length
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// Lerp linearly interpolates between v and o by t.
func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return v.Add(o.Sub(v).Mul(t))
}

// Min returns the component-wise minimum of v and o.
func (v Vec3) Min(o Vec3) Vec3 {
	return Vec3{math32.Min(v[0], o[0]), math32.Min(v[1], o[1]), math32.Min(v[2], o[2])}
}

// Max returns the component-wise maximum of v and o.
func (v Vec3) Max(o Vec3) Vec3 {
	return Vec3{math32.Max(v[0], o[0]), math32.Max(v[1], o[1]), math32.Max(v[2], o[2])}
}

// ApproxEqual reports whether every component of v is within eps of o.
func (v Vec3) ApproxEqual(o Vec3, eps float32) bool {
	for i := range v {
		if math32.Abs(v[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

// QuatFromAxisAngle creates the rotation of angle radians around axis.
// The axis is normalized first; a zero axis yields the identity rotation.
//
// Parameters:
//   - axis: rotation axis, need not be unit length
//   - angle: rotation angle in radians
//
// Returns:
//   - Quat: the unit rotation quaternion
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	n := axis.Normalize()
	if n == (Vec3{}) {
		return QuatIdentity()
	}
	s, c := math32.Sin(angle*0.5), math32.Cos(angle*0.5)
	return Quat{V: n.Mul(s), W: c}
}

// Mul composes two rotations. q.Mul(o) applies o first, then q.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		V: q.V.Cross(o.V).Add(o.V.Mul(q.W)).Add(q.V.Mul(o.W)),
		W: q.W*o.W - q.V.Dot(o.V),
	}
}

// Len returns the norm of the quaternion.
func (q Quat) Len() float32 {
	return math32.Sqrt(q.W*q.W + q.V.Dot(q.V))
}

// Normalize returns the unit quaternion with the same orientation.
// A zero quaternion normalizes to the identity.
func (q Quat) Normalize() Quat {
	l := q.Len()
	if l == 0 {
		return QuatIdentity()
	}
	if math32.Abs(1-l) < floatEpsilon {
		return q
	}
	return Quat{V: q.V.Mul(1 / l), W: q.W / l}
}

// Conjugate returns the inverse rotation of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{V: q.V.Mul(-1), W: q.W}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	cross := q.V.Cross(v)
	// v + 2w(q x v) + 2q x (q x v)
	return v.Add(cross.Mul(2 * q.W)).Add(q.V.Mul(2).Cross(cross))
}

// ApproxEqualRotation reports whether q and o describe the same rotation within eps.
// q and -q are the same rotation, so both signs are accepted.
func (q Quat) ApproxEqualRotation(o Quat, eps float32) bool {
	d := math32.Abs(q.W*o.W + q.V.Dot(o.V))
	return 1-d <= eps
}
