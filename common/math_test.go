package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func TestComposeDecomposeRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		pos   Vec3
		rot   Quat
		scale Vec3
	}{
		{"identity", Vec3{}, QuatIdentity(), Vec3{1, 1, 1}},
		{"translated", Vec3{1, -2, 3}, QuatIdentity(), Vec3{1, 1, 1}},
		{"rotated y", Vec3{0, 0, 0}, QuatFromAxisAngle(Vec3{0, 1, 0}, math32.Pi/3), Vec3{1, 1, 1}},
		{"non uniform", Vec3{4, 5, 6}, QuatFromAxisAngle(Vec3{1, 1, 0}, 0.7), Vec3{2, 0.5, 3}},
		{"near half turn", Vec3{-1, 0, 2}, QuatFromAxisAngle(Vec3{0, 0, 1}, math32.Pi-0.01), Vec3{0.1, 7, 1}},
		{"mirrored x", Vec3{0, 1, 0}, QuatFromAxisAngle(Vec3{0, 1, 0}, 1.2), Vec3{-2, 1, 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Compose(tc.pos, tc.rot, tc.scale)
			pos, rot, scale := m.Decompose()

			assert.True(t, pos.ApproxEqual(tc.pos, eps), "position %v != %v", pos, tc.pos)
			assert.True(t, scale.ApproxEqual(tc.scale, eps), "scale %v != %v", scale, tc.scale)
			assert.True(t, rot.ApproxEqualRotation(tc.rot, eps), "rotation %v != %v", rot, tc.rot)
			assert.True(t, Compose(pos, rot, scale).ApproxEqual(m, eps))
		})
	}
}

func TestMatMulAppliesRightOperandFirst(t *testing.T) {
	translate := Compose(Vec3{10, 0, 0}, QuatIdentity(), Vec3{1, 1, 1})
	scale := Compose(Vec3{}, QuatIdentity(), Vec3{2, 2, 2})

	p := translate.Mul(scale).TransformPoint(Vec3{1, 0, 0})
	assert.True(t, p.ApproxEqual(Vec3{12, 0, 0}, eps), "got %v", p)

	p = scale.Mul(translate).TransformPoint(Vec3{1, 0, 0})
	assert.True(t, p.ApproxEqual(Vec3{22, 0, 0}, eps), "got %v", p)
}

func TestInvert(t *testing.T) {
	m := Compose(Vec3{3, 2, 1}, QuatFromAxisAngle(Vec3{0, 1, 1}, 0.4), Vec3{2, 3, 4})
	inv, ok := m.Invert()
	require.True(t, ok)
	assert.True(t, m.Mul(inv).ApproxEqual(Mat4Identity(), eps))

	_, ok = Mat4{}.Invert()
	assert.False(t, ok)
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 0, 1}, math32.Pi/2)
	v := q.Rotate(Vec3{1, 0, 0})
	assert.True(t, v.ApproxEqual(Vec3{0, 1, 0}, eps), "got %v", v)

	assert.Equal(t, QuatIdentity(), QuatFromAxisAngle(Vec3{}, 1))
}

func TestNormalizeZeroVector(t *testing.T) {
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.InDelta(t, 1, Vec3{3, 4, 0}.Normalize().Len(), eps)
}

func TestLookAtViewMovesEyeToOrigin(t *testing.T) {
	view := LookAtView(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})
	assert.True(t, view.TransformPoint(Vec3{0, 0, 5}).ApproxEqual(Vec3{}, eps))
	// the target ends up straight ahead, on -Z
	assert.True(t, view.TransformPoint(Vec3{}).ApproxEqual(Vec3{0, 0, -5}, eps))
}

func TestBox3(t *testing.T) {
	b := EmptyBox3()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, Vec3{}, b.Center())

	b.ExpandByPoint(Vec3{-1, 0, 2})
	b.ExpandByPoint(Vec3{3, 4, -2})
	assert.False(t, b.IsEmpty())
	assert.Equal(t, Vec3{1, 2, 0}, b.Center())
	assert.Equal(t, Vec3{4, 4, 4}, b.Size())
	assert.True(t, b.ContainsPoint(Vec3{0, 1, 0}))

	moved := b.ApplyMatrix(Compose(Vec3{10, 0, 0}, QuatIdentity(), Vec3{1, 1, 1}))
	assert.True(t, moved.Center().ApproxEqual(Vec3{11, 2, 0}, eps))
}

func TestSphereApplyMatrix(t *testing.T) {
	s := Sphere{Center: Vec3{1, 0, 0}, Radius: 2}
	out := s.ApplyMatrix(Compose(Vec3{0, 1, 0}, QuatIdentity(), Vec3{1, 3, 2}))
	assert.True(t, out.Center.ApproxEqual(Vec3{1, 1, 0}, eps))
	assert.InDelta(t, 6, out.Radius, eps)
}

func TestFrustumIntersectsSphere(t *testing.T) {
	proj := Perspective(math32.Pi/2, 1, 0.1, 100)
	view := LookAtView(Vec3{0, 0, 0}, Vec3{0, 0, -1}, Vec3{0, 1, 0})
	f := ExtractFrustumFromMatrix(proj.Mul(view))

	assert.True(t, f.IntersectsSphere(Sphere{Center: Vec3{0, 0, -10}, Radius: 1}))
	assert.False(t, f.IntersectsSphere(Sphere{Center: Vec3{0, 0, 10}, Radius: 1}), "behind the camera")
	assert.False(t, f.IntersectsSphere(Sphere{Center: Vec3{0, 0, -200}, Radius: 1}), "past the far plane")
	assert.True(t, f.IntersectsSphere(Sphere{Center: Vec3{0, 0, -200}, Radius: 150}), "straddles the far plane")
	assert.False(t, f.IntersectsSphere(Sphere{Center: Vec3{50, 0, -10}, Radius: 1}), "off to the right")

	assert.True(t, f.ContainsPoint(Vec3{0, 0, -1}))
	assert.False(t, f.ContainsPoint(Vec3{0, 0, -0.01}))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 3, 4))
	assert.Equal(t, "", Coalesce[string]())
}
