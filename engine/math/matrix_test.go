package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance float32 = 1e-5

func assertMat4(t *testing.T, want, got Mat4, tol float32) {
	t.Helper()
	assert.Truef(t, want.Compare(got, tol), "want\n%s\ngot\n%s", want, got)
}

func sampleTransforms() map[string]Mat4 {
	rotated := NewMat4RotationVec(Vec3{0.3, -1.2, 0.7})
	rotated.SetTranslation(Vec3{4, -2, 9})

	return map[string]Mat4{
		"identity":          NewMat4Identity(),
		"translation":       NewMat4Translation(Vec3{1, 2, 3}),
		"uniform scaling":   NewMat4Scaling(2.5),
		"scaling3":          NewMat4Scaling3(Vec3{0.5, 2, 4}),
		"rotation x":        NewMat4RotationX(0.4),
		"rotation y":        NewMat4RotationY(-1.1),
		"rotation z":        NewMat4RotationZ(2.2),
		"rotation and move": rotated,
		"composed": NewMat4Scaling3(Vec3{1, 2, 3}).
			Mul(NewMat4RotationY(0.8)).
			Mul(NewMat4Translation(Vec3{-5, 0.5, 2})),
		"general": {Data: [16]float32{
			2, 1, 0, 3,
			0, 1, 4, 1,
			1, 0, 2, 0,
			3, 1, 1, 5,
		}},
	}
}

func TestMat4_InverseOfIdentity(t *testing.T) {
	inv, ok := NewMat4Identity().Inverse()
	require.True(t, ok)
	assert.Equal(t, NewMat4Identity(), inv)
}

func TestMat4_InverseRoundTrip(t *testing.T) {
	for name, m := range sampleTransforms() {
		t.Run(name, func(t *testing.T) {
			inv, ok := m.Inverse()
			require.True(t, ok)

			back, ok := inv.Inverse()
			require.True(t, ok)
			assertMat4(t, m, back, tolerance*10)

			assertMat4(t, NewMat4Identity(), m.Mul(inv), tolerance*10)
		})
	}
}

func TestMat4_InverseMatchesMathgl(t *testing.T) {
	// mathgl stores column-major, so our row-major array reads as the
	// transpose there. inverse(M^T) == inverse(M)^T keeps the arrays equal.
	for name, m := range sampleTransforms() {
		t.Run(name, func(t *testing.T) {
			inv, ok := m.Inverse()
			require.True(t, ok)

			want := mgl32.Mat4(m.Data).Inv()
			assertMat4(t, Mat4{Data: [16]float32(want)}, inv, tolerance*10)
			assert.InDelta(t, mgl32.Mat4(m.Data).Det(), m.Determinant(), 1e-3)
		})
	}
}

func TestMat4_InverseDegenerate(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{name: "zero", m: NewMat4Zero()},
		{name: "flattened axis", m: NewMat4Scaling3(Vec3{1, 0, 1})},
		{name: "nan", m: NewMat4Translation(Vec3{nan32(), 0, 0}).Mul(NewMat4Scaling(nan32()))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := tt.m.Inverse()
			assert.False(t, ok)
		})
	}
}

func TestMat4_Determinant(t *testing.T) {
	assert.InDelta(t, 1.0, NewMat4Identity().Determinant(), 1e-6)
	assert.InDelta(t, 8.0, NewMat4Scaling(2).Determinant(), 1e-5)
	assert.InDelta(t, 4.0, NewMat4Scaling3(Vec3{0.5, 2, 4}).Determinant(), 1e-5)
	assert.InDelta(t, 1.0, NewMat4RotationVec(Vec3{1, 2, 3}).Determinant(), 1e-5)
	assert.InDelta(t, 1.0, NewMat4Translation(Vec3{7, 8, 9}).Determinant(), 1e-6)
}

func TestMat4_RotationVec(t *testing.T) {
	t.Run("zero angle is identity", func(t *testing.T) {
		assert.Equal(t, NewMat4Identity(), NewMat4RotationVec(NewVec3Zero()))
	})

	t.Run("cardinal axes match euler constructors", func(t *testing.T) {
		assertMat4(t, NewMat4RotationX(0.7), NewMat4RotationVec(Vec3{0.7, 0, 0}), tolerance)
		assertMat4(t, NewMat4RotationY(-0.3), NewMat4RotationVec(Vec3{0, -0.3, 0}), tolerance)
		assertMat4(t, NewMat4RotationZ(1.9), NewMat4RotationVec(Vec3{0, 0, 1.9}), tolerance)
	})

	t.Run("matches mathgl rotation", func(t *testing.T) {
		axis := Vec3{1, -2, 0.5}.Normalize()
		angle := float32(1.234)
		want := mgl32.HomogRotate3D(angle, mgl32.Vec3{axis.X, axis.Y, axis.Z})
		got := NewMat4RotationVec(axis.MulScalar(angle))
		assertMat4(t, Mat4{Data: [16]float32(want)}, got, tolerance)
	})

	t.Run("quarter turn about up maps right to -forward", func(t *testing.T) {
		r := NewMat4RotationVec(Vec3Up.MulScalar(K_HALF_PI))
		assert.True(t, r.TransformDirection(Vec3Right).Compare(Vec3Forward.Neg(), tolerance))
	})
}

func TestMat4_RotationComposition(t *testing.T) {
	axes := []Vec3{Vec3Right, Vec3Up, Vec3Forward, Vec3{1, 1, 1}.Normalize(), Vec3{-0.2, 0.9, 0.4}.Normalize()}
	for _, axis := range axes {
		for _, angle := range []float32{0.1, 1.0, 2.5, -3.0} {
			start := NewMat4RotationVec(Vec3{0.2, 0.4, -0.1})
			start.SetTranslation(Vec3{3, -1, 2})

			m := start
			m.RotateInPlace(NewMat4RotationVec(axis.MulScalar(angle)))
			m.RotateInPlace(NewMat4RotationVec(axis.MulScalar(-angle)))

			assertMat4(t, start, m, tolerance*10)
		}
	}
}

func TestMat4_RotateInPlaceKeepsTranslation(t *testing.T) {
	m := NewMat4Translation(Vec3{10, 20, 30})
	m.RotateInPlace(NewMat4RotationY(1.0))

	assert.Equal(t, Vec3{10, 20, 30}, m.Translation())
	assert.True(t, m.DirectionX().Compare(NewMat4RotationY(1.0).DirectionX(), tolerance))

	// A plain multiply would drag the translation around the axis.
	moved := NewMat4Translation(Vec3{10, 20, 30}).Mul(NewMat4RotationY(1.0))
	assert.False(t, moved.Translation().Compare(Vec3{10, 20, 30}, tolerance))
}

func TestMat4_Directions(t *testing.T) {
	m := NewMat4Identity()
	assert.Equal(t, Vec3Right, m.DirectionX())
	assert.Equal(t, Vec3Up, m.DirectionY())
	assert.Equal(t, Vec3Forward, m.DirectionZ())
	assert.Equal(t, Vec3Origin, m.Translation())

	m.Translate(Vec3{1, 2, 3})
	m.Translate(Vec3{1, 0, 0})
	assert.Equal(t, Vec3{2, 2, 3}, m.Translation())
}

func TestMat4_TransformPoint(t *testing.T) {
	m := NewMat4Scaling(2).Mul(NewMat4Translation(Vec3{1, 0, 0}))
	assert.Equal(t, Vec3{3, 2, 2}, m.TransformPoint(Vec3{1, 1, 1}))
	assert.Equal(t, Vec3{2, 2, 2}, m.TransformDirection(Vec3{1, 1, 1}))
}

func TestMat4_Transpose(t *testing.T) {
	m := sampleTransforms()["general"]
	assert.Equal(t, m, m.Transpose().Transpose())
	assert.Equal(t, m.Row(0).X, m.Transpose().Row(0).X)
	assert.Equal(t, m.Data[1], m.Transpose().Data[4])
}

func TestMat4_Perspective(t *testing.T) {
	p := NewMat4Perspective(K_HALF_PI, 2.0, 0.1, 100)

	near := p.TransformVec4(Vec4{0, 0, 0.1, 1})
	far := p.TransformVec4(Vec4{0, 0, 100, 1})

	assert.InDelta(t, 0.0, near.Z/near.W, 1e-5)
	assert.InDelta(t, 1.0, far.Z/far.W, 1e-5)
	assert.InDelta(t, 0.5, p.Data[0], 1e-5)
	assert.InDelta(t, 1.0, p.Data[5], 1e-5)
}
