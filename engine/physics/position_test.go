package physics

import (
	"testing"

	"github.com/spaghettifunk/anima-core/engine/math"
	"github.com/stretchr/testify/assert"
)

const tolerance float32 = 1e-4

func TestPosition_ZeroInputIsStable(t *testing.T) {
	start := math.NewMat4RotationVec(math.Vec3{0.1, 0.7, -0.3})
	start.SetTranslation(math.Vec3{5, -2, 11})

	for _, dt := range []float32{0, 1.0 / 60, 0.5, 3, -1, 1e6} {
		p := NewPositionFromTransform(start)
		for i := 0; i < 100; i++ {
			p.Update(dt)
		}
		assert.Equal(t, start, p.Transform, "dt=%v", dt)
	}
}

func TestPosition_UpdateIntegrates(t *testing.T) {
	p := NewPosition()
	p.SetVelocity(math.Vec3{1, 0, 0})
	p.SetAcceleration(math.Vec3{0, 2, 0})

	p.Update(0.5)

	// v*dt + a*dt^2/2
	assert.True(t, p.Location().Compare(math.Vec3{0.5, 0.25, 0}, tolerance), p.Location().String())
	assert.True(t, p.Velocity.Compare(math.Vec3{1, 1, 0}, tolerance))
	assert.Equal(t, math.NewMat4Identity().DirectionX(), p.Transform.DirectionX())
}

func TestPosition_UpdateRotatesInPlace(t *testing.T) {
	p := NewPositionAt(math.Vec3{3, 4, 5})
	p.SetAngularVelocity(math.Vec3Up.MulScalar(math.K_HALF_PI))

	p.Update(1)

	assert.Equal(t, math.Vec3{3, 4, 5}, p.Location())
	assert.True(t, p.Right().Compare(math.Vec3Forward.Neg(), tolerance), p.Right().String())
	assert.True(t, p.Forward().Compare(math.Vec3Right, tolerance), p.Forward().String())
}

func TestPosition_AngularAcceleration(t *testing.T) {
	p := NewPosition()
	p.SetAngularAcceleration(math.Vec3{0, 0, 2})

	p.Update(1)

	assert.True(t, p.AngularVelocity.Compare(math.Vec3{0, 0, 2}, tolerance))
	// Turned by a*dt^2/2 = 1 radian about forward.
	want := math.NewMat4RotationZ(1)
	assert.True(t, want.Compare(p.Transform, tolerance))
}

func TestPosition_PanAndTilt(t *testing.T) {
	t.Run("pan turns about world up", func(t *testing.T) {
		p := NewPositionAt(math.Vec3{1, 2, 3})
		p.Tilt(0.4)
		p.Pan(1.2)

		assert.Equal(t, math.Vec3{1, 2, 3}, p.Location())
		// World up stays put under a pan, so the forward vector keeps its height.
		assert.InDelta(t, math.NewMat4RotationX(0.4).DirectionZ().Y, p.Forward().Y, 1e-5)
	})

	t.Run("tilt turns about local right", func(t *testing.T) {
		p := NewPositionAt(math.Vec3{-7, 0, 2})
		p.Pan(0.9)
		right := p.Right()
		p.Tilt(-0.6)

		assert.Equal(t, math.Vec3{-7, 0, 2}, p.Location())
		assert.True(t, right.Compare(p.Right(), tolerance))
		assert.InDelta(t, 0, p.Forward().Dot(right), 1e-5)
		assert.NotEqual(t, float32(0), p.Forward().Y)
	})

	t.Run("pan and its inverse cancel", func(t *testing.T) {
		p := NewPositionAt(math.Vec3{1, 1, 1})
		before := p.Transform
		p.Pan(2.1)
		p.Pan(-2.1)
		assert.True(t, before.Compare(p.Transform, tolerance))
	})
}

func TestPosition_MoveAlongBasis(t *testing.T) {
	p := NewPosition()
	p.Pan(math.K_HALF_PI)

	p.MoveForward(2)
	assert.True(t, p.Location().Compare(math.Vec3{2, 0, 0}, tolerance), p.Location().String())

	p.MoveUp(1)
	p.MoveLeft(3)
	assert.True(t, p.Location().Compare(math.Vec3{2, 1, 3}, tolerance), p.Location().String())

	p.MoveBackward(2)
	p.MoveDown(1)
	p.MoveRight(3)
	assert.True(t, p.Location().Compare(math.NewVec3Zero(), tolerance), p.Location().String())
}

func TestPosition_VelocitySetters(t *testing.T) {
	p := NewPosition()
	p.SetVelocity(math.Vec3{1, 2, 3})

	p.SetForwardVelocity(10)
	assert.Equal(t, math.Vec3{1, 2, 10}, p.Velocity)

	p.SetRightVelocity(-1)
	assert.Equal(t, math.Vec3{-1, 2, 10}, p.Velocity)

	p.SetUpVelocity(0)
	assert.Equal(t, math.Vec3{-1, 0, 10}, p.Velocity)

	t.Run("follows the local axis", func(t *testing.T) {
		q := NewPosition()
		q.Pan(math.K_HALF_PI)
		q.SetForwardVelocity(4)
		assert.True(t, q.Velocity.Compare(math.Vec3{4, 0, 0}, tolerance), q.Velocity.String())

		q.Update(0.5)
		assert.True(t, q.Location().Compare(math.Vec3{2, 0, 0}, tolerance))
	})

	p.Stop()
	assert.Equal(t, math.NewVec3Zero(), p.Velocity)
	assert.Equal(t, math.NewVec3Zero(), p.AngularAcceleration)
}

func TestPosition_NaNPoisons(t *testing.T) {
	p := NewPosition()
	p.SetVelocity(math.Vec3{0, 0, 0}.Normalize())
	p.Update(0.1)
	assert.True(t, p.Location().IsNaN())
}

func TestPosition_Snapshot(t *testing.T) {
	p := NewPositionAt(math.Vec3{1, 0, 0})
	snap := p.Snapshot()
	p.MoveUp(5)

	assert.Equal(t, math.Vec3{1, 0, 0}, snap.Location())
	assert.Contains(t, p.String(), "location=[1.000, 5.000, 0.000]")
}
