package entities

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/spaghettifunk/anima-core/engine/collision"
	"github.com/spaghettifunk/anima-core/engine/config"
	"github.com/spaghettifunk/anima-core/engine/core"
	"github.com/spaghettifunk/anima-core/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShip() *Spaceship {
	return NewSpaceship(math.NewVec3Zero(), config.Default().Spaceship)
}

func TestSpaceship_MouseAccumulatesHeading(t *testing.T) {
	s := newShip()

	s.OnMouseMove(400, 300)
	yaw, pitch := s.Heading()
	assert.Zero(t, yaw)
	assert.Zero(t, pitch)

	s.OnMouseMove(500, 320)
	yaw, pitch = s.Heading()
	assert.InDelta(t, 0.5, yaw, 1e-5)
	assert.InDelta(t, 0.1, pitch, 1e-5)

	s.OnMouseMove(500, 5000)
	_, pitch = s.Heading()
	assert.Equal(t, s.MaxPitch, pitch)

	s.OnMouseMove(500, -5000)
	_, pitch = s.Heading()
	assert.Equal(t, -s.MaxPitch, pitch)
}

func TestSpaceship_RotationEasesTowardsHeading(t *testing.T) {
	s := newShip()
	s.OnMouseMove(0, 0)
	s.OnMouseMove(100, 0)

	// Half of the remaining turn per step.
	s.Update(0.1)
	assert.InDelta(t, math32.Sin(0.25), s.Position.Forward().X, 1e-4)

	for i := 0; i < 60; i++ {
		s.Update(0.1)
	}
	forward := s.Position.Forward()
	assert.True(t, forward.Compare(math.Vec3{X: math32.Sin(0.5), Y: 0, Z: math32.Cos(0.5)}, 1e-4), forward.String())
}

func TestSpaceship_ThrottleAdvancesAlongForward(t *testing.T) {
	s := newShip()

	s.OnKeyDown(core.KEY_W)
	assert.Equal(t, float32(1), s.Throttle())

	// Target moves 2 units, the ship covers half of the gap.
	s.Update(0.1)
	assert.True(t, s.Location().Compare(math.Vec3{0, 0, 1}, 1e-5), s.Location().String())
	assert.Equal(t, math.Vec3{0, 0, 20}, s.Position.Velocity)

	s.OnKeyUp(core.KEY_W)
	assert.Zero(t, s.Throttle())
	for i := 0; i < 40; i++ {
		s.Update(0.1)
	}
	assert.True(t, s.Location().Compare(math.Vec3{0, 0, 2}, 1e-4), s.Location().String())
	assert.Equal(t, math.NewVec3Zero(), s.Position.Velocity)

	s.OnKeyDown(core.KEY_W)
	s.OnKeyDown(core.KEY_S)
	assert.Zero(t, s.Throttle())
	s.OnKeyUp(core.KEY_W)
	assert.Equal(t, float32(-1), s.Throttle())
}

func TestSpaceship_Collider(t *testing.T) {
	s := NewSpaceship(math.Vec3{0, 0, 5}, config.Default().Spaceship)
	assert.Equal(t, math.Vec3{0, 0, 6}, s.Support(math.Vec3{0, 0, 3}))
	assert.Equal(t, math.Vec3{0, 0, 5}, s.Support(math.NewVec3Zero()))

	assert.True(t, collision.CollisionBetween(s, collision.NewSphere(math.Vec3{0, 0, 6.5}, 1)))
	assert.False(t, collision.CollisionBetween(s, collision.NewSphere(math.Vec3{0, 0, 8}, 1)))
}

func TestSpaceship_ApplyConfig(t *testing.T) {
	s := newShip()
	s.OnMouseMove(0, 0)
	s.OnMouseMove(0, 1000)

	cfg := config.Default().Spaceship
	cfg.MaxPitch = 0.5
	cfg.Speed = 3
	s.ApplyConfig(cfg)

	_, pitch := s.Heading()
	assert.Equal(t, float32(0.5), pitch)
	assert.Equal(t, float32(3), s.Speed)
	require.NotEmpty(t, s.ID.String())
	assert.Contains(t, s.String(), s.ID.String())
	assert.Equal(t, s.Position.Transform, s.Transform())
}
