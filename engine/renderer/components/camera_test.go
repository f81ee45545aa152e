package components

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/spaghettifunk/anima-core/engine/core"
	"github.com/spaghettifunk/anima-core/engine/math"
	"github.com/spaghettifunk/anima-core/engine/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance float32 = 1e-4

func TestFirstPersonCamera_View(t *testing.T) {
	cam := NewFirstPersonCamera(physics.NewPositionAt(math.Vec3{1, 2, 3}), DefaultProjection())

	view := cam.GetView()
	assert.True(t, view.TransformPoint(cam.Eye()).Compare(math.Vec3Origin, tolerance))
	assert.True(t, view.TransformPoint(math.Vec3{1, 2, 8}).Compare(math.Vec3{0, 0, 5}, tolerance))

	proj := cam.GetProj(16.0 / 9.0)
	assert.Equal(t, math.NewMat4Perspective(math.DegToRad(45), 16.0/9.0, 0.1, 1000), proj)

	t.Run("singular transform falls back to identity", func(t *testing.T) {
		broken := NewFirstPersonCamera(physics.NewPositionFromTransform(math.NewMat4Zero()), DefaultProjection())
		assert.Equal(t, math.NewMat4Identity(), broken.GetView())
	})
}

func TestFirstPersonCamera_Keys(t *testing.T) {
	cam := NewFirstPersonCamera(nil, DefaultProjection())
	cam.MoveSpeed = 4

	cam.OnKeyDown(core.KEY_W)
	cam.Update(0.5)
	assert.True(t, cam.Eye().Compare(math.Vec3{0, 0, 2}, tolerance), cam.Eye().String())

	cam.OnKeyDown(core.KEY_S)
	cam.Update(0.5)
	assert.True(t, cam.Eye().Compare(math.Vec3{0, 0, 2}, tolerance), "opposite keys cancel")

	cam.OnKeyUp(core.KEY_W)
	cam.OnKeyUp(core.KEY_S)
	cam.OnKeyDown(core.KEY_D)
	cam.OnKeyDown(core.KEY_SPACE)
	cam.Update(0.25)
	assert.True(t, cam.Eye().Compare(math.Vec3{1, 1, 2}, tolerance), cam.Eye().String())

	cam.OnKeyUp(core.KEY_D)
	cam.OnKeyUp(core.KEY_SPACE)
	cam.Update(10)
	assert.True(t, cam.Eye().Compare(math.Vec3{1, 1, 2}, tolerance), "released keys stop the camera")
}

func TestFirstPersonCamera_Mouse(t *testing.T) {
	cam := NewFirstPersonCamera(nil, DefaultProjection())
	cam.MouseSensitivity = 0.005

	cam.OnMouseMove(400, 300)
	assert.Equal(t, math.Vec3Forward, cam.Position.Forward(), "first sample only anchors")

	cam.OnMouseMove(500, 300)
	want := math.Vec3{math32.Sin(0.5), 0, math32.Cos(0.5)}
	assert.True(t, cam.Position.Forward().Compare(want, tolerance), cam.Position.Forward().String())

	cam.OnMouseMove(500, 300+100000)
	assert.InDelta(t, -math32.Sin(pitchLimit), cam.Position.Forward().Y, 1e-3)
	assert.InDelta(t, 0, cam.Position.Right().Y, 1e-4, "pan and tilt never roll")

	cam.OnMouseMove(500, 300-100000)
	assert.InDelta(t, math32.Sin(pitchLimit), cam.Position.Forward().Y, 1e-3)

	t.Run("right button toggles look", func(t *testing.T) {
		before := cam.Position.Transform
		cam.OnMouseButtonDown(core.BUTTON_RIGHT)
		require.False(t, cam.Looking)
		cam.OnMouseMove(0, 0)
		cam.OnMouseMove(250, 250)
		assert.Equal(t, before, cam.Position.Transform)

		cam.OnMouseButtonDown(core.BUTTON_LEFT)
		assert.False(t, cam.Looking)
		cam.OnMouseButtonDown(core.BUTTON_RIGHT)
		assert.True(t, cam.Looking)
	})
}

func TestThirdPersonCamera_Follow(t *testing.T) {
	cam := NewThirdPersonCamera(DefaultProjection(), 10, 500)

	target := physics.NewPositionAt(math.Vec3{0, 0, 10})
	target.Pan(math.K_HALF_PI)
	cam.Follow(target.Transform)

	assert.True(t, cam.Eye().Compare(math.Vec3{-10, 0, 10}, tolerance), cam.Eye().String())
	assert.True(t, cam.Position.Forward().Compare(target.Forward(), tolerance))

	// The target sits straight ahead of the eye.
	inView := cam.GetView().TransformPoint(target.Location())
	assert.True(t, inView.Compare(math.Vec3{0, 0, 10}, tolerance), inView.String())

	t.Run("scale is dropped", func(t *testing.T) {
		scaled := math.NewMat4Scaling(3).Mul(math.NewMat4Translation(math.Vec3{5, 0, 0}))
		cam.Follow(scaled)
		assert.True(t, cam.Eye().Compare(math.Vec3{5, 0, -10}, tolerance), cam.Eye().String())
		assert.InDelta(t, 1.0, cam.Position.Transform.Determinant(), 1e-4)
	})

	t.Run("degenerate target keeps world axes", func(t *testing.T) {
		cam.Follow(math.NewMat4Zero())
		assert.True(t, cam.Eye().Compare(math.Vec3{0, 0, -10}, tolerance))
		assert.Equal(t, math.Vec3Forward, cam.Position.Forward())
	})
}

func TestThirdPersonCamera_Skysphere(t *testing.T) {
	cam := NewThirdPersonCamera(DefaultProjection(), 4, 500)
	cam.Follow(math.NewMat4Translation(math.Vec3{1, 2, 3}))

	sky := cam.Skysphere()
	eye := cam.Eye()
	assert.True(t, sky.TransformPoint(math.Vec3Origin).Compare(eye, tolerance))
	assert.True(t, sky.TransformPoint(math.Vec3Up).Compare(eye.Add(math.Vec3{0, 500, 0}), tolerance))
}

func TestNewEnvironment(t *testing.T) {
	cam := NewFirstPersonCamera(physics.NewPositionAt(math.Vec3{0, 5, 0}), DefaultProjection())
	light := DefaultLight()
	light.Direction = math.Vec3{0, -10, 0}

	env := NewEnvironment(cam, 2, light)
	assert.Equal(t, cam.GetView(), env.View)
	assert.Equal(t, cam.GetProj(2), env.Projection)
	assert.Equal(t, math.Vec3{0, 5, 0}, env.CameraPosition)
	assert.Equal(t, math.Vec3{0, -1, 0}, env.LightDirection)
	assert.Equal(t, light.Position, env.LightPosition)
	assert.Equal(t, light.Ambient, env.AmbientColour)

	light.Direction = math.NewVec3Zero()
	env = NewEnvironment(cam, 2, light)
	assert.Equal(t, math.Vec3{0, -1, 0}, env.LightDirection)
}
