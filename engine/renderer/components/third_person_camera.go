package components

import (
	"github.com/spaghettifunk/anima-core/engine/math"
	"github.com/spaghettifunk/anima-core/engine/physics"
)

/**
 * @brief Trails a target from behind. The eye sits Distance units back
 * along the target's forward axis and looks the same way the target does.
 */
type ThirdPersonCamera struct {
	Position   *physics.Position
	Projection Projection
	Distance   float32
	/** @brief Scale of the background sphere centred on the eye. */
	SkyRadius float32
}

func NewThirdPersonCamera(projection Projection, distance, sky_radius float32) *ThirdPersonCamera {
	return &ThirdPersonCamera{
		Position:   physics.NewPosition(),
		Projection: projection,
		Distance:   distance,
		SkyRadius:  sky_radius,
	}
}

/**
 * @brief Moves the camera behind the target transform. Only the target's
 * orientation and location are used, its scale is dropped.
 */
func (c *ThirdPersonCamera) Follow(target math.Mat4) {
	right, ok_r := target.DirectionX().NormalizeSafe()
	up, ok_u := target.DirectionY().NormalizeSafe()
	forward, ok_f := target.DirectionZ().NormalizeSafe()
	if !ok_r || !ok_u || !ok_f {
		right, up, forward = math.Vec3Right, math.Vec3Up, math.Vec3Forward
	}

	eye := target.Translation().Sub(forward.MulScalar(c.Distance))

	transform := math.NewMat4Identity()
	transform.Data[0], transform.Data[1], transform.Data[2] = right.X, right.Y, right.Z
	transform.Data[4], transform.Data[5], transform.Data[6] = up.X, up.Y, up.Z
	transform.Data[8], transform.Data[9], transform.Data[10] = forward.X, forward.Y, forward.Z
	transform.SetTranslation(eye)
	c.Position.Transform = transform
}

func (c *ThirdPersonCamera) GetView() math.Mat4 {
	return viewFrom(c.Position.Transform)
}

func (c *ThirdPersonCamera) GetProj(aspect_ratio float32) math.Mat4 {
	return c.Projection.Matrix(aspect_ratio)
}

func (c *ThirdPersonCamera) Eye() math.Vec3 {
	return c.Position.Location()
}

/**
 * @brief Transform for the background sphere: a uniform scale centred on the
 * eye, so the sphere follows the camera and is never reached.
 */
func (c *ThirdPersonCamera) Skysphere() math.Mat4 {
	return math.NewMat4Scaling(c.SkyRadius).Mul(math.NewMat4Translation(c.Eye()))
}
