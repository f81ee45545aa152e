package physics

import (
	"fmt"

	"github.com/spaghettifunk/anima-core/engine/math"
)

/**
 * @brief The kinematic state of an object: a transform plus the rates that
 * move it. A Position is owned by exactly one camera or entity and is
 * advanced once per frame with Update.
 */
type Position struct {
	/** @brief Rotation rows and translation of the object. */
	Transform math.Mat4
	/** @brief Linear velocity in world units per second. */
	Velocity math.Vec3
	/** @brief Axis-angle velocity in radians per second, world frame. */
	AngularVelocity math.Vec3
	/** @brief Linear acceleration in world units per second squared. */
	Acceleration math.Vec3
	/** @brief Axis-angle acceleration in radians per second squared. */
	AngularAcceleration math.Vec3
}

func NewPosition() *Position {
	return NewPositionFromTransform(math.NewMat4Identity())
}

func NewPositionFromTransform(transform math.Mat4) *Position {
	return &Position{
		Transform:           transform,
		Velocity:            math.NewVec3Zero(),
		AngularVelocity:     math.NewVec3Zero(),
		Acceleration:        math.NewVec3Zero(),
		AngularAcceleration: math.NewVec3Zero(),
	}
}

func NewPositionAt(location math.Vec3) *Position {
	return NewPositionFromTransform(math.NewMat4Translation(location))
}

/**
 * @brief Advances the state by delta_t seconds. Translation and rotation
 * move under constant acceleration over the step, then the rates pick up
 * the acceleration.
 *
 * @param delta_t Seconds since the last update.
 */
func (p *Position) Update(delta_t float32) {
	half_dt2 := delta_t * delta_t * 0.5

	delta_translation := p.Velocity.MulScalar(delta_t).Add(p.Acceleration.MulScalar(half_dt2))
	delta_rotation := p.AngularVelocity.MulScalar(delta_t).Add(p.AngularAcceleration.MulScalar(half_dt2))

	p.Velocity = p.Velocity.Add(p.Acceleration.MulScalar(delta_t))
	p.AngularVelocity = p.AngularVelocity.Add(p.AngularAcceleration.MulScalar(delta_t))

	p.Transform.RotateInPlace(math.NewMat4RotationVec(delta_rotation))
	p.Transform.Translate(delta_translation)
}

// Right is the normalized local X row.
func (p *Position) Right() math.Vec3 {
	return p.Transform.DirectionX().Normalize()
}

// Up is the normalized local Y row.
func (p *Position) Up() math.Vec3 {
	return p.Transform.DirectionY().Normalize()
}

// Forward is the normalized local Z row.
func (p *Position) Forward() math.Vec3 {
	return p.Transform.DirectionZ().Normalize()
}

func (p *Position) Location() math.Vec3 {
	return p.Transform.Translation()
}

func (p *Position) SetLocation(location math.Vec3) {
	p.Transform.SetTranslation(location)
}

func (p *Position) Translate(offset math.Vec3) {
	p.Transform.Translate(offset)
}

/**
 * @brief Turns the object in place by an axis-angle vector given in world space.
 */
func (p *Position) Rotate(axis_angle math.Vec3) {
	p.Transform.RotateInPlace(math.NewMat4RotationVec(axis_angle))
}

func (p *Position) MoveForward(amount float32) {
	p.Translate(p.Forward().MulScalar(amount))
}

func (p *Position) MoveBackward(amount float32) {
	p.Translate(p.Forward().MulScalar(-amount))
}

func (p *Position) MoveRight(amount float32) {
	p.Translate(p.Right().MulScalar(amount))
}

func (p *Position) MoveLeft(amount float32) {
	p.Translate(p.Right().MulScalar(-amount))
}

func (p *Position) MoveUp(amount float32) {
	p.Translate(p.Up().MulScalar(amount))
}

func (p *Position) MoveDown(amount float32) {
	p.Translate(p.Up().MulScalar(-amount))
}

/**
 * @brief Turns around the world up axis.
 */
func (p *Position) Pan(angle float32) {
	p.Rotate(math.Vec3Up.MulScalar(angle))
}

/**
 * @brief Turns around the object's own right axis.
 */
func (p *Position) Tilt(angle float32) {
	p.Rotate(p.Right().MulScalar(angle))
}

/**
 * @brief Turns around the object's own forward axis.
 */
func (p *Position) Roll(angle float32) {
	p.Rotate(p.Forward().MulScalar(angle))
}

// replaceAlong swaps the component of v along the unit axis for amount.
func replaceAlong(v, axis math.Vec3, amount float32) math.Vec3 {
	return v.Sub(axis.MulScalar(v.Dot(axis))).Add(axis.MulScalar(amount))
}

/**
 * @brief Sets the speed along the local forward axis. Motion along the other
 * axes is left alone.
 */
func (p *Position) SetForwardVelocity(amount float32) {
	p.Velocity = replaceAlong(p.Velocity, p.Forward(), amount)
}

func (p *Position) SetRightVelocity(amount float32) {
	p.Velocity = replaceAlong(p.Velocity, p.Right(), amount)
}

func (p *Position) SetUpVelocity(amount float32) {
	p.Velocity = replaceAlong(p.Velocity, p.Up(), amount)
}

func (p *Position) SetVelocity(velocity math.Vec3) {
	p.Velocity = velocity
}

func (p *Position) SetAngularVelocity(angular_velocity math.Vec3) {
	p.AngularVelocity = angular_velocity
}

func (p *Position) SetAcceleration(acceleration math.Vec3) {
	p.Acceleration = acceleration
}

func (p *Position) SetAngularAcceleration(angular_acceleration math.Vec3) {
	p.AngularAcceleration = angular_acceleration
}

/**
 * @brief Zeroes every rate. The transform stays where it is.
 */
func (p *Position) Stop() {
	p.Velocity = math.NewVec3Zero()
	p.AngularVelocity = math.NewVec3Zero()
	p.Acceleration = math.NewVec3Zero()
	p.AngularAcceleration = math.NewVec3Zero()
}

// Snapshot returns a copy that can be read while the original keeps moving.
func (p *Position) Snapshot() Position {
	return *p
}

func (p *Position) String() string {
	return fmt.Sprintf("location=%s forward=%s velocity=%s angular=%s",
		p.Location(), p.Forward(), p.Velocity, p.AngularVelocity)
}
