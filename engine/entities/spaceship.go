package entities

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/anima-core/engine/collision"
	"github.com/spaghettifunk/anima-core/engine/config"
	"github.com/spaghettifunk/anima-core/engine/core"
	"github.com/spaghettifunk/anima-core/engine/math"
	"github.com/spaghettifunk/anima-core/engine/physics"
)

/**
 * @brief A ship steered by mouse and throttle keys. Mouse moves set the
 * target heading, Update eases the actual heading and location towards
 * their targets so turns and stops look smooth.
 */
type Spaceship struct {
	ID       uuid.UUID
	Position *physics.Position
	/** @brief Collision radius around the ship's location. */
	Radius float32
	/** @brief Target units per second at full throttle. */
	Speed float32
	/** @brief Share of the remaining turn covered per second. */
	RotationRate float32
	/** @brief Share of the remaining travel covered per second. */
	PositionRate float32
	/** @brief Pitch limit in radians, both ways. */
	MaxPitch float32
	/** @brief Radians per pixel of mouse travel. */
	MouseSensitivity float32

	yaw, pitch               float32
	smooth_yaw, smooth_pitch float32
	target                   math.Vec3
	throttle                 float32

	lastMouse math.Vec2
	hasMouse  bool
	keys      map[core.KeyCode]bool
}

func NewSpaceship(location math.Vec3, cfg config.SpaceshipConfig) *Spaceship {
	s := &Spaceship{
		ID:               uuid.New(),
		Position:         physics.NewPositionAt(location),
		MouseSensitivity: 0.005,
		target:           location,
		keys:             make(map[core.KeyCode]bool),
	}
	s.ApplyConfig(cfg)
	return s
}

// ApplyConfig takes new tunables without touching the current heading.
func (s *Spaceship) ApplyConfig(cfg config.SpaceshipConfig) {
	s.Radius = cfg.Radius
	s.Speed = cfg.Speed
	s.RotationRate = cfg.RotationRate
	s.PositionRate = cfg.PositionRate
	s.MaxPitch = cfg.MaxPitch
	s.pitch = math.Clamp(s.pitch, -s.MaxPitch, s.MaxPitch)
}

func (s *Spaceship) Transform() math.Mat4 {
	return s.Position.Transform
}

func (s *Spaceship) Location() math.Vec3 {
	return s.Position.Location()
}

// Heading returns the target yaw and pitch.
func (s *Spaceship) Heading() (yaw, pitch float32) {
	return s.yaw, s.pitch
}

func (s *Spaceship) Throttle() float32 {
	return s.throttle
}

// Support makes the ship a collider: a sphere of Radius at its location.
func (s *Spaceship) Support(direction math.Vec3) math.Vec3 {
	sphere := collision.Sphere{Center: s.Location(), Radius: s.Radius}
	return sphere.Support(direction)
}

// step returns how far to move towards a target in delta_t at rate.
func step(rate, delta_t float32) float32 {
	return math.Clamp(rate*delta_t, 0, 1)
}

func (s *Spaceship) Update(delta_t float32) {
	turn := step(s.RotationRate, delta_t)
	s.smooth_yaw = math.Lerp(s.smooth_yaw, s.yaw, turn)
	s.smooth_pitch = math.Lerp(s.smooth_pitch, s.pitch, turn)

	// Pitch about the ship's own right axis, then yaw about world up.
	orientation := math.NewMat4RotationX(s.smooth_pitch).Mul(math.NewMat4RotationY(s.smooth_yaw))
	forward := orientation.DirectionZ()

	s.target = s.target.Add(forward.MulScalar(s.throttle * s.Speed * delta_t))
	location := math.LerpVec3(s.Location(), s.target, step(s.PositionRate, delta_t))

	s.Position.Velocity = forward.MulScalar(s.throttle * s.Speed)
	s.Position.Transform = orientation
	s.Position.SetLocation(location)
}

func (s *Spaceship) OnKeyDown(key core.KeyCode) {
	s.keys[key] = true
	s.refreshThrottle()
}

func (s *Spaceship) OnKeyUp(key core.KeyCode) {
	delete(s.keys, key)
	s.refreshThrottle()
}

func (s *Spaceship) refreshThrottle() {
	forward := s.keys[core.KEY_W] || s.keys[core.KEY_UP]
	backward := s.keys[core.KEY_S] || s.keys[core.KEY_DOWN]
	switch {
	case forward && !backward:
		s.throttle = 1
	case backward && !forward:
		s.throttle = -1
	default:
		s.throttle = 0
	}
}

/**
 * @brief Accumulates yaw and pitch from the cursor travel since the last
 * call. The first sample only anchors the cursor.
 */
func (s *Spaceship) OnMouseMove(x, y float32) {
	current := math.NewVec2(x, y)
	if !s.hasMouse {
		s.lastMouse, s.hasMouse = current, true
		return
	}
	delta := current.Sub(s.lastMouse)
	s.lastMouse = current

	s.yaw += delta.X * s.MouseSensitivity
	s.pitch = math.Clamp(s.pitch+delta.Y*s.MouseSensitivity, -s.MaxPitch, s.MaxPitch)
}

func (s *Spaceship) String() string {
	return fmt.Sprintf("ship %s at %s yaw=%.3f pitch=%.3f throttle=%.0f", s.ID, s.Location(), s.yaw, s.pitch, s.throttle)
}
