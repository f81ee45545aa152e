package components

import (
	"github.com/spaghettifunk/anima-core/engine/core"
	"github.com/spaghettifunk/anima-core/engine/math"
	"github.com/spaghettifunk/anima-core/engine/physics"
)

// 89 degrees, keeps the view away from the poles.
const pitchLimit float32 = 1.55334306

/**
 * @brief Perspective settings shared by the cameras. FOV is the vertical
 * field of view in radians.
 */
type Projection struct {
	FOV  float32
	Near float32
	Far  float32
}

func DefaultProjection() Projection {
	return Projection{FOV: math.DegToRad(45.0), Near: 0.1, Far: 1000.0}
}

func (p Projection) Matrix(aspect_ratio float32) math.Mat4 {
	return math.NewMat4Perspective(p.FOV, aspect_ratio, p.Near, p.Far)
}

// viewFrom inverts a camera transform into a view matrix.
func viewFrom(transform math.Mat4) math.Mat4 {
	view, ok := transform.Inverse()
	if !ok {
		core.LogWarn("camera transform is not invertible, using identity view")
		return math.NewMat4Identity()
	}
	return view
}

/**
 * @brief A free flying camera driven by keys and mouse. Keys set a throttle
 * per local axis that Update turns into velocity, the mouse pans and tilts.
 */
type FirstPersonCamera struct {
	Position   *physics.Position
	Projection Projection
	/** @brief World units per second at full throttle. */
	MoveSpeed float32
	/** @brief Radians per pixel of mouse travel. */
	MouseSensitivity float32
	/** @brief Mouse moves only turn the camera while this is set. */
	Looking bool

	forward float32
	strafe  float32
	lift    float32
	pitch   float32

	lastMouse math.Vec2
	hasMouse  bool
	keys      map[core.KeyCode]bool
}

func NewFirstPersonCamera(position *physics.Position, projection Projection) *FirstPersonCamera {
	if position == nil {
		position = physics.NewPosition()
	}
	return &FirstPersonCamera{
		Position:         position,
		Projection:       projection,
		MoveSpeed:        5.0,
		MouseSensitivity: 0.005,
		Looking:          true,
		keys:             make(map[core.KeyCode]bool),
	}
}

func (c *FirstPersonCamera) GetView() math.Mat4 {
	return viewFrom(c.Position.Transform)
}

func (c *FirstPersonCamera) GetProj(aspect_ratio float32) math.Mat4 {
	return c.Projection.Matrix(aspect_ratio)
}

func (c *FirstPersonCamera) Eye() math.Vec3 {
	return c.Position.Location()
}

/**
 * @brief Applies the current throttle and advances the camera. Called once
 * per frame before the view is read.
 */
func (c *FirstPersonCamera) Update(delta_t float32) {
	c.Position.SetForwardVelocity(c.forward * c.MoveSpeed)
	c.Position.SetRightVelocity(c.strafe * c.MoveSpeed)
	c.Position.SetUpVelocity(c.lift * c.MoveSpeed)
	c.Position.Update(delta_t)
}

func (c *FirstPersonCamera) OnKeyDown(key core.KeyCode) {
	c.keys[key] = true
	c.refreshThrottle()
}

func (c *FirstPersonCamera) OnKeyUp(key core.KeyCode) {
	delete(c.keys, key)
	c.refreshThrottle()
}

func axis(positive, negative bool) float32 {
	switch {
	case positive && !negative:
		return 1
	case negative && !positive:
		return -1
	}
	return 0
}

func (c *FirstPersonCamera) refreshThrottle() {
	c.forward = axis(c.keys[core.KEY_W] || c.keys[core.KEY_UP], c.keys[core.KEY_S] || c.keys[core.KEY_DOWN])
	c.strafe = axis(c.keys[core.KEY_D] || c.keys[core.KEY_RIGHT], c.keys[core.KEY_A] || c.keys[core.KEY_LEFT])
	c.lift = axis(c.keys[core.KEY_E] || c.keys[core.KEY_SPACE], c.keys[core.KEY_Q] || c.keys[core.KEY_LSHIFT])
}

/**
 * @brief Turns the camera by the distance the cursor travelled since the
 * last call. x and y are absolute screen coordinates, y grows downwards.
 */
func (c *FirstPersonCamera) OnMouseMove(x, y float32) {
	current := math.NewVec2(x, y)
	if !c.hasMouse {
		c.lastMouse, c.hasMouse = current, true
		return
	}
	delta := current.Sub(c.lastMouse)
	c.lastMouse = current
	if !c.Looking {
		return
	}

	c.Position.Pan(delta.X * c.MouseSensitivity)

	// Clamp to avoid flipping over the top.
	target := math.Clamp(c.pitch+delta.Y*c.MouseSensitivity, -pitchLimit, pitchLimit)
	c.Position.Tilt(target - c.pitch)
	c.pitch = target
}

// OnMouseButtonDown toggles mouse look with the right button.
func (c *FirstPersonCamera) OnMouseButtonDown(button core.Button) {
	if button == core.BUTTON_RIGHT {
		c.Looking = !c.Looking
		c.hasMouse = false
	}
}
