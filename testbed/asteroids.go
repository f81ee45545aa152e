package testbed

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/anima-core/engine"
	"github.com/spaghettifunk/anima-core/engine/collision"
	"github.com/spaghettifunk/anima-core/engine/config"
	"github.com/spaghettifunk/anima-core/engine/core"
	"github.com/spaghettifunk/anima-core/engine/entities"
	"github.com/spaghettifunk/anima-core/engine/math"
	"github.com/spaghettifunk/anima-core/engine/physics"
	"github.com/spaghettifunk/anima-core/engine/renderer/components"
	"github.com/spaghettifunk/anima-core/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-core/engine/systems"
	"golang.org/x/exp/rand"
)

var (
	shipColour     = math.NewVec4(0.2, 0.6, 1.0, 1.0)
	asteroidColour = math.NewVec4(0.5, 0.45, 0.4, 1.0)
	hitColour      = math.NewVec4(1.0, 0.2, 0.1, 1.0)
	skyColour      = math.NewVec4(0.02, 0.02, 0.08, 1.0)
)

// Asteroid is a spinning rock. It collides as a sphere.
type Asteroid struct {
	ID       uuid.UUID
	Position *physics.Position
	Radius   float32
	Hit      bool
}

func (a *Asteroid) Support(direction math.Vec3) math.Vec3 {
	sphere := collision.Sphere{Center: a.Position.Location(), Radius: a.Radius}
	return sphere.Support(direction)
}

// Transform scales the unit rock mesh to the asteroid's radius.
func (a *Asteroid) Transform() math.Mat4 {
	return math.NewMat4Scaling(a.Radius).Mul(a.Position.Transform)
}

type AsteroidField struct {
	*engine.Game
}

const (
	chaseCamera = "chase"
	freeCamera  = "free"
)

type gameState struct {
	ship      *entities.Spaceship
	chase     *components.ThirdPersonCamera
	free      *components.FirstPersonCamera
	freeLook  bool
	light     components.Light
	asteroids []*Asteroid
	pairs     []systems.Pair
	hits      int
	aspect    float32
}

func NewAsteroidField() *AsteroidField {
	af := &AsteroidField{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				StartPosX:   100,
				StartPosY:   100,
				StartWidth:  1280,
				StartHeight: 720,
				Name:        "Anima Asteroid Field",
			},
			State: &gameState{aspect: 1280.0 / 720.0},
		},
	}

	af.FnInitialize = af.Initialize
	af.FnUpdate = af.Update
	af.FnRender = af.Render
	af.FnOnResize = af.OnResize
	af.FnShutdown = af.Shutdown

	return af
}

func (g *AsteroidField) state() *gameState {
	return g.State.(*gameState)
}

func (g *AsteroidField) Initialize() error {
	core.LogDebug("AsteroidField Initialize fn....")

	if g.SystemManager == nil || g.Events == nil || g.Config == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}
	cfg := g.Config
	state := g.state()

	state.ship = entities.NewSpaceship(math.NewVec3Zero(), cfg.Spaceship)
	projection := projectionFrom(cfg.Camera)
	state.chase = components.NewThirdPersonCamera(projection, cfg.Camera.ThirdPersonDistance, cfg.Camera.SkyRadius)
	state.chase.Follow(state.ship.Transform())
	state.free = components.NewFirstPersonCamera(physics.NewPositionFromTransform(state.chase.Position.Transform), projection)
	state.free.MoveSpeed = cfg.Camera.MoveSpeed
	state.free.MouseSensitivity = cfg.Camera.MouseSensitivity
	state.light = lightFrom(cfg.Light)

	cameras := g.SystemManager.CameraSystem
	if err := cameras.Register(chaseCamera, state.chase); err != nil {
		return err
	}
	if err := cameras.Register(freeCamera, state.free); err != nil {
		return err
	}
	if err := cameras.SetActive(chaseCamera); err != nil {
		return err
	}

	state.asteroids = spawnAsteroids(cfg.Scene, state.ship.Radius)
	state.pairs = make([]systems.Pair, len(state.asteroids))
	core.LogInfo("spawned %d asteroids around %s", len(state.asteroids), state.ship)

	g.Events.Register(core.EVENT_CODE_KEY_PRESSED, g, g.onKey)
	g.Events.Register(core.EVENT_CODE_KEY_RELEASED, g, g.onKey)
	g.Events.Register(core.EVENT_CODE_MOUSE_MOVED, g, g.onMouseMove)
	g.Events.Register(core.EVENT_CODE_BUTTON_PRESSED, g, g.onButton)
	g.Events.Register(core.EVENT_CODE_CONFIG_RELOADED, g, g.onConfig)
	return nil
}

func projectionFrom(cfg config.CameraConfig) components.Projection {
	return components.Projection{FOV: math.DegToRad(cfg.FOVDegrees), Near: cfg.NearClip, Far: cfg.FarClip}
}

func lightFrom(cfg config.LightConfig) components.Light {
	light := components.DefaultLight()
	light.Direction = cfg.DirectionVec()
	light.Position = cfg.PositionVec()
	return light
}

// Placement attempts per asteroid before giving up on a crowded field.
const spawnAttempts int = 100

/**
 * @brief Scatters asteroids inside a ball of FieldRadius around the origin,
 * keeping a clear bubble for the ship. The same seed gives the same field.
 */
func spawnAsteroids(cfg config.SceneConfig, clearance float32) []*Asteroid {
	rng := rand.New(rand.NewSource(cfg.Seed))
	between := func(low, high float32) float32 {
		return low + rng.Float32()*(high-low)
	}

	asteroids := make([]*Asteroid, 0, cfg.AsteroidCount)
	for attempt := 0; len(asteroids) < cfg.AsteroidCount; attempt++ {
		if attempt >= spawnAttempts*cfg.AsteroidCount {
			core.LogWarn("field too small, placed %d of %d asteroids", len(asteroids), cfg.AsteroidCount)
			break
		}
		radius := between(cfg.AsteroidMinRadius, cfg.AsteroidMaxRadius)
		location := math.NewVec3(
			between(-cfg.FieldRadius, cfg.FieldRadius),
			between(-cfg.FieldRadius, cfg.FieldRadius),
			between(-cfg.FieldRadius, cfg.FieldRadius),
		)
		distance := location.Length()
		if distance > cfg.FieldRadius || distance < clearance+radius+cfg.AsteroidMaxRadius {
			continue
		}

		position := physics.NewPositionAt(location)
		axis, ok := math.NewVec3(between(-1, 1), between(-1, 1), between(-1, 1)).NormalizeSafe()
		if !ok {
			axis = math.Vec3Up
		}
		position.SetAngularVelocity(axis.MulScalar(between(0.1, 1.0)))

		asteroids = append(asteroids, &Asteroid{
			ID:       uuid.New(),
			Position: position,
			Radius:   radius,
		})
	}
	return asteroids
}

func (g *AsteroidField) Update(deltaTime float64) error {
	state := g.state()
	dt := float32(deltaTime)

	if state.freeLook {
		state.free.Update(dt)
	} else {
		state.ship.Update(dt)
	}
	for _, a := range state.asteroids {
		a.Position.Update(dt)
	}
	state.chase.Follow(state.ship.Transform())

	ship := systems.Body{ID: state.ship.ID, Collider: state.ship}
	for i, a := range state.asteroids {
		state.pairs[i] = systems.Pair{A: ship, B: systems.Body{ID: a.ID, Collider: a}}
	}
	reports := g.SystemManager.CollisionSystem.Test(state.pairs)
	for i, r := range reports {
		a := state.asteroids[i]
		if r.Result.Collided && !a.Hit {
			state.hits++
			core.LogInfo("ship %s hit asteroid %s after %d iterations", r.A, r.B, r.Result.Iterations)
		}
		a.Hit = r.Result.Collided
	}
	return nil
}

func (g *AsteroidField) viewer() components.Viewer {
	return g.SystemManager.CameraSystem.Active()
}

func (g *AsteroidField) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	state := g.state()
	packet.Environment = components.NewEnvironment(g.viewer(), state.aspect, state.light)

	packet.AddSlot(metadata.MaterialSlot{
		Mesh:      "skysphere",
		Transform: state.chase.Skysphere(),
		Colour:    skyColour,
	})
	packet.AddSlot(metadata.MaterialSlot{
		EntityID:  state.ship.ID,
		Mesh:      "spaceship",
		Transform: state.ship.Transform(),
		Colour:    shipColour,
	})
	for _, a := range state.asteroids {
		colour := asteroidColour
		if a.Hit {
			colour = hitColour
		}
		packet.AddSlot(metadata.MaterialSlot{
			EntityID:  a.ID,
			Mesh:      "asteroid",
			Transform: a.Transform(),
			Colour:    colour,
		})
	}
	return nil
}

func (g *AsteroidField) OnResize(width uint32, height uint32) error {
	if height == 0 {
		return nil
	}
	g.state().aspect = float32(width) / float32(height)
	return nil
}

func (g *AsteroidField) Shutdown() error {
	g.SystemManager.CameraSystem.Release(freeCamera)
	g.SystemManager.CameraSystem.Release(chaseCamera)
	core.LogInfo("asteroid field closed after %d hits", g.state().hits)
	return nil
}

func (g *AsteroidField) onKey(context core.EventContext, listener interface{}) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	state := g.state()

	if context.Type == core.EVENT_CODE_KEY_PRESSED {
		if ke.KeyCode == core.KEY_C {
			state.freeLook = !state.freeLook
			active := chaseCamera
			if state.freeLook {
				state.free.Position.Transform = state.chase.Position.Transform
				active = freeCamera
			}
			if err := g.SystemManager.CameraSystem.SetActive(active); err != nil {
				core.LogError(err.Error())
			}
			core.LogDebug("active camera: %s", active)
			return true
		}
		state.ship.OnKeyDown(ke.KeyCode)
		state.free.OnKeyDown(ke.KeyCode)
		return false
	}
	state.ship.OnKeyUp(ke.KeyCode)
	state.free.OnKeyUp(ke.KeyCode)
	return false
}

func (g *AsteroidField) onMouseMove(context core.EventContext, listener interface{}) bool {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	state := g.state()
	if state.freeLook {
		state.free.OnMouseMove(float32(me.PosX), float32(me.PosY))
	} else {
		state.ship.OnMouseMove(float32(me.PosX), float32(me.PosY))
	}
	return false
}

func (g *AsteroidField) onButton(context core.EventContext, listener interface{}) bool {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	g.state().free.OnMouseButtonDown(me.Button)
	return false
}

func (g *AsteroidField) onConfig(context core.EventContext, listener interface{}) bool {
	cfg, ok := context.Data.(*config.Config)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	state := g.state()
	state.ship.ApplyConfig(cfg.Spaceship)

	projection := projectionFrom(cfg.Camera)
	state.chase.Projection = projection
	state.chase.Distance = cfg.Camera.ThirdPersonDistance
	state.chase.SkyRadius = cfg.Camera.SkyRadius
	state.free.Projection = projection
	state.free.MoveSpeed = cfg.Camera.MoveSpeed
	state.free.MouseSensitivity = cfg.Camera.MouseSensitivity
	state.light = lightFrom(cfg.Light)
	return false
}
