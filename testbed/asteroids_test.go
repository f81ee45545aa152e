package testbed

import (
	"context"
	"testing"

	"github.com/spaghettifunk/anima-core/engine"
	"github.com/spaghettifunk/anima-core/engine/config"
	"github.com/spaghettifunk/anima-core/engine/core"
	"github.com/spaghettifunk/anima-core/engine/math"
	"github.com/spaghettifunk/anima-core/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(frames int) *config.Config {
	cfg := config.Default()
	cfg.Engine.FixedDelta = true
	cfg.Engine.MaxFrames = frames
	cfg.Engine.Workers = 2
	cfg.Scene.AsteroidCount = 12
	cfg.Scene.FieldRadius = 60
	return cfg
}

func TestSpawnAsteroids(t *testing.T) {
	cfg := testConfig(0).Scene

	first := spawnAsteroids(cfg, 1)
	second := spawnAsteroids(cfg, 1)
	require.Len(t, first, cfg.AsteroidCount)
	require.Len(t, second, cfg.AsteroidCount)

	for i, a := range first {
		location := a.Position.Location()
		assert.Equal(t, location, second[i].Position.Location(), "same seed, same field")
		assert.LessOrEqual(t, location.Length(), cfg.FieldRadius)
		assert.GreaterOrEqual(t, location.Length(), 1+a.Radius)
		assert.GreaterOrEqual(t, a.Radius, cfg.AsteroidMinRadius)
		assert.LessOrEqual(t, a.Radius, cfg.AsteroidMaxRadius)
		assert.NotEqual(t, math.NewVec3Zero(), a.Position.AngularVelocity)
	}
	assert.NotEqual(t, first[0].ID, second[0].ID)

	cfg.Seed = 7
	assert.NotEqual(t, first[0].Position.Location(), spawnAsteroids(cfg, 1)[0].Position.Location())

	crowded := cfg
	crowded.FieldRadius = 2
	assert.Empty(t, spawnAsteroids(crowded, 1))
}

func TestAsteroid_Collider(t *testing.T) {
	a := spawnAsteroids(testConfig(0).Scene, 1)[0]
	center := a.Position.Location()
	assert.True(t, a.Support(math.Vec3Up).Compare(center.Add(math.Vec3{Y: a.Radius}), 1e-4))

	scaled := a.Transform()
	assert.InDelta(t, a.Radius, scaled.DirectionX().Length(), 1e-4)
	assert.True(t, scaled.Translation().Compare(center, 1e-4))
}

func TestAsteroidField_Runs(t *testing.T) {
	af := NewAsteroidField()
	backend := renderer.NewHeadlessBackend()
	cfg := testConfig(10)

	e, err := engine.New(af.Game, cfg, engine.WithBackend(backend))
	require.NoError(t, err)
	require.NoError(t, e.Initialize())

	state := af.state()
	require.Len(t, state.asteroids, cfg.Scene.AsteroidCount)

	// Park a rock right in front of the ship.
	state.asteroids[0].Position.SetLocation(math.Vec3{0, 0, 1.5})

	require.NoError(t, e.Input().ProcessKey(core.KEY_W, true))
	require.NoError(t, e.Run(context.Background()))

	assert.Equal(t, uint64(10), backend.Frames())
	packet := backend.LastPacket()
	assert.Len(t, packet.Slots, 2+cfg.Scene.AsteroidCount)
	assert.Equal(t, state.ship.ID, packet.Slots[1].EntityID)
	assert.True(t, packet.Environment.CameraPosition.Compare(state.chase.Eye(), 1e-5))

	assert.Equal(t, float32(1), state.ship.Throttle())
	assert.Greater(t, state.ship.Location().Z, float32(0))
	assert.GreaterOrEqual(t, state.hits, 1)
	assert.True(t, state.asteroids[0].Hit)
	assert.Equal(t, hitColour, packet.Slots[2].Colour)

	require.NoError(t, e.Shutdown())
}

func TestAsteroidField_FreeLookAndReload(t *testing.T) {
	af := NewAsteroidField()
	e, err := engine.New(af.Game, testConfig(2))
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	state := af.state()

	require.NoError(t, e.Input().ProcessKey(core.KEY_C, true))
	e.Events().Dispatch()
	assert.True(t, state.freeLook)
	assert.Same(t, state.free, af.viewer())

	next := testConfig(2)
	next.Camera.ThirdPersonDistance = 25
	next.Spaceship.Speed = 3
	e.ApplyConfig(next)
	assert.Equal(t, float32(25), state.chase.Distance)
	assert.Equal(t, float32(3), state.ship.Speed)

	e.Events().Fire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.SystemEvent{WindowWidth: 640, WindowHeight: 320}})
	assert.Equal(t, float32(2), state.aspect)

	require.NoError(t, e.Shutdown())
}
