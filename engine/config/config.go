package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/anima-core/engine/core"
	"github.com/spaghettifunk/anima-core/engine/math"
)

const DEFAULT_CONFIG_FILE string = "anima.toml"

type EngineConfig struct {
	// Frames per second the loop aims for. Also the step size in fixed mode.
	TargetFPS float64 `toml:"target_fps"`
	// Feed 1/target_fps to every update instead of the measured frame time.
	FixedDelta bool `toml:"fixed_delta"`
	// Stop after this many frames, 0 runs until cancelled.
	MaxFrames    int `toml:"max_frames"`
	Workers      int `toml:"workers"`
	JobQueueSize int `toml:"job_queue_size"`
	EventQueue   int `toml:"event_queue_size"`
}

type CameraConfig struct {
	FOVDegrees          float32 `toml:"fov_degrees"`
	NearClip            float32 `toml:"near_clip"`
	FarClip             float32 `toml:"far_clip"`
	ThirdPersonDistance float32 `toml:"third_person_distance"`
	SkyRadius           float32 `toml:"sky_radius"`
	MouseSensitivity    float32 `toml:"mouse_sensitivity"`
	MoveSpeed           float32 `toml:"move_speed"`
}

type CollisionConfig struct {
	MaxIterations int `toml:"max_iterations"`
}

type SpaceshipConfig struct {
	// Fraction of the remaining rotation covered per second.
	RotationRate float32 `toml:"rotation_rate"`
	// Fraction of the remaining translation covered per second.
	PositionRate float32 `toml:"position_rate"`
	Speed        float32 `toml:"speed"`
	Radius       float32 `toml:"radius"`
	MaxPitch     float32 `toml:"max_pitch"`
}

type SceneConfig struct {
	AsteroidCount     int     `toml:"asteroid_count"`
	FieldRadius       float32 `toml:"field_radius"`
	AsteroidMinRadius float32 `toml:"asteroid_min_radius"`
	AsteroidMaxRadius float32 `toml:"asteroid_max_radius"`
	Seed              uint64  `toml:"seed"`
}

type LightConfig struct {
	Direction [3]float32 `toml:"direction"`
	Position  [3]float32 `toml:"position"`
}

func (l LightConfig) DirectionVec() math.Vec3 {
	return math.NewVec3(l.Direction[0], l.Direction[1], l.Direction[2])
}

func (l LightConfig) PositionVec() math.Vec3 {
	return math.NewVec3(l.Position[0], l.Position[1], l.Position[2])
}

type Config struct {
	LogLevel  string          `toml:"log_level"`
	Engine    EngineConfig    `toml:"engine"`
	Camera    CameraConfig    `toml:"camera"`
	Collision CollisionConfig `toml:"collision"`
	Spaceship SpaceshipConfig `toml:"spaceship"`
	Scene     SceneConfig     `toml:"scene"`
	Light     LightConfig     `toml:"light"`
}

func Default() *Config {
	return &Config{
		LogLevel: "info",
		Engine: EngineConfig{
			TargetFPS:    60,
			FixedDelta:   false,
			MaxFrames:    0,
			Workers:      4,
			JobQueueSize: 64,
			EventQueue:   256,
		},
		Camera: CameraConfig{
			FOVDegrees:          45,
			NearClip:            0.1,
			FarClip:             1000,
			ThirdPersonDistance: 10,
			SkyRadius:           500,
			MouseSensitivity:    0.005,
			MoveSpeed:           5,
		},
		Collision: CollisionConfig{
			MaxIterations: 500,
		},
		Spaceship: SpaceshipConfig{
			RotationRate: 5,
			PositionRate: 5,
			Speed:        20,
			Radius:       1,
			MaxPitch:     1.57,
		},
		Scene: SceneConfig{
			AsteroidCount:     64,
			FieldRadius:       200,
			AsteroidMinRadius: 1,
			AsteroidMaxRadius: 6,
			Seed:              1,
		},
		Light: LightConfig{
			Direction: [3]float32{-0.57735, -0.57735, 0.57735},
			Position:  [3]float32{0, 100, 0},
		},
	}
}

/**
 * @brief Reads the TOML file at path on top of the defaults. A missing file
 * is not an error, the defaults are returned. Unknown keys are rejected.
 */
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogInfo("config file %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a TOML document on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return errors.New(strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return fmt.Errorf("line %d column %d: %s", row, col, decodeErr.Error())
		}
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", core.ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		return invalid("log_level: %v", err)
	}
	if c.Engine.TargetFPS <= 0 {
		return invalid("engine.target_fps must be positive, got %v", c.Engine.TargetFPS)
	}
	if c.Engine.MaxFrames < 0 {
		return invalid("engine.max_frames must not be negative, got %d", c.Engine.MaxFrames)
	}
	if c.Engine.Workers < 1 {
		return invalid("engine.workers must be at least 1, got %d", c.Engine.Workers)
	}
	if c.Engine.JobQueueSize < 0 {
		return invalid("engine.job_queue_size must not be negative, got %d", c.Engine.JobQueueSize)
	}
	if c.Engine.EventQueue < 1 {
		return invalid("engine.event_queue_size must be at least 1, got %d", c.Engine.EventQueue)
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		return invalid("camera.fov_degrees must be in (0, 180), got %v", c.Camera.FOVDegrees)
	}
	if c.Camera.NearClip <= 0 || c.Camera.FarClip <= c.Camera.NearClip {
		return invalid("camera clip planes need 0 < near_clip < far_clip, got %v and %v", c.Camera.NearClip, c.Camera.FarClip)
	}
	if c.Collision.MaxIterations < 1 {
		return invalid("collision.max_iterations must be at least 1, got %d", c.Collision.MaxIterations)
	}
	if c.Spaceship.Radius <= 0 {
		return invalid("spaceship.radius must be positive, got %v", c.Spaceship.Radius)
	}
	if c.Spaceship.MaxPitch <= 0 || c.Spaceship.MaxPitch > math.K_HALF_PI {
		return invalid("spaceship.max_pitch must be in (0, pi/2], got %v", c.Spaceship.MaxPitch)
	}
	if c.Scene.AsteroidCount < 0 {
		return invalid("scene.asteroid_count must not be negative, got %d", c.Scene.AsteroidCount)
	}
	if c.Scene.AsteroidMinRadius <= 0 || c.Scene.AsteroidMaxRadius < c.Scene.AsteroidMinRadius {
		return invalid("scene asteroid radii need 0 < min <= max, got %v and %v", c.Scene.AsteroidMinRadius, c.Scene.AsteroidMaxRadius)
	}
	if _, ok := c.Light.DirectionVec().NormalizeSafe(); !ok {
		return invalid("light.direction must not be zero")
	}
	return nil
}

// Level returns the parsed log level. Validate has already checked it.
func (c *Config) Level() core.LogLevel {
	level, _ := core.ParseLogLevel(c.LogLevel)
	return level
}

// FixedStep is the update step used when fixed_delta is on.
func (c *Config) FixedStep() float64 {
	return 1.0 / c.Engine.TargetFPS
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// WriteFile stores the configuration at path.
func (c *Config) WriteFile(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
