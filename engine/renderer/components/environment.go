package components

import (
	"github.com/spaghettifunk/anima-core/engine/math"
	"github.com/spaghettifunk/anima-core/engine/renderer/metadata"
)

// Viewer is what the environment needs from a camera.
type Viewer interface {
	GetView() math.Mat4
	GetProj(aspect_ratio float32) math.Mat4
	Eye() math.Vec3
}

type Light struct {
	Direction math.Vec3
	Position  math.Vec3
	Ambient   math.Vec4
}

func DefaultLight() Light {
	return Light{
		Direction: math.NewVec3(-0.57735, -0.57735, 0.57735),
		Position:  math.NewVec3(0, 100, 0),
		Ambient:   math.NewVec4(0.25, 0.25, 0.25, 1.0),
	}
}

/**
 * @brief Builds the per frame environment record from a camera and a light.
 * A zero light direction falls back to straight down.
 */
func NewEnvironment(viewer Viewer, aspect_ratio float32, light Light) metadata.Environment {
	direction, ok := light.Direction.NormalizeSafe()
	if !ok {
		direction = math.Vec3Up.Neg()
	}
	return metadata.Environment{
		View:           viewer.GetView(),
		Projection:     viewer.GetProj(aspect_ratio),
		LightDirection: direction,
		CameraPosition: viewer.Eye(),
		LightPosition:  light.Position,
		AmbientColour:  light.Ambient,
	}
}
