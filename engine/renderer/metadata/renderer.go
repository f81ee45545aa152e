package metadata

import (
	"github.com/google/uuid"
	"github.com/spaghettifunk/anima-core/engine/math"
)

/**
 * @brief Per frame camera and lighting record. The renderer copies it as is
 * into the shader visible uniform block.
 */
type Environment struct {
	/** @brief World to camera transform. */
	View math.Mat4
	/** @brief Camera to clip transform. */
	Projection math.Mat4
	/** @brief Unit direction the light travels in. */
	LightDirection math.Vec3
	/** @brief Eye location in world space. */
	CameraPosition math.Vec3
	LightPosition  math.Vec3
	AmbientColour  math.Vec4
}

/**
 * @brief Transform and colour for one entity. Mesh names an asset owned by
 * the external resource manager, the core never looks inside it.
 */
type MaterialSlot struct {
	EntityID  uuid.UUID
	Mesh      string
	Transform math.Mat4
	Colour    math.Vec4
}

type RenderPacket struct {
	DeltaTime   float64
	FrameNumber uint64
	Environment Environment
	Slots       []MaterialSlot
}

// Reset clears the slots but keeps their storage for the next frame.
func (p *RenderPacket) Reset() {
	p.Slots = p.Slots[:0]
}

func (p *RenderPacket) AddSlot(slot MaterialSlot) {
	p.Slots = append(p.Slots, slot)
}
