package renderer

import (
	"github.com/spaghettifunk/anima-core/engine/core"
	"github.com/spaghettifunk/anima-core/engine/renderer/metadata"
)

/**
 * @brief The device side of rendering. The core hands a packet per frame and
 * never looks at what the backend does with it.
 */
type Backend interface {
	Initialize() error
	DrawFrame(packet *metadata.RenderPacket) error
	Shutdown() error
}

type RendererType uint8

const (
	Headless RendererType = iota
	Vulkan
)

func (t RendererType) String() string {
	switch t {
	case Headless:
		return "headless"
	case Vulkan:
		return "vulkan"
	}
	return "unknown"
}

/**
 * @brief Backend without a device. It keeps a copy of the last packet and
 * logs a one line summary of every frame at debug level.
 */
type HeadlessBackend struct {
	initialized bool
	frames      uint64
	slots       uint64
	last        metadata.RenderPacket
}

func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{}
}

func (b *HeadlessBackend) Initialize() error {
	b.initialized = true
	core.LogInfo("%s renderer backend initialized", Headless)
	return nil
}

func (b *HeadlessBackend) DrawFrame(packet *metadata.RenderPacket) error {
	if !b.initialized {
		return core.ErrEngineNotInitialized
	}
	b.frames++
	b.slots += uint64(len(packet.Slots))

	b.last.DeltaTime = packet.DeltaTime
	b.last.FrameNumber = packet.FrameNumber
	b.last.Environment = packet.Environment
	b.last.Slots = append(b.last.Slots[:0], packet.Slots...)

	core.LogDebug("frame %d dt=%.4f slots=%d eye=%s", packet.FrameNumber, packet.DeltaTime, len(packet.Slots), packet.Environment.CameraPosition)
	return nil
}

func (b *HeadlessBackend) Shutdown() error {
	if b.initialized {
		core.LogInfo("%s renderer backend drew %d frames and %d slots", Headless, b.frames, b.slots)
	}
	b.initialized = false
	return nil
}

func (b *HeadlessBackend) Frames() uint64 {
	return b.frames
}

// LastPacket returns the copy taken during the latest DrawFrame.
func (b *HeadlessBackend) LastPacket() metadata.RenderPacket {
	return b.last
}
