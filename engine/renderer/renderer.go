package renderer

import (
	"fmt"

	"github.com/spaghettifunk/anima-core/engine/core"
	"github.com/spaghettifunk/anima-core/engine/renderer/metadata"
)

/**
 * @brief Frontend owned by the engine. It fills in the frame number and
 * forwards packets to the backend.
 */
type Renderer struct {
	backend     Backend
	initialized bool
	frame       uint64
}

func New(backend Backend) *Renderer {
	if backend == nil {
		backend = NewHeadlessBackend()
	}
	return &Renderer{backend: backend}
}

func (r *Renderer) Initialize() error {
	if err := r.backend.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize renderer backend: %w", err)
	}
	r.initialized = true
	return nil
}

func (r *Renderer) DrawFrame(packet *metadata.RenderPacket) error {
	if !r.initialized {
		return core.ErrEngineNotInitialized
	}
	r.frame++
	packet.FrameNumber = r.frame
	if err := r.backend.DrawFrame(packet); err != nil {
		core.LogError("renderer failed to draw frame %d: %s", r.frame, err)
		return err
	}
	return nil
}

func (r *Renderer) Shutdown() error {
	if !r.initialized {
		return nil
	}
	r.initialized = false
	return r.backend.Shutdown()
}

func (r *Renderer) FrameNumber() uint64 {
	return r.frame
}
