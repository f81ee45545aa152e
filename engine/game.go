package engine

import (
	"github.com/spaghettifunk/anima-core/engine/config"
	"github.com/spaghettifunk/anima-core/engine/core"
	"github.com/spaghettifunk/anima-core/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-core/engine/systems"
)

/**
 * @brief The hooks a game hands to the engine. The engine fills in the
 * shared systems before calling FnInitialize.
 */
type Game struct {
	ApplicationConfig *ApplicationConfig
	Config            *config.Config
	SystemManager     *systems.SystemManager
	Events            *core.EventBus
	Input             *core.InputState
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error
type Render func(packet *metadata.RenderPacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
