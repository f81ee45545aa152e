package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/spaghettifunk/anima-core/engine/config"
	"github.com/spaghettifunk/anima-core/engine/core"
	"github.com/spaghettifunk/anima-core/engine/renderer"
	"github.com/spaghettifunk/anima-core/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-core/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageBooting:
		return "booting"
	case EngineStageBootComplete:
		return "boot complete"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting down"
	}
	return "unknown"
}

type Option func(*Engine)

// WithBackend replaces the headless renderer backend.
func WithBackend(backend renderer.Backend) Option {
	return func(e *Engine) {
		e.renderer = renderer.New(backend)
	}
}

// WithClock drives frame timing from a custom clock.
func WithClock(clock *core.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

/**
 * @brief Owns the per frame loop. Each frame dispatches queued events,
 * updates and renders the game, hands the packet to the renderer and
 * finally rolls the input state. The loop runs on the goroutine that
 * called Run, game hooks never run concurrently with each other.
 */
type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	config        *config.Config
	isRunning     bool
	isSuspended   bool
	systemManager *systems.SystemManager
	renderer      *renderer.Renderer
	events        *core.EventBus
	input         *core.InputState
	watcher       *config.Watcher
	width         uint32
	height        uint32
	clock         *core.Clock
	metrics       *core.Metrics
	lastTime      float64
	frames        uint64
	packet        metadata.RenderPacket
}

func New(g *Game, cfg *config.Config, opts ...Option) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("game and application config are required")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	core.SetLogLevel(cfg.Level())

	sm, err := systems.NewSystemManager(cfg)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	e := &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		config:        cfg,
		clock:         core.NewClock(),
		metrics:       core.NewMetrics(),
		systemManager: sm,
		renderer:      renderer.New(renderer.NewHeadlessBackend()),
		events:        core.NewEventBus(cfg.Engine.EventQueue),
		isRunning:     true,
		isSuspended:   false,
		width:         g.ApplicationConfig.StartWidth,
		height:        g.ApplicationConfig.StartHeight,
	}
	e.input = core.NewInputState(e.events)
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageBooting

	// register some events
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	if path := e.gameInstance.ApplicationConfig.ConfigPath; path != "" {
		w, err := config.NewWatcher(path)
		if err != nil {
			return err
		}
		e.watcher = w
	}
	e.currentStage = EngineStageBootComplete

	e.currentStage = EngineStageInitializing
	if err := e.renderer.Initialize(); err != nil {
		return err
	}

	g := e.gameInstance
	g.Config = e.config
	g.SystemManager = e.systemManager
	g.Events = e.events
	g.Input = e.input

	if g.FnInitialize != nil {
		if err := g.FnInitialize(); err != nil {
			return err
		}
	}
	if g.FnOnResize != nil {
		if err := g.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	core.LogInfo("%s initialized with %d workers", g.ApplicationConfig.Name, e.config.Engine.Workers)
	return nil
}

/**
 * @brief Runs frames until the context is cancelled, the quit event fires,
 * max_frames is reached or a game hook fails.
 */
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return core.ErrEngineNotInitialized
	}
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning {
		select {
		case <-ctx.Done():
			core.LogInfo("context cancelled, leaving the main loop")
			e.isRunning = false
			continue
		default:
		}

		e.pollConfig()
		e.events.Dispatch()
		if !e.isRunning {
			break
		}

		if e.isSuspended {
			e.wait(ctx, e.targetFrameSeconds())
			continue
		}
		if err := e.frame(ctx); err != nil {
			e.isRunning = false
			return err
		}
	}
	return nil
}

func (e *Engine) frame(ctx context.Context) error {
	// Update clock and get delta time.
	e.clock.Update()
	currentTime := e.clock.Elapsed()
	delta := currentTime - e.lastTime
	if e.config.Engine.FixedDelta {
		delta = e.config.FixedStep()
	}
	frameStartTime := currentTime

	g := e.gameInstance
	if g.FnUpdate != nil {
		if err := g.FnUpdate(delta); err != nil {
			core.LogError("game update failed, shutting down: %s", err)
			return fmt.Errorf("game update: %w", err)
		}
	}

	e.packet.Reset()
	e.packet.DeltaTime = delta
	if g.FnRender != nil {
		if err := g.FnRender(&e.packet, delta); err != nil {
			core.LogError("game render failed, shutting down: %s", err)
			return fmt.Errorf("game render: %w", err)
		}
	}
	if err := e.renderer.DrawFrame(&e.packet); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}

	// Figure out how long the frame took and give the rest back.
	e.clock.Update()
	frameElapsedTime := e.clock.Elapsed() - frameStartTime
	e.metrics.Update(frameElapsedTime)
	if !e.config.Engine.FixedDelta {
		if remaining := e.targetFrameSeconds() - frameElapsedTime; remaining > 0 {
			e.wait(ctx, remaining)
		}
	}

	// NOTE: Input state copying should always be handled after any input
	// was recorded, so it stays the last thing before the frame ends.
	e.input.Update()

	e.lastTime = currentTime
	e.frames++
	if limit := e.config.Engine.MaxFrames; limit > 0 && e.frames >= uint64(limit) {
		core.LogInfo("reached %d frames, stopping", limit)
		e.isRunning = false
	}
	return nil
}

func (e *Engine) targetFrameSeconds() float64 {
	return e.config.FixedStep()
}

func (e *Engine) wait(ctx context.Context, seconds float64) {
	t := time.NewTimer(time.Duration(seconds * float64(time.Second)))
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// pollConfig applies at most one pending reload without blocking.
func (e *Engine) pollConfig() {
	if e.watcher == nil {
		return
	}
	select {
	case cfg, ok := <-e.watcher.Updates():
		if ok {
			e.ApplyConfig(cfg)
		}
	case err, ok := <-e.watcher.Errors():
		if ok {
			core.LogWarn("keeping the previous configuration: %s", err)
		}
	default:
	}
}

/**
 * @brief Swaps in a new configuration. Settings that size pools and queues
 * only take effect on restart, the rest is applied right away and announced
 * with EVENT_CODE_CONFIG_RELOADED.
 */
func (e *Engine) ApplyConfig(cfg *config.Config) {
	e.config = cfg
	e.gameInstance.Config = cfg
	core.SetLogLevel(cfg.Level())
	e.systemManager.ApplyConfig(cfg)
	e.events.Fire(core.EventContext{
		Type:   core.EVENT_CODE_CONFIG_RELOADED,
		Sender: e,
		Data:   cfg,
	})
	core.LogInfo("configuration reloaded")
}

// Stop asks the loop to exit at the next event dispatch. Safe to call from
// any goroutine.
func (e *Engine) Stop() error {
	return e.events.Post(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT, Sender: e})
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}

	if e.gameInstance.FnShutdown != nil {
		keep(e.gameInstance.FnShutdown())
	}
	if e.watcher != nil {
		keep(e.watcher.Close())
	}
	keep(e.renderer.Shutdown())
	keep(e.systemManager.Shutdown())
	e.events.Shutdown()
	e.clock.Stop()

	e.currentStage = EngineStageUninitialized
	return first
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Events() *core.EventBus {
	return e.events
}

func (e *Engine) Input() *core.InputState {
	return e.input
}

func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

func (e *Engine) Frames() uint64 {
	return e.frames
}

func (e *Engine) IsSuspended() bool {
	return e.isSuspended
}

// GetFramebufferSize returns the width and height (in this order) of the
// application framebuffer.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext, listener interface{}) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext, listener interface{}) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		e.events.Fire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT, Sender: e})
		// Block anything else from processing this.
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext, listener interface{}) bool {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	width := se.WindowWidth
	height := se.WindowHeight
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	e.gameInstance.ApplicationConfig.StartWidth = width
	e.gameInstance.ApplicationConfig.StartHeight = height
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	return false
}
