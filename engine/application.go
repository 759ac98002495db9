package engine

import (
	"fmt"
	"time"

	"github.com/hollowgrove/marcher/engine/config"
	"github.com/hollowgrove/marcher/engine/core"
	"github.com/hollowgrove/marcher/engine/platform"
	"github.com/hollowgrove/marcher/engine/renderer"
	"github.com/hollowgrove/marcher/engine/renderer/shaders"
	"github.com/hollowgrove/marcher/engine/renderer/vulkan"
	"github.com/hollowgrove/marcher/engine/scene"
)

// Application owns the main loop and every subsystem: platform window,
// scene world, renderer and the optional shader hot-reload watcher.
type Application struct {
	config   *config.Config
	platform *platform.Platform
	world    *scene.World
	renderer *renderer.Renderer
	watcher  *shaders.Watcher

	clock     *core.Clock
	lastTime  float64
	isRunning bool

	width  uint32
	height uint32

	// Shader change paths arrive from the watcher goroutine; the frame loop
	// drains them so all renderer calls stay on the application thread.
	reloadRequests chan string
}

func New(cfg *config.Config) (*Application, error) {
	p, err := platform.New()
	if err != nil {
		return nil, err
	}

	backend := vulkan.New(p, vulkan.Options{
		Validation:     cfg.Renderer.Validation,
		FramesInFlight: cfg.Renderer.FramesInFlight,
		AcquireTimeout: time.Duration(cfg.Renderer.AcquireTimeoutMS) * time.Millisecond,
		Shader: shaders.Options{
			DebugInfo: cfg.Shaders.DebugInfo,
			Optimize:  cfg.Shaders.Optimize,
		},
	})

	return &Application{
		config:         cfg,
		platform:       p,
		world:          scene.NewWorld(),
		renderer:       renderer.New(backend),
		clock:          core.NewClock(),
		width:          cfg.Window.Width,
		height:         cfg.Window.Height,
		reloadRequests: make(chan string, 8),
	}, nil
}

func (a *Application) Initialize() error {
	if !core.EventInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, a, a.onEvent)
	core.EventRegister(core.EVENT_CODE_RESIZED, a, a.onResized)
	core.EventRegister(core.EVENT_CODE_MINIMIZED, a, a.onResized)
	core.EventRegister(core.EVENT_CODE_RESTORED, a, a.onResized)
	core.EventRegister(core.EVENT_CODE_SHADER_CHANGED, a, a.onShaderChanged)

	if err := a.platform.Startup(a.config.Window.Title, a.width, a.height); err != nil {
		return err
	}

	// The window manager may hand back a different drawable size than
	// requested, especially on high-DPI displays.
	a.width, a.height = a.platform.DrawableExtent()

	if err := a.renderer.Initialize(a.config.Window.Title, a.width, a.height); err != nil {
		return err
	}

	a.world.SeedDemoScene()

	if a.config.HotReload.Enabled {
		watcher, err := shaders.NewWatcher(time.Duration(a.config.HotReload.DebounceMS) * time.Millisecond)
		if err != nil {
			core.LogWarn("shader hot reload unavailable: %s", err)
		} else if err := watcher.Start(a.config.HotReload.Dir); err != nil {
			core.LogWarn("shader hot reload unavailable: %s", err)
			watcher.Stop()
		} else {
			a.watcher = watcher
		}
	}

	a.isRunning = true
	return nil
}

func (a *Application) Run() error {
	a.clock.Start()
	a.clock.Update()
	a.lastTime = a.clock.Elapsed()

	for a.isRunning {
		a.platform.PumpMessages()
		if a.platform.ShouldClose() {
			a.isRunning = false
			break
		}

		a.clock.Update()
		currentTime := a.clock.Elapsed()
		delta := currentTime - a.lastTime
		frameStart := time.Now()

		if err := a.drainReloadRequests(); err != nil {
			return err
		}

		a.world.Update(currentTime)

		packet := &renderer.RenderPacket{
			DeltaTime: delta,
			Time:      currentTime,
			Scene:     a.world.Snapshot(),
		}
		if _, err := a.renderer.DrawFrame(packet); err != nil {
			core.LogError("frame failed: %s", err)
			return err
		}

		core.MetricsUpdate(time.Since(frameStart).Seconds())
		a.lastTime = currentTime
	}

	return nil
}

func (a *Application) Shutdown() error {
	a.isRunning = false

	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			core.LogWarn("shader watcher shutdown: %s", err)
		}
		a.watcher = nil
	}

	if err := a.renderer.Shutdown(); err != nil {
		return err
	}
	if err := core.EventShutdown(); err != nil {
		return err
	}
	return a.platform.Shutdown()
}

func (a *Application) drainReloadRequests() error {
	for {
		select {
		case path := <-a.reloadRequests:
			if err := a.renderer.ReloadShaders(path); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (a *Application) onEvent(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	if code == core.EVENT_CODE_APPLICATION_QUIT {
		core.LogInfo("application quit requested, shutting down")
		a.isRunning = false
		return true
	}
	return false
}

func (a *Application) onResized(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_MINIMIZED:
		core.LogInfo("window minimized")
		// Forget the last extent so a restore to the same size still
		// resumes the renderer instead of hitting the dedup below.
		a.width = 0
		a.height = 0
		a.renderer.OnResize(0, 0)
		return true
	case core.EVENT_CODE_RESIZED, core.EVENT_CODE_RESTORED:
		width := data.Data.U32[0]
		height := data.Data.U32[1]
		if width == a.width && height == a.height {
			return false
		}
		a.width = width
		a.height = height
		core.LogDebug("window resize: %d x %d", width, height)
		a.renderer.OnResize(width, height)
		return true
	}
	return false
}

func (a *Application) onShaderChanged(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	select {
	case a.reloadRequests <- data.Data.C[0]:
	default:
		// A reload for this burst is already queued.
	}
	return true
}
