/*
Marcher is a signed-distance-field ray marcher. It opens a window, compiles
the WGSL shader pair to SPIR-V at startup and renders an animated implicit
scene with Vulkan.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/hollowgrove/marcher/engine"
	"github.com/hollowgrove/marcher/engine/config"
	"github.com/hollowgrove/marcher/engine/core"
)

func main() {
	configPath := flag.String("config", "marcher.toml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		core.LogError("failed to load config: %s", err)
		os.Exit(core.ExitGeneric)
	}
	core.SetLogLevel(cfg.LogLevel)

	app, err := engine.New(cfg)
	if err != nil {
		core.LogError("failed to create application: %s", err)
		os.Exit(core.ExitCodeFor(err))
	}

	if err := app.Initialize(); err != nil {
		core.LogError("initialization failed: %s", err)
		os.Exit(core.ExitCodeFor(err))
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	go func() {
		<-sigCh
		core.EventFire(core.EVENT_CODE_APPLICATION_QUIT, nil, core.EventContext{})
	}()

	runErr := app.Run()
	if runErr != nil {
		core.LogError("run failed: %s", runErr)
	}

	if err := app.Shutdown(); err != nil {
		core.LogError("shutdown failed: %s", err)
		if runErr == nil {
			runErr = err
		}
	}

	os.Exit(core.ExitCodeFor(runErr))
}
