/*
This is an example of application that will use the
engine package to fly through an asteroid field
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima-core/engine"
	"github.com/spaghettifunk/anima-core/engine/config"
	"github.com/spaghettifunk/anima-core/engine/core"
	"github.com/spaghettifunk/anima-core/testbed"
)

func main() {
	configPath := flag.String("config", config.DEFAULT_CONFIG_FILE, "path to the TOML configuration")
	watch := flag.Bool("watch", true, "reload the configuration when the file changes")
	writeConfig := flag.Bool("write-config", false, "write the default configuration to -config and exit")
	flag.Parse()

	if *writeConfig {
		if err := config.Default().WriteFile(*configPath); err != nil {
			core.LogFatal("failed to write configuration: %s", err)
		}
		core.LogInfo("default configuration written to %s", *configPath)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		core.LogFatal("failed to load configuration: %s", err)
	}

	tb := testbed.NewAsteroidField()
	if *watch {
		tb.ApplicationConfig.ConfigPath = *configPath
	}

	e, err := engine.New(tb.Game, cfg)
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal(err.Error())
	}

	// cancel the loop on sigterm and other system calls
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	runErr := e.Run(ctx)
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown failed: %s", err)
	}
	if runErr != nil {
		core.LogFatal(runErr.Error())
	}
}
