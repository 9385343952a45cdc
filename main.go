/*
This is an example of application that will use the
engine package to capture a few frames of a test scene
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spaghettifunk/lumen/engine"
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer"
	"github.com/spaghettifunk/lumen/testbed"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML configuration file")
	outputDir := flag.String("out", "", "directory the captured frames are written to")
	frames := flag.Int("frames", 1, "number of frames to capture, 0 captures until interrupted")
	flag.Parse()

	cfg := core.DefaultConfig()
	if *configPath != "" {
		c, err := core.LoadConfig(*configPath)
		if err != nil {
			core.LogFatal("failed to load configuration: %s", err)
		}
		cfg = c
	}

	tb := testbed.NewTestGame(*outputDir)
	ctx := renderer.NewHeadlessContext()

	eng, err := engine.New(tb.Game, cfg, ctx, tb.Renderer)
	if err != nil {
		panic(err)
	}

	if err := eng.Initialize(); err != nil {
		panic(err)
	}

	// reloads arrive on the watcher goroutine, hand them to the capture loop
	reloads := make(chan core.Config, 1)
	if *configPath != "" {
		watcher, err := core.NewConfigWatcher(*configPath, func(c core.Config) {
			select {
			case reloads <- c:
			default:
			}
		})
		if err != nil {
			core.LogWarn("configuration will not be reloaded: %s", err)
		} else {
			defer watcher.Close()
		}
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

capture:
	for n := 0; *frames == 0 || n < *frames; n++ {
		select {
		case <-sigCh:
			core.LogInfo("interrupted")
			break capture
		case c := <-reloads:
			if err := eng.Reload(c); err != nil {
				core.LogError("ignoring configuration change: %s", err)
			}
		case <-ticker.C:
		}
		if _, err := eng.CaptureFrame(); err != nil {
			core.LogError("capture failed: %s", err)
			break capture
		}
	}

	if err := eng.Shutdown(); err != nil {
		os.Exit(1)
	}
}
