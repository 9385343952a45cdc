package engine

import (
	"fmt"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
	"github.com/spaghettifunk/lumen/engine/sensors"
	"github.com/spaghettifunk/lumen/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently capturing frames
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	config        core.Config
	passRenderer  PassRenderer
	systemManager *systems.SystemManager
	frameNumber   uint64
}

func New(g *Game, config core.Config, ctx renderer.GraphicsContext, pr PassRenderer) (*Engine, error) {
	if g == nil || pr == nil {
		return nil, fmt.Errorf("%w: engine needs a game and a pass renderer", core.ErrInvalidArgument)
	}
	if err := config.Validate(); err != nil {
		core.LogError("%s", err)
		return nil, err
	}
	if err := config.Apply(); err != nil {
		return nil, err
	}

	sm, err := systems.NewSystemManager(config, ctx)
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		config:        config,
		passRenderer:  pr,
		systemManager: sm,
	}, nil
}

func (e *Engine) Stage() Stage { return e.currentStage }

func (e *Engine) SystemManager() *systems.SystemManager { return e.systemManager }

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("%w: engine already initialized", core.ErrPreconditionViolation)
	}
	e.currentStage = EngineStageInitializing
	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e.systemManager); err != nil {
			core.LogError("game failed to initialize: %s", err)
			return err
		}
	}
	e.currentStage = EngineStageInitialized
	core.LogInfo("engine initialized: %d geometries, %d instances",
		e.systemManager.Geometry().Len(), e.systemManager.Instances().Len())
	return nil
}

// CaptureFrame renders every pass into a fresh Frame and hands it to the
// game. Depth readings outside the configured sensing range are replaced
// by the depth sentinels.
func (e *Engine) CaptureFrame() (*Frame, error) {
	if e.currentStage != EngineStageInitialized && e.currentStage != EngineStageRunning {
		return nil, fmt.Errorf("%w: engine is not initialized", core.ErrPreconditionViolation)
	}
	e.currentStage = EngineStageRunning

	frame, err := NewFrame(e.config.Capture.Width, e.config.Capture.Height)
	if err != nil {
		return nil, err
	}
	e.frameNumber++
	frame.Number = e.frameNumber

	for _, rt := range metadata.RenderTypes {
		items, err := e.systemManager.Gather(rt)
		if err != nil {
			return nil, err
		}
		frame.Draws[rt] = items
		if err := e.passRenderer.RenderPass(rt, items, frame); err != nil {
			core.LogError("%s pass failed: %s", rt, err)
			return nil, err
		}
	}

	if err := sensors.ClassifyDepth(sensors.Depth32F(), frame.Depth, e.config.Capture.MinDepth, e.config.Capture.MaxDepth); err != nil {
		return nil, err
	}

	core.LogDebug("captured frame %d (%s %d bytes, %s %d bytes, %s %d bytes)", frame.Number,
		frame.Color.Descriptor(), frame.Color.ByteSize(),
		frame.Depth.Descriptor(), frame.Depth.ByteSize(),
		frame.Label.Descriptor(), frame.Label.ByteSize())

	if e.gameInstance.FnRender != nil {
		if err := e.gameInstance.FnRender(frame); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

// Reload applies a new configuration. Only ambient settings and the
// capture size take effect; registry settings need a Rebuild.
func (e *Engine) Reload(config core.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if err := config.Apply(); err != nil {
		return err
	}
	e.config.Log = config.Log
	e.config.Capture = config.Capture
	return nil
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError("%s", err)
		}
	}
	if err := e.systemManager.Shutdown(); err != nil {
		core.LogError("%s", err)
		return err
	}
	core.LogInfo("engine shut down after %d frames", e.frameNumber)
	return nil
}
