package engine

import (
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
	"github.com/spaghettifunk/lumen/engine/sensors"
	"github.com/spaghettifunk/lumen/engine/systems"
)

// Game is what an application plugs into the Engine.
type Game struct {
	State        interface{}
	FnInitialize Initialize
	FnRender     Render
	FnShutdown   Shutdown
}

// Initialize populates the scene: upload geometry, add instances.
type Initialize func(sm *systems.SystemManager) error

// Render receives every captured frame.
type Render func(frame *Frame) error

type Shutdown func() error

// PassRenderer issues the draw calls of one pass into frame. It is the
// draw-call orchestration the engine does not implement itself.
type PassRenderer interface {
	RenderPass(rt metadata.RenderType, items []metadata.DrawItem, frame *Frame) error
}

// Frame holds the images of one capture, one per render type.
type Frame struct {
	Number uint64
	Color  *sensors.Image[uint8]
	Depth  *sensors.Image[float32]
	Label  *sensors.Image[int16]
	// Draws is the draw list each pass was rendered from.
	Draws [metadata.RenderTypeCount][]metadata.DrawItem
}

// NewFrame allocates the three capture images. Depth starts at TooFar,
// meaning nothing was hit.
func NewFrame(width, height int) (*Frame, error) {
	color, err := sensors.NewImage(sensors.Rgba8U(), width, height)
	if err != nil {
		return nil, err
	}
	depth, err := sensors.NewImage(sensors.Depth32F().Traits(), width, height)
	if err != nil {
		return nil, err
	}
	label, err := sensors.NewImage(sensors.Label16I(), width, height)
	if err != nil {
		return nil, err
	}
	depth.Fill(sensors.Depth32F().TooFar())
	return &Frame{Color: color, Depth: depth, Label: label}, nil
}
