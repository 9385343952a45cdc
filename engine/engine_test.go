package engine

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
	"github.com/spaghettifunk/lumen/engine/sensors"
	"github.com/spaghettifunk/lumen/engine/systems"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

// depthWriter writes a fixed reading per pixel column in the depth pass
// and records which passes ran.
type depthWriter struct {
	readings []float32
	passes   []metadata.RenderType
	items    int
}

func (d *depthWriter) RenderPass(rt metadata.RenderType, items []metadata.DrawItem, frame *Frame) error {
	d.passes = append(d.passes, rt)
	d.items += len(items)
	if rt != metadata.RenderTypeDepth {
		return nil
	}
	for x, v := range d.readings {
		frame.Depth.Set(x, 0, v)
	}
	return nil
}

func testConfig() core.Config {
	cfg := core.DefaultConfig()
	cfg.Capture.Width = 4
	cfg.Capture.Height = 2
	cfg.Capture.MinDepth = 0.5
	cfg.Capture.MaxDepth = 5
	return cfg
}

func sceneGame() *Game {
	return &Game{
		FnInitialize: func(sm *systems.SystemManager) error {
			idx, err := sm.UploadGeometry(systems.GenerateCubeConfig(1, 1, 1, 1, 1, "cube"))
			if err != nil {
				return err
			}
			_, err = sm.AddInstance(idx, math.NewRigidTransformIdentity(), math.NewVec3One(),
				metadata.NewShaderBinding(1, nil), metadata.NewShaderBinding(2, nil), metadata.NewShaderBinding(3, nil))
			return err
		},
	}
}

func TestCaptureFrame(t *testing.T) {
	pr := &depthWriter{readings: []float32{0.1, 1, 4.5, 9}}
	var rendered *Frame
	g := sceneGame()
	g.FnRender = func(f *Frame) error {
		rendered = f
		return nil
	}

	e, err := New(g, testConfig(), renderer.NewHeadlessContext(), pr)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.CaptureFrame(); !errors.Is(err, core.ErrPreconditionViolation) {
		t.Errorf("capture before Initialize: %v", err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}

	frame, err := e.CaptureFrame()
	if err != nil {
		t.Fatal(err)
	}
	if rendered != frame || frame.Number != 1 {
		t.Errorf("frame %d not handed to the game", frame.Number)
	}
	if len(pr.passes) != metadata.RenderTypeCount || pr.items != metadata.RenderTypeCount {
		t.Errorf("passes %v, %d items", pr.passes, pr.items)
	}

	want := []float32{sensors.Depth32F().TooClose(), 1, 4.5, sensors.Depth32F().TooFar()}
	for x, w := range want {
		if got := frame.Depth.At(x, 0)[0]; got != w {
			t.Errorf("depth(%d, 0) = %v, want %v", x, got, w)
		}
	}
	// untouched pixels stay at TooFar
	if got := frame.Depth.At(0, 1)[0]; got != sensors.Depth32F().TooFar() {
		t.Errorf("untouched depth = %v", got)
	}
	if frame.Color.Width() != 4 || frame.Label.Height() != 2 {
		t.Errorf("frame size %dx%d", frame.Color.Width(), frame.Label.Height())
	}

	if err := e.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if e.Stage() != EngineStageShuttingDown {
		t.Errorf("stage = %d", e.Stage())
	}
}

func TestCaptureFrameFailsAfterContextReset(t *testing.T) {
	ctx := renderer.NewHeadlessContext()
	e, err := New(sceneGame(), testConfig(), ctx, &depthWriter{})
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	ctx.Reset()
	if _, err := e.CaptureFrame(); !errors.Is(err, core.ErrPreconditionViolation) {
		t.Errorf("capture on a reset context: %v", err)
	}
	if err := e.SystemManager().Rebuild(); err != nil {
		t.Fatal(err)
	}
	if _, err := e.CaptureFrame(); err != nil {
		t.Errorf("capture after rebuild: %v", err)
	}
}

func TestNewValidatesInput(t *testing.T) {
	ctx := renderer.NewHeadlessContext()
	if _, err := New(nil, testConfig(), ctx, &depthWriter{}); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("nil game: %v", err)
	}
	cfg := testConfig()
	cfg.Capture.Width = 0
	if _, err := New(&Game{}, cfg, ctx, &depthWriter{}); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("invalid config: %v", err)
	}
	if _, err := New(&Game{}, testConfig(), nil, &depthWriter{}); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("nil context: %v", err)
	}
}

func TestReloadChangesCaptureSize(t *testing.T) {
	e, err := New(&Game{}, testConfig(), renderer.NewHeadlessContext(), &depthWriter{})
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	cfg := testConfig()
	cfg.Capture.Width = 8
	if err := e.Reload(cfg); err != nil {
		t.Fatal(err)
	}
	frame, err := e.CaptureFrame()
	if err != nil {
		t.Fatal(err)
	}
	if frame.Color.Width() != 8 {
		t.Errorf("width = %d after reload", frame.Color.Width())
	}
}
