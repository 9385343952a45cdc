package testbed

import (
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/spaghettifunk/lumen/engine"
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
	"github.com/spaghettifunk/lumen/engine/sensors"
	"github.com/spaghettifunk/lumen/engine/systems"
)

// Shader ids of the three passes. The testbed has no real programs, the
// ids only have to be valid.
const (
	colorShader metadata.ShaderID = 1
	labelShader metadata.ShaderID = 2
	depthShader metadata.ShaderID = 3
)

type TestGame struct {
	*engine.Game
	Renderer *PointRenderer
}

type gameState struct {
	outputDir string

	cube  int
	plane int
	// registered with an invalid vertex buffer, never drawable
	broken int

	instances []*metadata.SceneInstance
	frames    uint64
}

// NewTestGame builds the demo scene. Captured frames are written to
// outputDir as PNG when it is not empty.
func NewTestGame(outputDir string) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			State: &gameState{outputDir: outputDir},
		},
		Renderer: NewPointRenderer(5.0, 8.0),
	}
	tg.FnInitialize = tg.Initialize
	tg.FnRender = tg.Render
	tg.FnShutdown = tg.Shutdown
	return tg
}

func bindings(rgba color.RGBA, label int16) (c, d, l metadata.ShaderBinding) {
	return metadata.NewShaderBinding(colorShader, rgba),
		metadata.NewShaderBinding(depthShader, nil),
		metadata.NewShaderBinding(labelShader, label)
}

func (g *TestGame) Initialize(sm *systems.SystemManager) error {
	core.LogDebug("TestGame Initialize fn....")
	state := g.State.(*gameState)

	cube := systems.GenerateCubeConfig(1, 1, 1, 1, 1, "test_cube")
	idx, err := sm.UploadGeometry(cube)
	if err != nil {
		return err
	}
	g.Renderer.Track(idx, cube)
	state.cube = idx

	plane := systems.GeneratePlaneConfig(6, 4, 12, 8, 2, 2, "test_plane")
	idx, err = sm.UploadGeometry(plane)
	if err != nil {
		return err
	}
	g.Renderer.Track(idx, plane)
	state.plane = idx

	// A record whose vertex buffer failed to upload: registering it is
	// legal, drawing it is not.
	broken := metadata.GeometryHandles{
		VertexArray:  metadata.InvalidHandleName - 1,
		VertexBuffer: metadata.InvalidHandleName,
		IndexBuffer:  metadata.InvalidHandleName - 2,
	}
	idx, err = sm.Geometry().Register(broken, 36, true, 24)
	if err != nil {
		return err
	}
	state.broken = idx
	if sm.Geometry().IsDefined(state.broken) {
		return fmt.Errorf("geometry %d should not be defined", state.broken)
	}
	if _, err := sm.AddInstance(state.broken, math.NewRigidTransformIdentity(), math.NewVec3One(), metadata.ShaderBinding{}, metadata.ShaderBinding{}, metadata.ShaderBinding{}); err == nil {
		return fmt.Errorf("instance of undefined geometry %d was accepted", state.broken)
	}

	floorPose := math.NewRigidTransform(
		math.NewQuatFromAxisAngle(math.NewVec3(1, 0, 0), math.DegToRad(-60), true),
		math.NewVec3(0, -1, -1),
	)
	c, d, l := bindings(color.RGBA{R: 90, G: 90, B: 90, A: 255}, 1)
	floor, err := sm.AddInstance(state.plane, floorPose, math.NewVec3One(), c, d, l)
	if err != nil {
		return err
	}

	cubePose := math.NewRigidTransform(
		math.NewQuatFromAxisAngle(math.NewVec3(0, 1, 0), math.DegToRad(30), true),
		math.NewVec3(-1.5, 0, 0),
	)
	c, d, l = bindings(color.RGBA{R: 220, G: 60, B: 40, A: 255}, 2)
	left, err := sm.AddInstance(state.cube, cubePose, math.NewVec3(1, 2, 1), c, d, l)
	if err != nil {
		return err
	}

	// Mirrored on x: same pose on the other side, reversed winding.
	mirrorPose := math.NewRigidTransformFromTranslation(math.NewVec3(1.5, 0, 0))
	c, d, l = bindings(color.RGBA{R: 40, G: 120, B: 220, A: 255}, 3)
	right, err := sm.AddInstance(state.cube, mirrorPose, math.NewVec3(-1, 1, 1), c, d, l)
	if err != nil {
		return err
	}

	state.instances = []*metadata.SceneInstance{floor, left, right}
	core.LogInfo("testbed scene ready: %d instances, mirrored instance flips winding: %t", len(state.instances), right.FlipsWinding())
	return nil
}

func (g *TestGame) Render(frame *engine.Frame) error {
	state := g.State.(*gameState)
	state.frames++

	var hits int
	for _, v := range frame.Depth.Data() {
		if !sensors.Depth32F().IsSentinel(v) {
			hits++
		}
	}
	core.LogInfo("frame %d: %d draws per pass, %d/%d depth pixels in range",
		frame.Number, len(frame.Draws[metadata.RenderTypeColor]), hits, frame.Depth.Size())

	if state.outputDir == "" {
		return nil
	}
	return writeFrame(state.outputDir, frame)
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	core.LogInfo("testbed shutting down after %d frames", state.frames)
	return nil
}

func writeFrame(dir string, frame *engine.Frame) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	colorImg, err := sensors.ToStdImage(frame.Color)
	if err != nil {
		return err
	}
	if err := writePNG(filepath.Join(dir, fmt.Sprintf("color_%04d.png", frame.Number)), colorImg); err != nil {
		return err
	}

	depth16, err := sensors.NewImage(sensors.Depth16U().Traits(), frame.Depth.Width(), frame.Depth.Height())
	if err != nil {
		return err
	}
	if err := sensors.ConvertDepth32FTo16U(frame.Depth, depth16); err != nil {
		return err
	}
	depthImg, err := sensors.ToStdImage(depth16)
	if err != nil {
		return err
	}
	if err := writePNG(filepath.Join(dir, fmt.Sprintf("depth_%04d.png", frame.Number)), depthImg); err != nil {
		return err
	}

	thumb, err := sensors.Scale(frame.Color, max(1, frame.Color.Width()/4), max(1, frame.Color.Height()/4), draw.ApproxBiLinear)
	if err != nil {
		return err
	}
	return writePNG(filepath.Join(dir, fmt.Sprintf("thumb_%04d.png", frame.Number)), thumb)
}

func writePNG(path string, img draw.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	core.LogDebug("wrote %s", path)
	return f.Close()
}
