package testbed

import (
	"fmt"
	"image/color"
	stdmath "math"

	"golang.org/x/image/math/f32"

	"github.com/spaghettifunk/lumen/engine"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

// PointRenderer is a CPU stand-in for the GPU passes: it splats every
// transformed vertex of a draw item into the frame with an orthographic
// camera on the +Z axis looking at the origin.
type PointRenderer struct {
	// vertex data per registry index, kept CPU side for the splat
	geometries map[int]*metadata.GeometryConfig
	cameraZ    float32
	viewWidth  float32
	// nearest depth splatted so far in the current pass
	zbuf []float32
}

func NewPointRenderer(cameraZ, viewWidth float32) *PointRenderer {
	return &PointRenderer{
		geometries: make(map[int]*metadata.GeometryConfig),
		cameraZ:    cameraZ,
		viewWidth:  viewWidth,
	}
}

// Track remembers the vertices uploaded under a registry index.
func (pr *PointRenderer) Track(index int, config *metadata.GeometryConfig) {
	pr.geometries[index] = config
}

func (pr *PointRenderer) RenderPass(rt metadata.RenderType, items []metadata.DrawItem, frame *engine.Frame) error {
	w, h := frame.Depth.Width(), frame.Depth.Height()
	pixelsPerUnit := float32(w) / pr.viewWidth
	pr.resetDepth(w * h)

	for _, item := range items {
		config, ok := pr.geometries[item.GeometryIndex]
		if !ok {
			return fmt.Errorf("no vertex data for geometry %d", item.GeometryIndex)
		}
		model := item.Model.F32()
		for _, v := range config.Vertices {
			p := transform(model, v.Position.X, v.Position.Y, v.Position.Z)
			x := int(p[0]*pixelsPerUnit) + w/2
			y := h/2 - int(p[1]*pixelsPerUnit)
			depth := pr.cameraZ - p[2]
			if x < 0 || x >= w || y < 0 || y >= h {
				continue
			}
			// every pass depth tests against its own buffer, so pass order
			// does not matter
			if depth > pr.zbuf[y*w+x] {
				continue
			}
			pr.zbuf[y*w+x] = depth
			switch rt {
			case metadata.RenderTypeColor:
				c, _ := item.Binding.Data.(color.RGBA)
				frame.Color.Set(x, y, c.R, c.G, c.B, c.A)
			case metadata.RenderTypeLabel:
				label, _ := item.Binding.Data.(int16)
				frame.Label.Set(x, y, label)
			case metadata.RenderTypeDepth:
				frame.Depth.Set(x, y, depth)
			}
		}
	}
	return nil
}

func (pr *PointRenderer) resetDepth(n int) {
	if cap(pr.zbuf) < n {
		pr.zbuf = make([]float32, n)
	}
	pr.zbuf = pr.zbuf[:n]
	inf := float32(stdmath.Inf(1))
	for i := range pr.zbuf {
		pr.zbuf[i] = inf
	}
}

func transform(m f32.Mat4, x, y, z float32) f32.Vec3 {
	return f32.Vec3{
		m[0]*x + m[1]*y + m[2]*z + m[3],
		m[4]*x + m[5]*y + m[6]*z + m[7],
		m[8]*x + m[9]*y + m[10]*z + m[11],
	}
}
