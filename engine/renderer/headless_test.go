package renderer

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

func triangle(texCoords bool) *metadata.GeometryConfig {
	return &metadata.GeometryConfig{
		Vertices: []math.Vertex3D{
			{Position: math.NewVec3(0, 0, 0)},
			{Position: math.NewVec3(1, 0, 0)},
			{Position: math.NewVec3(0, 1, 0)},
		},
		Indices:      []uint32{0, 1, 2},
		HasTexCoords: texCoords,
		Name:         "triangle",
	}
}

func TestHeadlessCreateGeometry(t *testing.T) {
	hc := NewHeadlessContext()
	a, err := hc.CreateGeometry(triangle(false))
	if err != nil {
		t.Fatal(err)
	}
	b, err := hc.CreateGeometry(triangle(true))
	if err != nil {
		t.Fatal(err)
	}

	names := map[uint32]bool{}
	for _, n := range []uint32{a.VertexArray, a.VertexBuffer, a.IndexBuffer, b.VertexArray, b.VertexBuffer, b.IndexBuffer} {
		if n == 0 || n == metadata.InvalidHandleName || names[n] {
			t.Errorf("bad or duplicate name %d", n)
		}
		names[n] = true
	}
	if !hc.Live(a) || !hc.Live(b) {
		t.Error("created geometry is not live")
	}

	hc.DestroyGeometry(a)
	if hc.Live(a) || !hc.Live(b) {
		t.Error("DestroyGeometry released the wrong objects")
	}
}

func TestHeadlessRejectsBadConfigs(t *testing.T) {
	hc := NewHeadlessContext()
	if h, err := hc.CreateGeometry(nil); !errors.Is(err, core.ErrInvalidArgument) || h != metadata.InvalidGeometryHandles {
		t.Errorf("nil config: %+v, %v", h, err)
	}
	config := triangle(false)
	config.Indices = config.Indices[:2]
	if _, err := hc.CreateGeometry(config); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("two indices: %v", err)
	}
}

func TestHeadlessCheckRecord(t *testing.T) {
	hc := NewHeadlessContext()
	h, err := hc.CreateGeometry(triangle(true))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		handles     metadata.GeometryHandles
		indexCount  int
		texCoords   bool
		vertexCount int
		wantErr     bool
	}{
		{"matching", h, 3, true, 3, false},
		{"wrong vertex count", h, 3, true, 4, true},
		{"wrong index count", h, 6, true, 3, true},
		{"wrong texcoords", h, 3, false, 3, true},
		{"unknown buffer", metadata.GeometryHandles{VertexArray: h.VertexArray, VertexBuffer: 999, IndexBuffer: h.IndexBuffer}, 3, true, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := metadata.NewGeometryRecord(tt.handles, tt.indexCount, tt.texCoords, tt.vertexCount)
			if err != nil {
				t.Fatal(err)
			}
			if err := hc.CheckRecord(record); tt.wantErr != (err != nil) {
				t.Errorf("CheckRecord = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestHeadlessReset(t *testing.T) {
	hc := NewHeadlessContext()
	before, _ := hc.CreateGeometry(triangle(false))
	gen := hc.Generation()

	hc.Reset()
	if hc.Generation() != gen+1 {
		t.Errorf("generation = %d, want %d", hc.Generation(), gen+1)
	}
	if hc.Live(before) {
		t.Error("objects survived a reset")
	}
	after, _ := hc.CreateGeometry(triangle(false))
	if after.VertexArray <= before.IndexBuffer {
		t.Errorf("names reused across generations: %+v after %+v", after, before)
	}
}
