package systems

import (
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

func nonZero(name string, v float32) float32 {
	if v == 0 {
		core.LogWarn("%s must be nonzero. Defaulting to one.", name)
		return 1.0
	}
	return v
}

/**
 * @brief Generates configuration for plane geometries in the XY plane,
 * facing +Z.
 *
 * @param width The overall width of the plane. Must be non-zero.
 * @param height The overall height of the plane. Must be non-zero.
 * @param xSegmentCount The number of segments along the x-axis. Must be non-zero.
 * @param ySegmentCount The number of segments along the y-axis. Must be non-zero.
 * @param tileX The number of times the texture tiles across the x-axis. Must be non-zero.
 * @param tileY The number of times the texture tiles across the y-axis. Must be non-zero.
 * @param name The name of the generated geometry.
 */
func GeneratePlaneConfig(width, height float32, xSegmentCount, ySegmentCount uint32, tileX, tileY float32, name string) *metadata.GeometryConfig {
	width = nonZero("Width", width)
	height = nonZero("Height", height)
	tileX = nonZero("tileX", tileX)
	tileY = nonZero("tileY", tileY)
	if xSegmentCount < 1 {
		core.LogWarn("xSegmentCount must be a positive number. Defaulting to one.")
		xSegmentCount = 1
	}
	if ySegmentCount < 1 {
		core.LogWarn("ySegmentCount must be a positive number. Defaulting to one.")
		ySegmentCount = 1
	}

	config := &metadata.GeometryConfig{
		Vertices:     make([]math.Vertex3D, xSegmentCount*ySegmentCount*4), // 4 verts per segment
		Indices:      make([]uint32, xSegmentCount*ySegmentCount*6),        // 6 indices per segment
		HasTexCoords: true,
		Name:         name,
	}

	segWidth := width / float32(xSegmentCount)
	segHeight := height / float32(ySegmentCount)
	halfWidth := width * 0.5
	halfHeight := height * 0.5
	normal := math.NewVec3(0, 0, 1)
	for y := uint32(0); y < ySegmentCount; y++ {
		for x := uint32(0); x < xSegmentCount; x++ {
			minX := float32(x)*segWidth - halfWidth
			minY := float32(y)*segHeight - halfHeight
			maxX := minX + segWidth
			maxY := minY + segHeight
			minU := float32(x) / float32(xSegmentCount) * tileX
			minV := float32(y) / float32(ySegmentCount) * tileY
			maxU := float32(x+1) / float32(xSegmentCount) * tileX
			maxV := float32(y+1) / float32(ySegmentCount) * tileY

			vOffset := (y*xSegmentCount + x) * 4
			v := config.Vertices[vOffset : vOffset+4]
			v[0] = math.Vertex3D{Position: math.NewVec3(minX, minY, 0), Normal: normal, Texcoord: math.Vec2{X: minU, Y: minV}}
			v[1] = math.Vertex3D{Position: math.NewVec3(maxX, maxY, 0), Normal: normal, Texcoord: math.Vec2{X: maxU, Y: maxV}}
			v[2] = math.Vertex3D{Position: math.NewVec3(minX, maxY, 0), Normal: normal, Texcoord: math.Vec2{X: minU, Y: maxV}}
			v[3] = math.Vertex3D{Position: math.NewVec3(maxX, minY, 0), Normal: normal, Texcoord: math.Vec2{X: maxU, Y: minV}}

			iOffset := (y*xSegmentCount + x) * 6
			writeQuadIndices(config.Indices[iOffset:iOffset+6], vOffset)
		}
	}

	config.Extents = math.Extents3D{
		Min: math.NewVec3(-halfWidth, -halfHeight, 0),
		Max: math.NewVec3(halfWidth, halfHeight, 0),
	}
	if len(config.Name) == 0 {
		config.Name = metadata.DefaultGeometryName
	}
	return config
}

// cubeFaces lists, per face, the outward normal and the four corners of
// a unit box in the order writeQuadIndices expects.
var cubeFaces = [6]struct {
	normal  math.Vec3
	corners [4]math.Vec3
}{
	// front
	{math.Vec3{Z: 1}, [4]math.Vec3{{X: -1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: 1}}},
	// back
	{math.Vec3{Z: -1}, [4]math.Vec3{{X: 1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: -1}}},
	// left
	{math.Vec3{X: -1}, [4]math.Vec3{{X: -1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: 1}}},
	// right
	{math.Vec3{X: 1}, [4]math.Vec3{{X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: -1}}},
	// bottom
	{math.Vec3{Y: -1}, [4]math.Vec3{{X: 1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}}},
	// top
	{math.Vec3{Y: 1}, [4]math.Vec3{{X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1}}},
}

/**
 * @brief Generates configuration for an axis-aligned box centred on the
 * origin: 4 vertices and 6 indices per face.
 *
 * @param width The size along x. Must be non-zero.
 * @param height The size along y. Must be non-zero.
 * @param depth The size along z. Must be non-zero.
 * @param tileX The number of times the texture tiles across each face horizontally.
 * @param tileY The number of times the texture tiles across each face vertically.
 * @param name The name of the generated geometry.
 */
func GenerateCubeConfig(width, height, depth, tileX, tileY float32, name string) *metadata.GeometryConfig {
	width = nonZero("Width", width)
	height = nonZero("Height", height)
	depth = nonZero("Depth", depth)
	tileX = nonZero("tileX", tileX)
	tileY = nonZero("tileY", tileY)

	half := math.NewVec3(width*0.5, height*0.5, depth*0.5)
	uvs := [4]math.Vec2{{X: 0, Y: 0}, {X: tileX, Y: tileY}, {X: 0, Y: tileY}, {X: tileX, Y: 0}}

	config := &metadata.GeometryConfig{
		Vertices:     make([]math.Vertex3D, 4*len(cubeFaces)),
		Indices:      make([]uint32, 6*len(cubeFaces)),
		HasTexCoords: true,
		Name:         name,
		Extents:      math.Extents3D{Min: half.MulScalar(-1), Max: half},
	}
	for f, face := range cubeFaces {
		for c, corner := range face.corners {
			config.Vertices[f*4+c] = math.Vertex3D{
				Position: corner.Mul(half),
				Normal:   face.normal,
				Texcoord: uvs[c],
			}
		}
		writeQuadIndices(config.Indices[f*6:f*6+6], uint32(f*4))
	}

	if len(config.Name) == 0 {
		config.Name = metadata.DefaultGeometryName
	}
	return config
}

func writeQuadIndices(dst []uint32, base uint32) {
	dst[0] = base + 0
	dst[1] = base + 1
	dst[2] = base + 2
	dst[3] = base + 0
	dst[4] = base + 3
	dst[5] = base + 1
}
