package renderer

import "github.com/spaghettifunk/lumen/engine/renderer/metadata"

// GraphicsContext is the part of a graphics API the resource model
// consumes: uploading meshes and releasing them. Implementations are not
// safe for concurrent use; every call must come from the thread that owns
// the context.
type GraphicsContext interface {
	// CreateGeometry uploads config and returns the names of the vertex
	// array, vertex buffer and index buffer objects holding it.
	CreateGeometry(config *metadata.GeometryConfig) (metadata.GeometryHandles, error)
	// DestroyGeometry releases objects returned by CreateGeometry.
	// Invalid names are ignored.
	DestroyGeometry(handles metadata.GeometryHandles)
	// Generation changes every time the context is destroyed or reset.
	// Names obtained under an older generation are meaningless.
	Generation() uint64
}
