package sensors

import (
	"fmt"

	"github.com/spaghettifunk/lumen/engine/core"
)

// Image is a captured frame whose channels are stored as T, interleaved
// per pixel in row-major order.
type Image[T Channel] struct {
	desc   PixelDescriptor
	width  int
	height int
	data   []T
}

// NewImage allocates a zeroed width x height image of the given traits.
func NewImage[T Channel](traits Traits[T], width, height int) (*Image[T], error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: image size must be non-negative, got %dx%d", core.ErrInvalidArgument, width, height)
	}
	desc := traits.desc
	if desc.Deprecated || desc.Channels < 1 {
		return nil, fmt.Errorf("%w: cannot allocate %s images", core.ErrInvalidArgument, desc.Type)
	}
	return &Image[T]{
		desc:   desc,
		width:  width,
		height: height,
		data:   make([]T, width*height*desc.Channels),
	}, nil
}

func (img *Image[T]) Width() int { return img.width }

func (img *Image[T]) Height() int { return img.height }

func (img *Image[T]) Descriptor() PixelDescriptor { return img.desc }

// Size is the number of pixels.
func (img *Image[T]) Size() int { return img.width * img.height }

// ByteSize is the storage the pixels occupy: channels x scalar width x
// pixels.
func (img *Image[T]) ByteSize() int { return img.desc.BufferSize(img.width, img.height) }

// Data exposes the interleaved channel storage.
func (img *Image[T]) Data() []T { return img.data }

func (img *Image[T]) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < img.width && y < img.height
}

func (img *Image[T]) offset(x, y int) int {
	return (y*img.width + x) * img.desc.Channels
}

// At returns the channels of pixel (x, y) as a view into the image, or
// nil when the pixel is out of bounds.
func (img *Image[T]) At(x, y int) []T {
	if !img.inBounds(x, y) {
		return nil
	}
	o := img.offset(x, y)
	return img.data[o : o+img.desc.Channels : o+img.desc.Channels]
}

// Set writes pixel (x, y). It panics if len(pixel) differs from the
// channel count; out of bounds writes are ignored.
func (img *Image[T]) Set(x, y int, pixel ...T) {
	if len(pixel) != img.desc.Channels {
		panic(fmt.Sprintf("sensors: %s pixel has %d channels, got %d", img.desc.Type, img.desc.Channels, len(pixel)))
	}
	if !img.inBounds(x, y) {
		return
	}
	copy(img.data[img.offset(x, y):], pixel)
}

// Fill sets every pixel to pixel.
func (img *Image[T]) Fill(pixel ...T) {
	if len(pixel) != img.desc.Channels {
		panic(fmt.Sprintf("sensors: %s pixel has %d channels, got %d", img.desc.Type, img.desc.Channels, len(pixel)))
	}
	for o := 0; o < len(img.data); o += img.desc.Channels {
		copy(img.data[o:], pixel)
	}
}

// Equal reports whether both images have the same type, size and data.
func (img *Image[T]) Equal(other *Image[T]) bool {
	if img.desc != other.desc || img.width != other.width || img.height != other.height {
		return false
	}
	for i := range img.data {
		if img.data[i] != other.data[i] {
			return false
		}
	}
	return true
}
