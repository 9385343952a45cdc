package sensors

import (
	"math"
)

// PixelDescriptor is the static description of one pixel type.
type PixelDescriptor struct {
	Type     PixelType
	Channels int
	Scalar   PixelScalar
	Format   PixelFormat
	// Deprecated is set only for PixelTypeExpr, which has no storage
	// size and must not be used to allocate images.
	Deprecated bool
}

// BytesPerPixel is Channels times the scalar width; 0 for the
// deprecated symbolic layout.
func (d PixelDescriptor) BytesPerPixel() int {
	return d.Channels * d.Scalar.Width()
}

// BufferSize returns the number of bytes a width x height image needs.
func (d PixelDescriptor) BufferSize(width, height int) int {
	return d.BytesPerPixel() * width * height
}

func (d PixelDescriptor) IsDepth() bool { return d.Format == PixelFormatDepth }

func (d PixelDescriptor) String() string {
	return d.Type.String()
}

// descriptors is indexed by PixelType and must have exactly one entry per
// enumerator.
var descriptors = [...]PixelDescriptor{
	PixelTypeRgb8U:    {Type: PixelTypeRgb8U, Channels: 3, Scalar: PixelScalarU8, Format: PixelFormatRgb},
	PixelTypeBgr8U:    {Type: PixelTypeBgr8U, Channels: 3, Scalar: PixelScalarU8, Format: PixelFormatBgr},
	PixelTypeRgba8U:   {Type: PixelTypeRgba8U, Channels: 4, Scalar: PixelScalarU8, Format: PixelFormatRgba},
	PixelTypeBgra8U:   {Type: PixelTypeBgra8U, Channels: 4, Scalar: PixelScalarU8, Format: PixelFormatBgra},
	PixelTypeGrey8U:   {Type: PixelTypeGrey8U, Channels: 1, Scalar: PixelScalarU8, Format: PixelFormatGrey},
	PixelTypeDepth16U: {Type: PixelTypeDepth16U, Channels: 1, Scalar: PixelScalarU16, Format: PixelFormatDepth},
	PixelTypeDepth32F: {Type: PixelTypeDepth32F, Channels: 1, Scalar: PixelScalarF32, Format: PixelFormatDepth},
	PixelTypeLabel16I: {Type: PixelTypeLabel16I, Channels: 1, Scalar: PixelScalarI16, Format: PixelFormatLabel},
	PixelTypeExpr:     {Type: PixelTypeExpr, Channels: 1, Scalar: noScalar, Format: PixelFormatExpr, Deprecated: true},
}

// Adding a PixelType without a descriptor (or the reverse) makes this
// constant index fall outside [0, 1) and the package stops compiling.
var _ = [1]struct{}{}[len(descriptors)-numPixelTypes]

// DescriptorOf returns the descriptor of t. t must be a declared pixel
// type; any other value panics like an out of range index.
func DescriptorOf(t PixelType) PixelDescriptor {
	return descriptors[t]
}

// Channel is the set of Go types a pixel channel is stored in.
type Channel interface {
	~uint8 | ~int16 | ~uint16 | ~float32
}

// DepthChannel is the set of channel types depth images use.
type DepthChannel interface {
	~uint16 | ~float32
}

// Traits ties a pixel type to the Go type of its channels. The fields are
// unexported: the only usable values are the ones returned by Rgb8U,
// Bgr8U and the other trait functions below. The zero value describes no
// pixel type and is rejected by NewImage.
type Traits[T Channel] struct {
	desc PixelDescriptor
}

func (t Traits[T]) Descriptor() PixelDescriptor { return t.desc }

// BufferSize returns the number of bytes a width x height image needs.
func (t Traits[T]) BufferSize(width, height int) int { return t.desc.BufferSize(width, height) }

func (t Traits[T]) String() string { return t.desc.String() }

// DepthTraits adds the out-of-range sentinels. Non-depth traits have no
// such accessors, so asking a colour or label type for them does not
// compile. TooClose is zero for every depth type, never negative
// infinity.
type DepthTraits[T DepthChannel] struct {
	traits   Traits[T]
	tooClose T
	tooFar   T
}

// Traits returns the channel traits, for allocating images.
func (d DepthTraits[T]) Traits() Traits[T] { return d.traits }

func (d DepthTraits[T]) Descriptor() PixelDescriptor { return d.traits.desc }

func (d DepthTraits[T]) BufferSize(width, height int) int { return d.traits.BufferSize(width, height) }

func (d DepthTraits[T]) String() string { return d.traits.String() }

// TooClose is stored when the minimum sensing range is exceeded.
func (d DepthTraits[T]) TooClose() T { return d.tooClose }

// TooFar is stored when the maximum sensing range is exceeded.
func (d DepthTraits[T]) TooFar() T { return d.tooFar }

// Classify maps a raw reading against the sensing range [minRange,
// maxRange], replacing out-of-range values with the sentinels. A NaN
// reading is no measurement at all and becomes TooFar.
func (d DepthTraits[T]) Classify(v, minRange, maxRange T) T {
	switch {
	case isNaN(v):
		return d.tooFar
	case v < minRange:
		return d.tooClose
	case v > maxRange:
		return d.tooFar
	}
	return v
}

// IsSentinel reports whether v is TooClose or TooFar.
func (d DepthTraits[T]) IsSentinel(v T) bool {
	return v == d.tooClose || v == d.tooFar
}

// isNaN is always false for integer channels.
func isNaN[T DepthChannel](v T) bool {
	return v != v
}

var (
	rgb8U    = Traits[uint8]{descriptors[PixelTypeRgb8U]}
	bgr8U    = Traits[uint8]{descriptors[PixelTypeBgr8U]}
	rgba8U   = Traits[uint8]{descriptors[PixelTypeRgba8U]}
	bgra8U   = Traits[uint8]{descriptors[PixelTypeBgra8U]}
	grey8U   = Traits[uint8]{descriptors[PixelTypeGrey8U]}
	label16I = Traits[int16]{descriptors[PixelTypeLabel16I]}

	depth16U = DepthTraits[uint16]{
		traits:   Traits[uint16]{descriptors[PixelTypeDepth16U]},
		tooClose: 0,
		tooFar:   math.MaxUint16,
	}
	depth32F = DepthTraits[float32]{
		traits:   Traits[float32]{descriptors[PixelTypeDepth32F]},
		tooClose: 0,
		tooFar:   float32(math.Inf(1)),
	}
)

// The trait functions return copies of the process-wide table entries.

func Rgb8U() Traits[uint8] { return rgb8U }
func Bgr8U() Traits[uint8] { return bgr8U }
func Rgba8U() Traits[uint8] { return rgba8U }
func Bgra8U() Traits[uint8] { return bgra8U }
func Grey8U() Traits[uint8] { return grey8U }
func Label16I() Traits[int16] { return label16I }

func Depth16U() DepthTraits[uint16] { return depth16U }
func Depth32F() DepthTraits[float32] { return depth32F }
