// Package sensors describes the pixel layouts of the images a renderer
// captures: how many channels a pixel has, what scalar each channel is
// stored in, what the channels mean and, for depth images, which values
// mark readings outside the sensing range.
package sensors

import "fmt"

// PixelType names a complete pixel layout. The naming rule is
// PixelType + format + bits per channel + channel kind, where the kind is
// U (unsigned int), I (signed int) or F (float).
type PixelType int

const (
	PixelTypeRgb8U PixelType = iota
	PixelTypeBgr8U
	PixelTypeRgba8U
	PixelTypeBgra8U
	PixelTypeGrey8U
	PixelTypeDepth16U
	PixelTypeDepth32F
	PixelTypeLabel16I
	// Deprecated: symbolic pixels are no longer supported. The value is
	// kept so old data can still be printed; do not add new consumers.
	PixelTypeExpr

	numPixelTypes int = iota
)

// PixelFormat is the meaning of a pixel's channels and, for multi-channel
// pixels, their order.
type PixelFormat int

const (
	PixelFormatRgb PixelFormat = iota
	PixelFormatBgr
	PixelFormatRgba
	PixelFormatBgra
	PixelFormatGrey
	PixelFormatDepth
	PixelFormatLabel
	// Deprecated: see PixelTypeExpr.
	PixelFormatExpr
)

// PixelScalar is the storage type of a single channel.
type PixelScalar int

const (
	PixelScalarU8 PixelScalar = iota
	PixelScalarI16
	PixelScalarU16
	PixelScalarF32

	// noScalar marks the deprecated symbolic layout, which has no fixed
	// storage type.
	noScalar PixelScalar = -1
)

func (t PixelType) String() string {
	switch t {
	case PixelTypeRgb8U:
		return "Rgb8U"
	case PixelTypeBgr8U:
		return "Bgr8U"
	case PixelTypeRgba8U:
		return "Rgba8U"
	case PixelTypeBgra8U:
		return "Bgra8U"
	case PixelTypeGrey8U:
		return "Grey8U"
	case PixelTypeDepth16U:
		return "Depth16U"
	case PixelTypeDepth32F:
		return "Depth32F"
	case PixelTypeLabel16I:
		return "Label16I"
	case PixelTypeExpr:
		return "Expr"
	}
	return fmt.Sprintf("PixelType(%d)", int(t))
}

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRgb:
		return "Rgb"
	case PixelFormatBgr:
		return "Bgr"
	case PixelFormatRgba:
		return "Rgba"
	case PixelFormatBgra:
		return "Bgra"
	case PixelFormatGrey:
		return "Grey"
	case PixelFormatDepth:
		return "Depth"
	case PixelFormatLabel:
		return "Label"
	case PixelFormatExpr:
		return "Expr"
	}
	return fmt.Sprintf("PixelFormat(%d)", int(f))
}

func (s PixelScalar) String() string {
	switch s {
	case PixelScalarU8:
		return "8U"
	case PixelScalarI16:
		return "16I"
	case PixelScalarU16:
		return "16U"
	case PixelScalarF32:
		return "32F"
	case noScalar:
		return "none"
	}
	return fmt.Sprintf("PixelScalar(%d)", int(s))
}

// Width returns the size of one channel in bytes, or 0 for noScalar.
func (s PixelScalar) Width() int {
	switch s {
	case PixelScalarU8:
		return 1
	case PixelScalarI16, PixelScalarU16:
		return 2
	case PixelScalarF32:
		return 4
	}
	return 0
}

// IsValid reports whether t is one of the declared pixel types.
func (t PixelType) IsValid() bool {
	return t >= 0 && int(t) < numPixelTypes
}

// PixelTypes returns every supported pixel type, excluding the
// deprecated symbolic one.
func PixelTypes() []PixelType {
	out := make([]PixelType, 0, numPixelTypes)
	for t := PixelType(0); int(t) < numPixelTypes; t++ {
		if !descriptors[t].Deprecated {
			out = append(out, t)
		}
	}
	return out
}
