package sensors

import (
	"fmt"
	"image"
	stdmath "math"

	"golang.org/x/image/draw"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
)

func sameSize[S, D Channel](src *Image[S], dst *Image[D]) error {
	if src.width != dst.width || src.height != dst.height {
		return fmt.Errorf("%w: size mismatch %dx%d vs %dx%d", core.ErrInvalidArgument, src.width, src.height, dst.width, dst.height)
	}
	return nil
}

// ConvertDepth32FTo16U converts metres to millimetres. Sentinels map to
// sentinels; readings beyond what 16 bits can hold become TooFar. Positive
// readings under a millimetre become 1 so they never read as TooClose.
func ConvertDepth32FTo16U(src *Image[float32], dst *Image[uint16]) error {
	if err := sameSize(src, dst); err != nil {
		return err
	}
	for i, v := range src.data {
		switch {
		case v == depth32F.tooClose || v < 0:
			dst.data[i] = depth16U.tooClose
		case v == depth32F.tooFar || stdmath.IsNaN(float64(v)):
			dst.data[i] = depth16U.tooFar
		default:
			mm := math.Clamp(float64(v)*1000.0, 1, float64(depth16U.tooFar))
			dst.data[i] = uint16(mm)
		}
	}
	return nil
}

// ConvertDepth16UTo32F converts millimetres to metres, mapping the 16 bit
// sentinels onto the float ones.
func ConvertDepth16UTo32F(src *Image[uint16], dst *Image[float32]) error {
	if err := sameSize(src, dst); err != nil {
		return err
	}
	for i, v := range src.data {
		switch v {
		case depth16U.tooClose:
			dst.data[i] = depth32F.tooClose
		case depth16U.tooFar:
			dst.data[i] = depth32F.tooFar
		default:
			dst.data[i] = float32(v) / 1000.0
		}
	}
	return nil
}

// ClassifyDepth replaces every reading of img outside [minRange, maxRange]
// with the matching sentinel.
func ClassifyDepth[T DepthChannel](traits DepthTraits[T], img *Image[T], minRange, maxRange T) error {
	if img.desc != traits.traits.desc {
		return fmt.Errorf("%w: %s image classified as %s", core.ErrInvalidArgument, img.desc.Type, traits)
	}
	for i, v := range img.data {
		img.data[i] = traits.Classify(v, minRange, maxRange)
	}
	return nil
}

// ToStdImage copies img into a standard library image. Colour layouts
// become *image.RGBA (opaque when there is no alpha channel), Grey8U
// becomes *image.Gray and Depth16U *image.Gray16. Other layouts have no
// lossless standard equivalent and return an error.
func ToStdImage[T Channel](img *Image[T]) (draw.Image, error) {
	rect := image.Rect(0, 0, img.width, img.height)
	switch data := any(img.data).(type) {
	case []uint8:
		switch img.desc.Type {
		case PixelTypeGrey8U:
			out := image.NewGray(rect)
			copy(out.Pix, data)
			return out, nil
		case PixelTypeRgb8U, PixelTypeBgr8U, PixelTypeRgba8U, PixelTypeBgra8U:
			out := image.NewRGBA(rect)
			ch := img.desc.Channels
			for p := 0; p < img.Size(); p++ {
				in := data[p*ch : p*ch+ch]
				r, g, b := in[0], in[1], in[2]
				if img.desc.Format == PixelFormatBgr || img.desc.Format == PixelFormatBgra {
					r, b = b, r
				}
				a := uint8(0xff)
				if ch == 4 {
					a = in[3]
				}
				out.Pix[p*4+0], out.Pix[p*4+1], out.Pix[p*4+2], out.Pix[p*4+3] = r, g, b, a
			}
			return out, nil
		}
	case []uint16:
		if img.desc.Type == PixelTypeDepth16U {
			out := image.NewGray16(rect)
			for p, v := range data {
				out.Pix[p*2+0] = uint8(v >> 8)
				out.Pix[p*2+1] = uint8(v)
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %s has no standard image equivalent", core.ErrInvalidArgument, img.desc.Type)
}

// Scale resizes img into a width x height standard image using interp.
// Depth and label values are identifiers or measurements that must not be
// blended, so those formats only accept draw.NearestNeighbor.
func Scale[T Channel](img *Image[T], width, height int, interp draw.Interpolator) (draw.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target size must be positive, got %dx%d", core.ErrInvalidArgument, width, height)
	}
	if (img.desc.Format == PixelFormatDepth || img.desc.Format == PixelFormatLabel) && interp != draw.NearestNeighbor {
		return nil, fmt.Errorf("%w: %s images can only be scaled with nearest neighbour", core.ErrInvalidArgument, img.desc.Type)
	}
	src, err := ToStdImage(img)
	if err != nil {
		return nil, err
	}
	rect := image.Rect(0, 0, width, height)
	var dst draw.Image
	switch src.(type) {
	case *image.Gray:
		dst = image.NewGray(rect)
	case *image.Gray16:
		dst = image.NewGray16(rect)
	default:
		dst = image.NewRGBA(rect)
	}
	interp.Scale(dst, rect, src, src.Bounds(), draw.Src, nil)
	return dst, nil
}
