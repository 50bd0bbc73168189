package encode

import (
	"errors"
	"fmt"
	"image"
)

var (
	ErrUnsupportedColor = errors.New("unsupported color format")
	ErrBufferSize       = errors.New("pixel buffer does not match image size")
)

// ColorFormat describes the layout of a raw pixel buffer. Samples are
// interleaved per pixel; 16-bit samples are big-endian.
type ColorFormat int

const (
	L8 ColorFormat = iota
	L16
	LA8
	LA16
	RGB8
	RGB16
	RGBA8
	RGBA16
	// Formats below have no PNG equivalent.
	RGB32F
	RGBA32F
	BGR8
	BGRA8
)

var formatNames = map[ColorFormat]string{
	L8:      "L8",
	L16:     "L16",
	LA8:     "LA8",
	LA16:    "LA16",
	RGB8:    "RGB8",
	RGB16:   "RGB16",
	RGBA8:   "RGBA8",
	RGBA16:  "RGBA16",
	RGB32F:  "RGB32F",
	RGBA32F: "RGBA32F",
	BGR8:    "BGR8",
	BGRA8:   "BGRA8",
}

func (f ColorFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("ColorFormat(%d)", int(f))
}

// ColorType is the PNG IHDR color type code.
type ColorType uint8

const (
	Grayscale      ColorType = 0
	Truecolor      ColorType = 2
	GrayscaleAlpha ColorType = 4
	TruecolorAlpha ColorType = 6
)

type layout struct {
	colorType ColorType
	bitDepth  uint8
}

var layouts = map[ColorFormat]layout{
	L8:     {Grayscale, 8},
	L16:    {Grayscale, 16},
	LA8:    {GrayscaleAlpha, 8},
	LA16:   {GrayscaleAlpha, 16},
	RGB8:   {Truecolor, 8},
	RGB16:  {Truecolor, 16},
	RGBA8:  {TruecolorAlpha, 8},
	RGBA16: {TruecolorAlpha, 16},
}

// Layout returns the nominal color type and bit depth of a pixel buffer in
// format f. The written IHDR can differ: LA formats are widened to
// TruecolorAlpha and an opaque RGBA image is written as Truecolor.
func (f ColorFormat) Layout() (ColorType, uint8, error) {
	l, ok := layouts[f]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnsupportedColor, f)
	}
	return l.colorType, l.bitDepth, nil
}

// BytesPerPixel returns the buffer stride of one pixel.
func (f ColorFormat) BytesPerPixel() (int, error) {
	ct, depth, err := f.Layout()
	if err != nil {
		return 0, err
	}

	channels := map[ColorType]int{Grayscale: 1, GrayscaleAlpha: 2, Truecolor: 3, TruecolorAlpha: 4}[ct]
	return channels * int(depth) / 8, nil
}

// newImage wraps pix in the image type the PNG codec writes with the
// matching bit depth. The codec has no gray+alpha image type, so LA
// formats widen to RGBA; it also drops a fully opaque alpha channel.
func newImage(pix []byte, width, height int, f ColorFormat) (image.Image, error) {
	bpp, err := f.BytesPerPixel()
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if want := width * height * bpp; len(pix) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for %dx%d %s", ErrBufferSize, len(pix), want, width, height, f)
	}

	rect := image.Rect(0, 0, width, height)
	switch f {
	case L8:
		return &image.Gray{Pix: pix, Stride: width, Rect: rect}, nil
	case L16:
		return &image.Gray16{Pix: pix, Stride: width * 2, Rect: rect}, nil
	case RGBA8:
		return &image.NRGBA{Pix: pix, Stride: width * 4, Rect: rect}, nil
	case RGBA16:
		return &image.NRGBA64{Pix: pix, Stride: width * 8, Rect: rect}, nil
	case LA8, RGB8:
		img := image.NewNRGBA(rect)
		expand(img.Pix, pix, f, 1)
		return img, nil
	case LA16, RGB16:
		img := image.NewNRGBA64(rect)
		expand(img.Pix, pix, f, 2)
		return img, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedColor, f)
}

// expand copies src samples of size width bytes into the 4-channel dst,
// replicating gray into RGB and filling a missing alpha with opaque.
func expand(dst, src []byte, f ColorFormat, width int) {
	channels := 3
	if f == LA8 || f == LA16 {
		channels = 2
	}
	sample := func(p []byte, i int) []byte { return p[i*width : (i+1)*width] }

	for s, d := 0, 0; s < len(src); s, d = s+channels*width, d+4*width {
		px := src[s : s+channels*width]
		out := dst[d : d+4*width]
		switch channels {
		case 2:
			copy(sample(out, 0), sample(px, 0))
			copy(sample(out, 1), sample(px, 0))
			copy(sample(out, 2), sample(px, 0))
			copy(sample(out, 3), sample(px, 1))
		case 3:
			copy(out, px)
			for i := range sample(out, 3) {
				sample(out, 3)[i] = 0xff
			}
		}
	}
}
