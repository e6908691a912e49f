package image

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Register decoders for image.Decode.
	_ "image/jpeg"

	_ "golang.org/x/image/webp"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/gogpu/unmult/internal/channel"
)

// I/O errors.
var (
	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")

	// ErrUnknownEncoding is returned when a file extension names no
	// supported encoder.
	ErrUnknownEncoding = errors.New("image: unknown encoding")
)

// Encoding is an image file encoding that frames can be saved in.
type Encoding uint8

const (
	EncodingPNG Encoding = iota
	EncodingTIFF
	EncodingBMP
)

func (e Encoding) String() string {
	switch e {
	case EncodingPNG:
		return "png"
	case EncodingTIFF:
		return "tiff"
	case EncodingBMP:
		return "bmp"
	default:
		return "unknown"
	}
}

// EncodingForPath picks an encoding from the file extension of path.
func EncodingForPath(path string) (Encoding, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return EncodingPNG, nil
	case ".tif", ".tiff":
		return EncodingTIFF, nil
	case ".bmp":
		return EncodingBMP, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEncoding, filepath.Ext(path))
	}
}

// LoadImage loads an image file into a new premultiplied frame of the given
// format. Supported files: PNG, JPEG, TIFF, BMP, WebP.
func LoadImage(path string, format Format) (*Frame, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, format)
}

// LoadImageFromBytes decodes an image held in memory, auto-detecting the
// file format.
func LoadImageFromBytes(data []byte, format Format) (*Frame, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data), format)
}

// Decode decodes an image from the given reader, auto-detecting the file
// format, and converts it to a premultiplied frame.
func Decode(r io.Reader, format Format) (*Frame, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img, format)
}

// FromStdImage converts img to a new, packed frame holding premultiplied
// pixels. Only RGB formats are accepted.
func FromStdImage(img image.Image, format Format) (*Frame, error) {
	if !format.IsValid() || format.IsYUV() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	data := make([]byte, format.ImageBytes(width, height))
	frame, err := FromRaw(data, width, height, format, 0)
	if err != nil {
		return nil, err
	}

	l := format.Layout()
	bpp := format.BytesPerPixel()
	rect := image.Rect(0, 0, width, height)

	if format.Depth() == channel.Depth8 {
		rgba := image.NewRGBA(rect)
		draw.Draw(rgba, rect, img, bounds.Min, draw.Src)
		for i := range width * height {
			src := rgba.Pix[i*4 : i*4+4]
			StoreQuad(data[i*bpp:], l, Quad[uint8]{src[0], src[1], src[2], src[3]})
		}
		return frame, nil
	}

	rgba64 := image.NewRGBA64(rect)
	draw.Draw(rgba64, rect, img, bounds.Min, draw.Src)
	for i := range width * height {
		var q Quad[uint16]
		for c := range q {
			q[c] = binary.BigEndian.Uint16(rgba64.Pix[i*8+c*2:])
		}
		if format.Depth() == channel.Depth16 {
			StoreQuad(data[i*bpp:], l, q)
			continue
		}
		var qf Quad[float32]
		for c, v := range q {
			qf[c] = float32(channel.ToNormalized(v))
		}
		StoreQuad(data[i*bpp:], l, qf)
	}
	return frame, nil
}

// ToStdImage converts a straight-alpha frame to a standard library image.
// 8-bit RGB frames become *image.NRGBA; everything else becomes
// *image.NRGBA64, with float and YUV values clamped to [0,1].
func ToStdImage(f *Frame) (image.Image, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	rect := image.Rect(0, 0, f.Width, f.Height)
	l := f.Format.Layout()

	switch {
	case f.Format.Depth() == channel.Depth8 && !f.Format.IsYUV():
		nrgba := image.NewNRGBA(rect)
		for y := range f.Height {
			for x := range f.Width {
				q := LoadQuad[uint8](f.PixelBytes(x, y), l)
				copy(nrgba.Pix[y*nrgba.Stride+x*4:], q[:])
			}
		}
		return nrgba, nil

	case f.Format.Depth() == channel.Depth16:
		nrgba64 := image.NewNRGBA64(rect)
		for y := range f.Height {
			for x := range f.Width {
				q := LoadQuad[uint16](f.PixelBytes(x, y), l)
				off := y*nrgba64.Stride + x*8
				for c, v := range q {
					binary.BigEndian.PutUint16(nrgba64.Pix[off+c*2:], v)
				}
			}
		}
		return nrgba64, nil

	default:
		nrgba64 := image.NewNRGBA64(rect)
		for y := range f.Height {
			for x := range f.Width {
				c := LoadColor(f.PixelBytes(x, y), f.Format)
				off := y*nrgba64.Stride + x*8
				for i, v := range [4]float64{c.R, c.G, c.B, c.A} {
					binary.BigEndian.PutUint16(nrgba64.Pix[off+i*2:], unit16(v))
				}
			}
		}
		return nrgba64, nil
	}
}

// unit16 clamps x to [0,1] and truncates it to 16 bits.
func unit16(x float64) uint16 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 0xffff
	default:
		return uint16(x * channel.Scale16)
	}
}

// Encode writes a straight-alpha frame to w in the given encoding.
func Encode(w io.Writer, f *Frame, enc Encoding) error {
	img, err := ToStdImage(f)
	if err != nil {
		return err
	}

	switch enc {
	case EncodingPNG:
		err = png.Encode(w, img)
	case EncodingTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case EncodingBMP:
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownEncoding, enc)
	}
	if err != nil {
		return fmt.Errorf("image: encode %v: %w", enc, err)
	}
	return nil
}

// SaveImage saves a straight-alpha frame, choosing the encoding from the
// file extension.
func SaveImage(path string, f *Frame) error {
	enc, err := EncodingForPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := Encode(file, f, enc); err != nil {
		_ = file.Close()
		return err
	}

	return file.Close()
}
