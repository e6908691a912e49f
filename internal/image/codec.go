package image

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/unmult/internal/channel"
	"github.com/gogpu/unmult/internal/color"
)

// Quad is one pixel's channels in logical order: R, G, B, A or Y, U, V, A.
type Quad[T channel.Value] [4]T

// chromaBias8 is the stored value of zero chroma in 8-bit YUV formats.
const chromaBias8 = 128

func loadChannel[T channel.Value](b []byte) T {
	var v T
	switch p := any(&v).(type) {
	case *uint8:
		*p = b[0]
	case *uint16:
		*p = binary.LittleEndian.Uint16(b)
	case *float32:
		*p = math.Float32frombits(binary.LittleEndian.Uint32(b))
	}
	return v
}

func storeChannel[T channel.Value](b []byte, v T) {
	switch x := any(v).(type) {
	case uint8:
		b[0] = x
	case uint16:
		binary.LittleEndian.PutUint16(b, x)
	case float32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(x))
	}
}

// LoadQuad reads one pixel from px. px must hold at least one pixel of T.
func LoadQuad[T channel.Value](px []byte, l Layout) Quad[T] {
	n := channel.DepthOf[T]().Bytes()
	_ = px[4*n-1]
	var q Quad[T]
	for i, pos := range l {
		q[i] = loadChannel[T](px[pos*n:])
	}
	return q
}

// StoreQuad writes one pixel to px. px must hold at least one pixel of T.
func StoreQuad[T channel.Value](px []byte, l Layout, q Quad[T]) {
	n := channel.DepthOf[T]().Bytes()
	_ = px[4*n-1]
	for i, pos := range l {
		storeChannel(px[pos*n:], q[i])
	}
}

// DecodeQuads decodes a packed run of pixels.
// The length of data must be a multiple of the pixel size.
func DecodeQuads[T channel.Value](data []byte, l Layout) ([]Quad[T], error) {
	return AppendQuads[T](nil, data, l)
}

// AppendQuads decodes a packed run of pixels and appends them to dst.
// Nothing is appended if the length of data is not a multiple of the pixel
// size.
func AppendQuads[T channel.Value](dst []Quad[T], data []byte, l Layout) ([]Quad[T], error) {
	bpp := 4 * channel.DepthOf[T]().Bytes()
	if len(data)%bpp != 0 {
		return dst, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrInvalidBufferSize, len(data), bpp)
	}
	for off := 0; off < len(data); off += bpp {
		dst = append(dst, LoadQuad[T](data[off:off+bpp], l))
	}
	return dst, nil
}

// EncodeQuads encodes quads into dst, which must be exactly one pixel per
// quad long. dst is untouched on error.
func EncodeQuads[T channel.Value](dst []byte, l Layout, quads []Quad[T]) error {
	bpp := 4 * channel.DepthOf[T]().Bytes()
	if len(dst) != len(quads)*bpp {
		return fmt.Errorf("%w: %d bytes for %d pixels of %d bytes", ErrInvalidBufferSize, len(dst), len(quads), bpp)
	}
	for i, q := range quads {
		StoreQuad(dst[i*bpp:(i+1)*bpp], l, q)
	}
	return nil
}

// LoadColor reads one pixel of format f as normalized RGBA, converting from
// luma/chroma when f is a YUV format.
func LoadColor(px []byte, f Format) color.ColorF64 {
	switch f.Depth() {
	case channel.Depth8:
		return loadColor[uint8](px, f)
	case channel.Depth16:
		return loadColor[uint16](px, f)
	default:
		return loadColor[float32](px, f)
	}
}

func loadColor[T channel.Value](px []byte, f Format) color.ColorF64 {
	q := LoadQuad[T](px, f.Layout())
	if f.IsYUV() {
		return color.ToRGB(normalizedYUV(color.YUVA[T]{Y: q[0], U: q[1], V: q[2], A: q[3]}))
	}
	return color.RGBA[T]{R: q[0], G: q[1], B: q[2], A: q[3]}.Normalized()
}

// StoreColor writes normalized RGBA as one pixel of format f, converting to
// luma/chroma when f is a YUV format.
//
// Integer RGB channels are truncated toward zero without clamping; callers
// pass values in [0,1].
func StoreColor(px []byte, f Format, c color.ColorF64) {
	switch f.Depth() {
	case channel.Depth8:
		storeColor[uint8](px, f, c)
	case channel.Depth16:
		storeColor[uint16](px, f, c)
	default:
		storeColor[float32](px, f, c)
	}
}

func storeColor[T channel.Value](px []byte, f Format, c color.ColorF64) {
	var q Quad[T]
	if f.IsYUV() {
		p := quantizeYUV[T](color.ToYUV(c))
		q = Quad[T]{p.Y, p.U, p.V, p.A}
	} else {
		p := color.Quantize[T](c)
		q = Quad[T]{p.R, p.G, p.B, p.A}
	}
	StoreQuad(px, f.Layout(), q)
}

// LoadYUV reads one pixel of YUV format f into the normalized domain.
// 8-bit chroma has its bias removed, so U and V are signed.
func LoadYUV(px []byte, f Format) color.YUVF64 {
	if f.Depth() == channel.Depth8 {
		q := LoadQuad[uint8](px, f.Layout())
		return normalizedYUV(color.YUVA[uint8]{Y: q[0], U: q[1], V: q[2], A: q[3]})
	}
	q := LoadQuad[float32](px, f.Layout())
	return normalizedYUV(color.YUVA[float32]{Y: q[0], U: q[1], V: q[2], A: q[3]})
}

// StoreYUV writes one normalized luma/chroma pixel in YUV format f.
func StoreYUV(px []byte, f Format, c color.YUVF64) {
	if f.Depth() == channel.Depth8 {
		p := quantizeYUV[uint8](c)
		StoreQuad(px, f.Layout(), Quad[uint8]{p.Y, p.U, p.V, p.A})
		return
	}
	p := quantizeYUV[float32](c)
	StoreQuad(px, f.Layout(), Quad[float32]{p.Y, p.U, p.V, p.A})
}

// normalizedYUV is YUVA.Normalized with the 8-bit chroma bias removed.
func normalizedYUV[T channel.Value](p color.YUVA[T]) color.YUVF64 {
	n := p.Normalized()
	if channel.DepthOf[T]() == channel.Depth8 {
		n.U = (float64(p.U) - chromaBias8) / channel.Scale8
		n.V = (float64(p.V) - chromaBias8) / channel.Scale8
	}
	return n
}

// quantizeYUV is QuantizeYUV with the 8-bit chroma bias applied.
//
// 8-bit channels are clamped to [0,255], because converting a valid RGB
// colour can land just outside the representable range.
func quantizeYUV[T channel.Value](c color.YUVF64) color.YUVA[T] {
	if channel.DepthOf[T]() != channel.Depth8 {
		return color.QuantizeYUV[T](c)
	}
	return color.YUVA[T]{
		Y: T(clamp8(c.Y * channel.Scale8)),
		U: T(clamp8(c.U*channel.Scale8 + chromaBias8)),
		V: T(clamp8(c.V*channel.Scale8 + chromaBias8)),
		A: T(clamp8(c.A * channel.Scale8)),
	}
}

// clamp8 truncates x toward zero into [0,255].
func clamp8(x float64) uint8 {
	if x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x)
}
