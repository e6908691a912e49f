// Package color provides the pixel types and per-pixel transforms of unmult.
package color

import "github.com/gogpu/unmult/internal/channel"

// ColorSpace identifies how the three colour channels of a pixel are encoded.
type ColorSpace uint8

const (
	// ColorSpaceRGB is linear red, green, blue.
	ColorSpaceRGB ColorSpace = iota
	// ColorSpaceYUV is luma plus two colour-difference channels.
	ColorSpaceYUV
)

func (cs ColorSpace) String() string {
	switch cs {
	case ColorSpaceRGB:
		return "RGB"
	case ColorSpaceYUV:
		return "YUV"
	default:
		return "Unknown"
	}
}

// RGBA is a four-channel pixel. Whether the colour is premultiplied by
// alpha depends on where the pixel is in the pipeline.
type RGBA[T channel.Value] struct {
	R, G, B, A T
}

// YUVA is a luma/chroma pixel with alpha.
type YUVA[T channel.Value] struct {
	Y, U, V, A T
}

// ColorF64 is an RGBA pixel in the normalized domain.
type ColorF64 struct {
	R, G, B, A float64
}

// YUVF64 is a YUVA pixel in the normalized domain.
// U and V are signed colour differences.
type YUVF64 struct {
	Y, U, V, A float64
}

// Normalized converts every channel of p to the normalized domain.
func (p RGBA[T]) Normalized() ColorF64 {
	return ColorF64{
		R: channel.ToNormalized(p.R),
		G: channel.ToNormalized(p.G),
		B: channel.ToNormalized(p.B),
		A: channel.ToNormalized(p.A),
	}
}

// Normalized converts every channel of p to the normalized domain.
func (p YUVA[T]) Normalized() YUVF64 {
	return YUVF64{
		Y: channel.ToNormalized(p.Y),
		U: channel.ToNormalized(p.U),
		V: channel.ToNormalized(p.V),
		A: channel.ToNormalized(p.A),
	}
}

// Quantize converts c to channel type T, truncating integer channels
// toward zero.
func Quantize[T channel.Value](c ColorF64) RGBA[T] {
	return RGBA[T]{
		R: channel.FromNormalized[T](c.R),
		G: channel.FromNormalized[T](c.G),
		B: channel.FromNormalized[T](c.B),
		A: channel.FromNormalized[T](c.A),
	}
}

// QuantizeYUV converts c to channel type T, truncating integer channels
// toward zero.
func QuantizeYUV[T channel.Value](c YUVF64) YUVA[T] {
	return YUVA[T]{
		Y: channel.FromNormalized[T](c.Y),
		U: channel.FromNormalized[T](c.U),
		V: channel.FromNormalized[T](c.V),
		A: channel.FromNormalized[T](c.A),
	}
}

// Clamp limits every channel of c to [0,1].
func (c ColorF64) Clamp() ColorF64 {
	return ColorF64{
		R: min(max(c.R, 0), 1),
		G: min(max(c.G, 0), 1),
		B: min(max(c.B, 0), 1),
		A: min(max(c.A, 0), 1),
	}
}
