package color

import "github.com/gogpu/unmult/internal/channel"

// Unmultiply turns a premultiplied pixel into a straight-alpha pixel whose
// dominant colour channel is at full scale.
//
// The output alpha is the dominant channel's magnitude after the alpha
// correction, so compositing the result over black reproduces the input.
// Fully transparent and fully black pixels become the zero pixel.
func Unmultiply[T channel.Value](p RGBA[T]) RGBA[T] {
	var zero T
	if p.A == zero {
		return RGBA[T]{}
	}
	c, ok := UnmultiplyNormalized(p.Normalized())
	if !ok {
		return RGBA[T]{}
	}
	return Quantize[T](c)
}

// UnmultiplyNormalized is Unmultiply in the normalized domain.
// It reports false when the result is the zero pixel.
func UnmultiplyNormalized(c ColorF64) (ColorF64, bool) {
	if c.A == 0 {
		return ColorF64{}, false
	}

	r, g, b := c.R, c.G, c.B
	if c.A < 1 {
		r *= c.A
		g *= c.A
		b *= c.A
	}

	maxVal := max(r, g, b)
	if maxVal <= 0 {
		return ColorF64{}, false
	}

	// Divide rather than multiply by the reciprocal: x/x is exactly 1,
	// x*(1/x) is not.
	return ColorF64{
		R: r / maxVal,
		G: g / maxVal,
		B: b / maxVal,
		A: maxVal,
	}, true
}

// UnmultiplyTable8 is the fixed-point variant of Unmultiply for 8-bit
// pixels.
//
// Colour channels are renormalized through the divide table indexed by the
// dominant channel, and alpha is (a*max)/255 in integer arithmetic. Each
// channel is within one unit of Unmultiply[uint8].
func UnmultiplyTable8(p RGBA[uint8]) RGBA[uint8] {
	if p.A == 0 {
		return RGBA[uint8]{}
	}
	m := max(p.R, p.G, p.B)
	if m == 0 {
		return RGBA[uint8]{}
	}

	return RGBA[uint8]{
		R: Divide8(m, p.R),
		G: Divide8(m, p.G),
		B: Divide8(m, p.B),
		A: uint8(uint16(p.A) * uint16(m) / 255),
	}
}
