package color

// Forward (RGB to YUV) coefficients, BT.601 family.
const (
	yR, yG, yB = 0.299, 0.587, 0.114
	uR, uG, uB = -0.168935, -0.331665, 0.50059
	vR, vG, vB = 0.499813, -0.418531, -0.081282
)

// Inverse (YUV to RGB) coefficients. They are rounded independently of the
// forward set, so a round trip is close but not exact.
const (
	rV     = 1.403
	gU, gV = -0.344, -0.714
	bU     = 1.770
)

// ToYUV converts a normalized RGBA pixel to luma/chroma.
// Alpha is passed through.
func ToYUV(c ColorF64) YUVF64 {
	return YUVF64{
		Y: yR*c.R + yG*c.G + yB*c.B,
		U: uR*c.R + uG*c.G + uB*c.B,
		V: vR*c.R + vG*c.G + vB*c.B,
		A: c.A,
	}
}

// ToRGB converts a normalized YUVA pixel back to RGBA.
// Alpha is passed through.
func ToRGB(c YUVF64) ColorF64 {
	return ColorF64{
		R: c.Y + rV*c.V,
		G: c.Y + gU*c.U + gV*c.V,
		B: c.Y + bU*c.U,
		A: c.A,
	}
}
