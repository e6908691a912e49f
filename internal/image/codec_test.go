package image

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/unmult/internal/channel"
	"github.com/gogpu/unmult/internal/color"
)

func TestLoadQuad_Layouts(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		px     []byte
		want   Quad[uint8]
	}{
		{"RGBA", LayoutRGBA, []byte{1, 2, 3, 4}, Quad[uint8]{1, 2, 3, 4}},
		{"ARGB", LayoutARGB, []byte{0x88, 0xff, 0, 0}, Quad[uint8]{0xff, 0, 0, 0x88}},
		{"BGRA", LayoutBGRA, []byte{30, 20, 10, 40}, Quad[uint8]{10, 20, 30, 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LoadQuad[uint8](tt.px, tt.layout); got != tt.want {
				t.Errorf("LoadQuad() = %v, want %v", got, tt.want)
			}
			out := make([]byte, 4)
			StoreQuad(out, tt.layout, tt.want)
			if !bytes.Equal(out, tt.px) {
				t.Errorf("StoreQuad() = %v, want %v", out, tt.px)
			}
		})
	}
}

func TestLoadQuad_LittleEndian16(t *testing.T) {
	px := make([]byte, 8)
	binary.LittleEndian.PutUint16(px[0:], 0x0102) // B
	binary.LittleEndian.PutUint16(px[2:], 0x0304) // G
	binary.LittleEndian.PutUint16(px[4:], 0xffff) // R
	binary.LittleEndian.PutUint16(px[6:], 0x8000) // A

	want := Quad[uint16]{0xffff, 0x0304, 0x0102, 0x8000}
	if got := LoadQuad[uint16](px, LayoutBGRA); got != want {
		t.Errorf("LoadQuad() = %#v, want %#v", got, want)
	}
}

func TestLoadQuad_Float(t *testing.T) {
	px := make([]byte, 16)
	for i, v := range []float32{0.25, -1.5, 2, 0.5} {
		binary.LittleEndian.PutUint32(px[4*i:], math.Float32bits(v))
	}
	want := Quad[float32]{0.25, -1.5, 2, 0.5}
	if got := LoadQuad[float32](px, LayoutRGBA); got != want {
		t.Errorf("LoadQuad() = %v, want %v", got, want)
	}
}

func TestQuads_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for _, f := range Formats() {
		t.Run(f.String(), func(t *testing.T) {
			const pixels = 37
			data := make([]byte, f.ImageBytes(pixels, 1))
			if f.Depth() == channel.Depth32F {
				for i := 0; i < len(data); i += 4 {
					binary.LittleEndian.PutUint32(data[i:], math.Float32bits(rng.Float32()*2-0.5))
				}
			} else {
				for i := range data {
					data[i] = byte(rng.Uint32())
				}
			}

			out := make([]byte, len(data))
			switch f.Depth() {
			case channel.Depth8:
				roundTrip[uint8](t, data, out, f.Layout())
			case channel.Depth16:
				roundTrip[uint16](t, data, out, f.Layout())
			case channel.Depth32F:
				roundTrip[float32](t, data, out, f.Layout())
			}
			if !bytes.Equal(out, data) {
				t.Error("decode then encode changed the bytes")
			}
		})
	}
}

func roundTrip[T channel.Value](t *testing.T, data, out []byte, l Layout) {
	t.Helper()
	quads, err := DecodeQuads[T](data, l)
	if err != nil {
		t.Fatalf("DecodeQuads() error = %v", err)
	}
	if err := EncodeQuads(out, l, quads); err != nil {
		t.Fatalf("EncodeQuads() error = %v", err)
	}
}

func TestDecodeQuads_InvalidLength(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{"8-bit", func() error { _, err := DecodeQuads[uint8](make([]byte, 7), LayoutRGBA); return err }},
		{"16-bit", func() error { _, err := DecodeQuads[uint16](make([]byte, 12), LayoutRGBA); return err }},
		{"float", func() error { _, err := DecodeQuads[float32](make([]byte, 20), LayoutRGBA); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, ErrInvalidBufferSize) {
				t.Errorf("error = %v, want ErrInvalidBufferSize", err)
			}
		})
	}
}

func TestAppendQuads_KeepsDstOnError(t *testing.T) {
	dst := []Quad[uint8]{{1, 2, 3, 4}}
	got, err := AppendQuads(dst, make([]byte, 6), LayoutRGBA)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(got) != 1 || got[0] != dst[0] {
		t.Errorf("AppendQuads() = %v, want dst unchanged", got)
	}
}

func TestEncodeQuads_LengthMismatch(t *testing.T) {
	dst := []byte{9, 9, 9, 9, 9, 9, 9, 9, 9}
	quads := []Quad[uint8]{{1, 2, 3, 4}, {5, 6, 7, 8}}
	err := EncodeQuads(dst, LayoutRGBA, quads)
	if !errors.Is(err, ErrInvalidBufferSize) {
		t.Fatalf("error = %v, want ErrInvalidBufferSize", err)
	}
	for i, b := range dst {
		if b != 9 {
			t.Fatalf("dst[%d] = %d, dst was written on error", i, b)
		}
	}
}

func TestLoadYUV_ChromaBias(t *testing.T) {
	tests := []struct {
		name string
		px   []byte
		want color.YUVF64
	}{
		{"white", []byte{255, 128, 128, 255}, color.YUVF64{Y: 1, U: 0, V: 0, A: 1}},
		{"black", []byte{0, 128, 128, 0}, color.YUVF64{}},
		{"min chroma", []byte{0, 0, 255, 255}, color.YUVF64{Y: 0, U: -128.0 / 255, V: 127.0 / 255, A: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LoadYUV(tt.px, FormatYUVA8); got != tt.want {
				t.Errorf("LoadYUV() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadYUV_FloatSignedChroma(t *testing.T) {
	px := make([]byte, 16)
	StoreQuad(px, LayoutRGBA, Quad[float32]{0.5, -0.25, 0.125, 1})
	want := color.YUVF64{Y: 0.5, U: -0.25, V: 0.125, A: 1}
	if got := LoadYUV(px, FormatYUVA32F); got != want {
		t.Errorf("LoadYUV() = %+v, want %+v", got, want)
	}
}

func TestStoreYUV_YUVA8Clamps(t *testing.T) {
	px := make([]byte, 4)
	StoreYUV(px, FormatYUVA8, color.YUVF64{Y: 1.2, U: -0.9, V: 0.9, A: -0.1})
	want := []byte{255, 0, 255, 0}
	if !bytes.Equal(px, want) {
		t.Errorf("StoreYUV() = %v, want %v", px, want)
	}

	StoreYUV(px, FormatYUVA8, color.YUVF64{Y: 0.5, U: 0, V: 0, A: 1})
	want = []byte{127, 128, 128, 255}
	if !bytes.Equal(px, want) {
		t.Errorf("StoreYUV() = %v, want %v", px, want)
	}
}

func TestStoreYUV_FloatKeepsSign(t *testing.T) {
	px := make([]byte, 16)
	StoreYUV(px, FormatYUVA32F, color.YUVF64{Y: 0.5, U: -0.25, V: 1.5, A: 1})
	want := Quad[float32]{0.5, -0.25, 1.5, 1}
	if got := LoadQuad[float32](px, LayoutRGBA); got != want {
		t.Errorf("StoreYUV() = %v, want %v", got, want)
	}
}

func TestStoreColor_Truncates(t *testing.T) {
	px := make([]byte, 4)
	StoreColor(px, FormatRGBA8, color.ColorF64{R: 0.9, G: 0.5, B: 1, A: 0})
	if want := []byte{229, 127, 255, 0}; !bytes.Equal(px, want) {
		t.Errorf("8-bit = %v, want %v", px, want)
	}

	px16 := make([]byte, 8)
	StoreColor(px16, FormatRGBA16, color.ColorF64{R: 0.5, G: 1, B: 0, A: 1})
	want16 := Quad[uint16]{32767, 65535, 0, 65535}
	if got := LoadQuad[uint16](px16, LayoutRGBA); got != want16 {
		t.Errorf("16-bit = %v, want %v", got, want16)
	}

	pxf := make([]byte, 16)
	StoreColor(pxf, FormatBGRA32F, color.ColorF64{R: 1.5, G: 0.25, B: -0.5, A: 1})
	wantf := Quad[float32]{1.5, 0.25, -0.5, 1}
	if got := LoadQuad[float32](pxf, LayoutBGRA); got != wantf {
		t.Errorf("float = %v, want %v", got, wantf)
	}
}

func TestLoadColor_YUVA8Zero(t *testing.T) {
	px := []byte{0, 128, 128, 0}
	if got := LoadColor(px, FormatYUVA8); got != (color.ColorF64{}) {
		t.Errorf("LoadColor() = %+v, want zero", got)
	}

	StoreColor(px, FormatYUVA8, color.ColorF64{})
	if want := []byte{0, 128, 128, 0}; !bytes.Equal(px, want) {
		t.Errorf("StoreColor() = %v, want %v", px, want)
	}
}

func TestColor_RoundTrip(t *testing.T) {
	colors := []color.ColorF64{
		{R: 1, G: 0, B: 0, A: 1},
		{R: 0.2, G: 0.7, B: 0.4, A: 0.5},
		{R: 0.5, G: 0.5, B: 0.5, A: 1},
		{R: 0, G: 0, B: 1, A: 0.25},
	}

	tests := []struct {
		format Format
		tol    float64
	}{
		{FormatRGBA32F, 1e-6},
		{FormatBGRA32F, 1e-6},
		{FormatYUVA32F, 1e-3},
		{FormatRGBA16, 1.0 / 65535},
		{FormatRGBA8, 1.0 / 255},
		{FormatARGB8, 1.0 / 255},
		{FormatYUVA8, 0.03},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			px := make([]byte, tt.format.BytesPerPixel())
			for _, c := range colors {
				StoreColor(px, tt.format, c)
				got := LoadColor(px, tt.format)
				if !colorNear(got, c, tt.tol) {
					t.Errorf("round trip of %+v = %+v", c, got)
				}
			}
		})
	}
}

func TestStoreColor_YUVA8Gray(t *testing.T) {
	px := make([]byte, 4)
	StoreColor(px, FormatYUVA8, color.ColorF64{R: 0.5, G: 0.5, B: 0.5, A: 1})
	// Neutral colours sit on the chroma bias, give or take truncation.
	for _, c := range px[1:3] {
		if c != 127 && c != 128 {
			t.Errorf("chroma byte = %d, want 127 or 128 (%v)", c, px)
		}
	}
	if px[3] != 255 {
		t.Errorf("alpha = %d, want 255", px[3])
	}
}

func colorNear(a, b color.ColorF64, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol &&
		math.Abs(a.G-b.G) <= tol &&
		math.Abs(a.B-b.B) <= tol &&
		math.Abs(a.A-b.A) <= tol
}

func BenchmarkDecodeQuads_BGRA8(b *testing.B) {
	data := make([]byte, 1920*4)
	dst := make([]Quad[uint8], 0, 1920)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		dst, _ = AppendQuads(dst[:0], data, LayoutBGRA)
	}
}
