package unmult

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestSupportedFormats(t *testing.T) {
	formats := SupportedFormats()
	want := []PixelFormat{
		FormatBGRA8, FormatBGRA16, FormatBGRA32F,
		FormatRGBA8, FormatARGB8, FormatRGBA16, FormatRGBA32F,
		FormatYUVA8, FormatYUVA32F,
	}
	if len(formats) != len(want) {
		t.Fatalf("len(SupportedFormats()) = %d, want %d", len(formats), len(want))
	}
	for i := range want {
		if formats[i] != want[i] {
			t.Errorf("SupportedFormats()[%d] = %v, want %v", i, formats[i], want[i])
		}
	}

	formats[0] = FormatInvalid
	if SupportedFormats()[0] != FormatBGRA8 {
		t.Error("SupportedFormats() exposes its backing array")
	}
}

func TestCapabilities(t *testing.T) {
	caps := Capabilities()
	if len(caps) != len(SupportedFormats()) {
		t.Fatalf("len(Capabilities()) = %d", len(caps))
	}

	tests := []struct {
		format  PixelFormat
		bpp     int
		texture gputypes.TextureFormat
	}{
		{FormatBGRA8, 4, gputypes.TextureFormatBGRA8Unorm},
		{FormatBGRA16, 8, gputypes.TextureFormatUndefined},
		{FormatBGRA32F, 16, gputypes.TextureFormatUndefined},
		{FormatRGBA8, 4, gputypes.TextureFormatRGBA8Unorm},
		{FormatARGB8, 4, gputypes.TextureFormatUndefined},
		{FormatRGBA16, 8, gputypes.TextureFormatRGBA16Unorm},
		{FormatRGBA32F, 16, gputypes.TextureFormatRGBA32Float},
		{FormatYUVA8, 4, gputypes.TextureFormatUndefined},
		{FormatYUVA32F, 16, gputypes.TextureFormatUndefined},
	}

	for i, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			c := caps[i]
			if c.Format != tt.format {
				t.Fatalf("Capabilities()[%d].Format = %v, want %v", i, c.Format, tt.format)
			}
			if c.BytesPerPixel != tt.bpp {
				t.Errorf("BytesPerPixel = %d, want %d", c.BytesPerPixel, tt.bpp)
			}
			if c.TextureFormat != tt.texture {
				t.Errorf("TextureFormat = %v, want %v", c.TextureFormat, tt.texture)
			}
		})
	}
}

func TestTextureFormat(t *testing.T) {
	tests := []struct {
		format PixelFormat
		want   gputypes.TextureFormat
	}{
		{FormatRGBA8, gputypes.TextureFormatRGBA8Unorm},
		{FormatBGRA8, gputypes.TextureFormatBGRA8Unorm},
		{FormatRGBA16, gputypes.TextureFormatRGBA16Unorm},
		{FormatRGBA32F, gputypes.TextureFormatRGBA32Float},
		{FormatARGB8, gputypes.TextureFormatUndefined},
		{FormatBGRA16, gputypes.TextureFormatUndefined},
		{FormatBGRA32F, gputypes.TextureFormatUndefined},
		{FormatYUVA8, gputypes.TextureFormatUndefined},
		{FormatInvalid, gputypes.TextureFormatUndefined},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := TextureFormat(tt.format); got != tt.want {
				t.Errorf("TextureFormat(%v) = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		in, out PixelFormat
		want    bool
	}{
		{FormatBGRA8, FormatRGBA8, true},
		{FormatYUVA8, FormatARGB8, true},
		{FormatYUVA32F, FormatRGBA32F, true},
		{FormatRGBA16, FormatBGRA16, true},
		{FormatRGBA8, FormatRGBA16, false},
		{FormatYUVA8, FormatYUVA32F, false},
		{FormatInvalid, FormatInvalid, false},
		{PixelFormat(99), FormatRGBA8, false},
	}

	for _, tt := range tests {
		if got := IsSupported(tt.in, tt.out); got != tt.want {
			t.Errorf("IsSupported(%v, %v) = %v, want %v", tt.in, tt.out, got, tt.want)
		}
	}
}

// TestIsSupported_AgreesWithRender checks every format pair against Render.
func TestIsSupported_AgreesWithRender(t *testing.T) {
	for _, in := range SupportedFormats() {
		for _, out := range SupportedFormats() {
			src := newTestFrame(t, in, 2, 2, 0, 0)
			dst := newTestFrame(t, out, 2, 2, 0, 0)
			err := Render(src, dst)
			if got := err == nil; got != IsSupported(in, out) {
				t.Errorf("%v -> %v: Render() error = %v, IsSupported = %v", in, out, err, IsSupported(in, out))
			}
		}
	}
}
