package unmult

import (
	"github.com/gogpu/gputypes"
)

// supportedFormats lists formats in the order hosts should prefer them:
// the native BGRA layouts first, then the remaining channel orders, then
// luma/chroma.
var supportedFormats = []PixelFormat{
	FormatBGRA8,
	FormatBGRA16,
	FormatBGRA32F,
	FormatRGBA8,
	FormatARGB8,
	FormatRGBA16,
	FormatRGBA32F,
	FormatYUVA8,
	FormatYUVA32F,
}

// SupportedFormats returns every format Render accepts, in preference order.
// The returned slice is a copy.
func SupportedFormats() []PixelFormat {
	return append([]PixelFormat(nil), supportedFormats...)
}

// Capability describes one supported format for host negotiation.
type Capability struct {
	Format PixelFormat

	// BytesPerPixel is the size of one pixel in memory.
	BytesPerPixel int

	// TextureFormat is the GPU texture format with the same memory layout,
	// or TextureFormatUndefined if there is none. Hosts that keep frames on
	// a GPU can use it to decide whether a readback needs a conversion.
	TextureFormat gputypes.TextureFormat
}

// Capabilities returns a Capability for every supported format, in
// preference order.
func Capabilities() []Capability {
	caps := make([]Capability, 0, len(supportedFormats))
	for _, f := range supportedFormats {
		caps = append(caps, Capability{
			Format:        f,
			BytesPerPixel: f.BytesPerPixel(),
			TextureFormat: TextureFormat(f),
		})
	}
	return caps
}

// TextureFormat returns the GPU texture format whose texels have the same
// memory layout as f, or gputypes.TextureFormatUndefined.
func TextureFormat(f PixelFormat) gputypes.TextureFormat {
	switch f {
	case FormatRGBA8:
		return gputypes.TextureFormatRGBA8Unorm
	case FormatBGRA8:
		return gputypes.TextureFormatBGRA8Unorm
	case FormatRGBA16:
		return gputypes.TextureFormatRGBA16Unorm
	case FormatRGBA32F:
		return gputypes.TextureFormatRGBA32Float
	default:
		return gputypes.TextureFormatUndefined
	}
}

// IsSupported reports whether Render can convert from in to out.
func IsSupported(in, out PixelFormat) bool {
	return in.IsValid() && out.IsValid() && in.Depth() == out.Depth()
}
