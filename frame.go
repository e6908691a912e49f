package unmult

import (
	intImage "github.com/gogpu/unmult/internal/image"
)

// Type aliases for frame types from internal/image.
type (
	// PixelFormat is a negotiated pixel format tag.
	PixelFormat = intImage.Format

	// FrameDescriptor describes the geometry and format of a frame.
	FrameDescriptor = intImage.FrameDescriptor

	// Frame is a host-owned pixel buffer and its descriptor.
	// Frames borrow their buffer; unmult never copies, frees or retains it.
	Frame = intImage.Frame
)

// Pixel formats.
const (
	FormatInvalid = intImage.FormatInvalid
	FormatRGBA8   = intImage.FormatRGBA8
	FormatARGB8   = intImage.FormatARGB8
	FormatBGRA8   = intImage.FormatBGRA8
	FormatRGBA16  = intImage.FormatRGBA16
	FormatBGRA16  = intImage.FormatBGRA16
	FormatRGBA32F = intImage.FormatRGBA32F
	FormatBGRA32F = intImage.FormatBGRA32F
	FormatYUVA8   = intImage.FormatYUVA8
	FormatYUVA32F = intImage.FormatYUVA32F
)

// NewFrame wraps a host buffer in a Frame without copying it.
// A stride of 0 means rows are tightly packed. The buffer length must be a
// whole number of pixels and cover every row.
func NewFrame(data []byte, width, height, stride int, format PixelFormat) (*Frame, error) {
	return intImage.FromRaw(data, width, height, format, stride)
}
