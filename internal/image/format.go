// Package image describes host frame buffers: their pixel formats, their
// geometry, and how pixels are laid out in bytes.
//
// The package never allocates frame memory. A Frame borrows a host buffer
// for the duration of one render call.
package image

import (
	"github.com/gogpu/unmult/internal/channel"
	"github.com/gogpu/unmult/internal/color"
)

// Format represents a negotiated pixel format.
type Format uint8

const (
	// FormatInvalid is the zero Format.
	FormatInvalid Format = iota

	// FormatRGBA8 is 8-bit RGBA, bytes R, G, B, A.
	FormatRGBA8

	// FormatARGB8 is 8-bit ARGB, bytes A, R, G, B.
	FormatARGB8

	// FormatBGRA8 is 8-bit BGRA, bytes B, G, R, A.
	// This is the native 8-bit layout of most video hosts.
	FormatBGRA8

	// FormatRGBA16 is 16-bit RGBA, little-endian channels.
	FormatRGBA16

	// FormatBGRA16 is 16-bit BGRA, little-endian channels.
	FormatBGRA16

	// FormatRGBA32F is 32-bit float RGBA, little-endian channels.
	FormatRGBA32F

	// FormatBGRA32F is 32-bit float BGRA, little-endian channels.
	FormatBGRA32F

	// FormatYUVA8 is 8-bit YUVA, bytes Y, U, V, A.
	// U and V carry an excess-128 bias.
	FormatYUVA8

	// FormatYUVA32F is 32-bit float YUVA with signed chroma.
	FormatYUVA32F

	formatCount
)

// Layout gives the byte-order position of each logical channel.
// Logical channels are R, G, B, A for RGB formats and Y, U, V, A for YUV
// formats. LayoutARGB, Layout{1, 2, 3, 0}, stores alpha in byte 0.
type Layout [4]int

// Common layouts.
var (
	LayoutRGBA = Layout{0, 1, 2, 3}
	LayoutARGB = Layout{1, 2, 3, 0}
	LayoutBGRA = Layout{2, 1, 0, 3}
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// Name is the display name.
	Name string

	// Depth is the channel representation.
	Depth channel.Depth

	// Space tells whether colour channels are RGB or luma/chroma.
	Space color.ColorSpace

	// Layout maps logical channels to byte-order positions.
	Layout Layout
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatInvalid: {Name: "Invalid"},
	FormatRGBA8:   {Name: "RGBA8", Depth: channel.Depth8, Space: color.ColorSpaceRGB, Layout: LayoutRGBA},
	FormatARGB8:   {Name: "ARGB8", Depth: channel.Depth8, Space: color.ColorSpaceRGB, Layout: LayoutARGB},
	FormatBGRA8:   {Name: "BGRA8", Depth: channel.Depth8, Space: color.ColorSpaceRGB, Layout: LayoutBGRA},
	FormatRGBA16:  {Name: "RGBA16", Depth: channel.Depth16, Space: color.ColorSpaceRGB, Layout: LayoutRGBA},
	FormatBGRA16:  {Name: "BGRA16", Depth: channel.Depth16, Space: color.ColorSpaceRGB, Layout: LayoutBGRA},
	FormatRGBA32F: {Name: "RGBA32F", Depth: channel.Depth32F, Space: color.ColorSpaceRGB, Layout: LayoutRGBA},
	FormatBGRA32F: {Name: "BGRA32F", Depth: channel.Depth32F, Space: color.ColorSpaceRGB, Layout: LayoutBGRA},
	FormatYUVA8:   {Name: "YUVA8", Depth: channel.Depth8, Space: color.ColorSpaceYUV, Layout: LayoutRGBA},
	FormatYUVA32F: {Name: "YUVA32F", Depth: channel.Depth32F, Space: color.ColorSpaceYUV, Layout: LayoutRGBA},
}

// Formats returns every valid format in declaration order.
func Formats() []Format {
	formats := make([]Format, 0, formatCount-1)
	for f := FormatInvalid + 1; f < formatCount; f++ {
		formats = append(formats, f)
	}
	return formats
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f > FormatInvalid && f < formatCount
}

// Depth returns the channel representation.
func (f Format) Depth() channel.Depth {
	return f.Info().Depth
}

// Space returns the colour encoding.
func (f Format) Space() color.ColorSpace {
	return f.Info().Space
}

// Layout returns the byte-order position of each logical channel.
func (f Format) Layout() Layout {
	return f.Info().Layout
}

// IsYUV returns true for luma/chroma formats.
func (f Format) IsYUV() bool {
	return f.IsValid() && f.Space() == color.ColorSpaceYUV
}

// BytesPerPixel returns the number of bytes per pixel, 0 for invalid formats.
func (f Format) BytesPerPixel() int {
	return 4 * f.Depth().Bytes()
}

// RowBytes calculates the number of bytes needed for a packed row.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// ImageBytes calculates the number of bytes needed for a packed image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}

// String returns a string representation of the format.
func (f Format) String() string {
	if f >= formatCount {
		return "Unknown"
	}
	return formatInfoTable[f].Name
}
