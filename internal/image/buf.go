package image

import (
	"errors"
	"fmt"
	"unsafe"
)

// Common errors for frame validation.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrUnsupportedFormat is returned when the format is not recognized.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrInvalidStride is returned when the stride is shorter than a packed
	// row or not a whole number of pixels.
	ErrInvalidStride = errors.New("image: invalid stride")

	// ErrInvalidBufferSize is returned when a buffer is too small for its
	// descriptor or is not a whole number of pixels long.
	ErrInvalidBufferSize = errors.New("image: invalid buffer size")
)

// FrameDescriptor describes the geometry and format of one frame buffer.
type FrameDescriptor struct {
	Width  int
	Height int

	// Stride is the distance in bytes between the starts of two rows.
	Stride int

	Format Format
}

// Validate checks the descriptor on its own, without a buffer.
func (d FrameDescriptor) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, d.Width, d.Height)
	}
	if !d.Format.IsValid() {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, d.Format)
	}
	bpp := d.Format.BytesPerPixel()
	if d.Stride < d.Format.RowBytes(d.Width) || d.Stride%bpp != 0 {
		return fmt.Errorf("%w: %d bytes for %d pixels of %s", ErrInvalidStride, d.Stride, d.Width, d.Format)
	}
	return nil
}

// Pixels returns Width * Height.
func (d FrameDescriptor) Pixels() int {
	return d.Width * d.Height
}

// RowBytes returns the number of pixel bytes in one row, excluding padding.
func (d FrameDescriptor) RowBytes() int {
	return d.Format.RowBytes(d.Width)
}

// IsPacked returns true if rows follow each other without padding, so the
// pixels form one contiguous sequence.
func (d FrameDescriptor) IsPacked() bool {
	return d.Stride == d.RowBytes()
}

// RequiredBytes returns the minimum buffer length: every row but the last
// takes a full stride, the last only its pixels.
func (d FrameDescriptor) RequiredBytes() int {
	return (d.Height-1)*d.Stride + d.RowBytes()
}

// Frame is a host-owned pixel buffer and its descriptor.
//
// A Frame borrows Data; it never copies or frees it. Frame values are cheap
// to pass around, and callers must not keep them after the host reclaims
// the buffer.
type Frame struct {
	FrameDescriptor
	Data []byte
}

// FromRaw wraps existing data in a Frame without copying.
// A stride of 0 means rows are packed. The data length must be a multiple
// of the pixel size and cover the descriptor.
func FromRaw(data []byte, width, height int, format Format, stride int) (*Frame, error) {
	if stride == 0 {
		stride = format.RowBytes(width)
	}
	f := &Frame{
		FrameDescriptor: FrameDescriptor{
			Width:  width,
			Height: height,
			Stride: stride,
			Format: format,
		},
		Data: data,
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks the descriptor and that Data fits it.
func (f *Frame) Validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil frame", ErrInvalidDimensions)
	}
	if err := f.FrameDescriptor.Validate(); err != nil {
		return err
	}
	bpp := f.Format.BytesPerPixel()
	if len(f.Data)%bpp != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrInvalidBufferSize, len(f.Data), bpp)
	}
	if need := f.RequiredBytes(); len(f.Data) < need {
		return fmt.Errorf("%w: %d bytes, need %d", ErrInvalidBufferSize, len(f.Data), need)
	}
	return nil
}

// Row returns the pixel bytes of row y, or nil if y is out of bounds.
func (f *Frame) Row(y int) []byte {
	if y < 0 || y >= f.Height {
		return nil
	}
	start := y * f.Stride
	return f.Data[start : start+f.RowBytes()]
}

// Span returns the bytes of pixels [start, limit) of a packed frame.
func (f *Frame) Span(start, limit int) []byte {
	bpp := f.Format.BytesPerPixel()
	return f.Data[start*bpp : limit*bpp]
}

// PixelOffset returns the byte offset of pixel (x, y) in Data.
// Returns -1 if coordinates are out of bounds.
func (f *Frame) PixelOffset(x, y int) int {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return -1
	}
	return y*f.Stride + x*f.Format.BytesPerPixel()
}

// PixelBytes returns the bytes of pixel (x, y), or nil if out of bounds.
func (f *Frame) PixelBytes(x, y int) []byte {
	off := f.PixelOffset(x, y)
	if off < 0 {
		return nil
	}
	return f.Data[off : off+f.Format.BytesPerPixel()]
}

// Extent returns the part of Data the descriptor covers.
func (f *Frame) Extent() []byte {
	return f.Data[:f.RequiredBytes()]
}

// Overlaps reports whether the extents of a and b share any memory.
func Overlaps(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	a0 := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	b0 := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return a0 < b0+uintptr(len(b)) && b0 < a0+uintptr(len(a))
}

// SameExtent reports whether a and b are the same memory region.
func SameExtent(a, b []byte) bool {
	return len(a) == len(b) && (len(a) == 0 || unsafe.SliceData(a) == unsafe.SliceData(b))
}
