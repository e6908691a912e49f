package unmult

import (
	"errors"

	intImage "github.com/gogpu/unmult/internal/image"
)

// Errors returned by NewFrame and Render. Match them with errors.Is; the
// returned errors carry context such as the offending format or size.
// Every one of them is reported before any output byte is written.
var (
	// ErrUnsupportedFormat is returned for an unknown pixel format, or for an
	// input/output pair whose channel depths differ.
	ErrUnsupportedFormat = intImage.ErrUnsupportedFormat

	// ErrInvalidBufferSize is returned when a buffer is not a whole number
	// of pixels long or is too short for its frame.
	ErrInvalidBufferSize = intImage.ErrInvalidBufferSize

	// ErrInvalidDimensions is returned for a nil frame or a non-positive
	// width or height.
	ErrInvalidDimensions = intImage.ErrInvalidDimensions

	// ErrInvalidStride is returned when the stride is shorter than a packed
	// row or not a whole number of pixels.
	ErrInvalidStride = intImage.ErrInvalidStride

	// ErrDimensionMismatch is returned when input and output differ in width
	// or height.
	ErrDimensionMismatch = errors.New("unmult: input and output dimensions differ")

	// ErrAliasedBuffers is returned when input and output share memory but
	// do not describe the same region with the same format and stride.
	ErrAliasedBuffers = errors.New("unmult: input and output buffers overlap")

	// ErrRendererClosed is returned by Renderer.Render after Close.
	ErrRendererClosed = errors.New("unmult: renderer closed")
)
