// Package unmult converts premultiplied-alpha frames into straight-alpha
// frames whose dominant colour channel sits at full scale.
//
// # Overview
//
// Hosts such as video editors hand over premultiplied pixels: colour has
// already been scaled by coverage. Unmultiplying divides the coverage back
// out and then renormalizes so the brightest of R, G and B is 1.0, moving the
// remaining intensity into alpha. The result composited over black
// reproduces the input, while the colour itself is as saturated as it can
// be. This is the classic "unmultiply" effect used to key out black
// backgrounds.
//
// # Quick Start
//
//	import "github.com/gogpu/unmult"
//
//	in, err := unmult.NewFrame(src, 1920, 1080, 0, unmult.FormatBGRA8)
//	if err != nil {
//		return err
//	}
//	out, err := unmult.NewFrame(dst, 1920, 1080, 0, unmult.FormatBGRA8)
//	if err != nil {
//		return err
//	}
//	if err := unmult.Render(in, out); err != nil {
//		return err
//	}
//
// # Formats
//
// Frames carry 8-bit, 16-bit or 32-bit float channels in RGBA, ARGB or BGRA
// order, or luma/chroma (YUVA) encoded pixels. Input and output must share a
// channel depth; their channel order and encoding may differ. 16-bit and
// float channels are little-endian.
//
// # Numerics
//
// Every channel goes through the normalized [0,1] domain in float64.
// Conversions back to integers truncate toward zero, so 0.9 becomes 229 for
// 8-bit channels. With [WithStrategy] and [StrategyTable], 8-bit RGB frames
// use a fixed-point path through a shared 64 KiB divide table instead; it is
// within one unit of the exact result.
//
// # Concurrency
//
// [Render] and [Renderer.Render] split the frame into independent ranges
// and process them in parallel. Both are safe for concurrent use with
// distinct frames. Frames are borrowed for the duration of the call only.
package unmult

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = ""
)
