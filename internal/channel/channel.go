// Package channel provides the numeric model for a single colour channel.
//
// Exactly three channel representations exist: 8-bit and 16-bit unsigned
// integers and 32-bit floats. Each maps to a common float64 domain where
// 0 is no intensity and 1 is full scale. Integer variants are scaled by
// their maximum value; floats are stored already normalized.
package channel

// Value is the closed set of channel representations.
type Value interface {
	uint8 | uint16 | float32
}

// Depth tags a channel representation at runtime.
type Depth uint8

const (
	// DepthInvalid is the zero Depth.
	DepthInvalid Depth = iota

	// Depth8 is an 8-bit unsigned integer channel, scale 255.
	Depth8

	// Depth16 is a 16-bit unsigned integer channel, scale 65535.
	Depth16

	// Depth32F is a 32-bit float channel, scale 1.0.
	Depth32F

	depthCount
)

// Normalization scales.
const (
	Scale8   = 255.0
	Scale16  = 65535.0
	Scale32F = 1.0
)

type depthInfo struct {
	name  string
	bytes int
	scale float64
}

var depthTable = [depthCount]depthInfo{
	DepthInvalid: {name: "Invalid"},
	Depth8:       {name: "8u", bytes: 1, scale: Scale8},
	Depth16:      {name: "16u", bytes: 2, scale: Scale16},
	Depth32F:     {name: "32f", bytes: 4, scale: Scale32F},
}

// IsValid reports whether d is one of the three known depths.
func (d Depth) IsValid() bool {
	return d > DepthInvalid && d < depthCount
}

// Bytes returns the storage size of one channel, or 0 for an invalid depth.
func (d Depth) Bytes() int {
	if d >= depthCount {
		return 0
	}
	return depthTable[d].bytes
}

// Scale returns the value that maps to 1.0 in the normalized domain.
func (d Depth) Scale() float64 {
	if d >= depthCount {
		return 0
	}
	return depthTable[d].scale
}

func (d Depth) String() string {
	if d >= depthCount {
		return "Unknown"
	}
	return depthTable[d].name
}

// DepthOf returns the Depth tag of T.
func DepthOf[T Value]() Depth {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return Depth8
	case uint16:
		return Depth16
	default:
		return Depth32F
	}
}

// ToNormalized maps v into the [0,1] domain by dividing by its scale.
func ToNormalized[T Value](v T) float64 {
	switch x := any(v).(type) {
	case uint8:
		return float64(x) / Scale8
	case uint16:
		return float64(x) / Scale16
	case float32:
		return float64(x)
	}
	return 0
}

// FromNormalized maps x back to T by multiplying by the scale.
//
// Integer results are truncated toward zero, not rounded: 0.9 becomes 229
// for 8-bit channels. No clamping is applied. Floats pass through, so values
// outside [0,1] survive; for integer depths the result for such values is
// whatever Go's float-to-integer conversion yields, and callers that can
// produce them must clamp first.
func FromNormalized[T Value](x float64) T {
	var v T
	switch p := any(&v).(type) {
	case *uint8:
		*p = uint8(x * Scale8)
	case *uint16:
		*p = uint16(x * Scale16)
	case *float32:
		*p = float32(x)
	}
	return v
}
