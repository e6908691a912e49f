// Package parallel splits pixel work into independent bands and runs them
// concurrently.
//
// A band is a half-open index range: a run of rows for strided frames, or a
// run of pixels for tightly packed frames. Bands never overlap, so workers
// write to disjoint memory and need no synchronization beyond waiting for
// completion.
package parallel

// Band is the half-open range [Start, Limit).
type Band struct {
	Start int
	Limit int
}

// Bands splits [start, limit) into at most parts contiguous bands of near
// equal size, each at least minSize long (the last one may be shorter).
// It returns nil for an empty range.
func Bands(start, limit, parts, minSize int) []Band {
	n := limit - start
	if n <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if minSize < 1 {
		minSize = 1
	}
	if maxParts := (n + minSize - 1) / minSize; parts > maxParts {
		parts = maxParts
	}

	size := max((n+parts-1)/parts, minSize)
	bands := make([]Band, 0, parts)
	for s := start; s < limit; s += size {
		bands = append(bands, Band{Start: s, Limit: min(s+size, limit)})
	}
	return bands
}
