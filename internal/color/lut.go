package color

import "sync"

// DivideTableSize is the number of entries in the divide table.
const DivideTableSize = 1 << 16

// divideTable is built on first use and never written again, so concurrent
// readers need no locking.
var divideTable = sync.OnceValue(func() *[DivideTableSize]uint8 {
	var t [DivideTableSize]uint8
	for hi := range 256 {
		for v := range 256 {
			t[hi<<8|v] = DivideTableSlow(uint8(hi), uint8(v))
		}
	}
	return &t
})

// DivideTable returns the shared 8-bit divide table.
//
// Entry (d<<8)|v holds min(255, (v<<8)/d), or 0 when d is 0. Indexed by
// alpha it approximates dividing a premultiplied channel by alpha; indexed
// by the dominant channel it renormalizes v to full scale.
//
// The table must not be modified.
func DivideTable() *[DivideTableSize]uint8 {
	return divideTable()
}

// DivideTableSlow computes one divide table entry directly.
// It is the reference for DivideTable.
func DivideTableSlow(d, v uint8) uint8 {
	if d == 0 {
		return 0
	}
	q := (uint32(v) << 8) / uint32(d)
	if q > 255 {
		q = 255
	}
	return uint8(q)
}

// Divide8 looks up v divided by d in the shared table.
func Divide8(d, v uint8) uint8 {
	return DivideTable()[uint16(d)<<8|uint16(v)]
}
