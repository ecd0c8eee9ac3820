package oto

import (
	"encoding/binary"
	"math"
)

// FloatBufferTo16BitLE converts samples to 16-bit little-endian integers,
// appending them to dst. Values outside [-1, 1] are clipped.
func FloatBufferTo16BitLE(buff []float64, dst []byte) []byte {
	for _, v := range buff {
		var uv int16
		switch {
		case v < -1.0:
			uv = -math.MaxInt16
		case v > 1.0:
			uv = math.MaxInt16
		case math.IsNaN(v):
			uv = 0
		default:
			uv = int16(v * math.MaxInt16)
		}
		dst = binary.LittleEndian.AppendUint16(dst, uint16(uv))
	}
	return dst
}
