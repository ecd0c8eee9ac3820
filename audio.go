package tunesmith

import "math"

type (
	// AudioBuffer is a buffer of stereo frames: [0] is the left channel and
	// [1] the right. Values are not normalized; sinks clip them.
	AudioBuffer [][2]float64

	// MonoBuffer is a buffer of single channel samples.
	MonoBuffer []float64
)

// Interleave returns the buffer as L, R, L, R... samples.
func (b AudioBuffer) Interleave() []float64 {
	ret := make([]float64, 0, len(b)*2)
	for _, f := range b {
		ret = append(ret, f[0], f[1])
	}
	return ret
}

// Tile repeats the buffer loops times; see Tile.
func (b AudioBuffer) Tile(loops float64) AudioBuffer {
	return Tile(b, loops)
}

// Tile repeats the buffer loops times; see Tile.
func (b MonoBuffer) Tile(loops float64) MonoBuffer {
	return Tile(b, loops)
}

// TiledLength is the length of a buffer of n elements repeated loops times:
// floor(loops) full repetitions and a partial one of round(frac(loops)*n)
// elements. Negative loops give zero.
func TiledLength(n int, loops float64) int {
	if loops <= 0 || n <= 0 {
		return 0
	}
	whole, frac := math.Modf(loops)
	return int(whole)*n + int(math.Round(frac*float64(n)))
}

// Tile returns s repeated floor(loops) times followed by the first
// round(frac(loops)*len(s)) elements of s.
func Tile[S ~[]E, E any](s S, loops float64) S {
	ret := make(S, 0, TiledLength(len(s), loops))
	for len(ret) < cap(ret) {
		ret = append(ret, s[:min(len(s), cap(ret)-len(ret))]...)
	}
	return ret
}
