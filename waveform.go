package tunesmith

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Waveform selects the generator an Instrument uses for its voices.
type Waveform int

const (
	Sine Waveform = iota
	DetunedSine
	Sawtooth
	Triangle
	UniformNoise
	ManyRands
	NumWaveforms
)

// Range of the randomly drawn frequencies of the ManyRands waveform, in Hz.
// The upper limit is exclusive.
const (
	ManyRandsMinFrequency = 220
	ManyRandsMaxFrequency = 1760
)

var waveformNames = [NumWaveforms]string{
	"sine", "detunedsine", "sawtooth", "triangle", "uniformnoise", "manyrands",
}

func (w Waveform) String() string {
	if w < 0 || w >= NumWaveforms {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// MarshalText implements encoding.TextMarshaler, so waveforms read nicely in
// preset files.
func (w Waveform) MarshalText() ([]byte, error) {
	if w < 0 || w >= NumWaveforms {
		return nil, fmt.Errorf("unknown waveform %d", int(w))
	}
	return []byte(waveformNames[w]), nil
}

func (w *Waveform) UnmarshalText(text []byte) error {
	for i, name := range waveformNames {
		if name == string(text) {
			*w = Waveform(i)
			return nil
		}
	}
	return fmt.Errorf("unknown waveform %q", text)
}

// NumSamples returns the number of samples a voice of the given duration
// spans: duration*rate, rounded. Negative durations span no samples.
func NumSamples(duration float64, rate int) int {
	n := int(math.Round(duration * float64(rate)))
	if n < 0 {
		return 0
	}
	return n
}

// GenerateSine samples sin(2*pi*f*t) at t = i/rate. The end time is not
// included.
func GenerateSine(freq, duration float64, rate int) []float64 {
	ret := make([]float64, NumSamples(duration, rate))
	w := 2 * math.Pi * freq / float64(rate)
	for i := range ret {
		ret[i] = math.Sin(w * float64(i))
	}
	return ret
}

// GenerateDetunedSine sums two sines one Hz apart, which beats once per
// second. The result is not normalized and peaks at 2.
func GenerateDetunedSine(freq, duration float64, rate int) []float64 {
	ret := make([]float64, NumSamples(duration, rate))
	w1 := 2 * math.Pi * freq / float64(rate)
	w2 := 2 * math.Pi * (freq + 1) / float64(rate)
	for i := range ret {
		ret[i] = math.Sin(w1*float64(i)) + math.Sin(w2*float64(i))
	}
	return ret
}

// GenerateSawtooth returns a rising ramp from -1 to 1 once per period. It is
// the closed form of -(2/pi)*atan(cot(pi*f*t)); a period boundary always
// samples as -1.
func GenerateSawtooth(freq, duration float64, rate int) []float64 {
	ret := make([]float64, NumSamples(duration, rate))
	for i := range ret {
		ret[i] = sawtoothAt(freq * float64(i) / float64(rate))
	}
	return ret
}

// GenerateTriangle is the absolute value of the sawtooth, shifted to
// [-0.5, 0.5].
func GenerateTriangle(freq, duration float64, rate int) []float64 {
	ret := make([]float64, NumSamples(duration, rate))
	for i := range ret {
		ret[i] = math.Abs(sawtoothAt(freq*float64(i)/float64(rate))) - 0.5
	}
	return ret
}

// GenerateUniformNoise draws independent uniform samples in [0,1) from r.
func GenerateUniformNoise(r *rand.Rand, duration float64, rate int) []float64 {
	ret := make([]float64, NumSamples(duration, rate))
	for i := range ret {
		ret[i] = r.Float64()
	}
	return ret
}

// GenerateManyRands sums n sines at integer frequencies drawn from r between
// ManyRandsMinFrequency and ManyRandsMaxFrequency. The sum is not normalized.
func GenerateManyRands(r *rand.Rand, n int, duration float64, rate int) []float64 {
	ret := make([]float64, NumSamples(duration, rate))
	for range n {
		freq := float64(ManyRandsMinFrequency + r.IntN(ManyRandsMaxFrequency-ManyRandsMinFrequency))
		w := 2 * math.Pi * freq / float64(rate)
		for i := range ret {
			ret[i] += math.Sin(w * float64(i))
		}
	}
	return ret
}

// sawtoothAt evaluates the sawtooth at phase cycles.
func sawtoothAt(cycles float64) float64 {
	return 2*(cycles-math.Floor(cycles)) - 1
}
