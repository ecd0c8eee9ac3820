package tunesmith

import "github.com/viterin/vek"

// Envelope is a linear attack-decay-sustain-release amplitude profile. Attack,
// Decay and Release are durations in seconds, Sustain is the amplitude level
// held between the decay and the release, nominally in [0,1].
type Envelope struct {
	Attack  float64 `yaml:"attack" json:"attack"`
	Decay   float64 `yaml:"decay" json:"decay"`
	Sustain float64 `yaml:"sustain" json:"sustain"`
	Release float64 `yaml:"release" json:"release"`
}

// Profile returns the amplitude of the envelope for a note of n samples. The
// attack ramps 0 -> 1 and the decay 1 -> Sustain, both excluding their end
// value; the rest is held at Sustain, except for the final Release seconds,
// which ramp Sustain -> 0. Segments that do not fit in n samples are
// truncated: the attack and decay lose their ends, the release keeps its end,
// so a note always fades out when it has a release.
func (e Envelope) Profile(n int, rate int) []float64 {
	ret := make([]float64, n)
	attack := max(int(e.Attack*float64(rate)), 0)
	decay := max(int(e.Decay*float64(rate)), 0)
	release := max(int(e.Release*float64(rate)), 0)
	for i := range ret {
		switch {
		case i < attack:
			ret[i] = float64(i) / float64(attack)
		case i < attack+decay:
			ret[i] = 1 + (e.Sustain-1)*float64(i-attack)/float64(decay)
		default:
			ret[i] = e.Sustain
		}
	}
	for j := max(release-n, 0); j < release; j++ {
		ret[n-release+j] = e.Sustain - e.Sustain*float64(j)/float64(release)
	}
	return ret
}

// Apply returns x shaped by the envelope. x is not modified.
func (e Envelope) Apply(x []float64, rate int) []float64 {
	if len(x) == 0 {
		return []float64{}
	}
	return vek.Mul(x, e.Profile(len(x), rate))
}
