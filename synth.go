package tunesmith

import (
	"fmt"
	"math/rand/v2"

	"github.com/viterin/vek"
)

// DefaultSampleRate is the sample rate used unless another one is configured.
const DefaultSampleRate = 32000

// seedStream derives the second PCG word from the seed.
const seedStream = 0x9e3779b97f4a7c15

// Synth renders instruments, tracks and songs at a fixed sample rate. Noise
// voices draw from the synth's random source. Play restarts the source, so a
// song always renders the same with a given seed, whatever was rendered
// before. A Synth is not safe for concurrent use.
type Synth struct {
	SampleRate int
	seed       uint64
	src        *rand.PCG
	rand       *rand.Rand
}

// NewSynth returns a Synth rendering at sampleRate, with its random source
// seeded with seed.
func NewSynth(sampleRate int, seed uint64) *Synth {
	src := rand.NewPCG(seed, seed^seedStream)
	return &Synth{
		SampleRate: sampleRate,
		seed:       seed,
		src:        src,
		rand:       rand.New(src),
	}
}

// Reset restarts the random source from the seed.
func (s *Synth) Reset() {
	s.src.Seed(s.seed, s.seed^seedStream)
}

// Voice synthesizes the raw waveform of the instrument at freq, lasting length
// seconds. Unknown waveforms are silent.
func (s *Synth) Voice(instr Instrument, freq, length float64) []float64 {
	switch instr.Waveform {
	case Sine:
		return GenerateSine(freq, length, s.SampleRate)
	case DetunedSine:
		return GenerateDetunedSine(freq, length, s.SampleRate)
	case Sawtooth:
		return GenerateSawtooth(freq, length, s.SampleRate)
	case Triangle:
		return GenerateTriangle(freq, length, s.SampleRate)
	case UniformNoise:
		return GenerateUniformNoise(s.rand, length, s.SampleRate)
	case ManyRands:
		return GenerateManyRands(s.rand, instr.NumRands, length, s.SampleRate)
	default:
		return make([]float64, NumSamples(length, s.SampleRate))
	}
}

// EnvelopedVoice is the Voice shaped by the instrument's envelope.
func (s *Synth) EnvelopedVoice(instr Instrument, freq, length float64) []float64 {
	return instr.Envelope.Apply(s.Voice(instr, freq, length), s.SampleRate)
}

// Note synthesizes the raw voice of a single pitch.
func (s *Synth) Note(instr Instrument, p Pitch, length float64) (MonoBuffer, error) {
	freq, err := p.Frequency()
	if err != nil {
		return nil, err
	}
	return s.Voice(instr, freq, length), nil
}

// Chord sums the raw voices of the pitches the given intervals (in whole
// tones) above root. No envelope is applied and the sum is not normalized.
func (s *Synth) Chord(instr Instrument, root Pitch, length float64, intervals []float64) (MonoBuffer, error) {
	ret := make(MonoBuffer, NumSamples(length, s.SampleRate))
	for _, interval := range intervals {
		p, err := StepUpN(root, interval)
		if err != nil {
			return nil, fmt.Errorf("chord member %v above %v: %w", interval, root, err)
		}
		freq, err := p.Frequency()
		if err != nil {
			return nil, err
		}
		vek.Add_Inplace(ret, s.Voice(instr, freq, length))
	}
	return ret, nil
}

// RenderTrack renders every note of the track with the instrument, placing
// each enveloped voice at the note's offset, and repeats the result
// track.Loops times. Voices extending beyond the track length are cut.
func (s *Synth) RenderTrack(instr Instrument, track Track) (MonoBuffer, error) {
	buffer := make(MonoBuffer, track.Length)
	for _, note := range track.Notes {
		if note.Rest {
			continue
		}
		freq, err := note.Pitch.Frequency()
		if err != nil {
			return nil, fmt.Errorf("note at %vs: %w", note.Offset, err)
		}
		voice := s.EnvelopedVoice(instr, freq, note.Length)
		addAt(buffer, voice, int(note.Offset*float64(s.SampleRate)))
	}
	return buffer.Tile(track.Loops), nil
}

// addAt adds src into dst starting at offset, dropping whatever falls outside
// dst.
func addAt(dst, src []float64, offset int) {
	if offset < 0 {
		src = src[min(-offset, len(src)):]
		offset = 0
	}
	if offset >= len(dst) {
		return
	}
	n := min(len(src), len(dst)-offset)
	if n == 0 {
		return
	}
	vek.Add_Inplace(dst[offset:offset+n], src[:n])
}
