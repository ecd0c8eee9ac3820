package tunesmith

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type (
	// PitchName is one of the twelve semitones of the chromatic scale, C
	// being the first. Stepping past B wraps back to C, one octave higher.
	PitchName int

	// Pitch is a semitone in a specific octave. Octave 4 is the reference
	// octave where A is exactly 440 Hz.
	Pitch struct {
		Name   PitchName
		Octave int
	}

	// InvalidPitchError is returned when a pitch symbol or a PitchName value
	// does not correspond to any of the twelve semitones.
	InvalidPitchError struct {
		Symbol string
	}
)

const (
	C PitchName = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
	NumPitchNames
)

// ReferenceOctave is the octave in which the reference frequencies are given.
const ReferenceOctave = 4

var referenceFrequencies = [NumPitchNames]float64{
	261.63, 277.18, 293.66, 311.13, 329.63, 349.23,
	369.99, 392.00, 415.30, 440.00, 466.16, 493.88,
}

var pitchNameStrings = [NumPitchNames]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

func (e *InvalidPitchError) Error() string {
	return fmt.Sprintf("invalid pitch %q", e.Symbol)
}

// ParsePitchName parses a pitch symbol. Sharps can be written either as C# or
// Cs; the latter is how older song files spell them.
func ParsePitchName(s string) (PitchName, error) {
	if len(s) == 2 && s[1] == 's' {
		s = s[:1] + "#"
	}
	for i, str := range pitchNameStrings {
		if str == s {
			return PitchName(i), nil
		}
	}
	return 0, &InvalidPitchError{Symbol: s}
}

// Valid reports if n is one of the twelve semitones.
func (n PitchName) Valid() bool {
	return n >= 0 && n < NumPitchNames
}

func (n PitchName) String() string {
	if !n.Valid() {
		return fmt.Sprintf("PitchName(%d)", int(n))
	}
	return pitchNameStrings[n]
}

// ReferenceFrequency returns the frequency of the name in the reference
// octave.
func (n PitchName) ReferenceFrequency() (float64, error) {
	if !n.Valid() {
		return 0, &InvalidPitchError{Symbol: n.String()}
	}
	return referenceFrequencies[n], nil
}

// Frequency returns the frequency of the pitch in Hz: the reference frequency
// of the name scaled by 2^(octave-4). Octaves are not bounded; extreme octaves
// just give extreme frequencies.
func (p Pitch) Frequency() (float64, error) {
	ref, err := p.Name.ReferenceFrequency()
	if err != nil {
		return 0, err
	}
	return math.Ldexp(ref, p.Octave-ReferenceOctave), nil
}

func (p Pitch) String() string {
	return fmt.Sprintf("%v%d", p.Name, p.Octave)
}

// StepUp returns the pitch one semitone above p.
func StepUp(p Pitch) (Pitch, error) {
	if !p.Name.Valid() {
		return p, &InvalidPitchError{Symbol: p.Name.String()}
	}
	if p.Name+1 < NumPitchNames {
		return Pitch{Name: p.Name + 1, Octave: p.Octave}, nil
	}
	return Pitch{Name: C, Octave: p.Octave + 1}, nil
}

// StepUpN returns the pitch the given number of whole tones above p. Half
// tones are expressed as fractions, so 1.5 is three semitones.
func StepUpN(p Pitch, wholeTones float64) (Pitch, error) {
	if !p.Name.Valid() {
		return p, &InvalidPitchError{Symbol: p.Name.String()}
	}
	var err error
	for range int(math.Round(wholeTones * 2)) {
		if p, err = StepUp(p); err != nil {
			return p, err
		}
	}
	return p, nil
}

// ParsePitch parses a pitch name optionally followed by an octave number, for
// example A, F#3 or Cs5. The octave defaults to ReferenceOctave.
func ParsePitch(s string) (Pitch, error) {
	i := strings.IndexAny(s, "-0123456789")
	if i < 0 {
		name, err := ParsePitchName(s)
		return Pitch{Name: name, Octave: ReferenceOctave}, err
	}
	name, err := ParsePitchName(s[:i])
	if err != nil {
		return Pitch{}, err
	}
	octave, err := strconv.Atoi(s[i:])
	if err != nil {
		return Pitch{}, &InvalidPitchError{Symbol: s}
	}
	return Pitch{Name: name, Octave: octave}, nil
}
