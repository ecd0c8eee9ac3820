package tunesmith

import "math"

type (
	// Note is a pitch sounding for Length seconds, starting Offset seconds
	// from the beginning of its track. A rest occupies time but is silent;
	// its Pitch is ignored.
	Note struct {
		Pitch  Pitch
		Rest   bool
		Length float64
		Offset float64
	}

	// Track is a sequence of notes rendered by one instrument. Length is
	// the number of samples needed to fit every note and is fixed when the
	// track is constructed. Loops is how many times the track repeats;
	// fractional loops end with a partial repetition.
	Track struct {
		Notes  []Note
		Loops  float64
		Length int
		// StepSize is the duration of one beat slot, in seconds, if the
		// track was parsed from the fixed beat notation; zero otherwise.
		StepSize float64
	}
)

// End returns the time when the note stops sounding, in seconds.
func (n Note) End() float64 {
	return n.Offset + n.Length
}

// NewTrack constructs a track, computing its length in samples as the
// smallest count covering every note.
func NewTrack(notes []Note, loops float64, rate int) Track {
	end := 0.0
	for _, n := range notes {
		end = max(end, n.End())
	}
	return Track{
		Notes:  notes,
		Loops:  loops,
		Length: int(math.Ceil(end * float64(rate))),
	}
}

// TrackFromFixedBeat parses notation with ParseNotes and builds a track from
// the result.
func TrackFromFixedBeat(notation string, stepSize, loops float64, rate int) (Track, error) {
	notes, err := ParseNotes(notation, stepSize)
	if err != nil {
		return Track{}, err
	}
	t := NewTrack(notes, loops, rate)
	t.StepSize = stepSize
	return t, nil
}

// Steps returns one entry per beat slot of the track: the number of notes
// starting in that slot, or -1 if a rest starts there. Slots where nothing
// starts are 0. Returns nil if the track has no step size.
func (t Track) Steps() []int {
	if t.StepSize <= 0 {
		return nil
	}
	end := 0.0
	for _, n := range t.Notes {
		end = max(end, n.End())
	}
	ret := make([]int, int(math.Round(end/t.StepSize)))
	for _, n := range t.Notes {
		i := int(math.Round(n.Offset / t.StepSize))
		if i < 0 || i >= len(ret) {
			continue
		}
		if n.Rest {
			ret[i] = -1
		} else if ret[i] >= 0 {
			ret[i]++
		}
	}
	return ret
}
