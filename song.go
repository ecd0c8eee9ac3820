package tunesmith

import (
	"fmt"

	"github.com/viterin/vek"
)

type (
	// SongTrack binds a Track to the Instrument playing it and to its place
	// in the mix.
	SongTrack struct {
		Track      Track
		Instrument Instrument
		// Offset delays the start of the track, in seconds.
		Offset float64
		// Level is a linear gain.
		Level float64
		// Pan places the track in the stereo field: -10 is hard left, 0 is
		// center, 10 is hard right. Values outside the range extrapolate.
		Pan float64
		// Loops is how many times the track repeats in the song.
		Loops float64
	}

	// Song is a set of tracks mixed together into stereo. The whole mix
	// repeats Loops times.
	Song struct {
		Tracks []SongTrack
		Loops  float64
	}
)

// PanMax is the pan value of a track placed hard right.
const PanMax = 10.0

// Bind returns a SongTrack playing track with instr at unit level, centered
// and without delay, repeating as many times as the track itself says.
func Bind(track Track, instr Instrument) SongTrack {
	return SongTrack{Track: track, Instrument: instr, Level: 1, Loops: track.Loops}
}

// PanGains returns the linear left and right gains for a pan value. The gains
// always sum to one.
func PanGains(pan float64) (left, right float64) {
	right = (pan + PanMax) / (2 * PanMax)
	return 1 - right, right
}

// OffsetSamples is the track offset in samples, truncated.
func (t SongTrack) OffsetSamples(rate int) int {
	return int(t.Offset * float64(rate))
}

// Length returns the length of the track in the mix, offset included, in
// samples.
func (t SongTrack) Length(rate int) int {
	return t.OffsetSamples(rate) + TiledLength(t.Track.Length, t.Loops)
}

// Length returns the length of one repetition of the song in samples: the end
// of the track ending last.
func (s Song) Length(rate int) int {
	ret := 0
	for _, t := range s.Tracks {
		ret = max(ret, t.Length(rate))
	}
	return ret
}

// RenderSongTrack renders the track as it sounds in the song: looped as the
// binding says and scaled by its level.
func (s *Synth) RenderSongTrack(t SongTrack) (MonoBuffer, error) {
	track := t.Track
	track.Loops = t.Loops
	data, err := s.RenderTrack(t.Instrument, track)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		vek.MulNumber_Inplace(data, t.Level)
	}
	return data, nil
}

// Play mixes every track of the song into a stereo buffer and repeats the mix
// song.Loops times. Each track is placed at its offset and panned linearly;
// nothing is clipped or normalized. The random source is reset first.
func (s *Synth) Play(song Song) (AudioBuffer, error) {
	s.Reset()
	length := song.Length(s.SampleRate)
	left := make([]float64, length)
	right := make([]float64, length)
	for i, t := range song.Tracks {
		data, err := s.RenderSongTrack(t)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		if len(data) == 0 {
			continue
		}
		l, r := PanGains(t.Pan)
		offset := t.OffsetSamples(s.SampleRate)
		addAt(left, vek.MulNumber(data, l), offset)
		addAt(right, vek.MulNumber(data, r), offset)
	}
	buffer := make(AudioBuffer, length)
	for i := range buffer {
		buffer[i] = [2]float64{left[i], right[i]}
	}
	return buffer.Tile(song.Loops), nil
}
