package main

import (
	"reflect"
	"testing"

	"github.com/tunesmith/tunesmith"
)

func TestSoloTrack(t *testing.T) {
	track, err := tunesmith.TrackFromFixedBeat("C\n-\nE", 0.25, 2, 8000)
	if err != nil {
		t.Fatalf("TrackFromFixedBeat failed: %v", err)
	}
	noise := tunesmith.Instrument{Waveform: tunesmith.UniformNoise, Envelope: tunesmith.Envelope{Sustain: 1}}
	st := tunesmith.Bind(track, noise)
	st.Level = 0.5
	st.Pan = 7
	st.Offset = 0.3
	song := tunesmith.Song{Tracks: []tunesmith.SongTrack{st}, Loops: 1}
	synth := tunesmith.NewSynth(8000, 3)
	got, err := soloTrack(synth, song, 0)
	if err != nil {
		t.Fatalf("soloTrack failed: %v", err)
	}
	want, err := tunesmith.NewSynth(8000, 3).RenderSongTrack(st)
	if err != nil {
		t.Fatalf("RenderSongTrack failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("solo track differs from the rendered song track")
	}
	if len(got) != 2*track.Length {
		t.Fatalf("len = %v, want %v", len(got), 2*track.Length)
	}
	for _, index := range []int{-1, 1} {
		if _, err := soloTrack(synth, song, index); err == nil {
			t.Errorf("expected track %d to be out of range", index)
		}
	}
}
