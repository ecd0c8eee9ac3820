package songfile_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tunesmith/tunesmith"
	"github.com/tunesmith/tunesmith/songfile"
)

const testRate = 8000

const yamlSong = `bpm: 120
granularity: 0.5
loops: 2
tracks:
  - instrument: {name: bell, decay: 0.2}
    pan: -5
    notes: |
      C
      -
      (C,E,G)x2
  - instrument: {name: SinMachine}
    level: 0.5
    loops: 1.5
    offset: 0.25
    file: bass.txt
`

const jsonSong = `{
  "bpm": 60,
  "granularity": 1,
  "tracks": [
    {"instrument": {"name": "Crash"}, "notes": "C\nC"}
  ]
}`

func TestParseYAML(t *testing.T) {
	f, err := songfile.Parse([]byte(yamlSong))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if f.BPM != 120 || f.Granularity != 0.5 || f.Loops == nil || *f.Loops != 2 {
		t.Fatalf("unexpected song fields %+v", f)
	}
	if got := f.StepSize(); got != 0.25 {
		t.Fatalf("StepSize() = %v, want 0.25", got)
	}
	if len(f.Tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(f.Tracks))
	}
	bell := f.Tracks[0]
	if bell.Instrument.Name != "bell" || bell.Instrument.Decay == nil || *bell.Instrument.Decay != 0.2 || bell.Pan != -5 {
		t.Fatalf("unexpected first track %+v", bell)
	}
	if f.Tracks[1].File != "bass.txt" || f.Tracks[1].Level == nil || *f.Tracks[1].Level != 0.5 {
		t.Fatalf("unexpected second track %+v", f.Tracks[1])
	}
}

func TestParseJSON(t *testing.T) {
	f, err := songfile.Parse([]byte(jsonSong))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	song, err := f.Song(tunesmith.Instruments, testRate)
	if err != nil {
		t.Fatalf("Song failed: %v", err)
	}
	if song.Loops != 1 || len(song.Tracks) != 1 {
		t.Fatalf("unexpected song %+v", song)
	}
	track := song.Tracks[0]
	if track.Level != 1 || track.Loops != 1 || track.Instrument.Waveform != tunesmith.UniformNoise {
		t.Fatalf("defaults not applied: %+v", track)
	}
	if track.Track.Length != 2*testRate {
		t.Fatalf("track length = %v, want %v", track.Track.Length, 2*testRate)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := songfile.Parse([]byte("bpm: 120\ngranularity: 1\ntempo: 3\ntracks: []\n")); err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
}

func TestLoadResolvesNoteFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "song.yml"), []byte(yamlSong), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bass.txt"), []byte("C3\nG2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := songfile.Load(filepath.Join(dir, "song.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	song, err := f.Song(tunesmith.Instruments, testRate)
	if err != nil {
		t.Fatalf("Song failed: %v", err)
	}
	bell, bass := song.Tracks[0], song.Tracks[1]
	if bell.Instrument.Name != "Bell" || bell.Instrument.Decay != 0.2 || bell.Pan != -5 || bell.Loops != 1 {
		t.Fatalf("unexpected bell track %+v", bell)
	}
	if got := bell.Track.Steps(); len(got) != 4 || got[0] != 1 || got[1] != -1 || got[2] != 3 || got[3] != 0 {
		t.Fatalf("bell steps = %v", got)
	}
	if bass.Level != 0.5 || bass.Loops != 1.5 || bass.Offset != 0.25 {
		t.Fatalf("unexpected bass track %+v", bass)
	}
	if len(bass.Track.Notes) != 2 || bass.Track.Notes[1].Pitch != (tunesmith.Pitch{Name: tunesmith.G, Octave: 2}) {
		t.Fatalf("bass notes not read from file: %+v", bass.Track.Notes)
	}
	if song.Loops != 2 {
		t.Fatalf("song loops = %v, want 2", song.Loops)
	}
}

func TestSongErrors(t *testing.T) {
	tests := []struct {
		name string
		file songfile.File
		want error
	}{
		{"no notes", songfile.File{BPM: 120, Granularity: 1, Tracks: []songfile.Track{
			{Instrument: songfile.Instrument{Name: "Bell"}},
		}}, songfile.ErrMissingNoteSource},
		{"both sources", songfile.File{BPM: 120, Granularity: 1, Tracks: []songfile.Track{
			{Instrument: songfile.Instrument{Name: "Bell"}, Notes: "C", File: "c.txt"},
		}}, songfile.ErrMissingNoteSource},
		{"unknown instrument", songfile.File{BPM: 120, Granularity: 1, Tracks: []songfile.Track{
			{Instrument: songfile.Instrument{Name: "Kazoo"}, Notes: "C"},
		}}, tunesmith.ErrUnknownInstrument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.file.Song(tunesmith.Instruments, testRate)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	track := []songfile.Track{{Instrument: songfile.Instrument{Name: "Bell"}, Notes: "C"}}
	for _, f := range []songfile.File{
		{BPM: 0, Granularity: 1, Tracks: track},
		{BPM: 120, Granularity: -1, Tracks: track},
		{BPM: 120, Granularity: 1},
	} {
		if err := f.Validate(); err == nil {
			t.Errorf("expected %+v to be invalid", f)
		}
	}
	if err := (&songfile.File{BPM: 120, Granularity: 1, Tracks: track}).Validate(); err != nil {
		t.Errorf("valid file rejected: %v", err)
	}
}
