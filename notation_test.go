package tunesmith_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tunesmith/tunesmith"
)

func TestParseNotes(t *testing.T) {
	notes, err := tunesmith.ParseNotes("C\n-\n(C,E,G)x2", 0.25)
	if err != nil {
		t.Fatalf("ParseNotes failed: %v", err)
	}
	p := func(name tunesmith.PitchName) tunesmith.Pitch { return tunesmith.Pitch{Name: name, Octave: 4} }
	want := []tunesmith.Note{
		{Pitch: p(tunesmith.C), Length: 0.25, Offset: 0},
		{Pitch: p(tunesmith.C), Rest: true, Length: 0.25, Offset: 0.25},
		{Pitch: p(tunesmith.C), Length: 0.5, Offset: 0.5},
		{Pitch: p(tunesmith.E), Length: 0.5, Offset: 0.5},
		{Pitch: p(tunesmith.G), Length: 0.5, Offset: 0.5},
	}
	if !reflect.DeepEqual(notes, want) {
		t.Fatalf("got notes %+v, want %+v", notes, want)
	}
}

func TestParseNotesOctavesAndBlanks(t *testing.T) {
	notes, err := tunesmith.ParseNotes("\nA5\n\n  C#, E3 \r\n(Fs)x3\nG\n", 0.5)
	if err != nil {
		t.Fatalf("ParseNotes failed: %v", err)
	}
	want := []tunesmith.Note{
		{Pitch: tunesmith.Pitch{Name: tunesmith.A, Octave: 5}, Length: 0.5, Offset: 0},
		{Pitch: tunesmith.Pitch{Name: tunesmith.CSharp, Octave: 4}, Length: 0.5, Offset: 0.5},
		{Pitch: tunesmith.Pitch{Name: tunesmith.E, Octave: 3}, Length: 0.5, Offset: 0.5},
		{Pitch: tunesmith.Pitch{Name: tunesmith.FSharp, Octave: 4}, Length: 1.5, Offset: 1},
		{Pitch: tunesmith.Pitch{Name: tunesmith.G, Octave: 4}, Length: 0.5, Offset: 2.5},
	}
	if !reflect.DeepEqual(notes, want) {
		t.Fatalf("got notes %+v, want %+v", notes, want)
	}
}

func TestParseNotesMalformed(t *testing.T) {
	for _, input := range []string{"C#4", "C\nEb5x", "(C,E)", "(C,E)x", "(C,E)xtwo", "C)x2("} {
		notes, err := tunesmith.ParseNotes(input, 0.25)
		var merr *tunesmith.MalformedNoteError
		if !errors.As(err, &merr) {
			t.Errorf("ParseNotes(%q): expected MalformedNoteError, got %v", input, err)
		}
		if notes != nil {
			t.Errorf("ParseNotes(%q) returned notes %+v", input, notes)
		}
	}
}

func TestParseNotesInvalidPitch(t *testing.T) {
	_, err := tunesmith.ParseNotes("C\nH", 0.25)
	var perr *tunesmith.InvalidPitchError
	if !errors.As(err, &perr) {
		t.Fatalf("expected InvalidPitchError, got %v", err)
	}
	if perr.Symbol != "H" {
		t.Fatalf("symbol = %q, want H", perr.Symbol)
	}
}
