// Package songfile reads song description files. A song file lists tracks,
// each written in the fixed beat notation and played by a named instrument:
//
//	bpm: 120
//	granularity: 0.5
//	loops: 2
//	tracks:
//	  - instrument: {name: Bell, decay: 0.2}
//	    pan: -5
//	    notes: |
//	      C
//	      -
//	      (C,E,G)x2
//	  - instrument: {name: SinMachine}
//	    level: 0.5
//	    file: bass.txt
package songfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tunesmith/tunesmith"
	"gopkg.in/yaml.v3"
)

type (
	// File is the parsed contents of a song file.
	File struct {
		BPM float64 `yaml:"bpm" json:"bpm"`
		// Granularity is the length of one beat slot of the notation, as a
		// fraction of a beat.
		Granularity float64  `yaml:"granularity" json:"granularity"`
		Loops       *float64 `yaml:"loops,omitempty" json:"loops,omitempty"`
		Tracks      []Track  `yaml:"tracks" json:"tracks"`

		// Dir is the directory relative to which note files are read.
		Dir string `yaml:"-" json:"-"`
	}

	// Track describes one track of the song. Exactly one of File and Notes
	// should be set.
	Track struct {
		Instrument Instrument `yaml:"instrument" json:"instrument"`
		Pan        float64    `yaml:"pan,omitempty" json:"pan,omitempty"`
		Loops      *float64   `yaml:"loops,omitempty" json:"loops,omitempty"`
		Level      *float64   `yaml:"level,omitempty" json:"level,omitempty"`
		Offset     float64    `yaml:"offset,omitempty" json:"offset,omitempty"`
		File       string     `yaml:"file,omitempty" json:"file,omitempty"`
		Notes      string     `yaml:"notes,omitempty" json:"notes,omitempty"`
	}

	// Instrument names a registered instrument and overrides some of its
	// parameters.
	Instrument struct {
		Name                       string `yaml:"name" json:"name"`
		tunesmith.InstrumentParams `yaml:",inline"`
	}
)

// ErrMissingNoteSource is returned when a track has neither a note file nor
// inline notes, or has both.
var ErrMissingNoteSource = errors.New("track needs exactly one of file or notes")

// Load reads and parses a song file. Note files are looked up relative to the
// directory of the song file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read song file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	f.Dir = filepath.Dir(path)
	return f, nil
}

// Parse parses song file contents, given either as JSON or YAML. Unknown
// fields are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	jsonDec := json.NewDecoder(bytes.NewReader(data))
	jsonDec.DisallowUnknownFields()
	if errJSON := jsonDec.Decode(&f); errJSON != nil {
		f = File{}
		yamlDec := yaml.NewDecoder(bytes.NewReader(data))
		yamlDec.KnownFields(true)
		if errYaml := yamlDec.Decode(&f); errYaml != nil {
			return nil, fmt.Errorf("the song could not be parsed as .json (%v) or .yml (%w)", errJSON, errYaml)
		}
	}
	return &f, nil
}

// StepSize returns the length of one beat slot in seconds.
func (f *File) StepSize() float64 {
	return f.Granularity * 60 / f.BPM
}

// Validate checks the song level fields.
func (f *File) Validate() error {
	if f.BPM <= 0 {
		return errors.New("bpm should be > 0")
	}
	if f.Granularity <= 0 {
		return errors.New("granularity should be > 0")
	}
	if len(f.Tracks) == 0 {
		return errors.New("song contains no tracks")
	}
	return nil
}

// Song builds the song, constructing instruments from the registry and
// parsing the notes of every track at the given sample rate.
func (f *File) Song(instruments *tunesmith.Registry, rate int) (tunesmith.Song, error) {
	if err := f.Validate(); err != nil {
		return tunesmith.Song{}, err
	}
	song := tunesmith.Song{Loops: valueOr(f.Loops, 1)}
	for i, t := range f.Tracks {
		st, err := f.track(t, instruments, rate)
		if err != nil {
			return tunesmith.Song{}, fmt.Errorf("track %d: %w", i, err)
		}
		song.Tracks = append(song.Tracks, st)
	}
	return song, nil
}

func (f *File) track(t Track, instruments *tunesmith.Registry, rate int) (tunesmith.SongTrack, error) {
	instr, err := instruments.New(t.Instrument.Name, t.Instrument.InstrumentParams)
	if err != nil {
		return tunesmith.SongTrack{}, err
	}
	notation, err := f.notation(t)
	if err != nil {
		return tunesmith.SongTrack{}, err
	}
	track, err := tunesmith.TrackFromFixedBeat(notation, f.StepSize(), valueOr(t.Loops, 1), rate)
	if err != nil {
		return tunesmith.SongTrack{}, err
	}
	st := tunesmith.Bind(track, instr)
	st.Pan = t.Pan
	st.Offset = t.Offset
	st.Level = valueOr(t.Level, 1)
	return st, nil
}

func (f *File) notation(t Track) (string, error) {
	switch {
	case t.File != "" && t.Notes != "", t.File == "" && t.Notes == "":
		return "", ErrMissingNoteSource
	case t.Notes != "":
		return t.Notes, nil
	}
	path := t.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(f.Dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read notes: %w", err)
	}
	return string(data), nil
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
