// Package summary prints a human readable overview of a song: its length and,
// for every track, the instrument, mix settings, peak level and a grid of the
// beat slots.
package summary

import (
	"embed"
	"fmt"
	"io"
	"math"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/tunesmith/tunesmith"
	"github.com/viterin/vek"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed summary.tmpl
var templateFS embed.FS

type (
	songData struct {
		Seconds    float64
		Samples    int
		SampleRate int
		Loops      float64
		Tracks     []trackData
	}

	trackData struct {
		Index      int
		Instrument string
		Waveform   string
		Level      float64
		Pan        float64
		Loops      float64
		Offset     float64
		Notes      int
		Peak       float64
		Steps      []int
	}
)

var tmpl = template.Must(template.New("base").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "summary.tmpl"))

// Write renders every track of the song with the synth to measure its peak and
// writes the summary to w. Tracks draw noise in the same order as in
// Synth.Play, so the peaks are those of the played song.
func Write(w io.Writer, song tunesmith.Song, synth *tunesmith.Synth) error {
	rate := synth.SampleRate
	synth.Reset()
	length := tunesmith.TiledLength(song.Length(rate), song.Loops)
	data := songData{
		Seconds:    float64(length) / float64(rate),
		Samples:    length,
		SampleRate: rate,
		Loops:      song.Loops,
	}
	title := cases.Title(language.English)
	for i, t := range song.Tracks {
		rendered, err := synth.RenderSongTrack(t)
		if err != nil {
			return fmt.Errorf("could not render track %d: %w", i, err)
		}
		data.Tracks = append(data.Tracks, trackData{
			Index:      i,
			Instrument: t.Instrument.Name,
			Waveform:   title.String(t.Instrument.Waveform.String()),
			Level:      t.Level,
			Pan:        t.Pan,
			Loops:      t.Loops,
			Offset:     t.Offset,
			Notes:      countNotes(t.Track),
			Peak:       Peak(rendered),
			Steps:      t.Track.Steps(),
		})
	}
	if err := tmpl.ExecuteTemplate(w, "summary", data); err != nil {
		return fmt.Errorf("could not execute summary template: %w", err)
	}
	return nil
}

// Peak returns the largest absolute sample value, or 0 for an empty buffer.
func Peak(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return math.Max(vek.Max(data), -vek.Min(data))
}

func countNotes(t tunesmith.Track) (ret int) {
	for _, n := range t.Notes {
		if !n.Rest {
			ret++
		}
	}
	return
}
