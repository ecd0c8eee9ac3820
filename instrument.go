package tunesmith

// Instrument is a waveform with an amplitude envelope. Instruments hold no
// state, so one instrument can be used by any number of tracks and songs.
type Instrument struct {
	Name     string   `yaml:"name,omitempty" json:"name,omitempty"`
	Waveform Waveform `yaml:"waveform" json:"waveform"`
	Envelope `yaml:",inline"`
	// NumRands is the number of summed random sines of a ManyRands
	// instrument; other waveforms ignore it.
	NumRands int `yaml:"n_rands,omitempty" json:"n_rands,omitempty"`
}

// Interval sets for Synth.Chord, in whole tones from the root.
var (
	MajorTriad   = []float64{0, 2, 3.5}
	MinorTriad   = []float64{0, 1.5, 3.5}
	SeventhChord = []float64{0, 2, 3.5, 5}
)
