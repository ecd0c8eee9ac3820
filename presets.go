package tunesmith

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v2"
)

//go:embed presets/*.yml
var presetFS embed.FS

type (
	// InstrumentParams override the envelope and waveform parameters of an
	// instrument preset. Nil fields keep the preset's value.
	InstrumentParams struct {
		Attack   *float64 `yaml:"attack" json:"attack"`
		Decay    *float64 `yaml:"decay" json:"decay"`
		Sustain  *float64 `yaml:"sustain" json:"sustain"`
		Release  *float64 `yaml:"release" json:"release"`
		NumRands *int     `yaml:"n_rands" json:"n_rands"`
	}

	// InstrumentFactory constructs an instrument from parameters.
	InstrumentFactory func(params InstrumentParams) (Instrument, error)

	// Registry maps instrument names to factories. Names are matched case
	// insensitively.
	Registry struct {
		names     map[string]string
		factories map[string]InstrumentFactory
	}
)

// ErrUnknownInstrument is returned when a registry has no instrument of the
// requested name.
var ErrUnknownInstrument = errors.New("unknown instrument")

// Instruments is the registry of the built-in presets.
var Instruments = func() *Registry {
	presets, err := LoadPresets(presetFS)
	if err != nil {
		panic(fmt.Sprintf("embedded presets are broken: %v", err))
	}
	r := NewRegistry()
	for _, p := range presets {
		r.Register(p.Name, PresetFactory(p))
	}
	return r
}()

// LoadPresets reads every .yml file of fsys, each containing one Instrument,
// sorted by file name.
func LoadPresets(fsys fs.FS) ([]Instrument, error) {
	files, err := fs.Glob(fsys, "*.yml")
	if err != nil {
		return nil, err
	}
	more, err := fs.Glob(fsys, "*/*.yml")
	if err != nil {
		return nil, err
	}
	files = append(files, more...)
	sort.Strings(files)
	var ret []Instrument
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("could not read preset %v: %w", file, err)
		}
		var instr Instrument
		if err := yaml.UnmarshalStrict(data, &instr); err != nil {
			return nil, fmt.Errorf("could not parse preset %v: %w", file, err)
		}
		if instr.Name == "" {
			instr.Name = path.Base(file[:len(file)-len(path.Ext(file))])
		}
		ret = append(ret, instr)
	}
	return ret, nil
}

// PresetFactory returns a factory that applies the parameters on top of
// preset. n_rands is only accepted by ManyRands instruments.
func PresetFactory(preset Instrument) InstrumentFactory {
	return func(params InstrumentParams) (Instrument, error) {
		ret := preset
		if params.Attack != nil {
			ret.Attack = *params.Attack
		}
		if params.Decay != nil {
			ret.Decay = *params.Decay
		}
		if params.Sustain != nil {
			ret.Sustain = *params.Sustain
		}
		if params.Release != nil {
			ret.Release = *params.Release
		}
		if params.NumRands != nil {
			if ret.Waveform != ManyRands {
				return Instrument{}, fmt.Errorf("%v does not take n_rands", preset.Name)
			}
			ret.NumRands = *params.NumRands
		}
		return ret, nil
	}
}

func NewRegistry() *Registry {
	return &Registry{names: map[string]string{}, factories: map[string]InstrumentFactory{}}
}

// Register adds a factory, replacing any previous one with the same name.
func (r *Registry) Register(name string, f InstrumentFactory) {
	key := foldName(name)
	r.names[key] = name
	r.factories[key] = f
}

// New constructs the named instrument.
func (r *Registry) New(name string, params InstrumentParams) (Instrument, error) {
	f, ok := r.factories[foldName(name)]
	if !ok {
		return Instrument{}, fmt.Errorf("%w: %q", ErrUnknownInstrument, name)
	}
	return f(params)
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	ret := make([]string, 0, len(r.names))
	for _, n := range r.names {
		ret = append(ret, n)
	}
	sort.Strings(ret)
	return ret
}

// foldName returns the case-folded registry key of name. Casers are stateful,
// so each call gets its own.
func foldName(name string) string {
	return cases.Fold().String(name)
}
