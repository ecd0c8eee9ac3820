package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"

	"github.com/tunesmith/tunesmith"
	"github.com/tunesmith/tunesmith/oto"
	"github.com/tunesmith/tunesmith/songfile"
	"github.com/tunesmith/tunesmith/summary"
	"github.com/tunesmith/tunesmith/version"
)

var logger *log.Logger

var chords = map[string][]float64{
	"major":   tunesmith.MajorTriad,
	"minor":   tunesmith.MinorTriad,
	"seventh": tunesmith.SeventhChord,
}

func main() {
	logger = log.New(os.Stderr, "", log.Ltime)

	stdout := pflag.BoolP("stdout", "s", false, "Do not write files; write to standard output instead.")
	help := pflag.BoolP("help", "h", false, "Show help.")
	directory := pflag.StringP("output", "o", "", "Directory where to output all files. The directory and its parents are created if needed. By default, files are written to the working directory.")
	play := pflag.BoolP("play", "p", false, "Play the input songs (default behaviour when no other output is defined).")
	rawOut := pflag.BoolP("raw", "r", false, "Output the rendered song as .raw file. By default, saves stereo float32 buffer to disk.")
	wavOut := pflag.BoolP("wav", "w", false, "Output the rendered song as 16-bit .wav file.")
	pcm := pflag.BoolP("pcm", "c", false, "Convert .raw audio to 16-bit signed PCM.")
	info := pflag.BoolP("info", "i", false, "Print a summary of each song.")
	dump := pflag.Bool("dump", false, "Dump the parsed song structure.")
	rate := pflag.Int("rate", tunesmith.DefaultSampleRate, "Sample rate in Hz.")
	seed := pflag.Uint64("seed", 0, "Seed for noise instruments; 0 picks a random seed.")
	preview := pflag.String("preview", "", "Instead of songs, preview the named instrument.")
	chord := pflag.String("chord", "note", "Preview a single note or a major, minor or seventh chord.")
	root := pflag.String("root", "C4", "Root pitch of the previewed chord.")
	length := pflag.Float64("length", 1, "Length of the previewed chord, in seconds.")
	trackIndex := pflag.Int("track", -1, "Render only the track with this index, in mono, instead of the whole mix.")
	versionFlag := pflag.BoolP("version", "v", false, "Print version.")
	pflag.Usage = printUsage
	pflag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if *help || (pflag.NArg() == 0 && *preview == "") {
		pflag.Usage()
		os.Exit(0)
	}
	if *rate <= 0 {
		logger.Fatalf("sample rate should be > 0, got %v", *rate)
	}
	if !*rawOut && !*wavOut && !*info && !*dump {
		*play = true // if the user gives nothing to output, then the default behaviour is just to play the file
	}
	if *seed == 0 {
		*seed = rand.Uint64()
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	var audioContext *oto.Context
	playBuffer := func(samples []float64, numChannels int) error {
		if audioContext == nil {
			var err error
			if audioContext, err = oto.NewContext(*rate, numChannels); err != nil {
				return fmt.Errorf("could not acquire audio output: %w", err)
			}
		}
		if audioContext.NumChannels() != numChannels {
			return fmt.Errorf("audio output was opened with %d channels, cannot play %d", audioContext.NumChannels(), numChannels)
		}
		return audioContext.Play(ctx, samples)
	}
	output := func(name, extension string, contents []byte) error {
		if *stdout {
			_, err := os.Stdout.Write(contents)
			return err
		}
		dir := *directory
		if dir == "" {
			var err error
			if dir, err = os.Getwd(); err != nil {
				return fmt.Errorf("could not get working directory, specify the output directory explicitly: %w", err)
			}
		}
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("could not create output directory %v: %w", dir, err)
		}
		_, name = filepath.Split(name)
		f := filepath.Join(dir, strings.TrimSuffix(name, filepath.Ext(name))+extension)
		if err := os.WriteFile(f, contents, 0644); err != nil {
			return fmt.Errorf("could not write file %v: %w", f, err)
		}
		logger.Printf("wrote %v", f)
		return nil
	}
	synth := tunesmith.NewSynth(*rate, *seed)
	process := func(filename string) error {
		file, err := songfile.Load(filename)
		if err != nil {
			return err
		}
		song, err := file.Song(tunesmith.Instruments, *rate)
		if err != nil {
			return fmt.Errorf("could not build song: %w", err)
		}
		if *dump {
			spew.Fdump(os.Stdout, song)
		}
		if *info {
			if err := summary.Write(os.Stdout, song, synth); err != nil {
				return err
			}
		}
		if !*play && !*rawOut && !*wavOut {
			return nil
		}
		if *trackIndex >= 0 {
			return processTrack(synth, song, *trackIndex, filename, *rawOut, *wavOut, *play, *pcm, output, playBuffer)
		}
		buffer, err := synth.Play(song)
		if err != nil {
			return fmt.Errorf("could not render song: %w", err)
		}
		if *rawOut {
			raw, err := buffer.Raw(*pcm)
			if err != nil {
				return fmt.Errorf("could not generate .raw file: %w", err)
			}
			if err := output(filename, ".raw", raw); err != nil {
				return fmt.Errorf("error outputting .raw file: %w", err)
			}
		}
		if *wavOut {
			var ws writeSeeker
			if err := buffer.Wav(&ws, *rate); err != nil {
				return fmt.Errorf("could not generate .wav file: %w", err)
			}
			if err := output(filename, ".wav", ws.Bytes()); err != nil {
				return fmt.Errorf("error outputting .wav file: %w", err)
			}
		}
		if *play {
			return playBuffer(buffer.Interleave(), 2)
		}
		return nil
	}
	if *preview != "" {
		if err := previewInstrument(synth, *preview, *chord, *root, *length, *wavOut, output, playBuffer); err != nil {
			logger.Fatalf("could not preview %v: %v", *preview, err)
		}
		os.Exit(0)
	}
	retval := 0
	for _, param := range pflag.Args() {
		files := []string{param}
		if fi, err := os.Stat(param); err == nil && fi.IsDir() {
			if files, err = songFiles(param); err != nil {
				logger.Printf("could not glob the path %v for song files: %v", param, err)
				retval = 1
				continue
			}
		}
		for _, file := range files {
			if err := process(file); err != nil {
				logger.Printf("could not process file %v: %v", file, err)
				retval = 1
				if errors.Is(err, context.Canceled) {
					os.Exit(retval)
				}
			}
		}
	}
	os.Exit(retval)
}

// soloTrack renders one track of the song alone, looped and leveled as in the
// mix but neither offset nor panned.
func soloTrack(synth *tunesmith.Synth, song tunesmith.Song, index int) (tunesmith.MonoBuffer, error) {
	if index < 0 || index >= len(song.Tracks) {
		return nil, fmt.Errorf("track %d out of range, the song has %d tracks", index, len(song.Tracks))
	}
	synth.Reset()
	return synth.RenderSongTrack(song.Tracks[index])
}

func processTrack(
	synth *tunesmith.Synth, song tunesmith.Song, index int, filename string, rawOut, wavOut, play, pcm bool,
	output func(name, extension string, contents []byte) error,
	playBuffer func(samples []float64, numChannels int) error,
) error {
	buffer, err := soloTrack(synth, song, index)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%v-track%d", strings.TrimSuffix(filename, filepath.Ext(filename)), index)
	if rawOut {
		raw, err := tunesmith.Raw(buffer, pcm)
		if err != nil {
			return fmt.Errorf("could not generate .raw file: %w", err)
		}
		if err := output(name, ".raw", raw); err != nil {
			return fmt.Errorf("error outputting .raw file: %w", err)
		}
	}
	if wavOut {
		var ws writeSeeker
		if err := buffer.Wav(&ws, synth.SampleRate); err != nil {
			return fmt.Errorf("could not generate .wav file: %w", err)
		}
		if err := output(name, ".wav", ws.Bytes()); err != nil {
			return fmt.Errorf("error outputting .wav file: %w", err)
		}
	}
	if play {
		return playBuffer(buffer, 1)
	}
	return nil
}

func previewInstrument(
	synth *tunesmith.Synth, name, chord, root string, length float64, wavOut bool,
	output func(name, extension string, contents []byte) error,
	play func(samples []float64, numChannels int) error,
) error {
	instr, err := tunesmith.Instruments.New(name, tunesmith.InstrumentParams{})
	if err != nil {
		return err
	}
	p, err := tunesmith.ParsePitch(root)
	if err != nil {
		return err
	}
	var buffer tunesmith.MonoBuffer
	if chord == "note" {
		buffer, err = synth.Note(instr, p, length)
	} else if intervals, ok := chords[chord]; ok {
		buffer, err = synth.Chord(instr, p, length, intervals)
	} else {
		return fmt.Errorf("unknown chord %q, expected note, major, minor or seventh", chord)
	}
	if err != nil {
		return err
	}
	if wavOut {
		var ws writeSeeker
		if err := buffer.Wav(&ws, synth.SampleRate); err != nil {
			return err
		}
		return output(fmt.Sprintf("%v-%v-%v", instr.Name, chord, p), ".wav", ws.Bytes())
	}
	return play(buffer, 1)
}

func songFiles(dir string) ([]string, error) {
	var ret []string
	for _, pattern := range []string{"*.yml", "*.yaml", "*.json"} {
		files, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		ret = append(ret, files...)
	}
	return ret, nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "tunesmith command line utility for rendering and playing .yml/.json song files.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Instruments: %v\n", strings.Join(tunesmith.Instruments.Names(), ", "))
	pflag.PrintDefaults()
}
