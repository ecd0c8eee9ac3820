package tunesmith

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavBitDepth  = 16
	wavFormatPCM = 1
)

// WriteWav encodes interleaved samples as a 16-bit PCM .wav file. Samples are
// clipped to [-1, 1] before quantization.
func WriteWav(w io.WriteSeeker, data []float64, numChannels, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, wavBitDepth, numChannels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(data)),
		SourceBitDepth: wavBitDepth,
	}
	for i, v := range data {
		buf.Data[i] = int(quantize16(v))
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("could not write wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("could not finish wav file: %w", err)
	}
	return nil
}

// Wav writes the stereo buffer as a .wav file.
func (b AudioBuffer) Wav(w io.WriteSeeker, sampleRate int) error {
	return WriteWav(w, b.Interleave(), 2, sampleRate)
}

// Wav writes the mono buffer as a .wav file.
func (b MonoBuffer) Wav(w io.WriteSeeker, sampleRate int) error {
	return WriteWav(w, b, 1, sampleRate)
}

// Raw returns the interleaved samples as headerless little-endian data:
// clipped int16 if pcm16 is set, float32 otherwise.
func Raw(data []float64, pcm16 bool) ([]byte, error) {
	buf := new(bytes.Buffer)
	var err error
	if pcm16 {
		int16data := make([]int16, len(data))
		for i, v := range data {
			int16data[i] = quantize16(v)
		}
		err = binary.Write(buf, binary.LittleEndian, int16data)
	} else {
		float32data := make([]float32, len(data))
		for i, v := range data {
			float32data[i] = float32(v)
		}
		err = binary.Write(buf, binary.LittleEndian, float32data)
	}
	if err != nil {
		return nil, fmt.Errorf("Raw failed: %w", err)
	}
	return buf.Bytes(), nil
}

// Raw returns the stereo buffer as raw interleaved data; see Raw.
func (b AudioBuffer) Raw(pcm16 bool) ([]byte, error) {
	return Raw(b.Interleave(), pcm16)
}

func quantize16(v float64) int16 {
	if math.IsNaN(v) {
		return 0
	}
	return int16(math.Round(clamp(v, -1, 1) * math.MaxInt16))
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
