package oto_test

import (
	"bytes"
	"testing"

	"github.com/tunesmith/tunesmith/oto"
)

func TestFloatBufferTo16BitLE(t *testing.T) {
	got := oto.FloatBufferTo16BitLE([]float64{0, 0.5, -2, 2}, nil)
	want := []byte{0x00, 0x00, 0xff, 0x3f, 0x01, 0x80, 0xff, 0x7f}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

func TestFloatBufferTo16BitLEAppends(t *testing.T) {
	got := oto.FloatBufferTo16BitLE([]float64{1}, []byte{0xaa})
	if want := []byte{0xaa, 0xff, 0x7f}; !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}
