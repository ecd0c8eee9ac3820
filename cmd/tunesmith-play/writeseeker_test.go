package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/go-audio/wav"

	"github.com/tunesmith/tunesmith"
)

func TestWriteSeekerPatchesHeader(t *testing.T) {
	var ws writeSeeker
	if _, err := ws.Write([]byte("hello world")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := ws.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("seek failed: %v", err)
	}
	if _, err := ws.Write([]byte("J")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := ws.Seek(0, io.SeekEnd); err != nil {
		t.Fatalf("seek failed: %v", err)
	}
	ws.Write([]byte("!"))
	if got, want := string(ws.Bytes()), "Jello world!"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteSeekerHoldsValidWav(t *testing.T) {
	buffer := tunesmith.AudioBuffer{{0.5, -0.5}, {1, -1}, {0, 0}}
	var ws writeSeeker
	if err := buffer.Wav(&ws, 32000); err != nil {
		t.Fatalf("wav failed: %v", err)
	}
	dec := wav.NewDecoder(bytes.NewReader(ws.Bytes()))
	if !dec.IsValidFile() {
		t.Fatalf("rendered wav is not valid")
	}
	if dec.NumChans != 2 || dec.SampleRate != 32000 || dec.BitDepth != 16 {
		t.Fatalf("unexpected format: %v channels, %v Hz, %v bits", dec.NumChans, dec.SampleRate, dec.BitDepth)
	}
}
