// Package oto plays rendered audio through the host's audio output.
package oto

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Context is an audio output of a fixed sample rate and channel count. Only
// one Context can exist per process.
type Context struct {
	ctx         *oto.Context
	numChannels int
}

// pollInterval is how often Play checks if the player has finished.
const pollInterval = 10 * time.Millisecond

// NewContext opens the audio output.
func NewContext(sampleRate, numChannels int) (*Context, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: numChannels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &Context{ctx: ctx, numChannels: numChannels}, nil
}

// NumChannels returns the channel count the context was opened with.
func (c *Context) NumChannels() int {
	return c.numChannels
}

// Play plays interleaved samples and blocks until they have been played or ctx
// is done.
func (c *Context) Play(ctx context.Context, samples []float64) error {
	if len(samples)%c.numChannels != 0 {
		return fmt.Errorf("sample count %d is not a multiple of the channel count %d", len(samples), c.numChannels)
	}
	pcm := FloatBufferTo16BitLE(samples, make([]byte, 0, len(samples)*2))
	player := c.ctx.NewPlayer(bytes.NewReader(pcm))
	defer player.Close()
	player.Play()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	if err := c.ctx.Err(); err != nil {
		return fmt.Errorf("oto context failed: %w", err)
	}
	return nil
}
