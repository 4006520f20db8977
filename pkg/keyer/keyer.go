// Package keyer renders Morse symbol streams as real-time audio. A
// playback session is a sample-accurate state machine exposed as a beep
// streamer: the speaker pulls stereo frames and the session advances
// symbol by symbol, sample by sample, synthesizing a sine tone with an
// anti-click fade envelope. The pull callback never allocates, blocks
// or does I/O; everything it needs is prepared when the session is
// created.
package keyer

import (
	"errors"
	"fmt"
	"time"

	"github.com/gigurra/ditdah/pkg/morse"
)

const (
	// SampleRate is the fixed output rate of the engine.
	SampleRate = 48000

	// bufferFrames is the speaker buffer size. Small keeps the latency
	// between symbol transitions and audible output low.
	bufferFrames = 64

	// fadeLen is the linear anti-click ramp at tone edges, in samples.
	fadeLen = 100
)

var (
	ErrBadFrequency = errors.New("invalid tone frequency")
	ErrBadAmplitude = errors.New("invalid amplitude")
	ErrBadLeadIn    = errors.New("invalid lead-in")
)

// Options are the tone and pacing parameters of one playback session.
type Options struct {
	CharSpeedWPM  float64
	FarnsworthWPM float64
	FrequencyHz   float64
	Amplitude     float64 // peak amplitude in (0, 1]
	LeadIn        time.Duration
}

func (o Options) validate() (morse.Timing, error) {
	t, err := morse.NewTiming(o.CharSpeedWPM, o.FarnsworthWPM)
	if err != nil {
		return morse.Timing{}, err
	}
	if o.FrequencyHz <= 0 {
		return morse.Timing{}, fmt.Errorf("%w: %g Hz", ErrBadFrequency, o.FrequencyHz)
	}
	if o.Amplitude <= 0 || o.Amplitude > 1 {
		return morse.Timing{}, fmt.Errorf("%w: %g is outside (0, 1]", ErrBadAmplitude, o.Amplitude)
	}
	if o.LeadIn < 0 {
		return morse.Timing{}, fmt.Errorf("%w: %v", ErrBadLeadIn, o.LeadIn)
	}
	return t, nil
}

// Play encodes text and plays it synchronously on the default speaker.
// It returns the rendered playback time, excluding the lead-in.
func Play(text string, opts Options) (time.Duration, error) {
	s, err := New(text, opts)
	if err != nil {
		return 0, err
	}
	return s.Play()
}
