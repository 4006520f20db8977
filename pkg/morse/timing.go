package morse

import (
	"errors"
	"fmt"
)

// unitsPerWord is the length of the reference word PARIS in dot units,
// which is what defines words-per-minute for Morse code.
const unitsPerWord = 50

var (
	ErrBadSpeed  = errors.New("invalid speed")
	ErrEmptyText = errors.New("no encodable text")
	ErrBadSymbol = errors.New("invalid symbol in expanded stream")
)

// Timing holds the two base durations of Farnsworth-paced Morse. Dots,
// dashes and the gaps between elements of one character are multiples
// of DotSeconds (tied to the character speed). Gaps between characters
// and words are multiples of GapSeconds (tied to the Farnsworth speed),
// so spacing can stretch without deforming the tones themselves.
type Timing struct {
	DotSeconds float64
	GapSeconds float64
}

// NewTiming derives unit durations from character speed and Farnsworth
// speed, both in WPM. The character speed must be at least the
// Farnsworth speed and both must be positive.
func NewTiming(charWPM, farnsWPM float64) (Timing, error) {
	if charWPM <= 0 || farnsWPM <= 0 {
		return Timing{}, fmt.Errorf("%w: speeds must be positive, got %g/%g wpm", ErrBadSpeed, charWPM, farnsWPM)
	}
	if charWPM < farnsWPM {
		return Timing{}, fmt.Errorf("%w: character speed %g wpm is below farnsworth speed %g wpm", ErrBadSpeed, charWPM, farnsWPM)
	}
	return Timing{
		DotSeconds: 60 / (unitsPerWord * charWPM),
		GapSeconds: 60 / (unitsPerWord * farnsWPM),
	}, nil
}

// DotSamples is the dot length at the given sample rate, truncated.
func (t Timing) DotSamples(rate int) int {
	return int(t.DotSeconds * float64(rate))
}

// GapSamples is the farnsworth gap unit at the given sample rate, truncated.
func (t Timing) GapSamples(rate int) int {
	return int(t.GapSeconds * float64(rate))
}
