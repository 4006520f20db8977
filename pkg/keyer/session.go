package keyer

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/gigurra/ditdah/pkg/morse"
)

// Session plays one expanded symbol stream. It implements beep.Streamer
// and is advanced exclusively by the audio goroutine; Cancel, Done and
// Elapsed are safe to call from any other goroutine. A session is not
// reusable once it has finished.
type Session struct {
	stream string // expanded symbols, '.', '-', '|' and '/'
	freq   float64
	amp    float64

	dotLen int // samples per dot, character speed
	gapLen int // samples per gap unit, farnsworth speed

	// mutated only from Stream
	leadIn   int // silent samples before the first symbol
	pos      int // cursor into stream
	toneLen  int // length of the current tone, for the envelope
	toneLeft int // remaining samples of the current tone
	gapLeft  int // remaining samples of the current silence

	total  atomic.Int64 // samples rendered past the lead-in
	cancel atomic.Bool
	done   atomic.Bool
}

// New validates opts, encodes text and prepares a playback session.
// No audio device is touched until Play.
func New(text string, opts Options) (*Session, error) {
	timing, err := opts.validate()
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, morse.ErrEmptyText
	}
	stream := morse.Encode(text)
	if stream == "" {
		return nil, fmt.Errorf("%w: no character of %q has a morse pattern", morse.ErrEmptyText, text)
	}
	return &Session{
		stream: stream,
		freq:   opts.FrequencyHz,
		amp:    opts.Amplitude,
		dotLen: timing.DotSamples(SampleRate),
		gapLen: timing.GapSamples(SampleRate),
		leadIn: int(opts.LeadIn.Seconds() * SampleRate),
	}, nil
}

// Stream fills out with the next stereo samples. It satisfies
// beep.Streamer: n < len(out) together with ok == false means the
// session has drained.
func (s *Session) Stream(out [][2]float64) (int, bool) {
	if s.done.Load() {
		return 0, false
	}
	if s.cancel.Load() {
		s.done.Store(true)
		return 0, false
	}
	total := s.total.Load()
	for i := range out {
		if s.leadIn > 0 {
			s.leadIn--
			out[i][0] = 0
			out[i][1] = 0
			continue
		}
		if s.toneLeft == 0 && s.gapLeft == 0 && !s.next() {
			s.done.Store(true)
			s.total.Store(total)
			return i, false
		}
		var v float64
		if s.toneLeft > 0 {
			elapsed := s.toneLen - s.toneLeft
			fade := 1.0
			if elapsed < fadeLen {
				fade = float64(elapsed) / fadeLen
			} else if s.toneLeft < fadeLen {
				fade = float64(s.toneLeft) / fadeLen
			}
			phase := float64(total%SampleRate) / SampleRate
			v = fade * s.amp * math.Sin(2*math.Pi*s.freq*phase)
			s.toneLeft--
		} else {
			s.gapLeft--
		}
		out[i][0] = v
		out[i][1] = v
		total++
	}
	s.total.Store(total)
	return len(out), true
}

// next loads the tone and gap counters from the symbol under the
// cursor. Symbols can contribute zero samples, a trailing word gap for
// instance, so it keeps consuming until something is loaded or the
// stream ends.
func (s *Session) next() bool {
	for s.toneLeft == 0 && s.gapLeft == 0 {
		if s.pos >= len(s.stream) {
			return false
		}
		span, _ := morse.SpanAt(s.stream, s.pos)
		s.pos++
		s.toneLen = span.ToneDots * s.dotLen
		s.toneLeft = s.toneLen
		s.gapLeft = span.GapDots*s.dotLen + span.GapUnits*s.gapLen
	}
	return true
}

// Err satisfies beep.Streamer.
func (s *Session) Err() error { return nil }

// Cancel asks the session to stop. The next speaker pull outputs
// silence and the session counts as finished.
func (s *Session) Cancel() { s.cancel.Store(true) }

// Done reports whether the session has finished, by draining or by
// cancellation.
func (s *Session) Done() bool { return s.done.Load() }

// Elapsed is the rendered playback time so far, excluding the lead-in.
func (s *Session) Elapsed() time.Duration {
	return time.Duration(s.total.Load() * int64(time.Second) / SampleRate)
}

// Play plays the session synchronously on the default speaker and
// returns the rendered playback time.
func (s *Session) Play() (time.Duration, error) {
	if err := playSession(s); err != nil {
		return 0, err
	}
	return s.Elapsed(), nil
}
