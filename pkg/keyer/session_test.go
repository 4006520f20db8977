package keyer

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gigurra/ditdah/pkg/morse"
)

func testOptions() Options {
	return Options{
		CharSpeedWPM:  25,
		FarnsworthWPM: 25,
		FrequencyHz:   700,
		Amplitude:     0.3,
	}
}

// drain pulls a session dry through buffers of the given size and
// returns the left channel. It fails the test if the two channels ever
// differ.
func drain(t *testing.T, s *Session, bufSize int) []float64 {
	t.Helper()
	var mono []float64
	buf := make([][2]float64, bufSize)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] != buf[i][1] {
				t.Fatalf("channels differ at sample %d: left %v, right %v", len(mono), buf[i][0], buf[i][1])
			}
			mono = append(mono, buf[i][0])
		}
		if !ok {
			return mono
		}
	}
}

// expectedSamples walks the expanded stream span by span, the same
// arithmetic the duration estimate is built on.
func expectedSamples(t *testing.T, text string, timing morse.Timing) int {
	t.Helper()
	dotLen := timing.DotSamples(SampleRate)
	gapLen := timing.GapSamples(SampleRate)
	total := 0
	expanded := morse.Encode(text)
	for i := range expanded {
		span, ok := morse.SpanAt(expanded, i)
		if !ok {
			t.Fatalf("unexpected symbol in %q at offset %d", expanded, i)
		}
		total += (span.ToneDots+span.GapDots)*dotLen + span.GapUnits*gapLen
	}
	return total
}

func TestSessionRenderedSamples(t *testing.T) {
	cases := []struct {
		text        string
		charWPM     float64
		farnsWPM    float64
		leadIn      time.Duration
		bufSize     int
		wantSamples int // -1 derives the count from the span walk
	}{
		{"paris", 25, 25, 0, 64, 99072}, // 43 units of 2304 samples
		{"sos", 25, 25, 0, 64, 62208},   // 27 units of 2304 samples
		{"sos", 25, 25, 50 * time.Millisecond, 64, 62208},
		{"hello world", 20, 10, 0, 64, -1},
		{"e", 30, 30, 0, 37, -1},
		{"a b", 18, 12, 0, 37, -1},
	}
	for _, c := range cases {
		opts := testOptions()
		opts.CharSpeedWPM = c.charWPM
		opts.FarnsworthWPM = c.farnsWPM
		opts.LeadIn = c.leadIn
		s, err := New(c.text, opts)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", c.text, err)
		}
		timing, err := morse.NewTiming(c.charWPM, c.farnsWPM)
		if err != nil {
			t.Fatalf("NewTiming(%v, %v) failed: %v", c.charWPM, c.farnsWPM, err)
		}
		want := c.wantSamples
		if want < 0 {
			want = expectedSamples(t, c.text, timing)
		}
		leadInSamples := int(c.leadIn.Seconds() * SampleRate)

		mono := drain(t, s, c.bufSize)
		if len(mono) != leadInSamples+want {
			t.Errorf("%q at %v/%v wpm: rendered %d samples, want %d lead-in + %d",
				c.text, c.charWPM, c.farnsWPM, len(mono), leadInSamples, want)
		}
		if !s.Done() {
			t.Errorf("%q: session not done after draining", c.text)
		}
		if n, ok := s.Stream(make([][2]float64, 8)); n != 0 || ok {
			t.Errorf("%q: drained session streamed (%d, %v), want (0, false)", c.text, n, ok)
		}

		wantElapsed := time.Duration(int64(want) * int64(time.Second) / SampleRate)
		if got := s.Elapsed(); got != wantElapsed {
			t.Errorf("%q: Elapsed() = %v, want %v", c.text, got, wantElapsed)
		}

		d, err := morse.Duration(c.text, c.charWPM, c.farnsWPM)
		if err != nil {
			t.Fatalf("Duration(%q) failed: %v", c.text, err)
		}
		symbols := len(morse.Encode(c.text))
		if diff := math.Abs(d.Seconds()*SampleRate - float64(want)); diff > float64(symbols+1) {
			t.Errorf("%q: estimate is %.1f samples off the rendered count, allowed %d",
				c.text, diff, symbols+1)
		}
	}
}

func TestSessionLeadIn(t *testing.T) {
	opts := testOptions()
	opts.LeadIn = 100 * time.Millisecond
	s, err := New("sos", opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	mono := drain(t, s, 64)

	// 4800 samples of lead-in, and the first tone sample fades in from zero.
	leadInSamples := 4800
	for i := 0; i <= leadInSamples; i++ {
		if mono[i] != 0 {
			t.Fatalf("sample %d = %v during lead-in, want silence", i, mono[i])
		}
	}
	if mono[leadInSamples+1] == 0 {
		t.Errorf("sample %d still silent after lead-in", leadInSamples+1)
	}
	if got := s.Elapsed(); got != 1296*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 1.296s excluding the lead-in", got)
	}
}

func TestSessionFadeEnvelope(t *testing.T) {
	opts := testOptions()
	s, err := New("t", opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	mono := drain(t, s, 64)

	toneLen := 3 * 2304 // one dash at 25 wpm
	if len(mono) != toneLen {
		t.Fatalf("rendered %d samples, want %d", len(mono), toneLen)
	}
	if mono[0] != 0 {
		t.Errorf("first tone sample = %v, want 0", mono[0])
	}
	for k, got := range mono {
		fade := 1.0
		if k < fadeLen {
			fade = float64(k) / fadeLen
		} else if toneLen-k < fadeLen {
			fade = float64(toneLen-k) / fadeLen
		}
		phase := float64(k%SampleRate) / SampleRate
		want := fade * opts.Amplitude * math.Sin(2*math.Pi*opts.FrequencyHz*phase)
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("sample %d = %v, want %v", k, got, want)
		}
	}
}

func TestSessionGapSilence(t *testing.T) {
	s, err := New("ee", testOptions())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	mono := drain(t, s, 64)

	// ".|." at 25 wpm: 2304 sample tone, 6912 sample character gap,
	// 2304 sample tone.
	if len(mono) != 11520 {
		t.Fatalf("rendered %d samples, want 11520", len(mono))
	}
	for i := 2304; i < 9216; i++ {
		if mono[i] != 0 {
			t.Fatalf("sample %d = %v inside the character gap, want silence", i, mono[i])
		}
	}

	// The oscillator phase keeps running through gaps, so the second
	// tone resumes it rather than restarting at zero.
	k := 9217
	phase := float64(k%SampleRate) / SampleRate
	want := (1.0 / fadeLen) * 0.3 * math.Sin(2*math.Pi*700*phase)
	if math.Abs(mono[k]-want) > 1e-12 {
		t.Errorf("sample %d = %v, want %v", k, mono[k], want)
	}
}

func TestSessionCancel(t *testing.T) {
	s, err := New("sos sos sos", testOptions())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	buf := make([][2]float64, 64)
	for i := 0; i < 10; i++ {
		if n, ok := s.Stream(buf); n != 64 || !ok {
			t.Fatalf("pull %d streamed (%d, %v), want (64, true)", i, n, ok)
		}
	}
	if s.Done() {
		t.Fatal("session done before cancellation")
	}
	s.Cancel()
	if n, ok := s.Stream(buf); n != 0 || ok {
		t.Errorf("Stream after Cancel = (%d, %v), want (0, false)", n, ok)
	}
	if !s.Done() {
		t.Error("session not done after cancellation")
	}
	if got, want := s.Elapsed(), time.Duration(640*int64(time.Second)/SampleRate); got != want {
		t.Errorf("Elapsed() = %v, want %v", got, want)
	}
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		mutate  func(*Options)
		wantErr error
	}{
		{"empty text", "", func(o *Options) {}, morse.ErrEmptyText},
		{"no encodable characters", "#~#", func(o *Options) {}, morse.ErrEmptyText},
		{"zero char speed", "sos", func(o *Options) { o.CharSpeedWPM = 0 }, morse.ErrBadSpeed},
		{"farnsworth above char speed", "sos", func(o *Options) { o.FarnsworthWPM = 30 }, morse.ErrBadSpeed},
		{"zero frequency", "sos", func(o *Options) { o.FrequencyHz = 0 }, ErrBadFrequency},
		{"negative frequency", "sos", func(o *Options) { o.FrequencyHz = -700 }, ErrBadFrequency},
		{"zero amplitude", "sos", func(o *Options) { o.Amplitude = 0 }, ErrBadAmplitude},
		{"amplitude above one", "sos", func(o *Options) { o.Amplitude = 1.5 }, ErrBadAmplitude},
		{"negative lead-in", "sos", func(o *Options) { o.LeadIn = -time.Second }, ErrBadLeadIn},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			opts := testOptions()
			c.mutate(&opts)
			_, err := New(c.text, opts)
			if !errors.Is(err, c.wantErr) {
				t.Errorf("New(%q) error = %v, want %v", c.text, err, c.wantErr)
			}
		})
	}

	opts := testOptions()
	opts.Amplitude = 1 // upper bound is inclusive
	s, err := New("sos", opts)
	if err != nil {
		t.Fatalf("New with valid options failed: %v", err)
	}
	if s.Done() {
		t.Error("fresh session reports done")
	}
	if got := s.Elapsed(); got != 0 {
		t.Errorf("fresh session Elapsed() = %v, want 0", got)
	}
}
