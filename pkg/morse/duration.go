package morse

import (
	"fmt"
	"time"
)

// Duration estimates how long text takes to play at the given speeds,
// without touching any audio device. It walks the same per-symbol rule
// table as the playback state machine, so the estimate matches rendered
// audio to within sample-truncation error. Errors on invalid speeds and
// on text that encodes to nothing.
func Duration(text string, charWPM, farnsWPM float64) (time.Duration, error) {
	t, err := NewTiming(charWPM, farnsWPM)
	if err != nil {
		return 0, err
	}
	if text == "" {
		return 0, ErrEmptyText
	}
	expanded := Encode(text)
	if expanded == "" {
		return 0, fmt.Errorf("%w: no character of %q has a morse pattern", ErrEmptyText, text)
	}

	seconds := 0.0
	for i := 0; i < len(expanded); i++ {
		span, _ := SpanAt(expanded, i)
		seconds += float64(span.ToneDots+span.GapDots)*t.DotSeconds + float64(span.GapUnits)*t.GapSeconds
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
