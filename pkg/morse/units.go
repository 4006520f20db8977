package morse

import "fmt"

// Span is the extent of one expanded-stream symbol: tone length and
// element gap as multiples of the dot, separator gap as a multiple of
// the farnsworth gap unit. The playback state machine and the duration
// estimator both run on this one rule table, so rendered audio and
// dry-run estimates cannot drift apart.
type Span struct {
	ToneDots int
	GapDots  int
	GapUnits int
}

// SpanAt returns the span of the symbol at byte offset i of an expanded
// stream. An element gap follows a dot or dash only when another tone
// comes next within the same character; the 3 and 7 unit separators
// carry the full inter-character and word silence themselves. A
// trailing word gap spans nothing. The second return is false for a
// symbol outside the stream alphabet, in which case the span is one
// element gap of silence.
func SpanAt(expanded string, i int) (Span, bool) {
	switch expanded[i] {
	case Dot:
		return Span{ToneDots: 1, GapDots: elementGap(expanded, i)}, true
	case Dash:
		return Span{ToneDots: 3, GapDots: elementGap(expanded, i)}, true
	case CharGap:
		return Span{GapUnits: 3}, true
	case WordGap:
		if i+1 < len(expanded) {
			return Span{GapUnits: 7}, true
		}
		return Span{}, true
	default:
		return Span{GapDots: 1}, false
	}
}

func elementGap(expanded string, i int) int {
	if i+1 < len(expanded) && (expanded[i+1] == Dot || expanded[i+1] == Dash) {
		return 1
	}
	return 0
}

// UnitCount sums the abstract time units of an expanded stream: dot=1,
// dash=3, element gap=1, character gap=3, word gap=7. It errors on any
// symbol outside the four-symbol alphabet.
func UnitCount(expanded string) (int, error) {
	total := 0
	for i := 0; i < len(expanded); i++ {
		span, ok := SpanAt(expanded, i)
		if !ok {
			return 0, fmt.Errorf("%w: %q at offset %d", ErrBadSymbol, expanded[i], i)
		}
		total += span.ToneDots + span.GapDots + span.GapUnits
	}
	return total, nil
}
