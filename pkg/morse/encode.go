package morse

import (
	"strings"
	"unicode"
)

// Encode converts text into the expanded symbol stream. Case does not
// matter. Characters within a word are separated by CharGap, words by
// WordGap. Whitespace acts as a word break: runs of whitespace collapse
// into a single pending word gap that is emitted only when a mapped
// character follows, so the output never begins or ends with a gap no
// matter how the input is padded. Characters without a Morse mapping
// are skipped silently; a skipped character neither emits a gap nor
// consumes a pending word break.
func Encode(text string) string {
	var b strings.Builder
	b.Grow(len(text) * (maxPatternLen + 1))

	emitted := false
	pendingWordGap := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if emitted {
				pendingWordGap = true
			}
			continue
		}
		p, ok := Pattern(r)
		if !ok {
			continue
		}
		if pendingWordGap {
			b.WriteByte(WordGap)
			pendingWordGap = false
		} else if emitted {
			b.WriteByte(CharGap)
		}
		b.WriteString(p)
		emitted = true
	}
	return b.String()
}
