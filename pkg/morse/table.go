// Package morse converts text to Morse code symbol streams and does the
// unit/duration arithmetic behind Farnsworth-timed playback.
package morse

// Symbols of the expanded stream produced by Encode. Dot and Dash are
// tones, CharGap separates characters within a word, WordGap separates
// words.
const (
	Dot     = '.'
	Dash    = '-'
	CharGap = '|'
	WordGap = '/'
)

var patterns = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
	'.': ".-.-.-", ',': "--..--", '?': "..--..", '\'': ".----.",
	'!': "-.-.--", '/': "-..-.", '(': "-.--.", ')': "-.--.-",
	'&': ".-...", ':': "---...", ';': "-.-.-.", '=': "-...-",
	'+': ".-.-.", '-': "-....-", '_': "..--.-", '"': ".-..-.",
	'$': "...-..-", '@': ".--.-.",
}

// longest pattern in the table, used for exact output sizing in Encode
var maxPatternLen = func() int {
	n := 0
	for _, p := range patterns {
		if len(p) > n {
			n = len(p)
		}
	}
	return n
}()

// Pattern returns the dot/dash pattern for a character, normalized to
// uppercase. The second return is false for characters with no Morse
// mapping; that is the normal skip case, not an error.
func Pattern(r rune) (string, bool) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	p, ok := patterns[r]
	return p, ok
}
