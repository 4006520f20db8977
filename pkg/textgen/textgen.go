// Package textgen produces random practice text: words of random
// length drawn from a charset, optionally skewed by per-character
// weights so that troublesome characters come up more often.
package textgen

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/gigurra/ditdah/pkg/history"
)

// DefaultCharset is the Koch-order progression, roughly easiest
// character to hardest.
const DefaultCharset = "kmuresnaptlwi.jz=foy,vg5/q92h38b?47c1d60x"

var (
	ErrBadLength  = errors.New("invalid length")
	ErrBadWordLen = errors.New("invalid word length range")
	ErrBadCharset = errors.New("invalid charset")
	ErrBadWeights = errors.New("invalid weights")
)

// Config selects what Generate produces.
type Config struct {
	Charset string           // empty means DefaultCharset
	Weights map[rune]float64 // per-character skew; absent characters weigh 1, nil means uniform
	MinWord int              // shortest word length
	MaxWord int              // longest word length
	Chars   int              // output length in characters, spaces included
	Seed    int64            // 0 seeds from the clock
}

func (c Config) charset() string {
	if c.Charset == "" {
		return DefaultCharset
	}
	return c.Charset
}

func (c Config) weight(ch rune) float64 {
	if w, ok := c.Weights[ch]; ok {
		return w
	}
	return 1
}

func (c Config) validate() error {
	if c.Chars < 2 {
		return fmt.Errorf("%w: %d characters, need at least 2", ErrBadLength, c.Chars)
	}
	if c.MinWord < 1 || c.MaxWord < c.MinWord {
		return fmt.Errorf("%w: min %d, max %d", ErrBadWordLen, c.MinWord, c.MaxWord)
	}
	charset := c.charset()
	for _, ch := range charset {
		if history.CharIndex(ch) < 0 {
			return fmt.Errorf("%w: %q is not a trainable character", ErrBadCharset, ch)
		}
	}
	if c.Weights == nil {
		return nil
	}
	for ch, w := range c.Weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: %q has weight %v", ErrBadWeights, ch, w)
		}
		if w != 1 && !strings.ContainsRune(charset, ch) {
			return fmt.Errorf("%w: %q is outside the charset", ErrBadWeights, ch)
		}
	}
	sum := 0.0
	for _, ch := range charset {
		sum += c.weight(ch)
	}
	if sum == 0 {
		return fmt.Errorf("%w: weights sum to zero", ErrBadWeights)
	}
	return nil
}

// Generate returns practice text of at most cfg.Chars characters:
// words drawn from the charset, separated by single spaces, never
// starting or ending with one. The last word may be truncated to fit.
func Generate(cfg Config) (string, error) {
	if err := cfg.validate(); err != nil {
		return "", err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	pick := cfg.picker(rng)

	var b strings.Builder
	b.Grow(cfg.Chars)
	for b.Len() < cfg.Chars {
		if b.Len() > 0 {
			// a word break is only worth it if at least one more
			// character fits after it
			if b.Len()+1 >= cfg.Chars {
				break
			}
			b.WriteByte(' ')
		}
		wordLen := cfg.MinWord + rng.Intn(cfg.MaxWord-cfg.MinWord+1)
		if rem := cfg.Chars - b.Len(); wordLen > rem {
			wordLen = rem
		}
		for i := 0; i < wordLen; i++ {
			b.WriteByte(pick())
		}
	}
	return b.String(), nil
}

// picker returns the character draw: uniform without weights, otherwise
// a binary search over the cumulative distribution.
func (c Config) picker(rng *rand.Rand) func() byte {
	charset := c.charset()
	if c.Weights == nil {
		return func() byte {
			return charset[rng.Intn(len(charset))]
		}
	}

	sum := 0.0
	for _, ch := range charset {
		sum += c.weight(ch)
	}
	cdf := make([]float64, len(charset))
	accum := 0.0
	for i, ch := range charset {
		accum += c.weight(ch)
		cdf[i] = accum / sum
	}
	return func() byte {
		return charset[sort.SearchFloat64s(cdf, rng.Float64())]
	}
}
