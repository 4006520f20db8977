package textgen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/gigurra/ditdah/pkg/history"
	"github.com/samber/lo"
)

var ErrBadWordList = errors.New("invalid word list")

// WordEntry is one line of a word list: a word and its draw weight.
// Weight 0 means the list carried no weight column.
type WordEntry struct {
	Word   string
	Weight float64
}

// ParseWordList reads a word list, one word per line, each optionally
// followed by a weight. Either every line carries a weight or none
// does. Words may only use trainable characters.
func ParseWordList(r io.Reader) ([]WordEntry, error) {
	var entries []WordEntry
	hasWeight := -1 // -1 undecided, then 0 or 1

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		switch {
		case len(fields) == 0:
			return nil, fmt.Errorf("%w: line %d is empty", ErrBadWordList, lineNo)
		case len(fields) > 2:
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrBadWordList, lineNo, len(fields))
		}

		entry := WordEntry{Word: fields[0]}
		for _, ch := range entry.Word {
			if history.CharIndex(ch) < 0 {
				return nil, fmt.Errorf("%w: line %d: %q is not a trainable character", ErrBadWordList, lineNo, ch)
			}
		}

		if len(fields) == 2 {
			if hasWeight == 0 {
				return nil, fmt.Errorf("%w: line %d has a weight, earlier lines do not", ErrBadWordList, lineNo)
			}
			hasWeight = 1
			w, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: bad weight %q", ErrBadWordList, lineNo, fields[1])
			}
			if w < 0 {
				return nil, fmt.Errorf("%w: line %d: negative weight %v", ErrBadWordList, lineNo, w)
			}
			entry.Weight = w
		} else {
			if hasWeight == 1 {
				return nil, fmt.Errorf("%w: line %d is missing its weight", ErrBadWordList, lineNo)
			}
			hasWeight = 0
		}

		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no words", ErrBadWordList)
	}
	return entries, nil
}

// Words draws n words from the list, joined by single spaces. Entries
// with weights skew the draw; an all-zero list falls back to a uniform
// one.
func Words(entries []WordEntry, n int, seed int64) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("%w: no words", ErrBadWordList)
	}
	if n < 1 {
		return "", fmt.Errorf("%w: %d words, need at least 1", ErrBadLength, n)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	total := lo.SumBy(entries, func(e WordEntry) float64 { return e.Weight })

	words := make([]string, n)
	for i := range words {
		words[i] = drawWord(entries, total, rng)
	}
	return strings.Join(words, " "), nil
}

func drawWord(entries []WordEntry, total float64, rng *rand.Rand) string {
	if total <= 0 {
		return entries[rng.Intn(len(entries))].Word
	}
	r := rng.Float64() * total
	accum := 0.0
	for _, e := range entries {
		accum += e.Weight
		if r < accum {
			return e.Word
		}
	}
	return entries[len(entries)-1].Word
}
