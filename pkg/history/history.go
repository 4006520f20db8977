// Package history stores practice session records in a flat text file,
// one record per line:
//
//	YYYY-MM-DD HH:MM:SS scale charSpeed farnsSpeed distance length charset w1 ... wN
//
// The weights align index-for-index with the fixed weight alphabet, so
// a record carries the accumulated error count of every trainable
// character. Only the last line of a file is ever loaded; appends never
// rewrite history.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Alphabet is the fixed weight alphabet. Weight column i of a record
// belongs to Alphabet[i].
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz.=,/?'"

// DefaultCharsetToken is stored in the charset field when the session
// ran the built-in default charset instead of a custom one.
const DefaultCharsetToken = "~"

const timeLayout = "2006-01-02 15:04:05"

var (
	ErrBadRecord = errors.New("malformed history record")
	ErrBadScale  = errors.New("invalid weight scale")
)

// Record is one practice session: when it ran, the speeds and scale it
// used, how the transcription scored, and the per-character error
// weights accumulated so far.
type Record struct {
	Time       time.Time
	Scale      float64
	CharSpeed  float64
	FarnsSpeed float64
	Distance   int
	Length     int
	Charset    string
	Weights    []float64 // one per Alphabet character
}

// CharIndex returns the weight column of ch, or -1 if ch is not in the
// alphabet. The alphabet is lowercase; case folding is the caller's
// business.
func CharIndex(ch rune) int {
	return strings.IndexRune(Alphabet, ch)
}

// CharAt returns the alphabet character of weight column i.
func CharAt(i int) (rune, bool) {
	if i < 0 || i >= len(Alphabet) {
		return 0, false
	}
	return rune(Alphabet[i]), true
}

// WeightMap projects alphabet-indexed weights onto the characters of a
// charset, the form the text generator takes. Characters outside the
// charset are left out, so stale weight columns cannot leak into a
// session that no longer trains them.
func WeightMap(weights []float64, charset string) map[rune]float64 {
	m := make(map[rune]float64, len(charset))
	for _, ch := range charset {
		if i := CharIndex(ch); i >= 0 && i < len(weights) {
			m[ch] = weights[i]
		}
	}
	return m
}

// HasContent reports whether the file exists and is non-empty. A
// missing file is not an error, it just has no content yet.
func HasContent(path string) (bool, error) {
	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return fi.Size() > 0, nil
}

// LoadLast parses the last non-blank line of the file into a Record.
// The weights are padded to the full alphabet length, so callers can
// index them by CharIndex directly.
func LoadLast(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	var last string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			last = scanner.Text()
		}
	}
	if err := scanner.Err(); err != nil {
		return Record{}, fmt.Errorf("error reading %s: %w", path, err)
	}
	if last == "" {
		return Record{}, fmt.Errorf("%w: %s has no records", ErrBadRecord, path)
	}

	rec, err := parseLine(last)
	if err != nil {
		return Record{}, err
	}
	log.Debug("loaded history record",
		"path", path,
		"time", rec.Time.Format(timeLayout),
		"distance", rec.Distance,
		"length", rec.Length)
	return rec, nil
}

func parseLine(line string) (Record, error) {
	fields := strings.Fields(line)

	// date, time, 5 numbers, charset, and at least one weight
	if len(fields) < 9 {
		return Record{}, fmt.Errorf("%w: %d fields, want at least 9", ErrBadRecord, len(fields))
	}

	when, err := time.Parse(timeLayout, fields[0]+" "+fields[1])
	if err != nil {
		return Record{}, fmt.Errorf("%w: bad datetime %q %q", ErrBadRecord, fields[0], fields[1])
	}

	nums := make([]float64, 5)
	for i, field := range fields[2:7] {
		nums[i], err = strconv.ParseFloat(field, 64)
		if err != nil {
			return Record{}, fmt.Errorf("%w: bad number %q", ErrBadRecord, field)
		}
	}

	charset := fields[7]
	weightFields := fields[8:]
	if len(weightFields) > len(Alphabet) {
		return Record{}, fmt.Errorf("%w: %d weights, max %d", ErrBadRecord, len(weightFields), len(Alphabet))
	}
	weights := make([]float64, len(Alphabet))
	for i, field := range weightFields {
		weights[i], err = strconv.ParseFloat(field, 64)
		if err != nil {
			return Record{}, fmt.Errorf("%w: bad weight %q", ErrBadRecord, field)
		}
	}

	return Record{
		Time:       when,
		Scale:      nums[0],
		CharSpeed:  nums[1],
		FarnsSpeed: nums[2],
		Distance:   int(nums[3]),
		Length:     int(nums[4]),
		Charset:    charset,
		Weights:    weights,
	}, nil
}

// Append writes the record as one line at the end of the file, creating
// it if needed.
func Append(path string, rec Record) error {
	if len(rec.Weights) != len(Alphabet) {
		return fmt.Errorf("%w: %d weights, want %d", ErrBadRecord, len(rec.Weights), len(Alphabet))
	}
	if rec.Charset == "" || strings.ContainsAny(rec.Charset, " \t") {
		return fmt.Errorf("%w: bad charset field %q", ErrBadRecord, rec.Charset)
	}

	var b strings.Builder
	b.WriteString(rec.Time.Format(timeLayout))
	b.WriteByte(' ')
	b.WriteString(formatNum(rec.Scale))
	b.WriteByte(' ')
	b.WriteString(formatNum(rec.CharSpeed))
	b.WriteByte(' ')
	b.WriteString(formatNum(rec.FarnsSpeed))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(rec.Distance))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(rec.Length))
	b.WriteByte(' ')
	b.WriteString(rec.Charset)
	for _, w := range rec.Weights {
		b.WriteByte(' ')
		b.WriteString(formatNum(w))
	}
	b.WriteByte('\n')

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("cannot write to %s: %w", path, err)
	}
	log.Debug("appended history record", "path", path, "bytes", b.Len())
	return nil
}

// ScaleWeights applies the per-session decay w -> w^scale in place, for
// scale in (0.01, 1]. Smaller scales flatten the weights harder, so old
// errors fade while fresh ones keep their edge. Negative weights reset
// to zero.
func ScaleWeights(weights []float64, scale float64) error {
	if scale <= 0.01 || scale > 1 {
		return fmt.Errorf("%w: %.3g is outside (0.01, 1]", ErrBadScale, scale)
	}
	for i, w := range weights {
		if w < 0 {
			weights[i] = 0
		} else {
			weights[i] = math.Pow(w, scale)
		}
	}
	return nil
}

// formatNum prints integer values without decimals and everything else
// with three, which keeps hand-edited history files readable.
func formatNum(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}
