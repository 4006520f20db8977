package weights

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gigurra/ditdah/pkg/history"
)

func writeHistory(t *testing.T, rec history.Record) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "history")
	if err := history.Append(file, rec); err != nil {
		t.Fatal(err)
	}
	return file
}

func unitWeights(overrides map[rune]float64) []float64 {
	ws := make([]float64, len(history.Alphabet))
	for i := range ws {
		ws[i] = 1
	}
	for ch, w := range overrides {
		ws[history.CharIndex(ch)] = w
	}
	return ws
}

func TestRun(t *testing.T) {
	file := writeHistory(t, history.Record{
		Time:       time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local),
		Scale:      0.9,
		CharSpeed:  25,
		FarnsSpeed: 18,
		Distance:   12,
		Length:     250,
		Charset:    history.DefaultCharsetToken,
		Weights:    unitWeights(map[rune]float64{'k': 3, '5': 0.5, '?': 0}),
	})

	var stdout bytes.Buffer
	if err := Run(&Params{File: file}, &stdout); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{
		"2026-03-14 09:26:53",
		"25/18 wpm",
		"12 errors out of 250 = 4.8%",
		"default",
		"'k'",
		"0.500",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "'?'") {
		t.Errorf("zero-weight characters should not be listed, got:\n%s", out)
	}
}

func TestRunNoWeightsYet(t *testing.T) {
	file := writeHistory(t, history.Record{
		Time:       time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local),
		Scale:      1,
		CharSpeed:  25,
		FarnsSpeed: 25,
		Charset:    "kmur",
		Weights:    make([]float64, len(history.Alphabet)),
	})

	var stdout bytes.Buffer
	if err := Run(&Params{File: file}, &stdout); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "kmur") {
		t.Errorf("custom charset should print verbatim, got:\n%s", out)
	}
	if !strings.Contains(out, "No weights recorded yet.") {
		t.Errorf("all-zero weights should print the placeholder, got:\n%s", out)
	}
}

func TestRunMalformedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history")
	if err := os.WriteFile(file, []byte("not a record\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	err := Run(&Params{File: file}, &stdout)
	if !errors.Is(err, history.ErrBadRecord) {
		t.Errorf("err = %v, want history.ErrBadRecord", err)
	}
}

func TestRunDefaultFileMissing(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	var stdout bytes.Buffer
	if err := Run(&Params{}, &stdout); err == nil {
		t.Error("Run should fail when the default history file does not exist")
	}
}
