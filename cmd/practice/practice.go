package practice

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/gigurra/ditdah/cmd/common"
	"github.com/gigurra/ditdah/pkg/history"
	"github.com/gigurra/ditdah/pkg/keyer"
	"github.com/gigurra/ditdah/pkg/morse"
	"github.com/gigurra/ditdah/pkg/score"
	"github.com/gigurra/ditdah/pkg/textgen"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	rateStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

type Params struct {
	File       string  `pos:"true" optional:"true" help:"Practice history file. Defaults to the standard history location."`
	Chars      int     `short:"n" help:"Text length in characters. 0 carries the last session's length." default:"0"`
	Scale      float64 `short:"s" help:"Weight decay exponent in (0.01, 1]. 0 carries the last session's scale." default:"0"`
	WPM        float64 `short:"w" help:"Character speed in words per minute. 0 carries the last session's speed." default:"0"`
	Farnsworth float64 `short:"F" help:"Spacing speed in words per minute. 0 adapts from the last session." default:"0"`
	MinWord    int     `short:"i" long:"min-word" help:"Shortest word length." default:"2"`
	MaxWord    int     `short:"x" long:"max-word" help:"Longest word length." default:"7"`
	Freq       float64 `help:"Tone frequency in Hz." default:"700"`
	Amp        float64 `short:"a" help:"Tone amplitude in (0, 1]." default:"0.3"`
	LeadIn     float64 `short:"l" long:"lead-in" help:"Silence before the first tone, in seconds." default:"1"`
	Seed       int64   `long:"seed" help:"Random seed. 0 picks one from the clock." default:"0"`
	Verbose    bool    `short:"v" help:"Enable debug logging." default:"false"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "practice",
		Short: "Run an adaptive copy practice session",
		Long: `Generate practice text weighted toward the characters you miss, play it
as Morse code, score your transcription, and append the session to the
history file. Length, scale, and speeds carry over from the last
session when not given, and the spacing speed adapts toward a 10%
error rate.`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params); err != nil {
				fmt.Fprintf(os.Stderr, "practice: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

// settings are the session parameters after filling the zero values
// from the last history record.
type settings struct {
	chars      int
	scale      float64
	charSpeed  float64
	farnsworth float64
}

func Run(params *Params) error {
	common.SetupLogging(params.Verbose)

	file := params.File
	if file == "" {
		file = common.DefaultHistoryFile()
	}

	var last *history.Record
	hasHistory, err := history.HasContent(file)
	if err != nil {
		return err
	}
	if hasHistory {
		rec, err := history.LoadLast(file)
		if err != nil {
			return err
		}
		last = &rec
	}

	s := resolve(params, last)
	if err := validateSession(params, s); err != nil {
		return err
	}
	log.Debug("session resolved",
		"chars", s.chars,
		"scale", s.scale,
		"charSpeed", s.charSpeed,
		"farnsworth", s.farnsworth)

	weights := make([]float64, len(history.Alphabet))
	for i := range weights {
		weights[i] = 1
	}
	if last != nil {
		copy(weights, last.Weights)
		if err := history.ScaleWeights(weights, s.scale); err != nil {
			return err
		}
	}

	text, err := textgen.Generate(textgen.Config{
		Weights: history.WeightMap(weights, textgen.DefaultCharset),
		MinWord: params.MinWord,
		MaxWord: params.MaxWord,
		Chars:   s.chars,
		Seed:    params.Seed,
	})
	if err != nil {
		return err
	}
	length := len([]rune(text))

	estimate, err := morse.Duration(text, s.charSpeed, s.farnsworth)
	if err != nil {
		return err
	}

	// Clear screen
	fmt.Print("\033[2J\033[H")

	fmt.Println(headerStyle.Render("📻 MORSE PRACTICE"))
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()
	fmt.Printf("Sending %d characters at %g/%g wpm, about %.0f seconds.\n",
		length, s.charSpeed, s.farnsworth, estimate.Seconds())
	fmt.Println("Type what you hear. Press Enter when done.")
	fmt.Println()
	fmt.Print("> ")

	if _, err := keyer.Play(text, keyer.Options{
		CharSpeedWPM:  s.charSpeed,
		FarnsworthWPM: s.farnsworth,
		FrequencyHz:   params.Freq,
		Amplitude:     params.Amp,
		LeadIn:        time.Duration(params.LeadIn * float64(time.Second)),
	}); err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return fmt.Errorf("cannot read transcription: %w", err)
	}
	got := common.CleanText(input)

	dist, counts := score.Diff(text, got)
	errRate := 100 * float64(dist) / float64(length)

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println(headerStyle.Render("📊 RESULTS"))
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println("Expected text:")
	printWrapped(text, 60)
	fmt.Println()
	fmt.Printf("🎯 Errors: %d out of %d = %s\n", dist, length, rateStyle.Render(fmt.Sprintf("%.1f%%", errRate)))
	if len(counts) > 0 {
		fmt.Println()
		common.ErrorTable(os.Stdout, counts)
	}
	fmt.Println()

	switch {
	case dist == 0:
		fmt.Println("🏆 Perfect copy!")
	case errRate <= 5:
		fmt.Println("🥇 Excellent! Nearly clean copy.")
	case errRate <= 10:
		fmt.Println("🥈 Good job! Right at the target error rate.")
	case errRate <= 25:
		fmt.Println("🥉 Not bad! Keep practicing.")
	default:
		fmt.Println("💪 Keep at it! A slower speed is fine too.")
	}
	fmt.Println()

	save, err := askYesNo(reader, os.Stdout, "Save this session?")
	if err != nil {
		return err
	}
	if !save {
		return nil
	}

	foldErrors(weights, counts)
	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create %s: %w", dir, err)
		}
	}
	return history.Append(file, history.Record{
		Time:       time.Now(),
		Scale:      s.scale,
		CharSpeed:  s.charSpeed,
		FarnsSpeed: s.farnsworth,
		Distance:   dist,
		Length:     length,
		Charset:    history.DefaultCharsetToken,
		Weights:    weights,
	})
}

// resolve fills the zero-valued parameters from the last session. A nil
// record means a fresh start on the built-in defaults.
func resolve(params *Params, last *history.Record) settings {
	s := settings{
		chars:      params.Chars,
		scale:      params.Scale,
		charSpeed:  params.WPM,
		farnsworth: params.Farnsworth,
	}
	if s.chars == 0 {
		s.chars = 250
		if last != nil {
			s.chars = last.Length
		}
	}
	if s.scale == 0 {
		s.scale = 1
		if last != nil {
			s.scale = last.Scale
		}
	}
	if s.charSpeed == 0 {
		s.charSpeed = 25
		if last != nil {
			s.charSpeed = last.CharSpeed
		}
	}
	if s.farnsworth == 0 {
		s.farnsworth = s.charSpeed
		if last != nil {
			s.farnsworth = nextFarnsworth(last, s.charSpeed)
		}
	}
	return s
}

// nextFarnsworth adapts the spacing speed toward a 10% error rate: a
// cleaner copy than that speeds the next session up, a sloppier one
// slows it down. The result is capped at the character speed, with a
// floor of 5 wpm.
func nextFarnsworth(last *history.Record, charSpeed float64) float64 {
	next := last.FarnsSpeed
	if last.Length > 0 {
		errRate := float64(last.Distance) / float64(last.Length)
		next *= 1 - (errRate - 0.1)
	}
	if next > charSpeed {
		next = charSpeed
	}
	if next < 5 {
		next = 5
	}
	return next
}

func validateSession(params *Params, s settings) error {
	if s.charSpeed < 1 || s.charSpeed > 500 {
		return fmt.Errorf("wpm must be between 1 and 500, got %g", s.charSpeed)
	}
	if s.farnsworth < 1 || s.farnsworth > 500 {
		return fmt.Errorf("farnsworth must be between 1 and 500, got %g", s.farnsworth)
	}
	if s.farnsworth > s.charSpeed {
		return fmt.Errorf("farnsworth speed cannot exceed the character speed")
	}
	if s.chars < 2 || s.chars > 10000 {
		return fmt.Errorf("chars must be between 2 and 10000, got %d", s.chars)
	}
	if s.scale <= 0.01 || s.scale > 1 {
		return fmt.Errorf("scale must be in (0.01, 1], got %g", s.scale)
	}
	if params.MinWord < 1 || params.MaxWord > 100 || params.MinWord > params.MaxWord {
		return fmt.Errorf("word lengths must satisfy 1 <= min <= max <= 100, got %d..%d", params.MinWord, params.MaxWord)
	}
	if params.Freq < 60 || params.Freq > 10000 {
		return fmt.Errorf("freq must be between 60 and 10000, got %g", params.Freq)
	}
	if params.Amp <= 0 || params.Amp > 1 {
		return fmt.Errorf("amp must be in (0, 1], got %g", params.Amp)
	}
	if params.LeadIn < 0 || params.LeadIn > 60 {
		return fmt.Errorf("lead-in must be between 0 and 60 seconds, got %g", params.LeadIn)
	}
	return nil
}

// foldErrors adds this session's per-character error counts onto the
// weights. Characters outside the weight alphabet are dropped.
func foldErrors(weights []float64, counts map[rune]int) {
	for ch, n := range counts {
		if i := history.CharIndex(ch); i >= 0 && i < len(weights) {
			weights[i] += float64(n)
		}
	}
}

// askYesNo prompts until the answer is a clear yes or no.
func askYesNo(r *bufio.Reader, w io.Writer, prompt string) (bool, error) {
	for {
		fmt.Fprintf(w, "%s [y/n] ", prompt)
		line, err := r.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("cannot read answer: %w", err)
		}
	}
}

func printWrapped(text string, width int) {
	words := strings.Fields(text)
	line := ""
	for _, word := range words {
		if len(line)+len(word)+1 > width {
			fmt.Println(line)
			line = word
		} else if line == "" {
			line = word
		} else {
			line += " " + word
		}
	}
	if line != "" {
		fmt.Println(line)
	}
}
