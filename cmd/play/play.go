package play

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/charmbracelet/log"
	"github.com/gigurra/ditdah/cmd/common"
	"github.com/gigurra/ditdah/pkg/keyer"
	"github.com/gigurra/ditdah/pkg/morse"
	"github.com/spf13/cobra"
)

type Params struct {
	Text       []string `pos:"true" optional:"true" help:"Text to play. If none given, reads --file or stdin."`
	File       string   `short:"f" optional:"true" help:"Read the text from a file."`
	WPM        float64  `short:"w" help:"Character speed in words per minute." default:"25"`
	Farnsworth float64  `short:"F" help:"Spacing speed in words per minute. 0 means the same as --wpm." default:"0"`
	Freq       float64  `help:"Tone frequency in Hz." default:"700"`
	Amp        float64  `short:"a" help:"Tone amplitude in (0, 1]." default:"0.3"`
	LeadIn     float64  `short:"l" long:"lead-in" help:"Silence before the first tone, in seconds." default:"1"`
	Estimate   bool     `short:"e" help:"Print the playback duration instead of playing." default:"false"`
	Verbose    bool     `short:"v" help:"Enable debug logging." default:"false"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "play",
		Short:       "Play text as Morse code audio",
		Long:        "Encode text and play it as precisely timed Morse code tones. Characters without a Morse pattern are skipped.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params, os.Stdin, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "play: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func Run(params *Params, stdin io.Reader, stdout io.Writer) error {
	common.SetupLogging(params.Verbose)

	if err := validateParams(params); err != nil {
		return err
	}

	farns := params.Farnsworth
	if farns == 0 {
		farns = params.WPM
	}

	text, err := common.ReadText(params.Text, params.File, stdin)
	if err != nil {
		return err
	}

	if params.Estimate {
		d, err := morse.Duration(text, params.WPM, farns)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%.1fs\n", d.Seconds())
		return nil
	}

	elapsed, err := keyer.Play(text, keyer.Options{
		CharSpeedWPM:  params.WPM,
		FarnsworthWPM: farns,
		FrequencyHz:   params.Freq,
		Amplitude:     params.Amp,
		LeadIn:        time.Duration(params.LeadIn * float64(time.Second)),
	})
	if err != nil {
		return err
	}
	log.Debug("playback finished", "elapsed", elapsed)
	return nil
}

func validateParams(params *Params) error {
	if params.WPM < 1 || params.WPM > 500 {
		return fmt.Errorf("wpm must be between 1 and 500, got %g", params.WPM)
	}
	if params.Farnsworth != 0 && (params.Farnsworth < 1 || params.Farnsworth > 500) {
		return fmt.Errorf("farnsworth must be between 1 and 500, got %g", params.Farnsworth)
	}
	if params.Farnsworth > params.WPM {
		return fmt.Errorf("farnsworth speed cannot exceed the character speed")
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
