package gen

import (
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/ditdah/cmd/common"
	"github.com/gigurra/ditdah/pkg/history"
	"github.com/gigurra/ditdah/pkg/textgen"
	"github.com/spf13/cobra"
)

type Params struct {
	Chars       int     `short:"n" help:"Output length in characters, spaces included." default:"250"`
	MinWord     int     `short:"i" long:"min-word" help:"Shortest word length." default:"2"`
	MaxWord     int     `short:"x" long:"max-word" help:"Longest word length." default:"7"`
	Charset     string  `short:"c" optional:"true" help:"Characters to draw from. Defaults to the Koch training order."`
	WeightsFile string  `short:"f" long:"weights-file" optional:"true" help:"Practice history file; character weights come from its last record."`
	Scale       float64 `short:"s" help:"Weight decay exponent in (0.01, 1]." default:"1"`
	Seed        int64   `long:"seed" help:"Random seed. 0 picks one from the clock." default:"0"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "gen",
		Short:       "Generate random practice text",
		Long:        "Generate random practice words from a character set, optionally biased by the error weights of past practice sessions.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "gen: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func Run(params *Params, stdout io.Writer) error {
	if err := validateParams(params); err != nil {
		return err
	}

	cfg := textgen.Config{
		Charset: params.Charset,
		MinWord: params.MinWord,
		MaxWord: params.MaxWord,
		Chars:   params.Chars,
		Seed:    params.Seed,
	}

	if params.WeightsFile != "" {
		rec, err := history.LoadLast(params.WeightsFile)
		if err != nil {
			return err
		}
		if err := history.ScaleWeights(rec.Weights, params.Scale); err != nil {
			return err
		}
		charset := params.Charset
		if charset == "" {
			charset = textgen.DefaultCharset
		}
		cfg.Weights = history.WeightMap(rec.Weights, charset)
	}

	text, err := textgen.Generate(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, text)
	return nil
}

func validateParams(params *Params) error {
	if params.Chars < 2 || params.Chars > 10000 {
		return fmt.Errorf("chars must be between 2 and 10000, got %d", params.Chars)
	}
	if params.MinWord < 1 || params.MaxWord > 100 || params.MinWord > params.MaxWord {
		return fmt.Errorf("word lengths must satisfy 1 <= min <= max <= 100, got %d..%d", params.MinWord, params.MaxWord)
	}
	if params.Scale <= 0.01 || params.Scale > 1 {
		return fmt.Errorf("scale must be in (0.01, 1], got %g", params.Scale)
	}
	return nil
}
