package words

import (
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/ditdah/cmd/common"
	"github.com/gigurra/ditdah/pkg/textgen"
	"github.com/spf13/cobra"
)

type Params struct {
	File  string `pos:"true" optional:"true" help:"Word list file, one word per line with an optional weight column. Reads stdin when omitted."`
	Count int    `short:"n" help:"Number of words to draw." default:"10"`
	Seed  int64  `long:"seed" help:"Random seed. 0 picks one from the clock." default:"0"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "words",
		Short:       "Draw random words from a word list",
		Long:        "Draw random words from a word list, for callsign or common-word copy practice. Lines may carry a weight column to bias the draw.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params, os.Stdin, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "words: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func Run(params *Params, stdin io.Reader, stdout io.Writer) error {
	if params.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", params.Count)
	}

	var r io.Reader = stdin
	if params.File != "" {
		f, err := os.Open(params.File)
		if err != nil {
			return fmt.Errorf("cannot open %s: %w", params.File, err)
		}
		defer f.Close()
		r = f
	}

	entries, err := textgen.ParseWordList(r)
	if err != nil {
		return err
	}
	text, err := textgen.Words(entries, params.Count, params.Seed)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, text)
	return nil
}
