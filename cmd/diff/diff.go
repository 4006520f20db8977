package diff

import (
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/ditdah/cmd/common"
	"github.com/gigurra/ditdah/pkg/score"
	"github.com/spf13/cobra"
)

type Params struct {
	Want string `pos:"true" help:"File holding the text that was sent."`
	Got  string `pos:"true" help:"File holding the transcription."`
	Text bool   `short:"t" help:"Treat the arguments as literal text instead of file names." default:"false"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "diff",
		Short:       "Score a transcription against the sent text",
		Long:        "Compute the edit distance between the sent text and a transcription, with a per-character error breakdown.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "diff: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func Run(params *Params, stdout io.Writer) error {
	want, got := params.Want, params.Got
	if !params.Text {
		var err error
		if want, err = readFile(params.Want); err != nil {
			return err
		}
		if got, err = readFile(params.Got); err != nil {
			return err
		}
	}
	want = common.CleanText(want)
	got = common.CleanText(got)

	dist, counts := score.Diff(want, got)
	if length := len([]rune(want)); length > 0 {
		errPct := 100 * float64(dist) / float64(length)
		fmt.Fprintf(stdout, "%d errors out of %d = %.1f%%\n", dist, length, errPct)
	} else {
		fmt.Fprintf(stdout, "%d errors\n", dist)
	}

	if len(counts) > 0 {
		common.ErrorTable(stdout, counts)
	}
	return nil
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", path, err)
	}
	return string(data), nil
}
