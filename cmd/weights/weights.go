package weights

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/charmbracelet/lipgloss"
	"github.com/gigurra/ditdah/cmd/common"
	"github.com/gigurra/ditdah/pkg/history"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type Params struct {
	File    string `pos:"true" optional:"true" help:"Practice history file. Defaults to the standard history location."`
	Verbose bool   `short:"v" help:"Enable debug logging." default:"false"`
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	speedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "weights",
		Short:       "Show the last practice session and its character weights",
		Long: `Show the last record of a practice history file: when the session ran,
the speeds it used, how the transcription scored, and the accumulated
per-character error weights that steer text generation.`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "weights: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func Run(params *Params, stdout io.Writer) error {
	common.SetupLogging(params.Verbose)

	file := params.File
	if file == "" {
		file = common.DefaultHistoryFile()
	}

	rec, err := history.LoadLast(file)
	if err != nil {
		return err
	}

	charset := rec.Charset
	if charset == history.DefaultCharsetToken {
		charset = "default"
	}

	fmt.Fprintln(stdout, headerStyle.Render("Last session"))
	fmt.Fprintf(stdout, "  %s %s\n", labelStyle.Render("When:   "), rec.Time.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(stdout, "  %s %s\n", labelStyle.Render("Speed:  "),
		speedStyle.Render(fmt.Sprintf("%g/%g wpm", rec.CharSpeed, rec.FarnsSpeed)))
	if rec.Length > 0 {
		rate := 100 * float64(rec.Distance) / float64(rec.Length)
		fmt.Fprintf(stdout, "  %s %d errors out of %d = %.1f%%\n",
			labelStyle.Render("Score:  "), rec.Distance, rec.Length, rate)
	}
	fmt.Fprintf(stdout, "  %s %s\n", labelStyle.Render("Charset:"), charset)
	fmt.Fprintf(stdout, "  %s %g\n", labelStyle.Render("Scale:  "), rec.Scale)
	fmt.Fprintln(stdout)

	renderWeights(stdout, rec.Weights)
	return nil
}

// renderWeights prints the weight columns that have accumulated errors,
// heaviest first. Ties break alphabetically so the output is stable.
func renderWeights(w io.Writer, weights []float64) {
	type entry struct {
		ch     rune
		weight float64
	}
	var entries []entry
	for i, weight := range weights {
		if weight <= 0 {
			continue
		}
		ch, ok := history.CharAt(i)
		if !ok {
			continue
		}
		entries = append(entries, entry{ch, weight})
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No weights recorded yet.")
		return
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].weight != entries[j].weight {
			return entries[i].weight > entries[j].weight
		}
		return entries[i].ch < entries[j].ch
	})

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetAllowedRowLength(common.TerminalWidth())
	t.AppendHeader(table.Row{"Char", "Weight"})
	for _, e := range entries {
		t.AppendRow(table.Row{fmt.Sprintf("%q", e.ch), formatWeight(e.weight)})
	}
	t.Render()
}

// formatWeight drops the decimals on whole numbers, matching the
// history file format.
func formatWeight(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}
