package common

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

func DefaultParamEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}

// SetupLogging configures the default logger: warnings only, debug
// diagnostics when verbose.
func SetupLogging(verbose bool) {
	log.SetReportTimestamp(false)
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}

// ReadText resolves the text input shared by the playback commands:
// positional arguments win, then a file, then stdin.
func ReadText(args []string, file string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("cannot read %s: %w", file, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("cannot read stdin: %w", err)
	}
	return string(data), nil
}

// CleanText lowercases s and collapses every whitespace run into a
// single space, the normal form used for scoring transcriptions.
func CleanText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// TerminalWidth returns the stdout terminal width, or a default when
// stdout is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}
