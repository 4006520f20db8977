package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/ditdah/cmd/diff"
	"github.com/gigurra/ditdah/cmd/gen"
	"github.com/gigurra/ditdah/cmd/play"
	"github.com/gigurra/ditdah/cmd/practice"
	"github.com/gigurra/ditdah/cmd/weights"
	"github.com/gigurra/ditdah/cmd/words"
	"github.com/spf13/cobra"
)

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "ditdah",
		Short:   "Morse code practice trainer",
		Version: appVersion(),
		SubCmds: []*cobra.Command{
			play.Cmd(),
			gen.Cmd(),
			words.Cmd(),
			diff.Cmd(),
			weights.Cmd(),
			practice.Cmd(),
		},
	}.Run()
}

func appVersion() string {
	bi, hasBuilInfo := debug.ReadBuildInfo()
	if !hasBuilInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}
