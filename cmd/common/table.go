package common

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
)

// ErrorTable renders per-character error counts, worst first. Ties
// break alphabetically so the output is stable.
func ErrorTable(w io.Writer, counts map[rune]int) {
	chars := lo.Keys(counts)
	sort.Slice(chars, func(i, j int) bool {
		if counts[chars[i]] != counts[chars[j]] {
			return counts[chars[i]] > counts[chars[j]]
		}
		return chars[i] < chars[j]
	})

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetAllowedRowLength(TerminalWidth())
	t.AppendHeader(table.Row{"Char", "Errors"})
	for _, ch := range chars {
		t.AppendRow(table.Row{fmt.Sprintf("%q", ch), counts[ch]})
	}
	t.Render()
}
