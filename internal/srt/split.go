package srt

import (
	"fmt"
	"strings"
)

// Lang names one language layer of a trilingual block.
type Lang string

const (
	Japanese Lang = "ja"
	Chinese  Lang = "zh"
	English  Lang = "en"
)

// Layers lists the language layers in text-line order.
var Layers = []Lang{Japanese, Chinese, English}

// Split separates trilingual blocks into one block list per language.
// A language only receives a block when that line exists and is non-blank.
// Each output is renumbered from 1.
func Split(blocks []Block) map[Lang][]Block {
	out := make(map[Lang][]Block, len(Layers))
	for _, b := range blocks {
		for pos, lang := range Layers {
			if pos >= len(b.Lines) || isBlank(b.Lines[pos]) {
				continue
			}
			out[lang] = append(out[lang], Block{
				Index: IndexOf(len(out[lang]) + 1),
				Start: b.Start,
				End:   b.End,
				Lines: []string{strings.TrimRightFunc(b.Lines[pos], isSpace)},
			})
		}
	}
	return out
}

// Render writes blocks back to SubRip text. Index-less blocks are written
// without an index line.
func Render(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		if b.Index.Present {
			fmt.Fprintf(&sb, "%d\n", b.Index.Value)
		}
		sb.WriteString(b.TimeRange())
		sb.WriteString("\n")
		for _, l := range b.Lines {
			sb.WriteString(l)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
