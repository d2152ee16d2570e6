package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/voice-dataset/internal/srt"
)

// DefaultMaxLineLength is the longest allowed Japanese line in code points.
const DefaultMaxLineLength = 30

// LengthViolation is a primary line longer than the limit.
type LengthViolation struct {
	File   string `json:"file"`
	Index  string `json:"index"`
	Time   string `json:"time"`
	Line   int    `json:"line"`
	Length int    `json:"length"`
	Text   string `json:"text"`
}

// CheckLineLength reports blocks whose first text line, trimmed, has more
// than max code points.
func CheckLineLength(file string, blocks []srt.Block, max int) []LengthViolation {
	if max <= 0 {
		max = DefaultMaxLineLength
	}
	var out []LengthViolation
	for _, b := range blocks {
		if len(b.Lines) == 0 {
			continue
		}
		text := strings.TrimSpace(b.Lines[0])
		n := utf8.RuneCountInString(text)
		if n <= max {
			continue
		}
		out = append(out, LengthViolation{
			File:   file,
			Index:  b.Index.String(),
			Time:   b.TimeRange(),
			Line:   b.LineNumber(0),
			Length: n,
			Text:   text,
		})
	}
	return out
}
