package srt

import (
	"strconv"
	"strings"
)

// Index is a block's declared sequence number. Present is false when the
// source omitted the index line or it was not purely numeric.
type Index struct {
	Value   int
	Present bool
}

// IndexOf returns a present index.
func IndexOf(n int) Index {
	return Index{Value: n, Present: true}
}

func (i Index) String() string {
	if !i.Present {
		return "?"
	}
	return strconv.Itoa(i.Value)
}

// Block is one subtitle cue. By convention Lines[0] is Japanese, Lines[1] is
// Chinese with an optional speaker prefix and Lines[2] is English.
type Block struct {
	Index Index
	Start Timestamp
	End   Timestamp
	Lines []string

	// Line is the 1-based line where the block starts in the source file.
	Line int
	// TextLine is the 1-based line of Lines[0].
	TextLine int
}

// LineNumber returns the 1-based file line of text line n.
func (b Block) LineNumber(n int) int {
	return b.TextLine + n
}

// Text joins the text lines with newlines, trimming the result.
func (b Block) Text() string {
	parts := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		parts[i] = strings.TrimRightFunc(l, isSpace)
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// TimeRange renders "start --> end" in subtitle encoding.
func (b Block) TimeRange() string {
	return b.Start.String() + " --> " + b.End.String()
}
