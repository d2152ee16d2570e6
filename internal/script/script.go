package script

import (
	"fmt"
	"sort"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/voice-dataset/internal/transcript"
)

const (
	fontName = "Times New Roman"
	fontSize = 13

	otherHeading = "Other"
)

// Section is the ordered lines of one CD.
type Section struct {
	CD    int
	Lines []transcript.Row
}

// Group splits rows into CD sections in ascending CD order. Rows whose
// filename cannot be decoded are returned separately.
func Group(rows []transcript.Row) ([]Section, []transcript.Row) {
	byCD := make(map[int]*Section)
	var unknown []transcript.Row

	for _, r := range rows {
		clip, err := transcript.ParseFilename(r.Filename)
		if err != nil {
			unknown = append(unknown, r)
			continue
		}
		sec, ok := byCD[clip.CD]
		if !ok {
			sec = &Section{CD: clip.CD}
			byCD[clip.CD] = sec
		}
		sec.Lines = append(sec.Lines, r)
	}

	out := make([]Section, 0, len(byCD))
	for _, s := range byCD {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CD < out[j].CD })
	return out, unknown
}

// Write renders rows as a DOCX reading script: a title, a heading per CD,
// then one paragraph per line with the speaker in bold. Rows whose filename
// carries no CD number are listed last under their own heading.
func Write(title string, rows []transcript.Row, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	sections, other := Group(rows)
	for _, sec := range sections {
		addSection(doc, fmt.Sprintf("CD %02d", sec.CD), sec.Lines)
	}
	if len(other) > 0 {
		addSection(doc, otherHeading, other)
	}

	return doc.SaveTo(outputPath)
}

func addSection(doc *docx.RootDoc, heading string, rows []transcript.Row) {
	doc.AddParagraph("")
	addStyledRun(doc.AddParagraph(""), heading, true, 15)
	for _, r := range rows {
		addLine(doc.AddParagraph(""), r)
	}
}

func addLine(p *docx.Paragraph, r transcript.Row) {
	if r.Character != "" {
		p.AddText(r.Character+": ").Font(fontName).Size(fontSize).Color("000000").Bold(true)
	}
	p.AddText(r.Content).Font(fontName).Size(fontSize).Color("000000")
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
