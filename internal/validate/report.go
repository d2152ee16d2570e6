package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/nguyentantai21042004/voice-dataset/internal/srt"
)

const rule = "------------------------------------------------------------"

// maxMismatchSample bounds the mismatches printed per file.
const maxMismatchSample = 6

// WriteOverlaps prints every overlapping pair and a closing summary.
func WriteOverlaps(w io.Writer, results []FileResult[Overlap]) Summary {
	for _, r := range results {
		writeFileErrors(w, r.File, r.Err, r.Skipped)
		for _, o := range r.Findings {
			fmt.Fprintf(w, "File: %s\n", r.File)
			fmt.Fprintf(w, "Overlap between blocks %s and %s:\n", o.A.Index, o.B.Index)
			writeBlock(w, o.A)
			writeBlock(w, o.B)
			fmt.Fprintln(w, rule)
		}
	}

	s := Summarize(results)
	if s.Findings > 0 {
		fmt.Fprintf(w, "\nFound %d overlapping adjacent subtitle pair(s) across %d scanned file(s).\n", s.Findings, s.Files)
	} else {
		fmt.Fprintln(w, "No overlapping adjacent subtitle blocks found.")
	}
	return s
}

// WriteDuplicates prints duplicate groups per file.
func WriteDuplicates(w io.Writer, results []FileResult[DuplicateGroup]) Summary {
	for _, r := range results {
		writeFileErrors(w, r.File, r.Err, r.Skipped)
		if len(r.Findings) == 0 {
			continue
		}
		fmt.Fprintf(w, "Found %d duplicate text group(s) in %s:\n\n", len(r.Findings), r.File)
		for i, g := range r.Findings {
			fmt.Fprintf(w, "Group %d: %d occurrences:\n", i+1, len(g.Blocks))
			for _, b := range g.Blocks {
				fmt.Fprintf(w, "  [%s] line %d  %s\n", b.Index, b.Line, b.TimeRange())
			}
			fmt.Fprintln(w, "  Text:")
			fmt.Fprintln(w, indent(g.Blocks[0].Text(), "    "))
			fmt.Fprintln(w, rule)
		}
	}

	s := Summarize(results)
	if s.Findings == 0 {
		fmt.Fprintln(w, "No duplicate subtitle texts found.")
	}
	return s
}

// WriteSpeakers prints speaker issues and, with unique, the distinct
// unknown names.
func WriteSpeakers(w io.Writer, results []FileResult[SpeakerIssue], unique bool) Summary {
	var all []SpeakerIssue
	for _, r := range results {
		writeFileErrors(w, r.File, r.Err, r.Skipped)
		for _, is := range r.Findings {
			fmt.Fprintf(w, "%s:%d [%s] %s  %s", r.File, is.Line, is.Block.Index, is.Block.TimeRange(), is.Kind)
			if is.Kind == UnknownSpeaker {
				fmt.Fprintf(w, " %q", is.Name)
			}
			fmt.Fprintf(w, "\n    %s\n", strings.TrimSpace(is.Text))
		}
		all = append(all, r.Findings...)
	}

	s := Summarize(results)
	if s.Findings == 0 {
		fmt.Fprintln(w, "No speaker label problems found.")
	} else {
		fmt.Fprintf(w, "\nFound %d speaker label problem(s) across %d file(s).\n", s.Findings, s.Files)
	}

	if unique {
		names := UniqueUnknown(all)
		fmt.Fprintf(w, "\nUnknown speaker names (%d):\n", len(names))
		for _, n := range names {
			fmt.Fprintf(w, "  %s\n", n)
		}
	}
	return s
}

// WriteLineLengths prints violations as text, or as a JSON array when
// asJSON is set.
func WriteLineLengths(w io.Writer, results []FileResult[LengthViolation], max int, asJSON bool) (Summary, error) {
	s := Summarize(results)

	if asJSON {
		all := make([]LengthViolation, 0, s.Findings)
		for _, r := range results {
			all = append(all, r.Findings...)
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return s, enc.Encode(all)
	}

	for _, r := range results {
		writeFileErrors(w, r.File, r.Err, r.Skipped)
		for _, v := range r.Findings {
			fmt.Fprintf(w, "%s:%d [%s] %s  %d > %d\n    %s\n", v.File, v.Line, v.Index, v.Time, v.Length, max, v.Text)
		}
	}
	if s.Findings == 0 {
		fmt.Fprintf(w, "No lines longer than %d characters.\n", max)
	} else {
		fmt.Fprintf(w, "\nFound %d line(s) longer than %d characters.\n", s.Findings, max)
	}
	return s, nil
}

// IndexSummary counts index results.
type IndexSummary struct {
	Files    int
	OK       int
	Fixed    int
	Problems int
	Failed   int
}

// AllOK reports whether no unfixed mismatch or failure remains.
func (s IndexSummary) AllOK() bool {
	return s.Problems == 0 && s.Failed == 0
}

// WriteIndices prints one status line per file and a summary.
func WriteIndices(w io.Writer, results []IndexResult) IndexSummary {
	s := IndexSummary{Files: len(results)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed++
			fmt.Fprintf(w, "FAIL:   %s: %v\n", r.File, r.Err)
		case r.Report.Count == 0:
			fmt.Fprintf(w, "SKIP:   %s (no numeric index lines found)\n", r.File)
		case len(r.Report.Mismatches) == 0:
			s.OK++
			fmt.Fprintf(w, "OK:     %s\n", r.File)
		default:
			fmt.Fprintf(w, "ERROR:  %s: %d mismatched index line(s)\n", r.File, len(r.Report.Mismatches))
			for i, m := range r.Report.Mismatches {
				if i == maxMismatchSample {
					fmt.Fprintf(w, "         ... %d more\n", len(r.Report.Mismatches)-i)
					break
				}
				fmt.Fprintf(w, "         line %d: %d  ->  %d\n", m.Line, m.Observed, m.Expected)
			}
			if r.Report.Fixed {
				s.Fixed++
				fmt.Fprintf(w, "FIXED:  %s (backup: %s)\n", r.File, r.Report.Backup)
			} else {
				s.Problems++
				fmt.Fprintln(w, "NOTICE: not fixed. Run with -fix to apply fixes.")
			}
		}
	}

	fmt.Fprintln(w, "\nSummary:")
	fmt.Fprintf(w, "  files checked: %d\n", s.Files)
	fmt.Fprintf(w, "  OK:            %d\n", s.OK)
	fmt.Fprintf(w, "  fixed:         %d\n", s.Fixed)
	fmt.Fprintf(w, "  problems:      %d\n", s.Problems)
	if s.Failed > 0 {
		fmt.Fprintf(w, "  unreadable:    %d\n", s.Failed)
	}
	return s
}

func writeFileErrors(w io.Writer, file string, err error, skipped []*srt.ParseError) {
	if err != nil {
		fmt.Fprintf(w, "Failed to check %s: %v\n", file, err)
	}
	for _, pe := range skipped {
		fmt.Fprintf(w, "Skipped block: %v\n", pe)
	}
}

func writeBlock(w io.Writer, b srt.Block) {
	fmt.Fprintf(w, "  [%s] line %d  %s\n", b.Index, b.Line, b.TimeRange())
	text := b.Text()
	if text == "" {
		text = "<no text>"
	}
	fmt.Fprintln(w, indent(text, "    "))
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
