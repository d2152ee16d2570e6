package srt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// timeRangeRe matches "start --> end" with comma millisecond separators.
	// Cue settings after the end timestamp are tolerated.
	timeRangeRe = regexp.MustCompile(`^(\d+:\d{2}:\d{2},\d{3})\s*-->\s*(\d+:\d{2}:\d{2},\d{3})(?:\s.*)?$`)

	// looseTimeRangeRe additionally accepts '.' before the milliseconds.
	looseTimeRangeRe = regexp.MustCompile(`^(\d+:\d{2}:\d{2}[,.]\d{3})\s*-->\s*(\d+:\d{2}:\d{2}[,.]\d{3})(?:\s.*)?$`)
)

// Options tunes the block scanner.
type Options struct {
	// LooseSeparator accepts "00:00:01.000" in time-range lines.
	LooseSeparator bool
}

// Outcome is the result of scanning one block: either a Block or a
// structural error, never both.
type Outcome struct {
	Block Block
	Err   *ParseError
}

// OK reports whether the outcome holds a block.
func (o Outcome) OK() bool {
	return o.Err == nil
}

type state int

const (
	seekIndex state = iota
	seekTimeRange
	collectText
)

// Parse scans text into blocks and stops at the first structural error.
// name is only used to label errors.
func Parse(name, text string, opts Options) ([]Block, error) {
	outcomes := scan(name, text, opts, true)
	blocks := make([]Block, 0, len(outcomes))
	for _, o := range outcomes {
		if !o.OK() {
			return nil, o.Err
		}
		blocks = append(blocks, o.Block)
	}
	return blocks, nil
}

// ParseLenient scans the whole input, skipping unusable blocks. The skipped
// blocks are reported as errors alongside the usable ones.
func ParseLenient(name, text string, opts Options) ([]Block, []*ParseError) {
	var (
		blocks []Block
		errs   []*ParseError
	)
	for _, o := range Scan(name, text, opts) {
		if o.OK() {
			blocks = append(blocks, o.Block)
		} else {
			errs = append(errs, o.Err)
		}
	}
	return blocks, errs
}

// Scan returns every block outcome in file order. After a structural error
// the scanner resumes at the next blank line.
func Scan(name, text string, opts Options) []Outcome {
	return scan(name, text, opts, false)
}

func scan(name, text string, opts Options, stopOnError bool) []Outcome {
	lines := SplitLines(text)
	n := len(lines)

	var (
		out []Outcome
		cur Block
		st  = seekIndex
		i   = 0
	)

	fail := func(line int, msg string, err error) bool {
		out = append(out, Outcome{Err: &ParseError{File: name, Line: line, Message: msg, Err: err}})
		return stopOnError
	}

	for {
		switch st {
		case seekIndex:
			for i < n && isBlank(lines[i]) {
				i++
			}
			if i >= n {
				return out
			}
			cur = Block{Line: i + 1}
			if v, ok := parseIndex(lines[i]); ok {
				cur.Index = IndexOf(v)
				i++
			}
			st = seekTimeRange

		case seekTimeRange:
			if i >= n {
				fail(cur.Line, "missing time range", fmt.Errorf("%w: unexpected end of file", ErrMalformedBlock))
				return out
			}
			start, end, err := parseTimeRange(lines[i], opts)
			if err != nil {
				if fail(i+1, "invalid time-range line", err) {
					return out
				}
				for i < n && !isBlank(lines[i]) {
					i++
				}
				st = seekIndex
				continue
			}
			cur.Start, cur.End = start, end
			i++
			st = collectText

		case collectText:
			cur.TextLine = i + 1
			for i < n && !isBlank(lines[i]) {
				cur.Lines = append(cur.Lines, lines[i])
				i++
			}
			st = seekIndex
			if len(cur.Lines) == 0 {
				if fail(cur.Line, "empty block", fmt.Errorf("%w: no content", ErrMalformedBlock)) {
					return out
				}
				continue
			}
			out = append(out, Outcome{Block: cur})
		}
	}
}

// SplitLines splits text on LF, dropping CR from CRLF endings and a leading BOM.
func SplitLines(text string) []string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// IsIndexLine reports whether a line is a standalone sequence number.
func IsIndexLine(line string) bool {
	_, ok := parseIndex(line)
	return ok
}

func parseIndex(line string) (int, bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseTimeRange(line string, opts Options) (Timestamp, Timestamp, error) {
	line = strings.TrimSpace(line)
	re := timeRangeRe
	if opts.LooseSeparator {
		re = looseTimeRangeRe
	}
	m := re.FindStringSubmatch(line)
	if m == nil {
		return Timestamp{}, Timestamp{}, fmt.Errorf("%w: %q", ErrMalformedBlock, line)
	}
	start, err := ParseTimestamp(commaMillis(m[1]))
	if err != nil {
		return Timestamp{}, Timestamp{}, err
	}
	end, err := ParseTimestamp(commaMillis(m[2]))
	if err != nil {
		return Timestamp{}, Timestamp{}, err
	}
	return start, end, nil
}

// commaMillis rewrites a '.' millisecond separator to ','.
func commaMillis(ts string) string {
	if i := strings.LastIndexByte(ts, '.'); i >= 0 {
		return ts[:i] + "," + ts[i+1:]
	}
	return ts
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}
