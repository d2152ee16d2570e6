package srt

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var tsComparer = cmp.Comparer(func(a, b Timestamp) bool {
	return a.TotalMillis() == b.TotalMillis()
})

func ts(t *testing.T, s string) Timestamp {
	t.Helper()
	v, err := ParseTimestamp(s)
	if err != nil {
		t.Fatalf("ParseTimestamp(%q): %v", s, err)
	}
	return v
}

func TestParse(t *testing.T) {
	text := strings.Join([]string{
		"1",
		"00:00:01,000 --> 00:00:02,500",
		"こんにちは",
		"克托莉：你好",
		"Hello",
		"",
		"",
		"",
		"00:00:03,000 --> 00:00:04,000",
		"二番目",
		"",
		"3",
		"00:00:05,000 --> 00:00:06,000 X1:10 X2:20",
		"三番目",
		"：匿名",
	}, "\n")

	got, err := Parse("a.srt", text, Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []Block{
		{
			Index: IndexOf(1),
			Start: ts(t, "00:00:01,000"), End: ts(t, "00:00:02,500"),
			Lines: []string{"こんにちは", "克托莉：你好", "Hello"},
			Line:  1, TextLine: 3,
		},
		{
			Start: ts(t, "00:00:03,000"), End: ts(t, "00:00:04,000"),
			Lines: []string{"二番目"},
			Line:  9, TextLine: 10,
		},
		{
			Index: IndexOf(3),
			Start: ts(t, "00:00:05,000"), End: ts(t, "00:00:06,000"),
			Lines: []string{"三番目", "：匿名"},
			Line:  12, TextLine: 14,
		},
	}

	if diff := cmp.Diff(want, got, tsComparer); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCRLFAndBOM(t *testing.T) {
	text := "\ufeff1\r\n00:00:01,000 --> 00:00:02,000\r\nline\r\n\r\n2\r\n00:00:02,000 --> 00:00:03,000\r\nnext\r\n"

	got, err := Parse("crlf.srt", text, Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[0].Index.Present || got[0].Index.Value != 1 {
		t.Errorf("first index = %v, want 1", got[0].Index)
	}
	if got[1].Lines[0] != "next" {
		t.Errorf("second text = %q, want %q", got[1].Lines[0], "next")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "garbage instead of time range",
			text:     "1\n00:00:01,000 --> 00:00:02,000\nok\n\n2\nnot a time range\ntext\n",
			wantLine: 6,
			wantMsg:  "invalid time-range line",
		},
		{
			name:     "index-less garbage line",
			text:     "hello there\ntext\n",
			wantLine: 1,
			wantMsg:  "invalid time-range line",
		},
		{
			name:     "no content",
			text:     "1\n00:00:01,000 --> 00:00:02,000\n\n2\n00:00:02,000 --> 00:00:03,000\nx\n",
			wantLine: 1,
			wantMsg:  "empty block",
		},
		{
			name:     "index at end of file",
			text:     "1\n00:00:01,000 --> 00:00:02,000\nx\n\n7",
			wantLine: 5,
			wantMsg:  "missing time range",
		},
		{
			name:     "dot separator is strict",
			text:     "1\n00:00:01.000 --> 00:00:02.000\nx\n",
			wantLine: 2,
			wantMsg:  "invalid time-range line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.srt", tt.text, Options{})
			if !errors.Is(err, ErrMalformedBlock) {
				t.Fatalf("Parse() error = %v, want ErrMalformedBlock", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not *ParseError", err)
			}
			if pe.File != "bad.srt" || pe.Line != tt.wantLine {
				t.Errorf("location = %s:%d, want bad.srt:%d", pe.File, pe.Line, tt.wantLine)
			}
			if pe.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", pe.Message, tt.wantMsg)
			}
			if n := strings.Count(err.Error(), ErrMalformedBlock.Error()); n != 1 {
				t.Errorf("Error() = %q repeats the sentinel %d times", err.Error(), n)
			}
		})
	}
}

func TestParseLenientResumes(t *testing.T) {
	text := strings.Join([]string{
		"1",
		"00:00:01,000 --> 00:00:02,000",
		"first",
		"",
		"2",
		"broken",
		"still broken",
		"",
		"3",
		"00:00:03.000 --> 00:00:04.000",
		"third",
		"",
		"4",
		"00:00:05,000 --> 00:00:06,000",
	}, "\n")

	blocks, errs := ParseLenient("x.srt", text, Options{LooseSeparator: true})
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(blocks))
	}
	if blocks[0].Index.Value != 1 || blocks[1].Index.Value != 3 {
		t.Errorf("indices = %v, %v; want 1, 3", blocks[0].Index, blocks[1].Index)
	}
	if got := blocks[1].Start.String(); got != "00:00:03,000" {
		t.Errorf("loose start = %q", got)
	}
	if len(errs) != 2 {
		t.Fatalf("errs = %d, want 2", len(errs))
	}
	if errs[0].Line != 6 || errs[1].Line != 13 {
		t.Errorf("error lines = %d, %d; want 6, 13", errs[0].Line, errs[1].Line)
	}
}

func TestScanOutcomesAreExclusive(t *testing.T) {
	for _, o := range Scan("", "1\n00:00:01,000 --> 00:00:02,000\n\nx\n", Options{}) {
		if o.OK() && len(o.Block.Lines) == 0 {
			t.Errorf("ok outcome without text lines: %+v", o.Block)
		}
	}
}

func TestBlockText(t *testing.T) {
	b := Block{Lines: []string{"  Hello  ", "world  "}}
	if got := b.Text(); got != "Hello\nworld" {
		t.Errorf("Text() = %q", got)
	}
}

func TestIsIndexLine(t *testing.T) {
	tests := map[string]bool{
		"1":      true,
		" 42 ":   true,
		"007":    true,
		"":       false,
		"1a":     false,
		"-1":     false,
		"+1":     false,
		"1.0":    false,
		"１":      false,
		"123456": true,
	}
	for in, want := range tests {
		if got := IsIndexLine(in); got != want {
			t.Errorf("IsIndexLine(%q) = %v, want %v", in, got, want)
		}
	}
}
