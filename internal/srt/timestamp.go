package srt

import (
	"fmt"
	"regexp"
	"strconv"
)

// subtitleTSRe matches the subtitle encoding exactly, e.g. "00:01:23,456".
var subtitleTSRe = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2}),(\d{3})$`)

// displayRe matches the display encoding used in dataset filenames, e.g. "02.03.12".
var displayRe = regexp.MustCompile(`^(\d{2,})\.(\d{2})\.(\d{2})$`)

// Timestamp is an instant within a media file, kept at millisecond precision.
type Timestamp struct {
	Hours   int
	Minutes int
	Seconds int
	Millis  int

	// hourDigits remembers how many digits the hour field had in the source
	// so String() reproduces the literal it was parsed from.
	hourDigits int
}

// NewTimestamp builds a timestamp from its fields. Hours render with two digits.
func NewTimestamp(hours, minutes, seconds, millis int) Timestamp {
	return Timestamp{Hours: hours, Minutes: minutes, Seconds: seconds, Millis: millis}
}

// ParseTimestamp parses a subtitle-encoded timestamp (H+:MM:SS,mmm).
// The whole input must match; surrounding text is rejected.
func ParseTimestamp(text string) (Timestamp, error) {
	m := subtitleTSRe.FindStringSubmatch(text)
	if m == nil {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, text)
	}
	h, err := strconv.Atoi(m[1])
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w: %q: %v", ErrMalformedTimestamp, text, err)
	}
	mm, _ := strconv.Atoi(m[2])
	ss, _ := strconv.Atoi(m[3])
	ms, _ := strconv.Atoi(m[4])
	return Timestamp{Hours: h, Minutes: mm, Seconds: ss, Millis: ms, hourDigits: len(m[1])}, nil
}

// TotalMillis returns the instant as whole milliseconds. Comparisons between
// timestamps go through this value to avoid float rounding.
func (t Timestamp) TotalMillis() int64 {
	return int64(t.Hours)*3_600_000 + int64(t.Minutes)*60_000 + int64(t.Seconds)*1_000 + int64(t.Millis)
}

// CanonicalSeconds returns hours*3600 + minutes*60 + seconds + millis/1000.
func (t Timestamp) CanonicalSeconds() float64 {
	return float64(t.Hours*3600+t.Minutes*60+t.Seconds) + float64(t.Millis)/1000
}

// Before reports whether t is strictly earlier than u.
func (t Timestamp) Before(u Timestamp) bool {
	return t.TotalMillis() < u.TotalMillis()
}

// String renders the subtitle encoding.
func (t Timestamp) String() string {
	width := t.hourDigits
	if width == 0 {
		width = 2
	}
	return fmt.Sprintf("%0*d:%02d:%02d,%03d", width, t.Hours, t.Minutes, t.Seconds, t.Millis)
}

// Display renders the MM.SS.CC encoding: total minutes, seconds and
// centiseconds. Centiseconds are truncated, never rounded.
func (t Timestamp) Display() string {
	return Display{
		Minutes:      t.Hours*60 + t.Minutes,
		Seconds:      t.Seconds,
		Centiseconds: t.Millis / 10,
	}.String()
}

// Display is a decoded MM.SS.CC value.
type Display struct {
	Minutes      int
	Seconds      int
	Centiseconds int
}

// ParseDisplay decodes a MM.SS.CC literal. MM may be wider than two digits.
func ParseDisplay(text string) (Display, error) {
	m := displayRe.FindStringSubmatch(text)
	if m == nil {
		return Display{}, fmt.Errorf("%w: display %q", ErrMalformedTimestamp, text)
	}
	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		return Display{}, fmt.Errorf("%w: display %q: %v", ErrMalformedTimestamp, text, err)
	}
	seconds, _ := strconv.Atoi(m[2])
	centis, _ := strconv.Atoi(m[3])
	return Display{Minutes: minutes, Seconds: seconds, Centiseconds: centis}, nil
}

// TotalSeconds reconstructs minutes*60 + seconds + centiseconds/100.
func (d Display) TotalSeconds() float64 {
	return float64(d.Minutes*60+d.Seconds) + float64(d.Centiseconds)/100.0
}

func (d Display) String() string {
	return fmt.Sprintf("%02d.%02d.%02d", d.Minutes, d.Seconds, d.Centiseconds)
}
