package srt

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTimestamp is returned when a timestamp literal does not match
	// the subtitle encoding H+:MM:SS,mmm.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrMalformedBlock is returned for a block without a usable time range or
	// without any text line.
	ErrMalformedBlock = errors.New("malformed block")
)

// ParseError locates a structural failure inside a subtitle file.
type ParseError struct {
	File    string
	Line    int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	loc := e.File
	if loc == "" {
		loc = "<input>"
	}
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", loc, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", loc, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
