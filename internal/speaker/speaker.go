package speaker

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrMissingSpeakerMarker is returned when a line has no fullwidth or
	// ASCII colon.
	ErrMissingSpeakerMarker = errors.New("missing speaker marker")

	// ErrUnknownSpeaker classifies a named speaker that is absent from the
	// character map. Extract never returns it; see Line.Err.
	ErrUnknownSpeaker = errors.New("unknown speaker")
)

// separators are matched at their first occurrence, whichever comes first.
const separators = ":："

// Kind is the outcome of resolving a speaker label.
type Kind int

const (
	Resolved Kind = iota
	Anonymous
	Unknown
)

func (k Kind) String() string {
	switch k {
	case Resolved:
		return "resolved"
	case Anonymous:
		return "anonymous"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Line is an interpreted Chinese subtitle line.
type Line struct {
	RawName   string
	Remainder string
	Kind      Kind
	// Character is set only when Kind is Resolved.
	Character string
}

// Err returns ErrUnknownSpeaker wrapped with the raw name for unknown
// speakers and nil otherwise.
func (l Line) Err() error {
	if l.Kind != Unknown {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownSpeaker, l.RawName)
}

// Extract splits line at its first colon and resolves the name through m.
func Extract(line string, m CharacterMap) (Line, error) {
	i := strings.IndexAny(line, separators)
	if i < 0 {
		return Line{}, fmt.Errorf("%w: %q", ErrMissingSpeakerMarker, line)
	}
	_, width := utf8.DecodeRuneInString(line[i:])

	out := Line{
		RawName:   strings.TrimSpace(line[:i]),
		Remainder: strings.TrimSpace(line[i+width:]),
	}

	switch label, ok := m.Lookup(out.RawName); {
	case out.RawName == "":
		out.Kind = Anonymous
	case !ok:
		out.Kind = Unknown
	default:
		out.Kind = Resolved
		out.Character = YoungSuowong.Apply(label)
	}
	return out, nil
}
