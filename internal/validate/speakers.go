package validate

import (
	"errors"
	"sort"

	"github.com/nguyentantai21042004/voice-dataset/internal/speaker"
	"github.com/nguyentantai21042004/voice-dataset/internal/srt"
)

// IssueKind names a speaker-label problem.
type IssueKind string

const (
	MissingMarker  IssueKind = "missing_marker"
	UnknownSpeaker IssueKind = "unknown_speaker"
)

// SpeakerIssue is a Chinese line with a missing or unresolved speaker.
type SpeakerIssue struct {
	Kind  IssueKind
	Block srt.Block
	// Line is the file line of the Chinese text.
	Line int
	Text string
	// Name is set for unknown speakers.
	Name string
}

// CheckSpeakers classifies the second text line of every block that has
// one. Anonymous lines are accepted.
func CheckSpeakers(blocks []srt.Block, chars speaker.CharacterMap) []SpeakerIssue {
	var out []SpeakerIssue
	for _, b := range blocks {
		if len(b.Lines) < 2 {
			continue
		}
		text := b.Lines[1]
		issue := SpeakerIssue{Block: b, Line: b.LineNumber(1), Text: text}

		line, err := speaker.Extract(text, chars)
		switch {
		case errors.Is(err, speaker.ErrMissingSpeakerMarker):
			issue.Kind = MissingMarker
		case err != nil:
			continue
		case line.Kind == speaker.Unknown:
			issue.Kind = UnknownSpeaker
			issue.Name = line.RawName
		default:
			continue
		}
		out = append(out, issue)
	}
	return out
}

// UniqueUnknown returns the sorted distinct unknown speaker names.
func UniqueUnknown(issues []SpeakerIssue) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, is := range issues {
		if is.Kind != UnknownSpeaker {
			continue
		}
		if _, ok := seen[is.Name]; ok {
			continue
		}
		seen[is.Name] = struct{}{}
		names = append(names, is.Name)
	}
	sort.Strings(names)
	return names
}
