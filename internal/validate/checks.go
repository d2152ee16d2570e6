package validate

import (
	"context"

	"github.com/nguyentantai21042004/voice-dataset/internal/speaker"
	"github.com/nguyentantai21042004/voice-dataset/internal/srt"
)

// OverlapCheck adapts FindOverlaps to Run.
func OverlapCheck() Check[Overlap] {
	return func(_ context.Context, _ string, blocks []srt.Block) ([]Overlap, error) {
		return FindOverlaps(blocks), nil
	}
}

// DuplicateCheck adapts FindDuplicates to Run.
func DuplicateCheck(ignoreCase bool) Check[DuplicateGroup] {
	return func(_ context.Context, _ string, blocks []srt.Block) ([]DuplicateGroup, error) {
		return FindDuplicates(blocks, ignoreCase), nil
	}
}

// SpeakerCheck adapts CheckSpeakers to Run.
func SpeakerCheck(chars speaker.CharacterMap) Check[SpeakerIssue] {
	return func(_ context.Context, _ string, blocks []srt.Block) ([]SpeakerIssue, error) {
		return CheckSpeakers(blocks, chars), nil
	}
}

// LineLengthCheck adapts CheckLineLength to Run.
func LineLengthCheck(max int) Check[LengthViolation] {
	return func(_ context.Context, file string, blocks []srt.Block) ([]LengthViolation, error) {
		return CheckLineLength(file, blocks, max), nil
	}
}
