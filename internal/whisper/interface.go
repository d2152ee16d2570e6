package whisper

import (
	"context"

	"github.com/nguyentantai21042004/voice-dataset/internal/transcript"
)

// Transcriber produces a machine transcript of the CD audio with whisper.
type Transcriber interface {
	// Transcribe writes <outDir>/cdNN.srt for one CD and returns its path.
	// An existing file is reused.
	Transcribe(ctx context.Context, cd int, audioPath, outDir string) (string, error)
	// BuildRows transcribes every CD, numbered from 1 in the given order,
	// and converts the segments into rows with an empty character.
	BuildRows(ctx context.Context, audioPaths []string, outDir string) ([]transcript.Row, error)
}
