package slicer

import (
	"context"

	"github.com/nguyentantai21042004/voice-dataset/internal/transcript"
)

// Slicer cuts per-line voice clips out of full CD audio.
type Slicer interface {
	// Plan resolves source audio and output paths without touching files.
	Plan(ctx context.Context, rows []transcript.Row) (Plan, error)
	// Slice extracts every planned clip. In dry-run mode it only plans.
	Slice(ctx context.Context, rows []transcript.Row) (Result, error)
	// Divide moves clips from the output root into per-character folders
	// and returns the clip count per folder.
	Divide(ctx context.Context, rows []transcript.Row) (map[string]int, error)
}
