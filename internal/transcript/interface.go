package transcript

import (
	"context"

	"github.com/nguyentantai21042004/voice-dataset/internal/srt"
)

// Builder turns bilingual subtitle files into dataset rows.
type Builder interface {
	// BuildBlocks converts the blocks of one file. name labels errors.
	BuildBlocks(ctx context.Context, name string, cd int, blocks []srt.Block) ([]Row, error)
	// BuildFile parses path and converts it, taking the CD index from the
	// file name.
	BuildFile(ctx context.Context, path string) ([]Row, error)
	// BuildDir converts every matching file in dir, sorted by name.
	BuildDir(ctx context.Context, dir string) ([]Row, error)
}
