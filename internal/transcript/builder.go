package transcript

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/voice-dataset/internal/speaker"
	"github.com/nguyentantai21042004/voice-dataset/internal/srt"
)

var (
	// ErrTooFewLines is returned for a block without a Chinese line.
	ErrTooFewLines = errors.New("block needs at least two text lines")

	// ErrNoCDIndex is returned when a file name does not match the pattern.
	ErrNoCDIndex = errors.New("file name does not carry a CD index")
)

func (b *implBuilder) BuildBlocks(ctx context.Context, name string, cd int, blocks []srt.Block) ([]Row, error) {
	rows := make([]Row, 0, len(blocks))

	for _, blk := range blocks {
		if len(blk.Lines) < 2 {
			return nil, &srt.ParseError{File: name, Line: blk.Line, Message: "transcript", Err: ErrTooFewLines}
		}

		content := strings.TrimSpace(blk.Lines[0])

		line, err := speaker.Extract(blk.Lines[1], b.chars)
		if err != nil {
			return nil, &srt.ParseError{File: name, Line: blk.LineNumber(1), Message: "speaker", Err: err}
		}

		switch line.Kind {
		case speaker.Anonymous:
			b.logger.Debug(ctx, "%s:%d: anonymous speaker", name, blk.LineNumber(1))
		case speaker.Unknown:
			b.logger.Warn(ctx, "%s:%d: unknown speaker %q, leaving character empty", name, blk.LineNumber(1), line.RawName)
		}

		rows = append(rows, Row{
			Filename:  FormatFilename(cd, len(rows), blk.Start, blk.End, b.audioExt),
			Character: line.Character,
			Content:   content,
		})
	}

	return rows, nil
}

func (b *implBuilder) BuildFile(ctx context.Context, path string) ([]Row, error) {
	cd, err := b.CDIndex(filepath.Base(path))
	if err != nil {
		return nil, err
	}

	blocks, err := srt.ReadFile(path, srt.Options{})
	if err != nil {
		return nil, err
	}

	rows, err := b.BuildBlocks(ctx, path, cd, blocks)
	if err != nil {
		return nil, err
	}

	b.logger.Info(ctx, "%s: %d rows", filepath.Base(path), len(rows))
	return rows, nil
}

func (b *implBuilder) BuildDir(ctx context.Context, dir string) ([]Row, error) {
	files, err := b.matchingFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		b.logger.Warn(ctx, "No subtitle files matching %s in %s", b.pattern, dir)
	}

	var rows []Row
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fileRows, err := b.BuildFile(ctx, f)
		if err != nil {
			return nil, err
		}
		rows = append(rows, fileRows...)
	}
	return rows, nil
}

// CDIndex extracts the CD number from a subtitle file name.
func (b *implBuilder) CDIndex(name string) (int, error) {
	m := b.pattern.FindStringSubmatch(name)
	if m == nil {
		return 0, fmt.Errorf("%w: %s", ErrNoCDIndex, name)
	}
	cd, err := strconv.Atoi(m[b.pattern.SubexpIndex("cd")])
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNoCDIndex, name)
	}
	return cd, nil
}

func (b *implBuilder) matchingFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !b.pattern.MatchString(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
