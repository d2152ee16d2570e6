package slicer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/voice-dataset/internal/transcript"
)

func (s *implSlicer) Divide(ctx context.Context, rows []transcript.Row) (map[string]int, error) {
	root := s.cfg.Paths.VocalOutput

	moved := 0
	for _, r := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r.Character == "" {
			continue
		}
		if err := s.moveToCharacter(ctx, root, r); err != nil {
			return nil, err
		}
		moved++
	}
	s.logger.Debug(ctx, "Checked %d character rows", moved)

	return s.countClips(root)
}

// moveToCharacter moves root/<filename> into root/<character>/ when the
// clip is still at the root.
func (s *implSlicer) moveToCharacter(ctx context.Context, root string, r transcript.Row) error {
	src := filepath.Join(root, r.Filename)
	if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	dest := OutputPath(root, r)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create character dir: %w", err)
	}

	s.logger.Debug(ctx, "Moving %s -> %s", src, dest)
	if err := os.Rename(src, dest); err != nil {
		return fmt.Errorf("move %s: %w", r.Filename, err)
	}
	return nil
}

// countClips counts audio clips in every character folder under root.
func (s *implSlicer) countClips(root string) (map[string]int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}

	counts := make(map[string]int)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(root, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", e.Name(), err)
		}
		n := 0
		for _, f := range files {
			if !f.IsDir() && strings.EqualFold(filepath.Ext(f.Name()), s.cfg.Transcript.AudioExt) {
				n++
			}
		}
		counts[e.Name()] = n
	}
	return counts, nil
}
