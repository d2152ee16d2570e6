package validate

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/voice-dataset/internal/srt"
)

// ScanPath returns path itself when it is a file, otherwise the .srt files
// under it, sorted. Subdirectories are only visited when recursive is set.
func ScanPath(path string, recursive bool) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != path && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if isSubtitle(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	sort.Strings(files)
	return files, nil
}

func isSubtitle(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".srt")
}

// loadBlocks reads path and keeps every usable block. Unusable blocks are
// returned as skipped.
func loadBlocks(path string) ([]srt.Block, []*srt.ParseError, error) {
	text, err := srt.ReadText(path)
	if err != nil {
		return nil, nil, err
	}
	blocks, skipped := srt.ParseLenient(path, text, srt.Options{LooseSeparator: true})
	return blocks, skipped, nil
}
