package slicer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const vocalsName = "vocals.wav"

// sourceExts are the full-CD audio formats searched under the CD directory.
var sourceExts = map[string]bool{".flac": true}

// FindSource locates the audio for CD number cd. A separated vocals.wav
// wins over the original CD audio; a directory or file name carrying the CD
// number wins over sorted position. It returns "" when nothing is found.
func FindSource(cd int, cdDir, separatedDir string) (string, error) {
	nn := fmt.Sprintf("%02d", cd)

	stems, err := collect(separatedDir, func(path string) bool {
		return filepath.Base(path) == vocalsName
	})
	if err != nil {
		return "", err
	}
	for _, s := range stems {
		dir := strings.ToLower(filepath.Base(filepath.Dir(s)))
		if strings.Contains(dir, nn) || strings.Contains(dir, "75"+nn) {
			return s, nil
		}
	}
	if len(stems) > 0 {
		if p := byPosition(stems, cd); p != "" {
			return p, nil
		}
		return stems[0], nil
	}

	tracks, err := collect(cdDir, func(path string) bool {
		return sourceExts[strings.ToLower(filepath.Ext(path))]
	})
	if err != nil {
		return "", err
	}
	for _, t := range tracks {
		if strings.Contains(strings.ToLower(filepath.Base(t)), "cd"+nn) {
			return t, nil
		}
	}
	return byPosition(tracks, cd), nil
}

// ListSources returns the full-CD audio files under cdDir in sorted order.
func ListSources(cdDir string) ([]string, error) {
	return collect(cdDir, func(path string) bool {
		return sourceExts[strings.ToLower(filepath.Ext(path))]
	})
}

func byPosition(paths []string, cd int) string {
	if cd >= 1 && cd <= len(paths) {
		return paths[cd-1]
	}
	return ""
}

// collect walks root and returns the sorted files accepted by keep. A
// missing root yields nothing.
func collect(root string, keep func(path string) bool) ([]string, error) {
	if root == "" {
		return nil, nil
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, nil
	}

	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && keep(path) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(out)
	return out, nil
}
