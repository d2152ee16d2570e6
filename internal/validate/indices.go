package validate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/voice-dataset/internal/fsutil"
	"github.com/nguyentantai21042004/voice-dataset/internal/srt"
)

// ErrIndexMismatch marks a file whose numeric lines are not 1..N.
var ErrIndexMismatch = errors.New("index mismatch")

// Mismatch is a numeric line whose value differs from its position.
type Mismatch struct {
	Line     int `json:"line"`
	Observed int `json:"observed"`
	Expected int `json:"expected"`
}

// IndexReport is the index check of one file.
type IndexReport struct {
	// Count is the number of purely numeric lines.
	Count      int
	Mismatches []Mismatch
	// Backup is set once a fix has been written.
	Backup string
	Fixed  bool
}

// Err returns ErrIndexMismatch when mismatches remain unfixed.
func (r IndexReport) Err() error {
	if len(r.Mismatches) == 0 || r.Fixed {
		return nil
	}
	return fmt.Errorf("%w: %d line(s)", ErrIndexMismatch, len(r.Mismatches))
}

// CheckIndices treats every purely numeric line as a sequence index and
// compares the n-th one against n.
func CheckIndices(text string) IndexReport {
	var r IndexReport
	for i, line := range srt.SplitLines(text) {
		v, ok := indexValue(line)
		if !ok {
			continue
		}
		r.Count++
		if v != r.Count {
			r.Mismatches = append(r.Mismatches, Mismatch{Line: i + 1, Observed: v, Expected: r.Count})
		}
	}
	return r
}

// FixIndices checks path and, when mismatches exist, backs the file up and
// rewrites every mismatched line in one atomic replace. Other bytes,
// including a BOM and CRLF endings, are kept.
func FixIndices(path string, now time.Time) (IndexReport, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return IndexReport{}, fmt.Errorf("read %s: %w", path, err)
	}
	text := string(raw)

	r := CheckIndices(text)
	if len(r.Mismatches) == 0 {
		return r, nil
	}

	lines := strings.Split(text, "\n")
	for _, m := range r.Mismatches {
		i := m.Line - 1
		prefix := ""
		if i == 0 && strings.HasPrefix(lines[i], "\ufeff") {
			prefix = "\ufeff"
		}
		suffix := ""
		if strings.HasSuffix(lines[i], "\r") {
			suffix = "\r"
		}
		lines[i] = prefix + strconv.Itoa(m.Expected) + suffix
	}

	info, err := os.Stat(path)
	if err != nil {
		return r, err
	}

	backup, err := fsutil.Backup(path, now)
	if err != nil {
		return r, err
	}
	r.Backup = backup

	if err := fsutil.WriteFileAtomic(path, []byte(strings.Join(lines, "\n")), info.Mode().Perm()); err != nil {
		return r, fmt.Errorf("rewrite %s: %w", path, err)
	}
	r.Fixed = true
	return r, nil
}

// indexValue accepts a line made only of ASCII digits after trimming.
func indexValue(line string) (int, bool) {
	if !srt.IsIndexLine(line) {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, false
	}
	return v, true
}

// IndexResult is the index check of one file inside a batch.
type IndexResult struct {
	File   string
	Report IndexReport
	Err    error
}

// RunIndices checks, and with fix rewrites, every file. Each file is fixed
// independently; callers must not pass the same path twice.
func RunIndices(ctx context.Context, files []string, limit int, fix bool) ([]IndexResult, error) {
	return Each(ctx, files, limit, func(ctx context.Context, file string) IndexResult {
		res := IndexResult{File: file}
		if fix {
			res.Report, res.Err = FixIndices(file, time.Now())
			return res
		}
		raw, err := os.ReadFile(file)
		if err != nil {
			res.Err = err
			return res
		}
		res.Report = CheckIndices(string(raw))
		return res
	})
}
