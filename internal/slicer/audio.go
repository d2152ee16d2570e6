package slicer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ErrNonPositiveDuration is returned for a clip whose end is not after its start.
var ErrNonPositiveDuration = errors.New("non-positive clip duration")

// extractSegment cuts [start, end) seconds of source into dest, encoded as
// configured (mono 44.1kHz Vorbis by default). ffmpeg writes to a temp file
// next to dest which is renamed once complete.
func (s *implSlicer) extractSegment(ctx context.Context, source string, start, end float64, dest string) error {
	if end-start <= 0 {
		return fmt.Errorf("%w: %.3f -> %.3f", ErrNonPositiveDuration, start, end)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp := filepath.Join(filepath.Dir(dest), ".tmp-"+filepath.Base(dest))

	// -ss/-to before -i: seek the input
	// -vn: drop cover art streams
	// -ac/-ar/-c:a: channel count, sample rate and codec of the clip
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-ss", strconv.FormatFloat(start, 'f', 3, 64),
		"-to", strconv.FormatFloat(end, 'f', 3, 64),
		"-i", source,
		"-vn",
		"-ac", strconv.Itoa(s.cfg.FFmpeg.Channels),
		"-ar", strconv.Itoa(s.cfg.FFmpeg.SampleRate),
		"-c:a", s.cfg.FFmpeg.Codec,
		"-y",
		tmp,
	}

	if _, err := s.executor.Execute(ctx, s.cfg.FFmpeg.Binary, args...); err != nil {
		s.cleanupTempFile(ctx, tmp)
		return fmt.Errorf("ffmpeg extract segment: %w", err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		s.cleanupTempFile(ctx, tmp)
		return fmt.Errorf("finalize %s: %w", dest, err)
	}
	return nil
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (s *implSlicer) cleanupTempFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	}
}
