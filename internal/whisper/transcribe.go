package whisper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/voice-dataset/internal/fsutil"
	"github.com/nguyentantai21042004/voice-dataset/internal/srt"
	"github.com/nguyentantai21042004/voice-dataset/internal/transcript"
)

func (w *implTranscriber) Transcribe(ctx context.Context, cd int, audioPath, outDir string) (string, error) {
	outputPrefix := filepath.Join(outDir, fmt.Sprintf("cd%02d", cd))
	srtPath := outputPrefix + ".srt"

	if fsutil.Exists(srtPath) {
		w.logger.Info(ctx, "Reusing transcription: %s", srtPath)
		return srtPath, nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	w.logger.Info(ctx, "Starting transcription with %d threads: %s", w.cfg.Whisper.Threads, audioPath)

	// -m: model path
	// -f: input audio
	// -osrt: SRT output
	// -l: force language
	// -t: threads
	// -of: output prefix, whisper appends .srt
	args := []string{
		"-m", w.cfg.Whisper.ModelPath,
		"-f", audioPath,
		"-osrt",
		"-l", w.cfg.Whisper.Language,
		"-t", strconv.Itoa(w.cfg.Whisper.Threads),
		"-of", outputPrefix,
	}

	if _, err := w.executor.Execute(ctx, w.cfg.Whisper.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	w.logger.Info(ctx, "Transcription completed: %s", srtPath)
	return srtPath, nil
}

func (w *implTranscriber) BuildRows(ctx context.Context, audioPaths []string, outDir string) ([]transcript.Row, error) {
	var rows []transcript.Row

	for i, audio := range audioPaths {
		cd := i + 1

		srtPath, err := w.Transcribe(ctx, cd, audio, outDir)
		if err != nil {
			return nil, fmt.Errorf("cd%02d: %w", cd, err)
		}

		blocks, err := srt.ReadFile(srtPath, srt.Options{LooseSeparator: true})
		if err != nil {
			return nil, err
		}

		rows = append(rows, segmentRows(cd, blocks, w.cfg.Transcript.AudioExt)...)
		w.logger.Info(ctx, "cd%02d: %d segments", cd, len(blocks))
	}

	return rows, nil
}

// segmentRows turns whisper segments into rows without a character.
func segmentRows(cd int, blocks []srt.Block, ext string) []transcript.Row {
	rows := make([]transcript.Row, 0, len(blocks))
	for i, b := range blocks {
		rows = append(rows, transcript.Row{
			Filename: transcript.FormatFilename(cd, i, b.Start, b.End, ext),
			Content:  strings.Join(strings.Fields(b.Text()), " "),
		})
	}
	return rows
}
