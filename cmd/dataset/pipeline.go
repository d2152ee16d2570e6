package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/voice-dataset/internal/fsutil"
	"github.com/nguyentantai21042004/voice-dataset/internal/script"
	"github.com/nguyentantai21042004/voice-dataset/internal/slicer"
	"github.com/nguyentantai21042004/voice-dataset/internal/speaker"
	"github.com/nguyentantai21042004/voice-dataset/internal/srt"
	"github.com/nguyentantai21042004/voice-dataset/internal/transcript"
	"github.com/nguyentantai21042004/voice-dataset/internal/whisper"
)

func runTranscript(ctx context.Context, a *app, args []string) (int, error) {
	fs := a.newFlagSet("transcript")
	srtDir := fs.String("srt-dir", a.cfg.Paths.SrtDir, "directory of bilingual subtitle files")
	csvPath := fs.String("characters", a.cfg.Paths.CharactersCSV, "character name mapping CSV")
	out := fs.String("out", a.cfg.Paths.TranscriptCSV, "transcript CSV to write")
	if err := parseFlags(fs, args); err != nil {
		return exitUsage, err
	}

	chars, err := speaker.LoadCharacterMap(*csvPath)
	if err != nil {
		return exitUsage, fmt.Errorf("%w: %v", errUsage, err)
	}
	a.log.Info(ctx, "Loaded %d character names from %s", chars.Len(), *csvPath)

	b, err := transcript.New(chars, transcript.Options{
		Pattern:  a.cfg.Transcript.SrtPattern,
		AudioExt: a.cfg.Transcript.AudioExt,
	}, a.log)
	if err != nil {
		return exitUsage, fmt.Errorf("%w: %v", errUsage, err)
	}

	rows, err := b.BuildDir(ctx, *srtDir)
	if err != nil {
		var pe *srt.ParseError
		if errors.As(err, &pe) {
			fmt.Fprintf(a.stderr, "%v\n", pe)
			return exitFail, nil
		}
		return exitFail, err
	}

	if err := transcript.WriteCSV(*out, rows); err != nil {
		return exitFail, err
	}
	fmt.Fprintf(a.stdout, "Wrote %d rows to %s\n", len(rows), *out)
	return exitOK, nil
}

func runSplit(ctx context.Context, a *app, args []string) (int, error) {
	fs := a.newFlagSet("split")
	outDir := fs.String("out", "", "output directory (default: next to each input)")
	if err := parseFlags(fs, args); err != nil {
		return exitUsage, err
	}
	if fs.NArg() == 0 {
		return exitUsage, fmt.Errorf("%w: at least one .srt file is required", errUsage)
	}

	for _, path := range fs.Args() {
		if err := ctx.Err(); err != nil {
			return exitFail, err
		}
		blocks, err := srt.ReadFile(path, srt.Options{})
		if err != nil {
			return exitFail, err
		}

		dir := *outDir
		if dir == "" {
			dir = filepath.Dir(path)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return exitFail, fmt.Errorf("create directory %s: %w", dir, err)
		}

		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		layers := srt.Split(blocks)
		for _, lang := range srt.Layers {
			dest := filepath.Join(dir, fmt.Sprintf("%s.%s.srt", stem, lang))
			if err := fsutil.WriteFileAtomic(dest, []byte(srt.Render(layers[lang])), 0644); err != nil {
				return exitFail, err
			}
			fmt.Fprintf(a.stdout, "%s: %d blocks -> %s\n", lang, len(layers[lang]), dest)
		}
	}
	return exitOK, nil
}

func runSlice(ctx context.Context, a *app, args []string) (int, error) {
	fs := a.newFlagSet("slice")
	csvPath := fs.String("csv", a.cfg.Paths.TranscriptCSV, "transcript CSV to slice")
	dryRun := fs.Bool("dry-run", a.cfg.Transcript.DryRun, "only report sources and planned segments")
	if err := parseFlags(fs, args); err != nil {
		return exitUsage, err
	}

	rows, err := transcript.ReadCSV(*csvPath)
	if err != nil {
		return exitUsage, fmt.Errorf("%w: %v", errUsage, err)
	}

	a.cfg.Transcript.DryRun = *dryRun
	res, err := slicer.New(a.cfg, a.exec, a.log).Slice(ctx, rows)
	if err != nil {
		return exitFail, err
	}

	p := res.Plan
	fmt.Fprintf(a.stdout, "Rows: %d, planned: %d, existing: %d, missing source: %d, unrecognized: %d\n",
		p.Total, len(p.Segments), p.Existing, p.MissingSource, p.Unrecognized)
	if !res.DryRun {
		fmt.Fprintf(a.stdout, "Extracted: %d, failed: %d\n", res.Extracted, res.Failed)
	}
	if res.Failed > 0 {
		return exitFail, nil
	}
	return exitOK, nil
}

func runDivide(ctx context.Context, a *app, args []string) (int, error) {
	fs := a.newFlagSet("divide")
	csvPath := fs.String("csv", a.cfg.Paths.TranscriptCSV, "transcript CSV naming each clip's character")
	if err := parseFlags(fs, args); err != nil {
		return exitUsage, err
	}

	rows, err := transcript.ReadCSV(*csvPath)
	if err != nil {
		return exitUsage, fmt.Errorf("%w: %v", errUsage, err)
	}

	counts, err := slicer.New(a.cfg, a.exec, a.log).Divide(ctx, rows)
	if err != nil {
		return exitFail, err
	}
	for _, name := range sortedKeys(counts) {
		fmt.Fprintf(a.stdout, "%s: %d\n", name, counts[name])
	}
	return exitOK, nil
}

func runWhisper(ctx context.Context, a *app, args []string) (int, error) {
	fs := a.newFlagSet("whisper")
	srtOut := fs.String("srt-out", "whisper-srt", "directory for the whisper subtitle output")
	out := fs.String("out", "whisper-transcript.csv", "transcript CSV to write")
	if err := parseFlags(fs, args); err != nil {
		return exitUsage, err
	}

	audio := fs.Args()
	if len(audio) == 0 {
		var err error
		audio, err = slicer.ListSources(a.cfg.Paths.CDAudioDir)
		if err != nil {
			return exitUsage, fmt.Errorf("%w: %v", errUsage, err)
		}
	}
	if len(audio) == 0 {
		return exitUsage, fmt.Errorf("%w: no CD audio found in %s", errUsage, a.cfg.Paths.CDAudioDir)
	}

	if err := os.MkdirAll(*srtOut, 0755); err != nil {
		return exitFail, fmt.Errorf("create directory %s: %w", *srtOut, err)
	}

	rows, err := whisper.New(a.cfg, a.exec, a.log).BuildRows(ctx, audio, *srtOut)
	if err != nil {
		return exitFail, err
	}
	if err := transcript.WriteCSV(*out, rows); err != nil {
		return exitFail, err
	}
	fmt.Fprintf(a.stdout, "Wrote %d rows to %s\n", len(rows), *out)
	return exitOK, nil
}

func runScript(ctx context.Context, a *app, args []string) (int, error) {
	fs := a.newFlagSet("script")
	csvPath := fs.String("csv", a.cfg.Paths.TranscriptCSV, "transcript CSV to export")
	title := fs.String("title", "Drama CD Script", "document title")
	out := fs.String("out", "script.docx", "DOCX file to write")
	if err := parseFlags(fs, args); err != nil {
		return exitUsage, err
	}

	rows, err := transcript.ReadCSV(*csvPath)
	if err != nil {
		return exitUsage, fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := script.Write(*title, rows, *out); err != nil {
		return exitFail, err
	}
	a.log.Info(ctx, "Script saved: %s (%d lines)", *out, len(rows))
	return exitOK, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
