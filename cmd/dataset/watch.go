package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/voice-dataset/internal/speaker"
	"github.com/nguyentantai21042004/voice-dataset/internal/validate"
	"github.com/nguyentantai21042004/voice-dataset/internal/watcher"
)

func runWatch(ctx context.Context, a *app, args []string) (int, error) {
	fs := a.newFlagSet("watch")
	dir := fs.String("dir", a.cfg.Paths.SrtDir, "subtitle directory to watch")
	csvPath := fs.String("csv", a.cfg.Paths.CharactersCSV, "character name mapping CSV")
	ignoreCase := fs.Bool("i", a.cfg.Validation.IgnoreCase, "compare duplicate texts case-insensitively")
	if err := parseFlags(fs, args); err != nil {
		return exitUsage, err
	}

	chars, err := speaker.LoadCharacterMap(*csvPath)
	if err != nil {
		a.log.Warn(ctx, "Speaker check disabled: %v", err)
		chars = nil
	}

	h := &fileChecker{app: a, chars: chars, ignoreCase: *ignoreCase}
	w, err := watcher.New(*dir, h.Check, a.log, a.cfg.Performance.MaxConcurrent)
	if err != nil {
		return exitUsage, fmt.Errorf("%w: %v", errUsage, err)
	}
	defer w.Stop()

	a.log.Info(ctx, "Press Ctrl+C to stop")
	if err := w.Start(ctx); err != nil && err != context.Canceled {
		return exitFail, err
	}
	return exitOK, nil
}

// fileChecker runs the read-only validators on one changed file.
type fileChecker struct {
	app        *app
	chars      speaker.CharacterMap
	ignoreCase bool
}

func (c *fileChecker) Check(ctx context.Context, path string) error {
	log := c.app.log
	files := []string{path}

	overlaps, err := validate.Run(ctx, files, 1, validate.OverlapCheck())
	if err != nil {
		return err
	}
	if overlaps[0].Err != nil {
		return overlaps[0].Err
	}
	for _, pe := range overlaps[0].Skipped {
		log.Warn(ctx, "Skipped block: %v", pe)
	}
	for _, o := range overlaps[0].Findings {
		log.Warn(ctx, "%s: blocks %s and %s overlap (%s / %s)", path, o.A.Index, o.B.Index, o.A.TimeRange(), o.B.TimeRange())
	}

	dups, err := validate.Run(ctx, files, 1, validate.DuplicateCheck(c.ignoreCase))
	if err != nil {
		return err
	}
	for _, g := range dups[0].Findings {
		log.Warn(ctx, "%s: %d blocks share the text %q", path, len(g.Blocks), g.Blocks[0].Text())
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	report := validate.CheckIndices(string(raw))
	for _, m := range report.Mismatches {
		log.Warn(ctx, "%s:%d: index %d, expected %d", path, m.Line, m.Observed, m.Expected)
	}

	var speakerIssues int
	if c.chars != nil {
		issues, err := validate.Run(ctx, files, 1, validate.SpeakerCheck(c.chars))
		if err != nil {
			return err
		}
		for _, is := range issues[0].Findings {
			log.Warn(ctx, "%s:%d: %s %s", path, is.Line, is.Kind, is.Name)
		}
		speakerIssues = len(issues[0].Findings)
	}

	log.Info(ctx, "Checked %s: %d overlap(s), %d duplicate group(s), %d index mismatch(es), %d speaker issue(s)",
		path, len(overlaps[0].Findings), len(dups[0].Findings), len(report.Mismatches), speakerIssues)
	return nil
}
