package main

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/voice-dataset/internal/speaker"
	"github.com/nguyentantai21042004/voice-dataset/internal/validate"
)

// collectFiles expands every path argument, defaulting to the configured
// subtitle directory.
func (a *app) collectFiles(paths []string, recursive bool) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{a.cfg.Paths.SrtDir}
	}

	var files []string
	seen := make(map[string]bool)
	for _, p := range paths {
		found, err := validate.ScanPath(p, recursive)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	if len(files) == 0 {
		fmt.Fprintln(a.stdout, "No .srt files found.")
	}
	return files, nil
}

func (a *app) limit() int {
	return a.cfg.Performance.MaxConcurrent
}

func runOverlaps(ctx context.Context, a *app, args []string) (int, error) {
	fs := a.newFlagSet("overlaps")
	recursive := fs.Bool("r", a.cfg.Validation.Recursive, "scan directories recursively")
	if err := parseFlags(fs, args); err != nil {
		return exitUsage, err
	}

	files, err := a.collectFiles(fs.Args(), *recursive)
	if err != nil {
		return exitUsage, err
	}
	results, err := validate.Run(ctx, files, a.limit(), validate.OverlapCheck())
	if err != nil {
		return exitFail, err
	}
	return exitCode(validate.WriteOverlaps(a.stdout, results)), nil
}

func runDuplicates(ctx context.Context, a *app, args []string) (int, error) {
	fs := a.newFlagSet("duplicates")
	recursive := fs.Bool("r", a.cfg.Validation.Recursive, "scan directories recursively")
	ignoreCase := fs.Bool("i", a.cfg.Validation.IgnoreCase, "compare texts case-insensitively")
	if err := parseFlags(fs, args); err != nil {
		return exitUsage, err
	}

	files, err := a.collectFiles(fs.Args(), *recursive)
	if err != nil {
		return exitUsage, err
	}
	results, err := validate.Run(ctx, files, a.limit(), validate.DuplicateCheck(*ignoreCase))
	if err != nil {
		return exitFail, err
	}
	return exitCode(validate.WriteDuplicates(a.stdout, results)), nil
}

func runIndices(ctx context.Context, a *app, args []string) (int, error) {
	fs := a.newFlagSet("indices")
	recursive := fs.Bool("r", a.cfg.Validation.Recursive, "scan directories recursively")
	fix := fs.Bool("fix", false, "renumber mismatched indices in place (a .bak copy is kept)")
	if err := parseFlags(fs, args); err != nil {
		return exitUsage, err
	}

	files, err := a.collectFiles(fs.Args(), *recursive)
	if err != nil {
		return exitUsage, err
	}
	results, err := validate.RunIndices(ctx, files, a.limit(), *fix)
	if err != nil {
		return exitFail, err
	}
	if validate.WriteIndices(a.stdout, results).AllOK() {
		return exitOK, nil
	}
	return exitFail, nil
}

func runSpeakers(ctx context.Context, a *app, args []string) (int, error) {
	fs := a.newFlagSet("speakers")
	recursive := fs.Bool("r", a.cfg.Validation.Recursive, "scan directories recursively")
	csvPath := fs.String("csv", a.cfg.Paths.CharactersCSV, "character name mapping CSV")
	unique := fs.Bool("show-unique", false, "list the distinct unknown speaker names")
	if err := parseFlags(fs, args); err != nil {
		return exitUsage, err
	}

	chars, err := speaker.LoadCharacterMap(*csvPath)
	if err != nil {
		return exitUsage, fmt.Errorf("%w: %v", errUsage, err)
	}
	files, err := a.collectFiles(fs.Args(), *recursive)
	if err != nil {
		return exitUsage, err
	}
	results, err := validate.Run(ctx, files, a.limit(), validate.SpeakerCheck(chars))
	if err != nil {
		return exitFail, err
	}
	return exitCode(validate.WriteSpeakers(a.stdout, results, *unique)), nil
}

func runLineLength(ctx context.Context, a *app, args []string) (int, error) {
	fs := a.newFlagSet("linelength")
	recursive := fs.Bool("r", a.cfg.Validation.Recursive, "scan directories recursively")
	maxLen := fs.Int("max", a.cfg.Validation.MaxLineLength, "maximum primary line length in characters")
	asJSON := fs.Bool("json", false, "print violations as JSON")
	failOn := fs.Bool("fail-on-violation", false, "exit 1 when any line is too long")
	if err := parseFlags(fs, args); err != nil {
		return exitUsage, err
	}
	if *maxLen < 1 {
		return exitUsage, fmt.Errorf("%w: -max must be at least 1", errUsage)
	}

	files, err := a.collectFiles(fs.Args(), *recursive)
	if err != nil {
		return exitUsage, err
	}
	results, err := validate.Run(ctx, files, a.limit(), validate.LineLengthCheck(*maxLen))
	if err != nil {
		return exitFail, err
	}
	s, err := validate.WriteLineLengths(a.stdout, results, *maxLen, *asJSON)
	if err != nil {
		return exitFail, err
	}
	if s.Failed > 0 || (*failOn && s.Findings > 0) {
		return exitFail, nil
	}
	return exitOK, nil
}

func exitCode(s validate.Summary) int {
	if s.OK() {
		return exitOK
	}
	return exitFail
}
