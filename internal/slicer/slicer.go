package slicer

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/nguyentantai21042004/voice-dataset/internal/fsutil"
	"github.com/nguyentantai21042004/voice-dataset/internal/transcript"
)

// Segment is one clip to extract.
type Segment struct {
	Row    transcript.Row
	Clip   transcript.Clip
	Source string
	Output string
}

// Plan is the outcome of resolving rows against the disk.
type Plan struct {
	// Sources maps CD number to its audio; "" when none was found.
	Sources  map[int]string
	Segments []Segment
	// Rows whose clip already exists.
	Existing int
	// Rows whose CD has no source audio.
	MissingSource int
	// Rows whose filename could not be decoded.
	Unrecognized int
	// Total rows with a decodable filename.
	Total int
}

// CDs returns the CD numbers of the plan in ascending order.
func (p Plan) CDs() []int {
	cds := make([]int, 0, len(p.Sources))
	for cd := range p.Sources {
		cds = append(cds, cd)
	}
	sort.Ints(cds)
	return cds
}

// Result summarizes a Slice run.
type Result struct {
	Plan      Plan
	Extracted int
	Failed    int
	Errors    []error
	DryRun    bool
}

func (s *implSlicer) Plan(ctx context.Context, rows []transcript.Row) (Plan, error) {
	p := Plan{Sources: make(map[int]string)}
	root := s.cfg.Paths.VocalOutput

	for _, r := range rows {
		clip, err := transcript.ParseFilename(r.Filename)
		if err != nil {
			s.logger.Warn(ctx, "Skipping unrecognized filename format: %s", r.Filename)
			p.Unrecognized++
			continue
		}
		p.Total++

		src, seen := p.Sources[clip.CD]
		if !seen {
			src, err = FindSource(clip.CD, s.cfg.Paths.CDAudioDir, s.cfg.Paths.SeparatedDir)
			if err != nil {
				return Plan{}, fmt.Errorf("find source for cd%02d: %w", clip.CD, err)
			}
			p.Sources[clip.CD] = src
			if src == "" {
				s.logger.Warn(ctx, "No source audio found for cd%02d in %s or %s", clip.CD, s.cfg.Paths.CDAudioDir, s.cfg.Paths.SeparatedDir)
			}
		}
		if src == "" {
			p.MissingSource++
			continue
		}

		out := OutputPath(root, r)
		if fsutil.Exists(out) {
			s.logger.Debug(ctx, "Skipping %s: output already exists", r.Filename)
			p.Existing++
			continue
		}

		p.Segments = append(p.Segments, Segment{Row: r, Clip: clip, Source: src, Output: out})
	}

	return p, nil
}

func (s *implSlicer) Slice(ctx context.Context, rows []transcript.Row) (Result, error) {
	startTime := time.Now()

	plan, err := s.Plan(ctx, rows)
	if err != nil {
		return Result{}, err
	}
	res := Result{Plan: plan, DryRun: s.cfg.Transcript.DryRun}

	if res.DryRun {
		for _, cd := range plan.CDs() {
			if src := plan.Sources[cd]; src != "" {
				s.logger.Info(ctx, "cd%02d: FOUND -> %s", cd, src)
			} else {
				s.logger.Info(ctx, "cd%02d: MISSING", cd)
			}
		}
		s.logger.Info(ctx, "Planned segments: %d (dry-run, no files written)", len(plan.Segments))
		return res, nil
	}

	if len(plan.Segments) == 0 {
		s.logger.Info(ctx, "No extraction tasks to run")
		return res, nil
	}

	workers := s.cfg.Performance.MaxConcurrent
	if workers < 1 {
		workers = 1
	}
	s.logger.Info(ctx, "Running %d extraction tasks with %d worker(s)", len(plan.Segments), workers)

	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, seg := range plan.Segments {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(seg Segment) {
			defer wg.Done()
			defer sem.Release(1)

			err := s.extractSegment(ctx, seg.Source, seg.Clip.Start.TotalSeconds(), seg.Clip.End.TotalSeconds(), seg.Output)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failed++
				res.Errors = append(res.Errors, fmt.Errorf("%s: %w", seg.Row.Filename, err))
				s.logger.Error(ctx, "Extracting %s from %s: %v", seg.Row.Filename, seg.Source, err)
				return
			}
			res.Extracted++
			s.logger.Debug(ctx, "Extracted: %s", seg.Output)
		}(seg)
	}
	wg.Wait()

	s.logger.Info(ctx, "Finished in %s. Extracted: %d, Failed: %d, Existing: %d, Missing source: %d",
		time.Since(startTime).Round(time.Millisecond), res.Extracted, res.Failed, plan.Existing, plan.MissingSource)

	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

// OutputPath places a clip under root, inside the character folder when
// the row has a character.
func OutputPath(root string, r transcript.Row) string {
	if r.Character == "" {
		return filepath.Join(root, r.Filename)
	}
	return filepath.Join(root, fsutil.SanitizeName(r.Character), r.Filename)
}
