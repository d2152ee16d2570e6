package validate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/voice-dataset/internal/srt"
)

// FileResult is the outcome of one check on one file.
type FileResult[T any] struct {
	File     string
	Findings []T
	// Skipped lists blocks left out because they could not be parsed.
	Skipped []*srt.ParseError
	// Err is set when the file could not be checked at all.
	Err error
}

// Check inspects the blocks of one file.
type Check[T any] func(ctx context.Context, file string, blocks []srt.Block) ([]T, error)

// Run applies check to every file with at most limit files in flight.
// Results keep the order of files. A failing file is recorded in its
// result and never stops the others; only ctx cancellation does.
func Run[T any](ctx context.Context, files []string, limit int, check Check[T]) ([]FileResult[T], error) {
	return Each(ctx, files, limit, func(ctx context.Context, file string) FileResult[T] {
		return checkFile(ctx, file, check)
	})
}

// Each calls fn for every file on an errgroup bounded by limit and returns
// the results in file order.
func Each[R any](ctx context.Context, files []string, limit int, fn func(ctx context.Context, file string) R) ([]R, error) {
	results := make([]R, len(files))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = fn(ctx, f)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkFile[T any](ctx context.Context, file string, check Check[T]) FileResult[T] {
	res := FileResult[T]{File: file}

	blocks, skipped, err := loadBlocks(file)
	if err != nil {
		res.Err = err
		return res
	}
	res.Skipped = skipped

	res.Findings, res.Err = check(ctx, file, blocks)
	return res
}

// Summary counts findings across results.
type Summary struct {
	Files    int
	Findings int
	Failed   int
	Skipped  int
}

// Summarize totals results.
func Summarize[T any](results []FileResult[T]) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		s.Findings += len(r.Findings)
		s.Skipped += len(r.Skipped)
		if r.Err != nil {
			s.Failed++
		}
	}
	return s
}

// OK reports whether nothing was found and every file was checked.
func (s Summary) OK() bool {
	return s.Findings == 0 && s.Failed == 0
}
