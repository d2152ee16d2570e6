package validate

import (
	"sort"

	"github.com/nguyentantai21042004/voice-dataset/internal/srt"
)

// Overlap is a pair of adjacent blocks where B starts before A ends.
type Overlap struct {
	A srt.Block
	B srt.Block
}

// FindOverlaps orders blocks by index when every block has one, otherwise by
// start time, and reports each adjacent pair with B.Start < A.End.
// Abutting blocks do not overlap.
func FindOverlaps(blocks []srt.Block) []Overlap {
	if len(blocks) < 2 {
		return nil
	}

	ordered := make([]srt.Block, len(blocks))
	copy(ordered, blocks)

	if allIndexed(ordered) {
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Index.Value < ordered[j].Index.Value
		})
	} else {
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Start.Before(ordered[j].Start)
		})
	}

	var out []Overlap
	for i := 1; i < len(ordered); i++ {
		a, b := ordered[i-1], ordered[i]
		if b.Start.Before(a.End) {
			out = append(out, Overlap{A: a, B: b})
		}
	}
	return out
}

func allIndexed(blocks []srt.Block) bool {
	for _, b := range blocks {
		if !b.Index.Present {
			return false
		}
	}
	return true
}
