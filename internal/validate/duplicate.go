package validate

import (
	"sort"
	"strings"

	"github.com/nguyentantai21042004/voice-dataset/internal/srt"
)

// DuplicateGroup holds blocks whose normalized text is identical.
type DuplicateGroup struct {
	Key    string
	Blocks []srt.Block
}

// Normalize collapses whitespace runs to one space and trims. With
// ignoreCase the result is lower-cased.
func Normalize(text string, ignoreCase bool) string {
	t := strings.Join(strings.Fields(text), " ")
	if ignoreCase {
		t = strings.ToLower(t)
	}
	return t
}

// FindDuplicates groups blocks by normalized text. Groups with fewer than two
// blocks or an empty key are dropped. Larger groups come first; ties keep the
// order of first appearance.
func FindDuplicates(blocks []srt.Block, ignoreCase bool) []DuplicateGroup {
	byKey := make(map[string]int)
	var groups []DuplicateGroup

	for _, b := range blocks {
		key := Normalize(b.Text(), ignoreCase)
		if key == "" {
			continue
		}
		i, ok := byKey[key]
		if !ok {
			i = len(groups)
			byKey[key] = i
			groups = append(groups, DuplicateGroup{Key: key})
		}
		groups[i].Blocks = append(groups[i].Blocks, b)
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g.Blocks) > 1 {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Blocks) > len(out[j].Blocks)
	})
	return out
}
