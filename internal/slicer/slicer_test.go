package slicer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nguyentantai21042004/voice-dataset/internal/config"
	"github.com/nguyentantai21042004/voice-dataset/internal/logger"
	"github.com/nguyentantai21042004/voice-dataset/internal/transcript"
)

// fakeExecutor records calls and creates the output file ffmpeg would write.
type fakeExecutor struct {
	mu    sync.Mutex
	calls [][]string
	fail  map[string]bool
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()

	out := args[len(args)-1]
	for src := range f.fail {
		for _, a := range args {
			if a == src {
				return "", errors.New("ffmpeg exploded")
			}
		}
	}
	return "", os.WriteFile(out, []byte("ogg"), 0o644)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func touch(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(t *testing.T, root string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Paths.CDAudioDir = filepath.Join(root, "CDs")
	cfg.Paths.SeparatedDir = filepath.Join(root, "separated")
	cfg.Paths.VocalOutput = filepath.Join(root, "out")
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestFindSource(t *testing.T) {
	root := t.TempDir()
	cdDir := filepath.Join(root, "CDs")
	sepDir := filepath.Join(root, "separated")

	disc1 := touch(t, filepath.Join(cdDir, "SPCD1", "KAXA-7501CD.flac"))
	disc2 := touch(t, filepath.Join(cdDir, "SPCD2", "track-cd02.flac"))
	touch(t, filepath.Join(cdDir, "SPCD2", "cover.jpg"))

	tests := []struct {
		name   string
		cd     int
		sepDir string
		want   string
	}{
		{"position fallback", 1, "", disc1},
		{"name contains cd number", 2, "", disc2},
		{"nothing for cd 9", 9, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindSource(tt.cd, cdDir, tt.sepDir)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("FindSource(%d) = %q, want %q", tt.cd, got, tt.want)
			}
		})
	}

	vocals2 := touch(t, filepath.Join(sepDir, "KAXA-7502CD", vocalsName))
	vocals1 := touch(t, filepath.Join(sepDir, "KAXA-7501CD", vocalsName))

	got, err := FindSource(2, cdDir, sepDir)
	if err != nil || got != vocals2 {
		t.Errorf("FindSource(2) with stems = %q, %v; want %q", got, err, vocals2)
	}
	got, err = FindSource(5, cdDir, sepDir)
	if err != nil || got != vocals1 {
		t.Errorf("FindSource(5) with stems = %q, %v; want first stem %q", got, err, vocals1)
	}
}

func TestSlice(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(t, root)
	src := touch(t, filepath.Join(cfg.Paths.CDAudioDir, "KAXA-7501CD.flac"))

	existing := touch(t, filepath.Join(cfg.Paths.VocalOutput, "Ctoria", "[cd01-0002][00.05.00-00.06.00].ogg"))

	rows := []transcript.Row{
		{Filename: "[cd01-0000][00.01.00-00.02.50].ogg", Character: "Ctoria", Content: "あ"},
		{Filename: "[cd01-0001][00.03.00-00.04.00].ogg", Character: "", Content: "い"},
		{Filename: "[cd01-0002][00.05.00-00.06.00].ogg", Character: "Ctoria", Content: "う"},
		{Filename: "[cd03-0000][00.01.00-00.02.00].ogg", Character: "Ctoria", Content: "え"},
		{Filename: "bogus.ogg"},
	}

	exec := &fakeExecutor{}
	res, err := New(cfg, exec, logger.NewNop()).Slice(context.Background(), rows)
	if err != nil {
		t.Fatalf("Slice() error = %v", err)
	}

	if res.Extracted != 2 || res.Failed != 0 {
		t.Errorf("Extracted = %d, Failed = %d", res.Extracted, res.Failed)
	}
	if res.Plan.Existing != 1 || res.Plan.MissingSource != 1 || res.Plan.Unrecognized != 1 {
		t.Errorf("plan = %+v", res.Plan)
	}
	if res.Plan.Sources[1] != src || res.Plan.Sources[3] != "" {
		t.Errorf("sources = %v", res.Plan.Sources)
	}

	for _, p := range []string{
		filepath.Join(cfg.Paths.VocalOutput, "Ctoria", "[cd01-0000][00.01.00-00.02.50].ogg"),
		filepath.Join(cfg.Paths.VocalOutput, "[cd01-0001][00.03.00-00.04.00].ogg"),
		existing,
	} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing output %s", p)
		}
	}

	var starts []string
	for _, c := range exec.calls {
		for i, a := range c {
			if a == "-ss" {
				starts = append(starts, c[i+1]+"-"+c[i+3])
			}
		}
		if c[0] != "ffmpeg" {
			t.Errorf("binary = %q, want ffmpeg", c[0])
		}
	}
	sort.Strings(starts)
	if diff := cmp.Diff([]string{"1.000-2.500", "3.000-4.000"}, starts); diff != "" {
		t.Errorf("ffmpeg ranges (-want +got):\n%s", diff)
	}
}

func TestSliceDryRun(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(t, root)
	cfg.Transcript.DryRun = true
	touch(t, filepath.Join(cfg.Paths.CDAudioDir, "KAXA-7501CD.flac"))

	exec := &fakeExecutor{}
	res, err := New(cfg, exec, logger.NewNop()).Slice(context.Background(), []transcript.Row{
		{Filename: "[cd01-0000][00.01.00-00.02.00].ogg", Character: "Ctoria"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.DryRun || len(res.Plan.Segments) != 1 || len(exec.calls) != 0 {
		t.Errorf("dry run = %+v, calls = %d", res, len(exec.calls))
	}
}

func TestSliceRecordsFailures(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(t, root)
	src := touch(t, filepath.Join(cfg.Paths.CDAudioDir, "KAXA-7501CD.flac"))

	exec := &fakeExecutor{fail: map[string]bool{src: true}}
	res, err := New(cfg, exec, logger.NewNop()).Slice(context.Background(), []transcript.Row{
		{Filename: "[cd01-0000][00.01.00-00.02.00].ogg"},
		{Filename: "[cd01-0001][00.03.00-00.03.00].ogg"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Failed != 2 || len(res.Errors) != 2 {
		t.Fatalf("Failed = %d, errors = %v", res.Failed, res.Errors)
	}

	var nonPositive bool
	for _, e := range res.Errors {
		if errors.Is(e, ErrNonPositiveDuration) {
			nonPositive = true
		}
	}
	if !nonPositive {
		t.Errorf("errors = %v, want one ErrNonPositiveDuration", res.Errors)
	}

	leftovers, _ := filepath.Glob(filepath.Join(cfg.Paths.VocalOutput, ".tmp-*"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left: %v", leftovers)
	}
}

func TestDivide(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(t, root)
	out := cfg.Paths.VocalOutput

	touch(t, filepath.Join(out, "[cd01-0000][00.01.00-00.02.00].ogg"))
	touch(t, filepath.Join(out, "[cd01-0001][00.03.00-00.04.00].ogg"))
	touch(t, filepath.Join(out, "Ctoria", "[cd01-0005][00.09.00-00.10.00].ogg"))

	rows := []transcript.Row{
		{Filename: "[cd01-0000][00.01.00-00.02.00].ogg", Character: "Ctoria"},
		{Filename: "[cd01-0001][00.03.00-00.04.00].ogg", Character: ""},
		{Filename: "[cd01-0002][00.05.00-00.06.00].ogg", Character: "Willem"},
	}

	counts, err := New(cfg, &fakeExecutor{}, logger.NewNop()).Divide(context.Background(), rows)
	if err != nil {
		t.Fatalf("Divide() error = %v", err)
	}
	if diff := cmp.Diff(map[string]int{"Ctoria": 2}, counts); diff != "" {
		t.Errorf("counts (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(out, "[cd01-0001][00.03.00-00.04.00].ogg")); err != nil {
		t.Error("anonymous clip should stay at the root")
	}
}
