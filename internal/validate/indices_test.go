package validate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const gappedSRT = "1\n00:00:01,000 --> 00:00:02,000\na\n\n" +
	"2\n00:00:02,000 --> 00:00:03,000\nb\n\n" +
	"4\n00:00:03,000 --> 00:00:04,000\nc\n\n" +
	"5\n00:00:04,000 --> 00:00:05,000\nd\n"

func TestCheckIndices(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		count int
		want  []Mismatch
	}{
		{
			name:  "gap",
			text:  gappedSRT,
			count: 4,
			want:  []Mismatch{{Line: 9, Observed: 4, Expected: 3}, {Line: 13, Observed: 5, Expected: 4}},
		},
		{
			name:  "consistent",
			text:  "1\n00:00:01,000 --> 00:00:02,000\na\n\n2\n00:00:02,000 --> 00:00:03,000\nb\n",
			count: 2,
		},
		{
			name:  "numeric text line counts as an index",
			text:  "1\n00:00:01,000 --> 00:00:02,000\n42\n\n2\n00:00:02,000 --> 00:00:03,000\nb\n",
			count: 3,
			want:  []Mismatch{{Line: 3, Observed: 42, Expected: 2}, {Line: 5, Observed: 2, Expected: 3}},
		},
		{
			name:  "no indices",
			text:  "00:00:01,000 --> 00:00:02,000\na\n",
			count: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckIndices(tt.text)
			if got.Count != tt.count {
				t.Errorf("Count = %d, want %d", got.Count, tt.count)
			}
			if diff := cmp.Diff(tt.want, got.Mismatches); diff != "" {
				t.Errorf("Mismatches (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFixIndices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.srt")
	if err := os.WriteFile(path, []byte(gappedSRT), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := FixIndices(path, time.Unix(1700000000, 0))
	if err != nil {
		t.Fatalf("FixIndices() error = %v", err)
	}
	if !r.Fixed || r.Backup != path+".bak" {
		t.Errorf("report = %+v", r)
	}
	if r.Err() != nil {
		t.Errorf("Err() after fix = %v", r.Err())
	}

	fixed, _ := os.ReadFile(path)
	want := strings.Replace(gappedSRT, "\n4\n", "\n3\n", 1)
	want = strings.Replace(want, "\n5\n", "\n4\n", 1)
	if string(fixed) != want {
		t.Errorf("fixed file = %q, want %q", fixed, want)
	}
	backup, _ := os.ReadFile(r.Backup)
	if string(backup) != gappedSRT {
		t.Errorf("backup = %q", backup)
	}

	again := CheckIndices(string(fixed))
	if len(again.Mismatches) != 0 {
		t.Errorf("mismatches after fix: %+v", again.Mismatches)
	}
}

func TestFixIndicesKeepsBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.srt")
	in := "\ufeff3\r\n00:00:01,000 --> 00:00:02,000\r\na\r\n\r\n2\r\n00:00:02,000 --> 00:00:03,000\r\nb\r\n"
	if err := os.WriteFile(path, []byte(in), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := FixIndices(path, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Mismatches) != 1 || r.Mismatches[0].Line != 1 {
		t.Fatalf("mismatches = %+v", r.Mismatches)
	}

	got, _ := os.ReadFile(path)
	want := "\ufeff1\r\n00:00:01,000 --> 00:00:02,000\r\na\r\n\r\n2\r\n00:00:02,000 --> 00:00:03,000\r\nb\r\n"
	if string(got) != want {
		t.Errorf("fixed = %q, want %q", got, want)
	}
}

func TestFixIndicesNoMismatchWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.srt")
	if err := os.WriteFile(path, []byte("1\n00:00:01,000 --> 00:00:02,000\na\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := FixIndices(path, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if r.Fixed || r.Backup != "" {
		t.Errorf("report = %+v", r)
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Error("backup written for a consistent file")
	}
}

func TestRunIndices(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.srt")
	good := filepath.Join(dir, "good.srt")
	missing := filepath.Join(dir, "missing.srt")
	os.WriteFile(bad, []byte(gappedSRT), 0o644)
	os.WriteFile(good, []byte("1\n00:00:01,000 --> 00:00:02,000\na\n"), 0o644)

	results, err := RunIndices(context.Background(), []string{bad, good, missing}, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(results[0].Report.Err(), ErrIndexMismatch) {
		t.Errorf("bad: Err() = %v", results[0].Report.Err())
	}
	if results[1].Report.Err() != nil || results[1].Err != nil {
		t.Errorf("good: %+v", results[1])
	}
	if results[2].Err == nil {
		t.Error("missing file should fail")
	}

	var sb strings.Builder
	s := WriteIndices(&sb, results)
	if s.AllOK() || s.Problems != 1 || s.Failed != 1 || s.OK != 1 {
		t.Errorf("summary = %+v", s)
	}
	if !strings.Contains(sb.String(), "line 9: 4  ->  3") {
		t.Errorf("report missing mismatch line:\n%s", sb.String())
	}
}
