package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/voice-dataset/internal/logger"
)

func TestIsSubtitleFile(t *testing.T) {
	tests := map[string]bool{
		"/a/KAXA-7501CD_bilingual.srt": true,
		"b.SRT":                        true,
		".hidden.srt":                  false,
		"notes.txt":                    false,
		"srt":                          false,
	}
	for in, want := range tests {
		if got := isSubtitleFile(in); got != want {
			t.Errorf("isSubtitleFile(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWatcherHandlesSubtitleOnce(t *testing.T) {
	dir := t.TempDir()

	var (
		mu   sync.Mutex
		seen = map[string]int{}
		done = make(chan struct{}, 8)
	)
	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		seen[filepath.Base(path)]++
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	w, err := New(dir, handler, logger.NewNop(), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	impl := w.(*implWatcher)
	impl.settle = 100 * time.Millisecond
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	path := filepath.Join(dir, "a.srt")
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("1\n00:00:01,000 --> 00:00:02,000\nx\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}
	time.Sleep(300 * time.Millisecond)

	cancel()
	if err := <-errCh; err != context.Canceled {
		t.Errorf("Start() error = %v, want context.Canceled", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if seen["a.srt"] != 1 {
		t.Errorf("a.srt handled %d times, want 1", seen["a.srt"])
	}
	if _, ok := seen["ignored.txt"]; ok {
		t.Error("non-subtitle file was handled")
	}
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, logger.NewNop(), 1)
	if err == nil {
		t.Fatal("New() error = nil, want error for missing directory")
	}
}
