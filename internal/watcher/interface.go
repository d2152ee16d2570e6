package watcher

import "context"

// Watcher monitors a subtitle directory.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles a created or rewritten subtitle file.
type EventHandler func(ctx context.Context, filePath string) error
