package slicer

import (
	"github.com/nguyentantai21042004/voice-dataset/internal/config"
	"github.com/nguyentantai21042004/voice-dataset/internal/logger"
	"github.com/nguyentantai21042004/voice-dataset/pkg/executor"
)

type implSlicer struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Slicer instance
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Slicer {
	return &implSlicer{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
