package mcp

import (
	"github.com/oakbranch/pymap/domain"
	"github.com/oakbranch/pymap/internal/config"
)

// NewTestDependencies exposes Dependencies' unexported fields for tests.
func NewTestDependencies(fr domain.FileReader, cfg *config.Config, path string) *Dependencies {
	return &Dependencies{
		fileReader: fr,
		config:     cfg,
		configPath: path,
	}
}
