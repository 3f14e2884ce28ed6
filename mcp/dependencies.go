package mcp

import (
	"github.com/oakbranch/pymap/app"
	"github.com/oakbranch/pymap/domain"
	"github.com/oakbranch/pymap/internal/config"
	"github.com/oakbranch/pymap/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	fileReader domain.FileReader
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		fileReader: service.NewFileReader(),
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// BuildResolveUseCase assembles a fresh ResolveUseCase with injected dependencies.
func (d *Dependencies) BuildResolveUseCase() (*app.ResolveUseCase, error) {
	resolveSvc := service.NewResolveService()
	return app.NewResolveUseCaseBuilder().
		WithService(resolveSvc).
		WithFileReader(d.fileReader).
		WithFormatter(service.NewGraphFormatter()).
		Build()
}
