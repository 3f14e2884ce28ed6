package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default values for the fields config only ever supplies as defaults;
// CLI flags always win over whatever is loaded here.
const (
	DefaultCachePath  = ".pymap-cache.json"
	DefaultShallowStd = false
)

// Config holds the subset of project configuration pymap understands:
// search roots, exclude patterns, cache path and the
// shallow-stdlib default. Everything here is overridable per-invocation
// by the equivalent CLI flag.
type Config struct {
	// Search holds extra module search roots and file patterns.
	Search SearchConfig `mapstructure:"search" yaml:"search"`

	// Cache holds the default cache file path.
	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`

	// Parser holds parser-mode defaults.
	Parser ParserConfig `mapstructure:"parser" yaml:"parser"`
}

// SearchConfig holds extra search roots and exclude patterns.
type SearchConfig struct {
	// Roots are additional import search roots, equivalent to --python-path.
	Roots []string `mapstructure:"roots" yaml:"roots"`

	// ExcludePatterns are doublestar glob patterns matched against a
	// module's resolved origin path; a matching module stays in the graph
	// but is not parsed, so its imports are not followed.
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
}

// CacheConfig holds cache file defaults.
type CacheConfig struct {
	// Path is the default cache file path, used when --cache is absent.
	Path string `mapstructure:"path" yaml:"path"`
}

// ParserConfig holds parser-mode defaults.
type ParserConfig struct {
	// ShallowStd is the default for --shallow-std: resolve stdlib
	// imports as leaf nodes without descending into their sources.
	ShallowStd bool `mapstructure:"shallow_std" yaml:"shallow_std"`
}

// DefaultConfig returns the built-in configuration used when no
// .pymap.toml or pyproject.toml [tool.pymap] table is found.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Roots:           []string{},
			ExcludePatterns: []string{},
		},
		Cache: CacheConfig{
			Path: DefaultCachePath,
		},
		Parser: ParserConfig{
			ShallowStd: DefaultShallowStd,
		},
	}
}

// LoadConfig loads configuration from file or returns the default config.
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context, the
// same precedence the teacher's loader established: an explicit
// configPath always wins; otherwise the search starts at targetPath (or
// the current directory) and walks upward for .pymap.toml, then
// pyproject.toml's [tool.pymap] table.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	loader := NewTomlConfigLoader()

	resolvedConfigPath, err := loader.ResolveConfigPath(configPath, targetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configuration: %w", err)
	}

	if resolvedConfigPath == "" {
		return DefaultConfig(), nil
	}

	cfg, err := loader.LoadConfig(resolvedConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as a .pymap.toml file.
func SaveConfig(cfg *Config, path string) error {
	tomlCfg := configToPymapTomlConfig(cfg)

	data, err := toml.Marshal(tomlCfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	return os.WriteFile(path, data, 0o644)
}
