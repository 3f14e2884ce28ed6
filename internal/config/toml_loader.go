package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// PymapTomlConfig represents the structure of .pymap.toml.
type PymapTomlConfig struct {
	Search SearchTomlConfig `toml:"search"` // [search] section
	Cache  CacheTomlConfig  `toml:"cache"`  // [cache] section
	Parser ParserTomlConfig `toml:"parser"` // [parser] section
}

// SearchTomlConfig represents the [search] section.
type SearchTomlConfig struct {
	Roots           []string `toml:"roots"`
	ExcludePatterns []string `toml:"exclude_patterns"`
}

// CacheTomlConfig represents the [cache] section.
type CacheTomlConfig struct {
	Path string `toml:"path"`
}

// ParserTomlConfig represents the [parser] section.
type ParserTomlConfig struct {
	ShallowStd *bool `toml:"shallow_std"` // pointer to detect unset
}

// TomlConfigLoader handles TOML-only configuration loading.
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader.
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig loads configuration from TOML files with ruff-like priority:
//  1. .pymap.toml (dedicated config file)
//  2. pyproject.toml (with [tool.pymap] section)
//  3. defaults
//
// path can be either a direct file path or a directory to search upward from.
func (l *TomlConfigLoader) LoadConfig(path string) (*Config, error) {
	if path != "" {
		if info, err := os.Stat(path); err == nil {
			if !info.IsDir() {
				return l.loadFromFile(path)
			}
		} else if isLikelyConfigFilePath(path) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	}

	startDir := path
	if startDir == "" {
		startDir = "."
	}

	if cfg, err := l.loadFromPymapToml(startDir); err == nil {
		return cfg, nil
	}

	if cfg, err := l.loadFromPyprojectToml(startDir); err == nil {
		return cfg, nil
	}

	return DefaultConfig(), nil
}

func (l *TomlConfigLoader) loadFromFile(filePath string) (*Config, error) {
	if filepath.Base(filePath) == "pyproject.toml" {
		return LoadPyprojectConfig(filepath.Dir(filePath))
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var parsed PymapTomlConfig
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}

	defaults := DefaultConfig()
	mergePymapTomlConfig(defaults, &parsed)
	return defaults, nil
}

func (l *TomlConfigLoader) loadFromPyprojectToml(startDir string) (*Config, error) {
	if _, err := findPyprojectToml(startDir); err != nil {
		return nil, err
	}
	return LoadPyprojectConfig(startDir)
}

func (l *TomlConfigLoader) loadFromPymapToml(startDir string) (*Config, error) {
	configPath, err := l.findPymapToml(startDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var parsed PymapTomlConfig
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}

	defaults := DefaultConfig()
	mergePymapTomlConfig(defaults, &parsed)
	return defaults, nil
}

func (l *TomlConfigLoader) findPymapToml(startDir string) (string, error) {
	dir, err := normalizeSearchDir(startDir)
	if err != nil {
		return "", err
	}

	for {
		configPath := filepath.Join(dir, ".pymap.toml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

// ResolveConfigPath resolves the effective configuration file path once,
// so every call site reads the same config source.
func (l *TomlConfigLoader) ResolveConfigPath(configPath string, targetPath string) (string, error) {
	if configPath != "" {
		info, err := os.Stat(configPath)
		if err != nil {
			return "", fmt.Errorf("config file not found: %s", configPath)
		}
		if !info.IsDir() {
			return configPath, nil
		}
		return l.FindConfigFileFromPath(configPath), nil
	}

	searchPath := targetPath
	if searchPath == "" {
		searchPath = "."
	}

	return l.FindConfigFileFromPath(searchPath), nil
}

// FindConfigFileFromPath discovers a config file from the given path.
// Priority: .pymap.toml, then pyproject.toml containing [tool.pymap].
func (l *TomlConfigLoader) FindConfigFileFromPath(startPath string) string {
	dir, err := normalizeSearchDir(startPath)
	if err != nil {
		return ""
	}

	current := dir
	for {
		pymapPath := filepath.Join(current, ".pymap.toml")
		if _, err := os.Stat(pymapPath); err == nil {
			return pymapPath
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	current = dir
	for {
		pyprojectPath := filepath.Join(current, "pyproject.toml")
		if _, err := os.Stat(pyprojectPath); err == nil && hasPymapSection(pyprojectPath) {
			return pyprojectPath
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return ""
}

func isLikelyConfigFilePath(path string) bool {
	base := filepath.Base(path)
	if base == ".pymap.toml" || base == "pyproject.toml" {
		return true
	}
	return strings.HasSuffix(base, ".toml")
}

func normalizeSearchDir(path string) (string, error) {
	if path == "" {
		path = "."
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(absPath)
	if err == nil && !info.IsDir() {
		return filepath.Dir(absPath), nil
	}

	return absPath, nil
}

// mergePymapTomlConfig merges .pymap.toml values into defaults, using
// pointer fields to distinguish "unset" from an explicit false/zero.
func mergePymapTomlConfig(defaults *Config, parsed *PymapTomlConfig) {
	if len(parsed.Search.Roots) > 0 {
		defaults.Search.Roots = parsed.Search.Roots
	}
	if len(parsed.Search.ExcludePatterns) > 0 {
		defaults.Search.ExcludePatterns = parsed.Search.ExcludePatterns
	}
	if parsed.Cache.Path != "" {
		defaults.Cache.Path = parsed.Cache.Path
	}
	if parsed.Parser.ShallowStd != nil {
		defaults.Parser.ShallowStd = *parsed.Parser.ShallowStd
	}
}

// configToPymapTomlConfig converts a Config back to its TOML shape for
// SaveConfig's marshalling step.
func configToPymapTomlConfig(cfg *Config) *PymapTomlConfig {
	shallowStd := cfg.Parser.ShallowStd
	return &PymapTomlConfig{
		Search: SearchTomlConfig{
			Roots:           cfg.Search.Roots,
			ExcludePatterns: cfg.Search.ExcludePatterns,
		},
		Cache: CacheTomlConfig{
			Path: cfg.Cache.Path,
		},
		Parser: ParserTomlConfig{
			ShallowStd: &shallowStd,
		},
	}
}

// GetSupportedConfigFiles returns the list of supported TOML config files
// in order of precedence.
func (l *TomlConfigLoader) GetSupportedConfigFiles() []string {
	return []string{
		".pymap.toml",    // dedicated config file (highest priority)
		"pyproject.toml", // with [tool.pymap] section
	}
}
