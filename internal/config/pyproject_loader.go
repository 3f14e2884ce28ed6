package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// PyprojectToml represents the structure of pyproject.toml.
type PyprojectToml struct {
	Tool ToolConfig `toml:"tool"`
}

// ToolConfig represents the [tool] section.
type ToolConfig struct {
	Pymap PymapTomlConfig `toml:"pymap"`
}

// LoadPyprojectConfig loads the [tool.pymap] table from pyproject.toml,
// walking up the directory tree from startDir to find the file.
func LoadPyprojectConfig(startDir string) (*Config, error) {
	configPath, err := findPyprojectToml(startDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadPyprojectConfigFromFile(configPath)
}

// LoadPyprojectConfigFromFile loads the [tool.pymap] table from a
// specific pyproject.toml file path.
func LoadPyprojectConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pyproject PyprojectToml
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return nil, err
	}

	defaults := DefaultConfig()
	mergePymapTomlConfig(defaults, &pyproject.Tool.Pymap)
	return defaults, nil
}

// findPyprojectToml walks up the directory tree to find pyproject.toml.
func findPyprojectToml(startDir string) (string, error) {
	dir, err := normalizeSearchDir(startDir)
	if err != nil {
		return "", err
	}

	for {
		configPath := filepath.Join(dir, "pyproject.toml")
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

// hasPymapSection reports whether a pyproject.toml file declares a
// [tool.pymap] table, without fully unmarshalling the structured config.
func hasPymapSection(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), "[tool.pymap")
}
