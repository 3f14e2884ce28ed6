package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Cache.Path != DefaultCachePath {
		t.Fatalf("expected default cache path %q, got %q", DefaultCachePath, cfg.Cache.Path)
	}
	if cfg.Parser.ShallowStd != DefaultShallowStd {
		t.Fatalf("expected default shallow_std %v, got %v", DefaultShallowStd, cfg.Parser.ShallowStd)
	}
}

func TestLoadConfigWithTarget_NoConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfigWithTarget("", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Cache.Path != DefaultCachePath {
		t.Fatalf("expected defaults when no config file present, got %+v", cfg)
	}
}

func TestLoadConfigWithTarget_PymapToml(t *testing.T) {
	dir := t.TempDir()
	contents := `
[search]
roots = ["vendor", "libs"]
exclude_patterns = ["**/tests/**"]

[cache]
path = "custom-cache.json"

[parser]
shallow_std = true
`
	if err := os.WriteFile(filepath.Join(dir, ".pymap.toml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfigWithTarget("", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Search.Roots) != 2 || cfg.Search.Roots[0] != "vendor" {
		t.Fatalf("unexpected search roots: %+v", cfg.Search.Roots)
	}
	if cfg.Cache.Path != "custom-cache.json" {
		t.Fatalf("unexpected cache path: %q", cfg.Cache.Path)
	}
	if !cfg.Parser.ShallowStd {
		t.Fatalf("expected shallow_std to be true")
	}
}

func TestLoadConfigWithTarget_PyprojectToml(t *testing.T) {
	dir := t.TempDir()
	contents := `
[tool.pymap.search]
roots = ["src"]

[tool.pymap.cache]
path = "pyproject-cache.json"
`
	if err := os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("write pyproject: %v", err)
	}

	cfg, err := LoadConfigWithTarget("", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Search.Roots) != 1 || cfg.Search.Roots[0] != "src" {
		t.Fatalf("unexpected search roots: %+v", cfg.Search.Roots)
	}
	if cfg.Cache.Path != "pyproject-cache.json" {
		t.Fatalf("unexpected cache path: %q", cfg.Cache.Path)
	}
}

func TestLoadConfigWithTarget_ExplicitPathMissing(t *testing.T) {
	_, err := LoadConfigWithTarget(filepath.Join(t.TempDir(), "missing.toml"), "")
	if err == nil {
		t.Fatalf("expected error for missing explicit config path")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", ".pymap.toml")

	cfg := DefaultConfig()
	cfg.Search.Roots = []string{"vendor"}
	cfg.Cache.Path = "saved-cache.json"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("save config: %v", err)
	}

	loaded, err := LoadConfigWithTarget(path, "")
	if err != nil {
		t.Fatalf("load saved config: %v", err)
	}
	if loaded.Cache.Path != "saved-cache.json" {
		t.Fatalf("unexpected roundtrip cache path: %q", loaded.Cache.Path)
	}
	if len(loaded.Search.Roots) != 1 || loaded.Search.Roots[0] != "vendor" {
		t.Fatalf("unexpected roundtrip search roots: %+v", loaded.Search.Roots)
	}
}
