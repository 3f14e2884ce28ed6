package resolver

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheSaveAndLookup(t *testing.T) {
	proj := NewProject()
	mod := &Module{ID: newResolved("json", OriginFrozen), Path: OriginFrozen}
	mod.AddSubmodule(ModuleIdentifier{Name: "json.decoder"})
	proj.AddModule(mod)
	proj.AddPackage(newPackage(StdlibPackageName, "", PackageStandardLib))
	proj.AssignToPackage(StdlibPackageName, "json")

	cachePath := filepath.Join(t.TempDir(), "cache.json")
	cache := NewProjectCache(nil)
	cache.Save(cachePath, proj)

	data, err := os.ReadFile(cachePath)
	if err != nil {
		t.Fatalf("read cache: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("cache file is empty")
	}

	loaded := NewProjectCache(nil)
	loaded.Load(cachePath)

	rec, ok := loaded.Lookup("json")
	if !ok {
		t.Fatalf("expected cache hit for json")
	}
	if rec.Path != OriginFrozen {
		t.Fatalf("rec.Path = %q, want %q", rec.Path, OriginFrozen)
	}
	if len(rec.Submodules) != 1 || rec.Submodules[0] != "json.decoder" {
		t.Fatalf("rec.Submodules = %v, want [json.decoder]", rec.Submodules)
	}
}

func TestCacheLoadRejectsVersionMismatch(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(cachePath, []byte(`{"version":"0.1","packages":{}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cache := NewProjectCache(nil)
	cache.Load(cachePath)

	if _, ok := cache.Lookup("json"); ok {
		t.Fatalf("expected empty cache after a version mismatch")
	}
}

func TestCacheLoadRejectsMalformedPayload(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(cachePath, []byte(`not json`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cache := NewProjectCache(nil)
	cache.Load(cachePath)

	if _, ok := cache.Lookup("json"); ok {
		t.Fatalf("expected empty cache after a malformed payload")
	}
}

func TestCacheLoadMissingFileIsNotAnError(t *testing.T) {
	cache := NewProjectCache(nil)
	cache.Load(filepath.Join(t.TempDir(), "missing.json"))

	if _, ok := cache.Lookup("json"); ok {
		t.Fatalf("expected empty cache when the file does not exist")
	}
}
