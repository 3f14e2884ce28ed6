package resolver

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// CacheSaveVersion is the version tag stamped on every cache payload this
// build writes. A load whose tag does not match is discarded wholesale.
const CacheSaveVersion = "1.0"

// cacheModuleRecord is one module entry inside a cached package.
type cacheModuleRecord struct {
	Name       string   `json:"name"`
	Path       string   `json:"path"`
	Submodules []string `json:"submodules,omitempty"`
}

// cachePayload is the on-disk shape of a cache file (spec §6).
type cachePayload struct {
	Version  string                               `json:"version"`
	Packages map[string]map[string]cacheModuleRecord `json:"packages"`
}

// ProjectCache persists the standard-library portion of a Project between
// runs. Only StandardLib-classified modules are ever written; every other
// package class is recomputed from scratch each run (spec §4.6).
type ProjectCache struct {
	logger   *log.Logger
	packages map[string]map[string]cacheModuleRecord
}

// NewProjectCache creates an empty cache. Call Load to populate it from a
// file, or leave it empty to run with caching effectively disabled.
func NewProjectCache(logger *log.Logger) *ProjectCache {
	return &ProjectCache{logger: logger, packages: make(map[string]map[string]cacheModuleRecord)}
}

// Load reads path and replaces the cache's contents. A missing file
// leaves the cache empty without a log line; any other read error, a
// malformed payload, or a version mismatch is logged as a warning and
// leaves the cache empty rather than returning an error — a cache is
// never load-bearing for run correctness (spec §7, CacheLoadFailure).
func (c *ProjectCache) Load(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.warnf("cache load failed reading %s: %v", path, err)
		}
		return
	}
	var payload cachePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		c.warnf("cache load failed: malformed payload in %s: %v", path, err)
		return
	}
	if payload.Version != CacheSaveVersion {
		c.warnf("cache load skipped: version mismatch in %s (got %q, want %q)", path, payload.Version, CacheSaveVersion)
		return
	}
	c.packages = payload.Packages
}

// Lookup returns the cached record for moduleName within the stdlib
// package, if present.
func (c *ProjectCache) Lookup(moduleName string) (cacheModuleRecord, bool) {
	pkg, ok := c.packages[StdlibPackageName]
	if !ok {
		return cacheModuleRecord{}, false
	}
	rec, ok := pkg[moduleName]
	return rec, ok
}

// Install creates a Module from a cache hit: path set, no syntax tree
// (cached modules are never re-parsed), submodule identifiers resolved
// lazily as plain unresolved stubs pending their own queue turn.
func (rec cacheModuleRecord) Install(mod *Module) {
	mod.Path = rec.Path
	for _, name := range rec.Submodules {
		mod.AddSubmodule(newUnresolved(name))
	}
}

// Save writes the StandardLib portion of proj to path, creating parent
// directories as needed. An I/O error is logged as a warning; the run's
// result is still considered valid (spec §7, CacheSaveFailure).
func (c *ProjectCache) Save(path string, proj *Project) {
	payload := cachePayload{Version: CacheSaveVersion, Packages: map[string]map[string]cacheModuleRecord{}}
	pkg, ok := proj.Packages[StdlibPackageName]
	if ok {
		records := make(map[string]cacheModuleRecord, len(pkg.Modules))
		for name := range pkg.Modules {
			mod := proj.GetModule(name)
			if mod == nil {
				continue
			}
			rec := cacheModuleRecord{Name: mod.ID.Name, Path: mod.Path}
			for _, sub := range mod.Submodules {
				rec.Submodules = append(rec.Submodules, sub.Name)
			}
			records[name] = rec
		}
		payload.Packages[StdlibPackageName] = records
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		c.warnf("cache save failed: %v", err)
		return
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			c.warnf("cache save failed creating %s: %v", dir, err)
			return
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.warnf("cache save failed writing %s: %v", path, err)
	}
}

func (c *ProjectCache) warnf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Printf("WARNING "+format, args...)
	}
}
