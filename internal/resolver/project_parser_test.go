package resolver

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func parseEntry(t *testing.T, dir, entry string, opts Options) *Project {
	t.Helper()
	pp := NewProjectParser(opts)
	proj, err := pp.ParseProject(filepath.Join(dir, entry))
	if err != nil {
		t.Fatalf("ParseProject: %v", err)
	}
	return proj
}

func submoduleNames(mod *Module) []string {
	names := make([]string, len(mod.Submodules))
	for i, s := range mod.Submodules {
		names[i] = s.Name
	}
	return names
}

func TestSingleLocalImport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.py"), "from util import f\n")
	writeFile(t, filepath.Join(dir, "util.py"), "def f(): pass\n")

	proj := parseEntry(t, dir, "main.py", Options{})

	if !proj.HasModule("main") || !proj.HasModule("util") {
		t.Fatalf("expected both main and util to be present, got %v", proj.ModuleOrder())
	}
	if got := submoduleNames(proj.GetModule("main")); len(got) != 1 || got[0] != "util" {
		t.Fatalf("main.submodules = %v, want [util]", got)
	}
}

func TestStarImport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.py"), "from pkg import *\n")
	writeFile(t, filepath.Join(dir, "pkg", "__init__.py"), "")

	proj := parseEntry(t, dir, "main.py", Options{})

	got := submoduleNames(proj.GetModule("main"))
	if len(got) != 1 || got[0] != "pkg" {
		t.Fatalf("main.submodules = %v, want [pkg]", got)
	}
}

func TestShadowing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.py"), "import logging\n")
	writeFile(t, filepath.Join(dir, "logging", "__init__.py"), "")

	proj := parseEntry(t, dir, "main.py", Options{})

	mod := proj.GetModule("logging")
	if mod == nil {
		t.Fatalf("expected a logging module to be registered")
	}
	want := filepath.Join(dir, "logging", "__init__.py")
	if mod.Path != want {
		t.Fatalf("logging.path = %q, want local file %q", mod.Path, want)
	}
}

func TestRelativeSibling(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pkg", "__init__.py"), "from .impl import say\n")
	writeFile(t, filepath.Join(dir, "pkg", "impl.py"), "def say(): pass\n")
	writeFile(t, filepath.Join(dir, "main.py"), "import pkg\n")

	proj := parseEntry(t, dir, "main.py", Options{})

	got := submoduleNames(proj.GetModule("pkg"))
	found := false
	for _, n := range got {
		if n == "pkg.impl" {
			found = true
		}
	}
	if !found {
		t.Fatalf("pkg.submodules = %v, want to contain pkg.impl", got)
	}
}

func TestFromImportSubmoduleVsName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pkg", "__init__.py"), "")
	writeFile(t, filepath.Join(dir, "pkg", "impl.py"), "")
	writeFile(t, filepath.Join(dir, "main.py"), "from pkg import impl\n")

	proj := parseEntry(t, dir, "main.py", Options{})

	got := submoduleNames(proj.GetModule("main"))
	if len(got) != 1 || got[0] != "pkg.impl" {
		t.Fatalf("main.submodules = %v, want [pkg.impl]", got)
	}
}

func TestFromImportNameNotSubmodule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pkg", "__init__.py"), "fixed_message = \"hello\"\n")
	writeFile(t, filepath.Join(dir, "main.py"), "from pkg import fixed_message\n")

	proj := parseEntry(t, dir, "main.py", Options{})

	got := submoduleNames(proj.GetModule("main"))
	if len(got) != 1 || got[0] != "pkg" {
		t.Fatalf("main.submodules = %v, want [pkg]", got)
	}
}

func TestMultiLevelRelative(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pkg", "__init__.py"), "")
	writeFile(t, filepath.Join(dir, "pkg", "sayer.py"), "def say(): pass\n")
	writeFile(t, filepath.Join(dir, "pkg", "sub", "__init__.py"), "from ..sayer import say\n")
	writeFile(t, filepath.Join(dir, "main.py"), "import pkg.sub\n")

	proj := parseEntry(t, dir, "main.py", Options{})

	got := submoduleNames(proj.GetModule("pkg.sub"))
	found := false
	for _, n := range got {
		if n == "pkg.sayer" {
			found = true
		}
	}
	if !found {
		t.Fatalf("pkg.sub.submodules = %v, want to contain pkg.sayer", got)
	}
}

func TestShallowStdDoesNotEnqueueStdlibSubmodules(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.py"), "import json\n")

	proj := parseEntry(t, dir, "main.py", Options{ShallowStd: true})

	if !proj.HasModule("json") {
		t.Fatalf("expected json to be registered even when shallow")
	}
	if proj.HasModule("json.decoder") {
		t.Fatalf("shallow stdlib should not expand submodules")
	}
}

func TestNoDuplicateSubmoduleNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.py"), "import util\nimport util\n")
	writeFile(t, filepath.Join(dir, "util.py"), "")

	proj := parseEntry(t, dir, "main.py", Options{})

	got := submoduleNames(proj.GetModule("main"))
	if len(got) != 1 {
		t.Fatalf("main.submodules = %v, want exactly one entry", got)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.py"), "import json\n")
	cachePath := filepath.Join(t.TempDir(), "cache.json")

	proj1 := parseEntry(t, dir, "main.py", Options{CachePath: cachePath})
	if _, err := os.Stat(cachePath); err != nil {
		t.Fatalf("expected cache file to be written: %v", err)
	}

	proj2 := parseEntry(t, dir, "main.py", Options{CachePath: cachePath})

	if !reflectNamesEqual(proj1.ModuleOrder(), proj2.ModuleOrder()) {
		t.Fatalf("cached run produced different nodes: %v vs %v", proj1.ModuleOrder(), proj2.ModuleOrder())
	}
}

func reflectNamesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, n := range a {
		seen[n] = true
	}
	for _, n := range b {
		if !seen[n] {
			return false
		}
	}
	return true
}
