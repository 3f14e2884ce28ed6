package resolver

import (
	"os"
	"path/filepath"
	"strings"
)

// ModuleFinder locates modules on disk given a dotted name, or delegates to
// the built-in host-finder and the standard-library module set when no
// search root owns the name. Lookups are memoized; the memo is the only
// mutable state shared across a single ProjectParser run.
type ModuleFinder struct {
	roots []string
	memo  map[string]ModuleIdentifier
}

// NewModuleFinder creates a finder with no search roots. Call AddRoot to
// register the entry file's directory before the first lookup.
func NewModuleFinder() *ModuleFinder {
	return &ModuleFinder{memo: make(map[string]ModuleIdentifier)}
}

// AddRoot appends dir to the ordered list of top-level search roots.
// Earlier roots win ties (spec §4.1: first-match lets a local module
// shadow a standard-library one of the same name).
func (f *ModuleFinder) AddRoot(dir string) {
	f.roots = append(f.roots, dir)
}

// FindTopLevel always returns an identifier; the identifier carries no
// Spec when nothing was found.
func (f *ModuleFinder) FindTopLevel(name string) ModuleIdentifier {
	if id, ok := f.TryFindTopLevel(name); ok {
		return id
	}
	return newUnresolved(name)
}

// TryFindTopLevel returns (id, true) on success, (zero, false) on failure.
func (f *ModuleFinder) TryFindTopLevel(name string) (ModuleIdentifier, bool) {
	if id, ok := f.memo[name]; ok {
		return id, id.Resolved()
	}
	id, ok := f.resolve(name)
	f.memo[name] = id
	return id, ok
}

func (f *ModuleFinder) resolve(name string) (ModuleIdentifier, bool) {
	topSegment := name
	if dot := strings.LastIndex(name, "."); dot >= 0 {
		parent := name[:dot]
		topSegment = name[:strings.Index(name, ".")]
		parentID, ok := f.TryFindTopLevel(parent)
		if ok && f.isParsableOrigin(parentID.Spec.OriginPath) {
			if dir := f.packageDirOf(parentID.Spec.OriginPath); dir != "" {
				if id, ok := f.searchInDir(dir, name[dot+1:], name); ok {
					return id, true
				}
			}
		}
	} else {
		for _, root := range f.roots {
			if id, ok := f.searchInDir(root, name, name); ok {
				return id, true
			}
		}
	}

	// Delegate to the built-in host-finder: it knows platform built-ins,
	// frozen modules, and the standard-library module set as a whole,
	// keyed off the name's top-level segment regardless of nesting depth.
	if isHostBuiltin(topSegment) {
		return newResolved(name, OriginBuiltin), true
	}
	if isStandardLibraryTopLevel(topSegment) {
		return newResolved(name, OriginFrozen), true
	}
	return ModuleIdentifier{}, false
}

// searchInDir looks for segment directly under dir, either as a package
// (segment/__init__.<ext>) or a plain module file (segment.<ext>).
func (f *ModuleFinder) searchInDir(dir, segment, fullName string) (ModuleIdentifier, bool) {
	pkgDir := filepath.Join(dir, segment)
	if info, err := os.Stat(pkgDir); err == nil && info.IsDir() {
		for _, ext := range sourceExtensions {
			initFile := filepath.Join(pkgDir, initStem+ext)
			if fi, err := os.Stat(initFile); err == nil && !fi.IsDir() {
				return newResolved(fullName, initFile), true
			}
		}
		// No __init__ file: treat pkgDir itself as a namespace package
		// (PEP 420). Its origin is the directory, so it is never parsed.
		return newResolved(fullName, pkgDir), true
	}
	for _, ext := range sourceExtensions {
		leafFile := filepath.Join(dir, segment+ext)
		if fi, err := os.Stat(leafFile); err == nil && !fi.IsDir() {
			return newResolved(fullName, leafFile), true
		}
	}
	return ModuleIdentifier{}, false
}

// FindRelative resolves a relative import from parentID's position in the
// package tree. name may be empty, as in `from . import x`.
func (f *ModuleFinder) FindRelative(name string, level int, parentID ModuleIdentifier) (ModuleIdentifier, bool) {
	if !parentID.Resolved() {
		return ModuleIdentifier{}, false
	}
	parts := strings.Split(parentID.Name, ".")
	needed := len(parts) - level
	if f.isPackageOrigin(parentID.Spec.OriginPath) {
		needed++
	}
	if needed <= 0 {
		return ModuleIdentifier{}, false
	}
	joined := append([]string{}, parts[:needed]...)
	if name != "" {
		joined = append(joined, strings.Split(name, ".")...)
	}
	return f.TryFindTopLevel(strings.Join(joined, "."))
}

// isPackageModule reports whether origin's file stem equals the package
// init stem (spec §4.1's package-module detection).
func (f *ModuleFinder) isPackageModule(origin string) bool {
	if origin == OriginBuiltin || origin == OriginFrozen || origin == "" {
		return false
	}
	stem := strings.TrimSuffix(filepath.Base(origin), filepath.Ext(origin))
	return stem == initStem
}

// isPackageOrigin reports whether origin names a package (regular, with an
// __init__ file, or a namespace package, a bare directory).
func (f *ModuleFinder) isPackageOrigin(origin string) bool {
	if f.isPackageModule(origin) {
		return true
	}
	if origin == OriginBuiltin || origin == OriginFrozen || origin == "" {
		return false
	}
	info, err := os.Stat(origin)
	return err == nil && info.IsDir()
}

// packageDirOf returns the directory that owns origin when origin is a
// package module (the __init__ file's directory) or a namespace package
// (origin is the directory itself), else the empty string.
func (f *ModuleFinder) packageDirOf(origin string) string {
	if f.isPackageModule(origin) {
		return filepath.Dir(origin)
	}
	if info, err := os.Stat(origin); err == nil && info.IsDir() {
		return origin
	}
	return ""
}

// isParsableOrigin reports whether origin names a real source file rather
// than a built-in, frozen, or binary-extension sentinel.
func (f *ModuleFinder) isParsableOrigin(origin string) bool {
	return origin != "" && origin != OriginBuiltin && origin != OriginFrozen
}
