package resolver

import "log"

// ImportResolver turns import descriptors into resolved submodule
// identifiers, using ModuleFinder to locate them and consulting a
// module's own package-ness to decide whether a from-import target names
// a submodule file or a name bound inside the package (spec §4.3).
type ImportResolver struct {
	finder   *ModuleFinder
	logger   *log.Logger
	reexport *ReExportResolver
}

// NewImportResolver creates a resolver bound to finder. logger receives a
// warning line whenever a descriptor is dropped; pass nil to discard them.
func NewImportResolver(finder *ModuleFinder, logger *log.Logger) *ImportResolver {
	return &ImportResolver{finder: finder, logger: logger}
}

// WithReExports enables the --resolve-reexports refinement pass for every
// subsequent from-import whose target isn't directly a submodule file.
func (r *ImportResolver) WithReExports(rr *ReExportResolver) *ImportResolver {
	r.reexport = rr
	return r
}

// Resolve appends every submodule identifier reachable from plains/froms
// to module.Submodules, deduplicated by name.
func (r *ImportResolver) Resolve(module *Module, plains []PlainImport, froms []FromImport) {
	for _, p := range plains {
		id := r.finder.FindTopLevel(p.PackageName)
		module.AddSubmodule(id)
	}
	for _, f := range froms {
		r.resolveFrom(module, f)
	}
}

func (r *ImportResolver) resolveFrom(module *Module, f FromImport) {
	var base ModuleIdentifier
	var ok bool

	if f.RelativeLevel > 0 {
		base, ok = r.finder.FindRelative(f.PackageName, f.RelativeLevel, module.ID)
		if !ok {
			r.warnf("relative import not resolved (climbs above package root or target not found): level=%d package=%q in %s", f.RelativeLevel, f.PackageName, module.ID.Name)
			return
		}
	} else {
		if !f.HasPackageName {
			r.warnf("from-import with no package name and no relative level in %s", module.ID.Name)
			return
		}
		base, ok = r.finder.TryFindTopLevel(f.PackageName)
		if !ok {
			base = newUnresolved(f.PackageName)
		}
	}

	if !base.Resolved() || !r.finder.isPackageOrigin(base.Spec.OriginPath) || f.Targets.Star {
		module.AddSubmodule(base)
		return
	}

	for _, target := range f.Targets.Names {
		childName := base.Name + "." + target
		if child, ok := r.finder.TryFindTopLevel(childName); ok {
			module.AddSubmodule(child)
			continue
		}
		if r.reexport != nil {
			if source, ok := r.reexport.Resolve(base.Spec.OriginPath, base.Name, target); ok {
				module.AddSubmodule(r.finder.FindTopLevel(source))
				continue
			}
		}
		module.AddSubmodule(base)
	}
}

func (r *ImportResolver) warnf(format string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Printf("WARNING "+format, args...)
	}
}
