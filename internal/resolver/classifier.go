package resolver

import (
	"path/filepath"
	"strings"
)

// PackageClassifier maps a finalized Module to its owning Package,
// following the decision tree of spec §4.5. A package's type is fixed by
// its first classified member; later members of the same name reuse the
// existing record regardless of what this classifier would otherwise say.
type PackageClassifier struct {
	// StdlibRoot and SitePackagesRoot are optional host filesystem roots.
	// When unset, classification of an on-disk module falls through to
	// the Local rules, and only the built-in/frozen sentinels ever
	// produce a StandardLib package.
	StdlibRoot       string
	SitePackagesRoot string
}

// NewPackageClassifier creates a classifier with no configured host roots.
func NewPackageClassifier() *PackageClassifier {
	return &PackageClassifier{}
}

// Classify assigns mod to a package in proj, creating the package record
// on first use.
func (c *PackageClassifier) Classify(proj *Project, mod *Module) {
	name, path := c.pkgNameAndPath(mod)
	typ := c.pkgType(mod)

	if !proj.HasPackage(name) {
		proj.AddPackage(newPackage(name, path, typ))
	}
	proj.AssignToPackage(name, mod.ID.Name)
}

func (c *PackageClassifier) pkgType(mod *Module) PackageType {
	origin := mod.Path
	if origin == "" || origin == OriginBuiltin || origin == OriginFrozen {
		return PackageStandardLib
	}
	if c.StdlibRoot != "" && under(origin, c.StdlibRoot) && !(c.SitePackagesRoot != "" && under(origin, c.SitePackagesRoot)) {
		return PackageStandardLib
	}
	if c.SitePackagesRoot != "" && under(origin, c.SitePackagesRoot) {
		return PackageSite
	}
	return PackageLocal
}

func (c *PackageClassifier) pkgNameAndPath(mod *Module) (string, string) {
	switch c.pkgType(mod) {
	case PackageStandardLib:
		return StdlibPackageName, ""
	case PackageSite:
		return firstSegmentOrWhole(mod.ID.Name), c.SitePackagesRoot
	default:
		if strings.Contains(mod.ID.Name, ".") {
			first := firstSegmentOrWhole(mod.ID.Name)
			return first, ""
		}
		return filepath.Dir(mod.Path), filepath.Dir(mod.Path)
	}
}

func firstSegmentOrWhole(name string) string {
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}

func under(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
