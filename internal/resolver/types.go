package resolver

import "github.com/oakbranch/pymap/internal/parser"

// PackageType classifies the provenance of a Package.
type PackageType string

const (
	PackageLocal       PackageType = "local"
	PackageStandardLib PackageType = "stdlib"
	PackageSite        PackageType = "site"
	PackageUnknown     PackageType = "unknown"
)

// Sentinel origins for modules that have no file on disk. A module whose
// Spec.OriginPath is one of these is never parsed; ModuleFinder returns
// them straight from the built-in host-finder step (spec §4.1 step 4).
const (
	OriginBuiltin = "built-in"
	OriginFrozen  = "frozen"
)

// StdlibPackageName is the fixed package name every standard-library
// module (including built-in and frozen ones) is grouped under.
const StdlibPackageName = "stdlib"

// ModuleSpec is the advisory bundle a successful finder lookup attaches to
// a ModuleIdentifier. Two ModuleIdentifiers with the same Name are equal
// regardless of Spec.
type ModuleSpec struct {
	// OriginPath is the absolute path to the module's backing file, or one
	// of the OriginBuiltin/OriginFrozen sentinels. Empty when the module
	// could not be located at all (an unresolved stub never carries a Spec).
	OriginPath string
	// CanonicalName is the name the finder actually resolved to. The
	// finder always sets it to the ModuleIdentifier's Name.
	CanonicalName string
}

// ModuleIdentifier names a module. Equality and hashing are by Name alone;
// Spec is advisory and never participates in map keys or comparisons.
type ModuleIdentifier struct {
	Name string
	Spec *ModuleSpec
}

// Resolved reports whether the finder attached a Spec to this identifier.
func (id ModuleIdentifier) Resolved() bool {
	return id.Spec != nil
}

func newUnresolved(name string) ModuleIdentifier {
	return ModuleIdentifier{Name: name}
}

func newResolved(name, originPath string) ModuleIdentifier {
	return ModuleIdentifier{
		Name: name,
		Spec: &ModuleSpec{OriginPath: originPath, CanonicalName: name},
	}
}

// Module is owned by a Project. It is created once per name by
// ProjectParser and mutated only during its own parse step.
type Module struct {
	ID ModuleIdentifier

	// Path is the absolute physical path, or a sentinel ("built-in",
	// "frozen"), or empty when the module was never located.
	Path string

	// Tree holds the parsed syntax tree. Nil when the file is binary,
	// missing, a known pathological file, or a non-parsable origin.
	Tree *moduleTree

	// Submodules is the ordered, name-deduplicated list of modules this
	// module's imports resolved to.
	Submodules []ModuleIdentifier

	submoduleSeen map[string]bool
}

// AddSubmodule appends id to Submodules unless its name is already present.
func (m *Module) AddSubmodule(id ModuleIdentifier) {
	if m.submoduleSeen == nil {
		m.submoduleSeen = make(map[string]bool)
	}
	if m.submoduleSeen[id.Name] {
		return
	}
	m.submoduleSeen[id.Name] = true
	m.Submodules = append(m.Submodules, id)
}

// HasSyntaxTree reports whether this module was actually parsed.
func (m *Module) HasSyntaxTree() bool {
	return m.Tree != nil
}

// Package groups modules that share an origin (a directory, or the
// standard library as a whole). A module belongs to exactly one package.
type Package struct {
	Name    string
	Path    string
	Type    PackageType
	Modules map[string]bool
}

func newPackage(name, path string, typ PackageType) *Package {
	return &Package{Name: name, Path: path, Type: typ, Modules: make(map[string]bool)}
}

func (p *Package) addModule(name string) {
	p.Modules[name] = true
}

// Project is the top-level aggregate built by ProjectParser.
type Project struct {
	RootModules []string
	Modules     map[string]*Module
	Packages    map[string]*Package

	// moduleOrder preserves insertion order for deterministic graph output
	// (spec §5: ordering is fully determined by BFS pop order).
	moduleOrder []string
}

// NewProject creates an empty Project.
func NewProject() *Project {
	return &Project{
		Modules:  make(map[string]*Module),
		Packages: make(map[string]*Package),
	}
}

// HasModule reports whether name is already a key of Modules (invariant I4:
// a second parse of the same name is a no-op).
func (p *Project) HasModule(name string) bool {
	_, ok := p.Modules[name]
	return ok
}

// GetModule retrieves a module by name, or nil.
func (p *Project) GetModule(name string) *Module {
	return p.Modules[name]
}

// AddModule registers mod under its own name. A module is never replaced
// once added (invariant I4).
func (p *Project) AddModule(mod *Module) {
	if p.HasModule(mod.ID.Name) {
		return
	}
	p.Modules[mod.ID.Name] = mod
	p.moduleOrder = append(p.moduleOrder, mod.ID.Name)
}

// AddRootModule records name as one of the project's entry modules.
func (p *Project) AddRootModule(name string) {
	p.RootModules = append(p.RootModules, name)
}

// ModuleOrder returns module names in the order they were added to the
// project (the order DependencyGraphBuilder must reuse for its node list).
func (p *Project) ModuleOrder() []string {
	out := make([]string, len(p.moduleOrder))
	copy(out, p.moduleOrder)
	return out
}

// GetPackage retrieves a package by name, or nil.
func (p *Project) GetPackage(name string) *Package {
	return p.Packages[name]
}

// HasPackage reports whether a package with this name already exists.
func (p *Project) HasPackage(name string) bool {
	_, ok := p.Packages[name]
	return ok
}

// AddPackage registers pkg under its own name, unless one already exists
// (a package's type is fixed by its first classified member, per spec
// §4.5's consistency invariant).
func (p *Project) AddPackage(pkg *Package) {
	if p.HasPackage(pkg.Name) {
		return
	}
	p.Packages[pkg.Name] = pkg
}

// AssignToPackage records that moduleName belongs to pkgName (invariant
// I3: every module appears in exactly one package's Modules set).
func (p *Project) AssignToPackage(pkgName, moduleName string) {
	if pkg, ok := p.Packages[pkgName]; ok {
		pkg.addModule(moduleName)
	}
}

// moduleTree is an opaque handle around the parser's syntax tree. Only
// ImportExtractor reaches into it; every other part of the core treats it
// as an inert value that simply proves a module parsed cleanly.
type moduleTree struct {
	root *parser.Node
}

// ImportTargets is either Star (a `from pkg import *`) or an explicit list
// of target names.
type ImportTargets struct {
	Star  bool
	Names []string
}

// PlainImport is the descriptor for `import a.b.c` (alias discarded).
type PlainImport struct {
	PackageName string
}

// FromImport is the descriptor for `from [.…][pkg] import t1, t2 | *`.
type FromImport struct {
	PackageName    string // empty when absent (e.g. "from . import x")
	HasPackageName bool
	Targets        ImportTargets
	RelativeLevel  int
}
