package resolver

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/oakbranch/pymap/internal/parser"
)

// ShallowSet names the package types whose submodules are resolved into
// edges but never enqueued for their own parse (spec §4.4 step 6).
type ShallowSet map[PackageType]bool

// Options configures a single ProjectParser run.
type Options struct {
	// ShallowStd, when true, adds StandardLib to the shallow set.
	ShallowStd bool
	// ShallowSite, when true, adds Site to the shallow set.
	ShallowSite bool
	// CachePath, when non-empty, is consulted before parsing and written
	// back after the run completes.
	CachePath string
	// StdlibRoot/SitePackagesRoot feed PackageClassifier; both optional.
	StdlibRoot       string
	SitePackagesRoot string
	// ResolveReExports enables the --resolve-reexports refinement pass.
	ResolveReExports bool
	// ExtraRoots adds search roots beyond the entry file's own directory
	// (the CLI's --python-path).
	ExtraRoots []string
	// ExcludePatterns are doublestar glob patterns tested against a
	// candidate module's origin path; a matching module is still registered
	// with its path and classified, but it is not parsed, so its own
	// imports are not followed.
	ExcludePatterns []string
	// OnModuleParsed, if set, is called once per module after its parse
	// step completes (including the entry module), for progress reporting.
	OnModuleParsed func()
	Logger         *log.Logger
}

// ProjectParser drives the parse-extract-resolve-classify loop to a fixed
// point over a FIFO queue, starting from a single entry file (spec §4.4).
type ProjectParser struct {
	opts       Options
	finder     *ModuleFinder
	extractor  *ImportExtractor
	resolver   *ImportResolver
	classifier *PackageClassifier
	cache      *ProjectCache
	syntax     *parser.Parser
	logger     *log.Logger
}

// NewProjectParser wires the pipeline's components together. Pass a
// non-nil Logger to capture WARNING-level diagnostics; nil discards them.
func NewProjectParser(opts Options) *ProjectParser {
	logger := opts.Logger
	finder := NewModuleFinder()
	classifier := NewPackageClassifier()
	classifier.StdlibRoot = opts.StdlibRoot
	classifier.SitePackagesRoot = opts.SitePackagesRoot

	imports := NewImportResolver(finder, logger)
	if opts.ResolveReExports {
		imports = imports.WithReExports(NewReExportResolver())
	}

	return &ProjectParser{
		opts:       opts,
		finder:     finder,
		extractor:  NewImportExtractor(),
		resolver:   imports,
		classifier: classifier,
		cache:      NewProjectCache(logger),
		syntax:     parser.New(),
		logger:     logger,
	}
}

// ParseProject runs the full driver starting from entryPath and returns the
// populated Project. entryPath must exist; the caller is responsible for
// surfacing EntryMissing before calling this (spec §7).
func (pp *ProjectParser) ParseProject(entryPath string) (*Project, error) {
	proj := NewProject()

	if pp.opts.CachePath != "" {
		pp.cache.Load(pp.opts.CachePath)
	}

	entryDir := filepath.Dir(entryPath)
	pp.finder.AddRoot(entryDir)
	for _, root := range pp.opts.ExtraRoots {
		pp.finder.AddRoot(root)
	}

	entryName := moduleNameFromEntryFile(entryPath)
	entryMod := &Module{ID: newResolved(entryName, entryPath), Path: entryPath}
	proj.AddModule(entryMod)
	proj.AddRootModule(entryName)

	pp.parseModule(entryMod)
	pp.classifier.Classify(proj, entryMod)

	var queue []ModuleIdentifier
	entryPkg := proj.GetPackage(packageNameOf(proj, entryMod))
	if entryPkg == nil || !pp.isShallow(entryPkg.Type) {
		queue = append(queue, entryMod.Submodules...)
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if proj.HasModule(id.Name) {
			continue
		}

		mod := pp.installOrParse(proj, id)
		proj.AddModule(mod)
		pp.classifier.Classify(proj, mod)

		pkg := proj.GetPackage(packageNameOf(proj, mod))
		if pkg != nil && pp.isShallow(pkg.Type) {
			continue
		}
		queue = append(queue, mod.Submodules...)
	}

	if pp.opts.CachePath != "" {
		pp.cache.Save(pp.opts.CachePath, proj)
	}

	return proj, nil
}

// installOrParse resolves one queued identifier into a finalized Module,
// preferring a cache hit over a fresh parse (spec §4.4 step 5).
func (pp *ProjectParser) installOrParse(proj *Project, id ModuleIdentifier) *Module {
	if rec, ok := pp.cache.Lookup(id.Name); ok {
		mod := &Module{ID: id}
		rec.Install(mod)
		if pp.opts.OnModuleParsed != nil {
			pp.opts.OnModuleParsed()
		}
		return mod
	}

	if !id.Resolved() {
		id = pp.finder.FindTopLevel(id.Name)
		if !id.Resolved() {
			pp.warnf("module not found: %s", id.Name)
		}
	}
	mod := &Module{ID: id}
	if id.Resolved() {
		mod.Path = id.Spec.OriginPath
	}
	pp.parseModule(mod)
	return mod
}

// parseModule applies the special file policies, then — for a module that
// is neither the top-script sentinel, a known-pathological file, nor a
// non-parsable origin — reads, parses, extracts, and resolves its imports.
func (pp *ProjectParser) parseModule(mod *Module) {
	if pp.opts.OnModuleParsed != nil {
		defer pp.opts.OnModuleParsed()
	}
	if mod.ID.Name == topScriptSentinel {
		mod.Path = ""
		return
	}
	if knownPathologicalFiles[mod.ID.Name] {
		return
	}
	if !mod.ID.Resolved() {
		return
	}
	origin := mod.ID.Spec.OriginPath
	if origin == OriginBuiltin || origin == OriginFrozen {
		return
	}
	if info, err := os.Stat(origin); err == nil && info.IsDir() {
		// Namespace package: no __init__ file, nothing to parse.
		return
	}
	if pp.excluded(origin) {
		pp.warnf("module excluded by pattern: %s (%s)", mod.ID.Name, origin)
		return
	}

	source, err := os.ReadFile(origin)
	if err != nil {
		pp.warnf("parse failure: cannot read %s (%s): %v", mod.ID.Name, origin, err)
		return
	}

	root, ok := pp.buildSyntaxTree(source, origin)
	if !ok {
		pp.warnf("parse failure: %s (%s) rejected by syntax parser", mod.ID.Name, origin)
		return
	}
	mod.Tree = &moduleTree{root: root}

	plains, froms := pp.extractor.Extract(mod.Tree)
	pp.resolver.Resolve(mod, plains, froms)
}

func (pp *ProjectParser) buildSyntaxTree(source []byte, origin string) (*parser.Node, bool) {
	result, err := pp.syntax.Parse(context.Background(), source)
	if err != nil {
		return nil, false
	}
	builder := parser.NewASTBuilder(source)
	root, err := builder.Build(result.Tree)
	if err != nil || root == nil {
		return nil, false
	}
	return root, true
}

// excluded reports whether origin matches any of the configured exclude
// patterns (doublestar glob syntax, matched against the slash-normalized
// path).
func (pp *ProjectParser) excluded(origin string) bool {
	if len(pp.opts.ExcludePatterns) == 0 {
		return false
	}
	slashPath := filepath.ToSlash(origin)
	for _, pattern := range pp.opts.ExcludePatterns {
		if ok, _ := doublestar.Match(pattern, slashPath); ok {
			return true
		}
	}
	return false
}

func (pp *ProjectParser) isShallow(typ PackageType) bool {
	if pp.opts.ShallowStd && typ == PackageStandardLib {
		return true
	}
	if pp.opts.ShallowSite && typ == PackageSite {
		return true
	}
	return false
}

func (pp *ProjectParser) warnf(format string, args ...interface{}) {
	if pp.logger != nil {
		pp.logger.Printf("WARNING "+format, args...)
	}
}

// packageNameOf finds which package proj assigned mod to. Classify has
// always run by the time this is called, so the lookup never misses.
func packageNameOf(proj *Project, mod *Module) string {
	for name, pkg := range proj.Packages {
		if pkg.Modules[mod.ID.Name] {
			return name
		}
	}
	return ""
}

// moduleNameFromEntryFile derives a module name from the entry file's
// stem, the way the top-level search step would for any other file in
// the same directory.
func moduleNameFromEntryFile(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
