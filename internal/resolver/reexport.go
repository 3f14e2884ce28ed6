package resolver

import (
	"context"
	"os"
	"strings"

	"github.com/oakbranch/pymap/internal/parser"
)

// ReExportResolver is the optional refinement pass behind --resolve-reexports
// (SPEC_FULL's supplemented feature 3). Without code execution, ImportResolver
// can only fall back to the owning package when a from-import target isn't a
// submodule file (spec §4.3 step 4). When a package's __init__ itself
// re-exports that name from one of its own submodules via a from-import,
// this pass recovers the more precise dependency.
type ReExportResolver struct {
	syntax *parser.Parser
	cache  map[string]map[string]string // init path -> exported name -> source module
}

// NewReExportResolver creates a resolver with an empty cache.
func NewReExportResolver() *ReExportResolver {
	return &ReExportResolver{syntax: parser.New(), cache: make(map[string]map[string]string)}
}

// Resolve returns the dotted module name that packageName's __init__ (at
// initPath) re-exports importedName from, if any.
func (r *ReExportResolver) Resolve(initPath, packageName, importedName string) (string, bool) {
	exports, ok := r.cache[initPath]
	if !ok {
		exports = r.loadExports(initPath, packageName)
		r.cache[initPath] = exports
	}
	name, ok := exports[importedName]
	return name, ok
}

func (r *ReExportResolver) loadExports(initPath, packageName string) map[string]string {
	exports := make(map[string]string)

	content, err := os.ReadFile(initPath)
	if err != nil {
		return exports
	}
	result, err := r.syntax.Parse(context.Background(), content)
	if err != nil {
		return exports
	}
	root, err := parser.NewASTBuilder(content).Build(result.Tree)
	if err != nil || root == nil {
		return exports
	}

	root.Accept(parser.NewFuncVisitor(func(node *parser.Node) bool {
		if node.Type != parser.NodeImportFrom {
			return true
		}
		source := sourceModuleOf(node, packageName)
		if source == "" || source == packageName {
			return true
		}
		for _, name := range node.Names {
			if name != "*" {
				exports[exportedNameOf(node, name)] = source
			}
		}
		return true
	}))

	return exports
}

// sourceModuleOf computes the dotted module an __init__'s own from-import
// statement pulls from, relative to the package it belongs to.
func sourceModuleOf(node *parser.Node, packageName string) string {
	if node.Level == 0 {
		if strings.HasPrefix(node.Module, packageName+".") {
			return node.Module
		}
		return ""
	}
	if node.Level == 1 {
		if node.Module == "" {
			return packageName
		}
		return packageName + "." + node.Module
	}
	parts := strings.Split(packageName, ".")
	if node.Level > len(parts) {
		return ""
	}
	parent := strings.Join(parts[:len(parts)-node.Level+1], ".")
	if node.Module == "" {
		return parent
	}
	return parent + "." + node.Module
}

// exportedNameOf returns the public name a from-import binds name to,
// following an Alias child when the import used `as`.
func exportedNameOf(node *parser.Node, name string) string {
	for _, child := range node.Children {
		if child.Type == parser.NodeAlias && child.Name == name {
			if alias, ok := child.Value.(string); ok && alias != "" {
				return alias
			}
		}
	}
	return name
}
