// Package analyzer projects a resolved Project into the exported graph
// shape: nodes, edges, and package membership. It never mutates the
// Project and never touches the filesystem.
package analyzer

import "github.com/oakbranch/pymap/internal/resolver"

// PackageSummary is a package's serializable shape inside a Graph.
type PackageSummary struct {
	Type    resolver.PackageType `json:"type"`
	Modules []string             `json:"modules"`
}

// Graph is DependencyGraphBuilder's output: nodes in Project insertion
// order, edges as an ordered, duplicate-free adjacency map, and optional
// package membership (spec §4.7).
type Graph struct {
	Nodes    []string
	Edges    map[string][]string
	Packages map[string]PackageSummary
}

// BuildGraph walks proj and produces its Graph projection. proj is read
// only; BuildGraph never mutates it.
func BuildGraph(proj *resolver.Project) *Graph {
	g := &Graph{
		Nodes: proj.ModuleOrder(),
		Edges: make(map[string][]string),
	}

	for _, name := range g.Nodes {
		mod := proj.GetModule(name)
		if mod == nil || len(mod.Submodules) == 0 {
			continue
		}
		seen := make(map[string]bool, len(mod.Submodules))
		var edges []string
		for _, sub := range mod.Submodules {
			if seen[sub.Name] {
				continue
			}
			seen[sub.Name] = true
			edges = append(edges, sub.Name)
		}
		g.Edges[name] = edges
	}

	if len(proj.Packages) > 0 {
		g.Packages = make(map[string]PackageSummary, len(proj.Packages))
		for name, pkg := range proj.Packages {
			modules := make([]string, 0, len(pkg.Modules))
			for m := range pkg.Modules {
				modules = append(modules, m)
			}
			g.Packages[name] = PackageSummary{Type: pkg.Type, Modules: modules}
		}
	}

	return g
}
