package domain

import (
	"context"
	"io"
)

// ResolveRequest represents input for a single-entry import-graph resolution.
type ResolveRequest struct {
	// EntryPath is the path to the entry source file.
	EntryPath string

	// DescribeModules switches the run from the code-generation stub to
	// the dependency graph (the CLI's --describe-modules/--dm flag).
	DescribeModules bool

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string

	// CachePath enables the persistent stdlib cache when non-empty.
	CachePath string

	// ShallowStd disables submodule expansion for StandardLib packages.
	ShallowStd bool

	// ResolveReExports enables the optional re-export refinement, which
	// records a from-imported name's dependency on the submodule its
	// package re-exports it from.
	ResolveReExports bool

	// PythonPath adds extra search roots beyond the entry file's directory.
	PythonPath []string

	// ExcludePatterns are glob patterns tested against candidate module
	// paths; a matching module is still a graph node, but it is not parsed,
	// so its own imports are not followed.
	ExcludePatterns []string
}

// PackageSummary is a package's serializable shape inside a ResolveResponse.
type PackageSummary struct {
	Type    string   `json:"type" yaml:"type"`
	Modules []string `json:"modules" yaml:"modules"`
}

// ResolveResponse is the result of resolving a single entry file's import
// graph. Nodes/Edges/Packages follow the JSON graph format spec §6 fixes;
// Source carries the code-generation stub's output when DescribeModules was
// false.
type ResolveResponse struct {
	Nodes    []string                  `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Edges    map[string][]string       `json:"edges,omitempty" yaml:"edges,omitempty"`
	Packages map[string]PackageSummary `json:"packages,omitempty" yaml:"packages,omitempty"`

	// Source holds the entry file's own text when DescribeModules is
	// false (the code-generation stub, spec §6/SPEC_FULL item 5).
	Source string `json:"-" yaml:"-"`

	Warnings    []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	GeneratedAt string   `json:"generated_at,omitempty" yaml:"generated_at,omitempty"`
	Version     string   `json:"version,omitempty" yaml:"version,omitempty"`
}

// ResolveService defines the core business logic for import-graph
// resolution.
type ResolveService interface {
	Resolve(ctx context.Context, req ResolveRequest) (*ResolveResponse, error)
}

// GraphFormatter defines the interface for formatting a ResolveResponse.
type GraphFormatter interface {
	Format(response *ResolveResponse, format OutputFormat) (string, error)
	Write(response *ResolveResponse, format OutputFormat, writer io.Writer) error
}
