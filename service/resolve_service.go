package service

import (
	"bytes"
	"context"
	"log"
	"time"

	"github.com/oakbranch/pymap/domain"
	"github.com/oakbranch/pymap/internal/analyzer"
	"github.com/oakbranch/pymap/internal/resolver"
	"github.com/oakbranch/pymap/internal/version"
)

// ResolveServiceImpl implements domain.ResolveService by driving a
// resolver.ProjectParser over a single entry file and projecting its
// Project into the graph shape the CLI and MCP surfaces serialize.
type ResolveServiceImpl struct {
	fileReader domain.FileReader
	logBuf     *bytes.Buffer
	onModule   func()
}

// NewResolveService creates a new ResolveServiceImpl.
func NewResolveService() *ResolveServiceImpl {
	return &ResolveServiceImpl{fileReader: NewFileReader()}
}

// WithModuleHook registers a callback invoked once per module the BFS
// finishes parsing, for progress reporting. Optional.
func (s *ResolveServiceImpl) WithModuleHook(fn func()) *ResolveServiceImpl {
	s.onModule = fn
	return s
}

// Resolve implements domain.ResolveService.
func (s *ResolveServiceImpl) Resolve(ctx context.Context, req domain.ResolveRequest) (*domain.ResolveResponse, error) {
	exists, err := s.fileReader.FileExists(req.EntryPath)
	if err != nil || !exists {
		return nil, domain.NewEntryMissingError(req.EntryPath, err)
	}

	if !req.DescribeModules {
		content, err := s.fileReader.ReadFile(req.EntryPath)
		if err != nil {
			return nil, domain.NewFileNotFoundError(req.EntryPath, err)
		}
		return &domain.ResolveResponse{
			Source:      string(content),
			GeneratedAt: time.Now().Format(time.RFC3339),
			Version:     version.Version,
		}, nil
	}

	var logBuf bytes.Buffer
	logger := log.New(&logBuf, "", 0)

	pp := resolver.NewProjectParser(resolver.Options{
		ShallowStd:       req.ShallowStd,
		CachePath:        req.CachePath,
		ResolveReExports: req.ResolveReExports,
		ExcludePatterns:  req.ExcludePatterns,
		ExtraRoots:       req.PythonPath,
		Logger:           logger,
		OnModuleParsed:   s.onModule,
	})

	proj, err := pp.ParseProject(req.EntryPath)
	if err != nil {
		return nil, domain.NewAnalysisError("failed to resolve import graph", err)
	}

	graph := analyzer.BuildGraph(proj)

	resp := &domain.ResolveResponse{
		Nodes:       graph.Nodes,
		Edges:       graph.Edges,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}
	if graph.Packages != nil {
		resp.Packages = make(map[string]domain.PackageSummary, len(graph.Packages))
		for name, pkg := range graph.Packages {
			resp.Packages[name] = domain.PackageSummary{Type: string(pkg.Type), Modules: pkg.Modules}
		}
	}
	if logBuf.Len() > 0 {
		resp.Warnings = splitLines(logBuf.String())
	}
	return resp, nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
