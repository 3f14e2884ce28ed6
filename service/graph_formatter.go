package service

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oakbranch/pymap/domain"
)

// GraphFormatterImpl implements domain.GraphFormatter.
type GraphFormatterImpl struct{}

// NewGraphFormatter creates a new GraphFormatterImpl.
func NewGraphFormatter() *GraphFormatterImpl { return &GraphFormatterImpl{} }

// Format renders resp as a string in the given format.
func (f *GraphFormatterImpl) Format(resp *domain.ResolveResponse, format domain.OutputFormat) (string, error) {
	var b strings.Builder
	if err := f.Write(resp, format, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Write implements domain.GraphFormatter.
func (f *GraphFormatterImpl) Write(resp *domain.ResolveResponse, format domain.OutputFormat, w io.Writer) error {
	if resp.Nodes == nil && resp.Edges == nil {
		_, err := io.WriteString(w, resp.Source)
		return err
	}

	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(w, resp)
	case domain.OutputFormatYAML:
		return WriteYAML(w, resp)
	case domain.OutputFormatDOT:
		return writeDOT(w, resp)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// writeDOT renders the graph per spec §6: `digraph G {` then one
// `    "P" -> "C"` line per edge in node then target order, then `}`.
func writeDOT(w io.Writer, resp *domain.ResolveResponse) error {
	if _, err := io.WriteString(w, "digraph G {\n"); err != nil {
		return err
	}

	parents := make([]string, 0, len(resp.Edges))
	for p := range resp.Edges {
		parents = append(parents, p)
	}
	sort.SliceStable(parents, func(i, j int) bool {
		return nodeIndex(resp.Nodes, parents[i]) < nodeIndex(resp.Nodes, parents[j])
	})

	for _, parent := range parents {
		for _, child := range resp.Edges[parent] {
			if _, err := fmt.Fprintf(w, "    %q -> %q\n", parent, child); err != nil {
				return err
			}
		}
	}

	_, err := io.WriteString(w, "}\n")
	return err
}

func nodeIndex(nodes []string, name string) int {
	for i, n := range nodes {
		if n == name {
			return i
		}
	}
	return len(nodes)
}
