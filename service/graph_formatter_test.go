package service

import (
	"bytes"
	"testing"

	"github.com/oakbranch/pymap/domain"
	"github.com/stretchr/testify/require"
)

func sampleResponse() *domain.ResolveResponse {
	return &domain.ResolveResponse{
		Nodes: []string{"main", "util"},
		Edges: map[string][]string{"main": {"util"}},
	}
}

func TestGraphFormatter_JSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewGraphFormatter()
	require.NoError(t, f.Write(sampleResponse(), domain.OutputFormatJSON, &buf))
	require.Contains(t, buf.String(), `"nodes"`)
	require.Contains(t, buf.String(), `"util"`)
}

func TestGraphFormatter_DOT(t *testing.T) {
	var buf bytes.Buffer
	f := NewGraphFormatter()
	require.NoError(t, f.Write(sampleResponse(), domain.OutputFormatDOT, &buf))

	want := "digraph G {\n    \"main\" -> \"util\"\n}\n"
	require.Equal(t, want, buf.String())
}

func TestGraphFormatter_YAML(t *testing.T) {
	var buf bytes.Buffer
	f := NewGraphFormatter()
	require.NoError(t, f.Write(sampleResponse(), domain.OutputFormatYAML, &buf))
	require.Contains(t, buf.String(), "nodes:")
}

func TestGraphFormatter_CodeStub(t *testing.T) {
	var buf bytes.Buffer
	f := NewGraphFormatter()
	resp := &domain.ResolveResponse{Source: "print(1)\n"}
	require.NoError(t, f.Write(resp, domain.OutputFormatJSON, &buf))
	require.Equal(t, "print(1)\n", buf.String())
}

func TestGraphFormatter_UnsupportedFormat(t *testing.T) {
	f := NewGraphFormatter()
	_, err := f.Format(sampleResponse(), domain.OutputFormat("xml"))
	require.Error(t, err)
}
