package resolver

import (
	"context"
	"testing"

	"github.com/oakbranch/pymap/internal/parser"
)

func buildTree(t *testing.T, source string) *moduleTree {
	t.Helper()
	p := parser.New()
	result, err := p.Parse(context.Background(), []byte(source))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	root, err := parser.NewASTBuilder([]byte(source)).Build(result.Tree)
	if err != nil {
		t.Fatalf("build ast: %v", err)
	}
	return &moduleTree{root: root}
}

func TestExtractPlainImports(t *testing.T) {
	tree := buildTree(t, "import os\nimport sys as system\nimport pkg.sub\n")
	plains, froms := NewImportExtractor().Extract(tree)

	want := []string{"os", "sys", "pkg.sub"}
	if len(plains) != len(want) {
		t.Fatalf("plains = %v, want %v", plains, want)
	}
	for i, p := range plains {
		if p.PackageName != want[i] {
			t.Fatalf("plains[%d] = %q, want %q", i, p.PackageName, want[i])
		}
	}
	if len(froms) != 0 {
		t.Fatalf("froms = %v, want none", froms)
	}
}

func TestExtractFromImports(t *testing.T) {
	tree := buildTree(t, "from typing import List, Optional\nfrom . import sibling\nfrom ..pkg import thing\nfrom math import *\n")
	_, froms := NewImportExtractor().Extract(tree)

	if len(froms) != 4 {
		t.Fatalf("froms = %+v, want 4 entries", froms)
	}
	if froms[0].PackageName != "typing" || froms[0].RelativeLevel != 0 {
		t.Fatalf("froms[0] = %+v", froms[0])
	}
	if len(froms[0].Targets.Names) != 2 || froms[0].Targets.Names[0] != "List" {
		t.Fatalf("froms[0].Targets = %+v", froms[0].Targets)
	}
	if froms[1].PackageName != "" || froms[1].RelativeLevel != 1 {
		t.Fatalf("froms[1] = %+v, want level-1 import with no package name", froms[1])
	}
	if froms[2].PackageName != "pkg" || froms[2].RelativeLevel != 2 {
		t.Fatalf("froms[2] = %+v", froms[2])
	}
	if !froms[3].Targets.Star {
		t.Fatalf("froms[3] = %+v, want a star import", froms[3])
	}
}

func TestExtractDeduplicatesFirstOccurrence(t *testing.T) {
	tree := buildTree(t, "import os\nimport os\nfrom a import b\nfrom a import b\n")
	plains, froms := NewImportExtractor().Extract(tree)

	if len(plains) != 1 {
		t.Fatalf("plains = %v, want a single deduplicated entry", plains)
	}
	if len(froms) != 1 {
		t.Fatalf("froms = %v, want a single deduplicated entry", froms)
	}
}
