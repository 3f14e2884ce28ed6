package resolver

import (
	"strconv"

	"github.com/oakbranch/pymap/internal/parser"
)

// ImportExtractor walks a syntax tree and emits normalized import
// descriptors, deduplicated preserving first occurrence. It never
// resolves or rewrites a name — that is ImportResolver's job.
type ImportExtractor struct{}

// NewImportExtractor creates an extractor. It carries no state.
func NewImportExtractor() *ImportExtractor {
	return &ImportExtractor{}
}

// Extract walks tree and returns the plain and from-style import
// descriptors found anywhere in it, in source order.
func (e *ImportExtractor) Extract(tree *moduleTree) ([]PlainImport, []FromImport) {
	if tree == nil || tree.root == nil {
		return nil, nil
	}

	var plains []PlainImport
	var froms []FromImport
	seenPlain := make(map[string]bool)
	seenFrom := make(map[string]bool)

	visitor := parser.NewFuncVisitor(func(node *parser.Node) bool {
		switch node.Type {
		case parser.NodeImport:
			for _, name := range node.Names {
				if name == "" || seenPlain[name] {
					continue
				}
				seenPlain[name] = true
				plains = append(plains, PlainImport{PackageName: name})
			}
		case parser.NodeImportFrom:
			from := FromImport{
				PackageName:    node.Module,
				HasPackageName: node.Module != "",
				RelativeLevel:  node.Level,
			}
			for _, name := range node.Names {
				if name == "*" {
					from.Targets.Star = true
					continue
				}
				from.Targets.Names = append(from.Targets.Names, name)
			}
			key := fromImportKey(from)
			if !seenFrom[key] {
				seenFrom[key] = true
				froms = append(froms, from)
			}
		}
		return true
	})
	tree.root.Accept(visitor)

	return plains, froms
}

func fromImportKey(f FromImport) string {
	key := f.PackageName + "\x00" + strconv.Itoa(f.RelativeLevel)
	if f.Targets.Star {
		return key + "\x00*"
	}
	for _, n := range f.Targets.Names {
		key += "\x00" + n
	}
	return key
}
