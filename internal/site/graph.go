package site

import (
	"path"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/alnah/go-md2site/internal/logger"
	"github.com/alnah/go-md2site/internal/parser"
)

// Graph maps note-link targets to output paths. It is read-only after
// NewGraph returns and safe for concurrent lookups.
type Graph struct {
	byPath map[string]string
	byName map[string]string
}

// Compile-time interface check.
var _ parser.Resolver = (*Graph)(nil)

// NewGraph indexes the documents and images of tree. Documents are
// reachable by source path, slug and file name; images by path and file
// name. When two files share a name the first in path order wins.
func NewGraph(tree *Tree, log *logger.Logger) *Graph {
	g := &Graph{
		byPath: make(map[string]string),
		byName: make(map[string]string),
	}
	owner := make(map[string]string)

	addName := func(name, source, output string) {
		key := lookupKey(name)
		if prev, ok := owner[key]; ok {
			log.NameCollision(name, prev, source)
			return
		}
		owner[key] = source
		g.byName[key] = output
	}

	for _, doc := range tree.Documents {
		g.byPath[lookupKey(doc.Source)] = doc.Output
		g.byPath[lookupKey(doc.Slug)] = doc.Output
		addName(path.Base(doc.Source), doc.Source, doc.Output)
	}
	for _, img := range tree.Images {
		g.byPath[lookupKey(img.Source)] = img.Source
		addName(path.Base(img.Source), img.Source, img.Source)
	}
	return g
}

// LookupPath resolves a slash path relative to the site root.
func (g *Graph) LookupPath(rel string) (string, bool) {
	out, ok := g.byPath[lookupKey(strings.TrimPrefix(rel, "/"))]
	return out, ok
}

// LookupName resolves a bare file name.
func (g *Graph) LookupName(name string) (string, bool) {
	out, ok := g.byName[lookupKey(name)]
	return out, ok
}

// Keys returns every path and name key in sorted order.
func (g *Graph) Keys() []string {
	keys := make([]string, 0, len(g.byPath)+len(g.byName))
	for k, v := range g.byPath {
		keys = append(keys, "path:"+k+"="+v)
	}
	for k, v := range g.byName {
		keys = append(keys, "name:"+k+"="+v)
	}
	slices.Sort(keys)
	return keys
}

// lookupKey normalizes a target so composed and decomposed accents match.
func lookupKey(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
