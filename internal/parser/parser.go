// Package parser builds the document tree from the token stream.
//
// The block parser recognizes headings, thematic breaks, lists, fenced code
// and paragraphs; the inline parser recognizes emphasis, inline code,
// standard links and images, and note-links. Every construct is tried
// speculatively on a copied Cursor and degrades to plain text or a
// paragraph when it does not match, so parsing never fails.
package parser

import (
	"path/filepath"

	"github.com/alnah/go-md2site/internal/ast"
	"github.com/alnah/go-md2site/internal/logger"
	"github.com/alnah/go-md2site/internal/token"
)

// UnresolvedTarget is the href written for note-links missing from the site graph.
const UnresolvedTarget = "#"

// Resolver looks up note-link targets in the site graph.
// Both methods return the target's output path, slash-separated and
// relative to the site root (e.g. "notes/idea.html", "img/cat.png").
type Resolver interface {
	LookupPath(rel string) (string, bool)
	LookupName(name string) (string, bool)
}

// Options configures a single parse.
type Options struct {
	// Resolver resolves note-links. Nil leaves every note-link unresolved.
	Resolver Resolver

	// Source is the output path of the document being parsed. Resolved
	// note-links are made relative to its directory.
	Source string

	Logger *logger.Logger
}

// parser holds per-document state. It is never shared between documents.
type parser struct {
	opts Options
	log  *logger.Logger
}

// Parse builds a Document node from toks.
func Parse(toks []token.Token, opts Options) *ast.Node {
	p := &parser{opts: opts, log: logger.OrDiscard(opts.Logger)}
	doc := ast.New(ast.Document, "", "")

	c := NewCursor(toks)
	for !c.AtEnd() {
		if c.Is(token.Newline) {
			c = c.Next()
			continue
		}
		var n *ast.Node
		c, n = p.block(c)
		if n != nil {
			doc.Append(n)
		}
	}
	return doc
}

// ParseString tokenizes and parses src.
func ParseString(src string, opts Options) *ast.Node {
	return Parse(token.Tokenize(src), opts)
}

// resolve maps a note-link target to an href relative to the current document.
// Lookup order: relative path, file name, file name with ".md".
func (p *parser) resolve(target string) string {
	r := p.opts.Resolver
	if r != nil {
		out, ok := r.LookupPath(target)
		if !ok {
			out, ok = r.LookupName(target)
		}
		if !ok {
			out, ok = r.LookupName(target + ".md")
		}
		if ok {
			return RelativeHref(p.opts.Source, out)
		}
	}
	p.log.UnresolvedLink(p.opts.Source, target)
	return UnresolvedTarget
}

// RelativeHref returns the path of target relative to the directory of from.
// Both arguments are slash-separated paths relative to the site root.
func RelativeHref(from, target string) string {
	dir := filepath.Dir(filepath.FromSlash(from))
	rel, err := filepath.Rel(dir, filepath.FromSlash(target))
	if err != nil {
		return target
	}
	return filepath.ToSlash(rel)
}
