package md2site

import (
	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2site/internal/logger"
	"github.com/alnah/go-md2site/internal/parser"
	"github.com/alnah/go-md2site/internal/render"
)

// Resolver maps note-link targets to output paths relative to the site
// root. A target is tried with LookupPath as written ("notes/idea.md"),
// then with LookupName as written and with ".md" appended ("idea.md").
// Both report false for unknown targets.
type Resolver = parser.Resolver

// SoftBreak selects how a single newline inside a paragraph is written.
type SoftBreak = render.SoftBreak

// Soft break modes.
const (
	SoftBreakSpace   = render.SoftBreakSpace
	SoftBreakNewline = render.SoftBreakNewline
	SoftBreakHTML    = render.SoftBreakHTML
)

// Markup dialects.
const (
	MarkupNative     = "native"
	MarkupCommonMark = "commonmark"
)

// Option configures a Compiler.
type Option func(*Compiler)

// WithResolver sets the note-link resolver.
func WithResolver(r Resolver) Option {
	return func(c *Compiler) {
		c.cfg.resolver = r
	}
}

// WithSoftBreak sets the soft break mode. The default is SoftBreakSpace.
func WithSoftBreak(mode SoftBreak) Option {
	return func(c *Compiler) {
		c.cfg.softBreak = mode
	}
}

// WithHighlight enables syntax highlighting of fenced code blocks with the
// named chroma style. An empty style uses "github". Output uses CSS
// classes; write the matching stylesheet with WriteHighlightCSS.
func WithHighlight(style string) Option {
	return func(c *Compiler) {
		c.cfg.highlight = true
		c.cfg.highlightStyle = style
	}
}

// WithBaseURL prefixes relative links and images with baseURL.
func WithBaseURL(baseURL string) Option {
	return func(c *Compiler) {
		c.cfg.baseURL = baseURL
	}
}

// WithLogger receives warnings such as unresolved note-links. Nothing is
// logged by default.
func WithLogger(l *log.Logger) Option {
	return func(c *Compiler) {
		c.cfg.logger = &logger.Logger{Logger: l}
	}
}

// WithMarkup sets the dialect of documents whose front matter does not
// name one: MarkupNative (default) or MarkupCommonMark.
func WithMarkup(markup string) Option {
	return func(c *Compiler) {
		c.cfg.markup = markup
	}
}
