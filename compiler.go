package md2site

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/alnah/go-md2site/internal/frontmatter"
	"github.com/alnah/go-md2site/internal/logger"
	"github.com/alnah/go-md2site/internal/pipeline"
	"github.com/alnah/go-md2site/internal/render"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.NativePreprocessor)(nil)
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.NativeConverter)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
)

// Input is one document to compile.
type Input struct {
	// Markdown is the document source, front matter included.
	Markdown string

	// Path is the document's output path relative to the site root, e.g.
	// "notes/idea.html". Links are resolved against its directory. Empty
	// means a document at the site root.
	Path string
}

// Output is a compiled document.
type Output struct {
	HTML  string            // body fragment
	Title string            // front matter title, else the base name of Input.Path
	Meta  map[string]string // front matter, empty without a header
}

type compilerConfig struct {
	resolver       Resolver
	softBreak      SoftBreak
	highlight      bool
	highlightStyle string
	baseURL        string
	logger         *logger.Logger
	markup         string
}

// Compiler converts documents to HTML fragments.
// Create with New and call Compile for each document.
type Compiler struct {
	cfg          compilerConfig
	log          *logger.Logger
	preprocessor pipeline.MarkdownPreprocessor
	native       pipeline.HTMLConverter
	commonmark   pipeline.HTMLConverter
}

// New creates a Compiler. Use options to configure note-link resolution,
// soft breaks, highlighting and the base URL.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		cfg:          compilerConfig{markup: MarkupNative},
		preprocessor: &pipeline.NativePreprocessor{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = logger.OrDiscard(c.cfg.logger)

	popts := pipeline.Options{
		BaseURL:        c.cfg.baseURL,
		SoftBreak:      c.cfg.softBreak,
		Highlight:      c.cfg.highlight,
		HighlightStyle: c.cfg.highlightStyle,
		Resolver:       c.cfg.resolver,
		Logger:         c.log,
	}
	c.native = pipeline.NewNativeConverter(popts)
	c.commonmark = pipeline.NewGoldmarkConverter(popts)
	return c
}

// Compile converts input to an HTML fragment. The context is used for
// cancellation.
func (c *Compiler) Compile(ctx context.Context, input Input) (out *Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}

	content := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	doc, err := frontmatter.Read(content)
	if err != nil {
		c.log.FrontMatterInvalid(input.Path, err)
	}

	markup := strings.ToLower(doc.Meta.Get(frontmatter.KeyMarkup))
	if markup == "" {
		markup = strings.ToLower(c.cfg.markup)
	}

	conv, body := c.native, doc.Body
	switch markup {
	case MarkupNative:
	case MarkupCommonMark:
		conv = c.commonmark
		body = (&pipeline.CommonMarkPreprocessor{}).PreprocessMarkdown(ctx, body)
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidMarkup, markup, MarkupNative, MarkupCommonMark)
	}

	html, err := conv.ToHTML(ctx, pipeline.Input{Output: input.Path, Content: body})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	title := doc.Meta.Get(frontmatter.KeyTitle)
	if title == "" && input.Path != "" {
		title = strings.TrimSuffix(path.Base(input.Path), path.Ext(input.Path))
	}
	meta := make(map[string]string, len(doc.Meta))
	for k, v := range doc.Meta {
		meta[k] = v
	}
	return &Output{HTML: html, Title: title, Meta: meta}, nil
}

// WriteHighlightCSS writes the stylesheet for highlighted code blocks in
// the style chosen with WithHighlight.
func (c *Compiler) WriteHighlightCSS(w io.Writer) error {
	return render.NewChromaHighlighter(c.cfg.highlightStyle).WriteCSS(w)
}
