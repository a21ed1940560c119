package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	gmparser "github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-md2site/internal/logger"
	"github.com/alnah/go-md2site/internal/parser"
	"github.com/alnah/go-md2site/internal/render"
	"github.com/alnah/go-md2site/internal/token"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// Input is one document body to convert.
type Input struct {
	// Output is the document's output path relative to the site root, e.g.
	// "notes/idea.html". Links are resolved against its directory.
	Output  string
	Content string
}

// HTMLConverter abstracts document body to HTML fragment conversion.
// Implementations must be safe for concurrent use.
type HTMLConverter interface {
	ToHTML(ctx context.Context, in Input) (string, error)
}

// Options configures both converters.
type Options struct {
	BaseURL   string
	SoftBreak render.SoftBreak

	// Highlight enables chroma highlighting with HighlightStyle.
	Highlight      bool
	HighlightStyle string

	// Resolver resolves note-links in the native dialect.
	Resolver parser.Resolver
	Logger   *logger.Logger
}

// NativeConverter converts the note dialect: tokenize, parse, render.
type NativeConverter struct {
	opts        Options
	highlighter render.Highlighter
	log         *logger.Logger
}

// NewNativeConverter creates a NativeConverter.
func NewNativeConverter(opts Options) *NativeConverter {
	c := &NativeConverter{opts: opts, log: logger.OrDiscard(opts.Logger)}
	if opts.Highlight {
		c.highlighter = render.NewChromaHighlighter(opts.HighlightStyle)
	}
	return c
}

// ToHTML converts in. It never fails except on cancellation: every input
// has an HTML rendition.
func (c *NativeConverter) ToHTML(ctx context.Context, in Input) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc := parser.Parse(token.Tokenize(in.Content), parser.Options{
		Resolver: c.opts.Resolver,
		Source:   in.Output,
		Logger:   c.log,
	})
	return render.HTML(doc, render.Options{
		BaseURL:     c.opts.BaseURL,
		Source:      in.Output,
		SoftBreak:   c.opts.SoftBreak,
		Highlighter: c.highlighter,
	}), nil
}

// GoldmarkConverter converts CommonMark with GFM extensions using goldmark.
type GoldmarkConverter struct {
	md      goldmark.Markdown
	baseURL string
}

// NewGoldmarkConverter creates a GoldmarkConverter. Highlighting uses CSS
// classes so both converters share one highlight stylesheet.
func NewGoldmarkConverter(opts Options) *GoldmarkConverter {
	extensions := []goldmark.Extender{
		extension.GFM,      // Tables, strikethrough, autolinks, task lists
		extension.Footnote, // [^1] footnotes
	}
	if opts.Highlight {
		style := opts.HighlightStyle
		if style == "" {
			style = render.DefaultHighlightStyle
		}
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(style),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		))
	}

	rendererOpts := []goldmark.Option{}
	if opts.SoftBreak == render.SoftBreakHTML {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(gmhtml.WithHardWraps()))
	}

	md := goldmark.New(append([]goldmark.Option{
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(
			gmparser.WithAutoHeadingID(),
		),
	}, rendererOpts...)...)
	return &GoldmarkConverter{md: md, baseURL: opts.BaseURL}
}

// ToHTML converts in to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, in Input) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(in.Content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		out, err := RewriteURLs(ConvertMarkPlaceholders(buf.String()), c.baseURL, in.Output)
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: out}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// Compile-time interface checks.
var (
	_ HTMLConverter = (*NativeConverter)(nil)
	_ HTMLConverter = (*GoldmarkConverter)(nil)
)
