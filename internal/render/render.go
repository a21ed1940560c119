// Package render turns a document tree into an HTML fragment.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-md2site/internal/ast"
)

// ErrInvalidSoftBreak indicates an unknown soft break mode name.
var ErrInvalidSoftBreak = errors.New("invalid soft break mode")

// SoftBreak selects how a single newline inside a paragraph is written.
type SoftBreak int

const (
	SoftBreakSpace   SoftBreak = iota // " "
	SoftBreakNewline                  // "\n"
	SoftBreakHTML                     // "<br>\n"
)

// ParseSoftBreak maps "space", "newline" or "break" to a SoftBreak. Empty means space.
func ParseSoftBreak(s string) (SoftBreak, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "space":
		return SoftBreakSpace, nil
	case "newline":
		return SoftBreakNewline, nil
	case "break", "br":
		return SoftBreakHTML, nil
	}
	return SoftBreakSpace, fmt.Errorf("%w: %q (must be space, newline, or break)", ErrInvalidSoftBreak, s)
}

func (s SoftBreak) String() string {
	switch s {
	case SoftBreakNewline:
		return "newline"
	case SoftBreakHTML:
		return "break"
	}
	return "space"
}

// Highlighter renders a code block with syntax highlighting.
// It returns false when it cannot handle the language.
type Highlighter interface {
	Highlight(code, lang string) (string, bool)
}

// Options configures rendering.
type Options struct {
	// BaseURL prefixes non-absolute link and image targets. Empty leaves them as written.
	BaseURL string

	// Source is the output path of the document, used to resolve
	// document-relative targets against BaseURL.
	Source string

	SoftBreak SoftBreak

	// Highlighter is optional; code blocks are plain when nil.
	Highlighter Highlighter
}

// HTML renders n. The output depends only on n and opts.
func HTML(n *ast.Node, opts Options) string {
	var b strings.Builder
	r := renderer{opts: opts}
	r.node(&b, n)
	return b.String()
}

type renderer struct {
	opts Options
}

var blockTags = map[ast.Kind]string{
	ast.Heading1:      "h1",
	ast.Heading2:      "h2",
	ast.Heading3:      "h3",
	ast.OrderedList:   "ol",
	ast.UnorderedList: "ul",
}

func (r *renderer) node(b *strings.Builder, n *ast.Node) {
	if n == nil {
		return
	}

	switch n.Kind {
	case ast.Document:
		r.children(b, n)

	case ast.Heading1, ast.Heading2, ast.Heading3:
		tag := blockTags[n.Kind]
		b.WriteString("<" + tag + ">")
		b.WriteString(n.Payload)
		b.WriteString("</" + tag + ">\n")

	case ast.Paragraph:
		b.WriteString("<p>")
		r.children(b, n)
		b.WriteString("</p>\n")

	case ast.OrderedList, ast.UnorderedList:
		tag := blockTags[n.Kind]
		b.WriteString("<" + tag + ">\n")
		r.children(b, n)
		b.WriteString("</" + tag + ">\n")

	case ast.ListItem:
		b.WriteString("<li>")
		r.children(b, n)
		b.WriteString("</li>\n")

	case ast.CodeBlock:
		r.codeBlock(b, n)

	case ast.ThematicBreak:
		b.WriteString("<hr>\n")

	case ast.Text:
		b.WriteString(n.Payload)

	case ast.Italic:
		b.WriteString("<em>" + n.Payload + "</em>")

	case ast.Bold:
		b.WriteString("<strong>" + n.Payload + "</strong>")

	case ast.ItalicBold:
		b.WriteString("<em><strong>" + n.Payload + "</strong></em>")

	case ast.InlineCode:
		b.WriteString("<code>" + EscapeCode(n.Payload) + "</code>")

	case ast.Link:
		href := ResolveURL(r.opts.BaseURL, r.opts.Source, n.Secondary)
		fmt.Fprintf(b, `<a href="%s">%s</a>`, EscapeAttr(href), n.Payload)

	case ast.Image:
		src := ResolveURL(r.opts.BaseURL, r.opts.Source, n.Secondary)
		fmt.Fprintf(b, `<img src="%s" alt="%s">`, EscapeAttr(src), EscapeAttr(n.Payload))

	case ast.SoftBreak:
		switch r.opts.SoftBreak {
		case SoftBreakNewline:
			b.WriteString("\n")
		case SoftBreakHTML:
			b.WriteString("<br>\n")
		default:
			b.WriteString(" ")
		}
	}
}

func (r *renderer) children(b *strings.Builder, n *ast.Node) {
	for _, c := range n.Children {
		r.node(b, c)
	}
}

func (r *renderer) codeBlock(b *strings.Builder, n *ast.Node) {
	if h := r.opts.Highlighter; h != nil && n.Secondary != "" {
		if out, ok := h.Highlight(n.Payload, n.Secondary); ok {
			b.WriteString(out)
			return
		}
	}
	if n.Secondary != "" {
		fmt.Fprintf(b, `<pre><code class="language-%s">`, EscapeAttr(n.Secondary))
	} else {
		b.WriteString("<pre><code>")
	}
	b.WriteString(EscapeCode(n.Payload))
	b.WriteString("</code></pre>\n")
}

var (
	codeEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// EscapeCode escapes &, < and > in verbatim code.
func EscapeCode(s string) string { return codeEscaper.Replace(s) }

// EscapeAttr escapes a double-quoted attribute value.
func EscapeAttr(s string) string { return attrEscaper.Replace(s) }
