package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// ErrUnknownStyle indicates a highlight style chroma does not register.
var ErrUnknownStyle = errors.New("unknown highlight style")

// ValidateStyle reports whether chroma knows the named style. Empty is valid.
func ValidateStyle(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := styles.Registry[strings.ToLower(name)]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return nil
}

// StyleNames lists the registered highlight styles, sorted.
func StyleNames() []string {
	return styles.Names()
}

// ChromaHighlighter highlights code blocks with chroma, emitting CSS classes
// so the colors live in a separate stylesheet.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter returns a highlighter for the named chroma style.
// Unknown names fall back to chroma's default style.
func NewChromaHighlighter(styleName string) *ChromaHighlighter {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	return &ChromaHighlighter{
		style:     styles.Get(styleName),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// Compile-time interface check.
var _ Highlighter = (*ChromaHighlighter)(nil)

// Highlight formats code for lang. Unknown languages report false so the
// caller emits a plain block.
func (h *ChromaHighlighter) Highlight(code, lang string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return "", false
	}
	b.WriteString("\n")
	return b.String(), true
}

// WriteCSS writes the stylesheet matching the highlighter's classes.
func (h *ChromaHighlighter) WriteCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}
