package render

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/alnah/go-md2site/internal/ast"
	"github.com/alnah/go-md2site/internal/parser"
)

func renderString(t *testing.T, src string, opts Options) string {
	t.Helper()
	return HTML(parser.ParseString(src, parser.Options{Source: opts.Source}), opts)
}

func TestHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  Options
		want  string
	}{
		{
			name:  "heading",
			input: "# Hello\n",
			want:  "<h1>Hello</h1>\n",
		},
		{
			name:  "headings 2 and 3",
			input: "## A\n### B\n",
			want:  "<h2>A</h2>\n<h3>B</h3>\n",
		},
		{
			name:  "emphasis",
			input: "*a* **b** ***c***",
			want:  "<p><em>a</em> <strong>b</strong> <em><strong>c</strong></em></p>\n",
		},
		{
			name:  "mismatched emphasis is literal",
			input: "**a*",
			want:  "<p>**a*</p>\n",
		},
		{
			name:  "longer closing run ends emphasis early",
			input: "*a**b*",
			want:  "<p><em>a*</em>b*</p>\n",
		},
		{
			name:  "bold closed inside a triple run",
			input: "**a***",
			want:  "<p><strong>a*</strong></p>\n",
		},
		{
			name:  "code block with language",
			input: "```python\nprint(1)\n```",
			want:  "<pre><code class=\"language-python\">print(1)\n</code></pre>\n",
		},
		{
			name:  "code block escapes markup",
			input: "```\nif a < b && c > d {}\n```\n",
			want:  "<pre><code>if a &lt; b &amp;&amp; c &gt; d {}\n</code></pre>\n",
		},
		{
			name:  "inline code escapes markup",
			input: "`<b>`",
			want:  "<p><code>&lt;b&gt;</code></p>\n",
		},
		{
			name:  "prose is not escaped",
			input: "a <b>bold</b> & more",
			want:  "<p>a <b>bold</b> & more</p>\n",
		},
		{
			name:  "nested list",
			input: "- a\n\t- b\n- c\n",
			want:  "<ul>\n<li>a<ul>\n<li>b</li>\n</ul>\n</li>\n<li>c</li>\n</ul>\n",
		},
		{
			name:  "ordered list",
			input: "1. x\n2. y\n",
			want:  "<ol>\n<li>x</li>\n<li>y</li>\n</ol>\n",
		},
		{
			name:  "thematic break",
			input: "---\n",
			want:  "<hr>\n",
		},
		{
			name:  "link and image without base url",
			input: "[a](b.html) ![c](d.png)",
			want:  "<p><a href=\"b.html\">a</a> <img src=\"d.png\" alt=\"c\"></p>\n",
		},
		{
			name:  "relative link gets base url",
			input: "[a](b.html)",
			opts:  Options{BaseURL: "https://site.test", Source: "notes/x.html"},
			want:  "<p><a href=\"https://site.test/notes/b.html\">a</a></p>\n",
		},
		{
			name:  "absolute link untouched",
			input: "[a](https://other.test/x)",
			opts:  Options{BaseURL: "https://site.test"},
			want:  "<p><a href=\"https://other.test/x\">a</a></p>\n",
		},
		{
			name:  "unresolved note-link keeps anchor",
			input: "[[Ghost]]",
			opts:  Options{BaseURL: "https://site.test"},
			want:  "<p><a href=\"#\">Ghost</a></p>\n",
		},
		{
			name:  "attribute quotes escaped",
			input: "![say \"hi\"](a.png)",
			want:  "<p><img src=\"a.png\" alt=\"say &quot;hi&quot;\"></p>\n",
		},
		{
			name:  "soft break as space",
			input: "a\nb",
			want:  "<p>a b</p>\n",
		},
		{
			name:  "soft break as newline",
			input: "a\nb",
			opts:  Options{SoftBreak: SoftBreakNewline},
			want:  "<p>a\nb</p>\n",
		},
		{
			name:  "soft break as html break",
			input: "a\nb",
			opts:  Options{SoftBreak: SoftBreakHTML},
			want:  "<p>a<br>\nb</p>\n",
		},
		{
			name:  "empty document",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := renderString(t, tt.input, tt.opts); got != tt.want {
				t.Errorf("HTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHTML_Idempotent(t *testing.T) {
	t.Parallel()

	src := "# T\n\n- a *b*\n\t1. `c`\n\n```go\nx := 1\n```\n\n[[n]] ![i](j.png) [k](/l)\n---\n"
	tree := parser.ParseString(src, parser.Options{})
	opts := Options{BaseURL: "https://x.test", SoftBreak: SoftBreakHTML}

	first := HTML(tree, opts)
	second := HTML(tree, opts)
	if first != second {
		t.Errorf("HTML not idempotent:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestHTML_NilNode(t *testing.T) {
	t.Parallel()

	if got := HTML(nil, Options{}); got != "" {
		t.Errorf("HTML(nil) = %q, want empty", got)
	}
}

func TestParseSoftBreak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    SoftBreak
		wantErr error
	}{
		{"", SoftBreakSpace, nil},
		{"space", SoftBreakSpace, nil},
		{"Newline", SoftBreakNewline, nil},
		{"break", SoftBreakHTML, nil},
		{"br", SoftBreakHTML, nil},
		{"tab", SoftBreakSpace, ErrInvalidSoftBreak},
	}
	for _, tt := range tests {
		got, err := ParseSoftBreak(tt.in)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ParseSoftBreak(%q) error = %v, want %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseSoftBreak(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResolveURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                 string
		base, source, target string
		want                 string
	}{
		{"empty base leaves target", "", "a/b.html", "c.html", "c.html"},
		{"anchor untouched", "https://s.test", "a.html", "#top", "#top"},
		{"bare hash untouched", "https://s.test", "a.html", "#", "#"},
		{"https untouched", "https://s.test", "a.html", "https://o.test/x", "https://o.test/x"},
		{"mailto untouched", "https://s.test", "a.html", "mailto:a@b.test", "mailto:a@b.test"},
		{"protocol relative untouched", "https://s.test", "a.html", "//cdn.test/x.js", "//cdn.test/x.js"},
		{"root relative", "https://s.test/", "a/b.html", "/img/x.png", "https://s.test/img/x.png"},
		{"document relative", "https://s.test", "notes/a.html", "b.html", "https://s.test/notes/b.html"},
		{"parent relative", "https://s.test", "notes/daily/a.html", "../../img/x.png", "https://s.test/img/x.png"},
		{"escaping root is clamped", "https://s.test", "a.html", "../../x.html", "https://s.test/x.html"},
		{"base with path", "https://s.test/blog", "a.html", "b.html", "https://s.test/blog/b.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolveURL(tt.base, tt.source, tt.target); got != tt.want {
				t.Errorf("ResolveURL(%q, %q, %q) = %q, want %q", tt.base, tt.source, tt.target, got, tt.want)
			}
		})
	}
}

func TestChromaHighlighter(t *testing.T) {
	t.Parallel()

	h := NewChromaHighlighter("")

	out, ok := h.Highlight("print(1)\n", "python")
	if !ok {
		t.Fatal("Highlight(python) ok = false, want true")
	}
	if !strings.Contains(out, `class="chroma"`) || !strings.Contains(out, "print") {
		t.Errorf("Highlight(python) = %q, want chroma markup", out)
	}

	if _, ok := h.Highlight("x", "no-such-language-xyz"); ok {
		t.Error("Highlight(unknown) ok = true, want false")
	}

	var css bytes.Buffer
	if err := h.WriteCSS(&css); err != nil {
		t.Fatalf("WriteCSS() error = %v", err)
	}
	if !strings.Contains(css.String(), ".chroma") {
		t.Errorf("WriteCSS() missing .chroma rules")
	}
}

func TestHTML_HighlighterFallsBackToPlain(t *testing.T) {
	t.Parallel()

	code := ast.New(ast.CodeBlock, "x < 1\n", "no-such-language-xyz")
	got := HTML(code, Options{Highlighter: NewChromaHighlighter("monokai")})
	want := "<pre><code class=\"language-no-such-language-xyz\">x &lt; 1\n</code></pre>\n"
	if got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}

func TestValidateStyle(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "github", "monokai", "Monokai"} {
		if err := ValidateStyle(name); err != nil {
			t.Errorf("ValidateStyle(%q) = %v", name, err)
		}
	}
	if err := ValidateStyle("no-such-style"); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("ValidateStyle(unknown) = %v, want ErrUnknownStyle", err)
	}
	if names := StyleNames(); !slices.Contains(names, DefaultHighlightStyle) {
		t.Errorf("StyleNames() = %v, missing %q", names, DefaultHighlightStyle)
	}
}
