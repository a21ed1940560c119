package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2site/internal/logger"
	"github.com/alnah/go-md2site/internal/render"
)

type mapResolver map[string]string

func (m mapResolver) LookupPath(rel string) (string, bool) {
	out, ok := m["path:"+rel]
	return out, ok
}

func (m mapResolver) LookupName(name string) (string, bool) {
	out, ok := m["name:"+name]
	return out, ok
}

// ---------------------------------------------------------------------------
// NativeConverter
// ---------------------------------------------------------------------------

func TestNativeConverter(t *testing.T) {
	t.Parallel()

	resolver := mapResolver{"name:b.md": "notes/b.html", "name:cat.png": "images/cat.png"}

	tests := []struct {
		name string
		opts Options
		in   Input
		want string
	}{
		{
			name: "note-link resolved relative to output",
			opts: Options{Resolver: resolver},
			in:   Input{Output: "notes/a.html", Content: "see [[b]]"},
			want: "<p>see <a href=\"b.html\">b</a></p>\n",
		},
		{
			name: "note-link with base url",
			opts: Options{Resolver: resolver, BaseURL: "https://s.test"},
			in:   Input{Output: "notes/a.html", Content: "see [[b]]"},
			want: "<p>see <a href=\"https://s.test/notes/b.html\">b</a></p>\n",
		},
		{
			name: "soft break as br",
			opts: Options{SoftBreak: render.SoftBreakHTML},
			in:   Input{Output: "a.html", Content: "a\nb"},
			want: "<p>a<br>\nb</p>\n",
		},
		{
			name: "heading",
			in:   Input{Output: "a.html", Content: "# T"},
			want: "<h1>T</h1>\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewNativeConverter(tt.opts).ToHTML(context.Background(), tt.in)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ToHTML() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNativeConverter_UnresolvedLinkLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := NewNativeConverter(Options{Logger: logger.New(&buf)})
	got, err := c.ToHTML(context.Background(), Input{Output: "a.html", Content: "[[Ghost]]"})
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if !strings.Contains(got, `href="#"`) {
		t.Errorf("ToHTML() = %q, want unresolved anchor", got)
	}
	if !strings.Contains(buf.String(), "Ghost") {
		t.Errorf("unresolved link not logged: %q", buf.String())
	}
}

func TestNativeConverter_Highlight(t *testing.T) {
	t.Parallel()

	c := NewNativeConverter(Options{Highlight: true})
	got, err := c.ToHTML(context.Background(), Input{Output: "a.html", Content: "```go\nfunc main() {}\n```"})
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if !strings.Contains(got, `class="chroma"`) {
		t.Errorf("ToHTML() = %q, want chroma classes", got)
	}
}

// ---------------------------------------------------------------------------
// GoldmarkConverter
// ---------------------------------------------------------------------------

func TestGoldmarkConverter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		opts         Options
		in           Input
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "basic fragment",
			in:           Input{Output: "a.html", Content: "# Title\n\nHello *world*"},
			wantContains: []string{`<h1 id="title">Title</h1>`, "<em>world</em>"},
			wantExcludes: []string{"<html>", "<body>"},
		},
		{
			name:         "gfm table",
			in:           Input{Output: "a.html", Content: "| a | b |\n|---|---|\n| 1 | 2 |"},
			wantContains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:         "markdown links rewritten",
			opts:         Options{BaseURL: "https://s.test"},
			in:           Input{Output: "notes/a.html", Content: "[b](b.md) ![c](c.png)"},
			wantContains: []string{`href="https://s.test/notes/b.html"`, `src="https://s.test/notes/c.png"`},
		},
		{
			name:         "highlight marks",
			in:           Input{Output: "a.html", Content: "a " + MarkStartPlaceholder + "b" + MarkEndPlaceholder},
			wantContains: []string{"<mark>b</mark>"},
		},
		{
			name:         "hard wraps",
			opts:         Options{SoftBreak: render.SoftBreakHTML},
			in:           Input{Output: "a.html", Content: "a\nb"},
			wantContains: []string{"<br"},
		},
		{
			name:         "syntax highlighting",
			opts:         Options{Highlight: true},
			in:           Input{Output: "a.html", Content: "```go\nfunc main() {}\n```"},
			wantContains: []string{`class="chroma"`},
		},
		{
			name:         "raw html stays escaped",
			in:           Input{Output: "a.html", Content: "<script>alert(1)</script>"},
			wantExcludes: []string{"<script>"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewGoldmarkConverter(tt.opts).ToHTML(context.Background(), tt.in)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("ToHTML() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestConverters_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	converters := map[string]HTMLConverter{
		"native":   NewNativeConverter(Options{}),
		"goldmark": NewGoldmarkConverter(Options{}),
	}
	for name, c := range converters {
		if _, err := c.ToHTML(ctx, Input{Content: "x"}); !errors.Is(err, context.Canceled) {
			t.Errorf("%s: ToHTML() error = %v, want context.Canceled", name, err)
		}
	}
}
