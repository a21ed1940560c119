package frontmatter

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		wantFront string
		wantBody  string
		wantHad   bool
		wantErr   error
	}{
		{
			name:     "no front matter",
			content:  "# Title\n",
			wantBody: "# Title\n",
		},
		{
			name:      "front matter and body",
			content:   "---\ntitle: A\n---\n# Body\n",
			wantFront: "title: A\n",
			wantBody:  "# Body\n",
			wantHad:   true,
		},
		{
			name:     "empty front matter",
			content:  "---\n---\nbody",
			wantBody: "body",
			wantHad:  true,
		},
		{
			name:      "closing delimiter at end of input",
			content:   "---\ntitle: A\n---",
			wantFront: "title: A\n",
			wantHad:   true,
		},
		{
			name:      "trailing spaces on delimiters",
			content:   "--- \ntitle: A\n---\t\nx",
			wantFront: "title: A\n",
			wantBody:  "x",
			wantHad:   true,
		},
		{
			name:     "thematic break later is not front matter",
			content:  "text\n---\n",
			wantBody: "text\n---\n",
		},
		{
			name:    "missing closing delimiter",
			content: "---\ntitle: A\n# Body\n",
			wantErr: ErrMissingClosingDelimiter,
		},
		{
			name:    "delimiter only",
			content: "---",
			wantErr: ErrMissingClosingDelimiter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			front, body, had, err := Split(tt.content)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Split() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if front != tt.wantFront || body != tt.wantBody || had != tt.wantHad {
				t.Errorf("Split(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.content, front, body, had, tt.wantFront, tt.wantBody, tt.wantHad)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		front string
		want  map[string]string
	}{
		{
			name:  "yaml",
			front: "title: Hello\norder: 2\ndraft: true\n",
			want:  map[string]string{"title": "Hello", "order": "2", "draft": "true"},
		},
		{
			name:  "invalid yaml falls back to lines",
			front: "title: {unclosed\ndate: 2024/01/15 10:30\n",
			want:  map[string]string{"title": "{unclosed", "date": "2024/01/15 10:30"},
		},
		{
			name:  "line fallback unquotes and skips junk",
			front: "title: \"x: y\"\nno colon here\n: empty key\nbroken: [\n",
			want:  map[string]string{"title": "x: y", "broken": "["},
		},
		{
			name:  "blank",
			front: "  \n",
			want:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, Parse(tt.front)); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.front, diff)
			}
		})
	}
}

func TestRead(t *testing.T) {
	t.Parallel()

	doc, err := Read("---\ntitle: T\norder: 3\nid: 7\ndraft: maybe\n---\nbody\n")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !doc.HadFrontMatter || doc.Body != "body\n" || doc.Meta.Get(KeyTitle) != "T" {
		t.Errorf("Read() = %+v", doc)
	}
	if n, ok := doc.Meta.Order(); !ok || n != 3 {
		t.Errorf("Order() = %d, %v; want 3, true", n, ok)
	}
	if n, ok := doc.Meta.ID(); !ok || n != 7 {
		t.Errorf("ID() = %d, %v; want 7, true", n, ok)
	}
	if doc.Meta.Draft() {
		t.Error("Draft() = true for \"maybe\", want false")
	}

	broken := "---\ntitle: T\nbody\n"
	doc, err = Read(broken)
	if !errors.Is(err, ErrMissingClosingDelimiter) {
		t.Fatalf("Read() error = %v, want ErrMissingClosingDelimiter", err)
	}
	if doc.Body != broken || doc.Meta == nil {
		t.Errorf("Read() on broken header = %+v, want whole input as body", doc)
	}
}
