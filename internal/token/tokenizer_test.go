package token

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tok(k Kind) Token { return Token{Kind: k} }

func txt(s string) Token { return Token{Kind: Text, Text: s} }

func num(s string) Token { return Token{Kind: Number, Text: s} }

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "empty input",
			input: "",
			want:  []Token{tok(EOF)},
		},
		{
			name:  "heading",
			input: "# Hello\n",
			want:  []Token{tok(Hash), txt(" Hello"), tok(Newline), tok(EOF)},
		},
		{
			name:  "digits split from text",
			input: "abc123def",
			want:  []Token{txt("abc"), num("123"), txt("def"), tok(EOF)},
		},
		{
			name:  "ordered marker",
			input: "12. item",
			want:  []Token{num("12"), tok(Dot), txt(" item"), tok(EOF)},
		},
		{
			name:  "every punctuation kind",
			input: "#*-.[]()`!>\\\n\t",
			want: []Token{
				tok(Hash), tok(Asterisk), tok(Dash), tok(Dot), tok(LBracket), tok(RBracket),
				tok(LParen), tok(RParen), tok(Backtick), tok(Exclamation), tok(GreaterThan),
				tok(Backslash), tok(Newline), tok(Tab), tok(EOF),
			},
		},
		{
			name:  "note embed",
			input: "![[cat.png]]",
			want: []Token{
				tok(Exclamation), tok(LBracket), tok(LBracket), txt("cat"), tok(Dot), txt("png"),
				tok(RBracket), tok(RBracket), tok(EOF),
			},
		},
		{
			name:  "fenced code with language",
			input: "```python\nprint(1)\n```",
			want: []Token{
				tok(Backtick), tok(Backtick), tok(Backtick), txt("python"), tok(Newline),
				txt("print(1)\n"),
				tok(Backtick), tok(Backtick), tok(Backtick), tok(EOF),
			},
		},
		{
			name:  "fence body is not tokenized",
			input: "```\n# *x* [y](z)\n```\nafter",
			want: []Token{
				tok(Backtick), tok(Backtick), tok(Backtick), tok(Newline),
				txt("# *x* [y](z)\n"),
				tok(Backtick), tok(Backtick), tok(Backtick), tok(Newline), txt("after"), tok(EOF),
			},
		},
		{
			name:  "closing fence must be alone on its line",
			input: "```\na ```\n````\n```\n",
			want: []Token{
				tok(Backtick), tok(Backtick), tok(Backtick), tok(Newline),
				txt("a ```\n````\n"),
				tok(Backtick), tok(Backtick), tok(Backtick), tok(Newline), tok(EOF),
			},
		},
		{
			name:  "unterminated fence runs to end",
			input: "```go\nx := 1\n",
			want: []Token{
				tok(Backtick), tok(Backtick), tok(Backtick), txt("go"), tok(Newline),
				txt("x := 1\n"), tok(EOF),
			},
		},
		{
			name:  "fence header without newline",
			input: "```go",
			want:  []Token{tok(Backtick), tok(Backtick), tok(Backtick), txt("go"), tok(EOF)},
		},
		{
			name:  "two backticks are plain punctuation",
			input: "``a",
			want:  []Token{tok(Backtick), tok(Backtick), txt("a"), tok(EOF)},
		},
		{
			name:  "tab indentation",
			input: "\t- b",
			want:  []Token{tok(Tab), tok(Dash), txt(" b"), tok(EOF)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Tokenize(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenize_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain text only",
		"# Title\n\nSome *em* and **strong** and ***both***.\n",
		"- a\n\t- b\n\t\t- c\n- d\n",
		"1. one\n2. two\n10. ten\n",
		"```\nunterminated",
		"```js\nconst a = `x`;\n```\n\ntrailing ``` inline",
		"[label](https://example.com/a_(b)) and [[Note Name]] and ![[img.png]]",
		"\\escaped \\* > quote ! bang",
		"tabs\tin\tthe\tmiddle\n\n\n",
		"unicode: héllo wörld 日本語 1２3",
		"---\n***\n- - -\n",
		"`code` `unterminated",
		"```",
		"``",
		"a\r\nb",
	}

	for _, in := range inputs {
		got := Join(Tokenize(in))
		if got != in {
			t.Errorf("Join(Tokenize(%q)) = %q, want original", in, got)
		}
	}
}

func TestTokenize_EndsWithEOF(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "a", "```", "1", "\n"} {
		toks := Tokenize(in)
		if len(toks) == 0 || toks[len(toks)-1].Kind != EOF {
			t.Errorf("Tokenize(%q) does not end with EOF: %v", in, toks)
		}
		for _, tk := range toks[:len(toks)-1] {
			if tk.Kind == EOF {
				t.Errorf("Tokenize(%q) has EOF before the end", in)
			}
		}
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	if got := Backtick.String(); got != "Backtick" {
		t.Errorf("Backtick.String() = %q, want %q", got, "Backtick")
	}
	if got := Kind(99).String(); got != "Kind(?)" {
		t.Errorf("Kind(99).String() = %q, want %q", got, "Kind(?)")
	}
}
