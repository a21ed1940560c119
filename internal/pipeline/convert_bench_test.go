//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// BenchmarkToHTML compares both converters on the same inputs.
func BenchmarkToHTML(b *testing.B) {
	converters := map[string]HTMLConverter{
		"native":   NewNativeConverter(Options{}),
		"goldmark": NewGoldmarkConverter(Options{}),
	}
	inputs := []struct {
		name    string
		content string
	}{
		{"minimal", "# Hello\n\nWorld"},
		{"paragraph", strings.Repeat("This is a paragraph with some text.\n\n", 10)},
		{"headings", generateHeadingsMarkdown(20)},
		{"code_blocks", generateCodeBlocksMarkdown(10)},
		{"mixed_small", generateMixedMarkdown(10)},
		{"mixed_large", generateMixedMarkdown(200)},
	}

	ctx := context.Background()
	for convName, converter := range converters {
		for _, input := range inputs {
			in := Input{Output: "bench.html", Content: input.content}
			b.Run(convName+"/"+input.name, func(b *testing.B) {
				b.ReportAllocs()
				for b.Loop() {
					if _, err := converter.ToHTML(ctx, in); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkNativeToHTMLParallel benchmarks concurrent conversion, as done
// by the build worker pool.
func BenchmarkNativeToHTMLParallel(b *testing.B) {
	converter := NewNativeConverter(Options{})
	ctx := context.Background()
	in := Input{Output: "bench.html", Content: generateMixedMarkdown(20)}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := converter.ToHTML(ctx, in); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkSyntaxHighlighting benchmarks chroma highlighting in the native renderer.
func BenchmarkSyntaxHighlighting(b *testing.B) {
	converter := NewNativeConverter(Options{Highlight: true})
	ctx := context.Background()

	for _, lang := range []string{"go", "python", "javascript", "rust", "sql"} {
		in := Input{Output: "bench.html", Content: generateCodeBlockWithLanguage(lang, 50)}
		b.Run(lang, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := converter.ToHTML(ctx, in); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// Helper functions for generating benchmark input

func generateHeadingsMarkdown(count int) string {
	var sb strings.Builder
	for i := range count {
		level := (i % 3) + 1
		sb.WriteString(strings.Repeat("#", level))
		fmt.Fprintf(&sb, " Heading %d\n\n", i+1)
		sb.WriteString("Some content under this heading.\n\n")
	}
	return sb.String()
}

func generateCodeBlocksMarkdown(count int) string {
	var sb strings.Builder
	code := `func example() {
    fmt.Println("Hello, World!")
    for i := 0; i < 10; i++ {
        process(i)
    }
}`
	for range count {
		sb.WriteString("## Code Example\n\n")
		sb.WriteString("```go\n")
		sb.WriteString(code)
		sb.WriteString("\n```\n\n")
	}
	return sb.String()
}

func generateCodeBlockWithLanguage(lang string, lines int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "```%s\n", lang)
	for i := range lines {
		fmt.Fprintf(&sb, "// Line %d of code\n", i+1)
		sb.WriteString("func example() { return nil }\n")
	}
	sb.WriteString("```\n")
	return sb.String()
}

func generateMixedMarkdown(sections int) string {
	var sb strings.Builder
	sb.WriteString("# Document Title\n\n")
	sb.WriteString("Introduction paragraph with **bold** and *italic* text.\n\n")

	for i := range sections {
		fmt.Fprintf(&sb, "## Section %d\n\n", i+1)
		sb.WriteString("This is a paragraph with some content. ")
		sb.WriteString("It includes [links](https://example.com), [[a note]] and `inline code`.\n\n")

		sb.WriteString("- Item one\n")
		sb.WriteString("- Item two\n")
		sb.WriteString("- Item three\n\n")

		if i%3 == 0 {
			sb.WriteString("```go\nfunc main() {\n    fmt.Println(\"Hello\")\n}\n```\n\n")
		}
	}

	return sb.String()
}
