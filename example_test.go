package md2site_test

import (
	"context"
	"fmt"

	"github.com/alnah/go-md2site"
)

// Example compiles a note to an HTML fragment.
func Example() {
	c := md2site.New()

	out, err := c.Compile(context.Background(), md2site.Input{
		Markdown: "---\ntitle: Hello\n---\n# Hello\n\nThis is **a note**.",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(out.Title)
	fmt.Print(out.HTML)
	// Output:
	// Hello
	// <h1>Hello</h1>
	// <p>This is <strong>a note</strong>.</p>
}

type notes map[string]string

func (n notes) LookupPath(rel string) (string, bool) {
	out, ok := n[rel]
	return out, ok
}

func (n notes) LookupName(name string) (string, bool) {
	out, ok := n[name]
	return out, ok
}

// Example_noteLinks resolves note-links through a Resolver.
func Example_noteLinks() {
	c := md2site.New(md2site.WithResolver(notes{
		"idea.md": "notes/idea.html",
	}))

	out, err := c.Compile(context.Background(), md2site.Input{
		Markdown: "See [[idea]] and [[missing]].",
		Path:     "index.html",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Print(out.HTML)
	// Output: <p>See <a href="notes/idea.html">idea</a> and <a href="#">missing</a>.</p>
}

// Example_softBreak keeps line breaks inside paragraphs.
func Example_softBreak() {
	c := md2site.New(md2site.WithSoftBreak(md2site.SoftBreakHTML))

	out, err := c.Compile(context.Background(), md2site.Input{
		Markdown: "Roses are red\nViolets are blue",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Print(out.HTML)
	// Output:
	// <p>Roses are red<br>
	// Violets are blue</p>
}
