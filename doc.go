// Package md2site compiles Markdown notes to HTML.
//
// # Quick Start
//
// Create a compiler and compile one document:
//
//	c := md2site.New()
//	out, err := c.Compile(ctx, md2site.Input{
//	    Markdown: "# Hello\n\nSee [[other note]].",
//	    Path:     "notes/hello.html",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out.HTML)
//
// The result holds the HTML fragment of the body (out.HTML), the front
// matter (out.Meta) and the document title (out.Title). Layouts are applied
// by the site builder, not by Compile.
//
// # Dialect
//
// The default dialect is a Markdown subset for notes:
//
//   - ATX headings, paragraphs, block quotes, fenced code blocks
//   - ordered and unordered lists, horizontal rules
//   - *emphasis*, **strong**, `code`, [links](url), ![images](src)
//   - [[note-links]] and ![[embeds]] resolved through a Resolver
//
// Malformed constructs never fail: they fall back to literal text. A
// document can opt into CommonMark with GitHub extensions by setting
// "markup: commonmark" in its front matter, or every document can with
// WithMarkup.
//
// # Note-links
//
// A note-link names another document by path ("[[notes/idea]]") or by base
// name ("[[idea]]"). The Resolver maps both to output paths. Without a
// Resolver every note-link points to "#".
//
//	c := md2site.New(md2site.WithResolver(graph))
//
// # Configuration
//
// Use functional options to customize the compiler:
//
//	c := md2site.New(
//	    md2site.WithBaseURL("https://notes.example"),
//	    md2site.WithSoftBreak(md2site.SoftBreakHTML),
//	    md2site.WithHighlight("github"),
//	)
//
// A Compiler is safe for concurrent use.
//
// # Sites
//
// Building a whole site (templates, listing pages, feeds, incremental
// builds, watch mode) is done by the md2site command:
//
//	md2site build ./notes -o ./public
package md2site
