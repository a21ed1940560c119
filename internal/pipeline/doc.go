// Package pipeline turns one document body into an HTML fragment.
//
// The stages are:
//   - Source preprocessing (line ending and byte order mark normalization)
//   - Conversion, either with the native note dialect (tokenizer, parser,
//     renderer) or with Goldmark for plain CommonMark sources
//   - URL rewriting of Goldmark output against the site base URL
//
// Template expansion and file output are handled by the build package, which
// runs one pipeline per document on its worker pool.
package pipeline
