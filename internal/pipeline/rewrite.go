package pipeline

import (
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-md2site/internal/render"
)

// RewriteURLs applies the site URL rules to img[src] and a[href] in an HTML
// fragment produced outside the native renderer:
//   - relative links to ".md" files point at the ".html" output instead
//   - non-absolute targets are prefixed with baseURL, resolved against
//     the directory of output
//
// Anchors and absolute URLs are left alone, as are other elements
// (script, video, srcset).
func RewriteURLs(htmlContent, baseURL, output string) (string, error) {
	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}
	rewriteNode(doc, baseURL, output)
	return renderHTML(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only renders the children (avoids adding <html><body> wrapper).
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node, baseURL, output string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", baseURL, output, false)
		case atom.A:
			rewriteAttr(n, "href", baseURL, output, true)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, baseURL, output)
	}
}

func rewriteAttr(n *html.Node, attrName, baseURL, output string, isLink bool) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || attr.Val == "" {
			continue
		}
		val := attr.Val
		if isLink {
			val = markdownToHTMLPath(val)
		}
		n.Attr[i].Val = render.ResolveURL(baseURL, output, val)
	}
}

// markdownToHTMLPath maps "notes/a.md#x" to "notes/a.html#x" for relative targets.
func markdownToHTMLPath(target string) string {
	if strings.HasPrefix(target, "#") || render.IsAbsoluteURL(target) {
		return target
	}
	p, frag, hasFrag := strings.Cut(target, "#")
	if !strings.EqualFold(path.Ext(p), ".md") {
		return target
	}
	p = p[:len(p)-len(".md")] + ".html"
	if hasFrag {
		return p + "#" + frag
	}
	return p
}
