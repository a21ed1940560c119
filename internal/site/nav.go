package site

import (
	"fmt"
	"html"
	"maps"
	"path"
	"slices"
	"strings"
)

// PageURL returns the site-absolute URL of an output path.
func PageURL(baseURL, output string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(output, "/")
}

// Breadcrumb renders the trail from the home page to slug:
// `<a href="/">Home</a> &gt; notes &gt; idea`.
func Breadcrumb(baseURL, slug string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<a href="%s">Home</a>`, html.EscapeString(PageURL(baseURL, "")))
	for seg := range strings.SplitSeq(strings.Trim(slug, "/"), "/") {
		if seg == "" {
			continue
		}
		b.WriteString(" &gt; ")
		b.WriteString(html.EscapeString(seg))
	}
	return b.String()
}

// navNode is a directory or document in the sidebar tree.
type navNode struct {
	name     string
	doc      *Document
	children map[string]*navNode
}

func (n *navNode) child(name string) *navNode {
	if n.children == nil {
		n.children = make(map[string]*navNode)
	}
	c, ok := n.children[name]
	if !ok {
		c = &navNode{name: name}
		n.children[name] = c
	}
	return c
}

// Sidebar renders the documents of tree as nested lists. Directories that
// hold no documents are omitted. dirLinks maps a directory path to the
// output path of its listing page; linked directories become anchors.
func Sidebar(tree *Tree, baseURL string, dirLinks map[string]string) string {
	root := &navNode{}
	for i := range tree.Documents {
		doc := &tree.Documents[i]
		n := root
		if dir := doc.Dir(); dir != "" {
			for seg := range strings.SplitSeq(dir, "/") {
				n = n.child(seg + "/")
			}
		}
		n.child(path.Base(doc.Source)).doc = doc
	}

	var b strings.Builder
	writeNav(&b, root, "", baseURL, dirLinks)
	return b.String()
}

func writeNav(b *strings.Builder, n *navNode, dir, baseURL string, dirLinks map[string]string) {
	if len(n.children) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, key := range slices.Sorted(maps.Keys(n.children)) {
		c := n.children[key]
		if c.doc != nil {
			fmt.Fprintf(b, "<li><a href=\"%s\">%s</a></li>\n",
				html.EscapeString(PageURL(baseURL, c.doc.Output)), html.EscapeString(c.doc.Name))
			continue
		}

		name := strings.TrimSuffix(c.name, "/")
		sub := path.Join(dir, name)
		if out, ok := dirLinks[sub]; ok {
			fmt.Fprintf(b, "<li><a href=\"%s\">%s</a>\n", html.EscapeString(PageURL(baseURL, out)), html.EscapeString(name))
		} else {
			fmt.Fprintf(b, "<li>%s\n", html.EscapeString(name))
		}
		writeNav(b, c, sub, baseURL, dirLinks)
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
}
