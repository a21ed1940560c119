package site

import (
	"slices"
)

// Category is a listing page generated for a mapped directory.
type Category struct {
	Dir       string // slash path of the directory
	Slug      string // output slug, e.g. "all-notes"
	Title     string
	Documents []Document // direct children only
}

// Output returns the listing page path.
func (c Category) Output() string {
	return c.Slug + ".html"
}

// Categories returns a listing for each directory named in slugs that
// directly holds at least one document, ordered by directory path.
func Categories(tree *Tree, slugs map[string]string) []Category {
	var out []Category
	for _, dir := range tree.Dirs {
		slug, ok := slugs[dir]
		if !ok || slug == "" {
			continue
		}
		var docs []Document
		for _, doc := range tree.Documents {
			if doc.Dir() == dir {
				docs = append(docs, doc)
			}
		}
		if len(docs) == 0 {
			continue
		}
		out = append(out, Category{Dir: dir, Slug: slug, Title: dir, Documents: docs})
	}
	slices.SortFunc(out, func(a, b Category) int {
		switch {
		case a.Dir < b.Dir:
			return -1
		case a.Dir > b.Dir:
			return 1
		}
		return 0
	})
	return out
}

// DirLinks maps each category directory to its listing page, as used by Sidebar.
func DirLinks(categories []Category) map[string]string {
	links := make(map[string]string, len(categories))
	for _, c := range categories {
		links[c.Dir] = c.Output()
	}
	return links
}
