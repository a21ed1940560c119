package site

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// DocumentExt is the extension of compiled source documents.
const DocumentExt = ".md"

// imageExts lists the extensions registered in the graph as images.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".webp": true,
}

// Document is one Markdown source file.
type Document struct {
	Source string // slash path relative to the site root, e.g. "notes/idea.md"
	Slug   string // Source without extension, e.g. "notes/idea"
	Output string // Slug + ".html"
	Name   string // base name without extension, e.g. "idea"
}

// Dir returns the slash directory of the document, "" at the root.
func (d Document) Dir() string {
	if dir := path.Dir(d.Source); dir != "." {
		return dir
	}
	return ""
}

// Image is an image file referenced by note-links and copied to the output.
type Image struct {
	Source string
}

// Tree is the result of scanning a site directory. All slices are sorted by
// source path.
type Tree struct {
	Root      string
	Documents []Document
	Images    []Image
	// Dirs lists every non-ignored directory, slash-separated, excluding the root.
	Dirs []string
}

// NewDocument derives the slug and output path of a source path.
func NewDocument(source string) Document {
	source = filepath.ToSlash(source)
	slug := strings.TrimSuffix(source, DocumentExt)
	return Document{
		Source: source,
		Slug:   slug,
		Output: slug + ".html",
		Name:   path.Base(slug),
	}
}

// Scan walks root and classifies every file not matched by ignore.
func Scan(root string, ignore Ignore) (*Tree, error) {
	tree := &Tree{Root: root}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if ignore.Match(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			tree.Dirs = append(tree.Dirs, rel)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		switch ext := strings.ToLower(path.Ext(rel)); {
		case ext == DocumentExt:
			tree.Documents = append(tree.Documents, NewDocument(rel))
		case imageExts[ext]:
			tree.Images = append(tree.Images, Image{Source: rel})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return tree, nil
}

// IsImage reports whether rel has an image extension.
func IsImage(rel string) bool {
	return imageExts[strings.ToLower(path.Ext(rel))]
}
