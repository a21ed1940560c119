package assets

import (
	"embed"
	"fmt"
)

//go:embed styles/*
var styles embed.FS

//go:embed templates
var templates embed.FS

// EmbeddedLoader loads assets from the embedded default theme.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadLayout loads a layout from embedded assets by name.
func (e *EmbeddedLoader) LoadLayout(name string) (string, error) {
	return readEmbedded(templates, "templates/"+layoutDir, name, ".html", ValidateAssetName, ErrLayoutNotFound)
}

// LoadComponent loads a component from embedded assets by name.
func (e *EmbeddedLoader) LoadComponent(name string) (string, error) {
	return readEmbedded(templates, "templates/"+componentDir, name, ".html", ValidateComponentName, ErrComponentNotFound)
}

// LoadStyle loads a CSS style from embedded assets by name.
// The name should not include the .css extension.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readEmbedded(styles, styleDir, name, ".css", ValidateAssetName, ErrStyleNotFound)
}

func readEmbedded(fsys embed.FS, dir, name, ext string, validate func(string) error, notFound error) (string, error) {
	if err := validate(name); err != nil {
		return "", err
	}

	content, err := fsys.ReadFile(dir + "/" + name + ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}

	return string(content), nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
