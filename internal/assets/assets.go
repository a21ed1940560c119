package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadLayout loads a built-in layout by name.
// Returns ErrLayoutNotFound if the layout does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadLayout(name string) (string, error) {
	return defaultLoader.LoadLayout(name)
}

// LoadComponent loads a built-in component by name.
func LoadComponent(name string) (string, error) {
	return defaultLoader.LoadComponent(name)
}

// LoadStyle loads a built-in CSS file by name.
// The name should not include the .css extension or path components.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}
