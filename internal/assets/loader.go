package assets

// AssetLoader defines the contract for loading layouts, components and styles.
// Every AssetLoader also satisfies template.Loader.
type AssetLoader interface {
	// LoadLayout loads a page layout by name (without .html extension).
	// Returns ErrLayoutNotFound if the layout doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadLayout(name string) (string, error)

	// LoadComponent loads a component fragment by name (without .html extension).
	// Returns ErrComponentNotFound if the component doesn't exist.
	LoadComponent(name string) (string, error)

	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)
}
