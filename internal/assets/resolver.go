package assets

import (
	"errors"
	"io"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the asset is not found in the custom location.
type AssetResolver struct {
	custom   *FilesystemLoader // nil if no templates directory
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// If customBasePath is set, custom assets take precedence with fallback to embedded.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadLayout loads a layout, trying the custom loader first if available.
func (r *AssetResolver) LoadLayout(name string) (string, error) {
	return r.loadWithFallback(func(loader AssetLoader) (string, error) {
		return loader.LoadLayout(name)
	})
}

// LoadComponent loads a component, trying the custom loader first if available.
func (r *AssetResolver) LoadComponent(name string) (string, error) {
	return r.loadWithFallback(func(loader AssetLoader) (string, error) {
		return loader.LoadComponent(name)
	})
}

// LoadStyle loads a CSS style, trying the custom loader first if available.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.loadWithFallback(func(loader AssetLoader) (string, error) {
		return loader.LoadStyle(name)
	})
}

// loadWithFallback implements the custom-first, fallback-to-embedded logic.
func (r *AssetResolver) loadWithFallback(loadFn func(AssetLoader) (string, error)) (string, error) {
	if r.custom == nil {
		return loadFn(r.embedded)
	}

	content, err := loadFn(r.custom)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !isNotFoundError(err) {
		return "", err
	}

	return loadFn(r.embedded)
}

// isNotFoundError checks if the error indicates the asset was not found.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrLayoutNotFound) ||
		errors.Is(err, ErrComponentNotFound) ||
		errors.Is(err, ErrStyleNotFound)
}

// HasCustomLoader returns true if a templates directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// WriteDigest writes the custom templates to w. Embedded assets are fixed
// per binary, so only the custom directory contributes.
func (r *AssetResolver) WriteDigest(w io.Writer) error {
	if r.custom == nil {
		return nil
	}
	return r.custom.WriteDigest(w)
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
