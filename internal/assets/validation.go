package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that a layout, component or style name maps to a
// single file inside its asset directory. Names with path separators or dots
// are rejected, so neither traversal nor a second extension can slip through.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// ValidateComponentName is ValidateAssetName for components, which may live
// in subdirectories: "nav/top" names components/nav/top.html. Every segment
// must itself be a valid asset name.
func ValidateComponentName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	for _, seg := range strings.Split(name, "/") {
		if err := ValidateAssetName(seg); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
