// Package assets provides the HTML layouts, components and CSS a site is
// rendered with.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (default theme)
//	    ├── FilesystemLoader  - loads from the site's templates directory
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the site builder. A site overrides a
// single layout or component by placing a file of the same name in its
// templates directory; everything else comes from the embedded theme.
//
// # Directory Structure
//
//	{templates}/
//	├── layout/
//	│   └── {name}.html      # base, post, list, ...
//	├── components/
//	│   └── {name}.html      # card, header, footer, ...
//	└── styles/
//	    └── {name}.css       # site
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
