package assets

// Built-in asset names.
const (
	// BaseLayout wraps every page.
	BaseLayout = "base"

	// DefaultPostLayout renders a single document.
	DefaultPostLayout = "post"

	// DefaultListLayout renders category and all-posts pages.
	DefaultListLayout = "list"

	// CardComponent renders one entry of a post list.
	CardComponent = "card"

	// DefaultStyleName is the built-in site stylesheet.
	DefaultStyleName = "site"
)

// Directory names inside a templates directory.
const (
	layoutDir    = "layout"
	componentDir = "components"
	styleDir     = "styles"
)
