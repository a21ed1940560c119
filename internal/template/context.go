package template

import (
	"maps"
	"slices"
)

// Well-known context keys.
const (
	KeyBaseURL         = "base_url"
	KeySiteTitle       = "site_title"
	KeySiteDescription = "site_description"
	KeyLanguage        = "language"
	KeySidebar         = "sidebar_list"
	KeyBuildDate       = "build_date"
	KeyHomeURL         = "home_url"
	KeyStylesheets     = "stylesheets"
	KeyTitle           = "title"
	KeyBreadcrumb      = "breadcrumb"
	KeyPostContent     = "post_content"
	KeyContent         = "content"
	KeySlug            = "slug"
	KeyPageURL         = "page_url"
	KeyDateDisplay     = "date_display"
	KeyListTitle       = "list_title"
	KeyPostList        = "post_list_content"
	KeyCardTitle       = "card_item_title"
	KeyCardLink        = "card_item_link"
	KeyCardContent     = "card_item_content"
)

// Context maps placeholder keys to values. Later writes overwrite earlier ones.
// A Context is not safe for concurrent writes; give each document its own.
type Context map[string]string

// NewContext returns an empty context.
func NewContext() Context {
	return make(Context)
}

// Set stores value under key.
func (c Context) Set(key, value string) {
	c[key] = value
}

// Get returns the value for key.
func (c Context) Get(key string) (string, bool) {
	v, ok := c[key]
	return v, ok
}

// Clone returns an independent copy of c.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	maps.Copy(out, c)
	return out
}

// Merge copies every entry of other into c; other wins on conflict.
func (c Context) Merge(other Context) {
	maps.Copy(c, other)
}

// Keys returns the keys in sorted order.
func (c Context) Keys() []string {
	return slices.Sorted(maps.Keys(c))
}

// Layered returns a new context holding global overlaid with doc,
// so document keys win on conflict. Neither input is modified.
func Layered(global, doc Context) Context {
	out := global.Clone()
	out.Merge(doc)
	return out
}
