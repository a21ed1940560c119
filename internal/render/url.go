package render

import (
	"path"
	"regexp"
	"strings"
)

// schemePattern matches a URL scheme such as "https:" or "mailto:".
var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:`)

// IsAbsoluteURL reports whether target carries a scheme or is protocol-relative.
func IsAbsoluteURL(target string) bool {
	return strings.HasPrefix(target, "//") || schemePattern.MatchString(target)
}

// ResolveURL prefixes a non-absolute target with baseURL.
//
// Anchors ("#", "#id") and absolute URLs are returned unchanged, as is every
// target when baseURL is empty. A root-relative target ("/x") is appended to
// baseURL; a document-relative one is first resolved against the directory
// of source.
func ResolveURL(baseURL, source, target string) string {
	if baseURL == "" || target == "" || strings.HasPrefix(target, "#") || IsAbsoluteURL(target) {
		return target
	}

	base := strings.TrimSuffix(baseURL, "/")
	if strings.HasPrefix(target, "/") {
		return base + target
	}

	resolved := path.Clean(path.Join(path.Dir(source), target))
	resolved = strings.TrimPrefix(resolved, "/")
	for strings.HasPrefix(resolved, "../") {
		resolved = strings.TrimPrefix(resolved, "../")
	}
	if resolved == "." || resolved == ".." {
		return base + "/"
	}
	return base + "/" + resolved
}
