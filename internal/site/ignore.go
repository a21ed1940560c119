package site

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// IgnoreFile is the per-site list of ignored path prefixes.
const IgnoreFile = ".ssgignore"

// Ignore decides which source paths take no part in the build. It is an
// immutable value; build it once and pass it to every consumer.
type Ignore struct {
	prefixes []string
}

// NewIgnore returns a predicate for the given path prefixes. Prefixes are
// slash-separated and relative to the site root.
func NewIgnore(prefixes ...string) Ignore {
	var out []string
	for _, p := range prefixes {
		if p = cleanPattern(p); p != "" {
			out = append(out, p)
		}
	}
	return Ignore{prefixes: out}
}

// LoadIgnore reads root/.ssgignore, if present, and adds extra prefixes
// such as the output and templates directories. Blank lines and lines
// starting with '#' are skipped.
func LoadIgnore(root string, extra ...string) (Ignore, error) {
	patterns := append([]string{}, extra...)

	f, err := os.Open(filepath.Join(root, IgnoreFile)) // #nosec G304 -- fixed name under the site root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewIgnore(patterns...), nil
		}
		return Ignore{}, fmt.Errorf("reading %s: %w", IgnoreFile, err)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := sc.Err(); err != nil {
		return Ignore{}, fmt.Errorf("reading %s: %w", IgnoreFile, err)
	}
	return NewIgnore(patterns...), nil
}

func cleanPattern(p string) string {
	p = filepath.ToSlash(strings.TrimSpace(p))
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	if p == "" || p == "." {
		return ""
	}
	return p
}

// Match reports whether rel is ignored: any segment starts with a dot, or
// rel starts with one of the prefixes.
func (ig Ignore) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	if rel == "" || rel == "." {
		return false
	}
	for seg := range strings.SplitSeq(rel, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	for _, p := range ig.prefixes {
		if strings.HasPrefix(rel, p) {
			return true
		}
		// "drafts/" also covers the directory entry "drafts" itself.
		if strings.HasSuffix(p, "/") && rel == strings.TrimSuffix(p, "/") {
			return true
		}
	}
	return false
}

// Prefixes returns the configured prefixes.
func (ig Ignore) Prefixes() []string {
	return append([]string(nil), ig.prefixes...)
}

// relTo returns target relative to root as a slash path when target lies
// inside root, or "" otherwise.
func relTo(root, target string) string {
	if target == "" {
		return ""
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return path.Clean(filepath.ToSlash(rel)) + "/"
}

// BuildDirs returns the ignore prefixes for generated and template
// directories that live inside root.
func BuildDirs(root string, dirs ...string) []string {
	var out []string
	for _, d := range dirs {
		if rel := relTo(root, d); rel != "" {
			out = append(out, rel)
		}
	}
	return out
}
