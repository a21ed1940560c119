// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"runtime"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2site/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), ".config/go-md2site") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable, or set build.output_dir")
}

// ForLayoutNotFound returns hints for a layout missing from both the site
// templates and the built-in theme.
func ForLayoutNotFound(layout, templatesDir string) string {
	if layout == "" {
		return ""
	}
	return format("create " + filepath.Join(templatesDir, "layout", layout+".html") +
		" or change the layout front matter key")
}

// ForNoDocuments returns hints when a scan finds nothing to build.
func ForNoDocuments(sourceDir string) string {
	return format("no .md files under " + sourceDir + "; check .ssgignore and hidden directories")
}

// ForStyleNotFound returns hints for unknown highlight styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForWatch returns hints for file watcher setup errors.
func ForWatch() string {
	var hints []string
	if runtime.GOOS == "linux" {
		hints = append(hints, "raise fs.inotify.max_user_watches")
	}
	hints = append(hints, "add large directories to .ssgignore")
	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
