package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2site/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultName is the config name looked up when none is given.
const DefaultName = "md2site"

// Field length limits.
const (
	MaxURLLength         = 2048 // Browser limit
	MaxTitleLength       = 200  // Site title
	MaxDescriptionLength = 500  // Site description / feed description
	MaxLanguageLength    = 35   // BCP 47 tag
	MaxLayoutLength      = 100  // Layout file name
	MaxSlugLength        = 200  // Output page slug
	MaxDateFormatLength  = 50   // "DD/MM/YYYY" or preset name
	MaxPathLength        = 4096 // Output / static / templates dirs
	MaxParamLength       = 2000 // Free-form params value
	MaxWorkers           = 32   // Worker pool upper bound
)

// Markup names accepted by the markup setting.
const (
	MarkupNative     = "native"
	MarkupCommonMark = "commonmark"
)

// Config holds all configuration for a site build.
type Config struct {
	BaseURL         string            `yaml:"base_url" json:"base_url"`
	SiteTitle       string            `yaml:"site_title" json:"site_title"`
	SiteDescription string            `yaml:"site_description" json:"site_description"`
	Language        string            `yaml:"language" json:"language"`
	DefaultLayout   string            `yaml:"default_layout" json:"default_layout"`
	PostListLayout  string            `yaml:"post_list_layout" json:"post_list_layout"`
	AllPostsSlug    string            `yaml:"all_posts_slug" json:"all_posts_slug"`
	AllPostsTitle   string            `yaml:"all_posts_title" json:"all_posts_title"`
	CategorySlugs   map[string]string `yaml:"category_slugs" json:"category_slugs"`
	DateFormat      string            `yaml:"date_format" json:"date_format"`
	Markup          string            `yaml:"markup" json:"markup"`
	Build           BuildConfig       `yaml:"build" json:"build"`
	Render          RenderConfig      `yaml:"render" json:"render"`
	Feed            FeedConfig        `yaml:"feed" json:"feed"`
	Sitemap         bool              `yaml:"sitemap" json:"sitemap"`
	Params          map[string]string `yaml:"params" json:"params"`
}

// BuildConfig defines source and output locations.
type BuildConfig struct {
	OutputDir    string `yaml:"output_dir" json:"output_dir"`       // Relative to the site root unless absolute
	StaticDir    string `yaml:"static_dir" json:"static_dir"`       // Copied verbatim to the output root
	TemplatesDir string `yaml:"templates_dir" json:"templates_dir"` // Custom layouts and components
	Cache        bool   `yaml:"cache" json:"cache"`                 // Skip unchanged documents
	Workers      int    `yaml:"workers" json:"workers"`             // 0 = auto
}

// RenderConfig defines HTML rendering options.
type RenderConfig struct {
	SoftBreak      string `yaml:"soft_break" json:"soft_break"` // "space", "newline", "break"
	Highlight      bool   `yaml:"highlight" json:"highlight"`
	HighlightStyle string `yaml:"highlight_style" json:"highlight_style"` // chroma style name
}

// FeedConfig defines RSS feed options.
type FeedConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	Limit   int  `yaml:"limit" json:"limit"` // Items in the feed (default: 20)
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., library users, CLI overrides).
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"base_url", c.BaseURL, MaxURLLength},
		{"site_title", c.SiteTitle, MaxTitleLength},
		{"site_description", c.SiteDescription, MaxDescriptionLength},
		{"language", c.Language, MaxLanguageLength},
		{"default_layout", c.DefaultLayout, MaxLayoutLength},
		{"post_list_layout", c.PostListLayout, MaxLayoutLength},
		{"all_posts_slug", c.AllPostsSlug, MaxSlugLength},
		{"all_posts_title", c.AllPostsTitle, MaxTitleLength},
		{"date_format", c.DateFormat, MaxDateFormatLength},
		{"build.output_dir", c.Build.OutputDir, MaxPathLength},
		{"build.static_dir", c.Build.StaticDir, MaxPathLength},
		{"build.templates_dir", c.Build.TemplatesDir, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: base_url: %q is not an absolute URL", ErrInvalidValue, c.BaseURL)
		}
	}

	for _, layout := range []struct{ name, value string }{
		{"default_layout", c.DefaultLayout},
		{"post_list_layout", c.PostListLayout},
	} {
		if strings.ContainsAny(layout.value, "/\\.") {
			return fmt.Errorf("%w: %s: %q must be a bare layout name", ErrInvalidValue, layout.name, layout.value)
		}
	}

	if err := validateSlug("all_posts_slug", c.AllPostsSlug); err != nil {
		return err
	}
	for dir, slug := range c.CategorySlugs {
		if dir == "" || strings.ContainsAny(dir, "/\\") {
			return fmt.Errorf("%w: category_slugs: %q must be a top-level directory name", ErrInvalidValue, dir)
		}
		if slug == "" {
			return fmt.Errorf("%w: category_slugs.%s: empty slug", ErrInvalidValue, dir)
		}
		if err := validateSlug("category_slugs."+dir, slug); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Markup) {
	case "", MarkupNative, MarkupCommonMark:
		// valid
	default:
		return fmt.Errorf("%w: markup: %q (must be native or commonmark)", ErrInvalidValue, c.Markup)
	}

	switch strings.ToLower(c.Render.SoftBreak) {
	case "", "space", "newline", "break", "br":
		// valid
	default:
		return fmt.Errorf("%w: render.soft_break: %q (must be space, newline, or break)", ErrInvalidValue, c.Render.SoftBreak)
	}

	if c.Feed.Limit < 0 {
		return fmt.Errorf("%w: feed.limit: must be >= 0, got %d", ErrInvalidValue, c.Feed.Limit)
	}
	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Build.Workers)
	}

	for k, v := range c.Params {
		if err := validateFieldLength("params."+k, v, MaxParamLength); err != nil {
			return err
		}
	}

	return nil
}

// Normalize trims values that would otherwise produce doubled separators.
func (c *Config) Normalize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.Markup = strings.ToLower(c.Markup)
	c.AllPostsSlug = strings.Trim(c.AllPostsSlug, "/")
	for dir, slug := range c.CategorySlugs {
		c.CategorySlugs[dir] = strings.Trim(slug, "/")
	}
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateSlug rejects slugs that would write outside the output directory.
func validateSlug(fieldName, slug string) error {
	if strings.Contains(slug, "..") || strings.ContainsAny(slug, "\\") || filepath.IsAbs(slug) {
		return fmt.Errorf("%w: %s: %q escapes the output directory", ErrInvalidValue, fieldName, slug)
	}
	return nil
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		SiteTitle:      "My Site",
		Language:       "en",
		DefaultLayout:  "post",
		PostListLayout: "list",
		AllPostsSlug:   "posts",
		AllPostsTitle:  "All posts",
		CategorySlugs:  map[string]string{},
		DateFormat:     "",
		Markup:         MarkupNative,
		Build: BuildConfig{
			OutputDir:    "ssg_output",
			StaticDir:    "static",
			TemplatesDir: "templates",
			Cache:        true,
		},
		Render: RenderConfig{
			SoftBreak: "space",
		},
		Feed: FeedConfig{
			Enabled: true,
			Limit:   20,
		},
		Sitemap: true,
		Params:  map[string]string{},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in searchDirs, then
// in the standard locations. Keys absent from the file keep their defaults.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string, searchDirs ...string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath, searchDirs)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name.
// Tries extensions in order: .yaml, .yml, .json
// Tries locations in order: searchDirs, current directory, ~/.config/go-md2site/
func resolveConfigPath(name string, searchDirs []string) (string, error) {
	extensions := []string{".yaml", ".yml", ".json"}

	dirs := append([]string{}, searchDirs...)
	dirs = append(dirs, "")
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, "go-md2site"))
	}

	triedPaths := make([]string, 0, len(extensions)*len(dirs))
	for _, dir := range dirs {
		for _, ext := range extensions {
			path := filepath.Join(dir, name+ext)
			if fileExists(path) {
				return path, nil
			}
			triedPaths = append(triedPaths, path)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
