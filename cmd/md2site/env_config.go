package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-md2site/internal/config"
)

// envPrefix is shared by every recognized environment variable.
const envPrefix = "MD2SITE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string // MD2SITE_CONFIG: config file name or path
	OutputDir      string // MD2SITE_OUTPUT_DIR: build.output_dir
	BaseURL        string // MD2SITE_BASE_URL: base_url
	SoftBreak      string // MD2SITE_SOFT_BREAK: render.soft_break
	HighlightStyle string // MD2SITE_HIGHLIGHT_STYLE: render.highlight_style, enables highlighting
	Workers        int    // MD2SITE_WORKERS: build.workers
}

// knownEnvVars lists valid MD2SITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2SITE_CONFIG":          true,
	"MD2SITE_OUTPUT_DIR":      true,
	"MD2SITE_BASE_URL":        true,
	"MD2SITE_SOFT_BREAK":      true,
	"MD2SITE_HIGHLIGHT_STYLE": true,
	"MD2SITE_WORKERS":         true,
}

// loadEnvConfig reads configuration through getenv.
// Malformed numbers are ignored so a stray value cannot abort a build.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:     getenv("MD2SITE_CONFIG"),
		OutputDir:      getenv("MD2SITE_OUTPUT_DIR"),
		BaseURL:        getenv("MD2SITE_BASE_URL"),
		SoftBreak:      getenv("MD2SITE_SOFT_BREAK"),
		HighlightStyle: getenv("MD2SITE_HIGHLIGHT_STYLE"),
	}

	if workers := getenv("MD2SITE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized MD2SITE_* variable.
// Helps catch typos like MD2SITE_BASEURL instead of MD2SITE_BASE_URL.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overlays set environment values onto cfg.
// Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by mergeBuildFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.Build.OutputDir = env.OutputDir
	}
	if env.BaseURL != "" {
		cfg.BaseURL = env.BaseURL
	}
	if env.SoftBreak != "" {
		cfg.Render.SoftBreak = env.SoftBreak
	}
	if env.HighlightStyle != "" {
		cfg.Render.HighlightStyle = env.HighlightStyle
		cfg.Render.Highlight = true
	}
	if env.Workers > 0 {
		cfg.Build.Workers = env.Workers
	}
}
