package main

// Notes:
// - loadEnvConfig: we test every MD2SITE_* variable and that malformed
//   worker counts are ignored, not errors.
// - warnUnknownEnvVars: we test typo detection and that known vars don't warn.
// - applyEnvConfig: we test that set values override the config file and
//   that a highlight style enables highlighting.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-md2site/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		"MD2SITE_CONFIG":          "/path/to/site.yaml",
		"MD2SITE_OUTPUT_DIR":      "public",
		"MD2SITE_BASE_URL":        "https://notes.test",
		"MD2SITE_SOFT_BREAK":      "newline",
		"MD2SITE_HIGHLIGHT_STYLE": "monokai",
		"MD2SITE_WORKERS":         "6",
	}
	got := loadEnvConfig(func(k string) string { return vars[k] })

	want := &envConfig{
		ConfigPath:     "/path/to/site.yaml",
		OutputDir:      "public",
		BaseURL:        "https://notes.test",
		SoftBreak:      "newline",
		HighlightStyle: "monokai",
		Workers:        6,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loadEnvConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvConfig_InvalidWorkers(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"abc", "-2", "0", "1.5"} {
		t.Run(v, func(t *testing.T) {
			t.Parallel()

			got := loadEnvConfig(func(k string) string {
				if k == "MD2SITE_WORKERS" {
					return v
				}
				return ""
			})
			if got.Workers != 0 {
				t.Errorf("Workers = %d, want 0 for %q", got.Workers, v)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"MD2SITE_BASEURL=https://x.test",
		"MD2SITE_OUTPUT_DIR=public",
		"HOME=/root",
		"MD2SITE_WORKER=2",
	})

	out := buf.String()
	for _, want := range []string{"MD2SITE_BASEURL", "MD2SITE_WORKER "} {
		if !strings.Contains(out, want) {
			t.Errorf("output should warn about %q, got %q", want, out)
		}
	}
	for _, unwanted := range []string{"MD2SITE_OUTPUT_DIR", "HOME"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("output should not mention %q, got %q", unwanted, out)
		}
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env overrides config
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty env keeps config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(&envConfig{}, cfg)
		if diff := cmp.Diff(config.DefaultConfig(), cfg); diff != "" {
			t.Errorf("config changed (-want +got):\n%s", diff)
		}
	})

	t.Run("set values override config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Build.OutputDir = "from-file"
		applyEnvConfig(&envConfig{
			OutputDir:      "from-env",
			BaseURL:        "https://notes.test",
			SoftBreak:      "break",
			HighlightStyle: "monokai",
			Workers:        2,
		}, cfg)

		if cfg.Build.OutputDir != "from-env" {
			t.Errorf("Build.OutputDir = %q, want from-env", cfg.Build.OutputDir)
		}
		if cfg.BaseURL != "https://notes.test" || cfg.Render.SoftBreak != "break" || cfg.Build.Workers != 2 {
			t.Errorf("config = %+v", cfg)
		}
		if !cfg.Render.Highlight || cfg.Render.HighlightStyle != "monokai" {
			t.Errorf("Render = %+v, want highlighting enabled with monokai", cfg.Render)
		}
	})
}
