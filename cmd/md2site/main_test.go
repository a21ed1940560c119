package main

// Notes:
// - runMain: we test dispatch, usage output and exit codes. Full site
//   builds through runMain are covered in build_test.go.
// - Tests never read the process environment: Getenv and Environ are stubbed.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

// newTestEnv returns an Environment with captured output and the given
// variables as its only environment.
func newTestEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return env, &stdout, &stderr
}

// ---------------------------------------------------------------------------
// TestVersion - Version variable
// ---------------------------------------------------------------------------

func TestVersion(t *testing.T) {
	t.Parallel()

	if Version == "" {
		t.Error("Version should not be empty")
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Main entry point dispatch and output
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage and exits with ExitUsage",
			args:         []string{"md2site"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: md2site"},
		},
		{
			name:         "version command exits 0",
			args:         []string{"md2site", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"md2site " + Version},
		},
		{
			name:         "help command exits 0",
			args:         []string{"md2site", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2site", "Commands:"},
		},
		{
			name:         "help build shows build help",
			args:         []string{"md2site", "help", "build"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2site build"},
		},
		{
			name:         "build --help exits 0",
			args:         []string{"md2site", "build", "--help"},
			wantCode:     ExitSuccess,
			wantInStderr: []string{"Usage: md2site build"},
		},
		{
			name:         "unknown command exits with ExitUsage",
			args:         []string{"md2site", "unknown"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: unknown"},
		},
		{
			name:         "completion without shell prints usage",
			args:         []string{"md2site", "completion"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2site completion"},
		},
		{
			name:         "completion bash prints script",
			args:         []string{"md2site", "completion", "bash"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"complete -F _md2site_completions md2site"},
		},
		{
			name:         "unknown flag is a usage error",
			args:         []string{"md2site", "build", "--nope"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid flag"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv(nil)
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_ExitCodes - Semantic exit codes
// ---------------------------------------------------------------------------

func TestRunMain_ExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		// ExitSuccess (0)
		{"version returns ExitSuccess", []string{"md2site", "version"}, ExitSuccess},
		{"help returns ExitSuccess", []string{"md2site", "help"}, ExitSuccess},

		// ExitUsage (2)
		{"no args returns ExitUsage", []string{"md2site"}, ExitUsage},
		{"unknown command returns ExitUsage", []string{"md2site", "badcmd"}, ExitUsage},
		{"unsupported shell returns ExitUsage", []string{"md2site", "completion", "badshell"}, ExitUsage},
		{"too many workers returns ExitUsage", []string{"md2site", "build", "-w", "99"}, ExitUsage},
		{"two directories returns ExitUsage", []string{"md2site", "build", "a", "b"}, ExitUsage},
		{"render non-markdown returns ExitUsage", []string{"md2site", "render", "notes.txt"}, ExitUsage},

		// ExitIO (3)
		{"nonexistent dir returns ExitIO", []string{"md2site", "build", "/nonexistent/site"}, ExitIO},
		{"nonexistent file returns ExitIO", []string{"md2site", "render", "/nonexistent/note.md"}, ExitIO},
		{"render without file returns ExitIO", []string{"md2site", "render"}, ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, stderr := newTestEnv(nil)
			if code := runMain(tt.args, env); code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
		})
	}
}
