package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNilLoggerDiscards(t *testing.T) {
	t.Parallel()

	var l *Logger
	// Must not panic.
	l.UnresolvedLink("a.html", "missing")
	l.ComponentCycle("a", []string{"a", "b"})
	l.BuildCompleted(1, 2, 3, time.Second)
}

func TestLogger_Helpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		call func(*Logger)
		want []string
	}{
		{
			name: "unresolved link is a warning",
			call: func(l *Logger) { l.UnresolvedLink("notes/a.html", "Ghost") },
			want: []string{"WARN", "unresolved note-link", "notes/a.html", "Ghost"},
		},
		{
			name: "cycle is an error",
			call: func(l *Logger) { l.ComponentCycle("header", []string{"components/header.html"}) },
			want: []string{"ERRO", "circular component dependency", "header"},
		},
		{
			name: "missing component is a warning",
			call: func(l *Logger) { l.ComponentMissing("nav", errors.New("nope")) },
			want: []string{"WARN", "component not found", "nav", "nope"},
		},
		{
			name: "discarded cache is a warning",
			call: func(l *Logger) { l.CacheDiscarded("out/.md2site-cache.json", errors.New("bad json")) },
			want: []string{"WARN", "build cache discarded", "bad json"},
		},
		{
			name: "skipped page is a warning",
			call: func(l *Logger) { l.PageSkipped("posts.html", "shadows a document") },
			want: []string{"WARN", "page skipped", "posts.html"},
		},
		{
			name: "file error",
			call: func(l *Logger) { l.FileError("x.md", errors.New("boom")) },
			want: []string{"ERRO", "x.md", "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.call(New(&buf))
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
		})
	}
}

func TestNewWithLevel_FiltersDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewWithLevel(&buf, InfoLevel)
	l.DocumentSkipped("a.md", "unchanged")
	if buf.Len() != 0 {
		t.Errorf("debug message written at info level: %q", buf.String())
	}

	buf.Reset()
	l = NewWithLevel(&buf, DebugLevel)
	l.DocumentSkipped("a.md", "unchanged")
	if !strings.Contains(buf.String(), "document skipped") {
		t.Errorf("output = %q, want debug message", buf.String())
	}
}
