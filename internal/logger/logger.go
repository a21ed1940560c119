// Package logger wraps charm log with helpers for site build events.
package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Level aliases the underlying log level so callers need not import charm log.
type Level = log.Level

// Log levels.
const (
	DebugLevel = log.DebugLevel
	InfoLevel  = log.InfoLevel
	WarnLevel  = log.WarnLevel
	ErrorLevel = log.ErrorLevel
)

// Logger wraps charm log for structured logging.
// A nil *Logger is valid and discards everything.
type Logger struct {
	*log.Logger
}

// New creates a logger at info level writing to w.
func New(w io.Writer) *Logger {
	return NewWithLevel(w, InfoLevel)
}

// NewWithLevel creates a logger with a specific level.
func NewWithLevel(w io.Writer, level Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return New(io.Discard)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *Logger) *Logger {
	if l == nil || l.Logger == nil {
		return Discard()
	}
	return l
}

// UnresolvedLink logs a note-link whose target is not in the site graph.
func (l *Logger) UnresolvedLink(doc, target string) {
	OrDiscard(l).Warn("unresolved note-link",
		"doc", doc,
		"target", target)
}

// ComponentCycle logs a component that includes itself through its own expansion.
func (l *Logger) ComponentCycle(component string, stack []string) {
	OrDiscard(l).Error("circular component dependency",
		"component", component,
		"stack", stack)
}

// ComponentMissing logs a component file that could not be read.
func (l *Logger) ComponentMissing(component string, err error) {
	OrDiscard(l).Warn("component not found",
		"component", component,
		"error", err)
}

// InvalidComponent logs a component marker whose name is rejected.
func (l *Logger) InvalidComponent(name string, err error) {
	OrDiscard(l).Error("invalid component name",
		"name", name,
		"error", err)
}

// BuildStarted logs the start of a site build.
func (l *Logger) BuildStarted(sourceDir, outputDir string, workers int) {
	OrDiscard(l).Info("build started",
		"source", sourceDir,
		"output", outputDir,
		"workers", workers)
}

// BuildCompleted logs the end of a site build.
func (l *Logger) BuildCompleted(built, skipped, failed int, duration time.Duration) {
	OrDiscard(l).Info("build completed",
		"built", built,
		"skipped", skipped,
		"failed", failed,
		"duration", duration.Round(time.Millisecond))
}

// DocumentBuilt logs a written page.
func (l *Logger) DocumentBuilt(source, output string, duration time.Duration) {
	OrDiscard(l).Debug("document built",
		"source", source,
		"output", output,
		"duration", duration.Round(time.Microsecond))
}

// DocumentSkipped logs a document that did not need rebuilding.
func (l *Logger) DocumentSkipped(source, reason string) {
	OrDiscard(l).Debug("document skipped",
		"source", source,
		"reason", reason)
}

// FileError logs an error for a specific file.
func (l *Logger) FileError(file string, err error) {
	OrDiscard(l).Error("file error",
		"file", file,
		"error", err)
}

// NameCollision logs two documents sharing a file name; note-links by name
// resolve to kept.
func (l *Logger) NameCollision(name, kept, dropped string) {
	OrDiscard(l).Warn("duplicate note name",
		"name", name,
		"kept", kept,
		"ignored", dropped)
}

// FrontMatterInvalid logs a document whose header could not be read; the
// whole file is used as its body.
func (l *Logger) FrontMatterInvalid(source string, err error) {
	OrDiscard(l).Warn("front matter ignored",
		"source", source,
		"error", err)
}

// CacheDiscarded logs a build cache that could not be used; every document
// is rebuilt.
func (l *Logger) CacheDiscarded(path string, err error) {
	OrDiscard(l).Warn("build cache discarded",
		"path", path,
		"error", err)
}

// PageWritten logs a generated page that has no source document.
func (l *Logger) PageWritten(page string) {
	OrDiscard(l).Debug("page written",
		"page", page)
}

// PageSkipped logs a generated page that was not written.
func (l *Logger) PageSkipped(page, reason string) {
	OrDiscard(l).Warn("page skipped",
		"page", page,
		"reason", reason)
}

// ChangeDetected logs a file system event that schedules a rebuild.
func (l *Logger) ChangeDetected(path, op string) {
	OrDiscard(l).Debug("change detected",
		"path", path,
		"op", op)
}

// Watching logs the start of watch mode.
func (l *Logger) Watching(dir string) {
	OrDiscard(l).Info("watching for changes",
		"dir", dir)
}
