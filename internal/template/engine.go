// Package template expands layout files: it inlines {{ component: name }}
// markers, detecting inclusion cycles, then substitutes {{ key }}
// placeholders from a Context. There are no conditionals or loops.
package template

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/alnah/go-md2site/internal/logger"
)

// Sentinel errors for template expansion.
var (
	// ErrLayoutNotFound indicates the top-level layout could not be read.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrInvalidComponentName indicates a component name that leaves the
	// components directory.
	ErrInvalidComponentName = errors.New("invalid component name")
)

// Template syntax delimiters.
const (
	componentOpen = "{{ component:"
	markerClose   = "}}"
	placeOpen     = "{{ "
	placeClose    = " }}"
)

// Loader supplies layout and component sources by name (without extension).
type Loader interface {
	LoadLayout(name string) (string, error)
	LoadComponent(name string) (string, error)
}

// ComponentPath returns the file a component name refers to, relative to the
// site root. It identifies the component on the dependency stack.
func ComponentPath(name string) string {
	return "templates/components/" + name + ".html"
}

// Engine expands templates. It holds no per-render state, so one Engine may
// serve concurrent renders as long as its Loader is safe for concurrent use.
type Engine struct {
	loader Loader
	log    *logger.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for cycle, missing and invalid component reports.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// New creates an Engine reading templates through loader.
func New(loader Loader, opts ...Option) *Engine {
	e := &Engine{loader: loader}
	for _, opt := range opts {
		opt(e)
	}
	e.log = logger.OrDiscard(e.log)
	return e
}

// Render loads the named layout, expands its components and substitutes
// placeholders from ctx. An unreadable layout returns ErrLayoutNotFound.
func (e *Engine) Render(layout string, ctx Context) (string, error) {
	src, err := e.loader.LoadLayout(layout)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrLayoutNotFound, layout, err)
	}
	return e.RenderString(src, ctx), nil
}

// RenderString expands src as if it were a layout.
func (e *Engine) RenderString(src string, ctx Context) string {
	var stack dependencyStack
	return Substitute(e.expand(src, &stack), ctx)
}

// RenderComponent expands the named component on its own, as used for
// repeated fragments such as list cards.
func (e *Engine) RenderComponent(name string, ctx Context) string {
	var stack dependencyStack
	return Substitute(e.component(name, &stack), ctx)
}

// dependencyStack holds the component paths currently being expanded.
type dependencyStack []string

func (s dependencyStack) contains(path string) bool {
	return slices.Contains(s, path)
}

func (s *dependencyStack) push(path string) { *s = append(*s, path) }

func (s *dependencyStack) pop() { *s = (*s)[:len(*s)-1] }

// expand replaces every component marker in src in one left-to-right pass.
// Repeated markers for the same name within src expand once.
func (e *Engine) expand(src string, stack *dependencyStack) string {
	if !strings.Contains(src, componentOpen) {
		return src
	}

	var out strings.Builder
	out.Grow(len(src))
	done := make(map[string]string)

	rest := src
	for {
		start := strings.Index(rest, componentOpen)
		if start < 0 {
			break
		}
		nameStart := start + len(componentOpen)
		end := strings.Index(rest[nameStart:], markerClose)
		if end < 0 {
			// Unterminated marker: leave the remainder verbatim.
			break
		}
		name := strings.TrimSpace(rest[nameStart : nameStart+end])
		markerEnd := nameStart + end + len(markerClose)

		out.WriteString(rest[:start])
		if name == "" {
			out.WriteString(rest[start:markerEnd])
		} else {
			expanded, ok := done[name]
			if !ok {
				expanded = e.component(name, stack)
				done[name] = expanded
			}
			out.WriteString(expanded)
		}
		rest = rest[markerEnd:]
	}
	out.WriteString(rest)
	return out.String()
}

// component loads and expands one component. Cycles, invalid names and
// unreadable files yield an empty string.
func (e *Engine) component(name string, stack *dependencyStack) string {
	if err := validateComponentName(name); err != nil {
		e.log.InvalidComponent(name, err)
		return ""
	}

	path := ComponentPath(name)
	if stack.contains(path) {
		e.log.ComponentCycle(name, slices.Clone(*stack))
		return ""
	}

	src, err := e.loader.LoadComponent(name)
	if err != nil {
		e.log.ComponentMissing(name, err)
		return ""
	}

	stack.push(path)
	defer stack.pop()
	return e.expand(src, stack)
}

// validateComponentName accepts slash-separated subpaths such as "nav/top"
// that stay inside the components directory.
func validateComponentName(name string) error {
	if !fs.ValidPath(name) || strings.ContainsAny(name, "\\\x00\n") {
		return fmt.Errorf("%w: %q", ErrInvalidComponentName, name)
	}
	return nil
}

// Substitute replaces each "{{ key }}" whose key is in ctx with its value in a
// single pass. Unknown keys are left verbatim and substituted values are not
// scanned again.
func Substitute(src string, ctx Context) string {
	if !strings.Contains(src, placeOpen) {
		return src
	}

	var out strings.Builder
	out.Grow(len(src))

	i := 0
	for i < len(src) {
		open := strings.Index(src[i:], placeOpen)
		if open < 0 {
			break
		}
		open += i
		out.WriteString(src[i:open])

		keyStart := open + len(placeOpen)
		closeAt := strings.Index(src[keyStart:], placeClose)
		if closeAt >= 0 {
			key := src[keyStart : keyStart+closeAt]
			if value, ok := ctx[key]; ok && isKey(key) {
				out.WriteString(value)
				i = keyStart + closeAt + len(placeClose)
				continue
			}
		}
		out.WriteString(placeOpen)
		i = keyStart
	}
	out.WriteString(src[i:])
	return out.String()
}

// isKey rejects spans that cross a line or another placeholder.
func isKey(s string) bool {
	return s != "" && !strings.ContainsAny(s, "\n{}")
}
