// Package frontmatter separates the `---` delimited header of a document
// from its body and reads the header into string key/value pairs.
package frontmatter

import (
	"errors"
	"strconv"
	"strings"

	"github.com/alnah/go-md2site/internal/yamlutil"
)

// ErrMissingClosingDelimiter indicates the document started with a front
// matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Recognized keys.
const (
	KeyTitle       = "title"
	KeyLayout      = "layout"
	KeyDate        = "date"
	KeyOrder       = "order"
	KeyID          = "id"
	KeyDraft       = "draft"
	KeyMarkup      = "markup"
	KeyDescription = "description"
)

const delimiter = "---"

// Split separates front matter from the body. content must use "\n" line
// endings. When content does not open with a delimiter line, had is false
// and body is the full input.
func Split(content string) (front, body string, had bool, err error) {
	first, rest, found := strings.Cut(content, "\n")
	if !isDelimiter(first) {
		return "", content, false, nil
	}
	if !found {
		return "", "", false, ErrMissingClosingDelimiter
	}

	offset := 0
	for offset <= len(rest) {
		line, _, more := strings.Cut(rest[offset:], "\n")
		if isDelimiter(line) {
			bodyStart := offset + len(line)
			if more {
				bodyStart++
			}
			return rest[:offset], rest[bodyStart:], true, nil
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}
	return "", "", false, ErrMissingClosingDelimiter
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t") == delimiter
}

// Parse reads front matter into a flat string map. YAML is tried first;
// when the header is not a valid YAML mapping, each "key: value" line is
// split on its first colon instead.
func Parse(front string) map[string]string {
	if strings.TrimSpace(front) == "" {
		return map[string]string{}
	}
	if fields, err := yamlutil.UnmarshalFlat([]byte(front)); err == nil {
		return fields
	}
	return parseLines(front)
}

func parseLines(front string) map[string]string {
	fields := make(map[string]string)
	for line := range strings.Lines(front) {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" || strings.HasPrefix(key, "#") {
			continue
		}
		fields[key] = unquote(strings.TrimSpace(value))
	}
	return fields
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// Meta is the parsed header of one document.
type Meta map[string]string

// Get returns the trimmed value for key.
func (m Meta) Get(key string) string {
	return strings.TrimSpace(m[key])
}

// Draft reports whether the document is marked as a draft.
func (m Meta) Draft() bool {
	b, err := strconv.ParseBool(m.Get(KeyDraft))
	return err == nil && b
}

// Order returns the explicit sort position, if any.
func (m Meta) Order() (int, bool) {
	n, err := strconv.Atoi(m.Get(KeyOrder))
	return n, err == nil
}

// ID returns the numeric id, if any.
func (m Meta) ID() (int, bool) {
	n, err := strconv.Atoi(m.Get(KeyID))
	return n, err == nil
}

// Document is a source file split into its header and body.
type Document struct {
	Meta Meta
	Body string
	// HadFrontMatter is false when the file has no header.
	HadFrontMatter bool
}

// Read splits and parses content. A missing closing delimiter is reported
// alongside a Document whose body is the whole input.
func Read(content string) (Document, error) {
	front, body, had, err := Split(content)
	if err != nil {
		return Document{Meta: Meta{}, Body: content}, err
	}
	return Document{Meta: Meta(Parse(front)), Body: body, HadFrontMatter: had}, nil
}
