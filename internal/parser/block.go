package parser

import (
	"strings"

	"github.com/alnah/go-md2site/internal/ast"
	"github.com/alnah/go-md2site/internal/token"
)

// block parses one block starting at a line start. It always consumes at
// least one token; n is nil only for an indented blank line.
func (p *parser) block(c Cursor) (Cursor, *ast.Node) {
	indent := c.Run(token.Tab)
	at := c.Advance(indent)

	switch at.Peek().Kind {
	case token.Newline, token.EOF:
		// Indentation with nothing after it.
		return at, nil
	case token.Hash:
		if next, n, ok := p.heading(at); ok {
			return next, n
		}
	case token.Dash, token.Asterisk:
		if next, n, ok := firstOf(at, p.thematicBreak, p.listAt(indent, c)); ok {
			return next, n
		}
	case token.Number:
		if next, n, ok := p.listAt(indent, c)(at); ok {
			return next, n
		}
	case token.Backtick:
		if next, n, ok := p.codeBlock(at); ok {
			return next, n
		}
	}
	return p.paragraph(at)
}

// heading parses "#"{1,} followed by a text run starting with a space.
// The rest of the line is taken literally as the heading text.
func (p *parser) heading(c Cursor) (Cursor, *ast.Node, bool) {
	level := c.Run(token.Hash)
	c = c.Advance(level)
	first := c.Peek()
	if first.Kind != token.Text || !strings.HasPrefix(first.Text, " ") {
		return c, nil, false
	}

	start := c
	end := skipToLineEnd(c)
	text := strings.TrimPrefix(start.Between(end), " ")
	text = strings.TrimRight(text, " \t")

	return consumeNewline(end), ast.New(ast.HeadingKind(level), text, ""), true
}

// thematicBreak parses a run of three or more identical dashes or asterisks
// alone on its line.
func (p *parser) thematicBreak(c Cursor) (Cursor, *ast.Node, bool) {
	kind := c.Peek().Kind
	n := c.Run(kind)
	if n < 3 {
		return c, nil, false
	}
	c = c.Advance(n)
	if !c.Is(token.Newline) && !c.AtEnd() {
		return c, nil, false
	}
	return consumeNewline(c), ast.New(ast.ThematicBreak, "", ""), true
}

// listKind identifies the list type a marker opens.
type listKind int

const (
	notAList listKind = iota
	unordered
	ordered
)

// marker recognizes a list marker at c (after indentation) and returns the
// list type, the cursor at the item text, and the item text with its single
// leading space removed.
func marker(c Cursor) (listKind, Cursor, string) {
	kind := unordered
	switch c.Peek().Kind {
	case token.Dash, token.Asterisk:
		c = c.Next()
	case token.Number:
		if c.PeekN(1).Kind != token.Dot {
			return notAList, c, ""
		}
		kind = ordered
		c = c.Advance(2)
	default:
		return notAList, c, ""
	}

	t := c.Peek()
	if t.Kind != token.Text || !strings.HasPrefix(t.Text, " ") {
		return notAList, c, ""
	}
	return kind, c.Next(), t.Text[1:]
}

// listAt returns an attempt that parses a list whose lines are indented by
// indent tabs; lineStart is the cursor before the indentation.
func (p *parser) listAt(indent int, lineStart Cursor) attempt {
	return func(Cursor) (Cursor, *ast.Node, bool) {
		return p.list(lineStart, indent)
	}
}

// list parses sibling items at one indentation level. It stops at the first
// line whose indentation differs or whose marker type does not match the
// first item's. A list with no items fails.
func (p *parser) list(c Cursor, indent int) (Cursor, *ast.Node, bool) {
	kind, _, _ := marker(c.Advance(indent))
	if kind == notAList || c.Run(token.Tab) != indent {
		return c, nil, false
	}

	nodeKind := ast.UnorderedList
	if kind == ordered {
		nodeKind = ast.OrderedList
	}
	list := ast.New(nodeKind, "", "")

	for c.Run(token.Tab) == indent {
		k, text, seed := marker(c.Advance(indent))
		if k != kind {
			break
		}
		var item *ast.Node
		c, item = p.listItem(text, seed, indent)
		list.Append(item)
	}

	if len(list.Children) == 0 {
		return c, nil, false
	}
	return c, list, true
}

// listItem parses the inline content of one item up to its line end, then a
// nested list when the next line is indented deeper.
func (p *parser) listItem(c Cursor, seed string, indent int) (Cursor, *ast.Node) {
	item := ast.New(ast.ListItem, "", "")
	c = p.inline(c, listMode, item, seed)
	c = consumeNewline(c)

	if deeper := c.Run(token.Tab); deeper > indent {
		if next, sub, ok := p.list(c, deeper); ok {
			item.Append(sub)
			c = next
		}
	}
	return c, item
}

// codeBlock parses a fenced block: three backticks, an optional language
// header, a newline, the verbatim body and a closing fence.
func (p *parser) codeBlock(c Cursor) (Cursor, *ast.Node, bool) {
	if c.Run(token.Backtick) < 3 {
		return c, nil, false
	}
	c = c.Advance(3)

	var lang, body string
	if c.Is(token.Text) {
		lang = strings.TrimSpace(c.Peek().Text)
		c = c.Next()
	}
	if c.Is(token.Newline) {
		c = c.Next()
	}
	if c.Is(token.Text) {
		body = c.Peek().Text
		c = c.Next()
	}
	if c.Run(token.Backtick) < 3 {
		return c, nil, false
	}
	c = c.Advance(3)

	return consumeNewline(c), ast.New(ast.CodeBlock, body, lang), true
}

// paragraph is the fallback block. Its content runs to a blank line.
func (p *parser) paragraph(c Cursor) (Cursor, *ast.Node) {
	para := ast.New(ast.Paragraph, "", "")
	next := p.inline(c, paragraphMode, para, "")
	if next.Pos() == c.Pos() {
		// Unreachable from block, which never starts a paragraph on a
		// newline, but keeps the parse loop advancing.
		para.Append(ast.New(ast.Text, c.Peek().Surface(), ""))
		next = c.Next()
	}
	if len(para.Children) == 0 {
		return next, nil
	}
	return next, para
}

// skipToLineEnd returns the cursor at the next newline or EOF.
func skipToLineEnd(c Cursor) Cursor {
	for !c.Is(token.Newline) && !c.AtEnd() {
		c = c.Next()
	}
	return c
}

func consumeNewline(c Cursor) Cursor {
	if c.Is(token.Newline) {
		return c.Next()
	}
	return c
}
