package parser

import (
	"strings"

	"github.com/alnah/go-md2site/internal/ast"
	"github.com/alnah/go-md2site/internal/token"
)

// inlineMode selects where inline content ends.
type inlineMode int

const (
	// paragraphMode ends at a blank line; a lone newline becomes a soft break.
	paragraphMode inlineMode = iota
	// listMode ends at the first newline.
	listMode
)

// maxEmphasis is the longest asterisk run that opens emphasis.
const maxEmphasis = 3

// inline appends inline nodes to parent until the block boundary, which is
// left unconsumed. seed is plain text already taken from the first token.
func (p *parser) inline(c Cursor, mode inlineMode, parent *ast.Node, seed string) Cursor {
	var text strings.Builder
	text.WriteString(seed)

	flush := func() {
		if text.Len() > 0 {
			parent.Append(ast.New(ast.Text, text.String(), ""))
			text.Reset()
		}
	}
	emit := func(n *ast.Node) {
		flush()
		parent.Append(n)
	}

	for {
		t := c.Peek()
		switch t.Kind {
		case token.EOF:
			flush()
			return c

		case token.Newline:
			if mode == listMode {
				flush()
				return c
			}
			if k := c.PeekN(1).Kind; k == token.Newline || k == token.EOF {
				flush()
				return c
			}
			emit(ast.New(ast.SoftBreak, "", ""))
			c = c.Next()
			continue

		case token.Asterisk:
			if next, n, ok := p.emphasis(c); ok {
				emit(n)
				c = next
				continue
			}
			// The whole opening run stays literal so "**a*" is not re-split.
			run := c.Run(token.Asterisk)
			text.WriteString(strings.Repeat("*", run))
			c = c.Advance(run)
			continue

		case token.Backtick:
			if next, n, ok := p.code(c); ok {
				emit(n)
				c = next
				continue
			}

		case token.LBracket:
			if next, n, ok := firstOf(c, p.noteLink(ast.Link), p.link(ast.Link)); ok {
				emit(n)
				c = next
				continue
			}

		case token.Exclamation:
			if next, n, ok := firstOf(c.Next(), p.noteLink(ast.Image), p.link(ast.Image)); ok {
				emit(n)
				c = next
				continue
			}
		}

		text.WriteString(t.Surface())
		c = c.Next()
	}
}

// emphasis parses a run of 1-3 asterisks, content, and a closing run of the
// same length. On a run of a different length one asterisk becomes literal
// content and matching resumes at the next, so the tail of a longer run can
// still close. Only a newline or end of input aborts. Emphasis does not nest.
func (p *parser) emphasis(c Cursor) (Cursor, *ast.Node, bool) {
	level := c.Run(token.Asterisk)
	kind, ok := ast.EmphasisKind(level)
	if !ok {
		return c, nil, false
	}
	c = c.Advance(level)

	var content strings.Builder
	for {
		switch c.Peek().Kind {
		case token.Newline, token.EOF:
			return c, nil, false
		case token.Asterisk:
			run := c.Run(token.Asterisk)
			if run == level {
				return c.Advance(run), ast.New(kind, content.String(), ""), true
			}
			content.WriteByte('*')
			c = c.Next()
		default:
			content.WriteString(c.Peek().Surface())
			c = c.Next()
		}
	}
}

// code parses a backtick, a non-empty verbatim run and a closing backtick.
func (p *parser) code(c Cursor) (Cursor, *ast.Node, bool) {
	start := c.Next()
	end, ok := scanUntil(start, token.Backtick)
	if !ok || end.Pos() == start.Pos() {
		return c, nil, false
	}
	return end.Next(), ast.New(ast.InlineCode, start.Between(end), ""), true
}

// link returns an attempt for "[label](target)". kind is Link, or Image when
// the caller consumed a leading "!".
func (p *parser) link(kind ast.Kind) attempt {
	return func(c Cursor) (Cursor, *ast.Node, bool) {
		if !c.Is(token.LBracket) {
			return c, nil, false
		}
		labelStart := c.Next()
		labelEnd, ok := scanUntil(labelStart, token.RBracket)
		if !ok {
			return c, nil, false
		}
		open := labelEnd.Next()
		if !open.Is(token.LParen) {
			return c, nil, false
		}
		targetStart := open.Next()
		targetEnd, ok := scanUntil(targetStart, token.RParen)
		if !ok {
			return c, nil, false
		}
		n := ast.New(kind, labelStart.Between(labelEnd), targetStart.Between(targetEnd))
		return targetEnd.Next(), n, true
	}
}

// noteLink returns an attempt for "[[target]]". The visible text of a link
// and the alt of an image are the raw target.
func (p *parser) noteLink(kind ast.Kind) attempt {
	return func(c Cursor) (Cursor, *ast.Node, bool) {
		if !c.Is(token.LBracket) || c.PeekN(1).Kind != token.LBracket {
			return c, nil, false
		}
		start := c.Advance(2)
		end, ok := scanUntil(start, token.RBracket)
		if !ok || end.Pos() == start.Pos() || end.PeekN(1).Kind != token.RBracket {
			return c, nil, false
		}
		target := start.Between(end)
		return end.Advance(2), ast.New(kind, target, p.resolve(target)), true
	}
}

// scanUntil advances to the next token of kind k on the current line.
func scanUntil(c Cursor, k token.Kind) (Cursor, bool) {
	for {
		switch c.Peek().Kind {
		case k:
			return c, true
		case token.Newline, token.EOF:
			return c, false
		}
		c = c.Next()
	}
}
