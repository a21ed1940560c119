package parser

import (
	"github.com/alnah/go-md2site/internal/ast"
	"github.com/alnah/go-md2site/internal/token"
)

// Cursor is a position in an immutable token sequence. It is a value:
// speculative parses advance a copy, and a failed attempt simply drops it.
type Cursor struct {
	toks []token.Token
	pos  int
}

// NewCursor returns a cursor at the start of toks. A missing terminal EOF is tolerated.
func NewCursor(toks []token.Token) Cursor {
	return Cursor{toks: toks}
}

// Pos returns the index of the current token.
func (c Cursor) Pos() int { return c.pos }

// Peek returns the current token without consuming it.
func (c Cursor) Peek() token.Token { return c.PeekN(0) }

// PeekN returns the token n positions ahead, or EOF past the end.
func (c Cursor) PeekN(n int) token.Token {
	i := c.pos + n
	if i < 0 || i >= len(c.toks) {
		return token.Token{Kind: token.EOF}
	}
	return c.toks[i]
}

// Is reports whether the current token has kind k.
func (c Cursor) Is(k token.Kind) bool { return c.Peek().Kind == k }

// AtEnd reports whether the cursor is at end of input.
func (c Cursor) AtEnd() bool { return c.Is(token.EOF) }

// Next returns the cursor advanced by one token. EOF is never passed.
func (c Cursor) Next() Cursor { return c.Advance(1) }

// Advance returns the cursor advanced by n tokens, stopping at EOF.
func (c Cursor) Advance(n int) Cursor {
	for ; n > 0 && !c.AtEnd(); n-- {
		c.pos++
	}
	return c
}

// Run counts consecutive tokens of kind k starting at the cursor.
func (c Cursor) Run(k token.Kind) int {
	n := 0
	for c.PeekN(n).Kind == k {
		n++
	}
	return n
}

// Between returns the surface text of the tokens from c up to end.
func (c Cursor) Between(end Cursor) string {
	if end.pos <= c.pos {
		return ""
	}
	return token.Join(c.toks[c.pos:end.pos])
}

// attempt is a speculative parse. On failure it reports ok == false and the
// caller keeps its own cursor untouched.
type attempt func(Cursor) (next Cursor, n *ast.Node, ok bool)

// firstOf runs attempts in order and returns the first success.
func firstOf(c Cursor, attempts ...attempt) (Cursor, *ast.Node, bool) {
	for _, try := range attempts {
		if next, n, ok := try(c); ok {
			return next, n, true
		}
	}
	return c, nil, false
}
