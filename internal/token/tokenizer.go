package token

import "strings"

// fence is the three-backtick code fence delimiter.
const fence = "```"

// Tokenize converts document text into an ordered token sequence terminated by EOF.
// It holds no state between calls.
func Tokenize(src string) []Token {
	t := tokenizer{src: src, toks: make([]Token, 0, len(src)/4+1)}
	t.run()
	return t.toks
}

type tokenizer struct {
	src   string
	pos   int
	start int // start of the pending plain-text run
	toks  []Token
}

func (t *tokenizer) run() {
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		switch {
		case c == '`' && strings.HasPrefix(t.src[t.pos:], fence):
			t.flush()
			t.fenced()
		case isDigit(c):
			t.flush()
			end := t.pos
			for end < len(t.src) && isDigit(t.src[end]) {
				end++
			}
			t.emit(Number, t.src[t.pos:end])
			t.pos = end
		case IsPunct(c):
			t.flush()
			t.emit(punctuation[c], "")
			t.pos++
		default:
			t.pos++
			continue
		}
		t.start = t.pos
	}
	t.flush()
	t.emit(EOF, "")
}

// flush emits the pending plain-text run, if any.
func (t *tokenizer) flush() {
	if t.pos > t.start {
		t.emit(Text, t.src[t.start:t.pos])
	}
	t.start = t.pos
}

func (t *tokenizer) emit(k Kind, text string) {
	t.toks = append(t.toks, Token{Kind: k, Text: text})
}

func (t *tokenizer) emitFence() {
	for range len(fence) {
		t.emit(Backtick, "")
	}
}

// fenced captures a code fence verbatim. The header line becomes one Text
// token, the body another, and the closing line of exactly three backticks is
// emitted as three Backtick tokens. An unterminated fence runs to end of input.
func (t *tokenizer) fenced() {
	t.emitFence()
	t.pos += len(fence)

	nl := strings.IndexByte(t.src[t.pos:], '\n')
	if nl < 0 {
		if t.pos < len(t.src) {
			t.emit(Text, t.src[t.pos:])
		}
		t.pos = len(t.src)
		return
	}
	if nl > 0 {
		t.emit(Text, t.src[t.pos:t.pos+nl])
	}
	t.emit(Newline, "")
	t.pos += nl + 1

	bodyStart := t.pos
	closing := findClosingFence(t.src, bodyStart)
	if closing < 0 {
		if bodyStart < len(t.src) {
			t.emit(Text, t.src[bodyStart:])
		}
		t.pos = len(t.src)
		return
	}
	if closing > bodyStart {
		t.emit(Text, t.src[bodyStart:closing])
	}
	t.emitFence()
	t.pos = closing + len(fence)
}

// findClosingFence returns the offset of the first line at or after from that
// consists of exactly three backticks, or -1.
func findClosingFence(src string, from int) int {
	for lineStart := from; lineStart < len(src); {
		end := strings.IndexByte(src[lineStart:], '\n')
		line := src[lineStart:]
		if end >= 0 {
			line = src[lineStart : lineStart+end]
		}
		if line == fence {
			return lineStart
		}
		if end < 0 {
			break
		}
		lineStart += end + 1
	}
	return -1
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
