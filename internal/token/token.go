// Package token splits document text into the flat token stream consumed by the parser.
package token

// Kind identifies the lexical class of a token.
type Kind int

// Token kinds. Punctuation kinds carry no text; their surface form is fixed.
const (
	EOF Kind = iota
	Hash
	Asterisk
	Dash
	Dot
	LBracket
	RBracket
	LParen
	RParen
	Backtick
	Exclamation
	GreaterThan
	Backslash
	Newline
	Tab
	Number
	Text
)

var kindNames = [...]string{
	EOF:         "EOF",
	Hash:        "Hash",
	Asterisk:    "Asterisk",
	Dash:        "Dash",
	Dot:         "Dot",
	LBracket:    "LBracket",
	RBracket:    "RBracket",
	LParen:      "LParen",
	RParen:      "RParen",
	Backtick:    "Backtick",
	Exclamation: "Exclamation",
	GreaterThan: "GreaterThan",
	Backslash:   "Backslash",
	Newline:     "Newline",
	Tab:         "Tab",
	Number:      "Number",
	Text:        "Text",
}

// String returns the kind name, used in test failures and debug logs.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// punctuation maps each structural byte to its kind.
var punctuation = map[byte]Kind{
	'#':  Hash,
	'*':  Asterisk,
	'-':  Dash,
	'.':  Dot,
	'[':  LBracket,
	']':  RBracket,
	'(':  LParen,
	')':  RParen,
	'`':  Backtick,
	'!':  Exclamation,
	'>':  GreaterThan,
	'\\': Backslash,
	'\n': Newline,
	'\t': Tab,
}

// surfaces is the canonical single-character form of each punctuation kind.
var surfaces = map[Kind]string{
	Hash:        "#",
	Asterisk:    "*",
	Dash:        "-",
	Dot:         ".",
	LBracket:    "[",
	RBracket:    "]",
	LParen:      "(",
	RParen:      ")",
	Backtick:    "`",
	Exclamation: "!",
	GreaterThan: ">",
	Backslash:   "\\",
	Newline:     "\n",
	Tab:         "\t",
}

// Token is one lexical unit. Text is set only for Number and Text tokens.
type Token struct {
	Kind Kind
	Text string
}

// Surface returns the literal source form of the token.
// Concatenating the surfaces of a tokenized document reproduces it exactly.
func (t Token) Surface() string {
	switch t.Kind {
	case Text, Number:
		return t.Text
	case EOF:
		return ""
	}
	return surfaces[t.Kind]
}

// IsPunct reports whether b is a structural character.
func IsPunct(b byte) bool {
	_, ok := punctuation[b]
	return ok
}

// Join concatenates the surface forms of toks.
func Join(toks []Token) string {
	n := 0
	for _, t := range toks {
		n += len(t.Surface())
	}
	buf := make([]byte, 0, n)
	for _, t := range toks {
		buf = append(buf, t.Surface()...)
	}
	return string(buf)
}
