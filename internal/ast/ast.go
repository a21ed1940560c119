// Package ast defines the document tree shared by the parser and the renderer.
package ast

// Kind tags a Node as one of the block or inline constructs.
type Kind int

const (
	Document Kind = iota
	Heading1
	Heading2
	Heading3
	Paragraph
	CodeBlock
	ThematicBreak
	OrderedList
	UnorderedList
	ListItem

	// Inline kinds start here; see IsInline.
	Text
	Italic
	Bold
	ItalicBold
	InlineCode
	Link
	Image
	SoftBreak
)

var kindNames = [...]string{
	Document:      "Document",
	Heading1:      "Heading1",
	Heading2:      "Heading2",
	Heading3:      "Heading3",
	Paragraph:     "Paragraph",
	CodeBlock:     "CodeBlock",
	ThematicBreak: "ThematicBreak",
	OrderedList:   "OrderedList",
	UnorderedList: "UnorderedList",
	ListItem:      "ListItem",
	Text:          "Text",
	Italic:        "Italic",
	Bold:          "Bold",
	ItalicBold:    "ItalicBold",
	InlineCode:    "InlineCode",
	Link:          "Link",
	Image:         "Image",
	SoftBreak:     "SoftBreak",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// IsInline reports whether k is an inline kind. Inline nodes never have children.
func (k Kind) IsInline() bool {
	return k >= Text
}

// HeadingKind returns the heading kind for level, clamping levels above 3 to Heading3.
func HeadingKind(level int) Kind {
	switch {
	case level <= 1:
		return Heading1
	case level == 2:
		return Heading2
	default:
		return Heading3
	}
}

// EmphasisKind returns Italic, Bold or ItalicBold for a run of 1, 2 or 3 asterisks.
func EmphasisKind(level int) (Kind, bool) {
	switch level {
	case 1:
		return Italic, true
	case 2:
		return Bold, true
	case 3:
		return ItalicBold, true
	}
	return 0, false
}

// Node is one element of the document tree.
//
// Payload holds the primary string: heading text, code content, link label,
// image alt or plain text. Secondary holds the code language or the
// link/image target. Each node exclusively owns its Children.
type Node struct {
	Kind      Kind
	Payload   string
	Secondary string
	Children  []*Node
}

// New returns a node of kind k with the given payloads.
func New(k Kind, payload, secondary string) *Node {
	return &Node{Kind: k, Payload: payload, Secondary: secondary}
}

// Append adds child as the last child of n. Appending to an inline node panics,
// since that would break the tree invariant.
func (n *Node) Append(child *Node) {
	if n.Kind.IsInline() {
		panic("ast: append to inline node " + n.Kind.String())
	}
	n.Children = append(n.Children, child)
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the children of that node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}
