// Package mdast is the closed Markdown syntax tree consumed by the renderers.
//
// The tree only knows the node kinds the exporters understand. Everything
// else the parser produces (links, tables, block quotes, raw HTML...) is
// carried as *Other so renderers can drop it at block level or flatten its
// text at inline level.
package mdast

// Node is any node of the tree. The interface is sealed: only the types in
// this package implement it, so renderers can switch over a known set.
type Node interface {
	mdastNode()
}

// Root is the document node.
type Root struct {
	Children []Node
}

// Heading is an ATX or setext heading with depth 1-6.
type Heading struct {
	Depth    int
	Children []Node
}

// Paragraph holds inline content.
type Paragraph struct {
	Children []Node
}

// List is an ordered or bullet list. Start is meaningful only when HasStart is set.
type List struct {
	Ordered  bool
	Start    int
	HasStart bool
	Children []Node
}

// ListItem is one entry of a List.
type ListItem struct {
	Children []Node
}

// Code is a fenced or indented code block. Value has no trailing newline.
type Code struct {
	Lang  string
	Value string
}

// Text is literal text. Soft line breaks appear as "\n" inside Value.
type Text struct {
	Value string
}

// Strong is bold content.
type Strong struct {
	Children []Node
}

// Emphasis is italic content.
type Emphasis struct {
	Children []Node
}

// InlineCode is a code span.
type InlineCode struct {
	Value string
}

// Break is a hard line break.
type Break struct{}

// Other is a node outside the closed set. Kind names the source construct
// (e.g. "Link", "Table"); Value holds literal text for leaf kinds such as raw
// HTML or autolinks.
type Other struct {
	Kind     string
	Value    string
	Children []Node
}

func (*Root) mdastNode()       {}
func (*Heading) mdastNode()    {}
func (*Paragraph) mdastNode()  {}
func (*List) mdastNode()       {}
func (*ListItem) mdastNode()   {}
func (*Code) mdastNode()       {}
func (*Text) mdastNode()       {}
func (*Strong) mdastNode()     {}
func (*Emphasis) mdastNode()   {}
func (*InlineCode) mdastNode() {}
func (*Break) mdastNode()      {}
func (*Other) mdastNode()      {}

// Children returns the child nodes of n, or nil for leaf kinds.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Root:
		return v.Children
	case *Heading:
		return v.Children
	case *Paragraph:
		return v.Children
	case *List:
		return v.Children
	case *ListItem:
		return v.Children
	case *Strong:
		return v.Children
	case *Emphasis:
		return v.Children
	case *Other:
		return v.Children
	}
	return nil
}

// IsInline reports whether n is one of the inline kinds that may appear
// stray at block level.
func IsInline(n Node) bool {
	switch n.(type) {
	case *Text, *Strong, *Emphasis, *Break, *InlineCode:
		return true
	}
	return false
}
