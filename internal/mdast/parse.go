package mdast

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidUTF8 is returned when the Markdown source is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("markdown source is not valid UTF-8")

// Parser turns Markdown source into a Root using goldmark.
// A Parser is safe for concurrent use.
type Parser struct {
	md goldmark.Markdown
}

// NewParser returns a Parser with the GFM extensions enabled, so tables,
// strikethrough and task lists parse into *Other instead of plain text.
func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Parse parses src. Text is normalised to NFC first.
func (p *Parser) Parse(src []byte) (*Root, error) {
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("parse markdown: %w", ErrInvalidUTF8)
	}
	src = norm.NFC.Bytes(src)

	doc := p.md.Parser().Parse(text.NewReader(src))
	c := converter{src: src}
	return &Root{Children: c.children(doc)}, nil
}

// Parse parses src with a default Parser.
func Parse(src string) (*Root, error) {
	return NewParser().Parse([]byte(src))
}

type converter struct {
	src []byte
}

// children converts the children of n, merging adjacent Text nodes so soft
// line breaks end up inside the following text the way "**a**\nb" reads.
func (c *converter) children(n ast.Node) []Node {
	var out []Node
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		for _, cn := range c.convert(ch) {
			if t, ok := cn.(*Text); ok {
				if t.Value == "" {
					continue
				}
				if len(out) > 0 {
					if prev, ok := out[len(out)-1].(*Text); ok {
						prev.Value += t.Value
						continue
					}
				}
			}
			out = append(out, cn)
		}
	}
	return out
}

func (c *converter) convert(n ast.Node) []Node {
	switch v := n.(type) {
	case *ast.Heading:
		return []Node{&Heading{Depth: v.Level, Children: c.children(v)}}
	case *ast.Paragraph:
		return []Node{&Paragraph{Children: c.children(v)}}
	case *ast.TextBlock:
		// Tight list items hold a TextBlock where loose ones hold a Paragraph.
		return []Node{&Paragraph{Children: c.children(v)}}
	case *ast.List:
		l := &List{Ordered: v.IsOrdered(), Children: c.children(v)}
		if l.Ordered {
			l.Start = v.Start
			l.HasStart = true
		}
		return []Node{l}
	case *ast.ListItem:
		return []Node{&ListItem{Children: c.children(v)}}
	case *ast.FencedCodeBlock:
		return []Node{&Code{Lang: string(v.Language(c.src)), Value: c.lines(v)}}
	case *ast.CodeBlock:
		return []Node{&Code{Value: c.lines(v)}}
	case *ast.Text:
		return c.text(v)
	case *ast.String:
		return []Node{&Text{Value: string(v.Value)}}
	case *ast.Emphasis:
		if v.Level >= 2 {
			return []Node{&Strong{Children: c.children(v)}}
		}
		return []Node{&Emphasis{Children: c.children(v)}}
	case *ast.CodeSpan:
		return []Node{&InlineCode{Value: c.codeSpan(v)}}
	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < v.Segments.Len(); i++ {
			seg := v.Segments.At(i)
			buf.Write(seg.Value(c.src))
		}
		return []Node{&Other{Kind: "RawHTML", Value: htmlText(buf.String())}}
	case *ast.HTMLBlock:
		return []Node{&Other{Kind: "HTMLBlock", Value: htmlText(c.lines(v))}}
	case *ast.AutoLink:
		return []Node{&Other{Kind: "AutoLink", Value: string(v.Label(c.src))}}
	}
	return []Node{&Other{Kind: n.Kind().String(), Children: c.children(n)}}
}

func (c *converter) text(t *ast.Text) []Node {
	value := t.Value(c.src)
	if !t.IsRaw() {
		value = util.UnescapePunctuations(value)
		value = util.ResolveNumericReferences(value)
		value = util.ResolveEntityNames(value)
	}
	out := []Node{&Text{Value: string(value)}}
	switch {
	case t.HardLineBreak():
		out = append(out, &Break{})
	case t.SoftLineBreak():
		out[0].(*Text).Value += "\n"
	}
	return out
}

// codeSpan joins the segments of a code span; line endings become spaces.
func (c *converter) codeSpan(n *ast.CodeSpan) string {
	var buf bytes.Buffer
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		switch v := ch.(type) {
		case *ast.Text:
			buf.Write(v.Segment.Value(c.src))
			if v.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(v.Value)
		}
	}
	return buf.String()
}

// lines concatenates the raw lines of a block without the final newline.
func (c *converter) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(c.src))
	}
	return string(bytes.TrimSuffix(bytes.TrimSuffix(buf.Bytes(), []byte("\n")), []byte("\r")))
}
