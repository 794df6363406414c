package typst

import (
	"strconv"
	"strings"

	"github.com/dgallion1/docexport/internal/mdast"
)

// Placeholder marks where the rendered body goes in a template.
const Placeholder = "{{content}}"

// DefaultTemplate sets an A4 page with an 11pt serif body.
const DefaultTemplate = `
#set page(paper: "a4")
#set text(font: "Liberation Serif", 11pt)


{{content}}
`

// Inject replaces the first Placeholder in template with body.
func Inject(template, body string) string {
	return strings.Replace(template, Placeholder, body, 1)
}

// Renderer turns a Markdown tree into Typst source. Bold-led paragraphs
// stay ordinary paragraphs here.
type Renderer struct {
	template string
}

// NewRenderer returns a Renderer that injects into template, or into
// DefaultTemplate when template is empty.
func NewRenderer(template string) *Renderer {
	if template == "" {
		template = DefaultTemplate
	}
	return &Renderer{template: template}
}

// Document renders root and injects it into the template.
func (r *Renderer) Document(root *mdast.Root) string {
	return Inject(r.template, r.Source(root))
}

// Source renders the blocks of root without a template.
func (r *Renderer) Source(root *mdast.Root) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	for _, n := range root.Children {
		b.WriteString(r.block(n))
	}
	return b.String()
}

func (r *Renderer) block(n mdast.Node) string {
	switch v := n.(type) {
	case *mdast.Heading:
		return "\n" + strings.Repeat("=", v.Depth) + " " + r.inlines(v.Children) + "\n\n"
	case *mdast.Paragraph:
		txt := r.inlines(v.Children)
		if strings.TrimSpace(txt) == "" {
			return ""
		}
		return txt + "\n\n"
	case *mdast.Code:
		return fence + v.Lang + "\n" + DefuseFence(v.Value) + "\n" + fence + "\n\n"
	case *mdast.List:
		return r.list(v)
	}
	if mdast.IsInline(n) {
		if txt := r.inlines([]mdast.Node{n}); txt != "" {
			return txt + "\n\n"
		}
	}
	return ""
}

// list writes one line per item. Nested list lines are indented by two
// spaces under their parent item, and the list ends with a blank line.
func (r *Renderer) list(l *mdast.List) string {
	var out strings.Builder
	ordinal := 1
	if l.HasStart {
		ordinal = l.Start
	}
	for _, n := range l.Children {
		item, ok := n.(*mdast.ListItem)
		if !ok {
			continue
		}
		var buf strings.Builder
		for _, c := range item.Children {
			switch v := c.(type) {
			case *mdast.Paragraph:
				if buf.Len() > 0 {
					buf.WriteByte(' ')
				}
				buf.WriteString(r.inlines(v.Children))
			case *mdast.List:
				for _, line := range strings.Split(r.list(v), "\n") {
					if strings.TrimSpace(line) == "" {
						continue
					}
					buf.WriteString("\n  ")
					buf.WriteString(line)
				}
			default:
				buf.WriteString(r.block(c))
			}
		}
		text := strings.TrimSpace(buf.String())
		if l.Ordered {
			out.WriteString(strconv.Itoa(ordinal) + ". " + text + "\n")
			ordinal++
		} else {
			out.WriteString("- " + text + "\n")
		}
	}
	out.WriteByte('\n')
	return out.String()
}

func (r *Renderer) inlines(nodes []mdast.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch v := n.(type) {
		case *mdast.Text:
			b.WriteString(EscapeText(v.Value))
		case *mdast.InlineCode:
			b.WriteString(RawInline(v.Value))
		case *mdast.Code:
			b.WriteString(RawInline(v.Value))
		case *mdast.Strong:
			b.WriteString("*" + r.inlines(v.Children) + "*")
		case *mdast.Emphasis:
			b.WriteString("_" + r.inlines(v.Children) + "_")
		case *mdast.Break:
			b.WriteString(" \\\n")
		case *mdast.Other:
			b.WriteString(EscapeText(v.Value))
			b.WriteString(r.inlines(v.Children))
		default:
			b.WriteString(r.inlines(mdast.Children(n)))
		}
	}
	return b.String()
}
