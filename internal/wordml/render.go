package wordml

import (
	"strconv"
	"strings"

	"github.com/dgallion1/docexport/internal/mdast"
)

// List indentation in twips (1440 per inch).
const (
	listBaseLeft  = 720
	listLevelStep = 360
	listHanging   = 360

	bulletGlyph = "•"
)

// Renderer converts a Markdown tree into a Document. It holds only its
// Config and is safe for concurrent use.
type Renderer struct {
	cfg Config
}

// NewRenderer returns a Renderer for cfg.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// Render renders every top-level block of root in order.
func (r *Renderer) Render(root *mdast.Root) Document {
	var doc Document
	if root == nil {
		return doc
	}
	for _, n := range root.Children {
		doc.Paragraphs = append(doc.Paragraphs, r.RenderBlock(n, 0)...)
	}
	return doc
}

// RenderBlock renders one block node at list nesting depth. Node kinds
// without a block rendering produce no paragraphs.
func (r *Renderer) RenderBlock(n mdast.Node, depth int) []Paragraph {
	switch v := n.(type) {
	case *mdast.Heading:
		return []Paragraph{r.heading(v.Depth, v.Children)}
	case *mdast.Paragraph:
		if prom, ok := PromoteBoldLine(v); ok {
			out := []Paragraph{r.heading(promotedDepth, []mdast.Node{prom.Heading})}
			if prom.Body != "" {
				out = append(out, r.body([]mdast.Node{&mdast.Text{Value: prom.Body}}))
			}
			return out
		}
		return []Paragraph{r.body(v.Children)}
	case *mdast.Code:
		return []Paragraph{r.codeBlock(v)}
	case *mdast.List:
		return r.list(v, depth)
	}
	if mdast.IsInline(n) {
		return []Paragraph{r.body([]mdast.Node{n})}
	}
	return nil
}

func (r *Renderer) heading(depth int, children []mdast.Node) Paragraph {
	before, after := HeadingSpacing(r.cfg.BodySize, depth)
	return Paragraph{
		Runs:          r.inline(children, Style{Size: HeadingSize(r.cfg.BodySize, depth)}),
		SpacingBefore: before,
		SpacingAfter:  after,
	}
}

func (r *Renderer) body(children []mdast.Node) Paragraph {
	p := r.bodyParagraph()
	p.Runs = r.inline(children, Style{})
	return p
}

func (r *Renderer) bodyParagraph() Paragraph {
	before, after := BodySpacing(r.cfg.BodySize)
	return Paragraph{SpacingBefore: before, SpacingAfter: after}
}

// codeBlock emits one monospace run per line with break runs between lines.
func (r *Renderer) codeBlock(c *mdast.Code) Paragraph {
	p := r.bodyParagraph()
	mono := Style{Mono: true}
	lines := codeLines(c.Value)
	for i, line := range lines {
		p.Runs = append(p.Runs, r.newRun(line, mono))
		if i < len(lines)-1 {
			p.Runs = append(p.Runs, r.breakRun(mono))
		}
	}
	return p
}

// codeLines splits s on "\n", drops a trailing "\r" from each line and
// does not report an empty line after a final newline.
func codeLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func listIndent(depth int) int {
	return listBaseLeft + depth*listLevelStep
}

// list renders the items of l. The first paragraph of an item carries the
// marker and a hanging indent; later paragraphs align with the item text.
func (r *Renderer) list(l *mdast.List, depth int) []Paragraph {
	var out []Paragraph
	ordinal := 1
	if l.HasStart {
		ordinal = l.Start
	}
	for _, n := range l.Children {
		item, ok := n.(*mdast.ListItem)
		if !ok {
			continue
		}
		first := true
		for _, child := range item.Children {
			switch v := child.(type) {
			case *mdast.Paragraph:
				var p Paragraph
				if first {
					p = Paragraph{LeftIndent: listIndent(depth), HangingIndent: listHanging}
					marker := bulletGlyph
					if l.Ordered {
						marker = strconv.Itoa(ordinal) + "."
					}
					p.Runs = append(p.Runs, r.newRun(marker+" ", Style{Bold: true}))
				} else {
					p = Paragraph{LeftIndent: listIndent(depth) + listHanging}
				}
				p.Runs = append(p.Runs, r.inline(v.Children, Style{})...)
				out = append(out, p)
				first = false
			case *mdast.List:
				out = append(out, r.list(v, depth+1)...)
			default:
				out = append(out, r.RenderBlock(child, depth+1)...)
			}
		}
		if l.Ordered {
			ordinal++
		}
	}
	return out
}
