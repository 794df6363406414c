package wordml

import (
	"strings"

	"github.com/dgallion1/docexport/internal/mdast"
)

// promotedDepth is the heading depth given to a bold-led paragraph.
const promotedDepth = 2

// Promotion is a paragraph reinterpreted as a heading plus optional body.
type Promotion struct {
	Heading *mdast.Strong
	Body    string // remainder with leading newlines stripped; "" when none
}

// PromoteBoldLine reports whether p should render as a heading. Two shapes
// qualify: a lone Strong child, or a Strong child followed by a Text child
// that starts on a new line.
func PromoteBoldLine(p *mdast.Paragraph) (Promotion, bool) {
	if p == nil {
		return Promotion{}, false
	}
	switch len(p.Children) {
	case 1:
		if s, ok := p.Children[0].(*mdast.Strong); ok {
			return Promotion{Heading: s}, true
		}
	case 2:
		s, ok := p.Children[0].(*mdast.Strong)
		if !ok {
			return Promotion{}, false
		}
		t, ok := p.Children[1].(*mdast.Text)
		if !ok || !strings.HasPrefix(t.Value, "\n") {
			return Promotion{}, false
		}
		return Promotion{Heading: s, Body: strings.TrimLeft(t.Value, "\n")}, true
	}
	return Promotion{}, false
}
