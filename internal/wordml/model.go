// Package wordml renders a Markdown tree into a word-processor document
// model: paragraphs of styled runs with spacing and indentation in twips.
// The model is packed into a .docx container by Pack.
package wordml

// Run is a contiguous span of text sharing one style. A break run carries no
// text and ends the current line inside its paragraph.
type Run struct {
	Text   string
	Break  bool
	Bold   bool
	Italic bool
	Mono   bool
	Font   string
	Size   int // half-points
}

// Paragraph is an ordered list of runs plus layout attributes in twips.
type Paragraph struct {
	Runs          []Run
	SpacingBefore int
	SpacingAfter  int
	LeftIndent    int
	HangingIndent int
}

// Text returns the concatenated run text with breaks as "\n".
func (p Paragraph) Text() string {
	n := 0
	for _, r := range p.Runs {
		n += len(r.Text) + 1
	}
	buf := make([]byte, 0, n)
	for _, r := range p.Runs {
		if r.Break {
			buf = append(buf, '\n')
			continue
		}
		buf = append(buf, r.Text...)
	}
	return string(buf)
}

// Document is the rendered output for one export call.
type Document struct {
	Paragraphs []Paragraph
}

// Config holds the immutable settings of a Renderer.
type Config struct {
	DefaultFont string
	MonoFont    string
	BodySize    int // half-points; 22 is 11pt
}

// DefaultConfig returns Times New Roman / Courier New at 11pt.
func DefaultConfig() Config {
	return Config{
		DefaultFont: "Times New Roman",
		MonoFont:    "Courier New",
		BodySize:    22,
	}
}
