package wordml

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/fumiama/go-docx"
)

// Packer turns a Document into container bytes. Pack is the go-docx
// implementation.
type Packer interface {
	Pack(doc Document, w io.Writer) error
}

// PackerFunc adapts a function to Packer.
type PackerFunc func(doc Document, w io.Writer) error

// Pack calls f.
func (f PackerFunc) Pack(doc Document, w io.Writer) error { return f(doc, w) }

// Pack writes doc to w as a .docx container with an A4 page.
//
// go-docx cannot emit w:after, so a paragraph's SpacingAfter is added to the
// next paragraph's spacing before. The trailing space of the last paragraph
// is dropped.
func Pack(doc Document, w io.Writer) error {
	f := docx.New().WithDefaultTheme()

	carry := 0
	for _, p := range doc.Paragraphs {
		dp := f.AddParagraph()
		props := &docx.ParagraphProperties{}
		if before := p.SpacingBefore + carry; before > 0 {
			props.Spacing = &docx.Spacing{Before: before}
		}
		carry = p.SpacingAfter
		if p.LeftIndent > 0 || p.HangingIndent > 0 {
			props.Ind = &docx.Ind{Left: p.LeftIndent, Hanging: p.HangingIndent}
		}
		if props.Spacing != nil || props.Ind != nil {
			dp.Properties = props
		}
		for _, run := range p.Runs {
			packRun(dp, run)
		}
	}
	f.WithA4Page()

	// WriteTo closes the zip writer in a defer and drops its error, so the
	// container is completed in memory before anything reaches w.
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("pack docx: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("pack docx: %w", err)
	}
	return nil
}

func packRun(dp *docx.Paragraph, run Run) {
	var r *docx.Run
	if run.Break {
		r = dp.AddText("")
		r.Children = append(r.Children, &docx.BarterRabbet{})
	} else {
		r = dp.AddText(run.Text)
		for _, c := range r.Children {
			if t, ok := c.(*docx.Text); ok {
				t.XMLSpace = "preserve"
			}
		}
	}
	if run.Bold {
		r.Bold()
	}
	if run.Italic {
		r.Italic()
	}
	if run.Font != "" {
		r.Font(run.Font, "", run.Font, "")
	}
	if run.Size > 0 {
		r.Size(strconv.Itoa(run.Size))
	}
}
