package wordml

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
)

// ParagraphInfo is what Inspect reads back from one w:p element.
type ParagraphInfo struct {
	Text          string
	SpacingBefore int
	LeftIndent    int
	HangingIndent int
	Runs          []Run
}

// Inspect parses a .docx container and returns its body paragraphs in
// order. Items other than paragraphs are skipped.
func Inspect(data []byte) ([]ParagraphInfo, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var out []ParagraphInfo
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		info := ParagraphInfo{}
		if props := para.Properties; props != nil {
			if props.Spacing != nil {
				info.SpacingBefore = props.Spacing.Before
			}
			if props.Ind != nil {
				info.LeftIndent = props.Ind.Left
				info.HangingIndent = props.Ind.Hanging
			}
		}
		var text strings.Builder
		for _, child := range para.Children {
			run, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			r := inspectRun(run)
			if r.Break {
				text.WriteByte('\n')
			}
			text.WriteString(r.Text)
			info.Runs = append(info.Runs, r)
		}
		info.Text = text.String()
		out = append(out, info)
	}
	return out, nil
}

func inspectRun(run *docx.Run) Run {
	var r Run
	var text strings.Builder
	for _, rc := range run.Children {
		switch v := rc.(type) {
		case *docx.Text:
			text.WriteString(v.Text)
		case *docx.BarterRabbet:
			r.Break = true
		}
	}
	r.Text = text.String()
	if rp := run.RunProperties; rp != nil {
		r.Bold = rp.Bold != nil
		r.Italic = rp.Italic != nil
		if rp.Fonts != nil {
			r.Font = rp.Fonts.ASCII
		}
		if rp.Size != nil {
			r.Size, _ = strconv.Atoi(rp.Size.Val)
		}
	}
	return r
}
