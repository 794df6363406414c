package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dgallion1/docexport/internal/mdast"
	"github.com/dgallion1/docexport/internal/wordml"
)

// DocxExporter renders Markdown into a word-processor document.
type DocxExporter struct {
	parser   *mdast.Parser
	renderer *wordml.Renderer
	packer   wordml.Packer
}

// NewDocxExporter returns a DocxExporter packing with go-docx.
func NewDocxExporter(cfg wordml.Config) *DocxExporter {
	return &DocxExporter{
		parser:   mdast.NewParser(),
		renderer: wordml.NewRenderer(cfg),
		packer:   wordml.PackerFunc(wordml.Pack),
	}
}

// WithPacker returns a copy of e that packs with p.
func (e *DocxExporter) WithPacker(p wordml.Packer) *DocxExporter {
	cp := *e
	cp.packer = p
	return &cp
}

func (e *DocxExporter) Export(ctx context.Context, markdown string) (Exported, error) {
	if err := ctx.Err(); err != nil {
		return Exported{}, err
	}

	_, body, err := mdast.SplitFrontMatter([]byte(markdown))
	if err != nil {
		return Exported{}, newError(KindMarkdown, FormatDocx, err)
	}
	root, err := e.parser.Parse(body)
	if err != nil {
		return Exported{}, newError(KindMarkdown, FormatDocx, err)
	}

	doc := e.renderer.Render(root)

	var buf bytes.Buffer
	if err := e.packer.Pack(doc, &buf); err != nil {
		return Exported{}, newError(KindDocx, FormatDocx, err)
	}
	if buf.Len() == 0 {
		return Exported{}, newError(KindDocx, FormatDocx, fmt.Errorf("pack docx: empty container"))
	}

	return Exported{
		Data:      buf.Bytes(),
		MediaType: MediaTypeDocx,
		Extension: string(FormatDocx),
	}, nil
}
