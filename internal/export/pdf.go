package export

import (
	"context"
	"fmt"

	"github.com/dgallion1/docexport/internal/mdast"
	"github.com/dgallion1/docexport/internal/typst"
)

// PDFExporter renders Markdown into Typst source and compiles it.
type PDFExporter struct {
	parser   *mdast.Parser
	renderer *typst.Renderer
	compiler typst.Compiler
}

// NewPDFExporter returns a PDFExporter injecting into template (the
// default template when empty) and compiling with compiler.
func NewPDFExporter(template string, compiler typst.Compiler) *PDFExporter {
	if compiler == nil {
		compiler = typst.NewCLICompiler("")
	}
	return &PDFExporter{
		parser:   mdast.NewParser(),
		renderer: typst.NewRenderer(template),
		compiler: compiler,
	}
}

// Source returns the complete Typst document for markdown without
// compiling it.
func (e *PDFExporter) Source(markdown string) (string, error) {
	_, body, err := mdast.SplitFrontMatter([]byte(markdown))
	if err != nil {
		return "", newError(KindPDF, FormatPDF, fmt.Errorf("markdown parse: %w", err))
	}
	root, err := e.parser.Parse(body)
	if err != nil {
		return "", newError(KindPDF, FormatPDF, fmt.Errorf("markdown parse: %w", err))
	}
	return e.renderer.Document(root), nil
}

func (e *PDFExporter) Export(ctx context.Context, markdown string) (Exported, error) {
	if err := ctx.Err(); err != nil {
		return Exported{}, err
	}

	src, err := e.Source(markdown)
	if err != nil {
		return Exported{}, err
	}

	data, err := e.compiler.Compile(ctx, src)
	if err != nil {
		return Exported{}, newError(KindPDF, FormatPDF, err)
	}

	return Exported{
		Data:      data,
		MediaType: MediaTypePDF,
		Extension: string(FormatPDF),
	}, nil
}
