package export

import (
	"bytes"
	"context"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/dgallion1/docexport/internal/mdast"
)

// htmlPage wraps goldmark's fragment output in a complete HTML5 document.
const htmlPage = `<!DOCTYPE html>
<html lang="%s">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

// DefaultHighlightStyle is the chroma style used for fenced code.
const DefaultHighlightStyle = "github"

// HTMLExporter converts Markdown to a standalone HTML5 page. A title in the
// front matter becomes the page title.
type HTMLExporter struct {
	md goldmark.Markdown
}

// NewHTMLExporter returns an HTMLExporter highlighting code with the named
// chroma style, or DefaultHighlightStyle when style is empty.
func NewHTMLExporter(style string) *HTMLExporter {
	if style == "" {
		style = DefaultHighlightStyle
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.TabWidth(4),
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &HTMLExporter{md: md}
}

func (e *HTMLExporter) Export(ctx context.Context, markdown string) (Exported, error) {
	if err := ctx.Err(); err != nil {
		return Exported{}, err
	}

	meta, body, err := mdast.SplitFrontMatter([]byte(markdown))
	if err != nil {
		return Exported{}, newError(KindMarkdown, FormatHTML, err)
	}

	var buf bytes.Buffer
	if err := e.md.Convert(body, &buf); err != nil {
		return Exported{}, newError(KindMarkdown, FormatHTML, fmt.Errorf("convert markdown: %w", err))
	}

	title := meta.Title
	if title == "" {
		title = "Document"
	}
	lang := meta.Lang
	if lang == "" {
		lang = "en"
	}
	page := fmt.Sprintf(htmlPage, html.EscapeString(lang), html.EscapeString(title), buf.String())

	return Exported{
		Data:      []byte(page),
		MediaType: MediaTypeHTML,
		Extension: string(FormatHTML),
	}, nil
}
