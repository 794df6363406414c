package export

import "context"

// MarkdownExporter returns the Markdown text unchanged.
type MarkdownExporter struct{}

func (MarkdownExporter) Export(ctx context.Context, markdown string) (Exported, error) {
	if err := ctx.Err(); err != nil {
		return Exported{}, err
	}
	return Exported{
		Data:      []byte(markdown),
		MediaType: MediaTypeMarkdown,
		Extension: string(FormatMarkdown),
	}, nil
}
