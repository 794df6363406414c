// Package export turns rendered Markdown into output payloads. Each format
// has an Exporter; the Engine adds templates and format dispatch on top.
package export

import "context"

// Media types of the built-in exporters.
const (
	MediaTypeMarkdown = "text/markdown"
	MediaTypeHTML     = "text/html"
	MediaTypePDF      = "application/pdf"
	MediaTypeDocx     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Exported is the payload of one successful export.
type Exported struct {
	Data      []byte
	MediaType string
	Extension string
}

// Exporter converts Markdown text into one output format. Implementations
// hold only immutable configuration and are safe for concurrent use.
type Exporter interface {
	Export(ctx context.Context, markdown string) (Exported, error)
}

// ExporterFunc adapts a function to Exporter.
type ExporterFunc func(ctx context.Context, markdown string) (Exported, error)

// Export calls f.
func (f ExporterFunc) Export(ctx context.Context, markdown string) (Exported, error) {
	return f(ctx, markdown)
}
