package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"text/template"
	"time"

	"github.com/dgallion1/docexport/internal/typst"
	"github.com/dgallion1/docexport/internal/wordml"
)

// Options configures the built-in exporters of an Engine.
type Options struct {
	Docx           wordml.Config
	PDFTemplate    string // Typst template with a {{content}} placeholder
	Compiler       typst.Compiler
	HighlightStyle string
	Logger         *slog.Logger
}

// Engine holds named Markdown templates and one Exporter per format.
// It is safe for concurrent use.
type Engine struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
	exporters map[Format]Exporter
	stats     *Stats
	log       *slog.Logger
}

// NewEngine returns an Engine with the md, html, pdf and docx exporters
// registered.
func NewEngine(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	docxCfg := opts.Docx
	if docxCfg == (wordml.Config{}) {
		docxCfg = wordml.DefaultConfig()
	}

	e := &Engine{
		templates: make(map[string]*template.Template),
		exporters: make(map[Format]Exporter),
		stats:     NewStats(time.Hour),
		log:       log,
	}
	e.Register(FormatMarkdown, MarkdownExporter{})
	e.Register(FormatHTML, NewHTMLExporter(opts.HighlightStyle))
	e.Register(FormatPDF, NewPDFExporter(opts.PDFTemplate, opts.Compiler))
	e.Register(FormatDocx, NewDocxExporter(docxCfg))
	return e
}

// Register installs x for format, replacing any previous exporter.
func (e *Engine) Register(format Format, x Exporter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.exporters[format] = x
}

// Unregister removes the exporter for format.
func (e *Engine) Unregister(format Format) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.exporters, format)
}

// SupportedFormats returns the registered formats in a stable order.
func (e *Engine) SupportedFormats() []Format {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]Format, 0, len(e.exporters))
	for _, f := range Formats {
		if _, ok := e.exporters[f]; ok {
			out = append(out, f)
		}
	}
	var extra []Format
	for f := range e.exporters {
		if !isBuiltin(f) {
			extra = append(extra, f)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

func isBuiltin(f Format) bool {
	for _, b := range Formats {
		if b == f {
			return true
		}
	}
	return false
}

// RegisterTemplate parses text as a Go text/template under name. A missing
// key in the data is an execution error rather than "<no value>".
func (e *Engine) RegisterTemplate(name, text string) error {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return newError(KindTemplateRegister, "", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates[name] = tmpl
	return nil
}

// HasTemplate reports whether name is registered.
func (e *Engine) HasTemplate(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.templates[name]
	return ok
}

// Render executes the named template with data and returns the Markdown.
func (e *Engine) Render(name string, data any) (string, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[name]
	e.mu.RUnlock()
	if !ok {
		return "", newError(KindTemplateRender, "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", newError(KindTemplateRender, "", err)
	}
	return buf.String(), nil
}

// Convert exports markdown in format. Either the complete payload or a
// single *Error is returned.
func (e *Engine) Convert(ctx context.Context, markdown string, format Format) (Exported, error) {
	e.mu.RLock()
	x, ok := e.exporters[format]
	e.mu.RUnlock()
	if !ok {
		err := newError(KindUnsupportedFormat, format, ErrUnsupportedFormat)
		e.log.Warn("export rejected", "format", format, "error", err)
		return Exported{}, err
	}

	start := time.Now()
	out, err := x.Export(ctx, markdown)
	e.stats.Record(format, time.Since(start), err != nil)
	if err != nil {
		err = classify(format, err)
		kind, _ := KindOf(err)
		e.log.Error("export failed", "format", format, "kind", kind.String(), "error", err)
		return Exported{}, err
	}

	e.log.Info("export completed",
		"format", format,
		"bytes", len(out.Data),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// Stats returns latency aggregates per format over the last hour.
func (e *Engine) Stats() map[Format]LatencySnapshot {
	return e.stats.Snapshot()
}

// RenderAndConvert renders the named template and exports the result.
func (e *Engine) RenderAndConvert(ctx context.Context, name string, data any, format Format) (Exported, error) {
	md, err := e.Render(name, data)
	if err != nil {
		return Exported{}, err
	}
	return e.Convert(ctx, md, format)
}

// classify makes sure err is an *Error tagged with format.
func classify(format Format, err error) error {
	var xe *Error
	if errors.As(err, &xe) {
		if xe.Format == "" {
			xe.Format = format
		}
		return xe
	}
	kind := KindMarkdown
	switch format {
	case FormatDocx:
		kind = KindDocx
	case FormatPDF:
		kind = KindPDF
	}
	return newError(kind, format, err)
}
