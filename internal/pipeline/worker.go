package pipeline

import (
	"context"
	"log/slog"

	"github.com/dgallion1/docexport/internal/export"
)

// Worker processes a single export job.
type Worker struct {
	engine *export.Engine
	log    *slog.Logger

	maxConcurrentExport int
}

func NewWorker(engine *export.Engine, log *slog.Logger, maxExport int) *Worker {
	if maxExport <= 0 {
		maxExport = 1
	}
	return &Worker{
		engine:              engine,
		log:                 log,
		maxConcurrentExport: maxExport,
	}
}

// Process renders the job's Markdown and exports every requested format.
// Each format ends with exactly one result or one error.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "name", job.Name)

	// Phase 1: Render
	job.SetStatus(StatusRendering, "rendering")
	markdown := job.markdown
	if job.template != "" {
		md, err := w.engine.Render(job.template, job.data)
		if err != nil {
			log.Error("render failed", "template", job.template, "error", err)
			job.AddError("", err)
			job.SetStatus(StatusFailed, "rendering")
			return
		}
		markdown = md
	}
	job.SetContentHash(ContentHashHex([]byte(markdown)))

	if len(job.Formats) == 0 {
		job.SetStatus(StatusCompleted, "done")
		return
	}

	// Phase 2: Export formats with bounded concurrency.
	job.SetStatus(StatusExporting, "exporting")
	type formatResult struct {
		format export.Format
		out    export.Exported
		err    error
	}
	results := make(chan formatResult, len(job.Formats))
	sem := make(chan struct{}, w.maxConcurrentExport)

	for _, f := range job.Formats {
		sem <- struct{}{}
		go func(f export.Format) {
			defer func() { <-sem }()
			out, err := w.engine.Convert(ctx, markdown, f)
			results <- formatResult{format: f, out: out, err: err}
		}(f)
	}

	succeeded, failed := 0, 0
	for range job.Formats {
		r := <-results
		if r.err != nil {
			log.Error("export failed", "format", r.format, "error", r.err)
			job.AddError(r.format, r.err)
			failed++
			continue
		}
		job.SetResult(r.format, r.out)
		succeeded++
	}

	log.Info("job finished", "succeeded", succeeded, "failed", failed)

	switch {
	case failed == 0:
		job.SetStatus(StatusCompleted, "done")
	case succeeded > 0:
		job.SetStatus(StatusPartial, "done")
	default:
		job.SetStatus(StatusFailed, "exporting")
	}
}
