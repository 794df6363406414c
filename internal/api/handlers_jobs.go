package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/docexport/internal/export"
	"github.com/dgallion1/docexport/internal/pipeline"
)

func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(true); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	formats := make([]export.Format, 0, len(req.Formats))
	seen := make(map[export.Format]bool)
	for _, name := range req.Formats {
		f, err := export.ParseFormat(name)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	if req.Template != "" && !s.engine.HasTemplate(req.Template) {
		jsonError(w, fmt.Sprintf("%s: %s", export.ErrTemplateNotFound, req.Template), http.StatusUnprocessableEntity)
		return
	}

	job := pipeline.NewJob(pipeline.Request{
		Template: req.Template,
		Data:     req.Data,
		Markdown: req.Markdown,
		Formats:  formats,
		Name:     sanitizeFilename(req.Name),
	})

	if err := s.orchestrator.Submit(job); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, pipeline.ErrQueueFull) {
			code = http.StatusServiceUnavailable
		}
		jsonError(w, err.Error(), code)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   pipeline.StatusQueued,
		"formats":  formats,
		"poll_url": fmt.Sprintf("/api/jobs/%s/status", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) handleJobResult(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	out, ok := job.Result(format)
	if !ok {
		status, _ := job.State()
		jsonError(w, fmt.Sprintf("no %s result (job %s)", format, status), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", out.MediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, job.Name, out.Extension))
	w.Header().Set("X-Export-ID", job.ID)
	w.Write(out.Data)
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"formats":     s.engine.SupportedFormats(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}

func (s *Server) handleExportStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"window": "1h",
		"stats":  s.engine.Stats(),
	})
}
