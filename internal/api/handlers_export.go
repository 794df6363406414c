package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/dgallion1/docexport/internal/export"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9._ -]+$`)

// exportRequest is the body of POST /api/export and POST /api/jobs.
// Exactly one of Markdown and Template is set.
type exportRequest struct {
	Markdown string         `json:"markdown"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
	Format   string         `json:"format"`
	Formats  []string       `json:"formats"`
	Name     string         `json:"name"`
}

func (req exportRequest) Validate(async bool) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Markdown,
			validation.When(req.Template == "", validation.Required.Error("markdown or template is required"))),
		validation.Field(&req.Template,
			validation.When(req.Markdown != "", validation.Empty.Error("markdown and template are mutually exclusive"))),
		validation.Field(&req.Format, validation.When(!async, validation.Required)),
		validation.Field(&req.Formats, validation.When(async, validation.Required)),
		validation.Field(&req.Name, validation.Length(0, 128), validation.Match(namePattern)),
	)
}

// templateRequest is the body of POST /api/templates.
type templateRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

func (req templateRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 128), validation.Match(namePattern)),
		validation.Field(&req.Source, validation.Required),
	)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return false
		}
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(false); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	exportID := uuid.NewString()
	log := s.log.With("export_id", exportID, "format", format)

	var out export.Exported
	if req.Template != "" {
		out, err = s.engine.RenderAndConvert(r.Context(), req.Template, req.Data, format)
	} else {
		out, err = s.engine.Convert(r.Context(), req.Markdown, format)
	}
	if err != nil {
		log.Error("export request failed", "error", err)
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	name := sanitizeFilename(req.Name)
	w.Header().Set("Content-Type", out.MediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, name, out.Extension))
	w.Header().Set("X-Export-ID", exportID)
	w.WriteHeader(http.StatusOK)
	w.Write(out.Data)
}

func (s *Server) handleRegisterTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.engine.RegisterTemplate(req.Name, req.Source); err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"name": req.Name})
}

// statusFor maps an export failure to an HTTP status.
func statusFor(err error) int {
	kind, ok := export.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case export.KindUnsupportedFormat:
		return http.StatusBadRequest
	case export.KindTemplateRegister, export.KindTemplateRender, export.KindMarkdown:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// sanitizeFilename turns a requested name into a slug safe for
// Content-Disposition and file systems.
func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.TrimSpace(name))
	name = strings.TrimSuffix(name, filepath.Ext(name))
	normalized, err := slug.Normalize(name)
	if err != nil || normalized == "" || normalized == "." {
		return "document"
	}
	return normalized
}
