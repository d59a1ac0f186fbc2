package server

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"classdraw/pkg/errors"
	"classdraw/pkg/layout"
	"classdraw/pkg/model"
	"classdraw/pkg/pipeline"
	"classdraw/pkg/route"
	"classdraw/pkg/store"
	"classdraw/pkg/uml"
)

// ====== Validation ======

type sourceRequest struct {
	Source string `json:"source"`
}

// handleValidate parses the UML text and returns the validation report.
// Parse failures are reported as errors; a parseable diagram always
// gets a report, even when it contains structural errors.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	d, err := uml.Parse(req.Source)
	if err != nil {
		writeError(w, err)
		return
	}

	report := model.Validate(d)
	writeJSON(w, http.StatusOK, struct {
		Valid  bool         `json:"valid"`
		Report model.Report `json:"report"`
	}{Valid: report.Exportable(), Report: report})
}

// ====== Rendering ======

type diagramRequest struct {
	Source  string   `json:"source"`
	Formats []string `json:"formats,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`
}

type diagramResponse struct {
	Artifacts map[string]string  `json:"artifacts"`
	Report    model.Report       `json:"report"`
	Layout    []layout.Warning   `json:"layout_warnings,omitempty"`
	Routes    []route.Warning    `json:"route_warnings,omitempty"`
	Stats     pipeline.Stats     `json:"stats"`
	Cache     pipeline.CacheInfo `json:"cache_info"`
	Hash      string             `json:"diagram_hash"`
}

type invalidDiagramResponse struct {
	Error  string       `json:"error"`
	Code   string       `json:"code"`
	Report model.Report `json:"report"`
}

// handleDiagram runs the full pipeline and returns the requested
// artifacts base64-encoded, alongside all warnings. Structural errors
// come back as 422 with the validation report attached.
func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	var req diagramRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	d, err := uml.Parse(req.Source)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), d, pipeline.Options{
		Formats: req.Formats,
		Refresh: req.Refresh,
	})
	if err != nil {
		if res != nil && errors.Is(err, errors.ErrCodeInvalidInput) {
			writeJSON(w, http.StatusUnprocessableEntity, invalidDiagramResponse{
				Error:  errors.UserMessage(err),
				Code:   string(errors.GetCode(err)),
				Report: res.Report,
			})
			return
		}
		writeError(w, err)
		return
	}

	encoded := make(map[string]string, len(res.Artifacts))
	for format, data := range res.Artifacts {
		encoded[format] = base64.StdEncoding.EncodeToString(data)
	}
	writeJSON(w, http.StatusOK, diagramResponse{
		Artifacts: encoded,
		Report:    res.Report,
		Layout:    res.Layout.Warnings,
		Routes:    res.Routes.Warnings,
		Stats:     res.Stats,
		Cache:     res.CacheInfo,
		Hash:      res.DiagramHash,
	})
}

// handleExport parses the source and returns its canonical form, so
// clients can normalize hand-written documents.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	d, err := uml.Parse(req.Source)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		UML string `json:"uml"`
	}{UML: uml.Encode(d)})
}

// ====== Persistence ======

type saveRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// handleSave stores a diagram after checking the source parses. The
// canonical form is stored, not the raw input.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Name == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "diagram name is required"))
		return
	}

	d, err := uml.Parse(req.Source)
	if err != nil {
		writeError(w, err)
		return
	}

	now := time.Now().UTC()
	rec := store.Record{
		ID:        model.NewID(),
		Name:      req.Name,
		Source:    uml.Encode(d),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Diagrams []store.Record `json:"diagrams"`
	}{Diagrams: records})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleDownload renders a stored diagram to PNG and serves it as an
// attachment named after the diagram.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	d, err := uml.Parse(rec.Source)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "stored diagram no longer parses"))
		return
	}

	res, err := s.runner.Execute(r.Context(), d, pipeline.Options{
		Formats: []string{pipeline.FormatPNG},
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.Name+".png"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[pipeline.FormatPNG])
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
