package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ostrem/partmatch/internal/apperr"
	"github.com/ostrem/partmatch/internal/reconcile"
)

// Handler holds API route handlers.
type Handler struct {
	svc            *reconcile.Service
	maxUploadBytes int64
}

// NewHandler creates a new Handler.
func NewHandler(svc *reconcile.Service, maxUploadBytes int64) *Handler {
	return &Handler{svc: svc, maxUploadBytes: maxUploadBytes}
}

// catalogID parses the {id} route parameter.
func catalogID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// ListCatalogs handles GET /api/catalogs.
//
//	@Summary		List uploaded catalogs with the active selection
//	@Tags			catalogs
//	@Produce		json
//	@Success		200	{object}	CatalogListResponse
//	@Security		BearerAuth
//	@Router			/catalogs [get]
func (h *Handler) ListCatalogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CatalogListResponse{Catalogs: h.svc.Catalogs(r.Context())})
}

// GetCatalog handles GET /api/catalogs/{id}.
//
//	@Summary		Get one catalog with a record sample
//	@Tags			catalogs
//	@Produce		json
//	@Param			id	path		string	true	"Catalog id"
//	@Success		200	{object}	CatalogDetail
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/catalogs/{id} [get]
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	id, err := catalogID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid catalog id"))
		return
	}
	detail, err := h.svc.Catalog(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get catalog failed", slog.String("id", id.String()), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// UploadCatalog handles POST /api/catalogs.
//
//	@Summary		Upload a catalog file (CSV or XLSX)
//	@Tags			catalogs
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Catalog file"
//	@Param			name	formData	string	false	"Catalog name (defaults to filename)"
//	@Success		201		{object}	CatalogSummary
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/catalogs [post]
func (h *Handler) UploadCatalog(w http.ResponseWriter, r *http.Request) {
	file, name, ok := h.formFile(w, r)
	if !ok {
		return
	}
	c, err := h.svc.UploadCatalog(r.Context(), name, file)
	if err != nil {
		h.writeUploadError(w, err)
		return
	}
	summaries := h.svc.Catalogs(r.Context())
	for _, s := range summaries {
		if s.ID == c.ID {
			writeJSON(w, http.StatusCreated, s)
			return
		}
	}
	writeJSON(w, http.StatusCreated, CatalogSummary{ID: c.ID, Name: c.Name, UploadedAt: c.UploadedAt, Records: len(c.Records)})
}

// ReplaceCatalog handles PUT /api/catalogs/{id}.
//
//	@Summary		Replace a catalog's contents in place (identity preserved)
//	@Tags			catalogs
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		string	true	"Catalog id"
//	@Param			file	formData	file	true	"Catalog file"
//	@Param			name	formData	string	false	"New catalog name"
//	@Success		200		{object}	CatalogSummary
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/catalogs/{id} [put]
func (h *Handler) ReplaceCatalog(w http.ResponseWriter, r *http.Request) {
	id, err := catalogID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid catalog id"))
		return
	}
	file, name, ok := h.formFile(w, r)
	if !ok {
		return
	}
	c, err := h.svc.ReplaceCatalog(r.Context(), id, name, file)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		h.writeUploadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CatalogSummary{ID: c.ID, Name: c.Name, UploadedAt: c.UploadedAt, Records: len(c.Records)})
}

// DeleteCatalog handles DELETE /api/catalogs/{id}.
//
//	@Summary		Delete a catalog (clears the active selection if it pointed there)
//	@Tags			catalogs
//	@Param			id	path	string	true	"Catalog id"
//	@Success		204	"Catalog deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/catalogs/{id} [delete]
func (h *Handler) DeleteCatalog(w http.ResponseWriter, r *http.Request) {
	id, err := catalogID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid catalog id"))
		return
	}
	if err := h.svc.DeleteCatalog(r.Context(), id); err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ActivateCatalog handles POST /api/catalogs/{id}/activate.
//
//	@Summary		Select the active catalog
//	@Tags			catalogs
//	@Param			id	path	string	true	"Catalog id"
//	@Success		204	"Catalog activated"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/catalogs/{id}/activate [post]
func (h *Handler) ActivateCatalog(w http.ResponseWriter, r *http.Request) {
	id, err := catalogID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid catalog id"))
		return
	}
	if err := h.svc.ActivateCatalog(r.Context(), id); err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadRequests handles POST /api/requests.
//
//	@Summary		Upload client request files, replacing the current set wholesale
//	@Tags			requests
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			files	formData	file	true	"Request files (repeatable)"
//	@Success		200		{object}	UploadResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/requests [post]
func (h *Handler) UploadRequests(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid multipart body"))
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		headers = r.MultipartForm.File["file"]
	}
	if len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("at least one file is required"))
		return
	}

	files := make([]reconcile.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("failed to read upload"))
			return
		}
		defer f.Close()
		files = append(files, reconcile.UploadFile{Name: fh.Filename, Body: f})
	}

	count, err := h.svc.UploadRequests(r.Context(), files)
	if err != nil {
		h.writeUploadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UploadResponse{Records: count})
}

// Match handles GET /api/match.
//
//	@Summary		Partition the request set against the active catalog
//	@Tags			match
//	@Produce		json
//	@Param			q	query		string	false	"Filter found pairs (case-insensitive substring)"
//	@Success		200	{object}	MatchResponse
//	@Security		BearerAuth
//	@Router			/match [get]
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	res := h.svc.Match(r.Context(), query)
	writeJSON(w, http.StatusOK, MatchResponse{
		Found:   res.Found,
		Missing: res.Missing,
		Total:   res.Total(),
		Query:   query,
	})
}

// Insights handles GET /api/insights.
//
//	@Summary		Coverage, duplicate, and top-distribution aggregates
//	@Tags			insights
//	@Produce		json
//	@Success		200	{object}	InsightsResponse
//	@Security		BearerAuth
//	@Router			/insights [get]
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Insights(r.Context()))
}

// Export handles GET /api/export.
//
//	@Summary		Download the match report as quoted CSV
//	@Tags			export
//	@Produce		text/csv
//	@Success		200	{string}	string	"CSV body"
//	@Security		BearerAuth
//	@Router			/export [get]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	body := h.svc.Export(r.Context())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="coverage-report.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// Brief handles POST /api/brief.
//
//	@Summary		Generate an AI coverage brief for the current session
//	@Tags			brief
//	@Produce		json
//	@Success		200	{object}	BriefResponse
//	@Failure		502	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/brief [post]
func (h *Handler) Brief(w http.ResponseWriter, r *http.Request) {
	text, err := h.svc.Brief(r.Context())
	if err != nil {
		// The collaborator's failure message is surfaced verbatim.
		writeJSON(w, http.StatusBadGateway, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, BriefResponse{Brief: text})
}

// formFile extracts the single "file" form part plus the optional
// "name" value. Writes the error response itself when ok is false.
func (h *Handler) formFile(w http.ResponseWriter, r *http.Request) (reconcile.UploadFile, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid multipart body"))
		return reconcile.UploadFile{}, "", false
	}
	f, fh, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("form file 'file' is required"))
		return reconcile.UploadFile{}, "", false
	}
	return reconcile.UploadFile{Name: fh.Filename, Body: f}, r.FormValue("name"), true
}

func (h *Handler) writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrUnsupportedFormat):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrTooManyRows):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		slog.Error("upload failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorBody(fmt.Sprintf("failed to parse file: %v", err)))
	}
}
