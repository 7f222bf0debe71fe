package upload

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/brandkit/pkg/filescan"
)

// Handler exposes the upload service over HTTP.
type Handler struct {
	svc         *Service
	cfg         Config
	log         *slog.Logger
	healthcheck func(context.Context) error
}

// NewHandler builds the HTTP surface. healthcheck may be nil when the
// service runs without a database (offline scan mode).
func NewHandler(svc *Service, cfg Config, log *slog.Logger, healthcheck func(context.Context) error) *Handler {
	return &Handler{svc: svc, cfg: cfg, log: log, healthcheck: healthcheck}
}

// Router mounts all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Post("/uploads", h.handleUpload)
	r.Post("/uploads/batch", h.handleBatchUpload)

	r.Route("/quarantine", func(r chi.Router) {
		r.Get("/", h.handleQuarantineList)
		r.Post("/{id}/release", h.handleQuarantineRelease)
		r.Delete("/", h.handleQuarantineClear)
	})

	r.Get("/health", h.handleHealth)

	return r
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.cfg.MemoryBufferBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	fhs := r.MultipartForm.File["file"]
	if len(fhs) == 0 {
		writeError(w, http.StatusBadRequest, ErrMissingFile.Error())
		return
	}

	f, err := newMultipartFile(fhs[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer func() { _ = f.Close() }()

	result, err := h.svc.Process(r.Context(), f)
	if err != nil {
		h.writeProcessError(w, r, err)
		return
	}

	status := http.StatusCreated
	if !result.Accepted {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, result)
}

func (h *Handler) handleBatchUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.cfg.MemoryBufferBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	fhs := r.MultipartForm.File["files"]
	if len(fhs) == 0 {
		writeError(w, http.StatusBadRequest, ErrMissingFile.Error())
		return
	}

	files := make([]filescan.FileHandle, 0, len(fhs))
	for _, fh := range fhs {
		f, err := newMultipartFile(fh)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer func() { _ = f.Close() }()
		files = append(files, f)
	}

	results, err := h.svc.ProcessBatch(r.Context(), files)
	if err != nil {
		h.writeProcessError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

type quarantineEntry struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *Handler) handleQuarantineList(w http.ResponseWriter, r *http.Request) {
	records := h.svc.Quarantine().List()
	entries := make([]quarantineEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, quarantineEntry{
			ID:        rec.ID,
			FileName:  rec.File.Name(),
			Reason:    rec.Reason,
			Timestamp: rec.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": entries})
}

func (h *Handler) handleQuarantineRelease(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	f, ok := h.svc.Quarantine().Release(id)
	if !ok {
		writeError(w, http.StatusNotFound, ErrUnknownRecord.Error())
		return
	}

	h.log.InfoContext(r.Context(), "quarantined file released", "quarantine_id", id, "file", f.Name())
	writeJSON(w, http.StatusOK, map[string]any{
		"released":  true,
		"file_name": f.Name(),
	})
}

func (h *Handler) handleQuarantineClear(w http.ResponseWriter, r *http.Request) {
	h.svc.Quarantine().Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.healthcheck != nil {
		if err := h.healthcheck(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeProcessError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrDuplicateUpload):
		writeError(w, http.StatusConflict, "identical content already stored")
	default:
		h.log.ErrorContext(r.Context(), "upload processing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "upload processing failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
