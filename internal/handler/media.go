package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/employee-directory/internal/apperror"
	"github.com/sakif/employee-directory/internal/metrics"
	"github.com/sakif/employee-directory/internal/model"
	"github.com/sakif/employee-directory/internal/photo"
	"github.com/sakif/employee-directory/internal/qr"
	"github.com/sakif/employee-directory/internal/service"
)

// placeholderSVG is served when an employee has no readable photo.
// Inline SVG keeps the fallback inside this binary — the directory must not
// depend on a third-party placeholder site being up.
const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="150" height="150" viewBox="0 0 150 150">
  <rect width="150" height="150" fill="#e0e0e0"/>
  <circle cx="75" cy="55" r="25" fill="#a0a0a0"/>
  <path d="M30 135 a45 45 0 0 1 90 0 z" fill="#a0a0a0"/>
  <text x="75" y="146" font-family="sans-serif" font-size="10" fill="#707070" text-anchor="middle">No Image</text>
</svg>`

// MediaHandler serves the per-employee image endpoints: the stored photo and
// the generated QR code. These are separate requests from the directory page
// so one unreadable file degrades one <img>, never the whole listing.
type MediaHandler struct {
	svc     *service.DirectoryService
	photos  *photo.Store
	metrics *metrics.Metrics // may be nil (tests)
	logger  *slog.Logger
}

func NewMediaHandler(svc *service.DirectoryService, photos *photo.Store, m *metrics.Metrics, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		svc:     svc,
		photos:  photos,
		metrics: m,
		logger:  logger,
	}
}

// HandlePhoto serves an employee's photo.
//
// HTTP: GET /employees/{id}/photo
//
// FAILURE POLICY:
// A missing or unreadable photo file is a NORMAL condition (removal is
// best-effort, references aren't validated at write time), so it serves the
// placeholder with 200 rather than a 404 — the card's <img> always renders.
// Only an unknown employee id is a 404.
func (h *MediaHandler) HandlePhoto(w http.ResponseWriter, r *http.Request) {
	employee, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if employee.PhotoPath != "" {
		data, err := h.photos.Open(employee.PhotoPath)
		if err == nil {
			w.Header().Set("Content-Type", contentTypeForPhoto(employee.PhotoPath))
			w.Write(data)
			return
		}
		h.logger.Warn("could not load employee photo",
			slog.Int64("id", employee.ID),
			slog.String("path", employee.PhotoPath),
			slog.String("error", err.Error()),
		)
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(placeholderSVG))
}

// HandleQR serves a freshly encoded QR image of the employee's contact
// fields.
//
// HTTP: GET /employees/{id}/qr
//
// Regenerated on every request — no cache. At directory scale the encode is
// single-digit milliseconds, and statelessness means a record change can
// never serve a stale code.
func (h *MediaHandler) HandleQR(w http.ResponseWriter, r *http.Request) {
	employee, ok := h.lookup(w, r)
	if !ok {
		return
	}

	png, err := qr.Encode(qr.ContactText(*employee))
	if err != nil {
		h.logger.Error("failed to encode QR",
			slog.Int64("id", employee.ID),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if h.metrics != nil {
		h.metrics.QREncodes.Inc()
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// lookup resolves the {id} path parameter to an employee. On failure it
// writes the error response itself and returns ok=false.
func (h *MediaHandler) lookup(w http.ResponseWriter, r *http.Request) (*model.Employee, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid employee id", http.StatusBadRequest)
		return nil, false
	}

	employee, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			http.NotFound(w, r)
		} else {
			h.logger.Error("failed to load employee",
				slog.Int64("id", id),
				slog.String("error", err.Error()),
			)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return nil, false
	}

	return employee, true
}

func contentTypeForPhoto(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}
