package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/employee-directory/internal/service"
)

// EmployeeHandler exposes the read-only JSON listing.
//
// The HTML directory page is the primary interface; this endpoint exists for
// scripts and the odd curl — same data, same filter semantics, no write
// operations (all writes go through the admin portal).
type EmployeeHandler struct {
	svc    *service.DirectoryService
	logger *slog.Logger
}

func NewEmployeeHandler(svc *service.DirectoryService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, logger: logger}
}

// HandleList returns employees as JSON, optionally filtered.
//
// HTTP: GET /api/employees?q=<search>
//
// RESPONSE:
//
//	[
//	  {"id":1,"name":"Ada Lovelace","email":"ada@x.com","phone":"555-0100",
//	   "domain":"Engineering","linkedin":"","photoPath":"...","createdAt":"..."},
//	  ...
//	]
func (h *EmployeeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error("failed to list employees", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, employees)
}
