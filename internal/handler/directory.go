// Package handler contains HTTP request handlers for the directory application.
//
// HANDLER RESPONSIBILITIES:
// 1. Parse the incoming HTTP request (query params, form fields, multipart files)
// 2. Call the directory service
// 3. Write the HTTP response (rendered template, JSON, or image bytes)
//
// Handlers contain no business logic — they are the glue between HTTP and
// the service layer.
package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/sakif/employee-directory/internal/model"
	"github.com/sakif/employee-directory/internal/service"
)

// DirectoryHandler renders the public, read-only directory page.
//
// Templates are parsed once at construction (expensive) and reused on every
// request (cheap). base.html defines the page chrome with a {{template
// "content" .}} slot; directory.html fills it.
type DirectoryHandler struct {
	templates *template.Template
	svc       *service.DirectoryService
	logger    *slog.Logger
}

func NewDirectoryHandler(templateDir string, svc *service.DirectoryService, logger *slog.Logger) (*DirectoryHandler, error) {
	tmpl, err := template.ParseFiles(
		filepath.Join(templateDir, "base.html"),
		filepath.Join(templateDir, "directory.html"),
	)
	if err != nil {
		return nil, err
	}

	return &DirectoryHandler{
		templates: tmpl,
		svc:       svc,
		logger:    logger,
	}, nil
}

// directoryPage is the data passed to the directory template.
type directoryPage struct {
	Title     string
	Query     string
	Employees []model.Employee
	Count     int
	Empty     bool // true when the whole store is empty (different message than "no matches")
}

// HandleDirectory serves the public view.
//
// HTTP: GET /?q=<search>
//
// The q parameter filters by case-insensitive substring against name OR
// domain; an empty or absent q shows everyone. Each card's photo and QR
// image are separate requests (/employees/{id}/photo and /employees/{id}/qr),
// so a broken photo file degrades one <img>, never the page.
func (h *DirectoryHandler) HandleDirectory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	employees, err := h.svc.List(r.Context(), query)
	if err != nil {
		h.logger.Error("failed to render directory", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	page := directoryPage{
		Title:     "Employee Directory",
		Query:     query,
		Employees: employees,
		Count:     len(employees),
	}

	// "Database is empty" and "your search matched nothing" read differently.
	if len(employees) == 0 && query == "" {
		page.Empty = true
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "base", page); err != nil {
		h.logger.Error("failed to render template", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
