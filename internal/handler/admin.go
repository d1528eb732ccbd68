package handler

import (
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/employee-directory/internal/apperror"
	"github.com/sakif/employee-directory/internal/auth"
	"github.com/sakif/employee-directory/internal/model"
	"github.com/sakif/employee-directory/internal/photo"
	"github.com/sakif/employee-directory/internal/service"
)

// maxUploadSize caps a photo upload at 10 MB — plenty for a passport photo,
// small enough that a fat upload can't exhaust memory.
const maxUploadSize = 10 << 20

// AdminHandler serves the password-gated management portal.
//
// STATE MACHINE:
// GET /admin renders one of two things depending on the session cookie:
//   - no valid session → the login form (Unauthenticated)
//   - valid session    → the add/remove panel (Authenticated)
//
// POST /admin/login moves between them; wrong password re-renders the login
// form with an inline error, an empty password just re-shows the prompt.
//
// FLASH NOTICES:
// Add/remove results are carried across the POST→redirect→GET hop as query
// parameters (?notice=, ?warning=, ?error=). No session storage to clean up,
// and a refresh never re-submits the form.
type AdminHandler struct {
	templates *template.Template
	svc       *service.DirectoryService
	verifier  *auth.Verifier
	tokens    *auth.TokenService
	logger    *slog.Logger
}

func NewAdminHandler(
	templateDir string,
	svc *service.DirectoryService,
	verifier *auth.Verifier,
	tokens *auth.TokenService,
	logger *slog.Logger,
) (*AdminHandler, error) {
	tmpl, err := template.ParseFiles(
		filepath.Join(templateDir, "base.html"),
		filepath.Join(templateDir, "admin.html"),
	)
	if err != nil {
		return nil, err
	}

	return &AdminHandler{
		templates: tmpl,
		svc:       svc,
		verifier:  verifier,
		tokens:    tokens,
		logger:    logger,
	}, nil
}

// adminPage is the data passed to the admin template.
type adminPage struct {
	Title     string
	Authed    bool
	Employees []model.Employee // remove-flow selector options (Authed only)
	Notice    string
	Warning   string
	Error     string
}

// HandleAdmin serves the admin portal page (login form or panel).
//
// HTTP: GET /admin
func (h *AdminHandler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	page := adminPage{
		Title:   "Admin Portal",
		Authed:  auth.IsAdmin(r.Context()),
		Notice:  r.URL.Query().Get("notice"),
		Warning: r.URL.Query().Get("warning"),
		Error:   r.URL.Query().Get("error"),
	}

	if page.Authed {
		employees, err := h.svc.List(r.Context(), "")
		if err != nil {
			h.logger.Error("failed to load employees for admin panel", slog.String("error", err.Error()))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		page.Employees = employees
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "base", page); err != nil {
		h.logger.Error("failed to render template", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// HandleLogin checks the admin password and opens a session.
//
// HTTP: POST /admin/login  (form field: password)
//
// Three outcomes, matching the portal's gate:
//   - empty password  → back to the prompt, no error (the user just hasn't tried yet)
//   - wrong password  → inline "Incorrect Password" error
//   - right password  → session cookie set, panel shown with a success notice
func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	password := r.PostFormValue("password")
	if password == "" {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	if err := h.verifier.Verify(password); err != nil {
		h.logger.Warn("admin login rejected", slog.String("remote", r.RemoteAddr))
		h.redirect(w, r, url.Values{"error": {"Incorrect Password"}})
		return
	}

	token, err := h.tokens.Generate()
	if err != nil {
		h.logger.Error("failed to issue session token", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	auth.SetSessionCookie(w, token)

	h.logger.Info("admin logged in", slog.String("remote", r.RemoteAddr))
	h.redirect(w, r, url.Values{"notice": {"Authentication Successful"}})
}

// HandleLogout clears the session cookie.
//
// HTTP: POST /admin/logout
func (h *AdminHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// HandleAdd accepts the add-employee form.
//
// HTTP: POST /admin/employees  (multipart form)
//
// Fields: name, email, phone, domain, linkedin, photo (file).
// Name, email, and photo are required; the rest may be blank. Validation
// failures come back as a single inline error, and nothing is persisted.
func (h *AdminHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.redirect(w, r, url.Values{"error": {"Upload too large or malformed."}})
		return
	}

	input := service.AddInput{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Phone:    r.PostFormValue("phone"),
		Domain:   r.PostFormValue("domain"),
		LinkedIn: r.PostFormValue("linkedin"),
	}

	// A missing file is not a request error — it's a missing required field,
	// and the service reports it together with name/email presence.
	file, header, err := r.FormFile("photo")
	if err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			h.logger.Error("failed to read photo upload", slog.String("error", readErr.Error()))
			h.redirect(w, r, url.Values{"error": {"Could not read the uploaded photo."}})
			return
		}
		input.PhotoData = data
		input.PhotoExt = strings.TrimPrefix(filepath.Ext(header.Filename), ".")
	}

	employee, err := h.svc.Add(r.Context(), input)
	if err != nil {
		h.redirect(w, r, url.Values{"error": {addErrorMessage(err)}})
		return
	}

	h.redirect(w, r, url.Values{"notice": {"Employee '" + employee.Name + "' added successfully!"}})
}

// HandleRemove deletes the selected employee.
//
// HTTP: POST /admin/employees/{id}/delete
//
// Unknown ids are a no-op with an informational notice — the record may have
// been removed from another session between render and submit.
func (h *AdminHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid employee id", http.StatusBadRequest)
		return
	}

	result, err := h.svc.Remove(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to remove employee",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		h.redirect(w, r, url.Values{"error": {"Could not delete the employee record."}})
		return
	}

	values := url.Values{}
	switch {
	case !result.Removed:
		values.Set("notice", "Employee was already removed.")
	case result.FileWarning != "":
		values.Set("notice", "Employee record deleted.")
		values.Set("warning", result.FileWarning)
	default:
		values.Set("notice", "Employee record deleted.")
	}
	h.redirect(w, r, values)
}

// redirect sends the browser back to the admin page with flash parameters.
func (h *AdminHandler) redirect(w http.ResponseWriter, r *http.Request, values url.Values) {
	target := "/admin"
	if encoded := values.Encode(); encoded != "" {
		target += "?" + encoded
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// addErrorMessage picks the inline message for a failed add.
func addErrorMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && errors.Is(err, apperror.ErrValidation) {
		return appErr.Message
	}
	if errors.Is(err, photo.ErrUnsupportedType) {
		return "Photo must be a JPG or PNG file."
	}
	return "Could not save the employee record."
}
