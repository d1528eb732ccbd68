// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes the database
//
// The directory service is the only place that knows an employee record is
// really TWO things — a database row and a photo file — and owns keeping the
// pair consistent on add and remove. Handlers never touch the photo store or
// the repository directly.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/employee-directory/internal/apperror"
	"github.com/sakif/employee-directory/internal/metrics"
	"github.com/sakif/employee-directory/internal/model"
	"github.com/sakif/employee-directory/internal/repository"
)

// PhotoStore is the slice of the photo store this service needs.
// Declared here (consumer side) so tests can inject an in-memory fake —
// same reason the repository is an interface.
type PhotoStore interface {
	Save(data []byte, ext string) (string, error)
	Remove(path string) error
}

// AddInput carries the admin form fields for a new employee.
// Phone, Domain, and LinkedIn may be blank; Name, Email, and the photo are
// required.
type AddInput struct {
	Name     string
	Email    string
	Phone    string
	Domain   string
	LinkedIn string

	PhotoData []byte
	PhotoExt  string
}

// RemoveResult reports what the remove flow actually did.
type RemoveResult struct {
	Removed bool // false when the id didn't exist (no-op)

	// FileWarning is set when the database row was removed but the photo
	// file could not be — a non-fatal, accepted inconsistency. The UI shows
	// it as a warning notice.
	FileWarning string
}

// DirectoryService handles the directory's business logic.
type DirectoryService struct {
	repo    repository.EmployeeRepository
	photos  PhotoStore
	metrics *metrics.Metrics // may be nil (tests)
	logger  *slog.Logger
}

func NewDirectoryService(repo repository.EmployeeRepository, photos PhotoStore, m *metrics.Metrics, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{
		repo:    repo,
		photos:  photos,
		metrics: m,
		logger:  logger,
	}
}

// Add validates and creates a new employee record with its photo.
//
// VALIDATION CONTRACT:
// Name, email, and photo are presence-checked — nothing more. No email
// format check, no phone format check; the form is trusted to the same
// degree the original tool trusted its admins. The error message is one
// generic line, not an itemized list.
//
// ORDERING:
// The photo is written before the row is inserted so photo_path can be
// stored atomically with the rest of the record. If the insert then fails,
// we remove the just-written file — the database stays the source of truth
// and no orphan survives a failed add.
func (s *DirectoryService) Add(ctx context.Context, input AddInput) (*model.Employee, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	if input.Name == "" || input.Email == "" || len(input.PhotoData) == 0 {
		return nil, apperror.ValidationFailed("", "Name, Email, and Photo are required.")
	}

	photoPath, err := s.photos.Save(input.PhotoData, input.PhotoExt)
	if err != nil {
		s.logger.Error("failed to save photo",
			slog.String("name", input.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("saving photo: %w", err)
	}

	employee := &model.Employee{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     strings.TrimSpace(input.Phone),
		Domain:    strings.TrimSpace(input.Domain),
		LinkedIn:  strings.TrimSpace(input.LinkedIn),
		PhotoPath: photoPath,
	}

	if err := s.repo.Create(ctx, employee); err != nil {
		// Roll back the file write; losing this cleanup only costs disk space.
		if rmErr := s.photos.Remove(photoPath); rmErr != nil {
			s.logger.Warn("failed to clean up photo after insert failure",
				slog.String("path", photoPath),
				slog.String("error", rmErr.Error()),
			)
		}
		s.logger.Error("failed to create employee",
			slog.String("name", input.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating employee: %w", err)
	}

	if s.metrics != nil {
		s.metrics.PhotoBytes.Add(float64(len(input.PhotoData)))
		s.metrics.Employees.Inc()
	}

	s.logger.Info("employee added",
		slog.Int64("id", employee.ID),
		slog.String("name", employee.Name),
	)

	return employee, nil
}

// Remove deletes an employee record and, best-effort, its photo file.
//
// ORDER AND FAILURE POLICY (warn-and-proceed):
// The photo file is removed first, but a file error never blocks the row
// delete — a dangling photo file is a recoverable annoyance, an undeletable
// record is not. The file error is logged and surfaced as RemoveResult.FileWarning.
//
// Removing an id that doesn't exist is a successful no-op.
func (s *DirectoryService) Remove(ctx context.Context, id int64) (RemoveResult, error) {
	employee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.logger.Info("remove requested for unknown employee", slog.Int64("id", id))
			return RemoveResult{Removed: false}, nil
		}
		return RemoveResult{}, fmt.Errorf("looking up employee %d: %w", id, err)
	}

	result := RemoveResult{}

	if err := s.photos.Remove(employee.PhotoPath); err != nil {
		s.logger.Warn("could not delete photo file",
			slog.Int64("id", id),
			slog.String("path", employee.PhotoPath),
			slog.String("error", err.Error()),
		)
		result.FileWarning = "Could not delete image file: " + err.Error()
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return RemoveResult{}, fmt.Errorf("deleting employee %d: %w", id, err)
	}
	result.Removed = removed

	if removed && s.metrics != nil {
		s.metrics.Employees.Dec()
	}

	s.logger.Info("employee removed",
		slog.Int64("id", id),
		slog.String("name", employee.Name),
	)

	return result, nil
}

// List returns the directory, optionally filtered.
// query is matched case-insensitively against name OR domain; an empty
// query passes everything. An empty store is an empty slice, not an error.
func (s *DirectoryService) List(ctx context.Context, query string) ([]model.Employee, error) {
	employees, err := s.repo.List(ctx, repository.ListOptions{
		Query: strings.TrimSpace(query),
	})
	if err != nil {
		s.logger.Error("failed to list employees", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	return employees, nil
}

// Get returns a single employee. The media handlers (photo, QR) use this to
// resolve an id from the URL.
func (s *DirectoryService) Get(ctx context.Context, id int64) (*model.Employee, error) {
	return s.repo.GetByID(ctx, id)
}
