package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/sakif/employee-directory/internal/apperror"
	"github.com/sakif/employee-directory/internal/model"
	"github.com/sakif/employee-directory/internal/repository"
)

// =========================================================================
// MOCKS
// =========================================================================
//
// The service depends on two interfaces: the repository and the photo store.
// Both get hand-written in-memory fakes here — no database, no filesystem,
// and we can flip error switches to exercise the failure paths that are
// awkward to trigger for real.

type mockEmployeeRepo struct {
	employees map[int64]*model.Employee
	nextID    int64
	createErr error
}

func newMockRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[int64]*model.Employee)}
}

func (m *mockEmployeeRepo) Create(_ context.Context, e *model.Employee) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	e.ID = m.nextID
	stored := *e
	m.employees[e.ID] = &stored
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id int64) (*model.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return nil, apperror.NotFound("employee", id)
	}
	result := *e
	return &result, nil
}

func (m *mockEmployeeRepo) List(_ context.Context, _ repository.ListOptions) ([]model.Employee, error) {
	result := make([]model.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := m.employees[id]; !ok {
		return false, nil
	}
	delete(m.employees, id)
	return true, nil
}

type mockPhotoStore struct {
	files     map[string][]byte
	saveCount int
	removeErr error
}

func newMockPhotos() *mockPhotoStore {
	return &mockPhotoStore{files: make(map[string][]byte)}
}

func (m *mockPhotoStore) Save(data []byte, ext string) (string, error) {
	m.saveCount++
	path := fmt.Sprintf("photo-%d.%s", m.saveCount, ext)
	m.files[path] = data
	return path, nil
}

func (m *mockPhotoStore) Remove(path string) error {
	if m.removeErr != nil {
		return m.removeErr
	}
	delete(m.files, path)
	return nil
}

func newTestService(t *testing.T) (*DirectoryService, *mockEmployeeRepo, *mockPhotoStore) {
	t.Helper()
	repo := newMockRepo()
	photos := newMockPhotos()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewDirectoryService(repo, photos, nil, logger), repo, photos
}

func validInput() AddInput {
	return AddInput{
		Name:      "Ada Lovelace",
		Email:     "ada@x.com",
		Phone:     "555-0100",
		Domain:    "Engineering",
		PhotoData: []byte{0xFF, 0xD8, 0xFF},
		PhotoExt:  "jpg",
	}
}

// =========================================================================
// ADD TESTS
// =========================================================================

func TestAdd(t *testing.T) {
	svc, repo, photos := newTestService(t)

	e, err := svc.Add(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if e.ID == 0 {
		t.Error("Add() did not assign an ID")
	}
	if e.Name != "Ada Lovelace" || e.Email != "ada@x.com" {
		t.Errorf("Add() stored %q/%q, want submitted values", e.Name, e.Email)
	}
	if len(repo.employees) != 1 {
		t.Errorf("record count = %d, want exactly 1", len(repo.employees))
	}
	if e.PhotoPath == "" {
		t.Error("Add() did not record a photo path")
	}
	if _, ok := photos.files[e.PhotoPath]; !ok {
		t.Errorf("photo file %q not in store", e.PhotoPath)
	}
}

func TestAdd_TrimsWhitespace(t *testing.T) {
	svc, _, _ := newTestService(t)

	input := validInput()
	input.Name = "  Ada Lovelace  "
	input.Domain = " Engineering "

	e, err := svc.Add(context.Background(), input)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if e.Name != "Ada Lovelace" || e.Domain != "Engineering" {
		t.Errorf("Add() kept whitespace: %q / %q", e.Name, e.Domain)
	}
}

func TestAdd_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AddInput)
	}{
		{"missing name", func(in *AddInput) { in.Name = "" }},
		{"whitespace-only name", func(in *AddInput) { in.Name = "   " }},
		{"missing email", func(in *AddInput) { in.Email = "" }},
		{"missing photo", func(in *AddInput) { in.PhotoData = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, photos := newTestService(t)

			input := validInput()
			tt.mutate(&input)

			_, err := svc.Add(context.Background(), input)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("Add() error = %v, want ErrValidation", err)
			}

			// Rejection means no state change anywhere.
			if len(repo.employees) != 0 {
				t.Errorf("record count = %d after rejected add, want 0", len(repo.employees))
			}
			if len(photos.files) != 0 {
				t.Errorf("photo store has %d files after rejected add, want 0", len(photos.files))
			}
		})
	}
}

func TestAdd_OptionalFieldsMayBeBlank(t *testing.T) {
	svc, _, _ := newTestService(t)

	input := validInput()
	input.Phone = ""
	input.Domain = ""
	input.LinkedIn = ""

	if _, err := svc.Add(context.Background(), input); err != nil {
		t.Errorf("Add() rejected blank optional fields: %v", err)
	}
}

func TestAdd_CleansUpPhotoOnInsertFailure(t *testing.T) {
	svc, repo, photos := newTestService(t)
	repo.createErr = errors.New("disk full")

	_, err := svc.Add(context.Background(), validInput())
	if err == nil {
		t.Fatal("Add() should have propagated the insert failure")
	}
	if len(photos.files) != 0 {
		t.Errorf("photo store has %d files after failed insert, want 0", len(photos.files))
	}
}

// =========================================================================
// REMOVE TESTS
// =========================================================================

func TestRemove(t *testing.T) {
	svc, repo, photos := newTestService(t)

	e, err := svc.Add(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	result, err := svc.Remove(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if !result.Removed {
		t.Error("Remove() reported Removed=false for an existing record")
	}
	if result.FileWarning != "" {
		t.Errorf("unexpected file warning: %q", result.FileWarning)
	}
	if len(repo.employees) != 0 {
		t.Errorf("record count = %d after remove, want 0", len(repo.employees))
	}
	if len(photos.files) != 0 {
		t.Errorf("photo store has %d files after remove, want 0", len(photos.files))
	}
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	svc, repo, _ := newTestService(t)

	if _, err := svc.Add(context.Background(), validInput()); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	result, err := svc.Remove(context.Background(), 999)
	if err != nil {
		t.Fatalf("Remove() of unknown id should not error, got %v", err)
	}
	if result.Removed {
		t.Error("Remove() reported Removed=true for unknown id")
	}
	if len(repo.employees) != 1 {
		t.Errorf("record count = %d, want 1 (store unchanged)", len(repo.employees))
	}
}

func TestRemove_FileFailureStillDeletesRow(t *testing.T) {
	svc, repo, photos := newTestService(t)

	e, err := svc.Add(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	photos.removeErr = errors.New("permission denied")

	result, err := svc.Remove(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("Remove() error = %v, want warn-and-proceed", err)
	}
	if !result.Removed {
		t.Error("row not deleted despite warn-and-proceed policy")
	}
	if result.FileWarning == "" {
		t.Error("expected a file warning when the photo could not be deleted")
	}
	if len(repo.employees) != 0 {
		t.Errorf("record count = %d, want 0 — file failure must not retain the row", len(repo.employees))
	}
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestList_EmptyStore(t *testing.T) {
	svc, _, _ := newTestService(t)

	employees, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(employees) != 0 {
		t.Errorf("List() = %d employees, want 0", len(employees))
	}
}
