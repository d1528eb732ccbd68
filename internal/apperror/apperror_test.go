// GO TESTING BASICS:
// 1. Test files MUST end in _test.go — Go's tooling auto-discovers them
// 2. Test functions MUST start with "Test" and take *testing.T as the only param
// 3. Same package as the code being tested (so we can access unexported stuff)
// 4. Run with: go test ./internal/apperror/ -v  (-v = verbose, shows each test name)
package apperror

import (
	"errors"
	"fmt"
	"testing"
)

// TABLE-DRIVEN TESTS:
// This is Go's idiomatic pattern for testing multiple cases.
// Instead of writing separate test functions, we define a slice of test cases
// and loop over them. Benefits:
// - Adding a new test case = adding one struct to the slice
// - Every case gets a name (shows up in test output)
// - DRY — the assertion logic is written once

func TestErrorsIs(t *testing.T) {
	// Each test case checks that errors.Is() correctly identifies the error type
	tests := []struct {
		name      string // Descriptive name for test output
		err       error  // The error to test
		target    error  // What we expect it to match
		wantMatch bool   // Should errors.Is() return true?
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("employee", 42),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("name", "name is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Unauthorized wraps ErrUnauthorized",
			err:       Unauthorized("incorrect password"),
			target:    ErrUnauthorized,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("employee", 42),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "ValidationFailed does NOT match ErrNotFound",
			err:       ValidationFailed("email", "email is required"),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := NotFound("employee", 7)
	if err.Error() != "employee not found with id 7" {
		t.Errorf("Error() = %q, want %q", err.Error(), "employee not found with id 7")
	}
}

func TestWrappedThroughFmtErrorf(t *testing.T) {
	// Errors wrapped further up the stack must still match via errors.Is,
	// and errors.As must still dig out the *AppError for its message/field.
	inner := ValidationFailed("photo", "photo is required")
	outer := fmt.Errorf("adding employee: %w", inner)

	if !errors.Is(outer, ErrValidation) {
		t.Error("wrapped error lost its ErrValidation identity")
	}

	var appErr *AppError
	if !errors.As(outer, &appErr) {
		t.Fatal("errors.As failed to extract *AppError from wrapped chain")
	}
	if appErr.Field != "photo" {
		t.Errorf("Field = %q, want %q", appErr.Field, "photo")
	}
}
