package repository

import (
	"context"

	"github.com/sakif/employee-directory/internal/model"
)

// ListOptions controls filtering of directory listings.
// Query, when non-empty, is matched case-insensitively as a substring
// against the name OR domain columns.
type ListOptions struct {
	Query string
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	GetByID(ctx context.Context, id int64) (*model.Employee, error)
	List(ctx context.Context, opts ListOptions) ([]model.Employee, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
