package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/employee-directory/internal/apperror"
	"github.com/sakif/employee-directory/internal/model"
	"github.com/sakif/employee-directory/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// `var _ X = (*Y)(nil)` verifies at compile time that *DB implements
// repository.EmployeeRepository. If a method is missing or has the wrong
// signature, the build fails here instead of at some distant call site.
var _ repository.EmployeeRepository = (*DB)(nil)

// Create inserts a new employee row and fills in the assigned ID.
//
// POINTER RECEIVER (*model.Employee):
// We take a pointer so the caller's struct gets the database-assigned ID and
// timestamp after Create returns. SQLite assigns the id (AUTOINCREMENT), and
// sql.Result.LastInsertId hands it back to us.
//
// PARAMETERIZED QUERIES (the ? placeholders):
// Never build SQL with string concatenation — that's how SQL injection
// happens. The driver escapes each bound value safely.
func (db *DB) Create(ctx context.Context, employee *model.Employee) error {
	employee.CreatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO employees (name, email, phone, domain, linkedin, photo_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		employee.Name,
		employee.Email,
		employee.Phone,
		employee.Domain,
		employee.LinkedIn,
		employee.PhotoPath,
		employee.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating employee: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading inserted employee id: %w", err)
	}
	employee.ID = id

	return nil
}

// GetByID retrieves a single employee by primary key.
// sql.ErrNoRows is translated into the domain NotFound error so callers
// never see raw database sentinels.
func (db *DB) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	var e model.Employee

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, email, phone, domain, linkedin, photo_path, created_at
		 FROM employees
		 WHERE id = ?`,
		id,
	).Scan(
		&e.ID,
		&e.Name,
		&e.Email,
		&e.Phone,
		&e.Domain,
		&e.LinkedIn,
		&e.PhotoPath,
		&e.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("employee", id)
		}
		return nil, fmt.Errorf("sqlite: getting employee %d: %w", id, err)
	}

	return &e, nil
}

// List returns employees in insertion order, optionally filtered.
//
// FILTER SEMANTICS:
// opts.Query is a case-insensitive substring match against name OR domain.
// SQLite's LIKE is already case-insensitive for ASCII, but we lower() both
// sides explicitly so the behaviour doesn't depend on PRAGMA case_sensitive_like.
// Searching "mark" therefore finds a row with domain "Marketing" even when
// the name contains no "mark".
//
// An empty table (or an empty filter result) yields an empty slice, never an
// error — the public view treats "nothing to show" as a normal state.
func (db *DB) List(ctx context.Context, opts repository.ListOptions) ([]model.Employee, error) {
	query := `SELECT id, name, email, phone, domain, linkedin, photo_path, created_at
	          FROM employees`
	args := []any{}

	if opts.Query != "" {
		query += ` WHERE lower(name) LIKE '%' || lower(?) || '%'
		              OR lower(domain) LIKE '%' || lower(?) || '%'`
		args = append(args, opts.Query, opts.Query)
	}

	query += ` ORDER BY id`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing employees: %w", err)
	}
	// CRITICAL: rows holds a pool connection until closed.
	defer rows.Close()

	employees := []model.Employee{}

	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Email, &e.Phone,
			&e.Domain, &e.LinkedIn, &e.PhotoPath, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning employee row: %w", err)
		}
		employees = append(employees, e)
	}

	// rows.Err() catches failures that happened during iteration.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating employees: %w", err)
	}

	return employees, nil
}

// Delete removes an employee row by ID.
//
// Deleting an id that doesn't exist is NOT an error — zero rows affected is
// the contract's no-op case (the admin may be racing another admin's delete).
// The bool return tells the caller whether a row actually went away, so the
// UI can phrase its notice accordingly.
func (db *DB) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM employees WHERE id = ?`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting employee %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
