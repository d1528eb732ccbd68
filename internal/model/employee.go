// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Employee represents one row of the company directory.
//
// The ID is assigned by SQLite (INTEGER PRIMARY KEY AUTOINCREMENT), so it is
// monotonically increasing and never reused after a delete. All the text
// fields are free-form — the directory deliberately enforces presence only,
// not format: a phone number is whatever the admin typed into the form.
//
// PhotoPath is a relative reference into the photo store, not an absolute
// filesystem path. It may point at a file that no longer exists (removal is
// best-effort), so readers must treat a missing file as a normal condition.
type Employee struct {
	ID        int64     `json:"id"        db:"id"`
	Name      string    `json:"name"      db:"name"`
	Email     string    `json:"email"     db:"email"`
	Phone     string    `json:"phone"     db:"phone"`
	Domain    string    `json:"domain"    db:"domain"` // Department or title, e.g. "Marketing"
	LinkedIn  string    `json:"linkedin"  db:"linkedin"`
	PhotoPath string    `json:"photoPath" db:"photo_path"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Label is the human-readable identifier shown in the admin remove selector.
// Two employees can share a label — deletion always resolves through the ID.
func (e Employee) Label() string {
	return e.Name + " | " + e.Domain
}
