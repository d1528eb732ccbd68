// Package photo implements the flat-file store for uploaded employee photos.
//
// FILENAME SCHEME:
// Files are named "<xid>.<ext>" — an opaque generated identifier, never
// anything derived from user input. Deriving filenames from form fields
// (name, phone, ...) invites path injection and silent overwrites when two
// employees share a name. xid gives us a 20-char URL-safe, collision-free
// stem with zero coordination.
//
// Stored paths are relative to the store root ("photos/<xid>.jpg" style
// references live in the database); the store resolves them on access and
// refuses anything that would escape its root.
package photo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/xid"
)

// allowedExtensions mirrors the upload widget's accepted photo types.
var allowedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
}

var ErrUnsupportedType = errors.New("photo: unsupported file type")

// Store is a directory of image files.
type Store struct {
	root string
}

// NewStore creates the backing directory (mkdir -p semantics) and returns
// the store. The directory persisting across restarts is the whole point —
// photo references in the database outlive the process.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("photo: creating store directory %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

// Save writes the uploaded bytes under a fresh opaque filename and returns
// the relative path to record in the database. The extension comes from the
// uploaded file's name and is allowlisted — everything else about the
// original filename is discarded.
func (s *Store) Save(data []byte, ext string) (string, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	name := xid.New().String() + "." + ext
	if err := os.WriteFile(filepath.Join(s.root, name), data, 0o644); err != nil {
		return "", fmt.Errorf("photo: writing %s: %w", name, err)
	}

	return name, nil
}

// Open returns the photo bytes for a stored path.
// A missing or unreadable file is reported to the caller, who renders a
// placeholder — it must never take the rest of the page down.
func (s *Store) Open(path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("photo: reading %s: %w", path, err)
	}
	return data, nil
}

// Exists reports whether the stored path currently resolves to a file.
func (s *Store) Exists(path string) bool {
	full, err := s.resolve(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(full)
	return err == nil
}

// Remove deletes a stored photo, tolerating an already-missing target.
// Record deletion calls this best-effort: if the file is gone (or was never
// written), the database row is still the source of truth and the remove
// flow proceeds.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("photo: removing %s: %w", path, err)
	}
	return nil
}

// resolve joins a stored relative path against the root and rejects any
// result that escapes it. Paths in the database are written only by Save,
// but the check keeps a corrupted or hand-edited row from becoming a
// directory traversal.
func (s *Store) resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("photo: empty path")
	}
	full := filepath.Join(s.root, filepath.Clean("/"+path))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("photo: path %q escapes store root", path)
	}
	return full, nil
}
