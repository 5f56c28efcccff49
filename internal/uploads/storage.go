// Package uploads stores progress-report attachments on local disk, the
// deployment model the portal ships with. Stored names are uuid-prefixed so
// uploads never collide or leak the original filename into the URL space.
package uploads

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// StoredFile describes one persisted attachment
type StoredFile struct {
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
}

// Store writes uploads under a single directory
type Store struct {
	dir string
}

// NewStore creates the uploads directory if needed
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory uploads are served from
func (s *Store) Dir() string {
	return s.dir
}

// Save persists one multipart file and returns its stored metadata
func (s *Store) Save(fh *multipart.FileHeader) (StoredFile, error) {
	name := uuid.NewString() + filepath.Ext(fh.Filename)

	src, err := fh.Open()
	if err != nil {
		return StoredFile{}, err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return StoredFile{}, err
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return StoredFile{}, err
	}

	return StoredFile{
		Name:         name,
		OriginalName: fh.Filename,
		Size:         fh.Size,
	}, nil
}
