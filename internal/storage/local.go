// Package storage persists uploaded media files on local disk.
// Uploads are buffered synchronously within the request; there is no
// streaming or resumable-upload support.
package storage

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
)

// LocalStore writes files under a single base directory. Object names
// are ULIDs, so names never collide and sort by creation time.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the base directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save buffers the reader to disk and returns the stored object name
// and byte count. The extension of the original file name is kept so
// files remain servable by content type.
func (s *LocalStore) Save(r io.Reader, originalName string) (string, int64, error) {
	name := ulid.MustNew(ulid.Now(), rand.Reader).String()
	if ext := sanitizeExt(originalName); ext != "" {
		name += ext
	}

	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create media file: %w", err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("write media file: %w", err)
	}

	return name, n, nil
}

// Remove deletes a stored object. A missing file is not an error:
// the row is gone either way.
func (s *LocalStore) Remove(storedName string) error {
	err := os.Remove(filepath.Join(s.dir, storedName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}

// Open returns a reader over a stored object.
func (s *LocalStore) Open(storedName string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, storedName))
	if err != nil {
		return nil, fmt.Errorf("open media file: %w", err)
	}
	return f, nil
}

// sanitizeExt extracts a safe lowercase extension from a client
// supplied file name. Anything suspicious is dropped.
func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if len(ext) < 2 || len(ext) > 8 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
