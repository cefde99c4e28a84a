// Package uploads owns the on-disk asset lifecycle: extension and size
// policy, collision-resistant naming, and idempotent removal.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxImageBytes caps uploaded images at 5 MB. Videos carry no cap.
const MaxImageBytes = 5 << 20

var (
	ErrDisallowedType = errors.New("file type not allowed")
	ErrTooLarge       = errors.New("file exceeds size limit")
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
}

var videoExts = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".mkv": true,
	".webm": true, ".flv": true, ".wmv": true,
}

// StorageError wraps a filesystem failure while saving or removing an asset.
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string { return fmt.Sprintf("uploads: %s: %v", e.Op, e.Err) }
func (e StorageError) Unwrap() error { return e.Err }

// Store manages one upload directory.
type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, StorageError{"create upload directory", err}
	}
	return &Store{Dir: dir}, nil
}

// SaveImage validates an uploaded image against the extension and size
// policy, then stores it under a generated name and returns that name.
func (s *Store) SaveImage(fh *multipart.FileHeader, prefix string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !imageExts[ext] {
		return "", ErrDisallowedType
	}
	if fh.Size > MaxImageBytes {
		return "", ErrTooLarge
	}
	return s.save(fh, prefix, ext)
}

// SaveVideo stores an uploaded video. Only the extension is policed.
func (s *Store) SaveVideo(fh *multipart.FileHeader, prefix string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !videoExts[ext] {
		return "", ErrDisallowedType
	}
	return s.save(fh, prefix, ext)
}

// save copies the upload to disk under <prefix>_<uuid><ext>. The caller's
// original filename is never persisted or trusted.
func (s *Store) save(fh *multipart.FileHeader, prefix, ext string) (string, error) {
	name := fmt.Sprintf("%s_%s%s", prefix, uuid.New().String(), ext)

	src, err := fh.Open()
	if err != nil {
		return "", StorageError{"open upload", err}
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", StorageError{"create file", err}
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", StorageError{"write file", err}
	}
	return name, nil
}

// Remove deletes a stored asset by name. Already-missing files are a no-op.
// Any path components are stripped, so legacy "images/<name>" values resolve
// to the same flat directory.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return StorageError{"remove file", err}
	}
	return nil
}

// RemoveAll removes every named asset, tolerating individual failures.
func (s *Store) RemoveAll(names []string) {
	for _, n := range names {
		_ = s.Remove(n)
	}
}

// Exists reports whether a stored asset is present on disk.
func (s *Store) Exists(name string) bool {
	if name == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(s.Dir, filepath.Base(name)))
	return err == nil
}
