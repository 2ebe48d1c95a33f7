// Package storage is the asset store behind the product catalog: uploaded
// product images are written through a Disk and addressed by relative path.
//
// Two drivers are available:
//   - "local"  — the public directory on the local filesystem (default)
//   - "s3"     — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once, then use the default-disk helpers:
//
//	storage.Connect()
//	path, err := storage.SaveUpload(fileHeader)
//	// path == "/uploads/1714828800123-9f86d081-photo.jpg"
package storage

import "io"

// Disk is the asset store driver interface.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Size returns the byte size of the file.
	Size(path string) (int64, error)

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string

	// MakeDirectory creates directory (and any parents). Idempotent.
	MakeDirectory(path string) error

	// Files lists non-recursive file paths directly inside directory.
	Files(directory string) ([]string, error)
}
