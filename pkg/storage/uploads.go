package storage

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/novastreet/storefront/config"
	"github.com/novastreet/storefront/pkg/metrics"
)

// SaveUpload persists one uploaded file under the uploads directory and
// returns its web path ("/uploads/<name>").
//
// Stored names are qualified with a millisecond timestamp and a random UUID
// fragment, so concurrent uploads of files sharing an original name never
// collide — uniqueness comes from the per-write token, not from
// serialization.
func SaveUpload(fh *multipart.FileHeader) (string, error) {
	dir := config.UploadsDir()
	if err := MakeDirectory(dir); err != nil {
		return "", fmt.Errorf("storage: ensure uploads dir: %w", err)
	}

	name := uniqueName(fh.Filename)
	path := dir + "/" + name

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("storage: open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	if err := PutStream(path, src); err != nil {
		return "", fmt.Errorf("storage: store upload %s: %w", fh.Filename, err)
	}

	metrics.AssetsStored.Inc()
	metrics.AssetBytes.Observe(float64(fh.Size))

	return "/" + path, nil
}

// SaveUploads persists a sequence of uploaded files, preserving their
// original order in the returned paths.
func SaveUploads(fhs []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		p, err := SaveUpload(fh)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// uniqueName builds "<unixms>-<uuid8>-<original>" from the client-supplied
// file name, stripped of any directory components.
func uniqueName(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	token := uuid.NewString()[:8]
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), token, base)
}
