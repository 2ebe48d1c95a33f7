package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// useTempDisk points the default disk at a throwaway root for the test.
func useTempDisk(t *testing.T) *localDisk {
	t.Helper()

	d := &localDisk{root: t.TempDir(), baseURL: ""}
	RegisterDisk("test", d)
	SetDefault("test")
	t.Cleanup(func() { SetDefault("local") })
	return d
}

// uploadHeader builds a real *multipart.FileHeader by round-tripping a
// multipart request, the same way the HTTP layer produces them.
func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write(content) //nolint:errcheck
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse multipart: %v", err)
	}
	return req.MultipartForm.File["image"][0]
}

func TestLocalRootBeforeConnect(t *testing.T) {
	managerMu.Lock()
	saved, had := disks["local"]
	delete(disks, "local")
	managerMu.Unlock()
	t.Cleanup(func() {
		managerMu.Lock()
		if had {
			disks["local"] = saved
		}
		managerMu.Unlock()
	})

	// Must not panic and must still report a usable root.
	if root := LocalRoot(); root == "" {
		t.Error("expected a fallback root before Connect")
	}
}

func TestLocalDiskRoundTrip(t *testing.T) {
	useTempDisk(t)

	if err := Put("uploads/a.txt", []byte("hello")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !Exists("uploads/a.txt") {
		t.Fatal("expected file to exist after put")
	}

	data, err := Get("uploads/a.txt")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q", data)
	}

	if err := Delete("uploads/a.txt"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if Exists("uploads/a.txt") {
		t.Error("expected file gone after delete")
	}
}

func TestLocalDiskDeleteMissingIsNoError(t *testing.T) {
	useTempDisk(t)

	if err := Delete("uploads/never-there.txt"); err != nil {
		t.Errorf("deleting a missing file should not fail: %v", err)
	}
}

func TestSaveUploadStoresUnderUploads(t *testing.T) {
	useTempDisk(t)

	fh := uploadHeader(t, "tee shirt.jpg", []byte("image bytes"))

	path, err := SaveUpload(fh)
	if err != nil {
		t.Fatalf("save upload: %v", err)
	}

	if !strings.HasPrefix(path, "/uploads/") {
		t.Errorf("path = %q, want /uploads/ prefix", path)
	}
	if !strings.HasSuffix(path, "-tee_shirt.jpg") {
		t.Errorf("path = %q, want sanitized original name suffix", path)
	}
	if !Exists(strings.TrimPrefix(path, "/")) {
		t.Error("stored file not found on disk")
	}
}

func TestSaveUploadStripsDirectoryComponents(t *testing.T) {
	useTempDisk(t)

	fh := uploadHeader(t, "../../etc/passwd", []byte("nope"))

	path, err := SaveUpload(fh)
	if err != nil {
		t.Fatalf("save upload: %v", err)
	}
	if strings.Contains(path, "..") {
		t.Errorf("path %q leaks directory traversal", path)
	}
	if !strings.HasSuffix(path, "-passwd") {
		t.Errorf("path = %q, want bare base name", path)
	}
}

func TestSaveUploadConcurrentSameNameNeverCollides(t *testing.T) {
	useTempDisk(t)

	const n = 30

	var (
		mu    sync.Mutex
		paths = make(map[string]bool, n)
		wg    sync.WaitGroup
	)

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			fh := uploadHeader(t, "same.jpg", []byte("x"))
			path, err := SaveUpload(fh)
			if err != nil {
				t.Errorf("save upload: %v", err)
				return
			}
			mu.Lock()
			paths[path] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(paths) != n {
		t.Errorf("expected %d distinct paths, got %d", n, len(paths))
	}
}

func TestSaveUploadsPreservesOrder(t *testing.T) {
	useTempDisk(t)

	fhs := []*multipart.FileHeader{
		uploadHeader(t, "side.jpg", []byte("1")),
		uploadHeader(t, "back.jpg", []byte("2")),
		uploadHeader(t, "detail.jpg", []byte("3")),
	}

	paths, err := SaveUploads(fhs)
	if err != nil {
		t.Fatalf("save uploads: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 paths, got %d", len(paths))
	}
	for i, want := range []string{"side.jpg", "back.jpg", "detail.jpg"} {
		if !strings.HasSuffix(paths[i], "-"+want) {
			t.Errorf("paths[%d] = %q, want suffix %q", i, paths[i], want)
		}
	}
}

func TestUniqueNameFallsBackForEmptyOriginal(t *testing.T) {
	name := uniqueName("")
	if !strings.HasSuffix(name, "-upload") {
		t.Errorf("name = %q, want -upload suffix", name)
	}
}
