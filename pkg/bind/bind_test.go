package bind_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/novastreet/storefront/pkg/bind"
)

type productForm struct {
	Name     string   `form:"name" validate:"required"`
	Price    *float64 `form:"price" validate:"required,gte=0"`
	Discount *float64 `form:"discount" validate:"nullable,gte=0"`
	Sizes    []string `form:"sizes,json"`
	Stock    string   `form:"stock" validate:"required,in=in stock,out of stock"`

	Image     *multipart.FileHeader   `file:"image"`
	SubImages []*multipart.FileHeader `file:"subImages"`
}

// buildMultipart assembles a multipart request from fields and named file parts.
func buildMultipart(t *testing.T, fields map[string][]string, files map[string][]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, values := range fields {
		for _, v := range values {
			if err := w.WriteField(name, v); err != nil {
				t.Fatalf("write field %s: %v", name, err)
			}
		}
	}
	for slot, names := range files {
		for _, fname := range names {
			fw, err := w.CreateFormFile(slot, fname)
			if err != nil {
				t.Fatalf("create file part %s: %v", slot, err)
			}
			fw.Write([]byte("fake image bytes")) //nolint:errcheck
		}
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/products", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestMultipartBindsScalars(t *testing.T) {
	req := buildMultipart(t, map[string][]string{
		"name":  {"Denim Jacket"},
		"price": {"2499"},
		"stock": {"in stock"},
	}, nil)

	var in productForm
	errs, err := bind.Multipart(req, &in)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(errs) > 0 {
		t.Fatalf("unexpected field errors: %v", errs)
	}

	if in.Name != "Denim Jacket" {
		t.Errorf("name = %q", in.Name)
	}
	if in.Price == nil || *in.Price != 2499 {
		t.Errorf("price = %v", in.Price)
	}
	if in.Discount != nil {
		t.Errorf("absent discount should stay nil, got %v", *in.Discount)
	}
}

func TestMultipartNonNumericPrice(t *testing.T) {
	req := buildMultipart(t, map[string][]string{
		"name":  {"Denim Jacket"},
		"price": {"abc"},
		"stock": {"in stock"},
	}, nil)

	var in productForm
	errs, err := bind.Multipart(req, &in)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, ok := errs["price"]; !ok {
		t.Fatalf("expected price field error, got: %v", errs)
	}
}

func TestMultipartJSONSizes(t *testing.T) {
	req := buildMultipart(t, map[string][]string{
		"name":  {"Denim Jacket"},
		"price": {"2499"},
		"stock": {"in stock"},
		"sizes": {`["S","M","L"]`},
	}, nil)

	var in productForm
	errs, _ := bind.Multipart(req, &in)
	if len(errs) > 0 {
		t.Fatalf("unexpected field errors: %v", errs)
	}
	if len(in.Sizes) != 3 || in.Sizes[0] != "S" || in.Sizes[2] != "L" {
		t.Errorf("sizes = %v", in.Sizes)
	}
}

func TestMultipartMalformedSizes(t *testing.T) {
	req := buildMultipart(t, map[string][]string{
		"name":  {"Denim Jacket"},
		"price": {"2499"},
		"stock": {"in stock"},
		"sizes": {"S,M,L"},
	}, nil)

	var in productForm
	errs, _ := bind.Multipart(req, &in)
	if _, ok := errs["sizes"]; !ok {
		t.Fatalf("expected sizes field error, got: %v", errs)
	}
}

func TestMultipartRepeatedScalarCollapsesToFirst(t *testing.T) {
	req := buildMultipart(t, map[string][]string{
		"name":  {"First", "Second"},
		"price": {"10"},
		"stock": {"in stock"},
	}, nil)

	var in productForm
	errs, _ := bind.Multipart(req, &in)
	if len(errs) > 0 {
		t.Fatalf("unexpected field errors: %v", errs)
	}
	if in.Name != "First" {
		t.Errorf("expected first value, got %q", in.Name)
	}
}

func TestMultipartFileSlots(t *testing.T) {
	req := buildMultipart(t, map[string][]string{
		"name":  {"Denim Jacket"},
		"price": {"2499"},
		"stock": {"in stock"},
	}, map[string][]string{
		"image":     {"front.jpg"},
		"subImages": {"side.jpg", "back.jpg", "detail.jpg"},
	})

	var in productForm
	errs, _ := bind.Multipart(req, &in)
	if len(errs) > 0 {
		t.Fatalf("unexpected field errors: %v", errs)
	}

	if in.Image == nil || in.Image.Filename != "front.jpg" {
		t.Fatalf("image slot not bound: %+v", in.Image)
	}
	if len(in.SubImages) != 3 {
		t.Fatalf("expected 3 sub images, got %d", len(in.SubImages))
	}
	// Original request order matters for display ordering downstream.
	for i, want := range []string{"side.jpg", "back.jpg", "detail.jpg"} {
		if in.SubImages[i].Filename != want {
			t.Errorf("subImages[%d] = %q, want %q", i, in.SubImages[i].Filename, want)
		}
	}
}

func TestMultipartMissingFilesLeaveZeroValues(t *testing.T) {
	req := buildMultipart(t, map[string][]string{
		"name":  {"Denim Jacket"},
		"price": {"2499"},
		"stock": {"in stock"},
	}, nil)

	var in productForm
	errs, _ := bind.Multipart(req, &in)
	if len(errs) > 0 {
		t.Fatalf("unexpected field errors: %v", errs)
	}
	if in.Image != nil {
		t.Error("image should be nil when no part is sent")
	}
	if in.SubImages != nil {
		t.Error("subImages should stay nil when no parts are sent")
	}
}

func TestMultipartNotMultipartBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader("plain"))
	req.Header.Set("Content-Type", "text/plain")

	var in productForm
	_, err := bind.Multipart(req, &in)
	if err == nil {
		t.Fatal("expected parse error for non-multipart body")
	}
}

func TestJSONBind(t *testing.T) {
	type loginForm struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"shopper@example.com","password":"secret123"}`))

	var in loginForm
	errs, err := bind.JSON(req, &in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(errs) > 0 {
		t.Fatalf("unexpected field errors: %v", errs)
	}
	if in.Email != "shopper@example.com" {
		t.Errorf("email = %q", in.Email)
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"nope"}`))
	in = loginForm{}
	errs, err = bind.JSON(req, &in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := errs["email"]; !ok {
		t.Errorf("expected email error, got: %v", errs)
	}
	if _, ok := errs["password"]; !ok {
		t.Errorf("expected password error, got: %v", errs)
	}
}

func TestJSONMalformedBody(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))

	var dest in
	_, err := bind.JSON(req, &dest)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
