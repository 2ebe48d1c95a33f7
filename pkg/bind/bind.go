// Package bind decodes HTTP request bodies into typed structs and runs
// validation.
//
// Two decoders are provided: JSON for application/json bodies and Multipart
// for multipart/form-data submissions. Both normalise every field to its
// declared shape exactly once, at the boundary — handlers and services only
// ever see typed values.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/novastreet/storefront/config"
	"github.com/novastreet/storefront/pkg/validate"
)

// maxBodyBytes returns the configured JSON body size limit (default 4 MB).
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20
	}
	return n
}

// maxMultipartMemory returns the in-memory threshold for multipart parsing
// (default 32 MB); larger file parts spill to temp files.
func maxMultipartMemory() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_MULTIPART_MEMORY", "33554432"), 10, 64)
	if err != nil || n <= 0 {
		return 32 << 20
	}
	return n
}

// JSON decodes r.Body as JSON into dest and runs validation.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err = dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}

// Multipart parses r as multipart/form-data and decodes the fields into dest
// using struct tags:
//
//	form:"price"       string, float64, *float64, *string — scalar form value
//	form:"sizes,json"  []string — form value holding a JSON-encoded array
//	file:"image"       *multipart.FileHeader — first file for the slot, nil if absent
//	file:"subImages"   []*multipart.FileHeader — all files, original order kept
//
// Scalar fields sent multiple times collapse to their first value. Returns
// (errs, nil) for per-field parse or validation failures and (nil, err) when
// the multipart body itself cannot be parsed.
func Multipart(r *http.Request, dest interface{}) (map[string]string, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory()); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	errs := make(map[string]string)

	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return nil, errors.New("bind: Multipart needs a struct pointer")
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		if tag := field.Tag.Get("file"); tag != "" {
			bindFile(r, tag, value)
			continue
		}

		tag := field.Tag.Get("form")
		if tag == "" {
			continue
		}
		name, opt, _ := strings.Cut(tag, ",")

		raw, present := firstValue(r, name)
		if msg := setScalar(value, name, raw, present, opt == "json"); msg != "" {
			errs[name] = msg
		}
	}

	for name, msg := range validate.Struct(dest) {
		if _, taken := errs[name]; !taken {
			errs[name] = msg
		}
	}

	if len(errs) > 0 {
		return errs, nil
	}
	return nil, nil
}

// firstValue collapses a possibly array-shaped form field to its first value.
func firstValue(r *http.Request, name string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	vals := r.MultipartForm.Value[name]
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func setScalar(v reflect.Value, name, raw string, present, asJSON bool) string {
	if asJSON {
		if v.Kind() != reflect.Slice || v.Type().Elem().Kind() != reflect.String {
			return fmt.Sprintf("The %s field has an unsupported binding type.", name)
		}
		if !present || raw == "" {
			return "" // leave the zero slice; validation decides if that's ok
		}
		var out []string
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return fmt.Sprintf("The %s field must be a JSON array of strings.", name)
		}
		v.Set(reflect.ValueOf(out))
		return ""
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Float64:
		if !present || raw == "" {
			return ""
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Sprintf("The %s field must be a number.", name)
		}
		v.SetFloat(f)
	case reflect.Ptr:
		if !present || raw == "" {
			return ""
		}
		switch v.Type().Elem().Kind() {
		case reflect.String:
			v.Set(reflect.ValueOf(&raw))
		case reflect.Float64:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Sprintf("The %s field must be a number.", name)
			}
			v.Set(reflect.ValueOf(&f))
		default:
			return fmt.Sprintf("The %s field has an unsupported binding type.", name)
		}
	default:
		return fmt.Sprintf("The %s field has an unsupported binding type.", name)
	}
	return ""
}

func bindFile(r *http.Request, name string, v reflect.Value) {
	if r.MultipartForm == nil {
		return
	}
	files := r.MultipartForm.File[name]
	if len(files) == 0 {
		return
	}

	fileHeaderType := reflect.TypeOf((*multipart.FileHeader)(nil))

	switch {
	case v.Type() == fileHeaderType:
		v.Set(reflect.ValueOf(files[0]))
	case v.Kind() == reflect.Slice && v.Type().Elem() == fileHeaderType:
		// Original request order is preserved for secondary image slots.
		v.Set(reflect.ValueOf(files))
	}
}
