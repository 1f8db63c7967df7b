// Package filetest builds multipart file headers for tests.
package filetest

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
)

// Magic prefixes recognized by http.DetectContentType.
var (
	PNG  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	JPEG = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")
	GIF  = []byte("GIF89a\x01\x00\x01\x00")
	PDF  = []byte("%PDF-1.4\n")
)

// FileHeader returns a parsed multipart header holding content.
func FileHeader(t testing.TB, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := &http.Request{
		Method: http.MethodPost,
		Header: http.Header{"Content-Type": []string{writer.FormDataContentType()}},
		Body:   io.NopCloser(body),
	}
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse multipart form: %v", err)
	}

	files := req.MultipartForm.File["file"]
	if len(files) == 0 {
		t.Fatalf("multipart form has no file")
	}
	return files[0]
}

// Sized returns content of exactly n bytes starting with prefix.
func Sized(prefix []byte, n int) []byte {
	out := make([]byte, n)
	copy(out, prefix)
	return out
}
