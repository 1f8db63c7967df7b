package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// File describes a stored object.
type File struct {
	Key       string // storage key, relative to the backend root
	Filename  string // sanitized client filename
	Size      int64  // bytes actually written
	MediaType string // detected from content
}

// Descriptor is what upload constraint checks see about an uploaded file.
// MediaType comes from content sniffing, never from the filename.
type Descriptor struct {
	Filename  string
	Size      int64
	MediaType string
}

// Storage abstracts where uploaded documents end up.
type Storage interface {
	// Save stores the upload under key and returns metadata.
	Save(ctx context.Context, fh *multipart.FileHeader, key string) (*File, error)
	// Delete removes a single object.
	Delete(ctx context.Context, key string) error
	// URL returns the public URL for a key.
	URL(key string) string
}

// Describe builds a Descriptor from a multipart upload.
// Size is taken from the header; the media type is sniffed from the first bytes.
func Describe(fh *multipart.FileHeader) (Descriptor, error) {
	if fh == nil {
		return Descriptor{}, ErrNilFileHeader
	}

	mediaType, err := DetectMIMEType(fh)
	if err != nil {
		return Descriptor{}, err
	}

	return Descriptor{
		Filename:  SanitizeFilename(fh.Filename),
		Size:      fh.Size,
		MediaType: mediaType,
	}, nil
}

// DetectMIMEType detects the media type by reading the file content.
// http.DetectContentType looks at no more than the first 512 bytes.
func DetectMIMEType(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNilFileHeader
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	buffer := make([]byte, 512)
	n, err := io.ReadFull(f, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}

	mediaType := http.DetectContentType(buffer[:n])
	// Drop parameters such as "; charset=utf-8".
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	return mediaType, nil
}

// ExtensionFor returns the canonical file extension for a media type,
// falling back to the extension of filename.
func ExtensionFor(mediaType, filename string) string {
	switch mediaType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	}
	return strings.ToLower(filepath.Ext(SanitizeFilename(filename)))
}

// SanitizeFilename strips path components and NUL bytes from a client filename.
// Returns "unnamed" when nothing usable is left.
//
//	file.SanitizeFilename("../../../etc/passwd")  // "passwd"
//	file.SanitizeFilename("C:\\Users\\免許証.png") // "免許証.png"
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}
