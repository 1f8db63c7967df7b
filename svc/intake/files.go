package intake

import (
	"fmt"
	"mime"
	"strings"

	"github.com/proclimb/minisystem/pkg/file"
	"github.com/proclimb/minisystem/pkg/validator"
)

// DefaultMaxUploadBytes is the per-document ceiling (2 MiB).
const DefaultMaxUploadBytes int64 = 2 << 20

// AllowedMediaTypes lists the accepted document types. "image/jpg" is not a
// registered type but some clients declare it.
var AllowedMediaTypes = []string{"image/png", "image/jpeg", "image/jpg"}

// Uploads maps a slot to its descriptor. A missing or nil entry means no file
// was chosen.
type Uploads map[string]*file.Descriptor

// FileChecker validates upload descriptors independently of storage.
type FileChecker struct {
	maxBytes int64
}

// NewFileChecker returns a checker with the given ceiling. Non-positive
// values fall back to DefaultMaxUploadBytes.
func NewFileChecker(maxBytes int64) FileChecker {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return FileChecker{maxBytes: maxBytes}
}

// Check validates the descriptor for slot. Size is checked before type.
func (c FileChecker) Check(slot string, d *file.Descriptor) *validator.ValidationError {
	if d == nil {
		return nil
	}

	tooLarge := validator.MaxNum(slot, d.Size, c.maxBytes).WithKind(validator.KindTooLarge)
	tooLarge.Error.TranslationValues["limit"] = formatBytes(c.maxBytes)

	return validator.First(
		coded(tooLarge, "document.too_large"),
		coded(validator.InList(slot, baseMediaType(d.MediaType), AllowedMediaTypes).
			WithKind(validator.KindUnsupportedType), "document.unsupported_type"),
	)
}

// baseMediaType lowercases and drops parameters.
func baseMediaType(v string) string {
	if mt, _, err := mime.ParseMediaType(v); err == nil {
		return mt
	}
	if i := strings.IndexByte(v, ';'); i >= 0 {
		v = v[:i]
	}
	return strings.ToLower(strings.TrimSpace(v))
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%dB", n)
	}
}
