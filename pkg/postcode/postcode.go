package postcode

import (
	"context"
	"strings"
)

// Record is the directory entry for one postal code.
type Record struct {
	Prefecture string `json:"prefecture" yaml:"prefecture"` // 都道府県, e.g. 東京都
	City       string `json:"city" yaml:"city"`             // 市区町村, e.g. 千代田区
	Town       string `json:"town" yaml:"town"`             // 町域, may be empty
}

// Locality is City followed by Town, the form users type into the city field.
func (r Record) Locality() string {
	return r.City + r.Town
}

// Directory resolves a normalized 7-digit code to its Record.
// It returns ErrNotFound for unknown codes; any other error means the
// directory could not answer.
type Directory interface {
	Lookup(ctx context.Context, code string) (Record, error)
}

// DirectoryFunc adapts a function to Directory.
type DirectoryFunc func(ctx context.Context, code string) (Record, error)

func (f DirectoryFunc) Lookup(ctx context.Context, code string) (Record, error) {
	return f(ctx, code)
}

// Normalize strips hyphens, so "100-0001" becomes "1000001".
func Normalize(code string) string {
	return strings.ReplaceAll(strings.TrimSpace(code), "-", "")
}

// Valid reports whether code is exactly 7 ASCII digits.
func Valid(code string) bool {
	if len(code) != 7 {
		return false
	}
	for i := range len(code) {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
