package postcode

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Static is an in-memory directory, loaded from YAML for offline development
// and tests:
//
//	"1000001":
//	  prefecture: 東京都
//	  city: 千代田区
//	  town: 千代田
type Static struct {
	records map[string]Record
}

// NewStatic builds a directory from records keyed by code. Keys may contain hyphens.
func NewStatic(records map[string]Record) *Static {
	s := &Static{records: make(map[string]Record, len(records))}
	for code, rec := range records {
		s.records[Normalize(code)] = rec
	}
	return s
}

// LoadStatic decodes a YAML mapping of code to record.
func LoadStatic(r io.Reader) (*Static, error) {
	var records map[string]Record
	if err := yaml.NewDecoder(r).Decode(&records); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", ErrLoadStatic, err)
	}
	for code := range records {
		if !Valid(Normalize(code)) {
			return nil, fmt.Errorf("%w: %w: %q", ErrLoadStatic, ErrInvalidCode, code)
		}
	}
	return NewStatic(records), nil
}

// LoadStaticFile reads a YAML directory file.
func LoadStaticFile(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadStatic, err)
	}
	defer func() { _ = f.Close() }()
	return LoadStatic(f)
}

func (s *Static) Lookup(ctx context.Context, code string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	rec, ok := s.records[Normalize(code)]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}
