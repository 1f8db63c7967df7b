package handler

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/proclimb/minisystem/pkg/validator"
)

// ValidationError maps a field to its messages. Built on url.Values for the
// slice handling.
type ValidationError url.Values

func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if msgs := e[field]; len(msgs) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msgs[0]))
		}
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func NewValidationError() ValidationError {
	return make(ValidationError)
}

func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the first message for field.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}

// AsValidationError converts validator errors found in err into a
// ValidationError. ok is false when err carries none.
func AsValidationError(err error) (ValidationError, bool) {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}

	errs := validator.ExtractValidationErrors(err)
	if len(errs) == 0 {
		return nil, false
	}
	ve = NewValidationError()
	for _, field := range errs.Fields() {
		for _, msg := range errs.Get(field) {
			ve.Add(field, msg)
		}
	}
	return ve, true
}
