package intake

import (
	"maps"

	"github.com/proclimb/minisystem/pkg/validator"
)

// Result holds at most one violation per field and per upload slot.
// It is built once by Engine.Validate and never modified afterwards.
type Result struct {
	fields map[string]validator.ValidationError
	files  map[string]validator.ValidationError
}

func newResult() *Result {
	return &Result{
		fields: make(map[string]validator.ValidationError),
		files:  make(map[string]validator.ValidationError),
	}
}

func (r *Result) setField(key string, v *validator.ValidationError) {
	if v == nil {
		return
	}
	if _, exists := r.fields[key]; exists {
		return
	}
	r.fields[key] = *v
}

func (r *Result) setFile(slot string, v *validator.ValidationError) {
	if v != nil {
		r.files[slot] = *v
	}
}

// OK reports whether there are no field and no file errors.
func (r Result) OK() bool {
	return len(r.fields) == 0 && len(r.files) == 0
}

// FieldErrors returns field → message.
func (r Result) FieldErrors() map[string]string {
	return messages(r.fields)
}

// FileErrors returns slot → message.
func (r Result) FileErrors() map[string]string {
	return messages(r.files)
}

// Field returns the violation for a field key.
func (r Result) Field(key string) (validator.ValidationError, bool) {
	v, ok := r.fields[key]
	return cloneViolation(v), ok
}

// File returns the violation for an upload slot.
func (r Result) File(slot string) (validator.ValidationError, bool) {
	v, ok := r.files[slot]
	return cloneViolation(v), ok
}

// Errors returns every violation in display order: fields, then slots.
func (r Result) Errors() validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, key := range Fields {
		if v, ok := r.fields[key]; ok {
			errs.Add(cloneViolation(v))
		}
	}
	for _, slot := range Slots {
		if v, ok := r.files[slot]; ok {
			errs.Add(cloneViolation(v))
		}
	}
	return errs
}

// Err returns nil when OK, otherwise the violations as validator.ValidationErrors.
func (r Result) Err() error {
	errs := r.Errors()
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func messages(m map[string]validator.ValidationError) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v.Message
	}
	return out
}

func cloneViolation(v validator.ValidationError) validator.ValidationError {
	v.TranslationValues = maps.Clone(v.TranslationValues)
	return v
}
