package validator

import "errors"

// Kind classifies a validation failure independently of its message.
type Kind string

const (
	KindRequired        Kind = "required"
	KindMalformed       Kind = "malformed"
	KindOutOfRange      Kind = "out_of_range"
	KindInconsistent    Kind = "inconsistent"
	KindUnverifiable    Kind = "unverifiable"
	KindTooLarge        Kind = "too_large"
	KindUnsupportedType Kind = "unsupported_type"
)

// Sentinel errors mirroring each Kind, usable with errors.Is.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrRequired         = errors.New("field is required")
	ErrMalformed        = errors.New("invalid format")
	ErrOutOfRange       = errors.New("value out of range")
	ErrInconsistent     = errors.New("value is inconsistent with related fields")
	ErrUnverifiable     = errors.New("value could not be verified")
	ErrTooLarge         = errors.New("value is too large")
	ErrUnsupportedType  = errors.New("unsupported type")
)

// Err returns the sentinel error for the kind.
func (k Kind) Err() error {
	switch k {
	case KindRequired:
		return ErrRequired
	case KindMalformed:
		return ErrMalformed
	case KindOutOfRange:
		return ErrOutOfRange
	case KindInconsistent:
		return ErrInconsistent
	case KindUnverifiable:
		return ErrUnverifiable
	case KindTooLarge:
		return ErrTooLarge
	case KindUnsupportedType:
		return ErrUnsupportedType
	default:
		return ErrValidationFailed
	}
}
