package registration

import (
	"errors"

	"github.com/proclimb/minisystem/svc/intake"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrReadUpload    = errors.New("failed to read uploaded document")
	ErrStoreDocument = errors.New("failed to store document")
	ErrPersist       = errors.New("failed to persist user")
)

// ValidationFailedError carries the authoritative validation result of a
// rejected submission.
type ValidationFailedError struct {
	Result intake.Result
}

func (e *ValidationFailedError) Error() string {
	return "registration: " + e.Result.Err().Error()
}

// Unwrap exposes the validator.ValidationErrors of the result.
func (e *ValidationFailedError) Unwrap() error {
	return e.Result.Err()
}

// AsValidationFailed extracts a *ValidationFailedError from err.
func AsValidationFailed(err error) (*ValidationFailedError, bool) {
	var vf *ValidationFailedError
	if errors.As(err, &vf) {
		return vf, true
	}
	return nil, false
}
