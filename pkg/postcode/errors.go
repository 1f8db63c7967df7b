package postcode

import "errors"

var (
	// ErrNotFound means the directory answered and has no entry for the code.
	ErrNotFound = errors.New("postal code not found")

	ErrInvalidCode       = errors.New("postal code must be 7 digits")
	ErrLookupFailed      = errors.New("postal code lookup failed")
	ErrMalformedResponse = errors.New("malformed postal code directory response")
	ErrUnknownProvider   = errors.New("unknown postal code provider")
	ErrLoadStatic        = errors.New("failed to load static postal code directory")
)
