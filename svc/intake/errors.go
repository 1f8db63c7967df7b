package intake

import "errors"

var (
	ErrNoDirectory      = errors.New("no postal code directory configured")
	ErrDirectoryPanic   = errors.New("postal code directory panicked")
	ErrUnknownCityMatch = errors.New("unknown city match mode")
	ErrUnknownMode      = errors.New("unknown submission mode")
)
