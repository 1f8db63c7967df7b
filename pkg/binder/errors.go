package binder

import "errors"

var (
	// ErrBinderNotApplicable tells the handler to skip a binder that does not
	// handle the request's content type.
	ErrBinderNotApplicable = errors.New("binder not applicable")

	ErrMissingContentType   = errors.New("missing content type")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrRequestTooLarge      = errors.New("request body too large")
	ErrInvalidForm          = errors.New("failed to parse form data")
	ErrInvalidJSON          = errors.New("failed to parse JSON request body")
	ErrInvalidPath          = errors.New("failed to parse path parameters")
)
