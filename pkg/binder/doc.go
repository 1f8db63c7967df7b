// Package binder fills request structs from HTTP requests.
//
// Each constructor returns a func(*http.Request, any) error that reads one
// source: Form (urlencoded and multipart, including uploads), JSON and Path.
// Binders that do not handle a request's content type return
// ErrBinderNotApplicable so several can be chained on one route.
//
// String values are stored exactly as sent. Whitespace checks happen during
// validation, not binding.
package binder
