// Package validator provides small, composable validation rules for form input.
//
// A Rule couples a boolean Check with a ValidationError describing the failure:
// the field it belongs to, a Kind classifying the failure (required, malformed,
// out of range, ...), a default message and a translation key that callers can
// use to look up their own wording.
//
// # Evaluation
//
// First runs rules in order and stops at the first failure. Use it for a
// single field whose checks build on each other (required, then length, then
// charset), so at most one message is produced per field. When switches a
// rule off for a mode without breaking the chain. Failures from several
// fields are collected in ValidationErrors.
//
// Rules are plain values with no hidden global state; the package is stateless
// and safe for concurrent use.
//
// # Usage
//
//	err := validator.First(
//	    validator.RequiredString("name", name),
//	    validator.NoSurroundingSpace("name", name),
//	    validator.MaxRunes("name", name, 20),
//	)
//	if err != nil {
//	    fmt.Println(err.Field, err.Kind, err.Message)
//	}
//
// Messages can be replaced per call site with Rule.WithMessage, and the
// classification with Rule.WithKind.
//
// # Text handling
//
// Length rules count Unicode code points, not bytes. White space handling
// (RequiredString, NoSurroundingSpace, TrimBlank) treats the ideographic
// full-width space U+3000 the same as an ASCII space. A Charset with Blank set
// admits only those two spaces; tabs and line breaks stay outside it.
//
// # Error Handling
//
// ValidationError unwraps to the sentinel of its Kind, so errors.Is(err,
// validator.ErrRequired) works on individual errors. ValidationErrors
// implements error and can be recovered with ExtractValidationErrors.
package validator
