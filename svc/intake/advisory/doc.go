// Package advisory is a fast, non-authoritative pre-check of intake
// submissions for live form feedback. It runs the same field rules as the
// intake engine, plus the stricter whitespace checks shown to users while
// typing, but never calls the postal code directory and judges uploads only
// by their declared type.
//
// Feedback from this package must not gate persistence; the intake engine
// always re-validates before anything is stored.
package advisory
