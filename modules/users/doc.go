// Package users exposes registration and advisory validation over HTTP.
//
// Forms are posted as multipart/form-data. A rejected submission answers
// 422 with one message per field or upload slot in error.details, taken
// from the authoritative validation result. /users/validate answers the
// advisory rules only and is safe to call on every keystroke; DataStar
// clients receive the messages as an "errors" signal patch.
package users
