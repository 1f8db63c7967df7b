package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". A nil error yields an empty Attr, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// UserID records the user identifier under "user_id".
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Field records a form field key.
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// PostalCode records the normalized postal code being looked up.
func PostalCode(code string) slog.Attr {
	return slog.String("postal_code", code)
}

// Mode records the submission mode (create or edit).
func Mode(mode string) slog.Attr {
	return slog.String("mode", mode)
}

// ErrorCount records how many violations a validation produced.
func ErrorCount(n int) slog.Attr {
	return slog.Int("error_count", n)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
