package handler

import (
	"log/slog"
	"net/http"

	"github.com/proclimb/minisystem/pkg/logger"
	"github.com/proclimb/minisystem/pkg/requestid"
)

func logLevelFor(status int) slog.Level {
	if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// NewErrorHandler returns the error handler used by every route. Regular
// requests get the JSON error envelope. DataStar requests get the field
// messages patched into the "errors" signal and the error code into "error".
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		status := http.StatusInternalServerError
		detail := errorToDetail(err, &status)

		log.LogAttrs(r.Context(), logLevelFor(status), "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("is_datastar", IsDataStar(r)),
			logger.Component("error_handler"),
		)

		if IsDataStar(r) {
			fields := make(map[string]string, len(detail.Details))
			for field, msgs := range detail.Details {
				if len(msgs) > 0 {
					fields[field] = msgs[0]
				}
			}
			signals := map[string]any{"error": detail.Code, "errors": fields}
			if renderErr := Signals(signals).Render(ctx.ResponseWriter(), r); renderErr != nil {
				log.Error("failed to patch error signals",
					logger.Error(renderErr),
					logger.Component("error_handler"),
				)
			}
			return
		}

		if renderErr := JSONError(err).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.Error("failed to render error response",
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}
