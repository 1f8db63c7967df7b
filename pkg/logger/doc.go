// Package logger builds *slog.Logger instances with functional options and
// injects request-scoped attributes from context.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
//		logger.WithLevelName(cfg.LogLevel),
//		logger.WithContextExtractors(requestid.Extractor()),
//	)
//	log.WarnContext(ctx, "postal code lookup failed",
//		logger.PostalCode(code),
//		logger.Error(err),
//	)
//
// Attribute helpers keep key names consistent. Error, RequestID and UserID
// return an empty Attr for empty input, so callers need no nil checks.
package logger
