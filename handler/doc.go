// Package handler provides type-safe HTTP handlers for the intake API.
//
// A HandlerFunc receives a bound request value and returns a Response:
//
//	type registerRequest struct {
//		Name      string                `form:"name"`
//		Document1 *multipart.FileHeader `file:"document1"`
//	}
//
//	func register(ctx handler.Context, req registerRequest) handler.Response {
//		user, err := svc.Register(ctx, req.input())
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(user, handler.WithJSONStatus(http.StatusCreated))
//	}
//
//	r.Post("/users", handler.Wrap(register,
//		handler.WithBinders[handler.Context, registerRequest](binder.Form()),
//		handler.WithErrorHandler[handler.Context, registerRequest](handler.NewErrorHandler(log)),
//	))
//
// # Responses
//
// JSON and JSONError share one envelope: {"data": ..., "meta": ..., "error": ...}.
// Validation failures, from this package's ValidationError or from
// validator.ValidationErrors anywhere in the chain, render as 422 with
// per-field messages in error.details. An HTTPError keeps its own status.
// Anything else is a 500 with no internal text exposed.
//
// # DataStar
//
// Requests from the DataStar client (IsDataStar) are answered with signal
// patches over server-sent events. Signals writes a patch for DataStar and
// a plain JSON object otherwise, so the same endpoint serves both:
//
//	return handler.Signals(map[string]any{"errors": feedback.Fields})
//
// NewErrorHandler follows the same split: JSON envelope for regular
// requests, an "errors" signal patch for DataStar ones.
package handler
