package users

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/proclimb/minisystem/handler"
	"github.com/proclimb/minisystem/pkg/binder"
	"github.com/proclimb/minisystem/pkg/clientip"
	"github.com/proclimb/minisystem/pkg/httpserver"
	"github.com/proclimb/minisystem/pkg/requestid"
	"github.com/proclimb/minisystem/svc/intake/advisory"
	"github.com/proclimb/minisystem/svc/registration"
)

// Registrar is the registration service as seen by the HTTP layer.
type Registrar interface {
	Register(ctx context.Context, in registration.Input) (*registration.User, error)
	Update(ctx context.Context, id uuid.UUID, in registration.Input) (*registration.User, error)
	Get(ctx context.Context, id uuid.UUID) (*registration.User, error)
}

// Advisor runs the advisory client-side rules.
type Advisor interface {
	Check(edit bool, fields map[string]string, uploads map[string]advisory.Upload) advisory.Feedback
}

// DefaultMaxBodyBytes bounds a request body: two documents at the upload
// limit plus the form fields.
const DefaultMaxBodyBytes = 8 << 20

// Options configures Router. Service is required.
type Options struct {
	Service      Registrar
	Advisor      Advisor
	Logger       *slog.Logger
	MaxBodyBytes int64
	Checks       []httpserver.Check
	ReadyTimeout time.Duration
}

// Router mounts the intake API:
//
//	POST /users              register (multipart)
//	GET  /users/{id}         fetch a registration
//	POST /users/{id}         edit (multipart, birth date is kept)
//	POST /users/validate     advisory feedback (JSON or DataStar signals)
//	GET  /healthz, /readyz   probes
func Router(opts Options) chi.Router {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Advisor == nil {
		opts.Advisor = advisory.New()
	}
	if opts.ReadyTimeout <= 0 {
		opts.ReadyTimeout = 2 * time.Second
	}

	h := &handlers{svc: opts.Service, advisor: opts.Advisor, log: log}
	errorHandler := handler.NewErrorHandler(log)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.Liveness())
	r.Get("/readyz", httpserver.Readiness(log, opts.ReadyTimeout, opts.Checks...))

	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.RequestSize(opts.MaxBodyBytes))

		r.Post("/", handler.Wrap(h.register,
			handler.WithBinders[handler.Context, userForm](binder.Form()),
			handler.WithErrorHandler[handler.Context, userForm](errorHandler),
		))
		r.Post("/validate", handler.Wrap(h.validate,
			handler.WithBinders[handler.Context, advisoryRequest](bindAdvisory),
			handler.WithErrorHandler[handler.Context, advisoryRequest](errorHandler),
		))
		r.Get("/{id}", handler.Wrap(h.get,
			handler.WithBinders[handler.Context, userPath](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[handler.Context, userPath](errorHandler),
		))
		r.Post("/{id}", handler.Wrap(h.update,
			handler.WithBinders[handler.Context, editForm](binder.Path(chi.URLParam), binder.Form()),
			handler.WithErrorHandler[handler.Context, editForm](errorHandler),
		))
	})

	return r
}
