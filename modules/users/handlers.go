package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/proclimb/minisystem/handler"
	"github.com/proclimb/minisystem/pkg/logger"
	"github.com/proclimb/minisystem/svc/registration"
)

type handlers struct {
	svc     Registrar
	advisor Advisor
	log     *slog.Logger
}

// fail hands err to the route's error handler, which logs and renders it.
func fail(err error) handler.Response {
	return handler.ResponseFunc(func(http.ResponseWriter, *http.Request) error {
		return mapError(err)
	})
}

func mapError(err error) error {
	switch {
	case errors.Is(err, registration.ErrUserNotFound):
		return errors.Join(handler.ErrNotFound, err)
	case errors.Is(err, registration.ErrReadUpload):
		return errors.Join(handler.ErrBadRequest, err)
	}
	return err
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, handler.ErrNotFound
	}
	return id, nil
}

func (h *handlers) register(ctx handler.Context, req userForm) handler.Response {
	user, err := h.svc.Register(ctx, req.input())
	if err != nil {
		return fail(err)
	}

	h.log.InfoContext(ctx, "user registered",
		logger.UserID(user.ID),
		logger.Component("users"),
	)
	return handler.JSON(user, handler.WithJSONStatus(http.StatusCreated))
}

func (h *handlers) get(ctx handler.Context, req userPath) handler.Response {
	id, err := parseID(req.ID)
	if err != nil {
		return fail(err)
	}
	user, err := h.svc.Get(ctx, id)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(user)
}

func (h *handlers) update(ctx handler.Context, req editForm) handler.Response {
	id, err := parseID(req.ID)
	if err != nil {
		return fail(err)
	}
	user, err := h.svc.Update(ctx, id, req.input())
	if err != nil {
		return fail(err)
	}

	h.log.InfoContext(ctx, "user updated",
		logger.UserID(user.ID),
		logger.Component("users"),
	)
	return handler.JSON(user)
}

// validate answers with advisory feedback. It never rejects a submission;
// the authoritative verdict comes from register and update.
func (h *handlers) validate(ctx handler.Context, req advisoryRequest) handler.Response {
	fb := h.advisor.Check(req.Edit, req.Fields, req.Uploads)

	if handler.IsDataStar(ctx.Request()) {
		return handler.Signals(map[string]any{
			"advisory": true,
			"errors":   fb.All(),
		})
	}
	return handler.JSON(fb)
}
