// Package handler serves the CRM pages and actions over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/CodyCMAC/texas-lead-roper/internal/banner"
	"github.com/CodyCMAC/texas-lead-roper/internal/form"
	"github.com/CodyCMAC/texas-lead-roper/internal/media"
	"github.com/CodyCMAC/texas-lead-roper/internal/profile"
	"github.com/CodyCMAC/texas-lead-roper/internal/session"
	"github.com/CodyCMAC/texas-lead-roper/internal/view"
	"github.com/CodyCMAC/texas-lead-roper/pkg/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const noWorkspaceMessage = "No workspace found. Please contact your administrator."

// Deps are the services a Handler serves.
type Deps struct {
	Auth     *session.Auth
	Forms    *form.Service
	Catalog  *view.Catalog
	Profiles *profile.Service
	Banners  *banner.Feed
	// Ping checks the database for GET /health?check=db. Nil skips the check.
	Ping func(ctx context.Context) error
}

type Handler struct {
	Deps
	now func() time.Time
}

func New(deps Deps) *Handler {
	return &Handler{Deps: deps, now: time.Now}
}

// current returns the session RequireSession put on the request.
func current(c echo.Context) *session.Session {
	s, _ := session.FromEcho(c)
	return s
}

// workspace returns the workspace of the session, resolving it again when
// sign-in found none.
func (h *Handler) workspace(c echo.Context) (uuid.UUID, error) {
	s := current(c)
	if s.HasWorkspace() {
		return s.WorkspaceID, nil
	}
	return h.Forms.Workspace(c.Request().Context(), s.UserID)
}

// fail maps err to a response. Unexpected errors are logged and answered
// with msg only.
func fail(c echo.Context, err error, msg string) error {
	log := logger.FromEcho(c)

	var fe *form.FieldError
	switch {
	case errors.As(err, &fe):
		log.Debug("Request rejected", zap.String("field", fe.Field), zap.String("reason", fe.Reason))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": fe.Error(), "field": fe.Field})
	case errors.Is(err, form.ErrNoWorkspace):
		log.Warn("No workspace for user")
		return c.JSON(http.StatusForbidden, echo.Map{"error": noWorkspaceMessage})
	case errors.Is(err, view.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "You can only edit leads assigned to you or unassigned leads"})
	case errors.Is(err, view.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, media.ErrDisabled):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "avatar uploads are not configured"})
	}

	log.Error(msg, zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
}

func badRequest(c echo.Context, err error) error {
	logger.FromEcho(c).Debug("Failed to parse request", zap.Error(err))
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	return id, err == nil
}
