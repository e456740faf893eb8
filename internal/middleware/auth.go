// Package middleware holds the echo middleware of the CRM service.
package middleware

import (
	"net/http"
	"strings"

	"github.com/CodyCMAC/texas-lead-roper/internal/session"
	"github.com/CodyCMAC/texas-lead-roper/pkg/logger"
	"github.com/CodyCMAC/texas-lead-roper/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthPath is where an anonymous caller is sent.
const AuthPath = "/auth"

// HomePath is where a signed-in caller lands.
const HomePath = "/dashboard"

type Authenticator interface {
	Authenticate(token string) (*session.Session, error)
}

// bearer extracts the token of an "Authorization: Bearer" header.
func bearer(c echo.Context) (string, bool) {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(h[len("Bearer "):])
	return token, token != ""
}

// SessionMiddleware resolves the bearer token, when there is one, into a
// session on the request. It never rejects a request.
func SessionMiddleware(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearer(c)
			if !ok {
				return next(c)
			}

			log := logger.FromEcho(c)
			s, err := auth.Authenticate(token)
			if err != nil {
				log.Debug("Ignoring invalid session token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return next(c)
			}

			session.Attach(c, s)
			logger.Attach(c, log.With(
				zap.String("user_id", s.UserID.String()),
				zap.String("workspace_id", s.WorkspaceID.String()),
			))
			return next(c)
		}
	}
}

// RequireSession rejects anonymous callers with 401 and where to sign in.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := session.FromEcho(c); !ok {
			prometheus.RecordAuthError("missing_session")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error":    "authentication required",
				"redirect": AuthPath,
			})
		}
		return next(c)
	}
}

// PublicOnly sends a signed-in caller to the dashboard.
func PublicOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := session.FromEcho(c); ok {
			return c.Redirect(http.StatusFound, HomePath)
		}
		return next(c)
	}
}
