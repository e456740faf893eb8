// Package session carries the signed-in identity through a request and
// owns its lifecycle: sign-in issues and registers a token, sign-out
// revokes it.
package session

import (
	"context"
	"time"

	"github.com/CodyCMAC/texas-lead-roper/internal/model"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Session is the identity of one signed-in user.
type Session struct {
	UserID      uuid.UUID     `json:"user_id"`
	Email       string        `json:"email"`
	WorkspaceID uuid.UUID     `json:"workspace_id"`
	Role        model.AppRole `json:"role,omitempty"`
	TokenID     string        `json:"-"`
	ExpiresAt   time.Time     `json:"expires_at"`
}

// HasWorkspace reports whether sign-in resolved a workspace.
func (s *Session) HasWorkspace() bool {
	return s != nil && s.WorkspaceID != uuid.Nil
}

type ctxKey struct{}

// EchoKey is the echo.Context key holding the *Session.
const EchoKey = "session"

func WithContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

func FromEcho(c echo.Context) (*Session, bool) {
	if s, ok := c.Get(EchoKey).(*Session); ok && s != nil {
		return s, true
	}
	return FromContext(c.Request().Context())
}

// Attach stores s on both the echo context and the request context.
func Attach(c echo.Context, s *Session) {
	c.Set(EchoKey, s)
	c.SetRequest(c.Request().WithContext(WithContext(c.Request().Context(), s)))
}
