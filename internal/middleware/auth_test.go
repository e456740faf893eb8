package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/CodyCMAC/texas-lead-roper/internal/session"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type stubAuth map[string]*session.Session

func (s stubAuth) Authenticate(token string) (*session.Session, error) {
	if sess, ok := s[token]; ok {
		return sess, nil
	}
	return nil, errors.New("unknown token")
}

func serve(t *testing.T, auth Authenticator, gate echo.MiddlewareFunc, header string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Use(RequestIDMiddleware, SessionMiddleware(auth))
	e.GET("/page", func(c echo.Context) error {
		s, _ := session.FromEcho(c)
		return c.JSON(http.StatusOK, echo.Map{"user_id": s.UserID})
	}, gate)

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireSession(t *testing.T) {
	auth := stubAuth{"good": {UserID: uuid.New()}}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer good", http.StatusOK},
		{"no header", "", http.StatusUnauthorized},
		{"unknown token", "Bearer bad", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, auth, RequireSession, tt.header)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if rec.Header().Get(RequestIDHeader) == "" {
				t.Error("missing request id header")
			}
			if tt.want == http.StatusUnauthorized && !strings.Contains(rec.Body.String(), `"redirect":"/auth"`) {
				t.Errorf("body = %s, want redirect to /auth", rec.Body.String())
			}
		})
	}
}

func TestPublicOnly(t *testing.T) {
	auth := stubAuth{"good": {UserID: uuid.New()}}

	rec := serve(t, auth, PublicOnly, "Bearer good")
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != HomePath {
		t.Errorf("signed-in caller: status = %d, location = %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}
