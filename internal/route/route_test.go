package route

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/CodyCMAC/texas-lead-roper/internal/backend"
	"github.com/CodyCMAC/texas-lead-roper/internal/banner"
	"github.com/CodyCMAC/texas-lead-roper/internal/form"
	"github.com/CodyCMAC/texas-lead-roper/internal/handler"
	"github.com/CodyCMAC/texas-lead-roper/internal/middleware"
	"github.com/CodyCMAC/texas-lead-roper/internal/profile"
	"github.com/CodyCMAC/texas-lead-roper/internal/session"
	"github.com/CodyCMAC/texas-lead-roper/internal/view"
	"github.com/CodyCMAC/texas-lead-roper/pkg/config"
	"github.com/labstack/echo/v4"
)

func newServer(t *testing.T) (*echo.Echo, *session.Auth) {
	t.Helper()
	db := backend.NewMemory()
	auth := session.NewAuth(db, session.NewTokens("test-key", time.Hour), session.NewRegistry())
	h := handler.New(handler.Deps{
		Auth:     auth,
		Forms:    form.NewService(db),
		Catalog:  view.NewCatalog(db),
		Profiles: profile.NewService(db, nil),
		Banners:  banner.NewFeed(config.BannerConfig{TTL: time.Second, Max: 3}),
	})

	e := echo.New()
	e.Use(middleware.RequestIDMiddleware, middleware.SessionMiddleware(auth))
	Register(e, Table(h), h.NotFound)
	return e, auth
}

func do(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGates(t *testing.T) {
	e, auth := newServer(t)
	ctx := context.Background()
	if _, err := auth.Register(ctx, session.Signup{Email: "rep@example.com", Password: "secret1", WorkspaceName: "North Crew"}); err != nil {
		t.Fatal(err)
	}
	token, _, err := auth.Login(ctx, "rep@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path      string
		anonymous int
		signedIn  int
	}{
		{"/", http.StatusOK, http.StatusFound},
		{"/auth", http.StatusOK, http.StatusFound},
		{"/dashboard", http.StatusUnauthorized, http.StatusOK},
		{"/properties", http.StatusUnauthorized, http.StatusOK},
		{"/contacts", http.StatusUnauthorized, http.StatusOK},
		{"/leads", http.StatusUnauthorized, http.StatusOK},
		{"/opportunities", http.StatusUnauthorized, http.StatusOK},
		{"/service", http.StatusUnauthorized, http.StatusOK},
		{"/tasks", http.StatusUnauthorized, http.StatusOK},
		{"/reports", http.StatusUnauthorized, http.StatusOK},
		{"/about-us", http.StatusUnauthorized, http.StatusOK},
		{"/health", http.StatusOK, http.StatusOK},
		{"/no-such-page", http.StatusNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if rec := do(e, http.MethodGet, tt.path, ""); rec.Code != tt.anonymous {
				t.Errorf("anonymous: status = %d, want %d", rec.Code, tt.anonymous)
			}
			if rec := do(e, http.MethodGet, tt.path, token); rec.Code != tt.signedIn {
				t.Errorf("signed in: status = %d, want %d", rec.Code, tt.signedIn)
			}
		})
	}

	rec := do(e, http.MethodGet, "/leads", "")
	if !strings.Contains(rec.Body.String(), `"redirect":"/auth"`) {
		t.Errorf("401 body = %s, want redirect to /auth", rec.Body.String())
	}
	if rec := do(e, http.MethodGet, "/", token); rec.Header().Get(echo.HeaderLocation) != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", rec.Header().Get(echo.HeaderLocation))
	}
}

func TestSignOutClosesSession(t *testing.T) {
	e, auth := newServer(t)
	ctx := context.Background()
	if _, err := auth.Register(ctx, session.Signup{Email: "rep@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}
	token, _, err := auth.Login(ctx, "rep@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}

	if rec := do(e, http.MethodPost, "/auth/logout", token); rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/tasks", token); rec.Code != http.StatusUnauthorized {
		t.Errorf("after logout status = %d, want 401", rec.Code)
	}
}

func TestAccessString(t *testing.T) {
	for a, want := range map[Access]string{Open: "open", Public: "public", Protected: "protected"} {
		if a.String() != want {
			t.Errorf("%d.String() = %q, want %q", a, a.String(), want)
		}
	}
}
