package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/CodyCMAC/texas-lead-roper/internal/backend"
	"github.com/CodyCMAC/texas-lead-roper/internal/model"
)

func newAuth() (*Auth, *backend.Memory) {
	db := backend.NewMemory()
	return NewAuth(db, NewTokens("test-key", time.Hour), NewRegistry()), db
}

func TestRegisterLoginLogout(t *testing.T) {
	ctx := context.Background()
	auth, db := newAuth()

	user, err := auth.Register(ctx, Signup{Email: " Rep@Example.com ", Password: "secret1", WorkspaceName: "Texas Roofing Co"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Email != "rep@example.com" {
		t.Errorf("Email = %q, want normalized", user.Email)
	}

	profile, err := backend.First[model.Profile](ctx, db, backend.Where(backend.Eq("user_id", user.ID)))
	if err != nil {
		t.Fatalf("profile not created: %v", err)
	}
	if profile.DisplayName == nil || *profile.DisplayName != "rep" {
		t.Errorf("DisplayName = %v, want rep", profile.DisplayName)
	}

	token, s, err := auth.Login(ctx, "rep@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !s.HasWorkspace() || s.Role != model.RoleAdmin {
		t.Errorf("session = %+v, want workspace with admin role", s)
	}

	got, err := auth.Authenticate(token)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if got.UserID != user.ID {
		t.Errorf("Authenticate() user = %s, want %s", got.UserID, user.ID)
	}

	auth.Logout(got)
	if _, err := auth.Authenticate(token); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Authenticate() after logout error = %v, want ErrSessionClosed", err)
	}
}

func TestRegisterErrors(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuth()

	if _, err := auth.Register(ctx, Signup{Email: "a@b.co", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		in   Signup
		want error
	}{
		{"duplicate", Signup{Email: "A@b.co", Password: "secret1"}, ErrEmailTaken},
		{"no email", Signup{Email: "nobody", Password: "secret1"}, ErrInvalidSignup},
		{"short password", Signup{Email: "c@d.co", Password: "123"}, ErrInvalidSignup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := auth.Register(ctx, tt.in); !errors.Is(err, tt.want) {
				t.Errorf("Register() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoginWithoutWorkspace(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuth()
	_, _ = auth.Register(ctx, Signup{Email: "solo@example.com", Password: "secret1"})

	_, s, err := auth.Login(ctx, "solo@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if s.HasWorkspace() {
		t.Errorf("HasWorkspace() = true, want false")
	}

	if _, _, err := auth.Login(ctx, "solo@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() wrong password error = %v", err)
	}
	if _, _, err := auth.Login(ctx, "ghost@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() unknown user error = %v", err)
	}
}

func TestSlugifyAndDisplayName(t *testing.T) {
	if got := slugify("  Texas Roofing & Co. "); got != "texas-roofing-co" {
		t.Errorf("slugify() = %q", got)
	}
	if got := slugify("!!!"); got != "workspace" {
		t.Errorf("slugify() = %q", got)
	}
	if got := DisplayNameFromEmail("jane.doe@example.com"); got != "jane.doe" {
		t.Errorf("DisplayNameFromEmail() = %q", got)
	}
}
