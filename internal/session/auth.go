package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/CodyCMAC/texas-lead-roper/internal/backend"
	"github.com/CodyCMAC/texas-lead-roper/internal/model"
	"github.com/CodyCMAC/texas-lead-roper/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidSignup      = errors.New("invalid signup")
	ErrSessionClosed      = errors.New("session signed out")
)

// Signup is a registration request. WorkspaceName is optional; when set a
// workspace is created with the new user as admin.
type Signup struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	WorkspaceName string `json:"workspace_name"`
}

// Auth signs users up, in and out.
type Auth struct {
	db       backend.Client
	tokens   *Tokens
	registry *Registry
}

func NewAuth(db backend.Client, tokens *Tokens, registry *Registry) *Auth {
	return &Auth{db: db, tokens: tokens, registry: registry}
}

func (a *Auth) Register(ctx context.Context, in Signup) (*model.User, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(in.Email)
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidSignup)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidSignup, minPasswordLength)
	}

	if _, err := backend.First[model.User](ctx, a.db, backend.Where(backend.Eq("email", email))); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, backend.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Email: email, PasswordHash: string(hashed)}
	if err := a.db.Insert(ctx, user); err != nil {
		if errors.Is(err, backend.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	displayName := DisplayNameFromEmail(email)
	if err := a.db.Insert(ctx, &model.Profile{UserID: user.ID, DisplayName: &displayName}); err != nil {
		log.Warn("Failed to create profile at signup", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	if name := strings.TrimSpace(in.WorkspaceName); name != "" {
		ws := &model.Workspace{Name: name, Slug: slugify(name) + "-" + user.ID.String()[:8]}
		if err := a.db.Insert(ctx, ws); err != nil {
			return nil, fmt.Errorf("create workspace: %w", err)
		}
		if err := a.db.Insert(ctx, &model.UserRole{UserID: user.ID, WorkspaceID: ws.ID, Role: model.RoleAdmin}); err != nil {
			return nil, fmt.Errorf("assign workspace role: %w", err)
		}
		log.Info("Workspace created",
			zap.String("workspace_id", ws.ID.String()),
			zap.String("slug", ws.Slug))
	}

	log.Info("User registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

// Login verifies credentials, resolves the first workspace and opens a session.
func (a *Auth) Login(ctx context.Context, email, password string) (string, *Session, error) {
	user, err := backend.First[model.User](ctx, a.db, backend.Where(backend.Eq("email", normalizeEmail(email))))
	if errors.Is(err, backend.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	s := &Session{UserID: user.ID, Email: user.Email}
	if ws, err := backend.FirstWorkspace(ctx, a.db, user.ID); err == nil {
		s.WorkspaceID = ws
		if role, err := backend.UserRole(ctx, a.db, user.ID, ws); err == nil {
			s.Role = role
		}
	} else if !errors.Is(err, backend.ErrNotFound) {
		return "", nil, fmt.Errorf("resolve workspace: %w", err)
	}

	token, err := a.tokens.Issue(s)
	if err != nil {
		return "", nil, err
	}
	a.registry.Open(s)
	return token, s, nil
}

// Authenticate parses a bearer token and checks it has not been signed out.
func (a *Auth) Authenticate(token string) (*Session, error) {
	s, err := a.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	if !a.registry.Active(s.TokenID) {
		return nil, ErrSessionClosed
	}
	return s, nil
}

// Logout ends s. Ending an already ended session is not an error.
func (a *Auth) Logout(s *Session) {
	a.registry.Close(s.TokenID)
}

// DisplayNameFromEmail returns the local part of an email address.
func DisplayNameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "workspace"
	}
	return slug
}

