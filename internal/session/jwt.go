package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/CodyCMAC/texas-lead-roper/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the JWT claims of a session token.
type Claims struct {
	Email       string `json:"email"`
	UserID      string `json:"user_id"`
	WorkspaceID string `json:"workspace_id,omitempty"`
	Role        string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 session tokens.
type Tokens struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokens(signingKey string, ttl time.Duration) *Tokens {
	return &Tokens{key: []byte(signingKey), ttl: ttl, now: time.Now}
}

// Issue signs a token for s and fills s.TokenID and s.ExpiresAt.
func (t *Tokens) Issue(s *Session) (string, error) {
	now := t.now()
	s.TokenID = uuid.NewString()
	s.ExpiresAt = now.Add(t.ttl)

	claims := Claims{
		Email:  s.Email,
		UserID: s.UserID.String(),
		Role:   string(s.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.TokenID,
			Subject:   s.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if s.HasWorkspace() {
		claims.WorkspaceID = s.WorkspaceID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and rebuilds its Session.
func (t *Tokens) Parse(tokenString string) (*Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	s := &Session{
		UserID:  userID,
		Email:   claims.Email,
		Role:    model.AppRole(claims.Role),
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.WorkspaceID != "" {
		if s.WorkspaceID, err = uuid.Parse(claims.WorkspaceID); err != nil {
			return nil, ErrInvalidToken
		}
	}
	return s, nil
}
