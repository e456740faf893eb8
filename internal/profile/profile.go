// Package profile loads and saves the per-user profile row.
package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/CodyCMAC/texas-lead-roper/internal/backend"
	"github.com/CodyCMAC/texas-lead-roper/internal/model"
	"github.com/CodyCMAC/texas-lead-roper/internal/session"
	"github.com/CodyCMAC/texas-lead-roper/pkg/logger"
	"github.com/CodyCMAC/texas-lead-roper/prometheus"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvatarStore keeps an uploaded avatar image and returns its public URL.
type AvatarStore interface {
	UploadAvatar(ctx context.Context, userID uuid.UUID, file io.Reader) (string, error)
}

type Service struct {
	db      backend.Client
	avatars AvatarStore
}

func NewService(db backend.Client, avatars AvatarStore) *Service {
	return &Service{db: db, avatars: avatars}
}

// Get returns the profile of the signed-in user, creating it on first use.
func (s *Service) Get(ctx context.Context, sess *session.Session) (*model.Profile, error) {
	p, err := backend.First[model.Profile](ctx, s.db, backend.Where(backend.Eq("user_id", sess.UserID)))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, backend.ErrNotFound) {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	name := session.DisplayNameFromEmail(sess.Email)
	if name == "" {
		name = "User"
	}
	p = &model.Profile{UserID: sess.UserID, DisplayName: &name}
	if err := s.db.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	prometheus.RecordEntityOperation(model.EntityProfile, "create")
	logger.FromContext(ctx).Info("Profile created", zap.String("user_id", sess.UserID.String()))
	return p, nil
}

// Edit is the profile form. Empty values clear the column.
type Edit struct {
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
	AvatarURL   string `json:"avatar_url"`
}

func orNil(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

// Save upserts the profile keyed by user id.
func (s *Service) Save(ctx context.Context, sess *session.Session, e Edit) (*model.Profile, error) {
	p := &model.Profile{
		UserID:      sess.UserID,
		DisplayName: orNil(e.DisplayName),
		Phone:       orNil(e.Phone),
		AvatarURL:   orNil(e.AvatarURL),
	}
	if err := s.db.Upsert(ctx, p, []string{"user_id"}, []string{"display_name", "phone", "avatar_url"}); err != nil {
		logger.FromContext(ctx).Error("Failed to save profile", zap.Error(err))
		return nil, fmt.Errorf("save profile: %w", err)
	}
	prometheus.RecordEntityOperation(model.EntityProfile, "update")
	return s.Get(ctx, sess)
}

// UploadAvatar stores the image and points the profile at it.
func (s *Service) UploadAvatar(ctx context.Context, sess *session.Session, file io.Reader) (*model.Profile, error) {
	p, err := s.Get(ctx, sess)
	if err != nil {
		return nil, err
	}
	url, err := s.avatars.UploadAvatar(ctx, sess.UserID, file)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Update(ctx, &model.Profile{}, backend.Where(backend.Eq("id", p.ID)), map[string]any{"avatar_url": url}); err != nil {
		return nil, fmt.Errorf("save avatar: %w", err)
	}
	p.AvatarURL = &url
	logger.FromContext(ctx).Info("Avatar uploaded", zap.String("user_id", sess.UserID.String()))
	return p, nil
}

// Entry is one row of the rep-name lookup.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	DisplayName *string   `json:"display_name"`
}

// Directory lists the profiles of every member of the workspace.
func (s *Service) Directory(ctx context.Context, workspaceID uuid.UUID) ([]Entry, error) {
	roles, err := backend.All[model.UserRole](ctx, s.db, backend.Where(backend.Eq("workspace_id", workspaceID)))
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}
	members := make(map[uuid.UUID]bool, len(roles))
	for _, r := range roles {
		members[r.UserID] = true
	}

	profiles, err := backend.All[model.Profile](ctx, s.db, backend.Query{}.OrderBy("created_at asc"))
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	out := make([]Entry, 0, len(members))
	for _, p := range profiles {
		if members[p.UserID] {
			out = append(out, Entry{ID: p.ID, UserID: p.UserID, DisplayName: p.DisplayName})
		}
	}
	return out, nil
}
