package profile

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/CodyCMAC/texas-lead-roper/internal/backend"
	"github.com/CodyCMAC/texas-lead-roper/internal/model"
	"github.com/CodyCMAC/texas-lead-roper/internal/session"
	"github.com/google/uuid"
)

type stubAvatars struct {
	url string
	err error
}

func (s stubAvatars) UploadAvatar(ctx context.Context, userID uuid.UUID, file io.Reader) (string, error) {
	return s.url, s.err
}

func TestGetCreatesMissingProfile(t *testing.T) {
	ctx := context.Background()
	db := backend.NewMemory()
	svc := NewService(db, stubAvatars{})
	sess := &session.Session{UserID: uuid.New(), Email: "jane.doe@example.com"}

	p, err := svc.Get(ctx, sess)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.DisplayName == nil || *p.DisplayName != "jane.doe" {
		t.Errorf("DisplayName = %v, want jane.doe", p.DisplayName)
	}

	again, err := svc.Get(ctx, sess)
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != p.ID || db.Len("profiles") != 1 {
		t.Errorf("second Get created another profile")
	}

	anon, err := svc.Get(ctx, &session.Session{UserID: uuid.New()})
	if err != nil {
		t.Fatal(err)
	}
	if *anon.DisplayName != "User" {
		t.Errorf("DisplayName = %q, want User", *anon.DisplayName)
	}
}

func TestSaveUpserts(t *testing.T) {
	ctx := context.Background()
	db := backend.NewMemory()
	svc := NewService(db, stubAvatars{})
	sess := &session.Session{UserID: uuid.New(), Email: "rep@example.com"}

	p, err := svc.Save(ctx, sess, Edit{DisplayName: "Jane", Phone: "817-555-0101"})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if *p.DisplayName != "Jane" || *p.Phone != "817-555-0101" || p.AvatarURL != nil {
		t.Errorf("profile = %+v", p)
	}

	p, err = svc.Save(ctx, sess, Edit{DisplayName: "Jane D", Phone: ""})
	if err != nil {
		t.Fatal(err)
	}
	if *p.DisplayName != "Jane D" || p.Phone != nil {
		t.Errorf("profile after second save = %+v", p)
	}
	if db.Len("profiles") != 1 {
		t.Errorf("profiles = %d, want 1", db.Len("profiles"))
	}
}

func TestUploadAvatar(t *testing.T) {
	ctx := context.Background()
	db := backend.NewMemory()
	sess := &session.Session{UserID: uuid.New(), Email: "rep@example.com"}

	svc := NewService(db, stubAvatars{url: "https://res.cloudinary.com/demo/avatars/a.png"})
	p, err := svc.UploadAvatar(ctx, sess, nil)
	if err != nil {
		t.Fatalf("UploadAvatar() error = %v", err)
	}
	stored, err := svc.Get(ctx, sess)
	if err != nil {
		t.Fatal(err)
	}
	if stored.AvatarURL == nil || *stored.AvatarURL != *p.AvatarURL {
		t.Errorf("AvatarURL = %v, want %v", stored.AvatarURL, *p.AvatarURL)
	}

	failing := NewService(db, stubAvatars{err: errors.New("upload refused")})
	if _, err := failing.UploadAvatar(ctx, sess, nil); err == nil {
		t.Error("UploadAvatar() error = nil")
	}
}

func TestDirectory(t *testing.T) {
	ctx := context.Background()
	db := backend.NewMemory()
	svc := NewService(db, stubAvatars{})
	ws := uuid.New()
	member, outsider := uuid.New(), uuid.New()

	if err := db.Insert(ctx, &model.UserRole{UserID: member, WorkspaceID: ws, Role: model.RoleRep}); err != nil {
		t.Fatal(err)
	}
	for _, id := range []uuid.UUID{member, outsider} {
		if _, err := svc.Get(ctx, &session.Session{UserID: id, Email: "x@example.com"}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := svc.Directory(ctx, ws)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].UserID != member {
		t.Errorf("Directory() = %+v, want only the member", entries)
	}
}
