package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUnconfiguredUploader(t *testing.T) {
	c, err := NewCloudinary("", "avatars")
	if err != nil {
		t.Fatal(err)
	}
	if c.Enabled() {
		t.Error("Enabled() = true without a URL")
	}
	if _, err := c.UploadAvatar(context.Background(), uuid.New(), strings.NewReader("png")); !errors.Is(err, ErrDisabled) {
		t.Errorf("UploadAvatar() error = %v, want ErrDisabled", err)
	}
}

func TestForceHTTPS(t *testing.T) {
	tests := []struct{ in, want string }{
		{"http://res.cloudinary.com/demo/a.png", "https://res.cloudinary.com/demo/a.png"},
		{" https://res.cloudinary.com/demo/a.png ", "https://res.cloudinary.com/demo/a.png"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := forceHTTPS(tt.in); got != tt.want {
			t.Errorf("forceHTTPS(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
