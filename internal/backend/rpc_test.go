package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/CodyCMAC/texas-lead-roper/internal/address"
	"github.com/CodyCMAC/texas-lead-roper/internal/model"
	"github.com/google/uuid"
)

func TestAddressHashMatchesAddressPackage(t *testing.T) {
	p := address.Parts{Line1: "1234 Main Street", City: "Fort Worth", State: "TX", Zip: "76109"}
	got, err := AddressHash(context.Background(), NewMemory(), p)
	if err != nil {
		t.Fatal(err)
	}
	if want := address.Hash("1234 Main Street, Fort Worth, TX 76109"); got != want {
		t.Errorf("AddressHash() = %q, want %q", got, want)
	}
}

func TestWorkspaceRPCs(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	user, ws1, ws2 := uuid.New(), uuid.New(), uuid.New()
	_ = m.Insert(ctx, &model.UserRole{UserID: user, WorkspaceID: ws1, Role: model.RoleRep})
	_ = m.Insert(ctx, &model.UserRole{UserID: user, WorkspaceID: ws2, Role: model.RoleAdmin})

	ids, err := UserWorkspaces(ctx, m, user)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != ws1 || ids[1] != ws2 {
		t.Errorf("UserWorkspaces() = %v", ids)
	}

	role, err := UserRole(ctx, m, user, ws2)
	if err != nil || role != model.RoleAdmin {
		t.Errorf("UserRole() = %q, %v; want admin", role, err)
	}

	if _, err := UserRole(ctx, m, uuid.New(), ws1); !errors.Is(err, ErrNotFound) {
		t.Errorf("UserRole() unknown user error = %v", err)
	}
	if _, err := m.Call(ctx, "drop_everything", nil); !errors.Is(err, ErrUnknownRPC) {
		t.Errorf("Call() unknown error = %v", err)
	}
}
