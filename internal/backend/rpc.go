package backend

import (
	"context"
	"fmt"

	"github.com/CodyCMAC/texas-lead-roper/internal/address"
	"github.com/CodyCMAC/texas-lead-roper/internal/model"
	"github.com/google/uuid"
)

const (
	RPCGenerateAddressHash = "generate_address_hash"
	RPCGetUserWorkspaces   = "get_user_workspaces"
	RPCGetUserRole         = "get_user_role"
)

// callRPC serves the named procedures on top of the table operations of c.
func callRPC(ctx context.Context, c Client, fn string, args map[string]any) (any, error) {
	switch fn {
	case RPCGenerateAddressHash:
		_, hash := address.Of(address.Parts{
			Line1: stringArg(args, "address_line_1"),
			Line2: stringArg(args, "address_line_2"),
			City:  stringArg(args, "city"),
			State: stringArg(args, "state"),
			Zip:   stringArg(args, "zip_code"),
		})
		return hash, nil

	case RPCGetUserWorkspaces:
		userID, err := uuidArg(args, "_user_id")
		if err != nil {
			return nil, err
		}
		roles, err := All[model.UserRole](ctx, c, Where(Eq("user_id", userID)).OrderBy("created_at asc"))
		if err != nil {
			return nil, err
		}
		ids := make([]uuid.UUID, 0, len(roles))
		for _, r := range roles {
			ids = append(ids, r.WorkspaceID)
		}
		return ids, nil

	case RPCGetUserRole:
		userID, err := uuidArg(args, "_user_id")
		if err != nil {
			return nil, err
		}
		workspaceID, err := uuidArg(args, "_workspace_id")
		if err != nil {
			return nil, err
		}
		role, err := First[model.UserRole](ctx, c, Where(Eq("user_id", userID), Eq("workspace_id", workspaceID)))
		if err != nil {
			return nil, err
		}
		return role.Role, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownRPC, fn)
}

// AddressHash calls generate_address_hash.
func AddressHash(ctx context.Context, c Client, p address.Parts) (string, error) {
	out, err := c.Call(ctx, RPCGenerateAddressHash, map[string]any{
		"address_line_1": p.Line1,
		"address_line_2": p.Line2,
		"city":           p.City,
		"state":          p.State,
		"zip_code":       p.Zip,
	})
	if err != nil {
		return "", err
	}
	hash, ok := out.(string)
	if !ok {
		return "", fmt.Errorf("generate_address_hash returned %T", out)
	}
	return hash, nil
}

// UserWorkspaces calls get_user_workspaces.
func UserWorkspaces(ctx context.Context, c Client, userID uuid.UUID) ([]uuid.UUID, error) {
	out, err := c.Call(ctx, RPCGetUserWorkspaces, map[string]any{"_user_id": userID})
	if err != nil {
		return nil, err
	}
	ids, ok := out.([]uuid.UUID)
	if !ok {
		return nil, fmt.Errorf("get_user_workspaces returned %T", out)
	}
	return ids, nil
}

// UserRole calls get_user_role.
func UserRole(ctx context.Context, c Client, userID, workspaceID uuid.UUID) (model.AppRole, error) {
	out, err := c.Call(ctx, RPCGetUserRole, map[string]any{"_user_id": userID, "_workspace_id": workspaceID})
	if err != nil {
		return "", err
	}
	role, ok := out.(model.AppRole)
	if !ok {
		return "", fmt.Errorf("get_user_role returned %T", out)
	}
	return role, nil
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func uuidArg(args map[string]any, key string) (uuid.UUID, error) {
	switch v := args[key].(type) {
	case uuid.UUID:
		return v, nil
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, fmt.Errorf("%s: %w", key, err)
		}
		return id, nil
	}
	return uuid.Nil, fmt.Errorf("%s: missing uuid argument", key)
}

// FirstWorkspace returns the workspace of the user's first role row, or
// ErrNotFound when the user belongs to none.
func FirstWorkspace(ctx context.Context, c Client, userID uuid.UUID) (uuid.UUID, error) {
	role, err := First[model.UserRole](ctx, c, Where(Eq("user_id", userID)).OrderBy("created_at asc"))
	if err != nil {
		return uuid.Nil, err
	}
	return role.WorkspaceID, nil
}
