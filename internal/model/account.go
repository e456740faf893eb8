package model

import "github.com/google/uuid"

// Workspace is the tenant every CRM row belongs to.
type Workspace struct {
	Model
	Name string `json:"name" gorm:"type:varchar(100);not null"`
	Slug string `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
}

// User is a sign-in account.
type User struct {
	Model
	Email        string `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"type:varchar(255);not null"`
}

// UserRole links a user to a workspace with a role.
type UserRole struct {
	Model
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex:idx_user_roles_user_workspace;not null"`
	WorkspaceID uuid.UUID `json:"workspace_id" gorm:"type:uuid;uniqueIndex:idx_user_roles_user_workspace;not null"`
	Role        AppRole   `json:"role" gorm:"type:varchar(20);not null"`
}

// Profile is 1-1 with a user and carries no workspace.
type Profile struct {
	Model
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	DisplayName *string   `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
	Phone       *string   `json:"phone"`
}
