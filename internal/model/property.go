package model

import "github.com/google/uuid"

type Property struct {
	Model
	WorkspaceID       uuid.UUID `json:"workspace_id" gorm:"type:uuid;index;uniqueIndex:idx_properties_workspace_hash;not null"`
	AddressLine1      string    `json:"address_line_1" gorm:"column:address_line_1;not null"`
	AddressLine2      *string   `json:"address_line_2" gorm:"column:address_line_2"`
	City              string    `json:"city" gorm:"not null"`
	State             string    `json:"state" gorm:"type:varchar(2);not null"`
	ZipCode           string    `json:"zip_code" gorm:"type:varchar(10);not null"`
	County            *string   `json:"county"`
	Latitude          *float64  `json:"latitude"`
	Longitude         *float64  `json:"longitude"`
	NormalizedAddress string    `json:"normalized_address" gorm:"not null"`
	AddressHash       string    `json:"address_hash" gorm:"uniqueIndex:idx_properties_workspace_hash;not null"`
	HomeType          *string   `json:"home_type"`
	YearBuilt         *int      `json:"year_built"`
	OwnerOccupancy    *string   `json:"owner_occupancy"`
	Source            *string   `json:"source"`
}

type Contact struct {
	Model
	WorkspaceID       uuid.UUID  `json:"workspace_id" gorm:"type:uuid;index;not null"`
	FirstName         string     `json:"first_name" gorm:"not null"`
	LastName          string     `json:"last_name" gorm:"not null"`
	Email             *string    `json:"email"`
	Phone             *string    `json:"phone"`
	Mobile            *string    `json:"mobile"`
	RoleInHousehold   *string    `json:"role_in_household"`
	ContactPreference *string    `json:"contact_preference"`
	ConsentGiven      *bool      `json:"consent_given"`
	PropertyID        *uuid.UUID `json:"property_id" gorm:"type:uuid;index"`
}

// FullName joins first and last name with a single space.
func (c *Contact) FullName() string {
	if c == nil {
		return ""
	}
	return c.FirstName + " " + c.LastName
}
