package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity names used in events, activity rows and metrics labels.
const (
	EntityProperty      = "property"
	EntityContact       = "contact"
	EntityLead          = "lead"
	EntityOpportunity   = "opportunity"
	EntityServiceTicket = "service_ticket"
	EntityTask          = "task"
	EntityProfile       = "profile"
)

// Model carries the columns every table shares. IDs are generated on insert.
type Model struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m Model) PrimaryKey() uuid.UUID {
	return m.ID
}

func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// All lists every table model in migration order.
func All() []any {
	return []any{
		&Workspace{},
		&User{},
		&UserRole{},
		&Profile{},
		&Property{},
		&Contact{},
		&Lead{},
		&Opportunity{},
		&ServiceTicket{},
		&Task{},
		&Activity{},
	}
}
