package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Lead struct {
	Model
	WorkspaceID      uuid.UUID       `json:"workspace_id" gorm:"type:uuid;index;not null"`
	PropertyID       uuid.UUID       `json:"property_id" gorm:"type:uuid;index;not null"`
	ContactID        *uuid.UUID      `json:"contact_id" gorm:"type:uuid;index"`
	Status           LeadStatus      `json:"status" gorm:"type:varchar(20);default:'new'"`
	InterestLevel    InterestLevel   `json:"interest_level" gorm:"type:varchar(20);default:'none'"`
	AIScore          *float64        `json:"ai_score" gorm:"column:ai_score;->"`
	Source           *string         `json:"source"`
	Notes            *string         `json:"notes"`
	Tags             pq.StringArray  `json:"tags" gorm:"type:text[]"`
	NextFollowupDate *datatypes.Date `json:"next_followup_date"`
	AssignedRep      *uuid.UUID      `json:"assigned_rep" gorm:"type:uuid;index"`
	DisqualReason    *string         `json:"disqual_reason"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Contact  *Contact  `json:"contact,omitempty" gorm:"foreignKey:ContactID"`
}

type Opportunity struct {
	Model
	WorkspaceID        uuid.UUID        `json:"workspace_id" gorm:"type:uuid;index;not null"`
	PropertyID         uuid.UUID        `json:"property_id" gorm:"type:uuid;index;not null"`
	LeadID             *uuid.UUID       `json:"lead_id" gorm:"type:uuid;index"`
	Stage              OpportunityStage `json:"stage" gorm:"type:varchar(20);default:'discovery'"`
	OpportunityType    *ProjectType     `json:"opportunity_type" gorm:"type:varchar(20)"`
	EstimatedValue     *float64         `json:"estimated_value"`
	ProbabilityPercent *int             `json:"probability_percent"`
	ExpectedCloseDate  *datatypes.Date  `json:"expected_close_date"`
	Competitor         *string          `json:"competitor"`
	AssignedOwner      *uuid.UUID       `json:"assigned_owner" gorm:"type:uuid;index"`
	Notes              *string          `json:"notes"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}

type ServiceTicket struct {
	Model
	WorkspaceID   uuid.UUID       `json:"workspace_id" gorm:"type:uuid;index;not null"`
	PropertyID    uuid.UUID       `json:"property_id" gorm:"type:uuid;index;not null"`
	ContactID     *uuid.UUID      `json:"contact_id" gorm:"type:uuid;index"`
	ProjectID     *uuid.UUID      `json:"project_id" gorm:"type:uuid"`
	TicketType    string          `json:"ticket_type" gorm:"not null"`
	Priority      *string         `json:"priority"`
	Status        ServiceStatus   `json:"status" gorm:"type:varchar(20);default:'new'"`
	Description   string          `json:"description" gorm:"type:text;not null"`
	TargetDate    *datatypes.Date `json:"target_date"`
	OutcomeNotes  *string         `json:"outcome_notes"`
	AssignedOwner *uuid.UUID      `json:"assigned_owner" gorm:"type:uuid;index"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Contact  *Contact  `json:"contact,omitempty" gorm:"foreignKey:ContactID"`
}

type Task struct {
	Model
	WorkspaceID       uuid.UUID       `json:"workspace_id" gorm:"type:uuid;index;not null"`
	Title             string          `json:"title" gorm:"not null"`
	Description       *string         `json:"description"`
	Priority          *string         `json:"priority"`
	Status            TaskStatus      `json:"status" gorm:"type:varchar(20);default:'open'"`
	DueDate           *datatypes.Date `json:"due_date"`
	RelatedEntityType *string         `json:"related_entity_type"`
	RelatedEntityID   *uuid.UUID      `json:"related_entity_id" gorm:"type:uuid"`
	AssignedOwner     *uuid.UUID      `json:"assigned_owner" gorm:"type:uuid;index"`
}

// Activity is one row of the workspace activity feed.
type Activity struct {
	Model
	WorkspaceID uuid.UUID         `json:"workspace_id" gorm:"type:uuid;index;not null"`
	EntityType  string            `json:"entity_type" gorm:"not null"`
	EntityID    uuid.UUID         `json:"entity_id" gorm:"type:uuid;index;not null"`
	UpdateType  string            `json:"update_type" gorm:"not null"`
	Content     *string           `json:"content"`
	UserID      *uuid.UUID        `json:"user_id" gorm:"type:uuid"`
	Metadata    datatypes.JSONMap `json:"metadata" gorm:"type:jsonb"`
}

func (Activity) TableName() string {
	return "updates"
}
