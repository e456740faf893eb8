// Package form turns submitted entity forms into backend inserts.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/CodyCMAC/texas-lead-roper/internal/backend"
	"github.com/CodyCMAC/texas-lead-roper/internal/model"
	"github.com/CodyCMAC/texas-lead-roper/internal/session"
	"github.com/CodyCMAC/texas-lead-roper/pkg/logger"
	"github.com/CodyCMAC/texas-lead-roper/prometheus"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event describes a record created through a form.
type Event struct {
	Entity      string    `json:"entity"`
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	UserID      uuid.UUID `json:"user_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Observer runs once for every successful submission, after the insert.
type Observer func(ctx context.Context, ev Event)

type Service struct {
	db  backend.Client
	now func() time.Time

	mu        sync.RWMutex
	observers []Observer
}

func NewService(db backend.Client) *Service {
	return &Service{db: db, now: time.Now}
}

func (s *Service) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *Service) notify(ctx context.Context, entity string, id, workspaceID, userID uuid.UUID) {
	ev := Event{Entity: entity, ID: id, WorkspaceID: workspaceID, UserID: userID, OccurredAt: s.now()}

	s.mu.RLock()
	observers := append([]Observer(nil), s.observers...)
	s.mu.RUnlock()

	for _, o := range observers {
		o(ctx, ev)
	}
}

// Workspace resolves the first workspace of the user.
func (s *Service) Workspace(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	ws, err := backend.FirstWorkspace(ctx, s.db, userID)
	if errors.Is(err, backend.ErrNotFound) {
		return uuid.Nil, ErrNoWorkspace
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve workspace: %w", err)
	}
	return ws, nil
}

type record interface {
	PrimaryKey() uuid.UUID
}

// submit validates, resolves the workspace, inserts one row and notifies.
func submit[P record](ctx context.Context, s *Service, sess *session.Session, entity string, validate func() error, build func(workspaceID uuid.UUID) P) (P, error) {
	var zero P
	log := logger.FromContext(ctx).With(zap.String("entity", entity))

	if err := validate(); err != nil {
		prometheus.RecordFormSubmission(entity, "invalid")
		log.Debug("Form rejected", zap.Error(err))
		return zero, err
	}

	workspaceID, err := s.Workspace(ctx, sess.UserID)
	if err != nil {
		prometheus.RecordFormSubmission(entity, "no_workspace")
		log.Warn("Form submitted without workspace", zap.String("user_id", sess.UserID.String()), zap.Error(err))
		return zero, err
	}

	row := build(workspaceID)
	if err := s.db.Insert(ctx, row); err != nil {
		prometheus.RecordFormSubmission(entity, "failed")
		log.Error("Failed to create record", zap.Error(err))
		return zero, fmt.Errorf("create %s: %w", entity, err)
	}

	prometheus.RecordFormSubmission(entity, "created")
	prometheus.RecordEntityOperation(entity, "create")
	log.Info("Record created",
		zap.String("id", row.PrimaryKey().String()),
		zap.String("workspace_id", workspaceID.String()))

	s.notify(ctx, entity, row.PrimaryKey(), workspaceID, sess.UserID)
	return row, nil
}

func (s *Service) CreateProperty(ctx context.Context, sess *session.Session, d PropertyDraft) (*model.Property, error) {
	return submit(ctx, s, sess, model.EntityProperty, d.Validate, d.build)
}

func (s *Service) CreateContact(ctx context.Context, sess *session.Session, d ContactDraft) (*model.Contact, error) {
	return submit(ctx, s, sess, model.EntityContact, d.Validate, d.build)
}

func (s *Service) CreateOpportunity(ctx context.Context, sess *session.Session, d OpportunityDraft) (*model.Opportunity, error) {
	return submit(ctx, s, sess, model.EntityOpportunity, d.Validate, d.build)
}

func (s *Service) CreateServiceTicket(ctx context.Context, sess *session.Session, d ServiceTicketDraft) (*model.ServiceTicket, error) {
	return submit(ctx, s, sess, model.EntityServiceTicket, d.Validate, func(ws uuid.UUID) *model.ServiceTicket {
		return d.build(ws, sess.UserID)
	})
}

func (s *Service) CreateTask(ctx context.Context, sess *session.Session, d TaskDraft) (*model.Task, error) {
	return submit(ctx, s, sess, model.EntityTask, d.Validate, func(ws uuid.UUID) *model.Task {
		return d.build(ws, sess.UserID)
	})
}

// LeadResult holds every row the lead chain inserted.
type LeadResult struct {
	Property *model.Property `json:"property"`
	Contact  *model.Contact  `json:"contact,omitempty"`
	Lead     *model.Lead     `json:"lead"`
}

// CreateLead inserts a property, then a contact when both names are given,
// then the lead. The steps are not transactional: a failure after the
// property insert leaves the property in place.
func (s *Service) CreateLead(ctx context.Context, sess *session.Session, d LeadDraft) (*LeadResult, error) {
	log := logger.FromContext(ctx).With(zap.String("entity", model.EntityLead))

	if err := d.Validate(); err != nil {
		prometheus.RecordFormSubmission(model.EntityLead, "invalid")
		return nil, err
	}

	workspaceID, err := s.Workspace(ctx, sess.UserID)
	if err != nil {
		prometheus.RecordFormSubmission(model.EntityLead, "no_workspace")
		return nil, err
	}

	res := &LeadResult{Property: d.property(workspaceID)}
	if err := s.db.Insert(ctx, res.Property); err != nil {
		prometheus.RecordFormSubmission(model.EntityLead, "failed")
		log.Error("Failed to create lead property", zap.Error(err))
		return nil, fmt.Errorf("create lead property: %w", err)
	}

	var contactID *uuid.UUID
	if d.hasContact() {
		res.Contact = d.contact(workspaceID, res.Property.ID)
		if err := s.db.Insert(ctx, res.Contact); err != nil {
			prometheus.RecordFormSubmission(model.EntityLead, "failed")
			log.Error("Failed to create lead contact",
				zap.String("orphan_property_id", res.Property.ID.String()), zap.Error(err))
			return nil, fmt.Errorf("create lead contact: %w", err)
		}
		contactID = &res.Contact.ID
	}

	res.Lead = d.lead(workspaceID, res.Property.ID, contactID, sess.UserID)
	if err := s.db.Insert(ctx, res.Lead); err != nil {
		prometheus.RecordFormSubmission(model.EntityLead, "failed")
		log.Error("Failed to create lead",
			zap.String("orphan_property_id", res.Property.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("create lead: %w", err)
	}

	prometheus.RecordFormSubmission(model.EntityLead, "created")
	prometheus.RecordEntityOperation(model.EntityLead, "create")
	log.Info("Lead created",
		zap.String("id", res.Lead.ID.String()),
		zap.String("property_id", res.Property.ID.String()),
		zap.Bool("with_contact", contactID != nil))

	s.notify(ctx, model.EntityLead, res.Lead.ID, workspaceID, sess.UserID)
	return res, nil
}
