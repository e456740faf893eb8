package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/CodyCMAC/texas-lead-roper/internal/address"
	"github.com/CodyCMAC/texas-lead-roper/internal/backend"
	"github.com/CodyCMAC/texas-lead-roper/internal/model"
	"github.com/CodyCMAC/texas-lead-roper/internal/session"
	"github.com/CodyCMAC/texas-lead-roper/pkg/logger"
	"github.com/CodyCMAC/texas-lead-roper/prometheus"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

var knockResults = map[string]bool{
	"no_answer":             true,
	"not_interested":        true,
	"interested":            true,
	"callback_requested":    true,
	"appointment_scheduled": true,
}

type DoorKnockDraft struct {
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Result       string `json:"result"`
	Notes        string `json:"notes"`
}

func NewDoorKnockDraft() DoorKnockDraft {
	return DoorKnockDraft{State: address.DefaultState, Result: "no_answer"}
}

func (d DoorKnockDraft) Validate() error {
	switch {
	case blank(d.AddressLine1):
		return required("address_line_1")
	case blank(d.City):
		return required("city")
	case blank(d.State):
		return required("state")
	case blank(d.ZipCode):
		return required("zip_code")
	case !knockResults[d.Result]:
		return invalid("result", "is not a known door knock result")
	}
	return nil
}

func (d DoorKnockDraft) parts() address.Parts {
	return address.Parts{
		Line1: strings.TrimSpace(d.AddressLine1),
		Line2: strings.TrimSpace(d.AddressLine2),
		City:  strings.TrimSpace(d.City),
		State: strings.TrimSpace(d.State),
		Zip:   strings.TrimSpace(d.ZipCode),
	}
}

func (d DoorKnockDraft) leadNotes() string {
	notes := "Door knock result: " + d.Result
	if !blank(d.Notes) {
		notes += "\n\nNotes: " + d.Notes
	}
	return notes
}

type DoorKnockResult struct {
	Property        *model.Property `json:"property"`
	PropertyCreated bool            `json:"property_created"`
	Lead            *model.Lead     `json:"lead"`
	Activity        *model.Activity `json:"activity"`
}

// RecordDoorKnock finds or creates the knocked property, opens a lead on it
// and appends a door_knock row to the activity feed.
func (s *Service) RecordDoorKnock(ctx context.Context, sess *session.Session, d DoorKnockDraft) (*DoorKnockResult, error) {
	log := logger.FromContext(ctx).With(zap.String("entity", "door_knock"))

	if err := d.Validate(); err != nil {
		prometheus.RecordFormSubmission("door_knock", "invalid")
		return nil, err
	}

	workspaceID, err := s.Workspace(ctx, sess.UserID)
	if err != nil {
		prometheus.RecordFormSubmission("door_knock", "no_workspace")
		return nil, err
	}

	p := d.parts()
	res := &DoorKnockResult{}
	res.Property, err = backend.First[model.Property](ctx, s.db, backend.Where(
		backend.Eq("workspace_id", workspaceID),
		backend.Eq("address_line_1", p.Line1),
		backend.Eq("city", p.City),
		backend.Eq("state", p.State),
		backend.Eq("zip_code", p.Zip),
	))
	if errors.Is(err, backend.ErrNotFound) {
		res.Property, res.PropertyCreated, err = s.knockedProperty(ctx, workspaceID, p)
	}
	if err != nil {
		prometheus.RecordFormSubmission("door_knock", "failed")
		log.Error("Failed to resolve door knock property", zap.Error(err))
		return nil, fmt.Errorf("door knock property: %w", err)
	}

	source := "door_knock"
	notes := d.leadNotes()
	rep := sess.UserID
	res.Lead = &model.Lead{
		WorkspaceID:   workspaceID,
		PropertyID:    res.Property.ID,
		AssignedRep:   &rep,
		Status:        model.LeadNew,
		InterestLevel: model.InterestNone,
		Source:        &source,
		Notes:         &notes,
	}
	if err := s.db.Insert(ctx, res.Lead); err != nil {
		prometheus.RecordFormSubmission("door_knock", "failed")
		log.Error("Failed to create door knock lead", zap.String("property_id", res.Property.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("door knock lead: %w", err)
	}

	content := fmt.Sprintf("Door knock attempted at %s, %s, %s. Result: %s", p.Line1, p.City, p.State, d.Result)
	res.Activity = &model.Activity{
		WorkspaceID: workspaceID,
		EntityType:  model.EntityLead,
		EntityID:    res.Lead.ID,
		UpdateType:  "door_knock",
		Content:     &content,
		UserID:      &rep,
		Metadata: datatypes.JSONMap{
			"result":  d.Result,
			"address": p.Line1,
			"notes":   d.Notes,
		},
	}
	if err := s.db.Insert(ctx, res.Activity); err != nil {
		prometheus.RecordFormSubmission("door_knock", "failed")
		log.Error("Failed to record door knock activity", zap.String("lead_id", res.Lead.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("door knock activity: %w", err)
	}

	prometheus.RecordFormSubmission("door_knock", "created")
	prometheus.RecordDoorKnock(d.Result)
	log.Info("Door knock logged",
		zap.String("lead_id", res.Lead.ID.String()),
		zap.String("property_id", res.Property.ID.String()),
		zap.Bool("property_created", res.PropertyCreated),
		zap.String("result", d.Result))

	if res.PropertyCreated {
		s.notify(ctx, model.EntityProperty, res.Property.ID, workspaceID, sess.UserID)
	}
	s.notify(ctx, model.EntityLead, res.Lead.ID, workspaceID, sess.UserID)
	return res, nil
}

// knockedProperty inserts the property of a door knock. An address that
// only differs in case or spacing from a stored one resolves to that row.
func (s *Service) knockedProperty(ctx context.Context, workspaceID uuid.UUID, p address.Parts) (*model.Property, bool, error) {
	hash, err := backend.AddressHash(ctx, s.db, p)
	if err != nil {
		return nil, false, err
	}

	source := "door_knock"
	prop := &model.Property{
		WorkspaceID:       workspaceID,
		AddressLine1:      p.Line1,
		AddressLine2:      optional(p.Line2),
		City:              p.City,
		State:             p.State,
		ZipCode:           p.Zip,
		NormalizedAddress: address.Normalize(p),
		AddressHash:       hash,
		Source:            &source,
	}
	err = s.db.Insert(ctx, prop)
	if errors.Is(err, backend.ErrConflict) {
		existing, err := backend.First[model.Property](ctx, s.db, backend.Where(
			backend.Eq("workspace_id", workspaceID),
			backend.Eq("address_hash", hash),
		))
		return existing, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return prop, true, nil
}
