package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/CodyCMAC/texas-lead-roper/internal/backend"
	"github.com/CodyCMAC/texas-lead-roper/internal/form"
	"github.com/CodyCMAC/texas-lead-roper/internal/model"
	"github.com/CodyCMAC/texas-lead-roper/pkg/logger"
	"github.com/CodyCMAC/texas-lead-roper/prometheus"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// CanEdit reports whether userID may edit the lead: an unassigned lead is
// editable by anyone in the workspace, an assigned one only by its rep.
func CanEdit(userID uuid.UUID, l *model.Lead) bool {
	return l.AssignedRep == nil || *l.AssignedRep == userID
}

// LeadEdit is a partial update of a lead. Nil fields are left untouched and
// empty values clear the column.
type LeadEdit struct {
	AssignedRep      *string   `json:"assigned_rep"`
	Status           *string   `json:"status"`
	InterestLevel    *string   `json:"interest_level"`
	Notes            *string   `json:"notes"`
	NextFollowupDate *string   `json:"next_followup_date"`
	Tags             *[]string `json:"tags"`
}

func (e LeadEdit) fields() (map[string]any, error) {
	fields := map[string]any{}

	if e.AssignedRep != nil {
		rep := strings.TrimSpace(*e.AssignedRep)
		if rep == "" {
			fields["assigned_rep"] = (*uuid.UUID)(nil)
		} else {
			id, err := uuid.Parse(rep)
			if err != nil {
				return nil, &form.FieldError{Field: "assigned_rep", Reason: "must be a valid id"}
			}
			fields["assigned_rep"] = &id
		}
	}
	if e.Status != nil {
		s := model.LeadStatus(*e.Status)
		if !s.Valid() {
			return nil, &form.FieldError{Field: "status", Reason: "is not a known lead status"}
		}
		fields["status"] = s
	}
	if e.InterestLevel != nil {
		l := model.InterestLevel(*e.InterestLevel)
		if !l.Valid() {
			return nil, &form.FieldError{Field: "interest_level", Reason: "must be one of none, low, medium, high"}
		}
		fields["interest_level"] = l
	}
	if e.Notes != nil {
		if *e.Notes == "" {
			fields["notes"] = (*string)(nil)
		} else {
			fields["notes"] = *e.Notes
		}
	}
	if e.NextFollowupDate != nil {
		raw := strings.TrimSpace(*e.NextFollowupDate)
		if raw == "" {
			fields["next_followup_date"] = (*datatypes.Date)(nil)
		} else {
			t, err := time.Parse(time.DateOnly, raw)
			if err != nil {
				return nil, &form.FieldError{Field: "next_followup_date", Reason: "must be a date (YYYY-MM-DD)"}
			}
			d := datatypes.Date(t)
			fields["next_followup_date"] = &d
		}
	}
	if e.Tags != nil {
		var tags pq.StringArray
		for _, t := range *e.Tags {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		fields["tags"] = tags
	}
	return fields, nil
}

// EditLead applies e to the lead and returns the stored row. There is no
// version check; the last write wins.
func (c *Catalog) EditLead(ctx context.Context, userID, workspaceID, id uuid.UUID, e LeadEdit) (*model.Lead, error) {
	log := logger.FromContext(ctx).With(zap.String("lead_id", id.String()))

	fields, err := e.fields()
	if err != nil {
		return nil, err
	}

	lead, err := c.Lead(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if !CanEdit(userID, lead) {
		log.Warn("Lead edit refused", zap.String("user_id", userID.String()))
		return nil, ErrForbidden
	}
	if len(fields) == 0 {
		return lead, nil
	}

	if _, err := c.db.Update(ctx, &model.Lead{}, backend.Where(
		backend.Eq("id", id),
		backend.Eq("workspace_id", workspaceID),
	), fields); err != nil {
		log.Error("Failed to update lead", zap.Error(err))
		return nil, fmt.Errorf("update lead: %w", err)
	}
	prometheus.RecordEntityOperation(model.EntityLead, "update")
	log.Info("Lead updated", zap.Int("fields", len(fields)))

	return c.Lead(ctx, workspaceID, id)
}
