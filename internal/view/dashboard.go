package view

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/CodyCMAC/texas-lead-roper/internal/backend"
	"github.com/CodyCMAC/texas-lead-roper/internal/model"
	"github.com/google/uuid"
)

const recentActivityLimit = 10

type Dashboard struct {
	ActiveLeads    int              `json:"active_leads"`
	PipelineValue  float64          `json:"pipeline_value"`
	WonValue       float64          `json:"won_value"`
	OpenTickets    int              `json:"open_tickets"`
	OpenTasks      int              `json:"open_tasks"`
	RecentActivity []model.Activity `json:"recent_activity"`
}

// Dashboard totals the workspace. Active leads are those not disqualified;
// pipeline value sums the estimates of opportunities neither won nor lost.
func (c *Catalog) Dashboard(ctx context.Context, workspaceID uuid.UUID) (*Dashboard, error) {
	scope := backend.Where(backend.Eq("workspace_id", workspaceID))

	leads, err := backend.All[model.Lead](ctx, c.db, scope)
	if err != nil {
		return nil, fmt.Errorf("dashboard leads: %w", err)
	}
	opps, err := backend.All[model.Opportunity](ctx, c.db, scope)
	if err != nil {
		return nil, fmt.Errorf("dashboard opportunities: %w", err)
	}
	tickets, err := backend.All[model.ServiceTicket](ctx, c.db, scope)
	if err != nil {
		return nil, fmt.Errorf("dashboard tickets: %w", err)
	}
	tasks, err := backend.All[model.Task](ctx, c.db, backend.Where(
		backend.Eq("workspace_id", workspaceID),
		backend.Eq("status", model.TaskOpen),
	))
	if err != nil {
		return nil, fmt.Errorf("dashboard tasks: %w", err)
	}
	recent, err := backend.All[model.Activity](ctx, c.db, scope.OrderBy("created_at desc").Take(recentActivityLimit))
	if err != nil {
		return nil, fmt.Errorf("dashboard activity: %w", err)
	}

	d := &Dashboard{OpenTasks: len(tasks), RecentActivity: recent}
	if d.RecentActivity == nil {
		d.RecentActivity = []model.Activity{}
	}
	for _, l := range leads {
		if l.Status != model.LeadDisqualified {
			d.ActiveLeads++
		}
	}
	for _, o := range opps {
		switch {
		case o.Stage == model.StageWon:
			d.WonValue += deref(o.EstimatedValue)
		case o.Stage.Open():
			d.PipelineValue += deref(o.EstimatedValue)
		}
	}
	for _, t := range tickets {
		if t.Status.Open() {
			d.OpenTickets++
		}
	}
	return d, nil
}

type Report struct {
	Days                int            `json:"days"`
	Since               time.Time      `json:"since"`
	NewLeads            int            `json:"new_leads"`
	QualifiedLeads      int            `json:"qualified_leads"`
	ConversionRate      float64        `json:"conversion_rate"`
	ActiveOpportunities int            `json:"active_opportunities"`
	WonValue            float64        `json:"won_value"`
	ByStage             map[string]int `json:"opportunities_by_stage"`
}

// Report covers the rows created in the last days days before now. The
// conversion rate is the qualified share of new leads in percent, rounded to
// one decimal.
func (c *Catalog) Report(ctx context.Context, workspaceID uuid.UUID, days int, now time.Time) (*Report, error) {
	if days <= 0 {
		days = 30
	}
	r := &Report{Days: days, Since: now.AddDate(0, 0, -days), ByStage: map[string]int{}}
	scope := backend.Where(backend.Eq("workspace_id", workspaceID))

	leads, err := backend.All[model.Lead](ctx, c.db, scope)
	if err != nil {
		return nil, fmt.Errorf("report leads: %w", err)
	}
	opps, err := backend.All[model.Opportunity](ctx, c.db, scope)
	if err != nil {
		return nil, fmt.Errorf("report opportunities: %w", err)
	}

	for _, l := range leads {
		if l.CreatedAt.Before(r.Since) {
			continue
		}
		r.NewLeads++
		if l.Status == model.LeadQualified {
			r.QualifiedLeads++
		}
	}
	if r.NewLeads > 0 {
		r.ConversionRate = math.Round(float64(r.QualifiedLeads)*1000/float64(r.NewLeads)) / 10
	}

	for _, o := range opps {
		if o.Stage.Open() {
			r.ActiveOpportunities++
			r.ByStage[string(o.Stage)]++
		}
		if o.Stage == model.StageWon && !o.CreatedAt.Before(r.Since) {
			r.WonValue += deref(o.EstimatedValue)
		}
	}
	return r, nil
}
