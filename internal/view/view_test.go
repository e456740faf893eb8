package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/CodyCMAC/texas-lead-roper/internal/address"
	"github.com/CodyCMAC/texas-lead-roper/internal/backend"
	"github.com/CodyCMAC/texas-lead-roper/internal/form"
	"github.com/CodyCMAC/texas-lead-roper/internal/model"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

func ptr[T any](v T) *T { return &v }

func seedProperty(t *testing.T, db backend.Client, ws uuid.UUID, line1, city string) *model.Property {
	t.Helper()
	normalized, hash := address.Of(address.Parts{Line1: line1, City: city, State: "TX", Zip: "76109"})
	p := &model.Property{
		WorkspaceID: ws, AddressLine1: line1, City: city, State: "TX", ZipCode: "76109",
		NormalizedAddress: normalized, AddressHash: hash,
	}
	if err := db.Insert(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPropertySearch(t *testing.T) {
	ctx := context.Background()
	db := backend.NewMemory()
	ws := uuid.New()
	seedProperty(t, db, ws, "1234 Main Street", "Fort Worth")
	seedProperty(t, db, ws, "9 Elm Court", "Arlington")
	seedProperty(t, db, ws, "55 Main Ave", "Dallas")
	seedProperty(t, db, uuid.New(), "1 Main Street", "Fort Worth")

	list := NewCatalog(db).Properties(ws)
	if err := list.Reload(ctx); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		q    string
		want []string
	}{
		{"", []string{"55 Main Ave", "9 Elm Court", "1234 Main Street"}},
		{"MAIN", []string{"55 Main Ave", "1234 Main Street"}},
		{"arlington", []string{"9 Elm Court"}},
		{"76109", []string{"55 Main Ave", "9 Elm Court", "1234 Main Street"}},
		{"Houston", nil},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			got := list.Search(tt.q)
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) returned %d rows, want %d", tt.q, len(got), len(tt.want))
			}
			for i := range got {
				if got[i].AddressLine1 != tt.want[i] {
					t.Errorf("row %d = %s, want %s", i, got[i].AddressLine1, tt.want[i])
				}
			}
		})
	}

	page := list.Page("main")
	if page.Total != 3 || page.Filtered != 2 {
		t.Errorf("Page = %d/%d, want 3/2", page.Filtered, page.Total)
	}
	if empty := list.Page("zzz"); empty.Items == nil || empty.Filtered != 0 {
		t.Errorf("empty page = %+v", empty)
	}
}

func TestFilterMatchesEveryDocumentedField(t *testing.T) {
	prop := &model.Property{NormalizedAddress: "1234 Main Street, Fort Worth, TX 76109"}
	jane := &model.Contact{FirstName: "Jane", LastName: "Doe", Email: ptr("jane@example.com"), Phone: ptr("817-555-0101"), Mobile: ptr("817-555-0199")}

	contacts := []model.Contact{*jane, {FirstName: "Bob", LastName: "Ray"}}
	for _, q := range []string{"jane doe", "EXAMPLE.com", "555-0101", "0199"} {
		if got := Filter(contacts, q, MatchContact); len(got) != 1 || got[0].FirstName != "Jane" {
			t.Errorf("contact search %q = %v", q, got)
		}
	}

	leads := []model.Lead{
		{Status: model.LeadQualified, Property: prop, Contact: jane},
		{Status: model.LeadNew},
	}
	for _, q := range []string{"main street", "Jane Doe", "QUALIFIED"} {
		if got := Filter(leads, q, MatchLead); len(got) != 1 {
			t.Errorf("lead search %q matched %d", q, len(got))
		}
	}

	kind := model.ProjectRoofing
	opps := []model.Opportunity{{Stage: model.StageNegotiation, OpportunityType: &kind, Property: prop}, {Stage: model.StageWon}}
	for _, q := range []string{"fort worth", "negoti", "roof"} {
		if got := Filter(opps, q, MatchOpportunity); len(got) != 1 {
			t.Errorf("opportunity search %q matched %d", q, len(got))
		}
	}

	tickets := []model.ServiceTicket{{TicketType: "warranty", Description: "Leak over garage", Property: prop, Contact: jane}, {TicketType: "repair"}}
	for _, q := range []string{"76109", "WARRANTY", "leak", "jane"} {
		if got := Filter(tickets, q, MatchServiceTicket); len(got) != 1 {
			t.Errorf("ticket search %q matched %d", q, len(got))
		}
	}

	tasks := []model.Task{{Title: "Call back", Description: ptr("ask about gutters"), Status: model.TaskSnoozed}, {Title: "Send estimate", Status: model.TaskOpen}}
	for _, q := range []string{"call", "GUTTERS", "snoozed"} {
		if got := Filter(tasks, q, MatchTask); len(got) != 1 {
			t.Errorf("task search %q matched %d", q, len(got))
		}
	}
}

func seedLead(t *testing.T, db backend.Client, ws uuid.UUID, rep *uuid.UUID) *model.Lead {
	t.Helper()
	p := seedProperty(t, db, ws, "1234 Main Street", "Fort Worth")
	l := &model.Lead{
		WorkspaceID: ws, PropertyID: p.ID, AssignedRep: rep,
		Status: model.LeadNew, InterestLevel: model.InterestLow,
		Source: ptr("door_knock"), Notes: ptr("first visit"), Tags: pq.StringArray{"roof"},
	}
	if err := db.Insert(context.Background(), l); err != nil {
		t.Fatal(err)
	}
	return l
}

func TestEditLeadRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := backend.NewMemory()
	ws, user := uuid.New(), uuid.New()
	lead := seedLead(t, db, ws, &user)
	c := NewCatalog(db)

	got, err := c.EditLead(ctx, user, ws, lead.ID, LeadEdit{
		Status:           ptr("qualified"),
		NextFollowupDate: ptr("2024-07-01"),
		Tags:             &[]string{" hail ", "", "gutters"},
	})
	if err != nil {
		t.Fatalf("EditLead() error = %v", err)
	}
	if got.Status != model.LeadQualified {
		t.Errorf("Status = %s", got.Status)
	}
	if got.NextFollowupDate == nil || time.Time(*got.NextFollowupDate).Format(time.DateOnly) != "2024-07-01" {
		t.Errorf("NextFollowupDate = %v", got.NextFollowupDate)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "hail" || got.Tags[1] != "gutters" {
		t.Errorf("Tags = %v", got.Tags)
	}
	if got.InterestLevel != model.InterestLow || *got.Notes != "first visit" || *got.Source != "door_knock" || *got.AssignedRep != user {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if got.Property == nil || got.Property.ID != lead.PropertyID {
		t.Error("edited lead not returned with its property")
	}

	cleared, err := c.EditLead(ctx, user, ws, lead.ID, LeadEdit{
		AssignedRep:      ptr(""),
		Notes:            ptr(""),
		NextFollowupDate: ptr(""),
		Tags:             &[]string{},
	})
	if err != nil {
		t.Fatalf("EditLead() clear error = %v", err)
	}
	if cleared.AssignedRep != nil || cleared.Notes != nil || cleared.NextFollowupDate != nil || cleared.Tags != nil {
		t.Errorf("empty values did not clear: %+v", cleared)
	}
	if cleared.Status != model.LeadQualified {
		t.Errorf("Status = %s, want qualified kept", cleared.Status)
	}
}

func TestEditLeadRights(t *testing.T) {
	ctx := context.Background()
	db := backend.NewMemory()
	ws, rep, other := uuid.New(), uuid.New(), uuid.New()
	c := NewCatalog(db)

	assigned := seedLead(t, db, ws, &rep)
	if _, err := c.EditLead(ctx, other, ws, assigned.ID, LeadEdit{Status: ptr("contacted")}); !errors.Is(err, ErrForbidden) {
		t.Errorf("edit by other rep error = %v, want ErrForbidden", err)
	}
	if n := db.Count("update", "leads"); n != 0 {
		t.Errorf("updates = %d, want 0", n)
	}

	unassigned := &model.Lead{WorkspaceID: ws, PropertyID: assigned.PropertyID, Status: model.LeadNew, InterestLevel: model.InterestNone}
	if err := db.Insert(ctx, unassigned); err != nil {
		t.Fatal(err)
	}
	if !CanEdit(other, unassigned) {
		t.Error("CanEdit(unassigned) = false")
	}
	if _, err := c.EditLead(ctx, other, ws, unassigned.ID, LeadEdit{Status: ptr("contacted")}); err != nil {
		t.Errorf("edit of unassigned lead error = %v", err)
	}

	if _, err := c.EditLead(ctx, rep, uuid.New(), assigned.ID, LeadEdit{Status: ptr("contacted")}); !errors.Is(err, ErrNotFound) {
		t.Errorf("edit across workspaces error = %v, want ErrNotFound", err)
	}
	if _, err := c.EditLead(ctx, rep, ws, assigned.ID, LeadEdit{Status: ptr("won")}); !errors.Is(err, form.ErrValidation) {
		t.Errorf("invalid status error = %v, want ErrValidation", err)
	}
}

func TestTaskToggleIsReflectedLocally(t *testing.T) {
	ctx := context.Background()
	db := backend.NewMemory()
	ws := uuid.New()
	task := &model.Task{WorkspaceID: ws, Title: "Call back", Status: model.TaskOpen}
	if err := db.Insert(ctx, task); err != nil {
		t.Fatal(err)
	}

	tasks := NewCatalog(db).Tasks(ws)
	if err := tasks.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	selects := db.Count("select", "tasks")

	got, err := tasks.Toggle(ctx, task.ID, true)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if got.Status != model.TaskDone {
		t.Errorf("Status = %s, want done", got.Status)
	}
	if items := tasks.Items(); items[0].Status != model.TaskDone {
		t.Errorf("local row status = %s, want done", items[0].Status)
	}
	if n := db.Count("select", "tasks"); n != selects {
		t.Errorf("toggle re-fetched the list (%d selects)", n-selects)
	}

	if _, err := tasks.Toggle(ctx, task.ID, false); err != nil {
		t.Fatal(err)
	}
	if items := tasks.Search("open"); len(items) != 1 {
		t.Errorf("reopened task not found by status search")
	}

	if _, err := tasks.Toggle(ctx, uuid.New(), true); !errors.Is(err, ErrNotFound) {
		t.Errorf("Toggle(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestReloadKeepsRowsOnError(t *testing.T) {
	ctx := context.Background()
	db := backend.NewMemory()
	ws := uuid.New()
	seedProperty(t, db, ws, "1 Elm", "Fort Worth")

	list := NewCatalog(db).Properties(ws)
	if err := list.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	db.Fail("select", "properties", errors.New("connection reset"))
	if err := list.Reload(ctx); err == nil {
		t.Fatal("Reload() error = nil")
	}
	if len(list.Items()) != 1 {
		t.Errorf("rows lost after failed reload")
	}
}

func TestDashboardAndReport(t *testing.T) {
	ctx := context.Background()
	db := backend.NewMemory()
	ws := uuid.New()
	p := seedProperty(t, db, ws, "1 Elm", "Fort Worth")

	rows := []any{
		&model.Lead{WorkspaceID: ws, PropertyID: p.ID, Status: model.LeadQualified},
		&model.Lead{WorkspaceID: ws, PropertyID: p.ID, Status: model.LeadNew},
		&model.Lead{WorkspaceID: ws, PropertyID: p.ID, Status: model.LeadDisqualified},
		&model.Opportunity{WorkspaceID: ws, PropertyID: p.ID, Stage: model.StageEstimate, EstimatedValue: ptr(1000.0)},
		&model.Opportunity{WorkspaceID: ws, PropertyID: p.ID, Stage: model.StageWon, EstimatedValue: ptr(2500.0)},
		&model.Opportunity{WorkspaceID: ws, PropertyID: p.ID, Stage: model.StageLost, EstimatedValue: ptr(9000.0)},
		&model.ServiceTicket{WorkspaceID: ws, PropertyID: p.ID, TicketType: "repair", Description: "x", Status: model.ServiceTriage},
		&model.ServiceTicket{WorkspaceID: ws, PropertyID: p.ID, TicketType: "repair", Description: "y", Status: model.ServiceClosed},
		&model.Task{WorkspaceID: ws, Title: "a", Status: model.TaskOpen},
		&model.Task{WorkspaceID: ws, Title: "b", Status: model.TaskDone},
	}
	for _, r := range rows {
		if err := db.Insert(ctx, r); err != nil {
			t.Fatal(err)
		}
	}
	c := NewCatalog(db)

	d, err := c.Dashboard(ctx, ws)
	if err != nil {
		t.Fatal(err)
	}
	if d.ActiveLeads != 2 || d.PipelineValue != 1000 || d.WonValue != 2500 || d.OpenTickets != 1 || d.OpenTasks != 1 {
		t.Errorf("Dashboard = %+v", d)
	}

	r, err := c.Report(ctx, ws, 30, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if r.NewLeads != 3 || r.QualifiedLeads != 1 || r.ConversionRate != 33.3 {
		t.Errorf("lead stats = %d/%d/%v", r.NewLeads, r.QualifiedLeads, r.ConversionRate)
	}
	if r.ActiveOpportunities != 1 || r.WonValue != 2500 || r.ByStage["estimate"] != 1 {
		t.Errorf("opportunity stats = %+v", r)
	}

	later, err := c.Report(ctx, ws, 7, time.Now().AddDate(0, 0, 30))
	if err != nil {
		t.Fatal(err)
	}
	if later.NewLeads != 0 || later.ConversionRate != 0 || later.WonValue != 0 {
		t.Errorf("window ignored: %+v", later)
	}
}
