package model

import (
	"testing"

	"github.com/google/uuid"
)

func TestEnumValidation(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"lead status qualified", LeadStatus("qualified").Valid()},
		{"lead status bogus", !LeadStatus("won").Valid()},
		{"interest high", InterestLevel("high").Valid()},
		{"interest empty", !InterestLevel("").Valid()},
		{"stage proposal_sent", OpportunityStage("proposal_sent").Valid()},
		{"project garage_door", ProjectType("garage_door").Valid()},
		{"project siding", !ProjectType("siding").Valid()},
		{"service onsite", ServiceStatus("onsite").Valid()},
		{"task snoozed", TaskStatus("snoozed").Valid()},
		{"role backoffice", AppRole("backoffice").Valid()},
	}
	for _, tt := range tests {
		if !tt.valid {
			t.Errorf("%s: unexpected validity", tt.name)
		}
	}
}

func TestOpenStates(t *testing.T) {
	if StageWon.Open() || StageLost.Open() {
		t.Error("won/lost opportunities must not be open")
	}
	if !StageNegotiation.Open() {
		t.Error("negotiation should be open")
	}
	if ServiceClosed.Open() || !ServiceTriage.Open() {
		t.Error("service status Open() mismatch")
	}
}

func TestBeforeCreateAssignsID(t *testing.T) {
	var p Property
	if err := p.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate() error = %v", err)
	}
	if p.ID == uuid.Nil {
		t.Fatal("BeforeCreate() left ID empty")
	}

	keep := uuid.New()
	c := Contact{Model: Model{ID: keep}}
	_ = c.BeforeCreate(nil)
	if c.ID != keep {
		t.Errorf("BeforeCreate() replaced an existing ID")
	}
}

func TestContactFullName(t *testing.T) {
	var nilContact *Contact
	if got := nilContact.FullName(); got != "" {
		t.Errorf("nil FullName() = %q", got)
	}
	c := &Contact{FirstName: "Jane", LastName: "Doe"}
	if got := c.FullName(); got != "Jane Doe" {
		t.Errorf("FullName() = %q, want %q", got, "Jane Doe")
	}
}
