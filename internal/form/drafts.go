package form

import (
	"strings"

	"github.com/CodyCMAC/texas-lead-roper/internal/address"
	"github.com/CodyCMAC/texas-lead-roper/internal/model"
	"github.com/google/uuid"
)

// Drafts carry raw form values under the field names the UI posts. The
// NewXDraft constructors return the values a fresh form starts with, so a
// client that omits a field gets its default while an explicit "" fails
// validation where the field is required.

type PropertyDraft struct {
	AddressLine1   string `json:"addressLine1"`
	AddressLine2   string `json:"addressLine2"`
	City           string `json:"city"`
	State          string `json:"state"`
	ZipCode        string `json:"zipCode"`
	HomeType       string `json:"homeType"`
	YearBuilt      string `json:"yearBuilt"`
	OwnerOccupancy string `json:"ownerOccupancy"`
	Source         string `json:"source"`
}

func NewPropertyDraft() PropertyDraft {
	return PropertyDraft{
		City:           address.DefaultCity,
		State:          address.DefaultState,
		OwnerOccupancy: "unknown",
		Source:         "door_knock",
	}
}

func (d PropertyDraft) Validate() error {
	switch {
	case blank(d.AddressLine1):
		return required("addressLine1")
	case blank(d.City):
		return required("city")
	case blank(d.State):
		return required("state")
	case blank(d.ZipCode):
		return required("zipCode")
	}
	return checkInt("yearBuilt", d.YearBuilt)
}

func (d PropertyDraft) parts() address.Parts {
	return address.Parts{Line1: d.AddressLine1, Line2: d.AddressLine2, City: d.City, State: d.State, Zip: d.ZipCode}
}

func (d PropertyDraft) build(workspaceID uuid.UUID) *model.Property {
	normalized, hash := address.Of(d.parts())
	return &model.Property{
		WorkspaceID:       workspaceID,
		AddressLine1:      strings.TrimSpace(d.AddressLine1),
		AddressLine2:      optional(strings.TrimSpace(d.AddressLine2)),
		City:              strings.TrimSpace(d.City),
		State:             strings.TrimSpace(d.State),
		ZipCode:           strings.TrimSpace(d.ZipCode),
		NormalizedAddress: normalized,
		AddressHash:       hash,
		HomeType:          optional(d.HomeType),
		YearBuilt:         optionalInt(d.YearBuilt),
		OwnerOccupancy:    optional(d.OwnerOccupancy),
		Source:            optional(d.Source),
	}
}

type ContactDraft struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Mobile            string `json:"mobile"`
	RoleInHousehold   string `json:"roleInHousehold"`
	ContactPreference string `json:"contactPreference"`
	ConsentGiven      bool   `json:"consentGiven"`
	PropertyID        string `json:"propertyId"`
}

func NewContactDraft() ContactDraft {
	return ContactDraft{RoleInHousehold: "owner", ContactPreference: "phone"}
}

func (d ContactDraft) Validate() error {
	switch {
	case blank(d.FirstName):
		return required("firstName")
	case blank(d.LastName):
		return required("lastName")
	}
	return checkUUID("propertyId", d.PropertyID, false)
}

func (d ContactDraft) build(workspaceID uuid.UUID) *model.Contact {
	consent := d.ConsentGiven
	return &model.Contact{
		WorkspaceID:       workspaceID,
		FirstName:         strings.TrimSpace(d.FirstName),
		LastName:          strings.TrimSpace(d.LastName),
		Email:             optional(d.Email),
		Phone:             optional(d.Phone),
		Mobile:            optional(d.Mobile),
		RoleInHousehold:   optional(d.RoleInHousehold),
		ContactPreference: optional(d.ContactPreference),
		ConsentGiven:      &consent,
		PropertyID:        optionalUUID(d.PropertyID),
	}
}

// LeadDraft is the quick lead form: a street line plus an optional contact.
type LeadDraft struct {
	Address          string `json:"address"`
	ContactFirstName string `json:"contactFirstName"`
	ContactLastName  string `json:"contactLastName"`
	ContactEmail     string `json:"contactEmail"`
	ContactPhone     string `json:"contactPhone"`
	Source           string `json:"source"`
	InterestLevel    string `json:"interestLevel"`
	Notes            string `json:"notes"`
}

func NewLeadDraft() LeadDraft {
	return LeadDraft{Source: "door_knock", InterestLevel: string(model.InterestNone)}
}

func (d LeadDraft) Validate() error {
	if blank(d.Address) {
		return required("address")
	}
	if !model.InterestLevel(d.InterestLevel).Valid() {
		return invalid("interestLevel", "must be one of none, low, medium, high")
	}
	return nil
}

// hasContact reports whether the chain should insert a contact.
func (d LeadDraft) hasContact() bool {
	return !blank(d.ContactFirstName) && !blank(d.ContactLastName)
}

func (d LeadDraft) property(workspaceID uuid.UUID) *model.Property {
	normalized, hash := address.Of(address.Parts{
		Line1: d.Address,
		City:  address.DefaultCity,
		State: address.DefaultState,
		Zip:   address.DefaultZip,
	})
	return &model.Property{
		WorkspaceID:       workspaceID,
		AddressLine1:      strings.TrimSpace(d.Address),
		City:              address.DefaultCity,
		State:             address.DefaultState,
		ZipCode:           address.DefaultZip,
		NormalizedAddress: normalized,
		AddressHash:       hash,
		Source:            optional(d.Source),
	}
}

func (d LeadDraft) contact(workspaceID, propertyID uuid.UUID) *model.Contact {
	return &model.Contact{
		WorkspaceID: workspaceID,
		FirstName:   strings.TrimSpace(d.ContactFirstName),
		LastName:    strings.TrimSpace(d.ContactLastName),
		Email:       optional(d.ContactEmail),
		Phone:       optional(d.ContactPhone),
		PropertyID:  &propertyID,
	}
}

func (d LeadDraft) lead(workspaceID, propertyID uuid.UUID, contactID *uuid.UUID, rep uuid.UUID) *model.Lead {
	return &model.Lead{
		WorkspaceID:   workspaceID,
		PropertyID:    propertyID,
		ContactID:     contactID,
		AssignedRep:   &rep,
		Status:        model.LeadNew,
		InterestLevel: model.InterestLevel(d.InterestLevel),
		Source:        optional(d.Source),
		Notes:         optional(d.Notes),
	}
}

type OpportunityDraft struct {
	PropertyID         string `json:"propertyId"`
	Stage              string `json:"stage"`
	OpportunityType    string `json:"opportunityType"`
	EstimatedValue     string `json:"estimatedValue"`
	ProbabilityPercent string `json:"probabilityPercent"`
	ExpectedCloseDate  string `json:"expectedCloseDate"`
	Competitor         string `json:"competitor"`
	Notes              string `json:"notes"`
}

func NewOpportunityDraft() OpportunityDraft {
	return OpportunityDraft{Stage: string(model.StageDiscovery), ProbabilityPercent: "50"}
}

func (d OpportunityDraft) Validate() error {
	if err := checkUUID("propertyId", d.PropertyID, true); err != nil {
		return err
	}
	if !model.OpportunityStage(d.Stage).Valid() {
		return invalid("stage", "is not a known stage")
	}
	if !blank(d.OpportunityType) && !model.ProjectType(d.OpportunityType).Valid() {
		return invalid("opportunityType", "must be one of roofing, garage_door, remodel")
	}
	if err := checkFloat("estimatedValue", d.EstimatedValue); err != nil {
		return err
	}
	if err := checkInt("probabilityPercent", d.ProbabilityPercent); err != nil {
		return err
	}
	if p := optionalInt(d.ProbabilityPercent); p != nil && (*p < 0 || *p > 100) {
		return invalid("probabilityPercent", "must be between 0 and 100")
	}
	return checkDate("expectedCloseDate", d.ExpectedCloseDate)
}

func (d OpportunityDraft) build(workspaceID uuid.UUID) *model.Opportunity {
	var kind *model.ProjectType
	if !blank(d.OpportunityType) {
		k := model.ProjectType(d.OpportunityType)
		kind = &k
	}
	return &model.Opportunity{
		WorkspaceID:        workspaceID,
		PropertyID:         mustUUID(d.PropertyID),
		Stage:              model.OpportunityStage(d.Stage),
		OpportunityType:    kind,
		EstimatedValue:     optionalFloat(d.EstimatedValue),
		ProbabilityPercent: optionalInt(d.ProbabilityPercent),
		ExpectedCloseDate:  optionalDate(d.ExpectedCloseDate),
		Competitor:         optional(d.Competitor),
		Notes:              optional(d.Notes),
	}
}

type ServiceTicketDraft struct {
	PropertyID  string `json:"propertyId"`
	ContactID   string `json:"contactId"`
	TicketType  string `json:"ticketType"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	TargetDate  string `json:"targetDate"`
}

func NewServiceTicketDraft() ServiceTicketDraft {
	return ServiceTicketDraft{Priority: "medium"}
}

func (d ServiceTicketDraft) Validate() error {
	if err := checkUUID("propertyId", d.PropertyID, true); err != nil {
		return err
	}
	switch {
	case blank(d.TicketType):
		return required("ticketType")
	case blank(d.Description):
		return required("description")
	}
	if err := checkUUID("contactId", d.ContactID, false); err != nil {
		return err
	}
	return checkDate("targetDate", d.TargetDate)
}

func (d ServiceTicketDraft) build(workspaceID, owner uuid.UUID) *model.ServiceTicket {
	return &model.ServiceTicket{
		WorkspaceID:   workspaceID,
		PropertyID:    mustUUID(d.PropertyID),
		ContactID:     optionalUUID(d.ContactID),
		TicketType:    strings.TrimSpace(d.TicketType),
		Priority:      optional(d.Priority),
		Status:        model.ServiceNew,
		Description:   d.Description,
		TargetDate:    optionalDate(d.TargetDate),
		AssignedOwner: &owner,
	}
}

type TaskDraft struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	Priority          string `json:"priority"`
	DueDate           string `json:"dueDate"`
	RelatedEntityType string `json:"relatedEntityType"`
	RelatedEntityID   string `json:"relatedEntityId"`
}

func NewTaskDraft() TaskDraft {
	return TaskDraft{Priority: "medium"}
}

func (d TaskDraft) Validate() error {
	if blank(d.Title) {
		return required("title")
	}
	if err := checkDate("dueDate", d.DueDate); err != nil {
		return err
	}
	return checkUUID("relatedEntityId", d.RelatedEntityID, false)
}

func (d TaskDraft) build(workspaceID, owner uuid.UUID) *model.Task {
	return &model.Task{
		WorkspaceID:       workspaceID,
		Title:             strings.TrimSpace(d.Title),
		Description:       optional(d.Description),
		Priority:          optional(d.Priority),
		Status:            model.TaskOpen,
		DueDate:           optionalDate(d.DueDate),
		RelatedEntityType: optional(d.RelatedEntityType),
		RelatedEntityID:   optionalUUID(d.RelatedEntityID),
		AssignedOwner:     &owner,
	}
}
