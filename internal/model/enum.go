package model

type AppRole string

const (
	RoleAdmin      AppRole = "admin"
	RoleManager    AppRole = "manager"
	RoleRep        AppRole = "rep"
	RoleBackoffice AppRole = "backoffice"
)

func (r AppRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleRep, RoleBackoffice:
		return true
	}
	return false
}

type LeadStatus string

const (
	LeadNew          LeadStatus = "new"
	LeadContacted    LeadStatus = "contacted"
	LeadQualified    LeadStatus = "qualified"
	LeadDisqualified LeadStatus = "disqualified"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadQualified, LeadDisqualified:
		return true
	}
	return false
}

type InterestLevel string

const (
	InterestNone   InterestLevel = "none"
	InterestLow    InterestLevel = "low"
	InterestMedium InterestLevel = "medium"
	InterestHigh   InterestLevel = "high"
)

func (l InterestLevel) Valid() bool {
	switch l {
	case InterestNone, InterestLow, InterestMedium, InterestHigh:
		return true
	}
	return false
}

type OpportunityStage string

const (
	StageDiscovery    OpportunityStage = "discovery"
	StageInspection   OpportunityStage = "inspection"
	StageEstimate     OpportunityStage = "estimate"
	StageProposalSent OpportunityStage = "proposal_sent"
	StageNegotiation  OpportunityStage = "negotiation"
	StageWon          OpportunityStage = "won"
	StageLost         OpportunityStage = "lost"
)

func (s OpportunityStage) Valid() bool {
	switch s {
	case StageDiscovery, StageInspection, StageEstimate, StageProposalSent,
		StageNegotiation, StageWon, StageLost:
		return true
	}
	return false
}

// Open reports whether the opportunity still counts toward the pipeline.
func (s OpportunityStage) Open() bool {
	return s != StageWon && s != StageLost
}

type ProjectType string

const (
	ProjectRoofing    ProjectType = "roofing"
	ProjectGarageDoor ProjectType = "garage_door"
	ProjectRemodel    ProjectType = "remodel"
)

func (p ProjectType) Valid() bool {
	switch p {
	case ProjectRoofing, ProjectGarageDoor, ProjectRemodel:
		return true
	}
	return false
}

type ServiceStatus string

const (
	ServiceNew       ServiceStatus = "new"
	ServiceTriage    ServiceStatus = "triage"
	ServiceScheduled ServiceStatus = "scheduled"
	ServiceOnsite    ServiceStatus = "onsite"
	ServiceResolved  ServiceStatus = "resolved"
	ServiceClosed    ServiceStatus = "closed"
)

func (s ServiceStatus) Valid() bool {
	switch s {
	case ServiceNew, ServiceTriage, ServiceScheduled, ServiceOnsite, ServiceResolved, ServiceClosed:
		return true
	}
	return false
}

// Open reports whether the ticket still needs work.
func (s ServiceStatus) Open() bool {
	return s != ServiceResolved && s != ServiceClosed
}

type TaskStatus string

const (
	TaskOpen    TaskStatus = "open"
	TaskDone    TaskStatus = "done"
	TaskSnoozed TaskStatus = "snoozed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskOpen, TaskDone, TaskSnoozed:
		return true
	}
	return false
}
