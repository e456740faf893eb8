package view

import (
	"strings"

	"github.com/CodyCMAC/texas-lead-roper/internal/model"
)

func propertyAddress(p *model.Property) string {
	if p == nil {
		return ""
	}
	return p.NormalizedAddress
}

func MatchProperty(p *model.Property, q string) bool {
	return contains(p.NormalizedAddress, q) || contains(p.City, q)
}

// MatchContact compares phone numbers verbatim.
func MatchContact(c *model.Contact, q string) bool {
	return contains(c.FullName(), q) ||
		contains(deref(c.Email), q) ||
		strings.Contains(deref(c.Phone), q) ||
		strings.Contains(deref(c.Mobile), q)
}

func MatchLead(l *model.Lead, q string) bool {
	return contains(propertyAddress(l.Property), q) ||
		contains(l.Contact.FullName(), q) ||
		contains(string(l.Status), q)
}

func MatchOpportunity(o *model.Opportunity, q string) bool {
	return contains(propertyAddress(o.Property), q) ||
		contains(string(o.Stage), q) ||
		contains(string(deref(o.OpportunityType)), q)
}

func MatchServiceTicket(t *model.ServiceTicket, q string) bool {
	return contains(propertyAddress(t.Property), q) ||
		contains(t.TicketType, q) ||
		contains(t.Description, q) ||
		contains(t.Contact.FullName(), q)
}

func MatchTask(t *model.Task, q string) bool {
	return contains(t.Title, q) ||
		contains(deref(t.Description), q) ||
		contains(string(t.Status), q)
}
