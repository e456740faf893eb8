package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/CodyCMAC/texas-lead-roper/internal/backend"
	"github.com/CodyCMAC/texas-lead-roper/internal/model"
	"github.com/google/uuid"
)

var (
	// ErrNotFound means no row with the id exists in the workspace.
	ErrNotFound = backend.ErrNotFound
	// ErrForbidden means the caller may read the row but not change it.
	ErrForbidden = errors.New("not allowed to edit this record")
)

// Catalog builds the workspace-scoped lists and detail reads.
type Catalog struct {
	db backend.Client
}

func NewCatalog(db backend.Client) *Catalog {
	return &Catalog{db: db}
}

// newest is the query every list page loads with.
func newest(workspaceID uuid.UUID, joins ...string) backend.Query {
	return backend.Where(backend.Eq("workspace_id", workspaceID)).
		Join(joins...).
		OrderBy("created_at desc")
}

func listOf[T any](db backend.Client, q backend.Query, match Matcher[T]) *List[T] {
	return NewList(func(ctx context.Context) ([]T, error) {
		rows, err := backend.All[T](ctx, db, q)
		if err != nil {
			var zero T
			return nil, fmt.Errorf("load %T list: %w", zero, err)
		}
		return rows, nil
	}, match)
}

func (c *Catalog) Properties(workspaceID uuid.UUID) *List[model.Property] {
	return listOf(c.db, newest(workspaceID), MatchProperty)
}

func (c *Catalog) Contacts(workspaceID uuid.UUID) *List[model.Contact] {
	return listOf(c.db, newest(workspaceID), MatchContact)
}

func (c *Catalog) Leads(workspaceID uuid.UUID) *List[model.Lead] {
	return listOf(c.db, newest(workspaceID, "Property", "Contact"), MatchLead)
}

func (c *Catalog) Opportunities(workspaceID uuid.UUID) *List[model.Opportunity] {
	return listOf(c.db, newest(workspaceID, "Property"), MatchOpportunity)
}

func (c *Catalog) ServiceTickets(workspaceID uuid.UUID) *List[model.ServiceTicket] {
	return listOf(c.db, newest(workspaceID, "Property", "Contact"), MatchServiceTicket)
}

func (c *Catalog) Tasks(workspaceID uuid.UUID) *Tasks {
	return &Tasks{
		List:        listOf(c.db, newest(workspaceID), MatchTask),
		db:          c.db,
		workspaceID: workspaceID,
	}
}

func (c *Catalog) Property(ctx context.Context, workspaceID, id uuid.UUID) (*model.Property, error) {
	return backend.First[model.Property](ctx, c.db, backend.Where(
		backend.Eq("id", id),
		backend.Eq("workspace_id", workspaceID),
	))
}

func (c *Catalog) Lead(ctx context.Context, workspaceID, id uuid.UUID) (*model.Lead, error) {
	return backend.First[model.Lead](ctx, c.db, backend.Where(
		backend.Eq("id", id),
		backend.Eq("workspace_id", workspaceID),
	).Join("Property", "Contact"))
}

// PropertyOption is one entry of the property picker.
type PropertyOption struct {
	ID                uuid.UUID `json:"id"`
	NormalizedAddress string    `json:"normalized_address"`
}

func (c *Catalog) PropertyOptions(ctx context.Context, workspaceID uuid.UUID) ([]PropertyOption, error) {
	rows, err := backend.All[model.Property](ctx, c.db, backend.Where(backend.Eq("workspace_id", workspaceID)).OrderBy("normalized_address asc"))
	if err != nil {
		return nil, fmt.Errorf("load property options: %w", err)
	}
	opts := make([]PropertyOption, 0, len(rows))
	for _, p := range rows {
		opts = append(opts, PropertyOption{ID: p.ID, NormalizedAddress: p.NormalizedAddress})
	}
	return opts, nil
}
