package view

import (
	"context"
	"fmt"

	"github.com/CodyCMAC/texas-lead-roper/internal/backend"
	"github.com/CodyCMAC/texas-lead-roper/internal/model"
	"github.com/google/uuid"
)

// Tasks is the task page list plus its status toggle.
type Tasks struct {
	*List[model.Task]
	db          backend.Client
	workspaceID uuid.UUID
}

// Toggle marks the task done or open. After the update succeeds the change
// is applied to the held rows without a re-fetch.
func (t *Tasks) Toggle(ctx context.Context, id uuid.UUID, done bool) (*model.Task, error) {
	status := model.TaskOpen
	if done {
		status = model.TaskDone
	}

	n, err := t.db.Update(ctx, &model.Task{}, backend.Where(
		backend.Eq("id", id),
		backend.Eq("workspace_id", t.workspaceID),
	), map[string]any{"status": status})
	if err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	var updated *model.Task
	t.Apply(func(task *model.Task) bool {
		if task.ID != id {
			return false
		}
		task.Status = status
		cp := *task
		updated = &cp
		return true
	})
	if updated != nil {
		return updated, nil
	}
	return backend.First[model.Task](ctx, t.db, backend.Where(backend.Eq("id", id)))
}
