package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ToggleTask sets a task done or open and answers with the task and the
// task list as it stands after the change.
func (h *Handler) ToggleTask(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task id"})
	}
	var req struct {
		Done *bool `json:"done"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if req.Done == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "done is required", "field": "done"})
	}

	ws, err := h.workspace(c)
	if err != nil {
		return fail(c, err, "Failed to update task")
	}
	ctx := c.Request().Context()
	tasks := h.Catalog.Tasks(ws)
	if err := tasks.Reload(ctx); err != nil {
		return fail(c, err, "Failed to update task")
	}
	task, err := tasks.Toggle(ctx, id, *req.Done)
	if err != nil {
		return fail(c, err, "Failed to update task")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"task":  task,
		"items": tasks.Items(),
	})
}
