package handler

import (
	"net/http"

	"github.com/CodyCMAC/texas-lead-roper/internal/view"
	"github.com/labstack/echo/v4"
)

// GetLead returns the lead with its property and contact, and whether the
// caller may edit it.
func (h *Handler) GetLead(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lead id"})
	}
	ws, err := h.workspace(c)
	if err != nil {
		return fail(c, err, "Failed to load lead")
	}
	lead, err := h.Catalog.Lead(c.Request().Context(), ws, id)
	if err != nil {
		return fail(c, err, "Failed to load lead")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"lead":     lead,
		"can_edit": view.CanEdit(current(c).UserID, lead),
	})
}

func (h *Handler) EditLead(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lead id"})
	}
	var edit view.LeadEdit
	if err := c.Bind(&edit); err != nil {
		return badRequest(c, err)
	}
	ws, err := h.workspace(c)
	if err != nil {
		return fail(c, err, "Failed to update lead")
	}
	lead, err := h.Catalog.EditLead(c.Request().Context(), current(c).UserID, ws, id, edit)
	if err != nil {
		return fail(c, err, "Failed to update lead")
	}
	return c.JSON(http.StatusOK, lead)
}
