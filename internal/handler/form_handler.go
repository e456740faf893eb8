package handler

import (
	"net/http"

	"github.com/CodyCMAC/texas-lead-roper/internal/form"
	"github.com/labstack/echo/v4"
)

func (h *Handler) CreateProperty(c echo.Context) error {
	d := form.NewPropertyDraft()
	if err := c.Bind(&d); err != nil {
		return badRequest(c, err)
	}
	p, err := h.Forms.CreateProperty(c.Request().Context(), current(c), d)
	if err != nil {
		return fail(c, err, "Failed to create property")
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) CreateContact(c echo.Context) error {
	d := form.NewContactDraft()
	if err := c.Bind(&d); err != nil {
		return badRequest(c, err)
	}
	contact, err := h.Forms.CreateContact(c.Request().Context(), current(c), d)
	if err != nil {
		return fail(c, err, "Failed to create contact")
	}
	return c.JSON(http.StatusCreated, contact)
}

func (h *Handler) CreateLead(c echo.Context) error {
	d := form.NewLeadDraft()
	if err := c.Bind(&d); err != nil {
		return badRequest(c, err)
	}
	res, err := h.Forms.CreateLead(c.Request().Context(), current(c), d)
	if err != nil {
		return fail(c, err, "Failed to create lead")
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) CreateOpportunity(c echo.Context) error {
	d := form.NewOpportunityDraft()
	if err := c.Bind(&d); err != nil {
		return badRequest(c, err)
	}
	o, err := h.Forms.CreateOpportunity(c.Request().Context(), current(c), d)
	if err != nil {
		return fail(c, err, "Failed to create opportunity")
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *Handler) CreateServiceTicket(c echo.Context) error {
	d := form.NewServiceTicketDraft()
	if err := c.Bind(&d); err != nil {
		return badRequest(c, err)
	}
	t, err := h.Forms.CreateServiceTicket(c.Request().Context(), current(c), d)
	if err != nil {
		return fail(c, err, "Failed to create service ticket")
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) CreateTask(c echo.Context) error {
	d := form.NewTaskDraft()
	if err := c.Bind(&d); err != nil {
		return badRequest(c, err)
	}
	t, err := h.Forms.CreateTask(c.Request().Context(), current(c), d)
	if err != nil {
		return fail(c, err, "Failed to create task")
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) DoorKnock(c echo.Context) error {
	d := form.NewDoorKnockDraft()
	if err := c.Bind(&d); err != nil {
		return badRequest(c, err)
	}
	res, err := h.Forms.RecordDoorKnock(c.Request().Context(), current(c), d)
	if err != nil {
		return fail(c, err, "Failed to log door knock")
	}
	return c.JSON(http.StatusCreated, res)
}

// PreviewEstimate totals an estimate without storing it.
func (h *Handler) PreviewEstimate(c echo.Context) error {
	var d form.EstimateDraft
	if err := c.Bind(&d); err != nil {
		return badRequest(c, err)
	}
	e, err := form.PreviewEstimate(d, h.now())
	if err != nil {
		return fail(c, err, "Failed to prepare estimate")
	}
	return c.JSON(http.StatusOK, e)
}
