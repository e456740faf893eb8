package handler

import (
	"net/http"
	"strconv"

	"github.com/CodyCMAC/texas-lead-roper/internal/model"
	"github.com/CodyCMAC/texas-lead-roper/internal/view"
	"github.com/CodyCMAC/texas-lead-roper/prometheus"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// listPage loads the list and answers with the rows matching ?q=.
func listPage[T any](h *Handler, c echo.Context, page string, build func(workspaceID uuid.UUID) *view.List[T]) error {
	ws, err := h.workspace(c)
	if err != nil {
		return fail(c, err, "Failed to load "+page)
	}

	list := build(ws)
	if err := list.Reload(c.Request().Context()); err != nil {
		return fail(c, err, "Failed to load "+page)
	}

	q := c.QueryParam("q")
	if q != "" {
		prometheus.RecordSearch(page)
	}
	return c.JSON(http.StatusOK, list.Page(q))
}

func (h *Handler) ListProperties(c echo.Context) error {
	return listPage(h, c, "properties", h.Catalog.Properties)
}

func (h *Handler) ListContacts(c echo.Context) error {
	return listPage(h, c, "contacts", h.Catalog.Contacts)
}

func (h *Handler) ListLeads(c echo.Context) error {
	return listPage(h, c, "leads", h.Catalog.Leads)
}

func (h *Handler) ListOpportunities(c echo.Context) error {
	return listPage(h, c, "opportunities", h.Catalog.Opportunities)
}

func (h *Handler) ListServiceTickets(c echo.Context) error {
	return listPage(h, c, "service", h.Catalog.ServiceTickets)
}

func (h *Handler) ListTasks(c echo.Context) error {
	return listPage(h, c, "tasks", func(ws uuid.UUID) *view.List[model.Task] {
		return h.Catalog.Tasks(ws).List
	})
}

func (h *Handler) PropertyOptions(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return fail(c, err, "Failed to load properties")
	}
	opts, err := h.Catalog.PropertyOptions(c.Request().Context(), ws)
	if err != nil {
		return fail(c, err, "Failed to load properties")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": opts})
}

func (h *Handler) GetProperty(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	ws, err := h.workspace(c)
	if err != nil {
		return fail(c, err, "Failed to load property")
	}
	p, err := h.Catalog.Property(c.Request().Context(), ws, id)
	if err != nil {
		return fail(c, err, "Failed to load property")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Dashboard(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return fail(c, err, "Failed to load dashboard")
	}
	d, err := h.Catalog.Dashboard(c.Request().Context(), ws)
	if err != nil {
		return fail(c, err, "Failed to load dashboard")
	}
	return c.JSON(http.StatusOK, d)
}

// Reports covers the last ?days= days, 30 by default.
func (h *Handler) Reports(c echo.Context) error {
	days := 30
	if raw := c.QueryParam("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 365 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "days must be between 1 and 365"})
		}
		days = n
	}

	ws, err := h.workspace(c)
	if err != nil {
		return fail(c, err, "Failed to load reports")
	}
	r, err := h.Catalog.Report(c.Request().Context(), ws, days, h.now())
	if err != nil {
		return fail(c, err, "Failed to load reports")
	}
	return c.JSON(http.StatusOK, r)
}
