package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) ListBanners(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Banners.Active()})
}

func (h *Handler) DismissBanner(c echo.Context) error {
	if !h.Banners.Dismiss(c.Param("id")) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
