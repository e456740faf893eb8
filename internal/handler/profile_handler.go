package handler

import (
	"net/http"

	"github.com/CodyCMAC/texas-lead-roper/internal/profile"
	"github.com/labstack/echo/v4"
)

const maxAvatarBytes = 5 << 20

func (h *Handler) GetProfile(c echo.Context) error {
	p, err := h.Profiles.Get(c.Request().Context(), current(c))
	if err != nil {
		return fail(c, err, "Failed to load profile")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) SaveProfile(c echo.Context) error {
	var edit profile.Edit
	if err := c.Bind(&edit); err != nil {
		return badRequest(c, err)
	}
	p, err := h.Profiles.Save(c.Request().Context(), current(c), edit)
	if err != nil {
		return fail(c, err, "Failed to update profile")
	}
	return c.JSON(http.StatusOK, p)
}

// UploadAvatar takes the multipart field "avatar".
func (h *Handler) UploadAvatar(c echo.Context) error {
	fh, err := c.FormFile("avatar")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "avatar file is required", "field": "avatar"})
	}
	if fh.Size > maxAvatarBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "avatar must be at most 5 MB"})
	}
	file, err := fh.Open()
	if err != nil {
		return badRequest(c, err)
	}
	defer file.Close()

	p, err := h.Profiles.UploadAvatar(c.Request().Context(), current(c), file)
	if err != nil {
		return fail(c, err, "Failed to upload avatar")
	}
	return c.JSON(http.StatusOK, p)
}

// ListProfiles serves the rep-name lookup of the workspace.
func (h *Handler) ListProfiles(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return fail(c, err, "Failed to load profiles")
	}
	entries, err := h.Profiles.Directory(c.Request().Context(), ws)
	if err != nil {
		return fail(c, err, "Failed to load profiles")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": entries})
}
