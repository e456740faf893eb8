package handler

import (
	"errors"
	"net/http"

	"github.com/CodyCMAC/texas-lead-roper/internal/session"
	"github.com/CodyCMAC/texas-lead-roper/pkg/logger"
	"github.com/CodyCMAC/texas-lead-roper/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthPage describes the sign-in page to an anonymous caller.
func (h *Handler) AuthPage(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"page":    "auth",
		"actions": []string{"POST /auth/login", "POST /auth/register"},
	})
}

func (h *Handler) Register(c echo.Context) error {
	log := logger.FromEcho(c)

	var req session.Signup
	if err := c.Bind(&req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return badRequest(c, err)
	}

	user, err := h.Auth.Register(c.Request().Context(), req)
	switch {
	case errors.Is(err, session.ErrInvalidSignup):
		prometheus.RecordAuthError("invalid_signup")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, session.ErrEmailTaken):
		prometheus.RecordAuthError("email_taken")
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	case err != nil:
		log.Error("Failed to register user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create account"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user": echo.Map{"id": user.ID, "email": user.Email},
	})
}

func (h *Handler) Login(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return badRequest(c, err)
	}

	token, s, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if errors.Is(err, session.ErrInvalidCredentials) {
		log.Warn("Invalid credentials", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_credentials")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if err != nil {
		log.Error("Failed to sign in", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to sign in"})
	}

	log.Info("User signed in",
		zap.String("user_id", s.UserID.String()),
		zap.Bool("has_workspace", s.HasWorkspace()))
	return c.JSON(http.StatusOK, echo.Map{
		"token":    token,
		"session":  s,
		"redirect": "/dashboard",
	})
}

func (h *Handler) Logout(c echo.Context) error {
	s := current(c)
	h.Auth.Logout(s)
	logger.FromEcho(c).Info("User signed out", zap.String("user_id", s.UserID.String()))
	return c.JSON(http.StatusOK, echo.Map{"redirect": "/auth"})
}

// Session reports the current identity, or a null user.
func (h *Handler) Session(c echo.Context) error {
	s, ok := session.FromEcho(c)
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"user": nil})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": s})
}
