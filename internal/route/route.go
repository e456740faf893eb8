// Package route lays out the pages and actions of the service and gates each
// one as open, public or protected.
package route

import (
	"net/http"

	"github.com/CodyCMAC/texas-lead-roper/internal/handler"
	"github.com/CodyCMAC/texas-lead-roper/internal/middleware"
	"github.com/labstack/echo/v4"
)

type Access int

const (
	// Open routes serve every caller.
	Open Access = iota
	// Public pages redirect a signed-in caller to the dashboard.
	Public
	// Protected routes answer 401 to an anonymous caller.
	Protected
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case Protected:
		return "protected"
	}
	return "open"
}

// Gate returns the middleware enforcing a.
func (a Access) Gate() []echo.MiddlewareFunc {
	switch a {
	case Public:
		return []echo.MiddlewareFunc{middleware.PublicOnly}
	case Protected:
		return []echo.MiddlewareFunc{middleware.RequireSession}
	}
	return nil
}

type Route struct {
	Method  string
	Path    string
	Access  Access
	Handler echo.HandlerFunc
}

// Table lists every route served by h.
func Table(h *handler.Handler) []Route {
	return []Route{
		// Pages
		{http.MethodGet, "/", Public, h.Hello},
		{http.MethodGet, "/auth", Public, h.AuthPage},
		{http.MethodGet, "/dashboard", Protected, h.Dashboard},
		{http.MethodGet, "/properties", Protected, h.ListProperties},
		{http.MethodGet, "/contacts", Protected, h.ListContacts},
		{http.MethodGet, "/leads", Protected, h.ListLeads},
		{http.MethodGet, "/opportunities", Protected, h.ListOpportunities},
		{http.MethodGet, "/service", Protected, h.ListServiceTickets},
		{http.MethodGet, "/tasks", Protected, h.ListTasks},
		{http.MethodGet, "/reports", Protected, h.Reports},
		{http.MethodGet, "/about-us", Protected, h.AboutUs},

		// Session
		{http.MethodPost, "/auth/register", Open, h.Register},
		{http.MethodPost, "/auth/login", Open, h.Login},
		{http.MethodGet, "/auth/session", Open, h.Session},
		{http.MethodPost, "/auth/logout", Protected, h.Logout},

		// Forms
		{http.MethodPost, "/properties", Protected, h.CreateProperty},
		{http.MethodPost, "/contacts", Protected, h.CreateContact},
		{http.MethodPost, "/leads", Protected, h.CreateLead},
		{http.MethodPost, "/leads/door-knock", Protected, h.DoorKnock},
		{http.MethodPost, "/opportunities", Protected, h.CreateOpportunity},
		{http.MethodPost, "/service", Protected, h.CreateServiceTicket},
		{http.MethodPost, "/tasks", Protected, h.CreateTask},
		{http.MethodPost, "/estimates/preview", Protected, h.PreviewEstimate},

		// Detail and edit
		{http.MethodGet, "/properties/options", Protected, h.PropertyOptions},
		{http.MethodGet, "/properties/:id", Protected, h.GetProperty},
		{http.MethodGet, "/leads/:id", Protected, h.GetLead},
		{http.MethodPatch, "/leads/:id", Protected, h.EditLead},
		{http.MethodPatch, "/tasks/:id/status", Protected, h.ToggleTask},

		// Profile
		{http.MethodGet, "/profile", Protected, h.GetProfile},
		{http.MethodPut, "/profile", Protected, h.SaveProfile},
		{http.MethodPost, "/profile/avatar", Protected, h.UploadAvatar},
		{http.MethodGet, "/profiles", Protected, h.ListProfiles},

		// Banners
		{http.MethodGet, "/banners", Protected, h.ListBanners},
		{http.MethodDelete, "/banners/:id", Protected, h.DismissBanner},

		{http.MethodGet, "/health", Open, h.HealthCheck},
	}
}

// Register mounts routes on e, each behind the gate of its access, and
// answers every other path with 404.
func Register(e *echo.Echo, routes []Route, notFound echo.HandlerFunc) {
	for _, r := range routes {
		e.Add(r.Method, r.Path, r.Handler, r.Access.Gate()...)
	}
	e.RouteNotFound("/*", notFound)
}
