package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/restaurant-console/catalog"
	"github.com/jrsteele09/restaurant-console/guard"
	"github.com/jrsteele09/restaurant-console/roles"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageUIHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteUnauthorized, ChainMiddleware(s.UnauthorizedHandler(), s.HTMLMiddleWare()...))

	// Admin routes
	s.RegisterRouteHandler("GET "+RouteAdminDashboard, ChainMiddleware(s.DashboardHandler(), s.HTMLMiddleWare(s.RequireRole(roles.Admin))...))
	s.RegisterRouteHandler("GET "+RouteAdminProfile, ChainMiddleware(s.ProfileHandler(), s.HTMLMiddleWare(s.RequireRole(roles.Admin))...))
	registerResource(s, catalog.Plans())
	registerResource(s, catalog.Restaurants())

	// Sub-admin routes
	s.RegisterRouteHandler("GET "+RouteSubAdminDashboard, ChainMiddleware(s.DashboardHandler(), s.HTMLMiddleWare(s.RequireRole(roles.SubAdmin))...))
	s.RegisterRouteHandler("GET "+RouteSubAdminProfile, ChainMiddleware(s.ProfileHandler(), s.HTMLMiddleWare(s.RequireRole(roles.SubAdmin))...))
	s.RegisterRouteHandler("GET "+RouteSubAdminSchedule, ChainMiddleware(s.ScheduleHandler(), s.HTMLMiddleWare(s.RequireRole(roles.SubAdmin))...))
	registerResource(s, catalog.Menus())
	registerResource(s, catalog.MenuItems())
	registerResource(s, catalog.BusinessHours())
	registerResource(s, catalog.CateringRequests())
	registerResource(s, catalog.Tables())
	registerResource(s, catalog.UpsellOffers())
	registerResource(s, catalog.FeedbackQuestions())

	// Operational routes
	s.RegisterRouteHandler("GET "+RouteHealthz, ChainMiddleware(s.HealthzHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())

	s.RegisterRouteHandler("GET "+RouteStatic, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare(s.CacheMiddleware)...))
}

// RequireRole gates a route behind the role guard
func (s *Server) RequireRole(required roles.Role) func(http.HandlerFunc) http.HandlerFunc {
	return guard.Middleware(required, s.store)
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.PathValue("file"), "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError("GET", filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

// HealthzHandler reports liveness
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

func logError(method, path, error string) {
	paddedMethod := " " + method
	color, ok := methodColors[method]
	if !ok {
		color = Gray
	}
	log.Error().Msgf("[%s] %s %s", color+paddedMethod+ResetColor, path, Red+error+ResetColor)
}
