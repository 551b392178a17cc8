// Package server is the console's HTTP surface: routing, middleware, the
// role guard, and the server rendered pages for every resource.
package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/jrsteele09/restaurant-console/auth"
	"github.com/jrsteele09/restaurant-console/gateway"
	"github.com/jrsteele09/restaurant-console/internal/config"
	"github.com/jrsteele09/restaurant-console/navigation"
	"github.com/jrsteele09/restaurant-console/sessions"
	"github.com/jrsteele09/restaurant-console/viewstate"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	store   sessions.Store
	gateway *gateway.Client
	auth    *auth.Service
	menus   *navigation.Resolver
	views   *viewstate.Registry
	limiter *auth.LoginLimiter // nil when login throttling is disabled
	pages   map[string]*template.Template
}

func New(config config.Config, store sessions.Store, gw *gateway.Client, views *viewstate.Registry) (*Server, error) {
	if store == nil || gw == nil || views == nil {
		return nil, fmt.Errorf("[Server New] session store, gateway and view registry are required")
	}

	authService, err := auth.NewService(gw, auth.WithLogoutTimeout(config.GetLogoutTimeout()))
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create auth service: %w", err)
	}
	menus, err := navigation.New()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to load menus: %w", err)
	}
	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}

	s := &Server{
		env:     config.GetEnv(),
		mux:     http.NewServeMux(),
		config:  config,
		store:   store,
		gateway: gw,
		auth:    authService,
		menus:   menus,
		views:   views,
		pages:   pages,
	}
	if config.GetEnableRateLimiting() {
		s.limiter = auth.NewLoginLimiter(config.GetLoginAttemptsPerMinute())
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	color, ok := methodColors[method]
	if !ok {
		color = Gray
	}
	log.Info().Msgf("[%s] %s", color+paddedMethod+ResetColor, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
