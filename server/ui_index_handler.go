package server

import (
	"net/http"

	"github.com/jrsteele09/restaurant-console/guard"
)

// IndexHandler sends "/" to the dashboard of the signed in role, or to login
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.store.Get(r)
		redirectSuccess(w, r, guard.RootDestination(session, ok))
	}
}

type unauthorizedView struct {
	Home string
}

// UnauthorizedHandler is the terminal page for a role mismatch. It is never a login page.
func (s *Server) UnauthorizedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData{Title: "Access denied"}
		if session, ok := s.store.Get(r); ok {
			data.Session = &session
			data.Body = unauthorizedView{Home: guard.DashboardFor(session.Role)}
		} else {
			data.Body = unauthorizedView{Home: guard.LoginPath}
		}
		s.render(w, r, http.StatusForbidden, "unauthorized.html", data)
	}
}
