package server

import (
	"net/http"

	"github.com/jrsteele09/restaurant-console/catalog"
	"github.com/jrsteele09/restaurant-console/gateway"
	"github.com/jrsteele09/restaurant-console/roles"
	"github.com/jrsteele09/restaurant-console/sessions"
	"github.com/rs/zerolog/log"
)

const scheduleFetchSize = 50

// DashboardHandler renders the landing page of either role
func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessions.FromContext(r.Context())
		var title string
		switch session.Role {
		case roles.Admin:
			title = "Admin dashboard"
		case roles.SubAdmin:
			title = "Restaurant dashboard"
		default:
			log.Error().Str("role", session.Role.String()).Msg("dashboard reached without a valid role")
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}
		s.render(w, r, http.StatusOK, "dashboard.html", pageData{Title: title})
	}
}

func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, "profile.html", pageData{Title: "Profile"})
	}
}

type scheduleView struct {
	Hours []catalog.BusinessHour
}

// ScheduleHandler shows the weekly opening hours of the restaurant
func (s *Server) ScheduleHandler() http.HandlerFunc {
	hours := gateway.NewCollection[catalog.BusinessHour](s.gateway, catalog.BusinessHours().Endpoint)

	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessions.FromContext(r.Context())
		data := pageData{Title: "Schedule"}

		items, _, err := hours.List(r.Context(), 1, scheduleFetchSize)
		switch {
		case isUnauthenticated(err):
			s.endSession(w, r, session)
			return
		case err != nil:
			log.Warn().Err(err).Msg("failed to load business hours")
			data.Error = userMessage(err)
		}
		data.Body = scheduleView{Hours: items}
		s.render(w, r, http.StatusOK, "schedule.html", data)
	}
}
