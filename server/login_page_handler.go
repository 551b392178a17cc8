package server

import (
	"net/http"
	"strconv"

	"github.com/jrsteele09/restaurant-console/auth"
	"github.com/jrsteele09/restaurant-console/catalog"
	"github.com/jrsteele09/restaurant-console/guard"
	"github.com/jrsteele09/restaurant-console/internal/errors"
	"github.com/jrsteele09/restaurant-console/internal/metrics"
	"github.com/rs/zerolog/log"
)

// loginView contains data for rendering the login page
type loginView struct {
	Email       string // Preserve email on error
	FieldErrors catalog.FieldErrors
}

// LoginPageUIHandler displays the login page (GET /login)
func (s *Server) LoginPageUIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session, ok := s.store.Get(r); ok {
			redirectSuccess(w, r, guard.DashboardFor(session.Role))
			return
		}
		s.renderLogin(w, r, http.StatusOK, r.URL.Query().Get("email"), r.URL.Query().Get("error"), nil)
	}
}

// LoginSubmissionHandler processes the login form submission. Failures
// render the login page again in place; only success redirects.
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			s.renderLogin(w, r, http.StatusBadRequest, "", "Invalid form data", nil)
			return
		}
		email := r.PostFormValue("email")

		if s.limiter != nil && !s.limiter.Allow(clientIP(r)) {
			metrics.RecordLogin("throttled")
			w.Header().Set("Retry-After", strconv.Itoa(s.limiter.RetryAfter()))
			s.renderLogin(w, r, http.StatusTooManyRequests, email, "Too many sign in attempts, please wait a moment", nil)
			return
		}

		session, err := s.auth.Login(r.Context(), auth.Credentials{Email: email, Password: r.PostFormValue("password")})
		if err != nil {
			var fieldErrs catalog.FieldErrors
			switch {
			case errors.As(err, &fieldErrs):
				s.renderLogin(w, r, http.StatusUnprocessableEntity, email, "", fieldErrs)
			case errors.Is(err, errors.ErrInvalidCredentials):
				s.renderLogin(w, r, http.StatusUnauthorized, email, "Invalid email or password", nil)
			default:
				s.renderLogin(w, r, http.StatusBadGateway, email, "Sign in is unavailable right now, please try again", nil)
			}
			return
		}

		if err := s.store.Set(w, r, session); err != nil {
			log.Err(err).Msg("failed to store session")
			s.renderLogin(w, r, http.StatusInternalServerError, email, "Sign in failed, please try again", nil)
			return
		}
		redirectSuccess(w, r, guard.DashboardFor(session.Role))
	}
}

// LogoutHandler invalidates the refresh credential on a best effort basis,
// then always closes the session's views, clears the cookie and goes to login.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session, ok := s.store.Get(r); ok {
			if err := s.auth.Logout(r.Context(), session); err != nil {
				log.Err(err).Str("subject", session.SubjectID).Msg("Logout: backend invalidation failed")
			}
			s.views.UnmountSession(session.ID)
		}
		s.store.Clear(w, r)
		redirectSuccess(w, r, RouteLogin)
	}
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, status int, email, errorMsg string, fieldErrs catalog.FieldErrors) {
	s.render(w, r, status, "login.html", pageData{
		Title: "Sign in",
		Error: errorMsg,
		Body:  loginView{Email: email, FieldErrors: fieldErrs},
	})
}
