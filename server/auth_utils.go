package server

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/restaurant-console/gateway"
	"github.com/jrsteele09/restaurant-console/internal/errors"
	"github.com/jrsteele09/restaurant-console/sessions"
	"github.com/rs/zerolog/log"
)

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError helper for htmx-aware error redirects
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	redirectSuccess(w, r, withQuery(path, "error", errorMsg))
}

// withQuery appends key=value to path, keeping any existing query
func withQuery(path, key, value string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + url.QueryEscape(key) + "=" + url.QueryEscape(value)
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// clientIP is the login throttling key: the first X-Forwarded-For hop, else the remote address
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// endSession tears the session down after the backend rejected its token:
// mounted views are closed, the cookie is cleared and the browser goes to login.
func (s *Server) endSession(w http.ResponseWriter, r *http.Request, session sessions.Session) {
	s.views.UnmountSession(session.ID)
	s.store.Clear(w, r)
	log.Info().Str("subject", session.SubjectID).Msg("backend rejected the session token, signing out")
	redirectWithError(w, r, RouteLogin, "Your session has expired, please sign in again")
}

// isUnauthenticated reports a 401 from the backend
func isUnauthenticated(err error) bool {
	return errors.Is(err, gateway.ErrUnauthenticated)
}

// userMessage converts a backend or controller error into text for the page
func userMessage(err error) string {
	var statusErr *gateway.StatusError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &statusErr):
		return statusErr.Message()
	case errors.Is(err, errors.ErrBusy):
		return "A delete is already in progress"
	case errors.Is(err, errors.ErrNotOnPage):
		return "That record is no longer on this page"
	case errors.Is(err, errors.ErrNoPendingDelete):
		return "Nothing was deleted, the confirmation changed or expired"
	default:
		return "The server could not be reached, please try again"
	}
}
