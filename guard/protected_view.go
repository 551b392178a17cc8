package guard

import (
	"net/http"

	"github.com/jrsteele09/restaurant-console/roles"
	"github.com/jrsteele09/restaurant-console/sessions"
)

// ProtectedView binds a view to the single role allowed to see it
type ProtectedView struct {
	RequiredRole roles.Role
	View         http.Handler
}

// Handler gates the view behind Check. On Allow the session is placed on the
// request context and the view runs unchanged.
func (pv ProtectedView) Handler(store sessions.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := store.Get(r)
		d := Check(pv.RequiredRole, s, ok)
		if d.Outcome != Allow {
			redirect(w, r, d.Location)
			return
		}
		pv.View.ServeHTTP(w, r.WithContext(sessions.WithSession(r.Context(), s)))
	}
}

// Middleware adapts the guard to the func(http.HandlerFunc) http.HandlerFunc middleware shape
func Middleware(required roles.Role, store sessions.Store) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return ProtectedView{RequiredRole: required, View: next}.Handler(store)
	}
}

// redirect is htmx aware: htmx requests get an HX-Redirect header instead of a 303
func redirect(w http.ResponseWriter, r *http.Request, location string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", location)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}
