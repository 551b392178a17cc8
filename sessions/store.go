package sessions

import "net/http"

// Store is the single owner of the persisted session. Consumers read through
// Get; only the session lifecycle writes through Set and Clear.
type Store interface {
	// Get returns the session carried by the request, ok is false when it is absent or partial
	Get(r *http.Request) (Session, bool)

	// Set persists a complete session, incomplete sessions are rejected
	Set(w http.ResponseWriter, r *http.Request, s Session) error

	// Clear removes any persisted session
	Clear(w http.ResponseWriter, r *http.Request)
}
