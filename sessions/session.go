package sessions

import (
	"context"
	"time"

	"github.com/jrsteele09/restaurant-console/roles"
)

// Session is the authenticated identity and role of the current operator.
// A session is either complete or treated as absent, see Complete.
type Session struct {
	ID           string     `json:"id"`                // Random key that scopes server side view state
	Role         roles.Role `json:"role"`              // Operator role
	Token        string     `json:"token"`             // Backend bearer token
	RefreshToken string     `json:"refresh,omitempty"` // Refresh credential, invalidated on logout
	SubjectID    string     `json:"sub"`               // Backend user id
	IssuedAt     time.Time  `json:"iat"`               // Login time, used for max age checks
}

// Complete reports whether all identity fields are populated.
func (s Session) Complete() bool {
	return s.ID != "" && s.Role.Valid() && s.Token != "" && s.SubjectID != ""
}

type contextKey struct{}

// WithSession stores the session on the request context
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session placed by WithSession
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	if !ok || !s.Complete() {
		return Session{}, false
	}
	return s, true
}
