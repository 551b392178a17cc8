package roles

import (
	"fmt"
	"strings"

	"github.com/jrsteele09/restaurant-console/internal/errors"
)

// Role is the closed set of operator kinds that may hold a console session.
// The zero value is Unknown and is never a valid session role.
type Role int

const (
	Unknown Role = iota
	Admin        // Platform administrator: plans and businesses
	SubAdmin     // Per-business operator: menus, hours, tables, offers, feedback
)

// All returns every valid role in display order
func All() []Role {
	return []Role{Admin, SubAdmin}
}

func (r Role) Valid() bool {
	switch r {
	case Admin, SubAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	switch r {
	case Admin:
		return "admin"
	case SubAdmin:
		return "subadmin"
	default:
		return "unknown"
	}
}

// Parse maps a backend role string onto a Role
func Parse(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return Admin, nil
	case "subadmin", "sub_admin", "sub-admin":
		return SubAdmin, nil
	default:
		return Unknown, fmt.Errorf("[roles Parse] %q: %w", s, errors.ErrInvalidRole)
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("[roles MarshalText] %d: %w", int(r), errors.ErrInvalidRole)
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
