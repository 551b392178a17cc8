package auth

import (
	"net/mail"
	"strings"

	"github.com/jrsteele09/restaurant-console/catalog"
)

// Credentials are the values of the login form
type Credentials struct {
	Email    string
	Password string
}

// Validate checks the form before anything is sent to the backend
func (c Credentials) Validate() catalog.FieldErrors {
	fieldErrs := catalog.FieldErrors{}

	email := strings.TrimSpace(c.Email)
	switch {
	case email == "":
		fieldErrs["email"] = MissingEmailErr.Error()
	default:
		if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
			fieldErrs["email"] = MalformedEmailErr.Error()
		}
	}

	if c.Password == "" {
		fieldErrs["password"] = MissingPasswordErr.Error()
	}
	return fieldErrs
}
