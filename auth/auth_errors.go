package auth

import "errors"

var (
	MissingEmailErr       = errors.New("email is required")
	MissingPasswordErr    = errors.New("password is required")
	MalformedEmailErr     = errors.New("email is not a valid address")
	IncompleteLoginErr    = errors.New("login response is missing the token, role or user id")
	UnknownBackendRoleErr = errors.New("login response carries an unknown role")
)
