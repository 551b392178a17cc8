// Package auth establishes and tears down console sessions against the
// backend's login and logout endpoints.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/restaurant-console/catalog"
	"github.com/jrsteele09/restaurant-console/gateway"
	"github.com/jrsteele09/restaurant-console/internal/errors"
	"github.com/jrsteele09/restaurant-console/internal/metrics"
	"github.com/jrsteele09/restaurant-console/roles"
	"github.com/jrsteele09/restaurant-console/sessions"
	"github.com/rs/zerolog/log"
)

const (
	loginPath  = "auth/login/"
	logoutPath = "auth/logout/"

	defaultLogoutTimeout = 3 * time.Second
)

// Poster is the part of the gateway client the service needs
type Poster interface {
	Post(ctx context.Context, path string, in, out any) error
}

// loginResponse accepts both the flat {access, refresh, role, user_id} shape
// and the {token, user: {id, role}} shape.
type loginResponse struct {
	Access  string     `json:"access"`
	Token   string     `json:"token"`
	Refresh string     `json:"refresh"`
	Role    string     `json:"role"`
	UserID  catalog.ID `json:"user_id"`
	User    *struct {
		ID   catalog.ID `json:"id"`
		Role string     `json:"role"`
	} `json:"user"`
}

// Service owns the session lifecycle
type Service struct {
	gateway       Poster
	logoutTimeout time.Duration
	nowTime       func() time.Time
	newID         func() string
}

type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithLogoutTimeout bounds the best effort logout call
func WithLogoutTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.logoutTimeout = d
		}
	}
}

func NewService(gw Poster, options ...ServiceOption) (*Service, error) {
	if gw == nil {
		return nil, errors.Wrapf(errors.ErrInternal, "[auth NewService] gateway is required")
	}
	s := &Service{
		gateway:       gw,
		logoutTimeout: defaultLogoutTimeout,
		nowTime:       time.Now,
		newID:         func() string { return uuid.New().String() },
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Login authenticates against the backend and returns a complete session.
// On any failure no session is returned. Rejected credentials match
// errors.ErrInvalidCredentials; form problems are catalog.FieldErrors.
func (s *Service) Login(ctx context.Context, creds Credentials) (sessions.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := creds.Validate().Err(); err != nil {
		metrics.RecordLogin("invalid")
		return sessions.Session{}, err
	}

	var resp loginResponse
	err := s.gateway.Post(ctx, loginPath, map[string]string{"email": creds.Email, "password": creds.Password}, &resp)
	if err != nil {
		var statusErr *gateway.StatusError
		if errors.As(err, &statusErr) && (statusErr.StatusCode == http.StatusBadRequest || statusErr.StatusCode == http.StatusUnauthorized) {
			metrics.RecordLogin("rejected")
			log.Info().Str("email", creds.Email).Int("status", statusErr.StatusCode).Msg("login rejected")
			return sessions.Session{}, errors.Wrapf(errors.ErrInvalidCredentials, "%s", statusErr.Message())
		}
		metrics.RecordLogin("error")
		log.Error().Err(err).Str("email", creds.Email).Msg("login request failed")
		return sessions.Session{}, errors.Wrapf(err, "[auth Login] backend login")
	}

	session, err := s.sessionFrom(resp)
	if err != nil {
		metrics.RecordLogin("error")
		log.Error().Err(err).Str("email", creds.Email).Msg("unusable login response")
		return sessions.Session{}, err
	}

	metrics.RecordLogin("success")
	log.Info().Str("subject", session.SubjectID).Str("role", session.Role.String()).Msg("login")
	return session, nil
}

// sessionFrom builds the session in one step; either every field is set or an error is returned
func (s *Service) sessionFrom(resp loginResponse) (sessions.Session, error) {
	token := resp.Access
	if token == "" {
		token = resp.Token
	}

	rawRole := resp.Role
	subject := string(resp.UserID)
	if resp.User != nil {
		if rawRole == "" {
			rawRole = resp.User.Role
		}
		if subject == "" {
			subject = string(resp.User.ID)
		}
	}
	if subject == "" && token != "" {
		if sub, err := gateway.TokenSubject(token); err == nil {
			subject = sub
		}
	}

	role, err := roles.Parse(rawRole)
	if err != nil {
		return sessions.Session{}, errors.Wrapf(UnknownBackendRoleErr, "%q", rawRole)
	}

	session := sessions.Session{
		ID:           s.newID(),
		Role:         role,
		Token:        token,
		RefreshToken: resp.Refresh,
		SubjectID:    subject,
		IssuedAt:     s.nowTime(),
	}
	if !session.Complete() {
		return sessions.Session{}, IncompleteLoginErr
	}
	return session, nil
}

// Logout asks the backend to invalidate the refresh credential. It is best
// effort: the call is bounded by the logout timeout, survives cancellation of
// ctx, and its error is only for logging. Callers clear the session whatever
// it returns.
func (s *Service) Logout(ctx context.Context, session sessions.Session) error {
	if session.RefreshToken == "" {
		metrics.RecordLogout("skipped")
		return nil
	}

	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.logoutTimeout)
	defer cancel()
	callCtx = sessions.WithSession(callCtx, session)

	if err := s.gateway.Post(callCtx, logoutPath, map[string]string{"refresh": session.RefreshToken}, nil); err != nil {
		metrics.RecordLogout("failed")
		log.Warn().Err(err).Str("subject", session.SubjectID).Msg("backend logout failed, clearing session anyway")
		return errors.Wrapf(err, "[auth Logout] backend logout")
	}
	metrics.RecordLogout("invalidated")
	log.Info().Str("subject", session.SubjectID).Msg("logout")
	return nil
}
