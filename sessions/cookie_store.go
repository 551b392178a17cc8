package sessions

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jrsteele09/restaurant-console/internal/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/nacl/secretbox"
)

// CookieName is the browser cookie holding the sealed session
const CookieName = "console_session"

const nonceSize = 24

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

var _ Store = (*CookieStore)(nil)

// CookieStore persists the session in the browser as a secretbox sealed,
// HttpOnly cookie that survives browser restarts until MaxAge elapses.
type CookieStore struct {
	key    [32]byte
	maxAge time.Duration
}

// NewCookieStore derives the sealing key from secret. An empty secret
// generates a random key, which invalidates sessions on every restart.
func NewCookieStore(secret string, maxAge time.Duration) (*CookieStore, error) {
	cs := &CookieStore{maxAge: maxAge}
	if secret == "" {
		if _, err := io.ReadFull(rand.Reader, cs.key[:]); err != nil {
			return nil, fmt.Errorf("[sessions NewCookieStore] failed to generate key: %w", err)
		}
		log.Warn().Msg("SESSION_SECRET not set, sessions will not survive a restart")
		return cs, nil
	}
	cs.key = sha256.Sum256([]byte(secret))
	return cs, nil
}

func (cs *CookieStore) Get(r *http.Request) (Session, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, false
	}
	s, err := cs.open(cookie.Value)
	if err != nil {
		log.Debug().Err(err).Msg("discarding unreadable session cookie")
		return Session{}, false
	}
	if !s.Complete() {
		return Session{}, false
	}
	if cs.maxAge > 0 && NowTimeFunc().Sub(s.IssuedAt) > cs.maxAge {
		return Session{}, false
	}
	return s, true
}

func (cs *CookieStore) Set(w http.ResponseWriter, r *http.Request, s Session) error {
	if !s.Complete() {
		return errors.ErrSessionIncomplete
	}
	value, err := cs.seal(s)
	if err != nil {
		return fmt.Errorf("[sessions Set] %w", err)
	}
	http.SetCookie(w, cs.cookie(r, value, int(cs.maxAge.Seconds())))
	return nil
}

func (cs *CookieStore) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, cs.cookie(r, "", -1))
}

func (cs *CookieStore) cookie(r *http.Request, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

func (cs *CookieStore) seal(s Session) (string, error) {
	plain, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], plain, &nonce, &cs.key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (cs *CookieStore) open(value string) (Session, error) {
	data, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Session{}, fmt.Errorf("failed to decode cookie: %w", err)
	}
	if len(data) < nonceSize {
		return Session{}, fmt.Errorf("cookie too short")
	}
	var nonce [nonceSize]byte
	copy(nonce[:], data[:nonceSize])
	plain, ok := secretbox.Open(nil, data[nonceSize:], &nonce, &cs.key)
	if !ok {
		return Session{}, fmt.Errorf("cookie failed authentication")
	}
	var s Session
	if err := json.Unmarshal(plain, &s); err != nil {
		return Session{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return s, nil
}

func isSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return r.Header.Get("X-Forwarded-Proto") == "https"
}
