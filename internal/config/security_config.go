package config

import "time"

type SecurityConfig interface {
	GetSessionSecret() string
	GetMaxSessionAge() time.Duration
	GetEnableRateLimiting() bool
	GetLoginAttemptsPerMinute() int
	GetViewIdleTimeout() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetSessionSecret is the key material used to seal the session cookie.
// An empty value makes the server generate a random per-process key.
func (Security) GetSessionSecret() string {
	return GetEnv("SESSION_SECRET", "")
}

func (Security) GetMaxSessionAge() time.Duration {
	return GetDurationEnv("SESSION_MAX_AGE", 7*24*time.Hour)
}

func (Security) GetEnableRateLimiting() bool {
	return GetBoolEnv("LOGIN_RATE_LIMITING", true)
}

func (Security) GetLoginAttemptsPerMinute() int {
	return GetIntEnv("LOGIN_RATE_LIMIT", 10)
}

func (Security) GetViewIdleTimeout() time.Duration {
	return GetDurationEnv("VIEW_IDLE_TIMEOUT", 30*time.Minute)
}
