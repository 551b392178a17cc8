package config

import "time"

type Gateway struct{}

var _ GatewayConfig = Gateway{}

// GetAPIBaseURL returns the restaurant platform backend base URL (e.g. "https://api.example.com/api/")
func (Gateway) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8000/api/")
}

func (Gateway) GetGatewayTimeout() time.Duration {
	return GetDurationEnv("GATEWAY_TIMEOUT", 10*time.Second)
}

// GetLogoutTimeout bounds the best-effort server side logout call
func (Gateway) GetLogoutTimeout() time.Duration {
	return GetDurationEnv("LOGOUT_TIMEOUT", 3*time.Second)
}
