package config

import "time"

type Config interface {
	EnvConfig
	CorsConfig
	GatewayConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
}

type GatewayConfig interface {
	GetAPIBaseURL() string
	GetGatewayTimeout() time.Duration
	GetLogoutTimeout() time.Duration
}

type mainConfig struct {
	EnvVars
	Cors
	Gateway
	Security
}

func New() Config {
	return mainConfig{}
}
