// Package config provides configuration types and structures for the goUserRegistry service.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig
	Logging     LoggingConfig
	HealthCheck HealthCheckConfig
	Application ApplicationConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int           `env:"APP_PORT" envDefault:"8080" validate:"min=1,max=65535"`
	Host         string        `env:"APP_HOST" envDefault:"0.0.0.0" validate:"required"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s" validate:"gt=0"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`
}

// HealthCheckConfig holds health check configuration
type HealthCheckConfig struct {
	Enabled bool `env:"HEALTH_CHECK_ENABLED" envDefault:"true"`
}

// ApplicationConfig holds application-specific configuration
type ApplicationConfig struct {
	Environment     string        `env:"ENVIRONMENT" envDefault:"development" validate:"oneof=development staging production test"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	// Requests per minute per client IP; 0 disables rate limiting.
	RateLimitRequests int `env:"RATE_LIMIT_REQUESTS" envDefault:"100" validate:"min=0"`
	RateLimitBurst    int `env:"RATE_LIMIT_BURST" envDefault:"20" validate:"min=1"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
