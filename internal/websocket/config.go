package websocket

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/luciancaetano/deckconn"
	"github.com/luciancaetano/deckconn/internal/params"
)

const (
	defaultWriteTimeout     = 10 * time.Second
	defaultHandshakeTimeout = 10 * time.Second
	closeGracePeriod        = time.Second
)

// Config holds everything a Conn needs. Parameters and Subscriber are required.
type Config struct {
	// Parameters are the launch parameters passed by the host.
	Parameters params.Parameters
	// Subscriber receives every decoded event.
	Subscriber deckconn.Subscriber
	// Logger receives diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
	// Dialer opens the socket. Defaults to a dialer with a 10s handshake timeout.
	Dialer *websocket.Dialer
	// WriteTimeout bounds a single frame write. Defaults to 10s.
	WriteTimeout time.Duration
	// RateLimitConfig limits outgoing commands. Nil means DefaultRateLimitConfig().
	RateLimitConfig *RateLimitConfig
	// MetricsRegisterer receives the connection metrics. Nil disables metrics.
	// A registerer can only hold the metrics of one connection.
	MetricsRegisterer prometheus.Registerer
}

// RateLimitConfig defines rate limiting configuration for outgoing commands
type RateLimitConfig struct {
	// MessagesPerSecond defines how many commands can be sent per second
	MessagesPerSecond rate.Limit
	// Burst defines the maximum burst size (token bucket capacity)
	Burst int
	// Enabled determines if rate limiting is active
	Enabled bool
}

// DefaultRateLimitConfig returns the default rate limit configuration
// Allows 100 commands per second with burst of 200
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		MessagesPerSecond: 100,
		Burst:             200,
		Enabled:           true,
	}
}

// NoRateLimit returns a configuration with rate limiting disabled
func NoRateLimit() *RateLimitConfig {
	return &RateLimitConfig{
		Enabled: false,
	}
}

// newLimiter returns nil when rate limiting is disabled.
func (r *RateLimitConfig) newLimiter() *rate.Limiter {
	if r == nil || !r.Enabled {
		return nil
	}
	return rate.NewLimiter(r.MessagesPerSecond, r.Burst)
}

func (cfg *Config) withDefaults() *Config {
	out := *cfg
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	if out.Dialer == nil {
		out.Dialer = &websocket.Dialer{HandshakeTimeout: defaultHandshakeTimeout}
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = defaultWriteTimeout
	}
	if out.RateLimitConfig == nil {
		out.RateLimitConfig = DefaultRateLimitConfig()
	}
	return &out
}
