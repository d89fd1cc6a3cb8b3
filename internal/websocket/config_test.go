package websocket

import (
	"log/slog"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// TestDefaultRateLimitConfig tests the default rate limit configuration
func TestDefaultRateLimitConfig(t *testing.T) {
	t.Parallel()

	config := DefaultRateLimitConfig()

	if config == nil {
		t.Fatal("DefaultRateLimitConfig() returned nil")
	}

	if !config.Enabled {
		t.Error("Expected rate limiting to be enabled by default")
	}

	if config.MessagesPerSecond != 100 {
		t.Errorf("MessagesPerSecond = %v, want 100", config.MessagesPerSecond)
	}

	if config.Burst != 200 {
		t.Errorf("Burst = %v, want 200", config.Burst)
	}
}

// TestNoRateLimit tests the no rate limit configuration
func TestNoRateLimit(t *testing.T) {
	t.Parallel()

	config := NoRateLimit()

	if config.Enabled {
		t.Error("Expected rate limiting to be disabled")
	}
	if limiter := config.newLimiter(); limiter != nil {
		t.Errorf("newLimiter() = %v, want nil", limiter)
	}
}

// TestNewLimiter tests limiter construction from various configurations
func TestNewLimiter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		config    *RateLimitConfig
		wantNil   bool
		wantLimit rate.Limit
		wantBurst int
	}{
		{"nil config", nil, true, 0, 0},
		{"disabled", NoRateLimit(), true, 0, 0},
		{"default", DefaultRateLimitConfig(), false, 100, 200},
		{"custom", &RateLimitConfig{MessagesPerSecond: 5, Burst: 1, Enabled: true}, false, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			limiter := tt.config.newLimiter()
			if (limiter == nil) != tt.wantNil {
				t.Fatalf("newLimiter() = %v, wantNil %v", limiter, tt.wantNil)
			}
			if limiter == nil {
				return
			}
			if limiter.Limit() != tt.wantLimit {
				t.Errorf("Limit() = %v, want %v", limiter.Limit(), tt.wantLimit)
			}
			if limiter.Burst() != tt.wantBurst {
				t.Errorf("Burst() = %v, want %v", limiter.Burst(), tt.wantBurst)
			}
		})
	}
}

// TestConfigDefaults tests that unset fields get their defaults without touching the input
func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	in := &Config{}
	got := in.withDefaults()

	if got.Logger != slog.Default() {
		t.Error("Logger should default to slog.Default()")
	}
	if got.Dialer == nil || got.Dialer.HandshakeTimeout != defaultHandshakeTimeout {
		t.Errorf("Dialer = %+v, want handshake timeout %v", got.Dialer, defaultHandshakeTimeout)
	}
	if got.WriteTimeout != 10*time.Second {
		t.Errorf("WriteTimeout = %v, want 10s", got.WriteTimeout)
	}
	if got.RateLimitConfig == nil || !got.RateLimitConfig.Enabled {
		t.Errorf("RateLimitConfig = %+v, want default", got.RateLimitConfig)
	}
	if in.Logger != nil || in.Dialer != nil || in.RateLimitConfig != nil {
		t.Error("withDefaults() modified its receiver")
	}
}
