// Package plugin is the entry point for writing a plugin on top of deckconn.
//
// It re-exports the connection engine under short names and adds Run, which
// drives a connection until the host closes it.
package plugin

import (
	"context"
	"log/slog"
	"time"

	"github.com/luciancaetano/deckconn"
	"github.com/luciancaetano/deckconn/internal/appinfo"
	"github.com/luciancaetano/deckconn/internal/params"
	"github.com/luciancaetano/deckconn/internal/websocket"
)

type Parameters = params.Parameters
type Config = websocket.Config
type Conn = websocket.Conn
type RateLimitConfig = websocket.RateLimitConfig
type Info = appinfo.Info
type Device = appinfo.Device

// shutdownTimeout bounds the close handshake when Run's context is cancelled.
const shutdownTimeout = 5 * time.Second

// New creates a connection that is not started yet.
//
// Example:
//
//	p, err := plugin.ParseArgs(os.Args[1:])
//	if err != nil {
//	    log.Fatal(err)
//	}
//	conn := plugin.New(plugin.NewConfig(p, subscriber, slog.Default()))
//	if err := plugin.Run(ctx, conn); err != nil {
//	    log.Fatal(err)
//	}
func New(cfg *Config) *Conn {
	return websocket.NewConn(cfg)
}

// NewConfig returns a configuration with the default rate limit and no metrics.
// Set the remaining fields on the result to change them.
func NewConfig(p Parameters, subscriber deckconn.Subscriber, logger *slog.Logger) *Config {
	return &Config{
		Parameters:      p,
		Subscriber:      subscriber,
		Logger:          logger,
		RateLimitConfig: websocket.DefaultRateLimitConfig(),
	}
}

// ParseArgs reads the launch parameters from argv without the program name.
func ParseArgs(args []string) (Parameters, error) {
	return params.Parse(args)
}

// Run starts conn and blocks until it closes.
//
// It returns nil when the host closed the connection normally or ctx was
// cancelled, in which case conn is closed with a normal closure frame. Any
// other termination is returned, unexpected closures as *deckconn.DisconnectError.
func Run(ctx context.Context, conn deckconn.Connection) error {
	if err := conn.Start(ctx); err != nil {
		return err
	}

	select {
	case <-conn.Done():
	case <-ctx.Done():
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := conn.Close(closeCtx); err != nil {
			return err
		}
	}
	return conn.Err()
}

// Path returns the plugin bundle directory the running executable lives in.
func Path() (string, error) {
	return params.ExecutablePluginPath()
}

// DefaultRateLimitConfig returns the default rate limit configuration
func DefaultRateLimitConfig() *RateLimitConfig {
	return websocket.DefaultRateLimitConfig()
}

// NoRateLimit returns a configuration with rate limiting disabled
func NoRateLimit() *RateLimitConfig {
	return websocket.NoRateLimit()
}
