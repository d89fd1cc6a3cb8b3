// Package main is a counter plugin: every key press increments a number
// shown on the key and stored in the key's settings.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/luciancaetano/deckconn"
	"github.com/luciancaetano/deckconn/plugin"
)

// Set by ldflags.
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deckconn-counter -port PORT -pluginUUID UUID -registerEvent EVENT -info JSON",
		Short: "Counter key action plugin",
		// The host passes single-dash flags that pflag cannot read.
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			args, verbose := stripVerbose(args)

			p, err := plugin.ParseArgs(args)
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, p, logger)
		},
	}
}

func run(ctx context.Context, p plugin.Parameters, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	counter := newCounter(logger)
	conn := plugin.New(newConfig(p, counter, logger, reg))
	counter.conn = conn

	if addr := os.Getenv(envMetricsAddr); addr != "" {
		go serveMetrics(ctx, addr, reg, logger)
	}

	logger.Info("starting", "version", version, "sdk_version", deckconn.SDKVersion)
	if path, err := plugin.Path(); err == nil {
		logger.Debug("plugin bundle", "path", path)
	}

	return plugin.Run(ctx, conn)
}

func newConfig(p plugin.Parameters, sub deckconn.Subscriber, logger *slog.Logger, reg prometheus.Registerer) *plugin.Config {
	cfg := plugin.NewConfig(p, sub, logger)
	cfg.MetricsRegisterer = reg
	return cfg
}

// stripVerbose removes -v and --verbose so the remaining argv is what the host passed.
func stripVerbose(args []string) ([]string, bool) {
	out := make([]string, 0, len(args))
	verbose := false
	for _, a := range args {
		if a == "-v" || a == "--verbose" {
			verbose = true
			continue
		}
		out = append(out, a)
	}
	return out, verbose
}
