// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command poolctl runs a standalone txpool.Pool behind a JSON-RPC and
// websocket-event daemon, for manual exercise and integration testing
// outside of a full node.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	colorable "github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"

	"github.com/luxfi/geth/log"
	"github.com/luxfi/txpool/config"
	"github.com/luxfi/txpool/core/txpool"
	"github.com/luxfi/txpool/core/txpool/txpoolrpc"
)

func main() {
	app := &cli.App{
		Name:  "poolctl",
		Usage: "run an in-memory transaction pool daemon",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a poolctl config file"},
			&cli.StringFlag{Name: "listen-addr", Usage: "address to serve JSON-RPC and websocket events on"},
			&cli.IntFlag{Name: "max-count", Usage: "maximum pooled transaction count"},
			&cli.Uint64Flag{Name: "max-mem-usage", Usage: "maximum summed MemUsage across pooled transactions"},
			&cli.IntFlag{Name: "max-per-sender", Usage: "maximum pooled transactions per sender"},
			&cli.Float64Flag{Name: "rate-limit", Usage: "per-sender admissions per second"},
			&cli.IntFlag{Name: "rate-burst", Usage: "per-sender token bucket burst size"},
			&cli.StringFlag{Name: "log-level", Usage: "log verbosity: trace, debug, info, warn, error, crit"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"), nil)
	if err != nil {
		return err
	}
	applyFlagOverrides(c, &cfg)

	setupLogging(cfg.LogLevel)

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	opts := txpool.DefaultOptions()
	opts.MaxCount = cfg.MaxCount
	opts.MaxMemUsage = cfg.MaxMemUsage
	opts.MaxPerSender = cfg.MaxPerSender
	opts.RateLimit = limiter

	notifier := txpoolrpc.NewNotifier()
	opts.Listener = notifier

	registry := prometheus.NewRegistry()
	pool := txpool.New(opts, registry, "poolctl")

	rpcHandler, err := txpoolrpc.NewHandler(pool)
	if err != nil {
		return fmt.Errorf("building rpc handler: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/rpc", rpcHandler)
	mux.Handle("/events", notifier)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	log.Info("poolctl listening", "addr", cfg.ListenAddr)
	return http.ListenAndServe(cfg.ListenAddr, mux)
}

func applyFlagOverrides(c *cli.Context, cfg *config.Config) {
	if c.IsSet("listen-addr") {
		cfg.ListenAddr = c.String("listen-addr")
	}
	if c.IsSet("max-count") {
		cfg.MaxCount = c.Int("max-count")
	}
	if c.IsSet("max-mem-usage") {
		cfg.MaxMemUsage = c.Uint64("max-mem-usage")
	}
	if c.IsSet("max-per-sender") {
		cfg.MaxPerSender = c.Int("max-per-sender")
	}
	if c.IsSet("rate-limit") {
		cfg.RateLimit = c.Float64("rate-limit")
	}
	if c.IsSet("rate-burst") {
		cfg.RateBurst = c.Int("rate-burst")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
}

func setupLogging(level string) {
	usecolor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	out := io.Writer(os.Stderr)
	if usecolor {
		out = colorable.NewColorableStderr()
	}
	lvl, err := log.LvlFromString(level)
	if err != nil {
		lvl = log.LvlInfo
	}
	handler := log.LvlFilterHandler(lvl, log.StreamHandler(out, log.TerminalFormat(usecolor)))
	log.Root().SetHandler(handler)
}
