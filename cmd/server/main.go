package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nraford7/matchmaker-gem-68-sub000/internal/platform/config"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/platform/httpserver"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/platform/logger"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := buildApp(ctx, cfg, log, reg)
	if err != nil {
		log.Error("failed to start", logger.Err(err))
		os.Exit(1)
	}
	defer a.Close()

	srv := httpserver.New(cfg.Server.Addr, a.router)
	if err := httpserver.Run(ctx, srv, cfg.Server.ShutdownTimeout, log); err != nil {
		log.Error("server exited", logger.Err(err))
		a.Close()
		os.Exit(1)
	}
}
