// Package main runs the Adversarial Engine HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fd1az/cap-alpha/business/evaluation"
	"github.com/fd1az/cap-alpha/business/evaluation/infra/httpapi"
	"github.com/fd1az/cap-alpha/business/intel"
	"github.com/fd1az/cap-alpha/business/roster"
	rosterDI "github.com/fd1az/cap-alpha/business/roster/di"
	"github.com/fd1az/cap-alpha/internal/apm"
	"github.com/fd1az/cap-alpha/internal/config"
	"github.com/fd1az/cap-alpha/internal/di"
	"github.com/fd1az/cap-alpha/internal/health"
	"github.com/fd1az/cap-alpha/internal/logger"
	"github.com/fd1az/cap-alpha/internal/metrics"
	"github.com/fd1az/cap-alpha/internal/monolith"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to configuration file")
	port := flag.Int("port", 0, "Listen port (overrides server.port)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("adversarial %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *port); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, port int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	// the engine serves intel; it never subscribes to it
	cfg.Intel.Enabled = false
	if cfg.Telemetry.ServiceName == "" || cfg.Telemetry.ServiceName == "cap-alpha" {
		cfg.Telemetry.ServiceName = httpapi.ServiceName
	}

	log := logger.New(os.Stderr, logger.ParseLevel(cfg.App.LogLevel), httpapi.ServiceName, nil)
	log.Info(ctx, "starting Adversarial Engine",
		"version", version,
		"environment", cfg.App.Environment,
		"port", cfg.Server.Port,
		"roster_source", cfg.Roster.Source,
	)

	traceProvider, err := apm.NewTraceProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	defer traceProvider.Stop()

	if cfg.Telemetry.Enabled {
		mp, err := metrics.NewMetricProvider(ctx,
			metrics.WithServiceName(cfg.Telemetry.ServiceName),
			metrics.WithProviderConfig(metrics.NewPrometheusConfig()),
		)
		if err != nil {
			return fmt.Errorf("failed to init metrics: %w", err)
		}
		defer mp.Shutdown(context.Background())

		go func() {
			if err := metrics.ServePrometheus(ctx, cfg.Telemetry.PrometheusPort); err != nil {
				log.Warn(ctx, "prometheus server stopped", "error", err)
			}
		}()
	}

	mono := monolith.New(cfg, log)
	defer func() {
		if err := mono.Close(); err != nil {
			log.Error(context.Background(), "shutdown", "error", err)
		}
	}()

	modules := []monolith.Module{
		roster.Module{},
		intel.Module{},
		evaluation.ServerModule{},
	}
	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}

	if cfg.Health.Enabled {
		hs := health.NewServer(cfg.Health.Port, version, log)
		hs.RegisterCheck("roster", func(ctx context.Context) (bool, string) {
			if err := di.GetToken(mono.Services(), rosterDI.Service).Ping(ctx); err != nil {
				return false, err.Error()
			}
			return true, ""
		})
		hs.Start(ctx)
		defer hs.Stop(context.Background())
	}

	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}
	log.Info(ctx, "adversarial engine listening", "addr", fmt.Sprintf(":%d", cfg.Server.Port))

	<-ctx.Done()
	log.Info(context.Background(), "shutting down")
	return nil
}
