// Package main is the entry point for the Cap Alpha trade machine.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/fd1az/cap-alpha/business/evaluation"
	"github.com/fd1az/cap-alpha/business/intel"
	"github.com/fd1az/cap-alpha/business/roster"
	rosterDI "github.com/fd1az/cap-alpha/business/roster/di"
	"github.com/fd1az/cap-alpha/business/trade"
	tradeApp "github.com/fd1az/cap-alpha/business/trade/app"
	tradeDI "github.com/fd1az/cap-alpha/business/trade/di"
	"github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/apm"
	"github.com/fd1az/cap-alpha/internal/config"
	"github.com/fd1az/cap-alpha/internal/di"
	"github.com/fd1az/cap-alpha/internal/health"
	"github.com/fd1az/cap-alpha/internal/logger"
	"github.com/fd1az/cap-alpha/internal/metrics"
	"github.com/fd1az/cap-alpha/internal/monolith"
	"github.com/fd1az/cap-alpha/pkg/ui"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// engineStatusInterval is how often the TUI status bar re-checks the engine.
const engineStatusInterval = 15 * time.Second

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to configuration file")
	cliMode := flag.Bool("cli", false, "Run one trade non-interactively and print the report (no TUI)")
	showVersion := flag.Bool("version", false, "Show version information")
	var job cliJob
	flag.IntVar(&job.Scenario, "scenario", 0, "CLI: run the Nth trade intel scenario (1 = best)")
	flag.StringVar(&job.TeamA, "team-a", "", "CLI: team A (gives up -give-a)")
	flag.StringVar(&job.TeamB, "team-b", "", "CLI: team B (gives up -give-b)")
	flag.StringVar(&job.GiveA, "give-a", "", "CLI: comma separated asset ids team A sends")
	flag.StringVar(&job.GiveB, "give-b", "", "CLI: comma separated asset ids team B sends")
	flag.StringVar(&job.Restructure, "restructure", "", "CLI: comma separated staged asset ids to restructure")
	flag.BoolVar(&job.PostJune1, "post-june1", false, "CLI: designate releases post-June-1")
	flag.BoolVar(&job.AcceptCounter, "accept-counter", false, "CLI: accept a counter-offer and re-simulate")
	flag.Parse()

	if *showVersion {
		fmt.Printf("capalpha %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// TUI is the default, CLI is for scripting
	tuiMode := !*cliMode

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		if !tuiMode {
			fmt.Fprintf(os.Stderr, "received shutdown signal: %v\n", sig)
		}
		cancel()
	}()

	if err := run(ctx, *configPath, tuiMode, job); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, tuiMode bool, job cliJob) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Set TUI mode in config so modules know
	cfg.App.TUIMode = tuiMode

	var log *logger.Logger
	if tuiMode {
		// In TUI mode, suppress logs (discard output)
		log = logger.New(io.Discard, logger.ParseLevel(cfg.App.LogLevel), cfg.App.Name, nil)
	} else {
		log = logger.New(os.Stderr, logger.ParseLevel(cfg.App.LogLevel), cfg.App.Name, nil)
		log.Info(ctx, "starting Cap Alpha trade machine",
			"version", version,
			"environment", cfg.App.Environment,
			"engine_mode", cfg.Engine.Mode,
			"roster_source", cfg.Roster.Source,
		)
	}

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
		log.Info(ctx, "prometheus metrics server started", "port", cfg.Telemetry.PrometheusPort)
	}

	mono := monolith.New(cfg, log)
	defer mono.Close()

	// Define modules in dependency order
	modules := []monolith.Module{
		roster.Module{},     // roster store and service
		intel.Module{},      // scenario feed
		evaluation.Module{}, // remote or local evaluator
		trade.Module{},      // orchestrator, desk, reporter
	}

	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}

	if cfg.Health.Enabled {
		hs := health.NewServer(cfg.Health.Port, version, log)
		registerChecks(hs, mono.Services())
		hs.Start(ctx)
		defer hs.Stop(context.Background())
		log.Info(ctx, "health server started", "port", cfg.Health.Port)
	}

	if tuiMode {
		return runTUI(ctx, func() error { return startTUI(ctx, mono, modules) })
	}

	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}
	desk := di.GetToken(mono.Services(), tradeDI.Desk)
	return runCLI(ctx, desk, job, log)
}

// registerChecks adds the roster store and evaluator checks.
func registerChecks(hs *health.Server, sr di.ServiceRegistry) {
	hs.RegisterCheck("roster", func(ctx context.Context) (bool, string) {
		if err := di.GetToken(sr, rosterDI.Service).Ping(ctx); err != nil {
			return false, err.Error()
		}
		return true, ""
	})
	if sr.Has(tradeDI.EvaluatorPinger.Name()) {
		hs.RegisterCheck("evaluator", func(ctx context.Context) (bool, string) {
			if err := di.GetToken(sr, tradeDI.EvaluatorPinger).Ping(ctx); err != nil {
				return false, err.Error()
			}
			return true, ""
		})
	}
}

// startTUI starts the modules one by one so the startup screen can show
// progress, then hands the desk to the TUI.
func startTUI(ctx context.Context, mono *monolith.App, modules []monolith.Module) error {
	cfg := mono.Config()
	ui.Send(ui.StartupMsg{Step: "config", Status: "done"})

	// stream callbacks must be set before the intel module connects
	stream, streaming := di.GetToken(mono.Services(), intel.FeedToken).(*intel.StreamFeed)
	if streaming {
		stream.Subscribe(func(s []domain.Scenario) { ui.Send(ui.ScenariosMsg{Scenarios: s}) })
		stream.OnConnection(func(connected bool) {
			ui.Send(ui.ConnectionStatusMsg{Name: "Intel", Connected: connected})
		})
	}

	steps := []string{"roster", "intel", "engine", ""}
	for i, m := range modules {
		step := steps[i]
		if step != "" {
			ui.Send(ui.StartupMsg{Step: step, Status: "connecting"})
		}
		if err := mono.StartModules(ctx, m); err != nil {
			if step != "" {
				ui.Send(ui.StartupMsg{Step: step, Status: "failed", Message: err.Error()})
			}
			return fmt.Errorf("failed to start modules: %w", err)
		}

		switch step {
		case "roster":
			ui.Send(ui.StartupMsg{Step: step, Status: "done"})
		case "intel":
			switch {
			case !streaming:
				ui.Send(ui.StartupMsg{Step: step, Status: "skipped", Message: "using scenarios file"})
			case stream.Connected():
				ui.Send(ui.StartupMsg{Step: step, Status: "connected"})
			default:
				ui.Send(ui.StartupMsg{Step: step, Status: "failed", Message: "intel stream unavailable"})
			}
		case "engine":
			ui.Send(engineStartup(ctx, mono.Services(), cfg))
		}
	}

	desk := di.GetToken(mono.Services(), tradeDI.Desk)
	go watchEngine(ctx, desk)
	ui.Send(ui.ReadyMsg{Controller: desk})
	return nil
}

func engineStartup(ctx context.Context, sr di.ServiceRegistry, cfg *config.Config) ui.StartupMsg {
	if cfg.Engine.Mode == config.EvaluatorLocal || !sr.Has(tradeDI.EvaluatorPinger.Name()) {
		return ui.StartupMsg{Step: "engine", Status: "done", Message: "grading in-process"}
	}
	pctx, cancel := context.WithTimeout(ctx, cfg.Engine.Timeout)
	defer cancel()
	if err := di.GetToken(sr, tradeDI.EvaluatorPinger).Ping(pctx); err != nil {
		return ui.StartupMsg{Step: "engine", Status: "failed", Message: "engine unreachable, results will be local only"}
	}
	return ui.StartupMsg{Step: "engine", Status: "connected"}
}

// watchEngine keeps the engine status in the status bar current.
func watchEngine(ctx context.Context, desk *tradeApp.Desk) {
	ticker := time.NewTicker(engineStatusInterval)
	defer ticker.Stop()
	for {
		desk.CheckEvaluator(ctx, "Engine")
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func runTUI(ctx context.Context, startFunc func() error) error {
	// Channel to receive StartModulesMsg signal
	startSignal := make(chan struct{}, 1)
	ui.OnStartModules = func() {
		select {
		case startSignal <- struct{}{}:
		default:
		}
	}

	p := tea.NewProgram(ui.New(ctx), tea.WithAltScreen())
	ui.Program = p

	errCh := make(chan error, 1)
	go func() {
		select {
		case <-startSignal:
		case <-ctx.Done():
			errCh <- nil
			return
		}

		if err := startFunc(); err != nil {
			ui.Send(ui.ErrorMsg{Error: err})
			errCh <- err
			return
		}
		errCh <- nil
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}
