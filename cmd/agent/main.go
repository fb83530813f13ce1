package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/ogier/pflag"

	"kunlun/internal/agent"
	"kunlun/internal/collector"
	"kunlun/internal/collector/identity"
	"kunlun/internal/config"
	"kunlun/internal/domain"
	"kunlun/internal/logger"
	"kunlun/internal/metrics"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: No .env file found, relying on system environment variables")
	}

	cfg, err := config.LoadAgent(os.Args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Printf("FATAL: %v", err)
		os.Exit(1)
	}

	appLog := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	paths := collector.DefaultPaths()
	resolver := identity.NewResolver(identity.DefaultFiles(paths.Etc), cfg.MachineIDCache, appLog)
	sampler := metrics.NewSampler(metrics.SamplerOptions{
		Paths:    paths,
		Identity: resolver,
		Name:     cfg.Name,
		Location: cfg.Location,
	}, appLog)

	if cfg.Print {
		if err := printSnapshot(ctx, sampler); err != nil {
			appLog.Error("failed to print snapshot", "error", err)
			os.Exit(1)
		}
		return
	}

	host := sampler.Host(ctx)
	appLog.Info("kunlun agent: starting...",
		"url", cfg.TargetURL,
		"interval", cfg.Interval,
		"name", cfg.Name,
		"location", cfg.Location,
		"machine_id", resolver.MachineID(),
		"hostname", host.Hostname,
		"kernel", host.Kernel,
	)

	reporter := agent.NewReporter(agent.DefaultReporterConfig(cfg.TargetURL), appLog)
	scheduler := metrics.NewScheduler(cfg.Interval, appLog, sampler.Collect, func(ctx context.Context, snap domain.Snapshot) {
		if err := reporter.Send(ctx, snap); err != nil {
			appLog.Error("failed to send data", "url", cfg.TargetURL, "error", err)
		}
	})

	scheduler.Start(ctx)

	appLog.Info("agent stopped gracefully.")
}

// printSnapshot samples twice, a second apart, so the CPU figure covers a
// real interval.
func printSnapshot(ctx context.Context, sampler *metrics.Sampler) error {
	sampler.Collect(ctx)

	select {
	case <-time.After(time.Second):
	case <-ctx.Done():
		return ctx.Err()
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(sampler.Collect(ctx))
}
