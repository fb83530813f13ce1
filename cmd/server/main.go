package main

import (
	"context"
	"errors"
	"log"
	netHttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"kunlun/internal/adapters/http"
	"kunlun/internal/adapters/ws/statusws"
	"kunlun/internal/application/status"
	"kunlun/internal/application/workers"
	"kunlun/internal/config"
	"kunlun/internal/logger"
	"kunlun/internal/storage/sqlite"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: No .env file found, relying on system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadServer()
	appLog := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(ctx, cfg, appLog); err != nil {
		appLog.Error("server failed", "error", err)
		os.Exit(1)
	}

	appLog.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Server, appLog logger.Logger) error {
	db, err := sqlite.NewSqliteDB(cfg.DBPath, appLog)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLog.Error("sqlite: close failed", "error", err)
		}
	}()

	g, gCtx := errgroup.WithContext(ctx)

	// WebSocket
	wsHub := statusws.NewHub(gCtx, appLog)
	wsHandler := statusws.NewHandler(wsHub, appLog)

	// Services
	statusRepo := sqlite.NewStatusRepository(db)
	statusService := status.NewService(statusRepo, wsHub, cfg.StatusRetention, appLog)

	router := http.NewRouter(cfg, &http.RouterDeps{
		WsStatus: wsHandler,
		Status:   http.NewStatusHandler(statusService, appLog),
	})
	srv := http.NewServer(router, cfg.Address)

	g.Go(func() error {
		wsHub.Run()
		return nil
	})

	// Workers
	if cfg.StatusMaxAge > 0 {
		scheduler := workers.NewScheduler(appLog)
		scheduler.RunByDuration(gCtx, cfg.CleanupInterval, workers.NewStatusCleanupWorker(statusService, cfg.StatusMaxAge, appLog))
	}

	g.Go(func() error {
		appLog.Info("http: starting server", "address", cfg.Address, "db", cfg.DBPath, "retention", cfg.StatusRetention)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, netHttp.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLog.Error("http: server shutdown error", "error", err)
		}
		return nil
	})

	return g.Wait()
}
