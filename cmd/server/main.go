package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "webinar-token-service/internal/api/http"
	"webinar-token-service/internal/config"
	"webinar-token-service/internal/daily"
	"webinar-token-service/internal/jobs"
	"webinar-token-service/internal/logger"
	"webinar-token-service/internal/scheduler"
	"webinar-token-service/internal/security"
	"webinar-token-service/internal/service"
	"webinar-token-service/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting webinar token service...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Token service configuration", "api_base_url", cfg.Daily.APIBaseURL, "discover_base_url", cfg.Daily.DiscoverBaseURL, "timeout", cfg.GetDailyTimeout())

	// Upstream client holds the only copy of the API key
	dailyClient := daily.NewClient(daily.Config{
		BaseURL: cfg.Daily.APIBaseURL,
		APIKey:  cfg.Daily.APIKey,
		Timeout: cfg.GetDailyTimeout(),
	})

	// Initialize Services
	tokenSvc := service.NewTokenService(dailyClient, cfg.Daily.DiscoverBaseURL)
	forms := storage.NewMemoryFormStore(tokenSvc)
	tokenManager := security.NewTokenManager(cfg.Session.Secret)

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(forms, cfg)
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to initialize scheduler: %v", err)
	}
	cronScheduler.Start()

	router := httpapi.NewRouter(&httpapi.Container{
		TokenService: tokenSvc,
		Forms:        forms,
		Tokens:       tokenManager,
		Cookie: httpapi.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.SecureCookie,
		},
	})

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	cronScheduler.Stop()
	forms.CloseAll()
	logger.Info("Server exited")
}
