package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"webinar-token-service/internal/config"
	"webinar-token-service/internal/daily"
	"webinar-token-service/internal/domain"
	"webinar-token-service/internal/logger"
	"webinar-token-service/internal/service"
)

// mint issues one admin token from the command line and prints the link.
func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	room := flag.String("room", "", "Webinar room name (existing)")
	user := flag.String("user", "", "Admin's username")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Logs go to stderr so stdout only carries the result
	logger.InitializeWithWriter(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	dailyClient := daily.NewClient(daily.Config{
		BaseURL: cfg.Daily.APIBaseURL,
		APIKey:  cfg.Daily.APIKey,
		Timeout: cfg.GetDailyTimeout(),
	})
	tokenSvc := service.NewTokenService(dailyClient, cfg.Daily.DiscoverBaseURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	issued, _, err := tokenSvc.IssueAdminToken(ctx, domain.FormInput{RoomName: *room, Username: *user})
	if err != nil {
		fmt.Fprintln(os.Stderr, domain.UserMessage(err))
		stop()
		os.Exit(1)
	}

	fmt.Printf("Your admin link for the webinar: %s\n", issued.Link)
	fmt.Printf("Your webinar username: %s\n", issued.Username)
	fmt.Fprintln(os.Stderr, "This token is not saved anywhere. Please keep it somewhere safe!")
}
