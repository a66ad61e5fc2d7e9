package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"pagenest/config"
	"pagenest/middleware"
	"pagenest/routes"
	"pagenest/utils"
	"pagenest/worker"
)

func main() {
	logger := log.New(os.Stdout, "PAGENEST: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Error reporting
	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.AppConfig.SentryDSN,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Printf("Sentry initialization failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName: "pagenest",
	})

	// Add CORS middleware
	app.Use(middleware.CORS())

	// Outbound mail for lead notifications and campaigns
	mailer := utils.NewMailer(config.AppConfig.SMTP)

	// Initialize and start campaign worker
	campaignWorker := worker.NewCampaignWorker(config.DB, mailer, log.New(os.Stdout, "CAMPAIGN: ", log.LstdFlags))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go campaignWorker.Start(ctx)

	// Setup routes
	routes.SetupRoutes(app, config.DB, mailer)

	// Start server
	logger.Printf("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
